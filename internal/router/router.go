// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/gatherly/event-backend/internal/config"
	"github.com/gatherly/event-backend/internal/handler"
	"github.com/gatherly/event-backend/internal/middleware"
)

// Handlers collects every handler the API mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Events        *handler.EventHandler
	Registrations *handler.RegistrationHandler
	Tickets       *handler.TicketHandler
	Scanner       *handler.ScannerHandler
	Payments      *handler.PaymentHandler
}

// Register mounts all routes.  The auth group is rate limited; the public
// browse endpoints are cached; everything that mutates event state sits
// behind JWT auth, with per-event role checks living in the service layer.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Credential endpoints: no session required, rate limited.
	authGroup := e.Group("/v1/auth", limiter)
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/logout", h.Auth.Logout)
	authGroup.POST("/password-reset/request", h.Auth.RequestPasswordReset)
	authGroup.POST("/password-reset/confirm", h.Auth.ConfirmPasswordReset)

	// Public browse endpoints.
	e.GET("/v1/events", h.Events.List, cache)
	e.GET("/v1/events/:id", h.Events.Get, cache)
	e.GET("/v1/events/:id/sessions", h.Events.ListSessions, cache)

	// Registration is open to guests; a valid token attaches the user.
	e.POST("/v1/events/:id/registrations", h.Registrations.Register, middleware.OptionalJWTAuth(jwtSecret))

	// Everything below requires a session.
	authd := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	authd.GET("/me", h.Auth.Me)

	authd.POST("/events", h.Events.Create)
	authd.PUT("/events/:id", h.Events.Update)
	authd.DELETE("/events/:id", h.Events.Delete)
	authd.POST("/events/:id/sessions", h.Events.CreateSession)
	authd.POST("/events/:id/organisers", h.Events.AddOrganiser)
	authd.GET("/events/:id/organisers", h.Events.ListOrganisers)
	authd.GET("/events/:id/registrations", h.Registrations.ListByEvent)

	authd.GET("/registrations/:id", h.Registrations.Get)
	authd.POST("/registrations/:id/checkin", h.Scanner.CheckIn)
	authd.POST("/scanner/scan", h.Scanner.Scan)

	authd.POST("/tickets/:registration_id", h.Tickets.Issue)

	authd.POST("/payments", h.Payments.Initiate)
	authd.POST("/payments/:id/complete", h.Payments.Complete)
	authd.POST("/payments/:id/fail", h.Payments.Fail)
}
