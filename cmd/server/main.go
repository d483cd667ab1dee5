package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-backend/internal/config"
	"github.com/gatherly/event-backend/internal/database"
	"github.com/gatherly/event-backend/internal/handler"
	"github.com/gatherly/event-backend/internal/queue"
	"github.com/gatherly/event-backend/internal/repository"
	"github.com/gatherly/event-backend/internal/router"
	"github.com/gatherly/event-backend/internal/service"
)

func main() {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient() // nil when unreachable; limiter and cache degrade

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	resets := repository.NewResetTokenRepo(db)
	events := repository.NewEventRepo(db)
	sessions := repository.NewSessionRepo(db)
	organisers := repository.NewOrganiserRepo(db)
	registrations := repository.NewRegistrationRepo(db)
	tickets := repository.NewTicketRepo(db)
	checkins := repository.NewCheckInRepo(db)
	payments := repository.NewPaymentRepo(db)

	authz := service.NewAuthorizer(organisers)
	authSvc := service.NewAuthenticator(cfg, users, tokens, resets)
	eventSvc := service.NewEventService(events, sessions, organisers, authz)
	regSvc := service.NewRegistrationService(events, registrations, authz)
	ticketSvc := service.NewTicketService(tickets, registrations, authz)
	paymentSvc := service.NewPaymentService(payments, registrations)
	checkinSvc := service.NewCheckInService(tickets, registrations, events, checkins, authz, queue.PublishCheckInRecorded)

	go queue.StartCheckInConsumer()

	e := echo.New()
	e.HideBanner = true

	router.Register(e, router.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Events:        handler.NewEventHandler(eventSvc),
		Registrations: handler.NewRegistrationHandler(regSvc),
		Tickets:       handler.NewTicketHandler(ticketSvc),
		Scanner:       handler.NewScannerHandler(checkinSvc),
		Payments:      handler.NewPaymentHandler(paymentSvc),
	}, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
