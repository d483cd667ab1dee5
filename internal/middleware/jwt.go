package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-backend/internal/auth"
)

// UserIDKey is the echo context key under which JWTAuth stores the
// authenticated user's id as a uint64.
const UserIDKey = "user_id"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// signed with the given secret and stores the token's subject in the request
// context.  Wrap it around protected routes; handlers read the id with
// c.Get(UserIDKey).(uint64).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			userID, err := auth.ParseAccessToken(secret, raw)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// OptionalJWTAuth is JWTAuth for routes that serve both guests and
// authenticated users: a valid bearer token attaches the user id, anything
// else passes through anonymously.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				if userID, err := auth.ParseAccessToken(secret, strings.TrimPrefix(header, "Bearer ")); err == nil {
					c.Set(UserIDKey, userID)
				}
			}
			return next(c)
		}
	}
}
