// Package handler exposes the HTTP surface.  Handlers bind and validate
// request bodies, call into the service layer, and translate the service
// error taxonomy into status codes in exactly one place.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-backend/internal/middleware"
	"github.com/gatherly/event-backend/internal/service"
)

// serviceError maps a service-layer error to an HTTP response.  Unknown
// errors become opaque 500s; internals never leak to the client.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingParameter):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing or invalid parameter"})
	case errors.Is(err, service.ErrResetInvalidOrExpired):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reset token invalid or expired"})
	case errors.Is(err, service.ErrRegistrationNotPaid):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "registration is not paid"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, service.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	case errors.Is(err, service.ErrInvalidRefresh):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrDuplicateEmail):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
	case errors.Is(err, service.ErrDuplicateUsername):
		return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
	case errors.Is(err, service.ErrDuplicateTitle):
		return c.JSON(http.StatusConflict, echo.Map{"error": "title already exists"})
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already checked in"})
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// currentUserID reads the authenticated user id set by the JWT middleware.
// Returns 0 when the route is unauthenticated.
func currentUserID(c echo.Context) uint64 {
	if v, ok := c.Get(middleware.UserIDKey).(uint64); ok {
		return v
	}
	return 0
}

// pathID parses a numeric path parameter; a second return of false means the
// caller should respond 400.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
