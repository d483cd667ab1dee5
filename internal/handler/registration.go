package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-backend/internal/model"
	"github.com/gatherly/event-backend/internal/service"
)

// RegistrationHandler covers attendee registration and listing.
type RegistrationHandler struct {
	Registrations *service.RegistrationService
}

func NewRegistrationHandler(s *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{Registrations: s}
}

type registrationReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type registrationResp struct {
	ID           uint64    `json:"id"`
	EventID      uint64    `json:"event_id"`
	UserID       *uint64   `json:"user_id,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	QRCode       string    `json:"qr_code"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}

func toRegistrationResp(r model.EventRegistration) registrationResp {
	return registrationResp{
		ID: r.ID, EventID: r.EventID, UserID: r.UserID,
		Name: r.Name, Email: r.Email, Phone: r.Phone,
		QRCode: r.QRCode, Status: string(r.Status), RegisteredAt: r.RegisteredAt,
	}
}

// Register creates a pending registration.  The route accepts both
// authenticated users and guests; a guest record has no user id.
func (h *RegistrationHandler) Register(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	var req registrationReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	var userID *uint64
	if uid := currentUserID(c); uid != 0 {
		userID = &uid
	}

	reg, err := h.Registrations.Register(c.Request().Context(), eventID, userID, req.Name, req.Email, req.Phone)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toRegistrationResp(reg))
}

// Get returns one registration.
func (h *RegistrationHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid registration id")
	}
	reg, err := h.Registrations.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toRegistrationResp(reg))
}

// ListByEvent lists an event's registrations.  Admin or staff.
func (h *RegistrationHandler) ListByEvent(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	regs, err := h.Registrations.ListByEvent(c.Request().Context(), currentUserID(c), eventID)
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]registrationResp, 0, len(regs))
	for _, r := range regs {
		out = append(out, toRegistrationResp(r))
	}
	return c.JSON(http.StatusOK, out)
}
