package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-backend/internal/service"
)

// TicketHandler issues tickets for paid registrations.
type TicketHandler struct {
	Tickets *service.TicketService
}

func NewTicketHandler(s *service.TicketService) *TicketHandler {
	return &TicketHandler{Tickets: s}
}

type ticketResp struct {
	ID             uint64    `json:"id"`
	RegistrationID uint64    `json:"registration_id"`
	QRCode         string    `json:"qr_code"`
	QRImage        string    `json:"qr_image"` // base64 PNG
	IssuedAt       time.Time `json:"issued_at"`
}

// Issue creates a ticket for a confirmed registration and returns the QR
// payload with a rendered PNG.  Admin or staff on the event.
func (h *TicketHandler) Issue(c echo.Context) error {
	regID, ok := pathID(c, "registration_id")
	if !ok {
		return badRequest(c, "invalid registration id")
	}

	ticket, png, err := h.Tickets.Issue(c.Request().Context(), currentUserID(c), regID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, ticketResp{
		ID:             ticket.ID,
		RegistrationID: ticket.RegistrationID,
		QRCode:         ticket.QRCode,
		QRImage:        png,
		IssuedAt:       ticket.IssuedAt,
	})
}
