package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/gatherly/event-backend/internal/model"
	"github.com/gatherly/event-backend/internal/repository"
)

const qrImageSize = 256 // pixels, square

// TicketService issues tickets for paid registrations.  The ticket's QR
// payload is what the door scanner resolves; the rendered PNG is a
// convenience for the client and is never stored.
type TicketService struct {
	tickets       TicketStore
	registrations RegistrationStore
	authz         *Authorizer
}

func NewTicketService(tickets TicketStore, registrations RegistrationStore, authz *Authorizer) *TicketService {
	return &TicketService{tickets: tickets, registrations: registrations, authz: authz}
}

// Issue creates a ticket for a confirmed registration and returns it along
// with a base64-encoded PNG of the QR code.  Admin or staff on the
// registration's event.
func (s *TicketService) Issue(ctx context.Context, actorID, registrationID uint64) (model.Ticket, string, error) {
	reg, err := s.registrations.GetByID(ctx, registrationID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Ticket{}, "", ErrNotFound
	}
	if err != nil {
		return model.Ticket{}, "", fmt.Errorf("loading registration: %w", err)
	}
	if err := s.authz.RequireRoles(ctx, actorID, reg.EventID, model.RoleAdmin, model.RoleStaff); err != nil {
		return model.Ticket{}, "", err
	}
	if reg.Status != model.RegistrationConfirmed {
		return model.Ticket{}, "", ErrRegistrationNotPaid
	}

	t := model.Ticket{
		RegistrationID: reg.ID,
		QRCode:         fmt.Sprintf("%d-%s", reg.ID, uuid.NewString()),
		IssuedAt:       time.Now().UTC(),
	}
	id, err := s.tickets.Create(ctx, &t)
	if err != nil {
		return model.Ticket{}, "", fmt.Errorf("creating ticket: %w", err)
	}
	t.ID = id

	png, err := qrcode.Encode(t.QRCode, qrcode.Medium, qrImageSize)
	if err != nil {
		return model.Ticket{}, "", fmt.Errorf("rendering qr image: %w", err)
	}
	return t, base64.StdEncoding.EncodeToString(png), nil
}
