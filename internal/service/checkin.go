package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gatherly/event-backend/internal/model"
	"github.com/gatherly/event-backend/internal/queue"
	"github.com/gatherly/event-backend/internal/repository"
)

// CheckInService records attendee arrivals at the gate.  A check-in can be
// keyed by a scanned ticket QR code or directly by registration id; both
// paths share the same payment and duplicate gates.
type CheckInService struct {
	tickets       TicketStore
	registrations RegistrationStore
	events        EventStore
	checkins      CheckInStore
	authz         *Authorizer

	// publish, when non-nil, announces each recorded check-in.  Failures
	// are logged and swallowed: the check-in itself already committed.
	publish func(ctx context.Context, event queue.CheckInRecordedEvent) error
}

func NewCheckInService(
	tickets TicketStore,
	registrations RegistrationStore,
	events EventStore,
	checkins CheckInStore,
	authz *Authorizer,
	publish func(ctx context.Context, event queue.CheckInRecordedEvent) error,
) *CheckInService {
	return &CheckInService{
		tickets:       tickets,
		registrations: registrations,
		events:        events,
		checkins:      checkins,
		authz:         authz,
		publish:       publish,
	}
}

// ScanQR records a check-in for the ticket carrying the given QR code.
// The caller must hold any organiser role on the event.
func (s *CheckInService) ScanQR(ctx context.Context, actorID uint64, qr string, gate, deviceID *string) (model.CheckIn, error) {
	if qr == "" {
		return model.CheckIn{}, ErrMissingParameter
	}
	ticket, err := s.tickets.GetByQR(ctx, qr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.CheckIn{}, ErrNotFound
		}
		return model.CheckIn{}, err
	}
	return s.record(ctx, actorID, ticket.RegistrationID, gate, deviceID)
}

// CheckInRegistration records a check-in directly by registration id, for
// desks handling attendees without a scannable ticket.
func (s *CheckInService) CheckInRegistration(ctx context.Context, actorID, registrationID uint64, gate, deviceID *string) (model.CheckIn, error) {
	return s.record(ctx, actorID, registrationID, gate, deviceID)
}

func (s *CheckInService) record(ctx context.Context, actorID, registrationID uint64, gate, deviceID *string) (model.CheckIn, error) {
	reg, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.CheckIn{}, ErrNotFound
		}
		return model.CheckIn{}, err
	}
	if err := s.authz.RequireRoles(ctx, actorID, reg.EventID, model.RoleAdmin, model.RoleStaff, model.RoleVolunteer); err != nil {
		return model.CheckIn{}, err
	}
	if reg.Status != model.RegistrationConfirmed {
		return model.CheckIn{}, ErrRegistrationNotPaid
	}

	exists, err := s.checkins.ExistsForRegistration(ctx, reg.ID)
	if err != nil {
		return model.CheckIn{}, err
	}
	if exists {
		return model.CheckIn{}, ErrAlreadyCheckedIn
	}

	now := time.Now().UTC()
	checkin := model.CheckIn{
		RegistrationID: reg.ID,
		Gate:           gate,
		DeviceID:       deviceID,
		CheckedInAt:    now,
	}
	id, err := s.checkins.Create(ctx, &checkin)
	if err != nil {
		return model.CheckIn{}, err
	}
	checkin.ID = id

	if s.publish != nil {
		title := ""
		if ev, err := s.events.GetByID(ctx, reg.EventID); err == nil {
			title = ev.Title
		}
		msg := queue.CheckInRecordedEvent{
			CheckInID:      checkin.ID,
			RegistrationID: reg.ID,
			EventID:        reg.EventID,
			EventTitle:     title,
			AttendeeName:   reg.Name,
			Gate:           gate,
			DeviceID:       deviceID,
			CheckedInAt:    now.Format(time.RFC3339),
		}
		if err := s.publish(ctx, msg); err != nil {
			log.Printf("checkin: publish failed for registration %d: %v", reg.ID, err)
		}
	}
	return checkin, nil
}
