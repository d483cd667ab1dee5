package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gatherly/event-backend/internal/model"
	"github.com/gatherly/event-backend/internal/repository"
)

// RegistrationService handles attendee registration.  Guests register with
// a nil user ID; the contact fields are captured either way so the record
// stands on its own.
type RegistrationService struct {
	events        EventStore
	registrations RegistrationStore
	authz         *Authorizer
}

func NewRegistrationService(events EventStore, registrations RegistrationStore, authz *Authorizer) *RegistrationService {
	return &RegistrationService{events: events, registrations: registrations, authz: authz}
}

// Register creates a pending registration for an event and assigns it a
// random QR payload.
func (s *RegistrationService) Register(ctx context.Context, eventID uint64, userID *uint64, name, email, phone string) (model.EventRegistration, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)
	if name == "" || email == "" || phone == "" {
		return model.EventRegistration{}, ErrMissingParameter
	}

	if _, err := s.events.GetByID(ctx, eventID); errors.Is(err, repository.ErrNotFound) {
		return model.EventRegistration{}, ErrNotFound
	} else if err != nil {
		return model.EventRegistration{}, fmt.Errorf("loading event: %w", err)
	}

	reg := model.EventRegistration{
		EventID: eventID,
		UserID:  userID,
		Name:    name,
		Email:   email,
		Phone:   phone,
		QRCode:  uuid.NewString(),
		Status:  model.RegistrationPending,
	}
	id, err := s.registrations.Create(ctx, &reg)
	if err != nil {
		return model.EventRegistration{}, fmt.Errorf("creating registration: %w", err)
	}
	reg.ID = id
	return reg, nil
}

// Get fetches one registration.
func (s *RegistrationService) Get(ctx context.Context, id uint64) (model.EventRegistration, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.EventRegistration{}, ErrNotFound
	}
	return reg, err
}

// ListByEvent returns the registrations of an event.  Admin or staff.
func (s *RegistrationService) ListByEvent(ctx context.Context, actorID, eventID uint64) ([]model.EventRegistration, error) {
	if err := s.authz.RequireRoles(ctx, actorID, eventID, model.RoleAdmin, model.RoleStaff); err != nil {
		return nil, err
	}
	return s.registrations.ListByEvent(ctx, eventID)
}
