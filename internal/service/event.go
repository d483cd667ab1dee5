package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gatherly/event-backend/internal/model"
	"github.com/gatherly/event-backend/internal/repository"
)

// EventService covers event CRUD, session scheduling and organiser
// management.  Every mutation on an existing event goes through the
// Authorizer first.
type EventService struct {
	events     EventStore
	sessions   SessionStore
	organisers MembershipStore
	authz      *Authorizer
}

func NewEventService(events EventStore, sessions SessionStore, organisers MembershipStore, authz *Authorizer) *EventService {
	return &EventService{events: events, sessions: sessions, organisers: organisers, authz: authz}
}

// Create inserts a new event and grants the creator the admin role on it,
// so there is never an event nobody can administer.
func (s *EventService) Create(ctx context.Context, userID uint64, e *model.Event) (model.Event, error) {
	if strings.TrimSpace(e.Title) == "" || strings.TrimSpace(e.Venue) == "" ||
		strings.TrimSpace(e.Address) == "" || e.StartsAt.IsZero() || e.EndsAt.IsZero() {
		return model.Event{}, ErrMissingParameter
	}
	e.CreatedBy = userID

	id, err := s.events.Create(ctx, e)
	if errors.Is(err, repository.ErrTitleExists) {
		return model.Event{}, ErrDuplicateTitle
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("creating event: %w", err)
	}
	e.ID = id

	if err := s.organisers.Upsert(ctx, id, userID, model.RoleAdmin); err != nil {
		return model.Event{}, fmt.Errorf("granting creator admin: %w", err)
	}
	return *e, nil
}

// Get fetches one event.
func (s *EventService) Get(ctx context.Context, id uint64) (model.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Event{}, ErrNotFound
	}
	return e, err
}

// List returns all events.
func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}

// Update rewrites an event.  Admin only.
func (s *EventService) Update(ctx context.Context, userID uint64, e *model.Event) (model.Event, error) {
	if err := s.authz.RequireRoles(ctx, userID, e.ID, model.RoleAdmin); err != nil {
		return model.Event{}, err
	}
	err := s.events.Update(ctx, e)
	switch {
	case errors.Is(err, repository.ErrTitleExists):
		return model.Event{}, ErrDuplicateTitle
	case errors.Is(err, repository.ErrNotFound):
		return model.Event{}, ErrNotFound
	case err != nil:
		return model.Event{}, fmt.Errorf("updating event: %w", err)
	}
	return s.Get(ctx, e.ID)
}

// Delete removes an event.  Admin only.
func (s *EventService) Delete(ctx context.Context, userID, eventID uint64) error {
	if err := s.authz.RequireRoles(ctx, userID, eventID, model.RoleAdmin); err != nil {
		return err
	}
	err := s.events.Delete(ctx, eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// AddOrganiser grants or replaces a role on the event.  Admin only.  A user
// holds at most one role per event; granting over an existing membership
// replaces it.
func (s *EventService) AddOrganiser(ctx context.Context, actorID, eventID, userID uint64, role model.OrganiserRole) error {
	if err := s.authz.RequireRoles(ctx, actorID, eventID, model.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.events.GetByID(ctx, eventID); errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("loading event: %w", err)
	}
	return s.organisers.Upsert(ctx, eventID, userID, role)
}

// ListOrganisers returns the memberships of an event.  Admin or staff.
func (s *EventService) ListOrganisers(ctx context.Context, actorID, eventID uint64) ([]model.EventOrganiser, error) {
	if err := s.authz.RequireRoles(ctx, actorID, eventID, model.RoleAdmin, model.RoleStaff); err != nil {
		return nil, err
	}
	return s.organisers.ListByEvent(ctx, eventID)
}

// CreateSession schedules a session inside an event.  Admin or staff.
func (s *EventService) CreateSession(ctx context.Context, userID uint64, sess *model.EventSession) (model.EventSession, error) {
	if err := s.authz.RequireRoles(ctx, userID, sess.EventID, model.RoleAdmin, model.RoleStaff); err != nil {
		return model.EventSession{}, err
	}
	if strings.TrimSpace(sess.Title) == "" || strings.TrimSpace(sess.Speaker) == "" ||
		sess.StartsAt.IsZero() || sess.EndsAt.IsZero() {
		return model.EventSession{}, ErrMissingParameter
	}
	id, err := s.sessions.Create(ctx, sess)
	if err != nil {
		return model.EventSession{}, fmt.Errorf("creating session: %w", err)
	}
	sess.ID = id
	return *sess, nil
}

// ListSessions returns the sessions of an event.  Public.
func (s *EventService) ListSessions(ctx context.Context, eventID uint64) ([]model.EventSession, error) {
	if _, err := s.events.GetByID(ctx, eventID); errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("loading event: %w", err)
	}
	return s.sessions.ListByEvent(ctx, eventID)
}
