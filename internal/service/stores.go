package service

import (
	"context"
	"time"

	"github.com/gatherly/event-backend/internal/model"
)

// Store contracts consumed by the services.  The repository package
// satisfies all of them against MySQL; tests substitute in-memory fakes.
// Implementations signal absent rows with repository.ErrNotFound.

type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash, role string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdatePasswordHash(ctx context.Context, id uint64, passwordHash string) error
}

type RefreshTokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

type ResetTokenStore interface {
	Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	Lookup(ctx context.Context, tokenHash string) (model.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id uint64) error
}

type MembershipStore interface {
	GetRole(ctx context.Context, userID, eventID uint64) (model.OrganiserRole, error)
	Upsert(ctx context.Context, eventID, userID uint64, role model.OrganiserRole) error
	ListByEvent(ctx context.Context, eventID uint64) ([]model.EventOrganiser, error)
}

type EventStore interface {
	Create(ctx context.Context, e *model.Event) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id uint64) error
}

type SessionStore interface {
	Create(ctx context.Context, s *model.EventSession) (uint64, error)
	ListByEvent(ctx context.Context, eventID uint64) ([]model.EventSession, error)
}

type RegistrationStore interface {
	Create(ctx context.Context, reg *model.EventRegistration) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.EventRegistration, error)
	ListByEvent(ctx context.Context, eventID uint64) ([]model.EventRegistration, error)
	UpdateStatus(ctx context.Context, id uint64, status model.RegistrationStatus) error
}

type TicketStore interface {
	Create(ctx context.Context, t *model.Ticket) (uint64, error)
	GetByQR(ctx context.Context, qr string) (model.Ticket, error)
}

type CheckInStore interface {
	Create(ctx context.Context, c *model.CheckIn) (uint64, error)
	ExistsForRegistration(ctx context.Context, registrationID uint64) (bool, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *model.Payment) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Payment, error)
	UpdateStatus(ctx context.Context, id uint64, status model.PaymentStatus, transactionRef string) error
}
