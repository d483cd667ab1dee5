package service

import (
	"context"
	"time"

	"github.com/gatherly/event-backend/internal/model"
	"github.com/gatherly/event-backend/internal/repository"
)

// In-memory store fakes.  They mirror the repository contracts, including
// signalling absent rows with repository.ErrNotFound, so services behave
// exactly as they do against MySQL.

type fakeUserStore struct {
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint64]model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, username, email, passwordHash, role string) (uint64, error) {
	for _, u := range f.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
		if u.Username == username {
			return 0, repository.ErrUsernameExists
		}
	}
	f.nextID++
	f.users[f.nextID] = model.User{
		ID: f.nextID, Username: username, Email: email,
		PasswordHash: passwordHash, Role: role,
	}
	return f.nextID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) UpdatePasswordHash(_ context.Context, id uint64, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	f.users[id] = u
	return nil
}

type fakeRefreshStore struct {
	nextID uint64
	tokens map[uint64]model.RefreshToken
}

func newFakeRefreshStore() *fakeRefreshStore {
	return &fakeRefreshStore{tokens: make(map[uint64]model.RefreshToken)}
}

func (f *fakeRefreshStore) StoreRefresh(_ context.Context, userID uint64, tokenHash string, exp time.Time) error {
	f.nextID++
	f.tokens[f.nextID] = model.RefreshToken{
		ID: f.nextID, UserID: userID, TokenHash: tokenHash, ExpiresAt: exp,
	}
	return nil
}

func (f *fakeRefreshStore) ValidateRefresh(_ context.Context, tokenHash string) (uint64, error) {
	for _, t := range f.tokens {
		if t.TokenHash != tokenHash {
			continue
		}
		if t.RevokedAt != nil || !time.Now().UTC().Before(t.ExpiresAt) {
			return 0, repository.ErrNotFound
		}
		return t.UserID, nil
	}
	return 0, repository.ErrNotFound
}

func (f *fakeRefreshStore) Revoke(_ context.Context, tokenHash string) error {
	for id, t := range f.tokens {
		if t.TokenHash == tokenHash {
			if t.RevokedAt == nil {
				now := time.Now().UTC()
				t.RevokedAt = &now
				f.tokens[id] = t
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRefreshStore) RevokeAllForUser(_ context.Context, userID uint64) error {
	now := time.Now().UTC()
	for id, t := range f.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
			f.tokens[id] = t
		}
	}
	return nil
}

func (f *fakeRefreshStore) activeCount(userID uint64) int {
	n := 0
	for _, t := range f.tokens {
		if t.UserID == userID && t.RevokedAt == nil && time.Now().UTC().Before(t.ExpiresAt) {
			n++
		}
	}
	return n
}

type fakeResetStore struct {
	nextID uint64
	tokens map[uint64]model.PasswordResetToken
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{tokens: make(map[uint64]model.PasswordResetToken)}
}

func (f *fakeResetStore) Store(_ context.Context, userID uint64, tokenHash string, exp time.Time) error {
	f.nextID++
	f.tokens[f.nextID] = model.PasswordResetToken{
		ID: f.nextID, UserID: userID, TokenHash: tokenHash, ExpiresAt: exp,
	}
	return nil
}

func (f *fakeResetStore) Lookup(_ context.Context, tokenHash string) (model.PasswordResetToken, error) {
	for _, t := range f.tokens {
		if t.TokenHash == tokenHash {
			return t, nil
		}
	}
	return model.PasswordResetToken{}, repository.ErrNotFound
}

func (f *fakeResetStore) MarkUsed(_ context.Context, id uint64) error {
	t, ok := f.tokens[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.Used = true
	f.tokens[id] = t
	return nil
}

type membershipKey struct{ eventID, userID uint64 }

type fakeMembershipStore struct {
	nextID uint64
	roles  map[membershipKey]model.EventOrganiser
}

func newFakeMembershipStore() *fakeMembershipStore {
	return &fakeMembershipStore{roles: make(map[membershipKey]model.EventOrganiser)}
}

func (f *fakeMembershipStore) GetRole(_ context.Context, userID, eventID uint64) (model.OrganiserRole, error) {
	m, ok := f.roles[membershipKey{eventID, userID}]
	if !ok {
		return "", repository.ErrNotFound
	}
	return m.Role, nil
}

func (f *fakeMembershipStore) Upsert(_ context.Context, eventID, userID uint64, role model.OrganiserRole) error {
	key := membershipKey{eventID, userID}
	if m, ok := f.roles[key]; ok {
		m.Role = role
		f.roles[key] = m
		return nil
	}
	f.nextID++
	f.roles[key] = model.EventOrganiser{
		ID: f.nextID, EventID: eventID, UserID: userID, Role: role, AddedAt: time.Now().UTC(),
	}
	return nil
}

func (f *fakeMembershipStore) ListByEvent(_ context.Context, eventID uint64) ([]model.EventOrganiser, error) {
	var out []model.EventOrganiser
	for key, m := range f.roles {
		if key.eventID == eventID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeEventStore struct {
	nextID uint64
	events map[uint64]model.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[uint64]model.Event)}
}

func (f *fakeEventStore) Create(_ context.Context, e *model.Event) (uint64, error) {
	for _, existing := range f.events {
		if existing.Title == e.Title {
			return 0, repository.ErrTitleExists
		}
	}
	f.nextID++
	stored := *e
	stored.ID = f.nextID
	f.events[f.nextID] = stored
	return f.nextID, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id uint64) (model.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return model.Event{}, repository.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventStore) List(_ context.Context) ([]model.Event, error) {
	var out []model.Event
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventStore) Update(_ context.Context, e *model.Event) error {
	if _, ok := f.events[e.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range f.events {
		if id != e.ID && existing.Title == e.Title {
			return repository.ErrTitleExists
		}
	}
	f.events[e.ID] = *e
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

type fakeSessionStore struct {
	nextID   uint64
	sessions map[uint64]model.EventSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uint64]model.EventSession)}
}

func (f *fakeSessionStore) Create(_ context.Context, s *model.EventSession) (uint64, error) {
	f.nextID++
	stored := *s
	stored.ID = f.nextID
	f.sessions[f.nextID] = stored
	return f.nextID, nil
}

func (f *fakeSessionStore) ListByEvent(_ context.Context, eventID uint64) ([]model.EventSession, error) {
	var out []model.EventSession
	for _, s := range f.sessions {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeRegistrationStore struct {
	nextID        uint64
	registrations map[uint64]model.EventRegistration
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{registrations: make(map[uint64]model.EventRegistration)}
}

func (f *fakeRegistrationStore) Create(_ context.Context, reg *model.EventRegistration) (uint64, error) {
	f.nextID++
	stored := *reg
	stored.ID = f.nextID
	stored.RegisteredAt = time.Now().UTC()
	f.registrations[f.nextID] = stored
	return f.nextID, nil
}

func (f *fakeRegistrationStore) GetByID(_ context.Context, id uint64) (model.EventRegistration, error) {
	r, ok := f.registrations[id]
	if !ok {
		return model.EventRegistration{}, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeRegistrationStore) ListByEvent(_ context.Context, eventID uint64) ([]model.EventRegistration, error) {
	var out []model.EventRegistration
	for _, r := range f.registrations {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRegistrationStore) UpdateStatus(_ context.Context, id uint64, status model.RegistrationStatus) error {
	r, ok := f.registrations[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.Status = status
	f.registrations[id] = r
	return nil
}

type fakeTicketStore struct {
	nextID  uint64
	tickets map[uint64]model.Ticket
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{tickets: make(map[uint64]model.Ticket)}
}

func (f *fakeTicketStore) Create(_ context.Context, t *model.Ticket) (uint64, error) {
	f.nextID++
	stored := *t
	stored.ID = f.nextID
	f.tickets[f.nextID] = stored
	return f.nextID, nil
}

func (f *fakeTicketStore) GetByQR(_ context.Context, qr string) (model.Ticket, error) {
	for _, t := range f.tickets {
		if t.QRCode == qr {
			return t, nil
		}
	}
	return model.Ticket{}, repository.ErrNotFound
}

type fakeCheckInStore struct {
	nextID   uint64
	checkins map[uint64]model.CheckIn
}

func newFakeCheckInStore() *fakeCheckInStore {
	return &fakeCheckInStore{checkins: make(map[uint64]model.CheckIn)}
}

func (f *fakeCheckInStore) Create(_ context.Context, c *model.CheckIn) (uint64, error) {
	f.nextID++
	stored := *c
	stored.ID = f.nextID
	f.checkins[f.nextID] = stored
	return f.nextID, nil
}

func (f *fakeCheckInStore) ExistsForRegistration(_ context.Context, registrationID uint64) (bool, error) {
	for _, c := range f.checkins {
		if c.RegistrationID == registrationID {
			return true, nil
		}
	}
	return false, nil
}

type fakePaymentStore struct {
	nextID   uint64
	payments map[uint64]model.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[uint64]model.Payment)}
}

func (f *fakePaymentStore) Create(_ context.Context, p *model.Payment) (uint64, error) {
	f.nextID++
	stored := *p
	stored.ID = f.nextID
	f.payments[f.nextID] = stored
	return f.nextID, nil
}

func (f *fakePaymentStore) GetByID(_ context.Context, id uint64) (model.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return model.Payment{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePaymentStore) UpdateStatus(_ context.Context, id uint64, status model.PaymentStatus, transactionRef string) error {
	p, ok := f.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	p.TransactionRef = &transactionRef
	f.payments[id] = p
	return nil
}
