package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/gatherly/event-backend/internal/model"
)

type ticketFixture struct {
	svc           *TicketService
	registrations *fakeRegistrationStore
	memberships   *fakeMembershipStore
	eventID       uint64
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	tickets := newFakeTicketStore()
	registrations := newFakeRegistrationStore()
	memberships := newFakeMembershipStore()
	authz := NewAuthorizer(memberships)
	return &ticketFixture{
		svc:           NewTicketService(tickets, registrations, authz),
		registrations: registrations,
		memberships:   memberships,
		eventID:       1,
	}
}

func (f *ticketFixture) seedRegistration(t *testing.T, status model.RegistrationStatus) uint64 {
	t.Helper()
	reg := model.EventRegistration{
		EventID: f.eventID, Name: "Ada", Email: "ada@example.com", Phone: "1",
		QRCode: "reg-qr", Status: status,
	}
	id, err := f.registrations.Create(context.Background(), &reg)
	if err != nil {
		t.Fatalf("seed registration: %v", err)
	}
	return id
}

func TestIssueTicket(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	const staff = uint64(2)

	if err := f.memberships.Upsert(ctx, f.eventID, staff, model.RoleStaff); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	regID := f.seedRegistration(t, model.RegistrationConfirmed)

	ticket, png, err := f.svc.Issue(ctx, staff, regID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if ticket.ID == 0 || ticket.QRCode == "" {
		t.Fatalf("incomplete ticket: %+v", ticket)
	}
	raw, err := base64.StdEncoding.DecodeString(png)
	if err != nil {
		t.Fatalf("qr image is not base64: %v", err)
	}
	// PNG magic bytes.
	if len(raw) < 8 || raw[0] != 0x89 || string(raw[1:4]) != "PNG" {
		t.Fatal("qr image is not a PNG")
	}
}

func TestIssueTicketGates(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	const staff, volunteer = uint64(2), uint64(3)

	if err := f.memberships.Upsert(ctx, f.eventID, staff, model.RoleStaff); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := f.memberships.Upsert(ctx, f.eventID, volunteer, model.RoleVolunteer); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	pending := f.seedRegistration(t, model.RegistrationPending)
	if _, _, err := f.svc.Issue(ctx, staff, pending); !errors.Is(err, ErrRegistrationNotPaid) {
		t.Fatalf("unpaid registration: got %v, want ErrRegistrationNotPaid", err)
	}

	confirmed := f.seedRegistration(t, model.RegistrationConfirmed)
	if _, _, err := f.svc.Issue(ctx, volunteer, confirmed); !errors.Is(err, ErrForbidden) {
		t.Fatalf("volunteer issuing: got %v, want ErrForbidden", err)
	}

	if _, _, err := f.svc.Issue(ctx, staff, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown registration: got %v, want ErrNotFound", err)
	}
}
