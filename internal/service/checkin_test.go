package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gatherly/event-backend/internal/model"
	"github.com/gatherly/event-backend/internal/queue"
)

type checkinFixture struct {
	svc           *CheckInService
	tickets       *fakeTicketStore
	registrations *fakeRegistrationStore
	events        *fakeEventStore
	memberships   *fakeMembershipStore
	published     []queue.CheckInRecordedEvent
	eventID       uint64
}

func newCheckinFixture(t *testing.T) *checkinFixture {
	t.Helper()
	f := &checkinFixture{
		tickets:       newFakeTicketStore(),
		registrations: newFakeRegistrationStore(),
		events:        newFakeEventStore(),
		memberships:   newFakeMembershipStore(),
	}
	e := sampleEvent("Checkin Test Event")
	id, err := f.events.Create(context.Background(), &e)
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}
	f.eventID = id

	authz := NewAuthorizer(f.memberships)
	f.svc = NewCheckInService(f.tickets, f.registrations, f.events, newFakeCheckInStore(), authz,
		func(_ context.Context, ev queue.CheckInRecordedEvent) error {
			f.published = append(f.published, ev)
			return nil
		})
	return f
}

func (f *checkinFixture) seed(t *testing.T, status model.RegistrationStatus, qr string) uint64 {
	t.Helper()
	ctx := context.Background()
	reg := model.EventRegistration{
		EventID: f.eventID, Name: "Ada", Email: "ada@example.com", Phone: "1",
		QRCode: "reg-" + qr, Status: status,
	}
	regID, err := f.registrations.Create(ctx, &reg)
	if err != nil {
		t.Fatalf("seed registration: %v", err)
	}
	if qr != "" {
		if _, err := f.tickets.Create(ctx, &model.Ticket{RegistrationID: regID, QRCode: qr}); err != nil {
			t.Fatalf("seed ticket: %v", err)
		}
	}
	return regID
}

func TestScanQR(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	const volunteer = uint64(3)

	if err := f.memberships.Upsert(ctx, f.eventID, volunteer, model.RoleVolunteer); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	regID := f.seed(t, model.RegistrationConfirmed, "ticket-qr-1")

	gate := "north"
	ci, err := f.svc.ScanQR(ctx, volunteer, "ticket-qr-1", &gate, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if ci.RegistrationID != regID {
		t.Fatalf("checked in registration %d, want %d", ci.RegistrationID, regID)
	}
	if ci.Gate == nil || *ci.Gate != "north" {
		t.Fatalf("gate = %v", ci.Gate)
	}

	if len(f.published) != 1 {
		t.Fatalf("published %d events, want 1", len(f.published))
	}
	msg := f.published[0]
	if msg.RegistrationID != regID || msg.EventTitle != "Checkin Test Event" || msg.AttendeeName != "Ada" {
		t.Fatalf("unexpected published event: %+v", msg)
	}

	// Second scan of the same ticket is a duplicate.
	if _, err := f.svc.ScanQR(ctx, volunteer, "ticket-qr-1", &gate, nil); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("duplicate scan: got %v, want ErrAlreadyCheckedIn", err)
	}
}

func TestScanQRGates(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	const staff, outsider = uint64(2), uint64(9)

	if err := f.memberships.Upsert(ctx, f.eventID, staff, model.RoleStaff); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := f.svc.ScanQR(ctx, staff, "", nil, nil); !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("empty qr: got %v, want ErrMissingParameter", err)
	}
	if _, err := f.svc.ScanQR(ctx, staff, "no-such-ticket", nil, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown qr: got %v, want ErrNotFound", err)
	}

	f.seed(t, model.RegistrationPending, "unpaid-qr")
	if _, err := f.svc.ScanQR(ctx, staff, "unpaid-qr", nil, nil); !errors.Is(err, ErrRegistrationNotPaid) {
		t.Fatalf("unpaid: got %v, want ErrRegistrationNotPaid", err)
	}

	f.seed(t, model.RegistrationConfirmed, "paid-qr")
	if _, err := f.svc.ScanQR(ctx, outsider, "paid-qr", nil, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("outsider: got %v, want ErrForbidden", err)
	}
	if len(f.published) != 0 {
		t.Fatalf("rejected scans published %d events", len(f.published))
	}
}

func TestCheckInRegistrationDirect(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	const staff = uint64(2)

	if err := f.memberships.Upsert(ctx, f.eventID, staff, model.RoleStaff); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// A confirmed registration with no ticket at all can still be checked
	// in at the desk.
	regID := f.seed(t, model.RegistrationConfirmed, "")
	ci, err := f.svc.CheckInRegistration(ctx, staff, regID, nil, nil)
	if err != nil {
		t.Fatalf("desk check-in: %v", err)
	}
	if ci.RegistrationID != regID {
		t.Fatalf("checked in registration %d, want %d", ci.RegistrationID, regID)
	}

	// The desk path shares the duplicate gate with the scanner.
	if _, err := f.svc.CheckInRegistration(ctx, staff, regID, nil, nil); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("duplicate desk check-in: got %v, want ErrAlreadyCheckedIn", err)
	}

	if _, err := f.svc.CheckInRegistration(ctx, staff, 999, nil, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown registration: got %v, want ErrNotFound", err)
	}
}

func TestCheckInSurvivesPublishFailure(t *testing.T) {
	f := newCheckinFixture(t)
	ctx := context.Background()
	const staff = uint64(2)

	if err := f.memberships.Upsert(ctx, f.eventID, staff, model.RoleStaff); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	regID := f.seed(t, model.RegistrationConfirmed, "")

	f.svc.publish = func(context.Context, queue.CheckInRecordedEvent) error {
		return errors.New("broker down")
	}
	if _, err := f.svc.CheckInRegistration(ctx, staff, regID, nil, nil); err != nil {
		t.Fatalf("check-in failed with broker down: %v", err)
	}
}
