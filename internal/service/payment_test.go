package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gatherly/event-backend/internal/model"
)

func newPaymentFixture(t *testing.T) (*PaymentService, *fakeRegistrationStore, uint64) {
	t.Helper()
	registrations := newFakeRegistrationStore()
	payments := newFakePaymentStore()

	reg := model.EventRegistration{
		EventID: 1, Name: "Ada", Email: "ada@example.com", Phone: "1",
		QRCode: "qr-1", Status: model.RegistrationPending,
	}
	id, err := registrations.Create(context.Background(), &reg)
	if err != nil {
		t.Fatalf("seed registration: %v", err)
	}
	return NewPaymentService(payments, registrations), registrations, id
}

func TestPaymentLifecycle(t *testing.T) {
	svc, registrations, regID := newPaymentFixture(t)
	ctx := context.Background()

	p, err := svc.Initiate(ctx, regID, 2500, "eur")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if p.Status != model.PaymentPending || p.Currency != "EUR" {
		t.Fatalf("unexpected payment: %+v", p)
	}

	done, err := svc.Complete(ctx, p.ID, "txn-123")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != model.PaymentCompleted {
		t.Fatalf("status = %q, want completed", done.Status)
	}
	if done.TransactionRef == nil || *done.TransactionRef != "txn-123" {
		t.Fatalf("transaction ref = %v", done.TransactionRef)
	}

	// Completing the payment confirms the registration.
	reg, err := registrations.GetByID(ctx, regID)
	if err != nil {
		t.Fatalf("get registration: %v", err)
	}
	if reg.Status != model.RegistrationConfirmed {
		t.Fatalf("registration status = %q, want confirmed", reg.Status)
	}
}

func TestPaymentFailureLeavesRegistrationPending(t *testing.T) {
	svc, registrations, regID := newPaymentFixture(t)
	ctx := context.Background()

	p, err := svc.Initiate(ctx, regID, 2500, "")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if p.Currency != "USD" {
		t.Fatalf("default currency = %q, want USD", p.Currency)
	}

	failed, err := svc.Fail(ctx, p.ID, "txn-err")
	if err != nil {
		t.Fatalf("fail: %v", err)
	}
	if failed.Status != model.PaymentFailed {
		t.Fatalf("status = %q, want failed", failed.Status)
	}

	reg, err := registrations.GetByID(ctx, regID)
	if err != nil {
		t.Fatalf("get registration: %v", err)
	}
	if reg.Status != model.RegistrationPending {
		t.Fatalf("registration status = %q, want pending", reg.Status)
	}
}

func TestPaymentValidation(t *testing.T) {
	svc, _, regID := newPaymentFixture(t)
	ctx := context.Background()

	if _, err := svc.Initiate(ctx, regID, 0, "USD"); !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("zero amount: got %v", err)
	}
	if _, err := svc.Initiate(ctx, 999, 100, "USD"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown registration: got %v", err)
	}

	p, err := svc.Initiate(ctx, regID, 100, "USD")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if _, err := svc.Complete(ctx, p.ID, "  "); !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("blank transaction ref: got %v", err)
	}
	if _, err := svc.Complete(ctx, 999, "txn"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown payment: got %v", err)
	}
}
