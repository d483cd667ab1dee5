package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gatherly/event-backend/internal/model"
	"github.com/gatherly/event-backend/internal/repository"
)

// PaymentService tracks payment state for registrations.  This is a local
// flag, not a settlement protocol: completing a payment records the
// caller-supplied transaction reference and confirms the registration.
type PaymentService struct {
	payments      PaymentStore
	registrations RegistrationStore
}

func NewPaymentService(payments PaymentStore, registrations RegistrationStore) *PaymentService {
	return &PaymentService{payments: payments, registrations: registrations}
}

// Initiate creates a pending payment for a registration.
func (s *PaymentService) Initiate(ctx context.Context, registrationID uint64, amountCents uint32, currency string) (model.Payment, error) {
	if amountCents == 0 {
		return model.Payment{}, ErrMissingParameter
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}

	if _, err := s.registrations.GetByID(ctx, registrationID); errors.Is(err, repository.ErrNotFound) {
		return model.Payment{}, ErrNotFound
	} else if err != nil {
		return model.Payment{}, fmt.Errorf("loading registration: %w", err)
	}

	p := model.Payment{
		RegistrationID: registrationID,
		AmountCents:    amountCents,
		Currency:       currency,
		Status:         model.PaymentPending,
	}
	id, err := s.payments.Create(ctx, &p)
	if err != nil {
		return model.Payment{}, fmt.Errorf("creating payment: %w", err)
	}
	p.ID = id
	return p, nil
}

// Complete marks a payment completed and flips its registration to
// confirmed, which is what makes the attendee ticketable.
func (s *PaymentService) Complete(ctx context.Context, paymentID uint64, transactionRef string) (model.Payment, error) {
	return s.settle(ctx, paymentID, transactionRef, model.PaymentCompleted)
}

// Fail marks a payment failed.  The registration stays pending.
func (s *PaymentService) Fail(ctx context.Context, paymentID uint64, transactionRef string) (model.Payment, error) {
	return s.settle(ctx, paymentID, transactionRef, model.PaymentFailed)
}

func (s *PaymentService) settle(ctx context.Context, paymentID uint64, transactionRef string, status model.PaymentStatus) (model.Payment, error) {
	transactionRef = strings.TrimSpace(transactionRef)
	if transactionRef == "" {
		return model.Payment{}, ErrMissingParameter
	}

	p, err := s.payments.GetByID(ctx, paymentID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Payment{}, ErrNotFound
	}
	if err != nil {
		return model.Payment{}, fmt.Errorf("loading payment: %w", err)
	}

	if err := s.payments.UpdateStatus(ctx, paymentID, status, transactionRef); err != nil {
		return model.Payment{}, fmt.Errorf("updating payment: %w", err)
	}
	if status == model.PaymentCompleted {
		if err := s.registrations.UpdateStatus(ctx, p.RegistrationID, model.RegistrationConfirmed); err != nil {
			return model.Payment{}, fmt.Errorf("confirming registration: %w", err)
		}
	}

	p.Status = status
	p.TransactionRef = &transactionRef
	return p, nil
}
