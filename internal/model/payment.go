package model

import (
	"fmt"
	"time"
)

// PaymentStatus is the closed set of payment states.  This is a local state
// flag only; there is no settlement protocol behind it.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// ParsePaymentStatus validates a stored status label.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

// Payment mirrors the 'payments' table.  Amounts are integral cents.
type Payment struct {
	ID             uint64        // payments.id
	RegistrationID uint64        // payments.registration_id
	AmountCents    uint32        // payments.amount_cents
	Currency       string        // payments.currency
	Status         PaymentStatus // payments.status
	TransactionRef *string       // payments.transaction_ref (nullable until settled)
	CreatedAt      time.Time     // payments.created_at
	UpdatedAt      time.Time     // payments.updated_at
}
