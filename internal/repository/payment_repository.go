package repository

import (
	"context"
	"database/sql"

	"github.com/gatherly/event-backend/internal/model"
)

type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

const paymentColumns = "id,registration_id,amount_cents,currency,status,transaction_ref,created_at,updated_at"

// Create inserts a pending payment and returns its ID.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO payments (registration_id, amount_cents, currency, status) VALUES (?,?,?,?)",
		p.RegistrationID, p.AmountCents, p.Currency, string(p.Status))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a payment by id.
func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (model.Payment, error) {
	var (
		p   model.Payment
		raw string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE id=? LIMIT 1", id).
		Scan(&p.ID, &p.RegistrationID, &p.AmountCents, &p.Currency, &raw, &p.TransactionRef,
			&p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Payment{}, ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	status, err := model.ParsePaymentStatus(raw)
	if err != nil {
		return model.Payment{}, err
	}
	p.Status = status
	return p, nil
}

// UpdateStatus records the outcome of a payment attempt in one statement.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, id uint64, status model.PaymentStatus, transactionRef string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE payments SET status=?, transaction_ref=?, updated_at=NOW() WHERE id=?",
		string(status), transactionRef, id)
	return err
}
