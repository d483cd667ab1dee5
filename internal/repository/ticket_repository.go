package repository

import (
	"context"
	"database/sql"

	"github.com/gatherly/event-backend/internal/model"
)

// TicketRepo persists issued tickets.  The QR payload column is unique and
// indexed: it is what the door scanner resolves.
type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

// Create inserts a ticket and returns its ID.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tickets (registration_id, qr_code) VALUES (?,?)",
		t.RegistrationID, t.QRCode)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByQR resolves a ticket by its QR payload.
func (r *TicketRepo) GetByQR(ctx context.Context, qr string) (model.Ticket, error) {
	var t model.Ticket
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, registration_id, qr_code, issued_at FROM tickets WHERE qr_code=? LIMIT 1", qr).
		Scan(&t.ID, &t.RegistrationID, &t.QRCode, &t.IssuedAt)
	if err == sql.ErrNoRows {
		return model.Ticket{}, ErrNotFound
	}
	return t, err
}
