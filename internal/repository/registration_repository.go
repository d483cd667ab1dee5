package repository

import (
	"context"
	"database/sql"

	"github.com/gatherly/event-backend/internal/model"
)

type RegistrationRepo struct{ DB *sql.DB }

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{DB: db} }

const registrationColumns = "id,event_id,user_id,name,email,phone,qr_code,status,registered_at"

// Create inserts a registration and returns its ID.  UserID may be nil for
// guest registrations.
func (r *RegistrationRepo) Create(ctx context.Context, reg *model.EventRegistration) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO event_registrations (event_id, user_id, name, email, phone, qr_code, status) VALUES (?,?,?,?,?,?,?)",
		reg.EventID, reg.UserID, reg.Name, reg.Email, reg.Phone, reg.QRCode, string(reg.Status))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a registration by id.
func (r *RegistrationRepo) GetByID(ctx context.Context, id uint64) (model.EventRegistration, error) {
	var (
		reg model.EventRegistration
		raw string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+registrationColumns+" FROM event_registrations WHERE id=? LIMIT 1", id).
		Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Name, &reg.Email, &reg.Phone,
			&reg.QRCode, &raw, &reg.RegisteredAt)
	if err == sql.ErrNoRows {
		return model.EventRegistration{}, ErrNotFound
	}
	if err != nil {
		return model.EventRegistration{}, err
	}
	status, err := model.ParseRegistrationStatus(raw)
	if err != nil {
		return model.EventRegistration{}, err
	}
	reg.Status = status
	return reg, nil
}

// ListByEvent returns all registrations of an event, newest first.
func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.EventRegistration, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+registrationColumns+" FROM event_registrations WHERE event_id=? ORDER BY registered_at DESC",
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.EventRegistration
	for rows.Next() {
		var (
			reg model.EventRegistration
			raw string
		)
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Name, &reg.Email,
			&reg.Phone, &reg.QRCode, &raw, &reg.RegisteredAt); err != nil {
			return nil, err
		}
		status, err := model.ParseRegistrationStatus(raw)
		if err != nil {
			return nil, err
		}
		reg.Status = status
		out = append(out, reg)
	}
	return out, rows.Err()
}

// UpdateStatus moves a registration to a new state.  Setting the status it
// already holds is a no-op, not an error, so callers verify existence with
// GetByID first.
func (r *RegistrationRepo) UpdateStatus(ctx context.Context, id uint64, status model.RegistrationStatus) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE event_registrations SET status=? WHERE id=?", string(status), id)
	return err
}
