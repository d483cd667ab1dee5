package repository

import (
	"context"
	"database/sql"

	"github.com/gatherly/event-backend/internal/model"
)

type CheckInRepo struct{ DB *sql.DB }

func NewCheckInRepo(db *sql.DB) *CheckInRepo { return &CheckInRepo{DB: db} }

// Create records a check-in and returns its ID.
func (r *CheckInRepo) Create(ctx context.Context, c *model.CheckIn) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO checkins (registration_id, gate, device_id) VALUES (?,?,?)",
		c.RegistrationID, c.Gate, c.DeviceID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ExistsForRegistration reports whether the registration has already been
// checked in.
func (r *CheckInRepo) ExistsForRegistration(ctx context.Context, registrationID uint64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM checkins WHERE registration_id=?)",
		registrationID).Scan(&exists)
	return exists, err
}
