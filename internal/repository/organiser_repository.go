package repository

import (
	"context"
	"database/sql"

	"github.com/gatherly/event-backend/internal/model"
)

// OrganiserRepo persists event memberships.  The (event_id, user_id) pair
// is unique, so a role decision is a single point lookup.
type OrganiserRepo struct{ DB *sql.DB }

func NewOrganiserRepo(db *sql.DB) *OrganiserRepo { return &OrganiserRepo{DB: db} }

// GetRole returns the role a user holds on an event, or ErrNotFound when no
// membership exists.
func (r *OrganiserRepo) GetRole(ctx context.Context, userID, eventID uint64) (model.OrganiserRole, error) {
	var raw string
	err := r.DB.QueryRowContext(ctx,
		"SELECT role FROM event_organisers WHERE user_id=? AND event_id=? LIMIT 1",
		userID, eventID).Scan(&raw)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return model.ParseOrganiserRole(raw)
}

// Upsert grants or replaces a user's role on an event in one statement, so
// the at-most-one-role invariant holds without a read-modify-write cycle.
func (r *OrganiserRepo) Upsert(ctx context.Context, eventID, userID uint64, role model.OrganiserRole) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO event_organisers (event_id, user_id, role) VALUES (?,?,?) ON DUPLICATE KEY UPDATE role=VALUES(role)",
		eventID, userID, string(role))
	return err
}

// ListByEvent returns all memberships of an event.
func (r *OrganiserRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.EventOrganiser, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, event_id, user_id, role, added_at FROM event_organisers WHERE event_id=?",
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.EventOrganiser
	for rows.Next() {
		var (
			o   model.EventOrganiser
			raw string
		)
		if err := rows.Scan(&o.ID, &o.EventID, &o.UserID, &raw, &o.AddedAt); err != nil {
			return nil, err
		}
		role, err := model.ParseOrganiserRole(raw)
		if err != nil {
			return nil, err
		}
		o.Role = role
		out = append(out, o)
	}
	return out, rows.Err()
}
