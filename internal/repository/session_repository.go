package repository

import (
	"context"
	"database/sql"

	"github.com/gatherly/event-backend/internal/model"
)

type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts a session under an event and returns its ID.
func (r *SessionRepo) Create(ctx context.Context, s *model.EventSession) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO event_sessions (event_id, title, speaker, description, starts_at, ends_at) VALUES (?,?,?,?,?,?)",
		s.EventID, s.Title, s.Speaker, s.Description, s.StartsAt, s.EndsAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByEvent returns the sessions of an event ordered by start time.
func (r *SessionRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.EventSession, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, event_id, title, speaker, description, starts_at, ends_at FROM event_sessions WHERE event_id=? ORDER BY starts_at",
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.EventSession
	for rows.Next() {
		var s model.EventSession
		if err := rows.Scan(&s.ID, &s.EventID, &s.Title, &s.Speaker, &s.Description, &s.StartsAt, &s.EndsAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
