package model

import "time"

// User mirrors the 'users' table.  The Role field is a free-form account
// label (e.g. "user", "organiser"); authorisation decisions never read it —
// they go through per-event organiser memberships instead.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username (unique)
	Email        string    // users.email (unique)
	Role         string    // users.role
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
