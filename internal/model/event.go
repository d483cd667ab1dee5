package model

import (
	"fmt"
	"time"
)

// Event represents a managed event with a venue and a time window.
// This struct corresponds to a row in the `events` table.
type Event struct {
	ID          uint64    // events.id
	Title       string    // events.title (unique)
	Description *string   // events.description (nullable)
	Venue       string    // events.venue
	Address     string    // events.address
	StartsAt    time.Time // events.starts_at
	EndsAt      time.Time // events.ends_at
	CreatedBy   uint64    // events.created_by (user id)
	CreatedAt   time.Time // events.created_at
	UpdatedAt   time.Time // events.updated_at
}

// EventSession is a scheduled slot inside an event (talk, workshop, set).
type EventSession struct {
	ID          uint64    // event_sessions.id
	EventID     uint64    // event_sessions.event_id
	Title       string    // event_sessions.title
	Speaker     string    // event_sessions.speaker
	Description *string   // event_sessions.description (nullable)
	StartsAt    time.Time // event_sessions.starts_at
	EndsAt      time.Time // event_sessions.ends_at
}

// OrganiserRole is the closed set of roles a user can hold on one event.
// Roles are scoped strictly per (user, event) pair: holding a role on one
// event grants nothing on another.
type OrganiserRole string

const (
	RoleAdmin     OrganiserRole = "admin"
	RoleStaff     OrganiserRole = "staff"
	RoleVolunteer OrganiserRole = "volunteer"
)

// ParseOrganiserRole converts a stored or client-supplied label into an
// OrganiserRole, rejecting anything outside the closed set.
func ParseOrganiserRole(s string) (OrganiserRole, error) {
	switch OrganiserRole(s) {
	case RoleAdmin, RoleStaff, RoleVolunteer:
		return OrganiserRole(s), nil
	}
	return "", fmt.Errorf("unknown organiser role %q", s)
}

// EventOrganiser links a user to an event with exactly one role.  The
// (event_id, user_id) pair is unique, so an authorisation decision is a
// single lookup.
type EventOrganiser struct {
	ID      uint64        // event_organisers.id
	EventID uint64        // event_organisers.event_id
	UserID  uint64        // event_organisers.user_id
	Role    OrganiserRole // event_organisers.role
	AddedAt time.Time     // event_organisers.added_at
}
