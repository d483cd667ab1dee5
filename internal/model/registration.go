package model

import (
	"fmt"
	"time"
)

// RegistrationStatus is the closed set of states an attendee registration
// moves through.  A registration starts pending, becomes confirmed when its
// payment completes, and may be cancelled.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// ParseRegistrationStatus validates a stored status label.
func ParseRegistrationStatus(s string) (RegistrationStatus, error) {
	switch RegistrationStatus(s) {
	case RegistrationPending, RegistrationConfirmed, RegistrationCancelled:
		return RegistrationStatus(s), nil
	}
	return "", fmt.Errorf("unknown registration status %q", s)
}

// EventRegistration mirrors the 'event_registrations' table.  UserID is nil
// for guest registrations; name, email and phone are captured either way so
// the attendee record stands on its own.
type EventRegistration struct {
	ID           uint64             // event_registrations.id
	EventID      uint64             // event_registrations.event_id
	UserID       *uint64            // event_registrations.user_id (nullable, guest when nil)
	Name         string             // event_registrations.name
	Email        string             // event_registrations.email
	Phone        string             // event_registrations.phone
	QRCode       string             // event_registrations.qr_code
	Status       RegistrationStatus // event_registrations.status
	RegisteredAt time.Time          // event_registrations.registered_at
}

// CheckIn records one attendee passing a gate.  At most one check-in exists
// per registration; the duplicate gate lives in the check-in service.
type CheckIn struct {
	ID             uint64    // checkins.id
	RegistrationID uint64    // checkins.registration_id
	Gate           *string   // checkins.gate (nullable)
	DeviceID       *string   // checkins.device_id (nullable)
	CheckedInAt    time.Time // checkins.checked_in_at
}
