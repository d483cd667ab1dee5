package model

import "time"

// Ticket mirrors the 'tickets' table.  A ticket exists only for confirmed
// (paid) registrations and carries the unique QR payload the scanner
// resolves at the door.
type Ticket struct {
	ID             uint64    // tickets.id
	RegistrationID uint64    // tickets.registration_id
	QRCode         string    // tickets.qr_code (unique)
	IssuedAt       time.Time // tickets.issued_at
}
