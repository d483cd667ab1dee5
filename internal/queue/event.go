// Package queue defines message payloads exchanged over the message broker
// and the background consumer that materialises them into the check-in log.
package queue

// CheckInRecordedEvent is published when an attendee passes a gate.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type CheckInRecordedEvent struct {
	CheckInID      uint64  `json:"checkin_id"`
	RegistrationID uint64  `json:"registration_id"`
	EventID        uint64  `json:"event_id"`
	EventTitle     string  `json:"event_title"`
	AttendeeName   string  `json:"attendee_name"`
	Gate           *string `json:"gate,omitempty"`
	DeviceID       *string `json:"device_id,omitempty"`
	CheckedInAt    string  `json:"checked_in_at"`
}
