// Package repository implements point lookups and single-statement mutations
// over MySQL.  Sentinel errors defined here let the service layer branch on
// failure kinds without inspecting driver errors: every repository maps
// sql.ErrNoRows to ErrNotFound and duplicate-key violations (MySQL error
// 1062) to the matching ErrXxxExists sentinel.
package repository

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a point lookup matches no row, or when
	// a token row exists but is revoked or past its expiry window.
	ErrNotFound = errors.New("not found")

	// ErrEmailExists and ErrUsernameExists surface unique-key violations
	// on user registration.
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")

	// ErrTitleExists surfaces the unique event title constraint.
	ErrTitleExists = errors.New("event title already exists")
)

// isDuplicate reports whether err is a MySQL duplicate-key violation.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
