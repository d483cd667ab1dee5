// Package service holds the transport-independent core: authentication and
// token lifecycles, the per-event RBAC check and the domain operations.
// Every failure surfaces as one of the typed errors below; translating them
// to HTTP statuses is entirely the handler layer's job.  Storage faults that
// fall outside the taxonomy propagate wrapped and end up as generic internal
// failures.
package service

import "errors"

var (
	// ErrMissingParameter means the caller omitted a required field.
	ErrMissingParameter = errors.New("missing parameter")

	// ErrDuplicateEmail / ErrDuplicateUsername reject registration on a
	// taken unique field.
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrInvalidCredentials covers both unknown identifier and wrong
	// password: the two must stay indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated means the access token is bad, expired or missing,
	// or the account behind it no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the caller is authenticated but holds no
	// sufficient role on the event in question.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the addressed resource is absent.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRefresh rejects a refresh exchange: the token is unknown,
	// revoked or past its window — which one is deliberately not said.
	ErrInvalidRefresh = errors.New("invalid refresh token")

	// ErrResetInvalidOrExpired rejects a password reset confirm for a
	// missing, used or expired token, without revealing which.
	ErrResetInvalidOrExpired = errors.New("invalid or expired reset token")

	// ErrDuplicateTitle rejects an event whose title is already taken.
	ErrDuplicateTitle = errors.New("event title already exists")

	// ErrRegistrationNotPaid gates tickets and check-ins on payment.
	ErrRegistrationNotPaid = errors.New("registration not paid")

	// ErrAlreadyCheckedIn rejects a second check-in for a registration.
	ErrAlreadyCheckedIn = errors.New("already checked in")
)
