package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gatherly/event-backend/internal/auth"
	"github.com/gatherly/event-backend/internal/config"
	"github.com/gatherly/event-backend/internal/model"
	"github.com/gatherly/event-backend/internal/repository"
)

// TokenPair is what a successful login or refresh hands back.  Refresh is
// the raw opaque string — the only moment it exists outside the client.
// After a non-rotating refresh exchange Refresh is empty: the client keeps
// using the token it already holds.
type TokenPair struct {
	Access     auth.AccessToken
	Refresh    string
	RefreshExp time.Time
}

// ResetToken is the outcome of a password reset request.  Deliverying it to
// the user (email or otherwise) is out of scope, so it is returned directly.
type ResetToken struct {
	Token string
	Exp   time.Time
}

// Authenticator orchestrates registration, login, token refresh, logout and
// the password reset lifecycle.  It holds no state of its own beyond the
// immutable configuration; all durable state lives behind the store
// interfaces.
type Authenticator struct {
	secret          string
	accessTTL       time.Duration
	refreshTTL      time.Duration
	resetTTL        time.Duration
	rotateOnRefresh bool
	revokeOnReset   bool

	users   UserStore
	refresh RefreshTokenStore
	resets  ResetTokenStore
}

func NewAuthenticator(cfg config.Config, users UserStore, refresh RefreshTokenStore, resets ResetTokenStore) *Authenticator {
	return &Authenticator{
		secret:          cfg.JWTSecret,
		accessTTL:       time.Duration(cfg.AccessTTLMin) * time.Minute,
		refreshTTL:      time.Duration(cfg.RefreshTTLDays) * 24 * time.Hour,
		resetTTL:        time.Duration(cfg.ResetTTLMin) * time.Minute,
		rotateOnRefresh: cfg.RotateOnRefresh,
		revokeOnReset:   cfg.RevokeOnReset,
		users:           users,
		refresh:         refresh,
		resets:          resets,
	}
}

// Register creates a user account.  Both unique fields are checked before
// the insert, email first; the insert itself still maps constraint races to
// the same typed errors.
func (a *Authenticator) Register(ctx context.Context, username, email, password, role string) (model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return model.User{}, ErrMissingParameter
	}
	if role == "" {
		role = "user"
	}

	if _, err := a.users.GetByEmail(ctx, email); err == nil {
		return model.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.User{}, fmt.Errorf("checking email: %w", err)
	}
	if _, err := a.users.GetByUsername(ctx, username); err == nil {
		return model.User{}, ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.User{}, fmt.Errorf("checking username: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}
	id, err := a.users.Create(ctx, username, email, hash, role)
	switch {
	case errors.Is(err, repository.ErrEmailExists):
		return model.User{}, ErrDuplicateEmail
	case errors.Is(err, repository.ErrUsernameExists):
		return model.User{}, ErrDuplicateUsername
	case err != nil:
		return model.User{}, fmt.Errorf("creating user: %w", err)
	}

	return model.User{ID: id, Username: username, Email: email, Role: role}, nil
}

// Login resolves the identifier against email first, then username, and
// verifies the password.  Unknown identifier and wrong password both come
// back as ErrInvalidCredentials so the endpoint cannot be used to enumerate
// accounts.
func (a *Authenticator) Login(ctx context.Context, identifier, password string) (model.User, TokenPair, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return model.User{}, TokenPair{}, ErrMissingParameter
	}

	u, err := a.users.GetByEmail(ctx, strings.ToLower(identifier))
	if errors.Is(err, repository.ErrNotFound) {
		u, err = a.users.GetByUsername(ctx, identifier)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, TokenPair{}, fmt.Errorf("looking up user: %w", err)
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		return model.User{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := a.issueTokens(ctx, u.ID)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token.  By
// default the refresh token itself stays valid and is not rotated; with
// rotation enabled the old token is revoked and the returned pair carries
// its replacement.
func (a *Authenticator) Refresh(ctx context.Context, rawRefresh string) (TokenPair, error) {
	rawRefresh = strings.TrimSpace(rawRefresh)
	if rawRefresh == "" {
		return TokenPair{}, ErrMissingParameter
	}

	hash := auth.HashOpaque(rawRefresh)
	userID, err := a.refresh.ValidateRefresh(ctx, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return TokenPair{}, ErrInvalidRefresh
	}
	if err != nil {
		return TokenPair{}, fmt.Errorf("validating refresh token: %w", err)
	}

	// A valid token whose account has since been deleted must fail the
	// same way as a bad token.
	if _, err := a.users.GetByID(ctx, userID); errors.Is(err, repository.ErrNotFound) {
		return TokenPair{}, ErrInvalidRefresh
	} else if err != nil {
		return TokenPair{}, fmt.Errorf("loading user: %w", err)
	}

	if !a.rotateOnRefresh {
		access, err := auth.NewAccessToken(a.secret, userID, a.accessTTL)
		if err != nil {
			return TokenPair{}, fmt.Errorf("issuing access token: %w", err)
		}
		return TokenPair{Access: access}, nil
	}

	if err := a.refresh.Revoke(ctx, hash); err != nil {
		return TokenPair{}, fmt.Errorf("revoking refresh token: %w", err)
	}
	return a.issueTokens(ctx, userID)
}

// Logout revokes a specific refresh token.  Revoking one that is already
// revoked succeeds; a token that was never issued is ErrNotFound.
func (a *Authenticator) Logout(ctx context.Context, rawRefresh string) error {
	rawRefresh = strings.TrimSpace(rawRefresh)
	if rawRefresh == "" {
		return ErrMissingParameter
	}
	err := a.refresh.Revoke(ctx, auth.HashOpaque(rawRefresh))
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// CurrentUser resolves an access token to the account it names.  Any decode
// failure, and a subject that no longer exists, surface uniformly as
// ErrUnauthenticated.
func (a *Authenticator) CurrentUser(ctx context.Context, rawAccess string) (model.User, error) {
	userID, err := auth.ParseAccessToken(a.secret, rawAccess)
	if err != nil {
		return model.User{}, ErrUnauthenticated
	}
	u, err := a.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, ErrUnauthenticated
	}
	if err != nil {
		return model.User{}, fmt.Errorf("loading user: %w", err)
	}
	return u, nil
}

// RequestPasswordReset issues a short-lived one-time reset token for the
// account behind the email.
func (a *Authenticator) RequestPasswordReset(ctx context.Context, email string) (ResetToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ResetToken{}, ErrMissingParameter
	}
	u, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return ResetToken{}, ErrNotFound
	}
	if err != nil {
		return ResetToken{}, fmt.Errorf("looking up user: %w", err)
	}

	raw, err := auth.NewOpaqueToken()
	if err != nil {
		return ResetToken{}, fmt.Errorf("generating reset token: %w", err)
	}
	exp := time.Now().UTC().Add(a.resetTTL)
	if err := a.resets.Store(ctx, u.ID, auth.HashOpaque(raw), exp); err != nil {
		return ResetToken{}, fmt.Errorf("storing reset token: %w", err)
	}
	return ResetToken{Token: raw, Exp: exp}, nil
}

// ConfirmPasswordReset consumes a reset token and installs the new
// password.  Missing, used and expired tokens are rejected with the same
// error — the checks are deliberately not reported separately.
func (a *Authenticator) ConfirmPasswordReset(ctx context.Context, rawReset, newPassword string) error {
	rawReset = strings.TrimSpace(rawReset)
	if rawReset == "" || newPassword == "" {
		return ErrMissingParameter
	}

	t, err := a.resets.Lookup(ctx, auth.HashOpaque(rawReset))
	if errors.Is(err, repository.ErrNotFound) {
		return ErrResetInvalidOrExpired
	}
	if err != nil {
		return fmt.Errorf("looking up reset token: %w", err)
	}
	if t.Used || !time.Now().UTC().Before(t.ExpiresAt) {
		return ErrResetInvalidOrExpired
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := a.users.UpdatePasswordHash(ctx, t.UserID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Account deleted since the token was issued.
			return ErrResetInvalidOrExpired
		}
		return fmt.Errorf("updating password: %w", err)
	}
	if err := a.resets.MarkUsed(ctx, t.ID); err != nil {
		return fmt.Errorf("consuming reset token: %w", err)
	}
	if a.revokeOnReset {
		if err := a.refresh.RevokeAllForUser(ctx, t.UserID); err != nil {
			return fmt.Errorf("revoking sessions: %w", err)
		}
	}
	return nil
}

// issueTokens mints an access token and a fresh refresh token, persisting
// only the refresh token's hash.
func (a *Authenticator) issueTokens(ctx context.Context, userID uint64) (TokenPair, error) {
	access, err := auth.NewAccessToken(a.secret, userID, a.accessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issuing access token: %w", err)
	}
	raw, err := auth.NewOpaqueToken()
	if err != nil {
		return TokenPair{}, fmt.Errorf("issuing refresh token: %w", err)
	}
	exp := time.Now().UTC().Add(a.refreshTTL)
	if err := a.refresh.StoreRefresh(ctx, userID, auth.HashOpaque(raw), exp); err != nil {
		return TokenPair{}, fmt.Errorf("storing refresh token: %w", err)
	}
	return TokenPair{Access: access, Refresh: raw, RefreshExp: exp}, nil
}
