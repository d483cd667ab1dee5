package model

import "time"

// RefreshToken mirrors the 'refresh_tokens' table.  Only the SHA-256 hash
// of the raw token is stored; the raw string leaves the server exactly once,
// in the login or refresh response.  Rows are never deleted — revocation
// sets RevokedAt, forming an append-only revocation log.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash (unique)
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

// PasswordResetToken mirrors the 'password_reset_tokens' table.  A token is
// single-use: Used flips to true on a successful confirm and the row is
// never eligible again, even before ExpiresAt.
type PasswordResetToken struct {
	ID        uint64    // password_reset_tokens.id
	UserID    uint64    // password_reset_tokens.user_id
	TokenHash string    // password_reset_tokens.token_hash (unique)
	ExpiresAt time.Time // password_reset_tokens.expires_at
	Used      bool      // password_reset_tokens.used
	CreatedAt time.Time // password_reset_tokens.created_at
}
