package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// Opaque tokens (refresh and password reset) are random strings with no
// embedded structure: knowing the JWT signing secret gives an attacker
// nothing here.  48 bytes of entropy encode to 96 URL-safe hex characters.
const opaqueTokenBytes = 48

// NewOpaqueToken returns a cryptographically random token string.
func NewOpaqueToken() (string, error) {
	buf := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashOpaque returns the SHA-256 hash of a raw opaque token as a hex string.
// Only hashes are persisted, so a leaked table cannot be replayed; lookups
// hash the presented token first.
func HashOpaque(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
