package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func TestAccessToken_RoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	if tok.Token == "" {
		t.Fatal("token string should not be empty")
	}
	if remaining := time.Until(tok.Exp); remaining <= 0 || remaining > time.Minute {
		t.Errorf("expiry should fall within the ttl window, got %v", remaining)
	}

	uid, err := ParseAccessToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if uid != 42 {
		t.Errorf("subject = %d, want 42", uid)
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	// Zero ttl puts exp at the current instant; the boundary itself must
	// already count as expired.
	tok, err := NewAccessToken(testSecret, 7, 0)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}

	_, err = ParseAccessToken(testSecret, tok.Token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("error = %v, want ErrTokenExpired", err)
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 7, time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}

	_, err = ParseAccessToken("a-different-secret", tok.Token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestParseAccessToken_Garbage(t *testing.T) {
	for _, raw := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := ParseAccessToken(testSecret, raw); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("ParseAccessToken(%q) error = %v, want ErrTokenInvalid", raw, err)
		}
	}
}

func TestParseAccessToken_MissingSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().UTC().Add(time.Minute).Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := ParseAccessToken(testSecret, signed); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid for missing sub", err)
	}
}

func TestParseAccessToken_StringSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().UTC().Add(time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	uid, err := ParseAccessToken(testSecret, signed)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if uid != 42 {
		t.Errorf("subject = %d, want 42", uid)
	}
}
