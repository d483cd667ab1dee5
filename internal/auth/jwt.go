package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken represents a signed HS256 JWT along with its expiry.  Access
// tokens are short-lived, self-verifying and never persisted: validity is
// computed from the signature and the exp claim alone, which is what lets
// every request be checked without a store lookup.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

var (
	// ErrTokenExpired is returned when the token verified but its expiry
	// has passed.  The boundary counts: a token checked exactly at its
	// expiry instant is already expired.
	ErrTokenExpired = errors.New("access token expired")
	// ErrTokenInvalid covers everything else: bad signature, wrong
	// algorithm, missing or malformed subject.
	ErrTokenInvalid = errors.New("access token invalid")
)

// NewAccessToken builds and signs an HS256 JWT for a user.  The claims are
// the standard subject (sub), expiration (exp = now + ttl) and issued-at
// (iat).
func NewAccessToken(secret string, userID uint64, ttl time.Duration) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a raw token and
// returns the subject user ID.  Expiry is checked here rather than by the
// jwt library so that the boundary instant itself counts as expired.
func ParseAccessToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !tok.Valid {
		return 0, ErrTokenInvalid
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenInvalid
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, ErrTokenInvalid
	}
	if !time.Now().UTC().Before(exp.Time) {
		return 0, ErrTokenExpired
	}

	uid := subjectID(claims)
	if uid == 0 {
		return 0, ErrTokenInvalid
	}
	return uid, nil
}

// subjectID extracts the sub claim as a user ID.  JWT numeric values decode
// as float64; some producers encode numeric strings instead.
func subjectID(claims jwt.MapClaims) uint64 {
	switch v := claims["sub"].(type) {
	case float64:
		if v > 0 {
			return uint64(v)
		}
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
