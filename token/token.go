// Package token inspects persisted access tokens without verifying them.
// The session core uses the decoded claims only to decide whether a stored
// token is plausibly alive before spending a network round-trip on silent
// reauthentication. Signature verification is the server's job; nothing here
// may feed an authorization decision.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned for values that do not decode as a JWT.
var ErrMalformed = errors.New("token malformed")

// Info carries the advisory claims of a stored token.
type Info struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Inspect decodes the registered claims of raw without signature
// verification.
func Inspect(raw string) (*Info, error) {
	if raw == "" {
		return nil, ErrMalformed
	}

	parser := jwt.NewParser()
	claims := &jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, ErrMalformed
	}

	info := &Info{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// Expired reports whether the token carries an expiry in the past. Tokens
// without an expiry claim never report expired here; the server still has
// the final word.
func (i *Info) Expired(now time.Time) bool {
	if i == nil || i.ExpiresAt.IsZero() {
		return false
	}
	return now.After(i.ExpiresAt)
}
