package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the subset of backend JWT claims the client cares about:
// expiry, and is_admin as a consistency check against the stored profile.
// The client has no signing secret, so the token is parsed without
// verification; it never carries an authorization decision (the backend
// re-validates every request).
type tokenClaims struct {
	IsAdmin   bool
	ExpiresAt time.Time
}

func parseToken(token string) (*tokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	tc := &tokenClaims{}
	if v, ok := claims["is_admin"].(bool); ok {
		tc.IsAdmin = v
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		tc.ExpiresAt = exp.Time
	}
	return tc, nil
}

// expired reports whether the token has an expiry in the past. Tokens
// without an exp claim never count as expired here.
func (c *tokenClaims) expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
