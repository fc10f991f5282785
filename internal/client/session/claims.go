package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// peekClaims decodes the token as a JWT without verifying its signature and
// returns the role claim and expiry when present. The client has no signing
// key and never makes trust decisions from these values; they only feed the
// role fallback and the expiry shown in the prompt. An opaque (non-JWT)
// token yields zero values.
func peekClaims(token string) (role string, exp time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}
	}

	if r, ok := claims["role"].(string); ok {
		role = r
	}
	if e, err := claims.GetExpirationTime(); err == nil && e != nil {
		exp = e.Time
	}
	return role, exp
}
