package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenUsable reports whether a bearer token is worth sending. Opaque tokens
// and JWTs without an exp claim are always sent; the server stays the judge
// of validity. The signature is not verified here.
func TokenUsable(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return now.Before(exp.Time)
}
