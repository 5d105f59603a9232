package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiry reads the exp claim of a JWT without verifying its signature.
// The panel never trusts the claim for authorization; the API does that.
func tokenExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// cookieMaxAge is the session lifetime in seconds: the refresh token's
// remaining life when it is shorter than limit, limit otherwise.
func cookieMaxAge(refresh string, now time.Time, limit int) int {
	exp, ok := tokenExpiry(refresh)
	if !ok {
		return limit
	}
	left := int(exp.Sub(now) / time.Second)
	if left > 0 && left < limit {
		return left
	}
	return limit
}
