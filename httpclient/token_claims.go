// httpclient/token_claims.go
package httpclient

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiresWithin reports whether token is a JWT whose exp falls within buffer of now.
// Opaque tokens and tokens without exp report false; the server's 401 decides for them.
// The signature is not checked, the client only needs the expiry hint.
func tokenExpiresWithin(token string, buffer time.Duration, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.Before(now.Add(buffer))
}
