package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims used across the service. The email claim is
// present on access tokens only; refresh tokens carry just the subject.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user (access tokens only)
	Email string `json:"email,omitempty"`
}

// newClaims builds minimally-correct claims. The random jti keeps two tokens
// minted in the same instant for the same subject distinct, which is what
// makes the refresh token string usable as a unique ledger key.
func newClaims(subject, email string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: email,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
