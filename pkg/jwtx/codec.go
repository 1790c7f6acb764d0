// Package jwtx implements the stateless token codec: compact signed tokens
// carrying subject, claims, issued-at and expiry, signed with a single
// process-wide HMAC secret (HS256). Secret rotation is out of scope.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed        = errors.New("jwtx: malformed token")
	ErrInvalidSignature = errors.New("jwtx: invalid signature")
	ErrExpired          = errors.New("jwtx: token expired")
)

// Codec signs and verifies tokens. The zero value is not usable; construct
// with NewCodec.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewCodec builds a Codec from the shared signing secret. now is injected
// for testability; pass nil to use time.Now.
func NewCodec(secret string, accessTTL, refreshTTL time.Duration, now func() time.Time) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("jwtx: signing secret must not be empty")
	}
	if now == nil {
		now = time.Now
	}
	return &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        now,
	}, nil
}

// IssueAccessToken mints a short-lived token with subject=userID and the
// user's email as a claim.
func (c *Codec) IssueAccessToken(userID, email string) (string, error) {
	return c.sign(newClaims(userID, email, c.accessTTL, c.now()))
}

// IssueRefreshToken mints a longer-lived token with subject=userID and no
// email claim.
func (c *Codec) IssueRefreshToken(userID string) (string, error) {
	return c.sign(newClaims(userID, "", c.refreshTTL, c.now()))
}

// AccessTTL reports the configured access token lifetime.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL reports the configured refresh token lifetime.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// Verify validates the token string and returns its parsed claims. It fails
// with ErrInvalidSignature when the MAC check fails, ErrExpired when the
// current time is at or past expiry, and ErrMalformed when the structure
// cannot be parsed. Only HS256 is accepted.
func (c *Codec) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		default:
			return Claims{}, ErrMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	return *claims, nil
}

func (c *Codec) sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}
