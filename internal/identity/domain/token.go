package domain

import "time"

// TokenPair is what login and refresh return: the short-lived signed access
// token and the opaque refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken models a stored refresh token row. The raw token string never
// touches the database; TokenHash is its base64url SHA-256 fingerprint and is
// the unique lookup key. UserID is a weak reference: the owning user may have
// been deleted externally, which lookups must treat as an invalid token.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PasswordResetToken models a stored one-time reset token row. A row is
// consumable iff !Used and the current time is strictly before ExpiresAt.
type PasswordResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
