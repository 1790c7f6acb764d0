package domain

import "time"

// User is the stored account record. PasswordHash is an Argon2id PHC string
// and must never leave the service boundary.
type User struct {
	ID              string
	Email           string // unique, compared case-sensitively as stored
	FirstName       string
	LastName        string
	PhoneNumber     string // optional, unique when set
	PasswordHash    string
	TermsAgreed     bool
	MarketingAgreed bool
	Enabled         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PublicUser is the projection returned to callers after registration.
// It deliberately carries no credential material.
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Public returns the caller-safe projection of u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
