package store

import (
	"context"
	"errors"
	"time"

	"github.com/logisticsfuture/identity/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	ResetTokens() ResetTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle multi-step mutations that must be atomic
	// (e.g. password reset consumption).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login, registration and forgot-password.
	// The email comparison is case-sensitive, exactly as stored.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email (or phone number) unique
	// constraint is violated, which covers the concurrent-registration race.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash replaces the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token row. A user may hold any
	// number of live rows; only the token hash is unique.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetValidRefreshToken returns the row for hash only while
	// now < expires_at. Expired rows behave as ErrNotFound even though they
	// are not physically deleted.
	GetValidRefreshToken(ctx context.Context, hash string, now time.Time) (domain.RefreshToken, error)

	// RotateRefreshToken atomically replaces the token hash and expiry of the
	// still-valid row identified by oldHash. It is a single conditional
	// update: when two callers race on the same oldHash exactly one wins and
	// the other gets ErrNotFound.
	RotateRefreshToken(ctx context.Context, oldHash, newHash string, expiresAt, now time.Time) error

	// DeleteRefreshToken removes the row for hash. Idempotent: deleting a
	// missing row is not an error.
	DeleteRefreshToken(ctx context.Context, hash string) error

	// DeleteExpiredRefreshTokens is housekeeping; reads never depend on it.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error
}

type ResetTokens interface {
	// CreateResetToken inserts a one-time reset token row with used=false.
	CreateResetToken(ctx context.Context, t domain.PasswordResetToken) error

	// GetConsumableResetToken returns the row for hash only while
	// used=false and now < expires_at.
	GetConsumableResetToken(ctx context.Context, hash string, now time.Time) (domain.PasswordResetToken, error)

	// MarkResetTokenUsed sets used=true. Once set the row is never returned
	// by GetConsumableResetToken again, even before natural expiry.
	MarkResetTokenUsed(ctx context.Context, hash string) error

	// DeleteExpiredResetTokens is housekeeping; reads never depend on it.
	DeleteExpiredResetTokens(ctx context.Context, now time.Time) error
}
