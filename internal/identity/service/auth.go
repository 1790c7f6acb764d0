package service

import (
	"context"
	"errors"
	"time"

	"github.com/logisticsfuture/identity/internal/identity/domain"
	"github.com/logisticsfuture/identity/internal/identity/notify"
	"github.com/logisticsfuture/identity/internal/identity/store"
	"github.com/logisticsfuture/identity/pkg/cryptox"
	"github.com/logisticsfuture/identity/pkg/idx"
	"github.com/logisticsfuture/identity/pkg/jwtx"
	"github.com/logisticsfuture/identity/pkg/slogx"
)

var (
	ErrPasswordMismatch      = errors.New("password_mismatch")
	ErrEmailTaken            = errors.New("email_taken")
	ErrInvalidCredentials    = errors.New("invalid_credentials")
	ErrInvalidOrExpiredToken = errors.New("invalid_or_expired_token")
	ErrUserNotFound          = errors.New("user_not_found")
	ErrNotificationFailed    = errors.New("notification_failed")
)

// dummyHash is verified against when a login email resolves to no user, so
// the unknown-email and wrong-password paths cost roughly the same.
var dummyHash = func() string {
	h, err := cryptox.HashPassword(mustRandom())
	if err != nil {
		panic(err)
	}
	return h
}()

func mustRandom() string {
	t, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		panic(err)
	}
	return t
}

// AuthService is the credential and session-lifecycle orchestrator. All six
// operations validate input first, then run the corresponding state machine
// against the store.
type AuthService struct {
	Store    store.Store
	Codec    *jwtx.Codec
	Notifier notify.Notifier

	ResetTTL     time.Duration
	ResetURLBase string // reset link prefix, token is appended as ?token=

	// Now is injected for tests; nil means time.Now.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates a new account with enabled=true and returns the public
// projection. Duplicate emails surface as ErrEmailTaken, including the
// concurrent-registration race, which the unique constraint resolves.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.PublicUser, error) {
	l := slogx.FromContext(ctx)

	if err := in.Validate(); err != nil {
		return domain.PublicUser{}, err
	}
	if in.Password != in.ConfirmPassword {
		return domain.PublicUser{}, ErrPasswordMismatch
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.PublicUser{}, err
	}

	u := domain.User{
		ID:              idx.New().String(),
		Email:           in.Email,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		PhoneNumber:     in.PhoneNumber,
		PasswordHash:    hash,
		TermsAgreed:     in.TermsAgreed,
		MarketingAgreed: in.MarketingAgreed,
		Enabled:         true,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicUser{}, ErrEmailTaken
		}
		return domain.PublicUser{}, err
	}

	l.Info("user registered", "user_id", u.ID)

	return u.Public(), nil
}

// Login verifies the credentials and issues a fresh access/refresh pair. The
// refresh token is recorded in the ledger by fingerprint. Unknown email and
// wrong password collapse into ErrInvalidCredentials; neither the error nor
// the latency distinguishes them. Existing sessions are left untouched.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if err := in.Validate(); err != nil {
		return domain.TokenPair{}, err
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(in.Password, dummyHash)
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(in.Password, u.PasswordHash); err != nil {
		l.Info("login password verification failed", "user_id", u.ID)
		return domain.TokenPair{}, ErrInvalidCredentials
	}
	if !u.Enabled {
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, refreshRow, err := s.issuePair(u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, refreshRow); err != nil {
		return domain.TokenPair{}, err
	}

	l.Info("login succeeded", "user_id", u.ID)

	return pair, nil
}

// issuePair mints an access/refresh token pair for u and builds the ledger
// row for the refresh token. The caller persists the row.
func (s *AuthService) issuePair(u domain.User) (domain.TokenPair, domain.RefreshToken, error) {
	access, err := s.Codec.IssueAccessToken(u.ID, u.Email)
	if err != nil {
		return domain.TokenPair{}, domain.RefreshToken{}, err
	}
	refresh, err := s.Codec.IssueRefreshToken(u.ID)
	if err != nil {
		return domain.TokenPair{}, domain.RefreshToken{}, err
	}

	row := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(refresh),
		ExpiresAt: s.now().Add(s.Codec.RefreshTTL()),
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, row, nil
}
