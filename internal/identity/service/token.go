package service

import (
	"context"
	"errors"

	"github.com/logisticsfuture/identity/internal/identity/domain"
	"github.com/logisticsfuture/identity/internal/identity/store"
	"github.com/logisticsfuture/identity/pkg/cryptox"
	"github.com/logisticsfuture/identity/pkg/slogx"
)

// Refresh exchanges a still-valid refresh token for a new access/refresh
// pair and rotates the ledger row in place. Rotation is a single conditional
// update keyed on the old fingerprint: two callers racing on the same token
// see exactly one winner, the loser gets ErrInvalidOrExpiredToken.
func (s *AuthService) Refresh(ctx context.Context, in RefreshInput) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if err := in.Validate(); err != nil {
		return domain.TokenPair{}, err
	}

	now := s.now()
	fp := cryptox.FingerprintToken(in.RefreshToken)

	rt, err := s.Store.RefreshTokens().GetValidRefreshToken(ctx, fp, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidOrExpiredToken
		}
		return domain.TokenPair{}, err
	}

	// The owning user may have been deleted after issuance; the ledger row
	// is a weak reference.
	u, err := s.Store.Users().GetUserByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("refresh token references missing user", "user_id", rt.UserID)
			return domain.TokenPair{}, ErrUserNotFound
		}
		return domain.TokenPair{}, err
	}

	pair, newRow, err := s.issuePair(u)
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := s.Store.RefreshTokens().RotateRefreshToken(ctx, fp, newRow.TokenHash, newRow.ExpiresAt, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Lost the rotation race; the token was already rotated.
			return domain.TokenPair{}, ErrInvalidOrExpiredToken
		}
		return domain.TokenPair{}, err
	}

	l.Debug("refresh token rotated", "user_id", u.ID)

	return pair, nil
}

// Logout deletes the ledger row for the given refresh token. The token must
// still be valid; logging out twice with the same token fails the second
// time with ErrInvalidOrExpiredToken. Access tokens are stateless and keep
// working until they expire.
func (s *AuthService) Logout(ctx context.Context, in LogoutInput) error {
	l := slogx.FromContext(ctx)

	if err := in.Validate(); err != nil {
		return err
	}

	now := s.now()
	fp := cryptox.FingerprintToken(in.RefreshToken)

	rt, err := s.Store.RefreshTokens().GetValidRefreshToken(ctx, fp, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return err
	}

	if err := s.Store.RefreshTokens().DeleteRefreshToken(ctx, fp); err != nil {
		return err
	}

	l.Info("logout succeeded", "user_id", rt.UserID)

	return nil
}
