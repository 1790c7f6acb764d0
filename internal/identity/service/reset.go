package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/logisticsfuture/identity/internal/identity/domain"
	"github.com/logisticsfuture/identity/internal/identity/store"
	"github.com/logisticsfuture/identity/pkg/cryptox"
	"github.com/logisticsfuture/identity/pkg/idx"
	"github.com/logisticsfuture/identity/pkg/slogx"
)

// ForgotPassword issues a single-use reset token for the account behind
// email and dispatches it via the notifier. An unknown email succeeds
// silently with no side effect so account existence never leaks.
//
// The ledger insert is committed before the notification is attempted: a
// notifier failure surfaces as ErrNotificationFailed but the token row
// remains persisted, so a retried send (or out-of-band delivery) can still
// use it before it expires.
func (s *AuthService) ForgotPassword(ctx context.Context, in ForgotPasswordInput) error {
	l := slogx.FromContext(ctx)

	if err := in.Validate(); err != nil {
		return err
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Debug("forgot-password for unknown email")
			return nil
		}
		return err
	}

	// Independent single-use secret, not a codec token.
	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return err
	}

	row := domain.PasswordResetToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(raw),
		ExpiresAt: s.now().Add(s.ResetTTL),
	}
	if err := s.Store.ResetTokens().CreateResetToken(ctx, row); err != nil {
		return err
	}

	link := s.ResetURLBase + "?token=" + url.QueryEscape(raw)
	body := fmt.Sprintf(
		"Hi %s,\n\nA password reset was requested for your account. "+
			"Use the link below within the next hour:\n\n%s\n\n"+
			"If you did not request this, you can ignore this message.\n",
		u.FirstName, link,
	)

	if err := s.Notifier.Send(ctx, u.Email, "Password reset request", body); err != nil {
		l.Error("reset notification failed", "user_id", u.ID, "error", err)
		return ErrNotificationFailed
	}

	l.Info("reset token issued", "user_id", u.ID)

	return nil
}

// ResetPassword consumes a reset token and replaces the account's password
// hash. The hash update and the used flag are applied in one transaction:
// either both land or neither does. A consumed token can never be replayed.
func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	l := slogx.FromContext(ctx)

	if err := in.Validate(); err != nil {
		return err
	}
	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}

	now := s.now()
	fp := cryptox.FingerprintToken(in.Token)

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return err
	}

	var userID string

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		row, err := tx.ResetTokens().GetConsumableResetToken(ctx, fp, now)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidOrExpiredToken
			}
			return err
		}

		u, err := tx.Users().GetUserByID(ctx, row.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				l.Warn("reset token references missing user", "user_id", row.UserID)
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
			return err
		}
		if err := tx.ResetTokens().MarkResetTokenUsed(ctx, fp); err != nil {
			return err
		}

		userID = u.ID
		return nil
	})
	if err != nil {
		return err
	}

	l.Info("password reset completed", "user_id", userID)

	return nil
}
