package sqlite

import (
	"context"
	"time"

	"github.com/logisticsfuture/identity/internal/identity/domain"
)

type resetTokensRepo struct {
	db dbtx
}

func (r *resetTokensRepo) CreateResetToken(ctx context.Context, t domain.PasswordResetToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO password_reset_tokens (id, user_id, token_hash, expires_at, used, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt.UTC(),
	)
	if err != nil {
		return mapConflict(err)
	}
	return nil
}

func (r *resetTokensRepo) GetConsumableResetToken(
	ctx context.Context,
	hash string,
	now time.Time,
) (domain.PasswordResetToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, used, created_at, updated_at
		 FROM password_reset_tokens
		 WHERE token_hash = ? AND used = 0 AND expires_at > ?`,
		hash, now.UTC(),
	)

	var t domain.PasswordResetToken
	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.Used, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.PasswordResetToken{}, mapNotFound(err)
	}
	return t, nil
}

// MarkResetTokenUsed only flips rows that are still unused, so a second
// consumer racing on the same token observes ErrNotFound.
func (r *resetTokensRepo) MarkResetTokenUsed(ctx context.Context, hash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE password_reset_tokens
		 SET used = 1, updated_at = CURRENT_TIMESTAMP
		 WHERE token_hash = ? AND used = 0`,
		hash,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *resetTokensRepo) DeleteExpiredResetTokens(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE expires_at <= ?`, now.UTC())
	return err
}
