package sqlite

import (
	"context"
	"time"

	"github.com/logisticsfuture/identity/internal/identity/domain"
)

type refreshTokensRepo struct {
	db dbtx
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt.UTC(),
	)
	if err != nil {
		return mapConflict(err)
	}
	return nil
}

func (r *refreshTokensRepo) GetValidRefreshToken(
	ctx context.Context,
	hash string,
	now time.Time,
) (domain.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, created_at, updated_at
		 FROM refresh_tokens
		 WHERE token_hash = ? AND expires_at > ?`,
		hash, now.UTC(),
	)

	var t domain.RefreshToken
	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return t, nil
}

// RotateRefreshToken is a single conditional UPDATE keyed on the old hash, so
// concurrent rotations of the same token have exactly one winner; the loser
// matches zero rows and gets ErrNotFound.
func (r *refreshTokensRepo) RotateRefreshToken(
	ctx context.Context,
	oldHash, newHash string,
	expiresAt, now time.Time,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens
		 SET token_hash = ?, expires_at = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE token_hash = ? AND expires_at > ?`,
		newHash, expiresAt.UTC(), oldHash, now.UTC(),
	)
	if err != nil {
		return mapConflict(err)
	}
	return requireRowAffected(res)
}

func (r *refreshTokensRepo) DeleteRefreshToken(ctx context.Context, hash string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE token_hash = ?`, hash)
	return err
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= ?`, now.UTC())
	return err
}
