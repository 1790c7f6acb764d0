package sqlite

import (
	"context"
	"database/sql"

	"github.com/logisticsfuture/identity/internal/identity/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, first_name, last_name, phone_number, password_hash,
	terms_agreed, marketing_agreed, enabled, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (
			id, email, first_name, last_name, phone_number, password_hash,
			terms_agreed, marketing_agreed, enabled, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		u.ID, u.Email, u.FirstName, u.LastName, mapStringNull(u.PhoneNumber),
		u.PasswordHash, u.TermsAgreed, u.MarketingAgreed, u.Enabled,
	)
	if err != nil {
		return mapConflict(err)
	}
	return nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		newHash, userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var phone sql.NullString
	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &phone, &u.PasswordHash,
		&u.TermsAgreed, &u.MarketingAgreed, &u.Enabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.PhoneNumber = mapNullString(phone)
	return u, nil
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
