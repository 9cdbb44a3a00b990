package security

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vzoverflow/vzoverflow/pkg/pg"
)

// pgQuerier is satisfied by *pgxpool.Pool and pgx.Tx.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStorage is the Postgres-backed UserStorage.
type PGStorage struct {
	db pgQuerier
}

// NewPGStorage creates a Postgres-backed user storage.
func NewPGStorage(db pgQuerier) *PGStorage {
	return &PGStorage{db: db}
}

// UserByID implements UserStorage.
func (s *PGStorage) UserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, username, password_hash, two_factor_enabled, COALESCE(authenticator_key, '')
		FROM users
		WHERE id = $1`,
		id,
	)

	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.TwoFactorEnabled, &u.AuthenticatorKey); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdatePasswordHash implements UserStorage.
func (s *PGStorage) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	tag, err := s.db.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetAuthenticatorKey implements twofactor.SubjectStore. An empty key stores
// NULL so re-enrollment state is distinguishable in the table.
func (s *PGStorage) SetAuthenticatorKey(ctx context.Context, userID uuid.UUID, encryptedKey string) error {
	var key any
	if encryptedKey != "" {
		key = encryptedKey
	}
	tag, err := s.db.Exec(ctx, `UPDATE users SET authenticator_key = $2 WHERE id = $1`, userID, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetTwoFactorEnabled implements twofactor.SubjectStore.
func (s *PGStorage) SetTwoFactorEnabled(ctx context.Context, userID uuid.UUID, enabled bool) error {
	tag, err := s.db.Exec(ctx, `UPDATE users SET two_factor_enabled = $2 WHERE id = $1`, userID, enabled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
