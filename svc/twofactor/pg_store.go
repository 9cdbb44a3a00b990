package twofactor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vzoverflow/vzoverflow/pkg/pg"
)

// pgQuerier is satisfied by *pgxpool.Pool and pgx.Tx, so the store works
// inside a caller-managed transaction as well as directly on the pool.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore is the durable CodeStore. Rows are never deleted; consumed and
// expired codes remain as an audit trail of every code ever issued.
type PGStore struct {
	db pgQuerier
}

// NewPGStore creates a Postgres-backed code store.
func NewPGStore(db pgQuerier) *PGStore {
	return &PGStore{db: db}
}

// CreateCode implements CodeStore.
func (s *PGStore) CreateCode(ctx context.Context, code *OneTimeCode) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO one_time_codes (id, user_id, code, purpose, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		code.ID, code.UserID, code.Code, string(code.Purpose), code.ExpiresAt, code.Used, code.CreatedAt,
	)
	return err
}

// LatestActiveCode implements CodeStore.
func (s *PGStore) LatestActiveCode(ctx context.Context, userID uuid.UUID, purpose Purpose, now time.Time) (*OneTimeCode, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, code, purpose, expires_at, used, created_at
		FROM one_time_codes
		WHERE user_id = $1 AND purpose = $2 AND used = FALSE AND expires_at >= $3
		ORDER BY created_at DESC
		LIMIT 1`,
		userID, string(purpose), now,
	)

	var c OneTimeCode
	var p string
	if err := row.Scan(&c.ID, &c.UserID, &c.Code, &p, &c.ExpiresAt, &c.Used, &c.CreatedAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	c.Purpose = Purpose(p)

	return &c, nil
}

// ConsumeCode implements CodeStore. The WHERE clause is the compare-and-set:
// the UPDATE only lands if the row is still unused, so of any number of
// concurrent consumers exactly one sees an affected row.
func (s *PGStore) ConsumeCode(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE one_time_codes SET used = TRUE
		WHERE id = $1 AND used = FALSE`,
		id,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// InvalidateCodes implements CodeStore.
func (s *PGStore) InvalidateCodes(ctx context.Context, userID uuid.UUID, purpose Purpose) error {
	_, err := s.db.Exec(ctx, `
		UPDATE one_time_codes SET used = TRUE
		WHERE user_id = $1 AND purpose = $2 AND used = FALSE`,
		userID, string(purpose),
	)
	return err
}
