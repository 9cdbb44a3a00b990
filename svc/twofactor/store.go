package twofactor

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CodeStore persists one-time codes. Three implementations ship with the
// package: Postgres (durable, audit trail), Redis (cache-style, codes expire
// out), and in-memory (tests and local development).
type CodeStore interface {
	// CreateCode persists a new unused code row.
	CreateCode(ctx context.Context, code *OneTimeCode) error

	// LatestActiveCode returns the most recently issued unused, unexpired
	// code for (userID, purpose), or ErrCodeNotFound. Older live codes are
	// not authoritative: only the newest one can validate.
	LatestActiveCode(ctx context.Context, userID uuid.UUID, purpose Purpose, now time.Time) (*OneTimeCode, error)

	// ConsumeCode atomically flips used from false to true and reports
	// whether this call won the flip. Concurrent duplicate submissions race
	// here; exactly one caller observes true.
	ConsumeCode(ctx context.Context, id uuid.UUID) (bool, error)

	// InvalidateCodes marks every unused code for (userID, purpose) as used,
	// so stale codes cannot be replayed after a new one is requested.
	InvalidateCodes(ctx context.Context, userID uuid.UUID, purpose Purpose) error
}

// SubjectStore is the persistence collaborator for the subject's own 2FA
// state. It is consumed, not owned: the surrounding application decides how
// accounts are stored and hands the orchestrator this narrow surface.
type SubjectStore interface {
	// SetAuthenticatorKey stores the encrypted TOTP secret; an empty string
	// clears it.
	SetAuthenticatorKey(ctx context.Context, userID uuid.UUID, encryptedKey string) error

	// SetTwoFactorEnabled flips the subject's 2FA flag.
	SetTwoFactorEnabled(ctx context.Context, userID uuid.UUID, enabled bool) error
}
