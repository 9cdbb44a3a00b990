package twofactor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process CodeStore for tests and local development.
// All operations are guarded by a single mutex, which trivially satisfies
// the mark-used-once guarantee.
type MemoryStore struct {
	mu    sync.Mutex
	codes []*OneTimeCode
}

// NewMemoryStore creates an empty in-memory code store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// CreateCode implements CodeStore.
func (s *MemoryStore) CreateCode(ctx context.Context, code *OneTimeCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *code
	s.codes = append(s.codes, &cp)
	return nil
}

// LatestActiveCode implements CodeStore.
func (s *MemoryStore) LatestActiveCode(ctx context.Context, userID uuid.UUID, purpose Purpose, now time.Time) (*OneTimeCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *OneTimeCode
	for _, c := range s.codes {
		if c.UserID != userID || c.Purpose != purpose || c.Used || c.ExpiresAt.Before(now) {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	if latest == nil {
		return nil, ErrCodeNotFound
	}

	cp := *latest
	return &cp, nil
}

// ConsumeCode implements CodeStore.
func (s *MemoryStore) ConsumeCode(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.codes {
		if c.ID == id {
			if c.Used {
				return false, nil
			}
			c.Used = true
			return true, nil
		}
	}
	return false, nil
}

// InvalidateCodes implements CodeStore.
func (s *MemoryStore) InvalidateCodes(ctx context.Context, userID uuid.UUID, purpose Purpose) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.codes {
		if c.UserID == userID && c.Purpose == purpose && !c.Used {
			c.Used = true
		}
	}
	return nil
}
