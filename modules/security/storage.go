package security

import (
	"context"

	"github.com/google/uuid"

	"github.com/vzoverflow/vzoverflow/svc/twofactor"
)

// User is the account view this module needs: identity, credential hash, and
// second-factor state.
type User struct {
	ID               uuid.UUID
	Email            string
	Username         string
	PasswordHash     string
	TwoFactorEnabled bool
	AuthenticatorKey string
}

// Subject converts the user to the twofactor subject shape.
func (u *User) Subject() twofactor.Subject {
	return twofactor.Subject{
		ID:               u.ID,
		Email:            u.Email,
		Username:         u.Username,
		TwoFactorEnabled: u.TwoFactorEnabled,
		AuthenticatorKey: u.AuthenticatorKey,
	}
}

// UserStorage is everything the security module reads and writes about users.
// It embeds twofactor.SubjectStore so one implementation can back both this
// module and the twofactor orchestrator.
type UserStorage interface {
	twofactor.SubjectStore

	// UserByID loads a user; ErrUserNotFound when absent.
	UserByID(ctx context.Context, id uuid.UUID) (*User, error)

	// UpdatePasswordHash replaces the stored bcrypt hash.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}
