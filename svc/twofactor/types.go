package twofactor

import (
	"time"

	"github.com/google/uuid"
)

// Purpose scopes a one-time code to a single authorization context. A code
// issued for one purpose never validates against another, even for the same
// subject and digit string.
type Purpose string

const (
	PurposeLogin             Purpose = "login"
	PurposeEnableTwoFactor   Purpose = "enable_two_factor"
	PurposeDisableTwoFactor  Purpose = "disable_two_factor"
	PurposeChangePassword    Purpose = "change_password"
	PurposeEmailVerification Purpose = "email_verification"
)

// Valid reports whether p is one of the closed set of purposes.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeLogin, PurposeEnableTwoFactor, PurposeDisableTwoFactor,
		PurposeChangePassword, PurposeEmailVerification:
		return true
	}
	return false
}

// OneTimeCode is a single emailed verification code. Code is a zero-padded
// 6-digit string and is compared as text throughout; it never round-trips
// through an integer type, or leading zeros would be lost.
//
// Lifecycle: created unused, flipped to used exactly once, either by a
// successful consuming validation or by bulk invalidation. Expiry is not a
// stored state; it is derived from ExpiresAt at validation time. Rows are
// never deleted, leaving an audit trail of issued codes.
type OneTimeCode struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Code      string
	Purpose   Purpose
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Subject is the orchestrator's view of a user account. The caller owns the
// underlying record; this struct carries just what second-factor decisions
// need.
type Subject struct {
	ID               uuid.UUID
	Email            string
	Username         string
	TwoFactorEnabled bool

	// AuthenticatorKey is the AES-encrypted TOTP secret, empty when the
	// subject has no authenticator enrolled. A subject with 2FA enabled and
	// an empty key uses the email code path.
	AuthenticatorKey string
}

// usesAuthenticator reports whether verification should go through the TOTP
// engine rather than emailed codes.
func (s Subject) usesAuthenticator() bool {
	return s.TwoFactorEnabled && s.AuthenticatorKey != ""
}
