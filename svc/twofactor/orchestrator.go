package twofactor

import (
	"context"
	"io"
	"log/slog"

	"github.com/vzoverflow/vzoverflow/pkg/clock"
	"github.com/vzoverflow/vzoverflow/pkg/logger"
	"github.com/vzoverflow/vzoverflow/pkg/totp"
)

// Service is the coordination layer callers (login, security settings) talk
// to. It selects which engine applies to a subject (TOTP against the stored
// authenticator key, or emailed one-time codes) and owns the enable/disable
// state transitions. It implements no cryptography and no storage of its own.
type Service struct {
	codes         *CodeService
	subjects      SubjectStore
	clk           clock.Clock
	log           *slog.Logger
	issuer        string
	encryptionKey []byte
}

// ServiceOption configures the orchestrator.
type ServiceOption func(*Service)

// WithServiceClock replaces the time source used for TOTP validation.
func WithServiceClock(c clock.Clock) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.clk = c
		}
	}
}

// WithServiceLogger sets a custom logger.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithServiceIssuer sets the issuer shown in authenticator apps.
func WithServiceIssuer(issuer string) ServiceOption {
	return func(s *Service) {
		if issuer != "" {
			s.issuer = issuer
		}
	}
}

// NewService wires the orchestrator. encryptionKey is the AES-256 key that
// protects authenticator secrets at rest (totp.LoadEncryptionKey).
func NewService(codes *CodeService, subjects SubjectStore, encryptionKey []byte, opts ...ServiceOption) *Service {
	s := &Service{
		codes:         codes,
		subjects:      subjects,
		clk:           clock.System(),
		log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		issuer:        "VzOverFlow",
		encryptionKey: encryptionKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Codes exposes the underlying one-time code service for flows that always
// use a transient emailed code regardless of the subject's standing 2FA
// method (email verification at signup, change-password confirmation).
func (s *Service) Codes() *CodeService {
	return s.codes
}

// AuthenticatorSetup is handed to the caller to render enrollment UI.
type AuthenticatorSetup struct {
	Secret          string // Base32 secret, shown once during setup
	ProvisioningURI string // feed to a QR renderer
	ManualEntryKey  string // "ABCD EFGH ..." for typing by hand
}

// BeginAuthenticatorSetup creates a fresh secret for the subject, stores it
// encrypted, and returns the provisioning material. 2FA is NOT enabled yet;
// the subject must first prove the enrollment worked via
// ConfirmAuthenticatorSetup. A repeated call issues a brand-new secret,
// abandoning the previous unconfirmed one.
func (s *Service) BeginAuthenticatorSetup(ctx context.Context, subject Subject) (*AuthenticatorSetup, error) {
	secret, err := totp.GenerateSecretKey()
	if err != nil {
		return nil, err
	}

	uri, err := totp.ProvisioningURI(totp.KeyParams{
		Secret:      secret,
		AccountName: subject.Email,
		Issuer:      s.issuer,
	})
	if err != nil {
		return nil, err
	}

	encrypted, err := totp.EncryptKey(secret, s.encryptionKey)
	if err != nil {
		return nil, err
	}
	if err := s.subjects.SetAuthenticatorKey(ctx, subject.ID, encrypted); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "authenticator setup started", logger.UserID(subject.ID))

	return &AuthenticatorSetup{
		Secret:          secret,
		ProvisioningURI: uri,
		ManualEntryKey:  totp.FormatKeyForManualEntry(secret),
	}, nil
}

// ConfirmAuthenticatorSetup validates the first code from the subject's app
// and, on success, flips 2FA to enabled. Returns ErrInvalidCode otherwise.
func (s *Service) ConfirmAuthenticatorSetup(ctx context.Context, subject Subject, code string) error {
	ok, err := s.validateAuthenticator(subject, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCode
	}

	if err := s.subjects.SetTwoFactorEnabled(ctx, subject.ID, true); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "two-factor enabled via authenticator", logger.UserID(subject.ID))
	return nil
}

// RequestEmailCode issues and emails a code for the given purpose, first
// invalidating any still-outstanding codes for the same (subject, purpose)
// so the freshly delivered one is the only live code.
func (s *Service) RequestEmailCode(ctx context.Context, subject Subject, purpose Purpose) error {
	if err := s.codes.InvalidateOutstanding(ctx, subject.ID, purpose); err != nil {
		return err
	}
	_, err := s.codes.IssueCode(ctx, subject, purpose)
	return err
}

// Verify checks a submitted second-factor code for the subject. A subject
// enrolled with an authenticator is checked against the TOTP engine; anyone
// else is checked against the emailed code for the given purpose, consuming
// it on success. Every failure surfaces as ErrInvalidCode.
func (s *Service) Verify(ctx context.Context, subject Subject, purpose Purpose, code string) error {
	var ok bool
	var err error
	if subject.usesAuthenticator() {
		ok, err = s.validateAuthenticator(subject, code)
	} else {
		ok, err = s.codes.ValidateCode(ctx, subject.ID, purpose, code, true)
	}
	if err != nil {
		return err
	}
	if !ok {
		s.log.WarnContext(ctx, "second-factor verification failed",
			logger.UserID(subject.ID), logger.Purpose(purpose))
		return ErrInvalidCode
	}
	return nil
}

// EnableWithEmail turns 2FA on for a subject using the emailed code flow:
// the code previously requested with PurposeEnableTwoFactor must validate.
func (s *Service) EnableWithEmail(ctx context.Context, subject Subject, code string) error {
	ok, err := s.codes.ValidateCode(ctx, subject.ID, PurposeEnableTwoFactor, code, true)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCode
	}

	if err := s.subjects.SetTwoFactorEnabled(ctx, subject.ID, true); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "two-factor enabled via email code", logger.UserID(subject.ID))
	return nil
}

// Disable turns 2FA off after verifying the supplied code through whichever
// engine applies. The stored authenticator secret is cleared and never
// reused: re-enabling later starts from a fresh secret, so an old provision
// cannot be replayed.
func (s *Service) Disable(ctx context.Context, subject Subject, code string) error {
	if err := s.Verify(ctx, subject, PurposeDisableTwoFactor, code); err != nil {
		return err
	}

	if err := s.subjects.SetTwoFactorEnabled(ctx, subject.ID, false); err != nil {
		return err
	}
	if subject.AuthenticatorKey != "" {
		if err := s.subjects.SetAuthenticatorKey(ctx, subject.ID, ""); err != nil {
			return err
		}
	}

	s.log.InfoContext(ctx, "two-factor disabled", logger.UserID(subject.ID))
	return nil
}

// validateAuthenticator decrypts the stored secret and runs the TOTP check.
// A missing key is a caller bug (2FA marked enabled for a subject without a
// secret) and is reported as an error rather than folded into ErrInvalidCode.
func (s *Service) validateAuthenticator(subject Subject, code string) (bool, error) {
	if subject.AuthenticatorKey == "" {
		return false, ErrMissingAuthenticatorKey
	}

	secret, err := totp.DecryptKey(subject.AuthenticatorKey, s.encryptionKey)
	if err != nil {
		// An undecryptable blob fails closed: every code is rejected until
		// the subject re-enrolls.
		return false, nil
	}

	return totp.ValidateKey(secret, code, s.clk.Now()), nil
}
