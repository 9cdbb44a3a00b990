package twofactor

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vzoverflow/vzoverflow/pkg/clock"
	"github.com/vzoverflow/vzoverflow/pkg/email"
	"github.com/vzoverflow/vzoverflow/pkg/logger"
)

// defaultCodeTTL matches the 5-minute validity promised in the emails.
const defaultCodeTTL = 5 * time.Minute

// CodeService issues, validates, and invalidates purpose-scoped one-time
// codes delivered by email.
type CodeService struct {
	store  CodeStore
	sender email.EmailSender
	clk    clock.Clock
	log    *slog.Logger
	issuer string
	ttl    time.Duration
}

// CodeServiceOption configures a CodeService.
type CodeServiceOption func(*CodeService)

// WithClock replaces the time source, pinning expiry decisions in tests.
func WithClock(c clock.Clock) CodeServiceOption {
	return func(s *CodeService) {
		if c != nil {
			s.clk = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) CodeServiceOption {
	return func(s *CodeService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithCodeTTL overrides the code validity window.
func WithCodeTTL(ttl time.Duration) CodeServiceOption {
	return func(s *CodeService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithIssuer sets the service name used in email subjects and bodies.
func WithIssuer(issuer string) CodeServiceOption {
	return func(s *CodeService) {
		if issuer != "" {
			s.issuer = issuer
		}
	}
}

// NewCodeService creates the one-time code service.
func NewCodeService(store CodeStore, sender email.EmailSender, opts ...CodeServiceOption) *CodeService {
	s := &CodeService{
		store:  store,
		sender: sender,
		clk:    clock.System(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		issuer: "VzOverFlow",
		ttl:    defaultCodeTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueCode generates a fresh 6-digit code for (subject, purpose), persists
// it with a 5-minute expiry, emails it to the subject, and returns it.
//
// The row is persisted before the send so a provider timeout cannot lose an
// already-delivered code. If the send then fails, the row is invalidated
// again before the error is returned: a code the user never received must
// not stay outstanding and guessable.
func (s *CodeService) IssueCode(ctx context.Context, subject Subject, purpose Purpose) (string, error) {
	if !purpose.Valid() {
		return "", ErrInvalidPurpose
	}
	if subject.Email == "" {
		return "", ErrMissingDeliveryAddress
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	now := s.clk.Now()
	row := &OneTimeCode{
		ID:        uuid.New(),
		UserID:    subject.ID,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.store.CreateCode(ctx, row); err != nil {
		return "", err
	}

	subjectLine, body, err := renderEmail(s.issuer, purpose, templateData{
		Username: subject.Username,
		Code:     code,
		Minutes:  int(s.ttl.Minutes()),
	})
	if err != nil {
		return "", err
	}

	if err := s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   subject.Email,
		Subject:  subjectLine,
		BodyHTML: body,
		Tag:      "otp-" + string(purpose),
	}); err != nil {
		// Best effort: if the revoke fails too, the row still dies by expiry.
		if _, revokeErr := s.store.ConsumeCode(ctx, row.ID); revokeErr != nil {
			s.log.ErrorContext(ctx, "failed to revoke undelivered code",
				logger.UserID(subject.ID), logger.Purpose(purpose), logger.Error(revokeErr))
		}
		return "", errors.Join(ErrFailedToDeliverCode, err)
	}

	s.log.InfoContext(ctx, "one-time code issued",
		logger.UserID(subject.ID), logger.Purpose(purpose))

	return code, nil
}

// ValidateCode checks submitted against the most recent live code for
// (userID, purpose). On a match with consume set, the code is atomically
// marked used; a concurrent duplicate submission of the same code loses the
// race and validates false.
//
// A mismatch consumes nothing: the real outstanding code stays valid.
func (s *CodeService) ValidateCode(ctx context.Context, userID uuid.UUID, purpose Purpose, submitted string, consume bool) (bool, error) {
	if !purpose.Valid() {
		return false, ErrInvalidPurpose
	}

	row, err := s.store.LatestActiveCode(ctx, userID, purpose, s.clk.Now())
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			return false, nil
		}
		return false, err
	}

	// Exact text comparison keeps leading zeros significant; constant time
	// keeps the comparison from leaking a digit-by-digit oracle.
	if subtle.ConstantTimeCompare([]byte(row.Code), []byte(submitted)) != 1 {
		return false, nil
	}

	if !consume {
		return true, nil
	}

	return s.store.ConsumeCode(ctx, row.ID)
}

// InvalidateOutstanding marks every live code for (userID, purpose) as used,
// typically before issuing a replacement.
func (s *CodeService) InvalidateOutstanding(ctx context.Context, userID uuid.UUID, purpose Purpose) error {
	if !purpose.Valid() {
		return ErrInvalidPurpose
	}
	return s.store.InvalidateCodes(ctx, userID, purpose)
}

// generateCode draws a uniform-enough value from the system CSPRNG and
// renders it as zero-padded text. The modulo bias over 2^32 is below one in
// four thousand and irrelevant at 6-digit entropy.
func generateCode() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", errors.Join(ErrFailedToGenerateCode, err)
	}
	return fmt.Sprintf("%06d", binary.BigEndian.Uint32(buf[:])%1_000_000), nil
}
