package totp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/vzoverflow/vzoverflow/pkg/base32"
)

// SecretKeySize is the raw secret length in bytes. 160 bits, per the RFC 4226
// recommendation and matching the SHA-1 block the code derivation consumes.
const SecretKeySize = 20

// ValidateSecretKeyRegex matches an unpadded Base32 secret key.
var ValidateSecretKeyRegex = regexp.MustCompile("^[A-Z2-7]+$")

// KeyParams identifies the account a provisioning URI enrolls.
type KeyParams struct {
	Secret      string // Base32-encoded secret key (required)
	AccountName string // User identifier shown in the app, usually an email (required)
	Issuer      string // Service name displayed in authenticator apps (required)
}

// Validate ensures all provisioning parameters are present and well formed.
func (p KeyParams) Validate() error {
	if p.Secret == "" {
		return ErrMissingSecret
	}
	if !ValidateSecretKeyRegex.MatchString(p.Secret) {
		return ErrInvalidSecret
	}
	if p.AccountName == "" {
		return ErrMissingAccountName
	}
	if p.Issuer == "" {
		return ErrMissingIssuer
	}
	return nil
}

// GenerateSecretKey creates a new random secret and returns it Base32-encoded.
func GenerateSecretKey() (string, error) {
	secret := make([]byte, SecretKeySize)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return base32.Encode(secret), nil
}

// ProvisioningURI builds the otpauth:// URI consumed by authenticator apps
// (Google Authenticator, 1Password, Microsoft Authenticator and compatible).
//
// The output is byte-exact:
//
//	otpauth://totp/{issuer}:{account}?secret={base32}&issuer={issuer}
//
// Algorithm, digit count and period are omitted so apps fall back to the
// SHA1/6/30s defaults this package implements.
func ProvisioningURI(p KeyParams) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
		escape(p.Issuer),
		escape(p.AccountName),
		p.Secret,
		escape(p.Issuer),
	), nil
}

// FormatKeyForManualEntry groups a secret key into 4-character blocks
// ("ABCD EFGH IJKL ...") for users typing it instead of scanning a QR code.
// Purely cosmetic; the lenient decoder strips the spaces back out.
func FormatKeyForManualEntry(key string) string {
	var sb strings.Builder
	sb.Grow(len(key) + len(key)/4)
	for i := 0; i < len(key); i++ {
		if i > 0 && i%4 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(key[i])
	}
	return sb.String()
}

// escape percent-encodes s for use inside the URI. QueryEscape covers the
// reserved set but encodes spaces as '+', which authenticator apps do not
// decode inside the label, so those become %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
