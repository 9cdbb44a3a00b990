// Package totp implements time-based one-time passwords (RFC 6238) for the
// authenticator-app second factor.
//
// The package covers the full key lifecycle: secret creation
// (GenerateSecretKey), provisioning URI construction for authenticator apps
// (ProvisioningURI), manual-entry formatting (FormatKeyForManualEntry),
// AES-256-GCM encryption of secrets at rest (EncryptKey/DecryptKey), and code
// derivation and validation (GenerateCode/Validate).
//
// Parameters are fixed to the interoperable defaults: HMAC-SHA1, 6 digits,
// 30-second period. Validation accepts the previous, current, and next time
// step to absorb clock skew between the server and the user's device.
//
// # Usage
//
// Enrolling a user:
//
//	secret, _ := totp.GenerateSecretKey()
//
//	encKey, _ := totp.LoadEncryptionKey()
//	stored, _ := totp.EncryptKey(secret, encKey) // persist this
//
//	uri, _ := totp.ProvisioningURI(totp.KeyParams{
//	    Secret:      secret,
//	    AccountName: "alice@example.com",
//	    Issuer:      "VzOverFlow",
//	})
//	// render uri as a QR code, or show totp.FormatKeyForManualEntry(secret)
//
// Validating a submitted code:
//
//	ok := totp.ValidateKey(secret, "123456", clock.Now())
//
// Validation never returns an error: malformed codes and undecodable secrets
// fail closed by rejecting. Inspect the error paths of the key-management
// helpers with errors.Is against the package sentinels (ErrInvalidSecret,
// ErrFailedToDecryptKey, ...).
//
// The required environment variable TOTP_ENCRYPTION_KEY must hold a
// base64-encoded 32-byte key; cmd/totpkeygen prints a fresh one.
package totp
