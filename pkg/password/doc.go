// Package password provides bcrypt hashing for the change-password
// confirmation flow. Verification collapses every failure into
// ErrPasswordMismatch to avoid leaking whether a stored hash was malformed.
package password
