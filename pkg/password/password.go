package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrPasswordMismatch     = errors.New("password does not match")
)

// Hash derives a bcrypt hash at the default cost. The hash embeds its own
// salt and cost, so no extra bookkeeping is stored alongside it.
func Hash(plain string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Join(ErrFailedToHashPassword, err)
	}
	return hash, nil
}

// Verify compares a stored hash against a candidate password. Returns
// ErrPasswordMismatch on any failure so callers cannot distinguish a wrong
// password from a malformed hash.
func Verify(hash []byte, plain string) error {
	if err := bcrypt.CompareHashAndPassword(hash, []byte(plain)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
