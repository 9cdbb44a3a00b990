package totp_test

import (
	"testing"

	"github.com/vzoverflow/vzoverflow/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptKey(t *testing.T) {
	t.Parallel()

	encKey, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)
	require.Len(t, encKey, totp.EncryptionKeySize)

	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	cipherText, err := totp.EncryptKey(secret, encKey)
	require.NoError(t, err)
	assert.NotEqual(t, secret, cipherText)

	plain, err := totp.DecryptKey(cipherText, encKey)
	require.NoError(t, err)
	assert.Equal(t, secret, plain)
}

func TestEncryptKey_Nondeterministic(t *testing.T) {
	t.Parallel()

	encKey, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)

	a, err := totp.EncryptKey("JBSWY3DPEHPK3PXP", encKey)
	require.NoError(t, err)
	b, err := totp.EncryptKey("JBSWY3DPEHPK3PXP", encKey)
	require.NoError(t, err)

	// Fresh nonce per call: identical plain text must not produce identical blobs.
	assert.NotEqual(t, a, b)
}

func TestEncryptKey_InvalidKeyLength(t *testing.T) {
	t.Parallel()

	_, err := totp.EncryptKey("JBSWY3DPEHPK3PXP", []byte("short"))
	assert.ErrorIs(t, err, totp.ErrFailedToEncryptKey)
	assert.ErrorIs(t, err, totp.ErrInvalidEncryptionKeyLength)
}

func TestDecryptKey_Errors(t *testing.T) {
	t.Parallel()

	encKey, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)

	t.Run("invalid key length", func(t *testing.T) {
		t.Parallel()
		_, err := totp.DecryptKey("whatever", []byte("short"))
		assert.ErrorIs(t, err, totp.ErrInvalidEncryptionKeyLength)
	})

	t.Run("not base64", func(t *testing.T) {
		t.Parallel()
		_, err := totp.DecryptKey("%%%not-base64%%%", encKey)
		assert.ErrorIs(t, err, totp.ErrFailedToDecryptKey)
	})

	t.Run("cipher too short", func(t *testing.T) {
		t.Parallel()
		_, err := totp.DecryptKey("dG9vc2hvcnQ=", encKey) // "tooshort"
		assert.ErrorIs(t, err, totp.ErrInvalidCipherTooShort)
	})

	t.Run("wrong key", func(t *testing.T) {
		t.Parallel()
		cipherText, err := totp.EncryptKey("JBSWY3DPEHPK3PXP", encKey)
		require.NoError(t, err)

		otherKey, err := totp.GenerateEncryptionKey()
		require.NoError(t, err)

		_, err = totp.DecryptKey(cipherText, otherKey)
		assert.ErrorIs(t, err, totp.ErrFailedToDecryptKey)
	})
}
