package totp

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// EncryptionKeySize is the required key size for AES-256 (256 bits).
const EncryptionKeySize = 32

// EncryptKey encrypts a Base32 secret key with AES-256-GCM for storage.
// The random nonce is prepended to the cipher text and the whole blob is
// returned base64-encoded.
func EncryptKey(plainKey string, encryptionKey []byte) (string, error) {
	if len(encryptionKey) != EncryptionKeySize {
		return "", errors.Join(ErrFailedToEncryptKey, ErrInvalidEncryptionKeyLength)
	}

	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return "", errors.Join(ErrFailedToEncryptKey, err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.Join(ErrFailedToEncryptKey, err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrFailedToEncryptKey, err)
	}

	cipherText := aesGCM.Seal(nonce, nonce, []byte(plainKey), nil)
	return base64.StdEncoding.EncodeToString(cipherText), nil
}

// DecryptKey reverses EncryptKey, returning the plain Base32 secret key.
func DecryptKey(cipherTextBase64 string, encryptionKey []byte) (string, error) {
	if len(encryptionKey) != EncryptionKeySize {
		return "", errors.Join(ErrFailedToDecryptKey, ErrInvalidEncryptionKeyLength)
	}

	cipherText, err := base64.StdEncoding.DecodeString(cipherTextBase64)
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptKey, err)
	}

	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptKey, err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptKey, err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(cipherText) < nonceSize {
		return "", errors.Join(ErrFailedToDecryptKey, ErrInvalidCipherTooShort)
	}
	nonce, cipherText := cipherText[:nonceSize], cipherText[nonceSize:]

	plainKey, err := aesGCM.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptKey, err)
	}

	return string(plainKey), nil
}

// GenerateEncryptionKey creates a random 32-byte key suitable for AES-256.
func GenerateEncryptionKey() ([]byte, error) {
	key := make([]byte, EncryptionKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Join(ErrFailedToGenerateEncryptionKey, err)
	}
	return key, nil
}

// GenerateEncodedEncryptionKey creates a random AES-256 key and returns it
// base64-encoded, ready to be stored in the TOTP_ENCRYPTION_KEY variable.
func GenerateEncodedEncryptionKey() (string, error) {
	key, err := GenerateEncryptionKey()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
