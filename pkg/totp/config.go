package totp

import (
	"encoding/base64"
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
)

var (
	cfg  Config
	once sync.Once
)

type Config struct {
	EncryptionKey string `env:"TOTP_ENCRYPTION_KEY,required"` // Base64-encoded 32-byte AES key for secrets at rest
}

// LoadConfig loads the package configuration from the environment exactly once.
func LoadConfig() (Config, error) {
	var err error
	once.Do(func() {
		if parseErr := env.Parse(&cfg); parseErr != nil {
			err = parseErr
			return
		}
		if cfg.EncryptionKey == "" {
			err = ErrEncryptionKeyNotSet
		}
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEncryptionKey returns the decoded AES-256 key from the environment.
func LoadEncryptionKey() ([]byte, error) {
	c, err := LoadConfig()
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadEncryptionKey, err)
	}

	key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadEncryptionKey, err)
	}
	if len(key) != EncryptionKeySize {
		return nil, errors.Join(ErrFailedToLoadEncryptionKey, ErrInvalidEncryptionKeyLength)
	}

	return key, nil
}
