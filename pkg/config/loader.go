package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// dotEnvOnce makes sure a local .env file is merged into the process
// environment at most once, no matter how many configs are loaded.
var dotEnvOnce sync.Once

// Load fills cfg from the process environment using `env` struct tags.
// A .env file in the working directory is loaded first when present, so
// local development does not need exported variables. Already-set
// environment variables win over .env entries.
func Load[T any](cfg *T) error {
	dotEnvOnce.Do(func() {
		// Missing .env is fine; deployments set real environment variables.
		_ = godotenv.Load()
	})
	if cfg == nil {
		return ErrNilPointer
	}
	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load for configuration the process cannot start without,
// such as the database DSN or the TOTP encryption key. It panics on error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
