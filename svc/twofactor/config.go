package twofactor

import "time"

type Config struct {
	Issuer  string        `env:"TWOFACTOR_ISSUER" envDefault:"VzOverFlow"` // Issuer is shown in authenticator apps and email subjects.
	CodeTTL time.Duration `env:"TWOFACTOR_CODE_TTL" envDefault:"5m"`       // CodeTTL is how long an emailed code stays valid.
}
