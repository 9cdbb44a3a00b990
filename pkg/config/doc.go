// Package config loads environment-driven configuration structs.
//
// Every component that needs settings declares its own Config struct with
// `env` tags (pkg/pg, pkg/redis, pkg/email, pkg/httpserver, svc/twofactor),
// and the binary composes them into one application config:
//
//	type appConfig struct {
//		PG    pg.Config
//		HTTP  httpserver.Config
//		TwoFA twofactor.Config
//	}
//
//	var cfg appConfig
//	config.MustLoad(&cfg)
//
// Load merges a local .env file into the environment once per process, then
// parses the struct. Missing required variables surface as ErrParsingConfig;
// MustLoad panics instead, for configuration the process cannot run without.
package config
