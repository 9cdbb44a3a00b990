// Package redis wraps go-redis connection setup: URL-based configuration from
// the environment, connect-with-retries, and a health check closure. The
// one-time code cache store builds on the returned client.
package redis
