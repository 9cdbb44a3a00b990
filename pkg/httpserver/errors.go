package httpserver

import "errors"

var (
	// ErrStart wraps any failure to bind or serve, including a second Run
	// on the same Server.
	ErrStart = errors.New("http server failed to start")
	// ErrShutdown wraps failures to drain the server within the grace period.
	ErrShutdown = errors.New("http server shutdown failed")
)
