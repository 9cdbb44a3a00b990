package config

import "errors"

var (
	// ErrParsingConfig wraps env tag parsing failures, including missing
	// required variables.
	ErrParsingConfig = errors.New("failed to parse environment into config")

	// ErrNilPointer is returned when Load is handed a nil config pointer.
	ErrNilPointer = errors.New("config target must be a non-nil pointer")
)
