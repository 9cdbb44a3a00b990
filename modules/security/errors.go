package security

import "errors"

var (
	// ErrUserNotFound is returned by storage when no user matches.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotAuthenticated is returned when no user id is present on the
	// request context.
	ErrNotAuthenticated = errors.New("request is not authenticated")
)
