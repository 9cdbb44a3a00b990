package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMessages(t *testing.T) {
	t.Parallel()

	// These texts reach operators through logs.
	assert.EqualError(t, ErrUserNotFound, "user not found")
	assert.EqualError(t, ErrNotAuthenticated, "request is not authenticated")
}
