package password_test

import (
	"testing"

	"github.com/vzoverflow/vzoverflow/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := password.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, password.Verify(hash, "correct horse battery staple"))
	assert.ErrorIs(t, password.Verify(hash, "wrong password"), password.ErrPasswordMismatch)
	assert.ErrorIs(t, password.Verify([]byte("not-a-bcrypt-hash"), "anything"), password.ErrPasswordMismatch)
}

func TestHash_Salted(t *testing.T) {
	t.Parallel()

	a, err := password.Hash("same input")
	require.NoError(t, err)
	b, err := password.Hash("same input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "each hash must carry a fresh salt")
}
