package httpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewFromConfig_AppliesSettings(t *testing.T) {
	t.Parallel()

	srv := NewFromConfig(Config{
		Addr:            "127.0.0.1:9090",
		ReadTimeout:     time.Second,
		WriteTimeout:    2 * time.Second,
		IdleTimeout:     3 * time.Second,
		ShutdownTimeout: 4 * time.Second,
	})

	assert.Equal(t, "127.0.0.1:9090", srv.srv.Addr)
	assert.Equal(t, time.Second, srv.srv.ReadTimeout)
	assert.Equal(t, 2*time.Second, srv.srv.WriteTimeout)
	assert.Equal(t, 3*time.Second, srv.srv.IdleTimeout)
	assert.Equal(t, 4*time.Second, srv.shutdownTimeout)
}

func TestNewFromConfig_ZeroValuesFallBack(t *testing.T) {
	t.Parallel()

	srv := NewFromConfig(Config{})

	assert.Equal(t, ":8080", srv.srv.Addr)
	assert.Equal(t, 5*time.Second, srv.shutdownTimeout)
	assert.NotNil(t, srv.log, "a discard logger must always be present")
}

func TestNewFromConfig_ExplicitOptionsWin(t *testing.T) {
	t.Parallel()

	srv := NewFromConfig(Config{Addr: ":8080"}, WithAddr("127.0.0.1:7070"))
	assert.Equal(t, "127.0.0.1:7070", srv.srv.Addr)
}
