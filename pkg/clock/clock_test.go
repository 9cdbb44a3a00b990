package clock_test

import (
	"testing"
	"time"

	"github.com/vzoverflow/vzoverflow/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	t.Parallel()

	instant := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := clock.Fixed(instant)

	assert.Equal(t, instant, c.Now())
	assert.Equal(t, instant, c.Now(), "fixed clock must not drift")
}

func TestSystem(t *testing.T) {
	t.Parallel()

	before := time.Now()
	got := clock.System().Now()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestMock(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := clock.NewMock(start)

	assert.Equal(t, start, m.Now())

	m.Advance(5 * time.Minute)
	assert.Equal(t, start.Add(5*time.Minute), m.Now())

	m.Set(start)
	assert.Equal(t, start, m.Now())
}
