package clock_test

import (
	"testing"
	"time"

	"catalog-manager/core/clock"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	c := clock.NewFixed(start)
	assert.Equal(t, start, c.Now())

	c.Advance(time.Hour)
	assert.Equal(t, start.Add(time.Hour), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestSystem_IsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, clock.System{}.Now().Location())
}
