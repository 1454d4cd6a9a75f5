package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonotonicClockNeverRepeats(t *testing.T) {
	frozen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMonotonicClock(func() time.Time { return frozen })

	first := c.Now()
	second := c.Now()
	third := c.Now()
	assert.True(t, first.Equal(frozen))
	assert.True(t, second.After(first))
	assert.True(t, third.After(second))
}

func TestMonotonicClockFollowsWallClock(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMonotonicClock(func() time.Time { return now })

	c.Now()
	now = now.Add(time.Hour)
	assert.True(t, c.Now().Equal(now))
}
