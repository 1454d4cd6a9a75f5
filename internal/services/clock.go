package services

import (
	"sync"
	"time"
)

// Clock stamps createdAt values.
type Clock interface {
	Now() time.Time
}

// MonotonicClock never returns the same instant twice, so createdAt orders records even
// when two writes land within the wall clock's resolution.
type MonotonicClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func NewMonotonicClock(now func() time.Time) *MonotonicClock {
	if now == nil {
		now = time.Now
	}
	return &MonotonicClock{now: now}
}

func (c *MonotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now().UTC().Round(0)
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}
