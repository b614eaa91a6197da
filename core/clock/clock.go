// Package clock provides the time source used for token expiry and audit timestamps.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current instant in UTC.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a manually driven clock for tests and replays.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed returns a clock frozen at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t.UTC()}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.now = t.UTC()
	f.mu.Unlock()
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
