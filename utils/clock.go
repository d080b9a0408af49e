package utils

import "time"

// Clock supplies the current time. Services take a Clock instead of calling
// time.Now directly so time-gated guards stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewClock returns the wall clock.
func NewClock() Clock { return systemClock{} }

// FrozenClock is a test clock pinned to a settable instant.
type FrozenClock struct {
	Current time.Time
}

func (c *FrozenClock) Now() time.Time { return c.Current }

// Advance moves the frozen clock forward by d.
func (c *FrozenClock) Advance(d time.Duration) { c.Current = c.Current.Add(d) }
