// Package clock provides an injectable time source so schedule floors and
// notice windows can be fixed in tests. All times are UTC.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the wall clock.
func System() Clock {
	return systemClock{}
}

// Fixed is a Clock pinned to a single instant. Intended for tests.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant.UTC()
}

// NewFixed creates a Fixed clock at the given instant.
func NewFixed(t time.Time) Fixed {
	return Fixed{Instant: t}
}
