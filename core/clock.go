package core

import "time"

// Clock supplies wall-clock time. Injectable so the engine's callers and the
// widget can be driven by a fixed clock in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
