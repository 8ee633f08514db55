package drive

import "time"

// Clock is the monotonic time source injected into every timed component so
// tests can advance time without real delays.
type Clock interface {
	Now() time.Time
}

// WallClock is the Clock used against real hardware.
type WallClock struct{}

func (WallClock) Now() time.Time {
	return time.Now()
}
