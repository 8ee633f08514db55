package hardware

import "time"

// Pinger is the ultrasonic hardware boundary. Ping emits a single trigger
// burst and reports the width of the echo pulse that comes back, or 0 if no
// echo arrives within timeout. Implementations may block, but never for
// longer than timeout.
type Pinger interface {
	Ping(timeout time.Duration) time.Duration
}

// PWMPin drives one PWM capable output line with an 8 bit duty value.
type PWMPin interface {
	Write(duty uint8) error
}

// Screen renders the operator status view. Implementations have no feedback
// path into the control loop.
type Screen interface {
	Render(distanceCM, speedPct int, errActive bool) error
}
