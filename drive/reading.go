package drive

import "time"

// Physical limits of the HC-SR04. Echoes outside this window are noise.
const (
	MIN_RANGE_CM = 2
	MAX_RANGE_CM = 400
)

// US_PER_CM is the round trip echo time over one centimeter of range.
// Integer division by 58 is numerically equivalent to the speed-of-sound
// conversion (~343 m/s, halved for the round trip).
const US_PER_CM = 58

type ReadingKind int

const (
	READING_VALID ReadingKind = iota
	READING_NO_OBSTRUCTION
	READING_FAULT
)

// Reading is a single tagged acquisition result. Only READING_VALID carries
// a physical distance; the other kinds collapse to the 0 sentinel at the
// control boundary, matching what the downstream logic expects.
type Reading struct {
	kind ReadingKind
	cm   int
}

func ValidReading(cm int) Reading {
	return Reading{kind: READING_VALID, cm: cm}
}

func NoObstruction() Reading {
	return Reading{kind: READING_NO_OBSTRUCTION}
}

func SensorFault() Reading {
	return Reading{kind: READING_FAULT}
}

func (r Reading) Kind() ReadingKind {
	return r.kind
}

// Centimeters collapses the reading to the wire value consumed by the
// control loop: the measured distance, or 0 for anything invalid. A 0 here
// never means a true physical zero.
func (r Reading) Centimeters() int {
	if r.kind != READING_VALID {
		return 0
	}
	return r.cm
}

// ReadingFromEcho converts a measured echo pulse width into a Reading. A
// zero width means the echo never arrived before the timeout.
func ReadingFromEcho(echo time.Duration) Reading {
	if echo <= 0 {
		return NoObstruction()
	}

	cm := int(echo / time.Microsecond / US_PER_CM)
	if cm < MIN_RANGE_CM || cm > MAX_RANGE_CM {
		return SensorFault()
	}

	return ValidReading(cm)
}
