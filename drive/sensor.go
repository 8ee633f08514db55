package drive

import (
	"time"

	"github.com/mandedesign/rangedrive/drive/hardware"
)

// RangeSensor performs rate limited, timeout bounded distance acquisition.
// Triggering the transducer more often than the minimum interval makes the
// acoustic bursts overlap and the readings run away, so calls spaced closer
// than that return the cached reading untouched - the hardware is not
// touched at all.
type RangeSensor struct {
	pinger hardware.Pinger
	clock  Clock

	minInterval time.Duration
	timeout     time.Duration

	lastTrigger time.Time
	last        Reading
}

func NewRangeSensor(pinger hardware.Pinger, clock Clock, cfg SensorConfig) *RangeSensor {
	return &RangeSensor{
		pinger:      pinger,
		clock:       clock,
		minInterval: cfg.MinInterval(),
		timeout:     cfg.EchoTimeout(),
	}
}

// Acquire returns a validated reading. Every failure path degrades to a
// non valid Reading rather than an error; the sensor can always answer.
func (s *RangeSensor) Acquire() Reading {
	now := s.clock.Now()

	if !s.lastTrigger.IsZero() && now.Sub(s.lastTrigger) < s.minInterval {
		return s.last
	}
	s.lastTrigger = now

	s.last = ReadingFromEcho(s.pinger.Ping(s.timeout))
	return s.last
}
