package drive

import (
	"sync"

	"github.com/mandedesign/rangedrive/drive/hardware"
)

// Motor drives a bidirectional DC motor through the two input legs of an H
// bridge. One leg carries duty for forward, the other for reverse; both
// inactive coasts the motor. The enable line is tied high in hardware.
// Commands arrive from the control goroutine and Brake from the operator
// shell, so the write memory is guarded.
type Motor struct {
	fwd, rev hardware.PWMPin

	deadband int

	mu      sync.Mutex
	applied int
	written bool
}

func NewMotor(fwd, rev hardware.PWMPin, cfg MotorConfig) *Motor {
	return &Motor{
		fwd:      fwd,
		rev:      rev,
		deadband: cfg.DeadbandPct,
	}
}

// SetSpeed commands a signed speed percentage. The sign selects direction,
// the magnitude the duty. Out of range input is clamped, magnitudes inside
// the deadband coerce to 0, and a repeat of the last applied value skips
// the hardware writes entirely.
func (m *Motor) SetSpeed(percent int) {
	percent = clamp(percent, -100, 100)

	if percent > -m.deadband && percent < m.deadband {
		percent = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.written && percent == m.applied {
		return
	}
	m.applied = percent
	m.written = true

	if percent >= 0 {
		m.fwd.Write(DutyForPercent(percent))
		m.rev.Write(0)
	} else {
		m.fwd.Write(0)
		m.rev.Write(DutyForPercent(-percent))
	}
}

// Brake drives both legs to the same rail, shorting the winding. This stops
// much harder than the coast a zero command produces, and works regardless
// of the last commanded speed.
func (m *Motor) Brake() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fwd.Write(255)
	m.rev.Write(255)

	// the bridge is no longer in the state SetSpeed last applied
	m.written = false
}

// DutyForPercent maps a magnitude of 1..100 onto a duty of 1..255. Any
// nonzero percentage yields a nonzero duty; a low command never idles the
// motor silently.
func DutyForPercent(pct int) uint8 {
	if pct <= 0 {
		return 0
	}
	if pct >= 100 {
		return 255
	}

	duty := pct * 255 / 100
	if duty < 1 {
		duty = 1
	}
	return uint8(duty)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
