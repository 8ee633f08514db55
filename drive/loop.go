package drive

import (
	"context"
	"sync"
	"time"
)

type ManeuverMode int

const (
	MODE_NORMAL ManeuverMode = iota
	MODE_STOPPING
	MODE_REVERSING
	MODE_SLOW_FORWARD
)

func (m ManeuverMode) String() string {
	switch m {
	case MODE_NORMAL:
		return "NORMAL"
	case MODE_STOPPING:
		return "STOPPING"
	case MODE_REVERSING:
		return "REVERSING"
	case MODE_SLOW_FORWARD:
		return "SLOW_FORWARD"
	default:
		return "UNKNOWN"
	}
}

// ControlState is a snapshot of the last completed tick, published for the
// operator shell.
type ControlState struct {
	Mode       ManeuverMode
	DistanceCM int
	SpeedPct   int
	Err        bool
}

// Controller owns the fixed period control loop and the maneuver state
// machine. Each tick runs strictly in order: acquire distance, evaluate the
// maneuver, drive the motor and LED, then hand the telemetry to the
// presenter. All maneuver state lives here and is only ever touched by the
// tick itself.
type Controller struct {
	sensor    *RangeSensor
	motor     *Motor
	led       *StatusLED
	presenter *Presenter
	clock     Clock

	tick         time.Duration
	stopDwell    time.Duration
	reverseDwell time.Duration
	nearCM       int
	farCM        int
	reversePct   int
	creepPct     int

	mode      ManeuverMode
	modeStart time.Time
	lastTick  time.Time

	// published snapshot, also read by the shell goroutine
	mu           sync.Mutex
	lastMode     ManeuverMode
	lastSpeed    int
	lastDistance int
	errActive    bool
}

func NewController(sensor *RangeSensor, motor *Motor, led *StatusLED, presenter *Presenter, clock Clock, cfg ControlConfig) *Controller {
	return &Controller{
		sensor:       sensor,
		motor:        motor,
		led:          led,
		presenter:    presenter,
		clock:        clock,
		tick:         cfg.Tick(),
		stopDwell:    cfg.StopDwell(),
		reverseDwell: cfg.ReverseDwell(),
		nearCM:       cfg.NearCM,
		farCM:        cfg.FarCM,
		reversePct:   cfg.ReversePct,
		creepPct:     cfg.CreepPct,
		mode:         MODE_NORMAL,
		lastSpeed:    100, // boot default, overwritten by the first tick
	}
}

// Run drives the loop until ctx is cancelled. Pacing is done inside Poll;
// the sleep here only keeps the goroutine from spinning flat out.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.motor.SetSpeed(0)
			return
		default:
		}

		c.Poll()
		time.Sleep(time.Millisecond)
	}
}

// Poll runs one tick if a full period has elapsed since the last one and
// reports whether it ran. Early polls are dropped outright; there is no
// queueing and no catch up for missed periods.
func (c *Controller) Poll() bool {
	now := c.clock.Now()
	if !c.lastTick.IsZero() && now.Sub(c.lastTick) < c.tick {
		return false
	}
	c.lastTick = now

	distance := c.sensor.Acquire().Centimeters()
	speed := c.evaluate(now, distance)

	c.mu.Lock()
	c.lastMode = c.mode
	c.lastSpeed = speed
	c.lastDistance = distance
	errActive := c.errActive
	c.mu.Unlock()

	c.motor.SetSpeed(speed)
	c.led.SetError(errActive)
	c.led.Update(speed)
	c.presenter.Update(distance, speed, errActive)

	return true
}

// evaluate advances the maneuver state machine one tick and resolves the
// speed command. Dwells are expressed as elapsed-time checks against the
// state entry timestamp; nothing in here blocks.
func (c *Controller) evaluate(now time.Time, distance int) int {
	if distance >= c.farCM {
		switch c.mode {
		case MODE_NORMAL:
			// far regime entered: stop before reversing
			c.mode = MODE_STOPPING
			c.modeStart = now
			return 0

		case MODE_STOPPING:
			if now.Sub(c.modeStart) >= c.stopDwell {
				c.mode = MODE_REVERSING
				c.modeStart = now
				return c.reversePct
			}
			return 0

		case MODE_REVERSING:
			if now.Sub(c.modeStart) >= c.reverseDwell {
				c.mode = MODE_SLOW_FORWARD
				c.modeStart = now
				return c.creepPct
			}
			return c.reversePct

		default:
			// creep forward until the path shortens again
			return c.creepPct
		}
	}

	// near regime: abort any maneuver in progress and map distance linearly
	// onto speed
	c.mode = MODE_NORMAL
	c.modeStart = now

	speed := interpolate(distance, c.nearCM, c.farCM)
	speed = speed / 2 * 2 // even quantization keeps the LED ramp steady
	speed = clamp(speed, 0, 100)

	if distance <= c.nearCM {
		speed = 0
	}
	if distance == 0 {
		// sentinel reading: nothing in front of the sensor, clear path
		speed = 100
	}

	return speed
}

// SetError flips the diagnostic flag forwarded to the LED and presenter on
// the next tick. Control behavior is unaffected.
func (c *Controller) SetError(active bool) {
	c.mu.Lock()
	c.errActive = active
	c.mu.Unlock()
}

func (c *Controller) State() ControlState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ControlState{
		Mode:       c.lastMode,
		DistanceCM: c.lastDistance,
		SpeedPct:   c.lastSpeed,
		Err:        c.errActive,
	}
}

// interpolate maps distance linearly from the near threshold (0%) to the
// far threshold (100%), unclamped.
func interpolate(distance, near, far int) int {
	return (distance - near) * 100 / (far - near)
}
