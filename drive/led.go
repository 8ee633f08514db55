package drive

import (
	"time"

	"github.com/mandedesign/rangedrive/drive/hardware"
)

const (
	LED_MAX_BRIGHTNESS = 255

	// LED_MIDPOINT splits the crossfade: red holds to here while green ramps
	// up, then green holds while red ramps down.
	LED_MIDPOINT = 50
)

// StatusLED animates an RGB LED from the commanded speed. Red at 0% fades
// through yellow at the midpoint to green at 100%, stepping smoothly rather
// than jumping. Two overlays sit on top: a blue blink while the error flag
// is set, and a brightness blink while ramping down a 50% -> 0% transition.
type StatusLED struct {
	red, green, blue hardware.PWMPin
	clock            Clock

	stepInterval time.Duration
	blinkHalf    time.Duration
	errorBlink   time.Duration
	dim          uint8

	current        int
	target         int
	lastCommand    int
	blinkingToZero bool
	blinkOn        bool
	errActive      bool
	errBlinkOn     bool

	lastStep     time.Time
	lastBlink    time.Time
	lastErrBlink time.Time
}

func NewStatusLED(red, green, blue hardware.PWMPin, clock Clock, cfg LEDConfig) *StatusLED {
	return &StatusLED{
		red:          red,
		green:        green,
		blue:         blue,
		clock:        clock,
		stepInterval: cfg.StepInterval(),
		blinkHalf:    cfg.BlinkHalf(),
		errorBlink:   cfg.ErrorBlink(),
		dim:          uint8(cfg.DimBrightness),
	}
}

// SetError switches the error overlay. Entering error mode resets the blink
// phase, so the first blink always lands one full half period after entry.
func (l *StatusLED) SetError(active bool) {
	if active && !l.errActive {
		l.lastErrBlink = l.clock.Now()
		l.errBlinkOn = false
	}
	l.errActive = active
}

func (l *StatusLED) Update(commandedPercent int) {
	now := l.clock.Now()

	if l.errActive {
		if now.Sub(l.lastErrBlink) >= l.errorBlink {
			l.lastErrBlink = now
			l.errBlinkOn = !l.errBlinkOn
		}

		var b uint8
		if l.errBlinkOn {
			b = LED_MAX_BRIGHTNESS
		}
		l.setRGB(0, 0, b)
		return
	}

	commandedPercent = clamp(commandedPercent, 0, 100)

	if commandedPercent != l.target {
		// only the exact midpoint -> 0 transition blinks; anything else
		// clears the flag
		l.blinkingToZero = l.lastCommand == LED_MIDPOINT && commandedPercent == 0

		l.target = commandedPercent
		l.lastCommand = commandedPercent
	}

	if now.Sub(l.lastStep) >= l.stepInterval {
		l.lastStep = now

		if l.current < l.target {
			l.current++
		} else if l.current > l.target {
			l.current--
		}
	}

	r, g := gradient(l.current)

	if l.blinkingToZero && l.current > 0 {
		if now.Sub(l.lastBlink) >= l.blinkHalf {
			l.lastBlink = now
			l.blinkOn = !l.blinkOn
		}

		scale := uint16(l.dim)
		if l.blinkOn {
			scale = LED_MAX_BRIGHTNESS
		}
		r = uint8(uint16(r) * scale / LED_MAX_BRIGHTNESS)
		g = uint8(uint16(g) * scale / LED_MAX_BRIGHTNESS)
	}

	l.setRGB(r, g, 0)
}

func (l *StatusLED) setRGB(r, g, b uint8) {
	l.red.Write(r)
	l.green.Write(g)
	l.blue.Write(b)
}

// gradient maps 0..100 onto the dual channel crossfade. Both segments share
// a full brightness peak at the midpoint.
func gradient(pct int) (r, g uint8) {
	if pct <= LED_MIDPOINT {
		return LED_MAX_BRIGHTNESS, uint8(LED_MAX_BRIGHTNESS * pct / LED_MIDPOINT)
	}
	return uint8(LED_MAX_BRIGHTNESS * (100 - pct) / LED_MIDPOINT), LED_MAX_BRIGHTNESS
}
