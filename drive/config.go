package drive

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver"
)

// CONFIG_VERSION pins the config schema to the 3.x behavior revision of the
// firmware this controller replaces.
const CONFIG_VERSION = "~3.0.0"

// Recommended defaults, back-filled over zero values by ApplyDefaults.
const (
	DEFAULT_MIN_INTERVAL_MS = 50
	DEFAULT_ECHO_TIMEOUT_MS = 30

	DEFAULT_DEADBAND_PCT = 3

	DEFAULT_STEP_MS        = 20
	DEFAULT_BLINK_HALF_MS  = 125
	DEFAULT_ERROR_BLINK_MS = 500
	DEFAULT_DIM_BRIGHTNESS = 60

	DEFAULT_TICK_MS     = 10
	DEFAULT_STOP_MS     = 500
	DEFAULT_REVERSE_MS  = 200
	DEFAULT_NEAR_CM     = 5
	DEFAULT_FAR_CM      = 60
	DEFAULT_REVERSE_PCT = -20
	DEFAULT_CREEP_PCT   = 20
)

type Config struct {
	Version string       `yaml:"version"`
	Sensor  SensorConfig `yaml:"sensor"`
	Motor   MotorConfig  `yaml:"motor"`
	LED     LEDConfig    `yaml:"led"`
	Screen  ScreenConfig `yaml:"screen"`
	Control ControlConfig `yaml:"control"`
}

type SensorConfig struct {
	TrigPin       string `yaml:"trig_pin"`
	EchoPin       string `yaml:"echo_pin"`
	MinIntervalMs int    `yaml:"min_interval_ms"`
	EchoTimeoutMs int    `yaml:"echo_timeout_ms"`
}

func (c SensorConfig) MinInterval() time.Duration {
	return time.Duration(c.MinIntervalMs) * time.Millisecond
}

func (c SensorConfig) EchoTimeout() time.Duration {
	return time.Duration(c.EchoTimeoutMs) * time.Millisecond
}

type MotorConfig struct {
	ForwardPin  string `yaml:"forward_pin"`
	ReversePin  string `yaml:"reverse_pin"`
	DeadbandPct int    `yaml:"deadband_pct"`
}

type LEDConfig struct {
	RedPin         string `yaml:"red_pin"`
	GreenPin       string `yaml:"green_pin"`
	BluePin        string `yaml:"blue_pin"`
	StepIntervalMs int    `yaml:"step_interval_ms"`
	BlinkHalfMs    int    `yaml:"blink_half_ms"`
	ErrorBlinkMs   int    `yaml:"error_blink_ms"`
	DimBrightness  int    `yaml:"dim_brightness"`
}

func (c LEDConfig) StepInterval() time.Duration {
	return time.Duration(c.StepIntervalMs) * time.Millisecond
}

func (c LEDConfig) BlinkHalf() time.Duration {
	return time.Duration(c.BlinkHalfMs) * time.Millisecond
}

func (c LEDConfig) ErrorBlink() time.Duration {
	return time.Duration(c.ErrorBlinkMs) * time.Millisecond
}

type ScreenConfig struct {
	Enabled bool   `yaml:"enabled"`
	I2CBus  string `yaml:"i2c_bus"`
}

type ControlConfig struct {
	TickMs     int `yaml:"tick_ms"`
	StopMs     int `yaml:"stop_ms"`
	ReverseMs  int `yaml:"reverse_ms"`
	NearCM     int `yaml:"near_cm"`
	FarCM      int `yaml:"far_cm"`
	ReversePct int `yaml:"reverse_pct"`
	CreepPct   int `yaml:"creep_pct"`
}

func (c ControlConfig) Tick() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

func (c ControlConfig) StopDwell() time.Duration {
	return time.Duration(c.StopMs) * time.Millisecond
}

func (c ControlConfig) ReverseDwell() time.Duration {
	return time.Duration(c.ReverseMs) * time.Millisecond
}

// ApplyDefaults fills every timing and threshold the yaml left at zero with
// the recommended value.
func (c *Config) ApplyDefaults() {
	defInt(&c.Sensor.MinIntervalMs, DEFAULT_MIN_INTERVAL_MS)
	defInt(&c.Sensor.EchoTimeoutMs, DEFAULT_ECHO_TIMEOUT_MS)

	defInt(&c.Motor.DeadbandPct, DEFAULT_DEADBAND_PCT)

	defInt(&c.LED.StepIntervalMs, DEFAULT_STEP_MS)
	defInt(&c.LED.BlinkHalfMs, DEFAULT_BLINK_HALF_MS)
	defInt(&c.LED.ErrorBlinkMs, DEFAULT_ERROR_BLINK_MS)
	defInt(&c.LED.DimBrightness, DEFAULT_DIM_BRIGHTNESS)

	defInt(&c.Control.TickMs, DEFAULT_TICK_MS)
	defInt(&c.Control.StopMs, DEFAULT_STOP_MS)
	defInt(&c.Control.ReverseMs, DEFAULT_REVERSE_MS)
	defInt(&c.Control.NearCM, DEFAULT_NEAR_CM)
	defInt(&c.Control.FarCM, DEFAULT_FAR_CM)
	defInt(&c.Control.ReversePct, DEFAULT_REVERSE_PCT)
	defInt(&c.Control.CreepPct, DEFAULT_CREEP_PCT)
}

func defInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

// Validate gates the schema version and sanity checks the thresholds. Pin
// assignments are checked later, at hardware construction.
func (c *Config) Validate() (err error) {
	ver, err := semver.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("config version %q is not a semver: %v", c.Version, err)
	}

	constraint, err := semver.NewConstraint(CONFIG_VERSION)
	if err != nil {
		return
	}

	if !constraint.Check(ver) {
		return fmt.Errorf("unable to use config version %s - require %s", c.Version, CONFIG_VERSION)
	}

	if c.Control.NearCM >= c.Control.FarCM {
		return fmt.Errorf("near threshold %dcm must sit below far threshold %dcm", c.Control.NearCM, c.Control.FarCM)
	}

	if c.LED.DimBrightness < 0 || c.LED.DimBrightness > 255 {
		return fmt.Errorf("dim brightness %d must fit in 0..255", c.LED.DimBrightness)
	}

	return nil
}
