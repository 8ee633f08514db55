package drive

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v2"
)

const testYaml = `
version: "3.0.2"
sensor:
  trig_pin: GPIO23
  echo_pin: GPIO24
  min_interval_ms: 60
motor:
  forward_pin: GPIO12
  reverse_pin: GPIO13
led:
  red_pin: GPIO17
  green_pin: GPIO27
  blue_pin: GPIO22
screen:
  enabled: true
  i2c_bus: "1"
control:
  far_cm: 80
`

func TestConfigParsing(t *testing.T) {
	var config Config

	Convey("parsing is successful", t, func() {
		err := yaml.Unmarshal([]byte(testYaml), &config)
		So(err, ShouldBeNil)

		Convey("pins and overrides are set", func() {
			So(config.Sensor.TrigPin, ShouldEqual, "GPIO23")
			So(config.Sensor.MinIntervalMs, ShouldEqual, 60)
			So(config.Control.FarCM, ShouldEqual, 80)
		})

		Convey("defaults fill everything the yaml left out", func() {
			config.ApplyDefaults()

			So(config.Sensor.MinIntervalMs, ShouldEqual, 60) // explicit value kept
			So(config.Sensor.EchoTimeoutMs, ShouldEqual, DEFAULT_ECHO_TIMEOUT_MS)
			So(config.Motor.DeadbandPct, ShouldEqual, DEFAULT_DEADBAND_PCT)
			So(config.LED.BlinkHalfMs, ShouldEqual, DEFAULT_BLINK_HALF_MS)
			So(config.Control.TickMs, ShouldEqual, DEFAULT_TICK_MS)
			So(config.Control.NearCM, ShouldEqual, DEFAULT_NEAR_CM)
			So(config.Control.ReversePct, ShouldEqual, DEFAULT_REVERSE_PCT)

			So(config.Control.Tick(), ShouldEqual, 10*time.Millisecond)
			So(config.Sensor.MinInterval(), ShouldEqual, 60*time.Millisecond)
		})

		Convey("the schema version gate accepts the pinned series", func() {
			config.ApplyDefaults()
			So(config.Validate(), ShouldBeNil)
		})
	})
}

func TestConfigValidate(t *testing.T) {
	base := func() Config {
		var config Config
		yaml.Unmarshal([]byte(testYaml), &config)
		config.ApplyDefaults()
		return config
	}

	Convey("a config from another series is rejected", t, func() {
		config := base()
		config.Version = "2.9.0"
		So(config.Validate(), ShouldNotBeNil)

		config.Version = "3.1.0"
		So(config.Validate(), ShouldNotBeNil)
	})

	Convey("a junk version string is rejected", t, func() {
		config := base()
		config.Version = "latest"
		So(config.Validate(), ShouldNotBeNil)
	})

	Convey("inverted thresholds are rejected", t, func() {
		config := base()
		config.Control.NearCM = 90
		So(config.Validate(), ShouldNotBeNil)
	})

	Convey("a dim brightness outside the 8 bit range is rejected", t, func() {
		config := base()
		config.LED.DimBrightness = 300
		So(config.Validate(), ShouldNotBeNil)

		config.LED.DimBrightness = -1
		So(config.Validate(), ShouldNotBeNil)

		config.LED.DimBrightness = 255
		So(config.Validate(), ShouldBeNil)
	})
}
