package hardware

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/physic"
)

// stubPin records level writes and reports an edge on every wait without
// ever changing its read level, like a line stuck with coupling noise.
type stubPin struct {
	level gpio.Level
	outs  []gpio.Level
}

func (p *stubPin) String() string { return "stub" }
func (p *stubPin) Halt() error { return nil }
func (p *stubPin) Name() string { return "stub" }
func (p *stubPin) Number() int { return 0 }
func (p *stubPin) Function() string { return "In/Out" }
func (p *stubPin) In(gpio.Pull, gpio.Edge) error { return nil }
func (p *stubPin) Read() gpio.Level { return p.level }
func (p *stubPin) WaitForEdge(time.Duration) bool { return true }
func (p *stubPin) Pull() gpio.Pull { return gpio.PullDown }
func (p *stubPin) DefaultPull() gpio.Pull { return gpio.PullDown }
func (p *stubPin) Out(l gpio.Level) error { p.outs = append(p.outs, l); return nil }
func (p *stubPin) PWM(gpio.Duty, physic.Frequency) error { return nil }

func TestDutyFromByte(t *testing.T) {
	Convey("the byte range spans the full periph duty range", t, func() {
		So(DutyFromByte(0), ShouldEqual, gpio.Duty(0))
		So(DutyFromByte(255), ShouldEqual, gpio.DutyMax)
	})

	Convey("the scaling is monotonic", t, func() {
		prev := DutyFromByte(0)
		for v := 1; v <= 255; v++ {
			duty := DutyFromByte(uint8(v))
			So(duty, ShouldBeGreaterThan, prev)
			prev = duty
		}
	})
}

func TestGPIOPingerPing(t *testing.T) {
	Convey("given a pinger on stub lines", t, func() {
		trig := new(stubPin)
		echo := new(stubPin)
		pinger := &GPIOPinger{trig: trig, echo: echo}

		Convey("the trigger pulse is low, high, low", func() {
			pinger.Ping(time.Millisecond)
			So(trig.outs, ShouldResemble, []gpio.Level{gpio.Low, gpio.High, gpio.Low})
		})

		Convey("edges that never raise the line give up at the deadline", func() {
			begin := time.Now()
			echoed := pinger.Ping(5 * time.Millisecond)
			So(echoed, ShouldEqual, 0)
			So(time.Since(begin), ShouldBeLessThan, time.Second)
		})

		Convey("a pulse that never falls gives up at the deadline too", func() {
			echo.level = gpio.High
			begin := time.Now()
			echoed := pinger.Ping(5 * time.Millisecond)
			So(echoed, ShouldEqual, 0)
			So(time.Since(begin), ShouldBeLessThan, time.Second)
		})
	})
}
