package drive

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDutyForPercent(t *testing.T) {
	Convey("zero maps to zero", t, func() {
		So(DutyForPercent(0), ShouldEqual, 0)
	})

	Convey("the mapping is strictly increasing and never idles a live command", t, func() {
		prev := DutyForPercent(1)
		So(prev, ShouldBeGreaterThanOrEqualTo, 1)

		for pct := 2; pct <= 100; pct++ {
			duty := DutyForPercent(pct)
			So(duty, ShouldBeGreaterThan, prev)
			prev = duty
		}
		So(prev, ShouldEqual, 255)
	})
}

func TestMotor(t *testing.T) {
	cfg := MotorConfig{DeadbandPct: 3}

	Convey("given a motor on two recording legs", t, func() {
		fwd := new(SimPWMPin)
		rev := new(SimPWMPin)
		motor := NewMotor(fwd, rev, cfg)

		Convey("a forward command drives the forward leg only", func() {
			motor.SetSpeed(50)
			So(fwd.Duty(), ShouldEqual, 127)
			So(rev.Duty(), ShouldEqual, 0)
		})

		Convey("a reverse command drives the reverse leg only", func() {
			motor.SetSpeed(-50)
			So(fwd.Duty(), ShouldEqual, 0)
			So(rev.Duty(), ShouldEqual, 127)
		})

		Convey("out of range commands are clamped", func() {
			motor.SetSpeed(150)
			So(fwd.Duty(), ShouldEqual, 255)

			motor.SetSpeed(-150)
			So(rev.Duty(), ShouldEqual, 255)
		})

		Convey("commands inside the deadband coast regardless of sign", func() {
			motor.SetSpeed(2)
			So(fwd.Duty(), ShouldEqual, 0)
			So(rev.Duty(), ShouldEqual, 0)

			writes := fwd.Writes()
			motor.SetSpeed(-2)
			So(fwd.Writes(), ShouldEqual, writes) // coerced to the same 0, coalesced
		})

		Convey("repeating the last applied value skips the hardware writes", func() {
			motor.SetSpeed(40)
			writes := fwd.Writes() + rev.Writes()

			motor.SetSpeed(40)
			So(fwd.Writes()+rev.Writes(), ShouldEqual, writes)

			motor.SetSpeed(41)
			So(fwd.Writes()+rev.Writes(), ShouldEqual, writes+2)
		})

		Convey("speed commands and brakes from separate goroutines serialize", func() {
			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				for i := 0; i < 500; i++ {
					motor.SetSpeed(i % 101)
				}
			}()
			go func() {
				defer wg.Done()
				for i := 0; i < 500; i++ {
					motor.Brake()
				}
			}()
			wg.Wait()

			// the motor still converges on a clean state afterwards
			motor.Brake()
			motor.SetSpeed(40)
			So(fwd.Duty(), ShouldEqual, 102)
			So(rev.Duty(), ShouldEqual, 0)
		})

		Convey("brake shorts both legs whatever was commanded before", func() {
			motor.SetSpeed(60)
			motor.Brake()
			So(fwd.Duty(), ShouldEqual, 255)
			So(rev.Duty(), ShouldEqual, 255)

			Convey("and the next command always writes through", func() {
				motor.SetSpeed(60)
				So(fwd.Duty(), ShouldEqual, 153)
				So(rev.Duty(), ShouldEqual, 0)
			})
		})
	})
}
