package hardware

import (
	"fmt"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/conn/physic"
)

// PWM_FREQ is well above anything audible from the motor windings.
const PWM_FREQ = 25 * physic.KiloHertz

// GPIOPWMPin drives a single PWM capable GPIO line. Full off and full on
// are written as plain levels so the pin is released from the PWM clock.
type GPIOPWMPin struct {
	pin gpio.PinIO
}

func NewGPIOPWMPin(name string) (p *GPIOPWMPin, err error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("no GPIO pin named %s", name)
	}

	if err = pin.Out(gpio.Low); err != nil {
		return nil, err
	}

	return &GPIOPWMPin{pin: pin}, nil
}

func (p *GPIOPWMPin) Write(duty uint8) error {
	switch duty {
	case 0:
		return p.pin.Out(gpio.Low)
	case 255:
		return p.pin.Out(gpio.High)
	default:
		return p.pin.PWM(DutyFromByte(duty), PWM_FREQ)
	}
}

// DutyFromByte scales an 8 bit duty value onto the periph duty range.
func DutyFromByte(v uint8) gpio.Duty {
	return gpio.Duty(int64(v) * int64(gpio.DutyMax) / 255)
}

// GPIOPinger implements the HC-SR04 trigger/echo protocol on two GPIO
// lines: hold the trigger high for >=10us after a short settle, then
// measure the high pulse on the echo line.
type GPIOPinger struct {
	trig gpio.PinIO
	echo gpio.PinIO
}

func NewGPIOPinger(trigName, echoName string) (p *GPIOPinger, err error) {
	p = new(GPIOPinger)

	if p.trig = gpioreg.ByName(trigName); p.trig == nil {
		return nil, fmt.Errorf("no GPIO pin named %s", trigName)
	}
	if p.echo = gpioreg.ByName(echoName); p.echo == nil {
		return nil, fmt.Errorf("no GPIO pin named %s", echoName)
	}

	if err = p.trig.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err = p.echo.In(gpio.PullDown, gpio.BothEdges); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *GPIOPinger) Ping(timeout time.Duration) time.Duration {
	p.trig.Out(gpio.Low)
	time.Sleep(2 * time.Microsecond)
	p.trig.Out(gpio.High)
	time.Sleep(10 * time.Microsecond)
	p.trig.Out(gpio.Low)

	deadline := time.Now().Add(timeout)

	// rising edge of the echo pulse
	for !p.echo.Read() {
		// a non-positive wait would block WaitForEdge indefinitely
		remaining := time.Until(deadline)
		if remaining <= 0 || !p.echo.WaitForEdge(remaining) {
			return 0
		}
	}
	start := time.Now()

	// falling edge ends the measurement
	for p.echo.Read() {
		remaining := time.Until(deadline)
		if remaining <= 0 || !p.echo.WaitForEdge(remaining) {
			return 0
		}
	}

	return time.Since(start)
}
