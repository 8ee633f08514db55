package hardware

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/devices/ssd1306"
	"periph.io/x/periph/devices/ssd1306/image1bit"
)

const (
	SCREEN_W = 128
	SCREEN_H = 64

	// the proportional bar sits inside a frame along the bottom rows
	BAR_FRAME_Y = 50
	BAR_FRAME_H = 10
	BAR_INNER_W = 124
)

// OLEDScreen renders the status view on a 128x64 SSD1306 over I2C.
type OLEDScreen struct {
	dev *ssd1306.Dev
}

func NewOLEDScreen(busName string) (s *OLEDScreen, err error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("unable to open i2c bus %s: %v", busName, err)
	}

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("unable to init ssd1306: %v", err)
	}

	return &OLEDScreen{dev: dev}, nil
}

func (s *OLEDScreen) Render(distanceCM, speedPct int, errActive bool) error {
	img := ComposeStatus(distanceCM, speedPct, errActive)
	return s.dev.Draw(img.Bounds(), img, image.Point{})
}

// ComposeStatus draws the status view into a fresh 1 bit frame. Kept apart
// from the device write so the layout can be exercised without hardware.
func ComposeStatus(distanceCM, speedPct int, errActive bool) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, SCREEN_W, SCREEN_H))

	drawText(img, 0, 10, "Motor Control")

	if errActive {
		drawText(img, 0, 30, "ERROR: Timeout")
		drawText(img, 0, 42, fmt.Sprintf("Raw: %d cm", distanceCM))
		drawText(img, 0, 54, "Check sensor/wiring")
		return img
	}

	if distanceCM <= 0 {
		drawText(img, 0, 30, "No Obstruction")
	} else {
		drawText(img, 0, 30, fmt.Sprintf("Distance: %d cm", distanceCM))
	}

	if speedPct < 0 {
		drawText(img, 0, 42, fmt.Sprintf("PWM: %d%% REV", -speedPct))
	} else {
		drawText(img, 0, 42, fmt.Sprintf("PWM: %d%% FWD", speedPct))
	}

	mag := speedPct
	if mag < 0 {
		mag = -mag
	}
	if mag > 100 {
		mag = 100
	}

	drawFrame(img, 0, BAR_FRAME_Y, SCREEN_W, BAR_FRAME_H)
	if mag > 0 {
		drawBox(img, 2, BAR_FRAME_Y+2, mag*BAR_INNER_W/100, BAR_FRAME_H-4)
	}

	return img
}

func drawText(img *image1bit.VerticalLSB, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: image1bit.On},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func drawFrame(img *image1bit.VerticalLSB, x, y, w, h int) {
	for i := x; i < x+w; i++ {
		img.SetBit(i, y, image1bit.On)
		img.SetBit(i, y+h-1, image1bit.On)
	}
	for j := y; j < y+h; j++ {
		img.SetBit(x, j, image1bit.On)
		img.SetBit(x+w-1, j, image1bit.On)
	}
}

func drawBox(img *image1bit.VerticalLSB, x, y, w, h int) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			img.SetBit(i, j, image1bit.On)
		}
	}
}
