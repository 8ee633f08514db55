package drive

import "github.com/mandedesign/rangedrive/drive/hardware"

// Presenter forwards per tick telemetry to the operator screen. It is a one
// way street: nothing rendered here feeds back into the control loop, and a
// screen that fails to draw is ignored, so the presenter can be absent
// entirely without changing control behavior.
type Presenter struct {
	screen hardware.Screen
}

func NewPresenter(screen hardware.Screen) *Presenter {
	return &Presenter{screen: screen}
}

func (p *Presenter) Update(distanceCM, speedPct int, errActive bool) {
	if p.screen == nil {
		return
	}
	p.screen.Render(distanceCM, speedPct, errActive)
}
