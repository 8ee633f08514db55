package drive

import (
	"sync"
	"time"
)

// SimClock is a manually advanced Clock, shared by tests and the -sim mode
// plumbing.
type SimClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewSimClock() *SimClock {
	// anything nonzero, so zero-time checks in the components still work
	return &SimClock{now: time.Unix(1, 0)}
}

func (c *SimClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *SimClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// SimPinger stands in for the ultrasonic hardware. The simulated distance
// is set from the shell or a test; every Ping synthesizes the matching echo
// width and counts so rate limiting can be asserted on.
type SimPinger struct {
	mu         sync.Mutex
	distanceCM int
	pings      int
}

func NewSimPinger(distanceCM int) *SimPinger {
	return &SimPinger{distanceCM: distanceCM}
}

// SetDistance changes the simulated obstruction. Zero or negative simulates
// a clear path, which the sensor sees as an echo timeout.
func (p *SimPinger) SetDistance(cm int) {
	p.mu.Lock()
	p.distanceCM = cm
	p.mu.Unlock()
}

func (p *SimPinger) Pings() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pings
}

func (p *SimPinger) Ping(timeout time.Duration) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pings++
	if p.distanceCM <= 0 {
		return 0
	}
	return time.Duration(p.distanceCM*US_PER_CM) * time.Microsecond
}

// SimPWMPin records the duty writes applied to it.
type SimPWMPin struct {
	mu     sync.Mutex
	duty   uint8
	writes int
}

func (p *SimPWMPin) Write(duty uint8) error {
	p.mu.Lock()
	p.duty = duty
	p.writes++
	p.mu.Unlock()
	return nil
}

func (p *SimPWMPin) Duty() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duty
}

func (p *SimPWMPin) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

// SimScreen keeps the last telemetry handed to the presenter.
type SimScreen struct {
	mu         sync.Mutex
	distanceCM int
	speedPct   int
	errActive  bool
	renders    int
}

func (s *SimScreen) Render(distanceCM, speedPct int, errActive bool) error {
	s.mu.Lock()
	s.distanceCM = distanceCM
	s.speedPct = speedPct
	s.errActive = errActive
	s.renders++
	s.mu.Unlock()
	return nil
}

func (s *SimScreen) Last() (distanceCM, speedPct int, errActive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.distanceCM, s.speedPct, s.errActive
}

func (s *SimScreen) Renders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}
