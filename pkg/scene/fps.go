package scene

import "time"

// FPSCounter counts buffer swaps and reports the averaged frame rate to its
// listeners once per reporting interval.
type FPSCounter struct {
	interval    time.Duration
	frames      int
	windowStart time.Time
	listeners   []func(float64)
	now         func() time.Time
}

// NewFPSCounter creates a counter reporting once per interval
func NewFPSCounter(interval time.Duration) *FPSCounter {
	if interval <= 0 {
		interval = time.Second
	}
	return &FPSCounter{interval: interval, now: time.Now}
}

// AddListener registers a callback receiving each frame rate report
func (c *FPSCounter) AddListener(fn func(fps float64)) {
	c.listeners = append(c.listeners, fn)
}

// Tick records one displayed frame. When a reporting interval has elapsed
// the averaged rate is delivered to all listeners and the window restarts.
func (c *FPSCounter) Tick() {
	if c.now == nil {
		c.now = time.Now
	}
	if c.interval <= 0 {
		c.interval = time.Second
	}

	t := c.now()
	if c.windowStart.IsZero() {
		c.windowStart = t
	}
	c.frames++

	elapsed := t.Sub(c.windowStart)
	if elapsed < c.interval {
		return
	}

	fps := float64(c.frames) / elapsed.Seconds()
	for _, fn := range c.listeners {
		fn(fps)
	}
	c.frames = 0
	c.windowStart = t
}
