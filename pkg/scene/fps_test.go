package scene

import (
	"testing"
	"time"
)

func TestFPSCounterReportsAverage(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewFPSCounter(time.Second)
	c.now = func() time.Time { return now }

	var reports []float64
	c.AddListener(func(fps float64) { reports = append(reports, fps) })

	// First tick opens the window, five more land exactly on the interval
	c.Tick()
	for i := 0; i < 5; i++ {
		now = now.Add(200 * time.Millisecond)
		c.Tick()
	}

	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	if reports[0] != 6.0 {
		t.Errorf("fps = %v, want 6", reports[0])
	}

	// The window restarts after a report
	for i := 0; i < 2; i++ {
		now = now.Add(500 * time.Millisecond)
		c.Tick()
	}

	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[1] != 2.0 {
		t.Errorf("fps after window restart = %v, want 2", reports[1])
	}
}

func TestFPSCounterSilentWithinWindow(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewFPSCounter(time.Second)
	c.now = func() time.Time { return now }

	reported := false
	c.AddListener(func(float64) { reported = true })

	for i := 0; i < 10; i++ {
		now = now.Add(50 * time.Millisecond)
		c.Tick()
	}
	if reported {
		t.Error("counter reported before the interval elapsed")
	}
}

func TestFPSCounterDefaultInterval(t *testing.T) {
	c := NewFPSCounter(0)
	if c.interval != time.Second {
		t.Errorf("interval = %v, want %v", c.interval, time.Second)
	}
}
