package input

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// captureListener records every dispatched call with its parameters
type captureListener struct {
	calls []string
}

func (c *captureListener) LeftDown()    { c.calls = append(c.calls, "left-down") }
func (c *captureListener) LeftUp()      { c.calls = append(c.calls, "left-up") }
func (c *captureListener) RightDown()   { c.calls = append(c.calls, "right-down") }
func (c *captureListener) RightUp()     { c.calls = append(c.calls, "right-up") }
func (c *captureListener) DoubleClick() { c.calls = append(c.calls, "double-click") }

func (c *captureListener) Scroll(rotation, delta int, axis WheelAxis) {
	c.calls = append(c.calls, fmt.Sprintf("scroll(%d,%d,%d)", rotation, delta, axis))
}

func (c *captureListener) MoveTo(x, y int) {
	c.calls = append(c.calls, fmt.Sprintf("move(%d,%d)", x, y))
}

func (c *captureListener) joined() string {
	return strings.Join(c.calls, " ")
}

func TestRecordSaveLoadReplay(t *testing.T) {
	rec := NewRecorder(nil)
	if err := rec.Record(true); err != nil {
		t.Fatalf("failed to start recording: %v", err)
	}
	rec.MoveTo(10, 20)
	rec.LeftDown()
	rec.LeftUp()
	if err := rec.Record(false); err != nil {
		t.Fatalf("failed to stop recording: %v", err)
	}

	var buf bytes.Buffer
	if err := rec.Save(&buf); err != nil {
		t.Fatalf("failed to save log: %v", err)
	}

	fresh := NewRecorder(nil)
	listener := &captureListener{}
	fresh.AddListener(listener)

	if err := fresh.Load(strings.NewReader(buf.String())); err != nil {
		t.Fatalf("failed to load log: %v", err)
	}
	if err := fresh.Play(); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	want := "move(10,20) left-down left-up"
	if got := listener.joined(); got != want {
		t.Errorf("replay failed: expected %q, got %q", want, got)
	}
}

func TestReplayIsRepeatable(t *testing.T) {
	rec := NewRecorder(nil)
	listener := &captureListener{}
	rec.AddListener(listener)

	rec.Record(true)
	rec.LeftDown()
	rec.MoveTo(5, 5)
	rec.LeftUp()
	rec.Record(false)

	want := listener.joined()
	for i := 0; i < 3; i++ {
		listener.calls = nil
		if err := rec.Play(); err != nil {
			t.Fatalf("replay %d failed: %v", i, err)
		}
		if got := listener.joined(); got != want {
			t.Errorf("replay %d diverged: expected %q, got %q", i, want, got)
		}
	}
}

func TestRecordingStillDrivesListeners(t *testing.T) {
	rec := NewRecorder(nil)
	listener := &captureListener{}
	rec.AddListener(listener)

	rec.Record(true)
	rec.LeftDown()
	rec.LeftUp()
	rec.Record(false)

	if got := listener.joined(); got != "left-down left-up" {
		t.Errorf("recorded events must still reach listeners, got %q", got)
	}
	if got := len(rec.Events()); got != 2 {
		t.Errorf("expected 2 logged events, got %d", got)
	}
}

func TestNewRecordingClearsLog(t *testing.T) {
	rec := NewRecorder(nil)
	rec.Record(true)
	rec.LeftDown()
	rec.Record(false)

	rec.Record(true)
	if got := len(rec.Events()); got != 0 {
		t.Errorf("starting a recording must clear the log, have %d events", got)
	}
}

func TestStoppingKeepsLog(t *testing.T) {
	rec := NewRecorder(nil)
	rec.Record(true)
	rec.DoubleClick()
	rec.Record(false)

	if got := len(rec.Events()); got != 1 {
		t.Errorf("stopping a recording must keep the log, have %d events", got)
	}
	if rec.State() != Idle {
		t.Errorf("expected Idle after stopping, got %v", rec.State())
	}
}

func TestPlayRejectedWhileRecording(t *testing.T) {
	rec := NewRecorder(nil)
	rec.Record(true)
	rec.MoveTo(1, 2)

	if err := rec.Play(); err == nil {
		t.Fatal("expected replay to be rejected while recording")
	}
	if rec.State() != Recording {
		t.Errorf("rejected replay must not change state, got %v", rec.State())
	}
	if got := len(rec.Events()); got != 1 {
		t.Errorf("recording log must stay intact, have %d events", got)
	}
}

func TestRecordRejectedDuringReplay(t *testing.T) {
	rec := NewRecorder(nil)
	rec.Record(true)
	rec.LeftDown()
	rec.Record(false)

	var yieldErr error
	rec.SetYield(func() {
		yieldErr = rec.Record(true)
	})

	if err := rec.Play(); err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if yieldErr == nil {
		t.Error("expected recording to be rejected during replay")
	}
	if got := len(rec.Events()); got != 1 {
		t.Errorf("log must survive the rejected recording, have %d events", got)
	}
	if rec.State() != Idle {
		t.Errorf("expected Idle after replay, got %v", rec.State())
	}
}

func TestExternalEventsSuppressedDuringReplay(t *testing.T) {
	rec := NewRecorder(nil)
	listener := &captureListener{}
	rec.AddListener(listener)

	rec.Record(true)
	rec.LeftDown()
	rec.Record(false)
	listener.calls = nil

	// Events arriving through the recorder while it replays must not be
	// forwarded; only the replayed stream reaches the listeners.
	rec.SetYield(func() {
		rec.MoveTo(99, 99)
	})
	if err := rec.Play(); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	if got := listener.joined(); got != "left-down" {
		t.Errorf("expected only the replayed event, got %q", got)
	}
}

func TestScrollReplaysVertical(t *testing.T) {
	rec := NewRecorder(nil)
	listener := &captureListener{}
	rec.AddListener(listener)

	rec.Record(true)
	rec.Scroll(120, 120, Horizontal)
	rec.Record(false)
	listener.calls = nil

	if err := rec.Play(); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	want := fmt.Sprintf("scroll(120,120,%d)", Vertical)
	if got := listener.joined(); got != want {
		t.Errorf("scroll axis failed: expected %q, got %q", want, got)
	}
}

func TestYieldRunsBetweenEvents(t *testing.T) {
	rec := NewRecorder(nil)
	rec.Record(true)
	rec.LeftDown()
	rec.MoveTo(1, 1)
	rec.LeftUp()
	rec.Record(false)

	yields := 0
	rec.SetYield(func() { yields++ })

	if err := rec.Play(); err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if yields != 3 {
		t.Errorf("expected one yield per event, got %d yields for 3 events", yields)
	}
}
