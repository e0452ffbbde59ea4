package input

import "errors"

// State is the recorder's mode. Recording and playing are mutually
// exclusive by construction.
type State int

const (
	Idle State = iota
	Recording
	Playing
)

var (
	ErrRecording = errors.New("a recording is in progress")
	ErrPlaying   = errors.New("a replay is in progress")
)

// Recorder wraps a Mouse dispatcher and captures the interactions flowing
// through it. While recording, every incoming event is appended to the log
// and still forwarded, so recorded interactions drive the live scene exactly
// as unrecorded ones do. Play re-injects the log into the wrapped dispatcher
// one event at a time, yielding to the host loop between events so a repaint
// can happen.
type Recorder struct {
	mouse  *Mouse
	events []Event
	state  State
	yield  func()
}

// NewRecorder wraps the given dispatcher. A nil dispatcher gets a fresh one.
func NewRecorder(m *Mouse) *Recorder {
	if m == nil {
		m = &Mouse{}
	}
	return &Recorder{mouse: m}
}

// Mouse returns the wrapped dispatcher.
func (r *Recorder) Mouse() *Mouse {
	return r.mouse
}

// AddListener registers a listener on the wrapped dispatcher.
func (r *Recorder) AddListener(l Listener) {
	r.mouse.AddListener(l)
}

// SetYield installs the hook called between replayed events. The host uses
// it to flush pending repaints; replay does not wait for them to finish.
func (r *Recorder) SetYield(fn func()) {
	r.yield = fn
}

// State returns the current recorder mode.
func (r *Recorder) State() State {
	return r.state
}

// Events returns a copy of the current log.
func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Record switches recording on or off. Switching it on clears the previous
// log; switching it off keeps the log for saving or replay. Recording cannot
// be toggled while a replay is running.
func (r *Recorder) Record(on bool) error {
	if r.state == Playing {
		return ErrPlaying
	}
	if on {
		r.events = nil
		r.state = Recording
	} else {
		r.state = Idle
	}
	return nil
}

// Play replays the log against the wrapped dispatcher. Each event is
// injected directly, bypassing the recorder's own capture path, and the
// yield hook runs after each one. Play is synchronous and returns once the
// last event has been dispatched. It is rejected unless the recorder is
// idle.
func (r *Recorder) Play() error {
	switch r.state {
	case Recording:
		return ErrRecording
	case Playing:
		return ErrPlaying
	}

	r.state = Playing
	defer func() { r.state = Idle }()

	for _, evt := range r.events {
		switch evt.Kind {
		case LeftUp:
			r.mouse.LeftUp()
		case LeftDown:
			r.mouse.LeftDown()
		case RightUp:
			r.mouse.RightUp()
		case RightDown:
			r.mouse.RightDown()
		case DoubleClick:
			r.mouse.DoubleClick()
		case Scroll:
			// The axis is not part of the log; recorded scrolls replay
			// as vertical wheel motion.
			r.mouse.Scroll(evt.A, evt.B, Vertical)
		case Move:
			r.mouse.MoveTo(evt.A, evt.B)
		}

		if r.yield != nil {
			r.yield()
		}
	}
	return nil
}

func (r *Recorder) LeftDown() {
	if r.state == Recording {
		r.events = append(r.events, Event{Kind: LeftDown})
	}
	if r.state != Playing {
		r.mouse.LeftDown()
	}
}

func (r *Recorder) LeftUp() {
	if r.state == Recording {
		r.events = append(r.events, Event{Kind: LeftUp})
	}
	if r.state != Playing {
		r.mouse.LeftUp()
	}
}

func (r *Recorder) RightDown() {
	if r.state == Recording {
		r.events = append(r.events, Event{Kind: RightDown})
	}
	if r.state != Playing {
		r.mouse.RightDown()
	}
}

func (r *Recorder) RightUp() {
	if r.state == Recording {
		r.events = append(r.events, Event{Kind: RightUp})
	}
	if r.state != Playing {
		r.mouse.RightUp()
	}
}

func (r *Recorder) DoubleClick() {
	if r.state == Recording {
		r.events = append(r.events, Event{Kind: DoubleClick})
	}
	if r.state != Playing {
		r.mouse.DoubleClick()
	}
}

func (r *Recorder) Scroll(rotation, delta int, axis WheelAxis) {
	if r.state == Recording {
		r.events = append(r.events, Event{Kind: Scroll, A: rotation, B: delta})
	}
	if r.state != Playing {
		r.mouse.Scroll(rotation, delta, axis)
	}
}

func (r *Recorder) MoveTo(x, y int) {
	if r.state == Recording {
		r.events = append(r.events, Event{Kind: Move, A: x, B: y})
	}
	if r.state != Playing {
		r.mouse.MoveTo(x, y)
	}
}
