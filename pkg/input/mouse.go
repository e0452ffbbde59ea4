// Package input dispatches pointer and wheel interactions to registered
// listeners and records them for deterministic replay.
package input

// Listener receives dispatched interaction events. The Controller is the
// primary listener; anything implementing this interface can observe the
// same stream.
type Listener interface {
	LeftDown()
	LeftUp()
	RightDown()
	RightUp()
	DoubleClick()
	Scroll(rotation, delta int, axis WheelAxis)
	MoveTo(x, y int)
}

// Mouse fans each reported interaction out to all registered listeners in
// registration order. It implements Listener itself so dispatchers can be
// chained.
type Mouse struct {
	listeners []Listener
}

// AddListener registers a listener. Listeners cannot be removed.
func (m *Mouse) AddListener(l Listener) {
	m.listeners = append(m.listeners, l)
}

func (m *Mouse) LeftDown() {
	for _, l := range m.listeners {
		l.LeftDown()
	}
}

func (m *Mouse) LeftUp() {
	for _, l := range m.listeners {
		l.LeftUp()
	}
}

func (m *Mouse) RightDown() {
	for _, l := range m.listeners {
		l.RightDown()
	}
}

func (m *Mouse) RightUp() {
	for _, l := range m.listeners {
		l.RightUp()
	}
}

func (m *Mouse) DoubleClick() {
	for _, l := range m.listeners {
		l.DoubleClick()
	}
}

func (m *Mouse) Scroll(rotation, delta int, axis WheelAxis) {
	for _, l := range m.listeners {
		l.Scroll(rotation, delta, axis)
	}
}

func (m *Mouse) MoveTo(x, y int) {
	for _, l := range m.listeners {
		l.MoveTo(x, y)
	}
}
