package input

// Kind identifies one interaction event type. The numeric values are part of
// the recorded log format and must stay stable across releases.
type Kind int

const (
	LeftUp Kind = iota
	RightUp
	LeftDown
	RightDown
	DoubleClick
	Scroll
	Move
)

// WheelAxis selects the scroll direction of a wheel event
type WheelAxis int

const (
	Vertical WheelAxis = iota
	Horizontal
)

// Event is a single recorded interaction. The meaning of A and B depends on
// the kind: pointer coordinates for Move, wheel rotation and delta-per-notch
// for Scroll, unused otherwise.
type Event struct {
	Kind Kind
	A, B int
}
