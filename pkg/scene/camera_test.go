package scene

import (
	"math"
	"testing"

	"github.com/Kp61dude/PrusaSlicer/pkg/geometry"
)

func TestCameraRotateClampsPitch(t *testing.T) {
	c := NewCamera()
	c.Rotate(10, 0)
	if want := math.Pi/2 - 0.1; c.RotationX != want {
		t.Errorf("RotationX = %v, want clamp at %v", c.RotationX, want)
	}
	c.Rotate(-20, 0)
	if want := -(math.Pi/2 - 0.1); c.RotationX != want {
		t.Errorf("RotationX = %v, want clamp at %v", c.RotationX, want)
	}
}

func TestCameraZoomKeepsMinimumDistance(t *testing.T) {
	c := NewCamera()
	c.Zoom(-5)
	if c.Distance != 0.1 {
		t.Errorf("Distance = %v, want floor of 0.1", c.Distance)
	}
}

func TestCameraPositionStaysOnOrbit(t *testing.T) {
	c := NewCamera()
	c.Rotate(0.5, -1.2)
	c.Zoom(0.25)
	if got := c.Position().Distance(c.Target); !almostEqual(got, c.Distance) {
		t.Errorf("eye is %v from the target, want %v", got, c.Distance)
	}
}

func TestCameraFitBoxBecomesHome(t *testing.T) {
	b := geometry.NewBoundingBox()
	b.Extend(geometry.NewVector3(-1, 0, 0))
	b.Extend(geometry.NewVector3(3, 2, 1))

	c := NewCamera()
	c.FitBox(b)
	if c.Target != geometry.NewVector3(1, 1, 0.5) {
		t.Errorf("Target = %v, want box center", c.Target)
	}
	if c.Distance != 8 {
		t.Errorf("Distance = %v, want 8", c.Distance)
	}

	c.Rotate(0.4, 0.4)
	c.Zoom(1)
	c.Reset()
	if c.Distance != 8 || c.Target != geometry.NewVector3(1, 1, 0.5) {
		t.Errorf("Reset left camera at distance %v target %v", c.Distance, c.Target)
	}
	if c.RotationX != 0.3 || c.RotationY != 0.3 {
		t.Errorf("Reset left rotation at (%v, %v)", c.RotationX, c.RotationY)
	}
}

func TestCameraFitBoxIgnoresEmptyBox(t *testing.T) {
	c := NewCamera()
	c.FitBox(geometry.NewBoundingBox())
	if c.Distance != 10 {
		t.Errorf("Distance = %v, want untouched 10", c.Distance)
	}
}
