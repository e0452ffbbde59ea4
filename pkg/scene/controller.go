package scene

import "github.com/Kp61dude/PrusaSlicer/pkg/input"

// Pointer speeds, tuned for pixel-unit drag deltas
const (
	orbitSpeed = 0.01
	zoomStep   = 0.03
)

// Controller mediates between the scene and the attached displays. As an
// input listener it translates pointer and wheel events into camera and
// clip plane operations: left drag orbits, right drag pans, the wheel
// zooms and a double click returns to the home pose. The mapping is fixed
// so a replayed log reproduces the view state of the live session it was
// recorded from.
type Controller struct {
	scene    *Scene
	displays []Display

	leftDown  bool
	rightDown bool
	lastX     int
	lastY     int
	tracked   bool
}

// NewController creates a controller with no scene and no displays
func NewController() *Controller {
	return &Controller{}
}

// SetScene binds the scene the controller operates on
func (c *Controller) SetScene(s *Scene) {
	c.scene = s
}

// Scene returns the bound scene
func (c *Controller) Scene() *Scene {
	return c.scene
}

// AddDisplay attaches a display. All attached displays are repainted after
// every scene mutation.
func (c *Controller) AddDisplay(d Display) {
	c.displays = append(c.displays, d)
}

// MoveClipPlane sets the clip plane from a 0-100 slider position and
// repaints all displays
func (c *Controller) MoveClipPlane(percent float64) {
	if c.scene == nil {
		return
	}
	c.scene.SetClipPercent(percent)
	c.repaintAll()
}

// SceneUpdated tells the controller that scene content changed out of band,
// typically after a job committed a new print. The camera is refitted to
// the print and every display repainted.
func (c *Controller) SceneUpdated(s *Scene) {
	if s == nil {
		s = c.scene
	}
	if s == nil {
		return
	}
	if p := s.Print(); p != nil {
		s.Camera().FitBox(p.Bounds)
	}
	c.repaintAll()
}

func (c *Controller) repaintAll() {
	for _, d := range c.displays {
		d.Repaint()
	}
}

func (c *Controller) LeftDown() {
	c.leftDown = true
}

func (c *Controller) LeftUp() {
	c.leftDown = false
}

func (c *Controller) RightDown() {
	c.rightDown = true
}

func (c *Controller) RightUp() {
	c.rightDown = false
}

// DoubleClick restores the camera home pose
func (c *Controller) DoubleClick() {
	if c.scene == nil {
		return
	}
	c.scene.Camera().Reset()
	c.repaintAll()
}

// Scroll zooms the camera. Rotation counts in units of delta per wheel
// notch; horizontal wheel motion is ignored.
func (c *Controller) Scroll(rotation, delta int, axis input.WheelAxis) {
	if c.scene == nil || axis != input.Vertical {
		return
	}
	if delta == 0 {
		delta = 120
	}
	notches := float64(rotation) / float64(delta)
	c.scene.Camera().Zoom(-notches * zoomStep)
	c.repaintAll()
}

// MoveTo tracks the pointer and applies the active drag operation
func (c *Controller) MoveTo(x, y int) {
	if c.scene == nil {
		return
	}
	if !c.tracked {
		c.lastX, c.lastY = x, y
		c.tracked = true
		return
	}

	dx := float64(x - c.lastX)
	dy := float64(y - c.lastY)
	c.lastX, c.lastY = x, y

	switch {
	case c.leftDown:
		c.scene.Camera().Rotate(-dy*orbitSpeed, dx*orbitSpeed)
		c.repaintAll()
	case c.rightDown:
		c.scene.Camera().Pan(dx, dy)
		c.repaintAll()
	}
}
