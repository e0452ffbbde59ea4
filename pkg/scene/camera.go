package scene

import (
	"math"

	"github.com/Kp61dude/PrusaSlicer/pkg/geometry"
)

type cameraPose struct {
	target    geometry.Vector3
	distance  float64
	rotationX float64
	rotationY float64
}

// Camera is a spherical orbit camera. The eye position is derived from the
// target, the distance and the two rotation angles, so every mutation keeps
// the camera orbiting the target.
type Camera struct {
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Field of view in radians
	Distance  float64
	RotationX float64 // Rotation around X axis (vertical)
	RotationY float64 // Rotation around Y axis (horizontal)

	home cameraPose
}

// NewCamera creates a camera with the default orbit pose
func NewCamera() *Camera {
	c := &Camera{
		Up:        geometry.NewVector3(0, 1, 0),
		FOV:       math.Pi / 4, // 45 degrees
		Distance:  10,
		RotationX: 0.3,
		RotationY: 0.3,
	}
	c.home = c.pose()
	return c
}

func (c *Camera) pose() cameraPose {
	return cameraPose{
		target:    c.Target,
		distance:  c.Distance,
		rotationX: c.RotationX,
		rotationY: c.RotationY,
	}
}

// Position returns the eye position for the current orbit state
func (c *Camera) Position() geometry.Vector3 {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	return c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate orbits the camera by the given angle deltas
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Clamp X rotation to prevent gimbal lock
	maxAngle := math.Pi/2 - 0.1
	if c.RotationX > maxAngle {
		c.RotationX = maxAngle
	}
	if c.RotationX < -maxAngle {
		c.RotationX = -maxAngle
	}
}

// Pan moves the orbit target along the view plane. The speed scales with
// the camera distance so panning feels uniform at any zoom level.
func (c *Camera) Pan(deltaX, deltaY float64) {
	forward := c.Target.Sub(c.Position()).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()

	panSpeed := c.Distance * 0.001

	c.Target = c.Target.Add(right.Mul(-deltaX * panSpeed))
	c.Target = c.Target.Add(up.Mul(deltaY * panSpeed))
}

// Zoom changes the camera distance by a relative factor
func (c *Camera) Zoom(delta float64) {
	c.Distance *= (1.0 + delta)
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
}

// FitBox re-targets the camera onto a bounding box and remembers the
// resulting pose as the new home position for Reset
func (c *Camera) FitBox(bbox geometry.BoundingBox) {
	if bbox.IsEmpty() {
		return
	}

	size := bbox.Size()
	c.Target = bbox.Center()
	c.Distance = math.Max(size.X, math.Max(size.Y, size.Z)) * 2.0
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}

	c.home = c.pose()
}

// Reset restores the last pose remembered by FitBox
func (c *Camera) Reset() {
	c.Target = c.home.target
	c.Distance = c.home.distance
	c.RotationX = c.home.rotationX
	c.RotationY = c.home.rotationY
}

// Project projects a 3D point to 2D screen coordinates, returning the
// screen position and the view-space depth
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	position := c.Position()

	forward := c.Target.Sub(position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()

	// Transform to camera space
	relative := point.Sub(position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	// Perspective projection
	if z <= 0.01 {
		z = 0.01 // Prevent division by zero
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}
