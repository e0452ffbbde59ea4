// Package scene holds the application state of the viewer: the loaded
// print, the shared camera and clip plane, the CSG render settings and the
// controller mediating between input events, the scene and its displays.
package scene

import (
	"github.com/Kp61dude/PrusaSlicer/pkg/sla"
)

// Scene owns the loaded print and the view state shared by every attached
// display. The print is replaced wholesale when a load job finishes; view
// state changes only through the Controller.
type Scene struct {
	print  *sla.Print
	camera *Camera
	clip   float64
}

// NewScene creates an empty scene awaiting a print
func NewScene() *Scene {
	return &Scene{camera: NewCamera()}
}

// SetPrint commits a loaded print into the scene, replacing any previous one
func (s *Scene) SetPrint(p *sla.Print) {
	s.print = p
}

// Print returns the committed print, or nil before the first load
func (s *Scene) Print() *sla.Print {
	return s.print
}

// Camera returns the scene camera shared by all displays
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetClipPercent sets how much of the model's top is cut away, clamped to
// [0, 100]
func (s *Scene) SetClipPercent(p float64) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	s.clip = p
}

// ClipPercent returns the current clip slider position
func (s *Scene) ClipPercent() float64 {
	return s.clip
}

// ClipZ resolves the clip percentage to a Z height inside the print's
// bounds. The plane descends from the top of the print as the percentage
// grows. The second return value is false while no print is loaded.
func (s *Scene) ClipZ() (float64, bool) {
	if s.print == nil || s.print.Bounds.IsEmpty() {
		return 0, false
	}
	b := s.print.Bounds
	return b.Max.Z - (b.Max.Z-b.Min.Z)*s.clip/100.0, true
}
