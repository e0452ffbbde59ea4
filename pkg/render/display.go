package render

import (
	"image"

	"github.com/Kp61dude/PrusaSlicer/pkg/scene"
)

// ImageDisplay is an offscreen display. Repaint renders the bound scene
// into an RGBA frame and hands it to the OnFrame hook, so headless replay,
// the terminal shell and tests can all consume frames without a window
// system.
type ImageDisplay struct {
	scene.DisplayBase

	renderer *Renderer
	scene    *scene.Scene
	frame    *image.RGBA

	// OnFrame, when set, receives every rendered frame
	OnFrame func(*image.RGBA)
}

// NewImageDisplay creates an offscreen display at the given size
func NewImageDisplay(width, height int) *ImageDisplay {
	d := &ImageDisplay{
		DisplayBase: scene.NewDisplayBase(),
		renderer:    New(),
	}
	d.SetActive(width, height)
	return d
}

// SetScene binds the scene rendered on Repaint
func (d *ImageDisplay) SetScene(s *scene.Scene) {
	d.scene = s
}

// Repaint renders a fresh frame and presents it
func (d *ImageDisplay) Repaint() {
	w, h := d.Size()
	if w <= 0 || h <= 0 {
		return
	}
	d.frame = d.renderer.Render(d.scene, d.Settings(), w, h)
	d.SwapBuffers()
	if d.OnFrame != nil {
		d.OnFrame(d.frame)
	}
}

// Frame returns the last rendered frame, or nil before the first Repaint
func (d *ImageDisplay) Frame() *image.RGBA {
	return d.frame
}
