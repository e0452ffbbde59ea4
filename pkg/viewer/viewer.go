// Package viewer provides the fyne widget that presents rendered frames
// and feeds window mouse input into the interaction dispatcher.
package viewer

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/Kp61dude/PrusaSlicer/pkg/input"
	"github.com/Kp61dude/PrusaSlicer/pkg/render"
)

// One wheel notch in rotation units.
const wheelNotch = 120

// Viewport shows the frames of an offscreen display and translates fyne
// mouse events into dispatcher calls. All pointer activity goes through
// the recorder, so a recording session captures exactly what the
// controller saw.
type Viewport struct {
	widget.BaseWidget

	recorder *input.Recorder
	display  *render.ImageDisplay
	img      *canvas.Image
}

// NewViewport binds a display to the widget. The display's OnFrame hook
// is taken over to present frames; frames may be produced on any
// goroutine.
func NewViewport(rec *input.Recorder, display *render.ImageDisplay) *Viewport {
	v := &Viewport{
		recorder: rec,
		display:  display,
		img:      canvas.NewImageFromImage(display.Frame()),
	}
	v.img.FillMode = canvas.ImageFillStretch
	v.display.OnFrame = func(*image.RGBA) {
		fyne.Do(v.Refresh)
	}
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget.
func (v *Viewport) CreateRenderer() fyne.WidgetRenderer {
	return &viewportRenderer{viewport: v}
}

// MouseDown implements desktop.Mouseable.
func (v *Viewport) MouseDown(ev *desktop.MouseEvent) {
	switch ev.Button {
	case desktop.MouseButtonPrimary:
		v.recorder.LeftDown()
	case desktop.MouseButtonSecondary:
		v.recorder.RightDown()
	}
}

// MouseUp implements desktop.Mouseable.
func (v *Viewport) MouseUp(ev *desktop.MouseEvent) {
	switch ev.Button {
	case desktop.MouseButtonPrimary:
		v.recorder.LeftUp()
	case desktop.MouseButtonSecondary:
		v.recorder.RightUp()
	}
}

// MouseIn implements desktop.Hoverable.
func (v *Viewport) MouseIn(ev *desktop.MouseEvent) {
	v.recorder.MoveTo(int(ev.Position.X), int(ev.Position.Y))
}

// MouseMoved implements desktop.Hoverable.
func (v *Viewport) MouseMoved(ev *desktop.MouseEvent) {
	v.recorder.MoveTo(int(ev.Position.X), int(ev.Position.Y))
}

// MouseOut implements desktop.Hoverable.
func (v *Viewport) MouseOut() {}

// DoubleTapped implements fyne.DoubleTappable.
func (v *Viewport) DoubleTapped(*fyne.PointEvent) {
	v.recorder.DoubleClick()
}

// Scrolled implements fyne.Scrollable.
func (v *Viewport) Scrolled(ev *fyne.ScrollEvent) {
	switch {
	case ev.Scrolled.DY > 0:
		v.recorder.Scroll(wheelNotch, wheelNotch, input.Vertical)
	case ev.Scrolled.DY < 0:
		v.recorder.Scroll(-wheelNotch, wheelNotch, input.Vertical)
	case ev.Scrolled.DX > 0:
		v.recorder.Scroll(wheelNotch, wheelNotch, input.Horizontal)
	case ev.Scrolled.DX < 0:
		v.recorder.Scroll(-wheelNotch, wheelNotch, input.Horizontal)
	}
}

type viewportRenderer struct {
	viewport *Viewport
}

func (r *viewportRenderer) Layout(size fyne.Size) {
	r.viewport.img.Resize(size)

	width, height := int(size.Width), int(size.Height)
	if width < 1 || height < 1 {
		return
	}
	r.viewport.display.SetScreenSize(width, height)
	r.viewport.display.Repaint()
}

func (r *viewportRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *viewportRenderer) Refresh() {
	r.viewport.img.Image = r.viewport.display.Frame()
	r.viewport.img.Refresh()
}

func (r *viewportRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.viewport.img}
}

func (r *viewportRenderer) Destroy() {}
