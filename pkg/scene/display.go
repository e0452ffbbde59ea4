package scene

import "time"

// Display is an abstract viewport. Implementations render the scene bound
// to them when repainted; the Controller only triggers repaints and never
// draws itself. Several displays can be attached to one Controller.
type Display interface {
	SetActive(width, height int)
	SetScreenSize(width, height int)
	SwapBuffers()
	Repaint()
	FPSCounter() *FPSCounter
	Settings() CSGSettings
	ApplySettings(CSGSettings)
}

// DisplayBase carries the viewport state shared by Display implementations:
// screen size, CSG settings and the frame counter. Embedders provide
// Repaint and call SwapBuffers once per presented frame.
type DisplayBase struct {
	width, height int
	active        bool
	settings      CSGSettings
	fps           FPSCounter
}

// NewDisplayBase returns base state with default settings and a one second
// fps reporting window
func NewDisplayBase() DisplayBase {
	return DisplayBase{
		settings: NewCSGSettings(),
		fps:      FPSCounter{interval: time.Second, now: time.Now},
	}
}

// SetActive marks the display ready and sets its initial size
func (d *DisplayBase) SetActive(width, height int) {
	d.active = true
	d.SetScreenSize(width, height)
}

// Active reports whether SetActive has been called
func (d *DisplayBase) Active() bool {
	return d.active
}

// SetScreenSize updates the viewport dimensions
func (d *DisplayBase) SetScreenSize(width, height int) {
	d.width = width
	d.height = height
}

// Size returns the current viewport dimensions
func (d *DisplayBase) Size() (int, int) {
	return d.width, d.height
}

// SwapBuffers counts the presented frame
func (d *DisplayBase) SwapBuffers() {
	d.fps.Tick()
}

// FPSCounter returns the display's frame counter
func (d *DisplayBase) FPSCounter() *FPSCounter {
	return &d.fps
}

// Settings returns a copy of the current CSG settings
func (d *DisplayBase) Settings() CSGSettings {
	return d.settings
}

// ApplySettings replaces the CSG settings wholesale, taking effect with the
// next rendered frame
func (d *DisplayBase) ApplySettings(s CSGSettings) {
	d.settings = s
}
