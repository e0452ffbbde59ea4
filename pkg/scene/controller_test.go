package scene

import (
	"bytes"
	"math"
	"testing"

	"github.com/Kp61dude/PrusaSlicer/pkg/geometry"
	"github.com/Kp61dude/PrusaSlicer/pkg/input"
	"github.com/Kp61dude/PrusaSlicer/pkg/sla"
)

type stubDisplay struct {
	DisplayBase
	repaints int
}

func (d *stubDisplay) Repaint() {
	d.repaints++
}

func testPrint() *sla.Print {
	b := geometry.NewBoundingBox()
	b.Extend(geometry.NewVector3(0, 0, 0))
	b.Extend(geometry.NewVector3(2, 2, 2))
	return &sla.Print{Bounds: b, LayerHeight: 1}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestControllerLeftDragOrbits(t *testing.T) {
	c := NewController()
	s := NewScene()
	c.SetScene(s)
	d1 := &stubDisplay{}
	d2 := &stubDisplay{}
	c.AddDisplay(d1)
	c.AddDisplay(d2)

	c.MoveTo(100, 100)
	c.LeftDown()
	c.MoveTo(110, 90)
	c.LeftUp()

	cam := s.Camera()
	if !almostEqual(cam.RotationX, 0.4) {
		t.Errorf("RotationX = %v, want 0.4", cam.RotationX)
	}
	if !almostEqual(cam.RotationY, 0.4) {
		t.Errorf("RotationY = %v, want 0.4", cam.RotationY)
	}
	if d1.repaints != 1 || d2.repaints != 1 {
		t.Errorf("repaints = %d and %d, want 1 on every display", d1.repaints, d2.repaints)
	}
}

func TestControllerFirstMoveOnlyTracks(t *testing.T) {
	c := NewController()
	s := NewScene()
	c.SetScene(s)

	c.LeftDown()
	c.MoveTo(50, 50)

	cam := s.Camera()
	if cam.RotationX != 0.3 || cam.RotationY != 0.3 {
		t.Errorf("camera rotated on the first tracked move: %v, %v", cam.RotationX, cam.RotationY)
	}

	c.MoveTo(60, 50)
	if almostEqual(cam.RotationY, 0.3) {
		t.Error("camera did not rotate on the second move")
	}
}

func TestControllerRightDragPans(t *testing.T) {
	c := NewController()
	s := NewScene()
	c.SetScene(s)
	d := &stubDisplay{}
	c.AddDisplay(d)

	before := s.Camera().Target
	c.MoveTo(0, 0)
	c.RightDown()
	c.MoveTo(40, 10)
	c.RightUp()

	if s.Camera().Target == before {
		t.Error("right drag did not move the camera target")
	}
	if d.repaints != 1 {
		t.Errorf("repaints = %d, want 1", d.repaints)
	}
}

func TestControllerScrollZooms(t *testing.T) {
	c := NewController()
	s := NewScene()
	c.SetScene(s)
	d := &stubDisplay{}
	c.AddDisplay(d)

	c.Scroll(120, 120, input.Vertical)
	if !almostEqual(s.Camera().Distance, 10*(1-zoomStep)) {
		t.Errorf("distance = %v after one notch towards the scene", s.Camera().Distance)
	}

	// Horizontal wheel motion is ignored
	dist := s.Camera().Distance
	c.Scroll(120, 120, input.Horizontal)
	if s.Camera().Distance != dist {
		t.Error("horizontal scroll changed the zoom")
	}

	// A zero delta counts in default notches of 120
	c.Scroll(-240, 0, input.Vertical)
	if !almostEqual(s.Camera().Distance, dist*(1+2*zoomStep)) {
		t.Errorf("distance = %v after two notches away", s.Camera().Distance)
	}
	if d.repaints != 2 {
		t.Errorf("repaints = %d, want 2", d.repaints)
	}
}

func TestControllerDoubleClickRestoresHome(t *testing.T) {
	c := NewController()
	s := NewScene()
	c.SetScene(s)

	c.MoveTo(0, 0)
	c.LeftDown()
	c.MoveTo(25, 30)
	c.LeftUp()
	c.Scroll(360, 120, input.Vertical)

	c.DoubleClick()

	cam := s.Camera()
	if cam.RotationX != 0.3 || cam.RotationY != 0.3 || cam.Distance != 10 {
		t.Errorf("camera not back at home pose: rx=%v ry=%v d=%v",
			cam.RotationX, cam.RotationY, cam.Distance)
	}
}

func TestControllerSceneUpdatedFitsCamera(t *testing.T) {
	c := NewController()
	s := NewScene()
	s.SetPrint(testPrint())
	c.SetScene(s)
	d := &stubDisplay{}
	c.AddDisplay(d)

	c.SceneUpdated(nil)

	cam := s.Camera()
	if cam.Target != geometry.NewVector3(1, 1, 1) {
		t.Errorf("target = %v, want the print center", cam.Target)
	}
	if cam.Distance != 4 {
		t.Errorf("distance = %v, want 4", cam.Distance)
	}
	if d.repaints != 1 {
		t.Errorf("repaints = %d, want 1", d.repaints)
	}
}

func TestControllerMoveClipPlaneClamps(t *testing.T) {
	c := NewController()
	s := NewScene()
	c.SetScene(s)
	d := &stubDisplay{}
	c.AddDisplay(d)

	c.MoveClipPlane(150)
	if s.ClipPercent() != 100 {
		t.Errorf("clip percent = %v, want 100", s.ClipPercent())
	}
	c.MoveClipPlane(-5)
	if s.ClipPercent() != 0 {
		t.Errorf("clip percent = %v, want 0", s.ClipPercent())
	}
	if d.repaints != 2 {
		t.Errorf("repaints = %d, want 2", d.repaints)
	}
}

func TestControllerWithoutSceneOrDisplays(t *testing.T) {
	c := NewController()

	// No scene bound: every operation is a safe no-op
	c.MoveTo(10, 10)
	c.LeftDown()
	c.MoveTo(20, 20)
	c.LeftUp()
	c.Scroll(120, 120, input.Vertical)
	c.DoubleClick()
	c.MoveClipPlane(50)
	c.SceneUpdated(nil)

	// Scene without displays: mutations apply, repaints go nowhere
	s := NewScene()
	c.SetScene(s)
	c.MoveClipPlane(50)
	if s.ClipPercent() != 50 {
		t.Errorf("clip percent = %v, want 50", s.ClipPercent())
	}
}

func drive(l input.Listener) {
	l.MoveTo(200, 200)
	l.LeftDown()
	l.MoveTo(260, 170)
	l.MoveTo(300, 210)
	l.LeftUp()
	l.Scroll(240, 120, input.Vertical)
	l.MoveTo(310, 215)
	l.RightDown()
	l.MoveTo(280, 240)
	l.RightUp()
	l.DoubleClick()
	l.Scroll(-120, 120, input.Vertical)
}

func TestReplayReproducesViewState(t *testing.T) {
	// Live session, recorded
	rec := input.NewRecorder(nil)
	live := NewController()
	liveScene := NewScene()
	live.SetScene(liveScene)
	rec.AddListener(live)

	if err := rec.Record(true); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	drive(rec)
	if err := rec.Record(false); err != nil {
		t.Fatalf("stopping the recording failed: %v", err)
	}

	var buf bytes.Buffer
	if err := rec.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Replay into a fresh controller and scene
	replay := input.NewRecorder(nil)
	if err := replay.Load(&buf); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	resumed := NewController()
	resumedScene := NewScene()
	resumed.SetScene(resumedScene)
	replay.AddListener(resumed)
	if err := replay.Play(); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	a, b := liveScene.Camera(), resumedScene.Camera()
	if a.Target != b.Target {
		t.Errorf("target diverged: %v vs %v", a.Target, b.Target)
	}
	if a.Distance != b.Distance {
		t.Errorf("distance diverged: %v vs %v", a.Distance, b.Distance)
	}
	if a.RotationX != b.RotationX || a.RotationY != b.RotationY {
		t.Errorf("rotation diverged: (%v, %v) vs (%v, %v)",
			a.RotationX, a.RotationY, b.RotationX, b.RotationY)
	}
}
