// Package app hosts the interactive viewer shells: the terminal UI, the
// background load job and the wiring between input, scene, jobs and the
// run store.
package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Kp61dude/PrusaSlicer/internal/job"
	"github.com/Kp61dude/PrusaSlicer/internal/store"
	"github.com/Kp61dude/PrusaSlicer/pkg/input"
	"github.com/Kp61dude/PrusaSlicer/pkg/openscad"
	"github.com/Kp61dude/PrusaSlicer/pkg/render"
	"github.com/Kp61dude/PrusaSlicer/pkg/scene"
	"github.com/Kp61dude/PrusaSlicer/pkg/sla"
	"github.com/Kp61dude/PrusaSlicer/pkg/watcher"
)

// Terminal rows reserved around the frame for title, status and help.
const chromeRows = 3

// Wheel events carry one notch in wx units.
const wheelDelta = 120

// A second left press this close to the first in the same cell becomes a
// double click.
const doubleClickWindow = 400 * time.Millisecond

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7AA2F7"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0CAF5"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89"))
)

// Options configures the terminal shell. The caller resolves config file
// and flag values into concrete settings before constructing the model.
type Options struct {
	ModelFile   string
	EventsFile  string
	LayerHeight float64
	ClipPercent float64
	CSG         bool
	Algorithm   scene.Algorithm
	Convexity   uint
	Store       *store.Store
	Watcher     *watcher.FileWatcher
}

type applyMsg struct{ fn func() }

type fileChangedMsg struct{ path string }

type startMsg struct{}

// Model implements the terminal viewer shell.
type Model struct {
	program *tea.Program

	scene      *scene.Scene
	controller *scene.Controller
	display    *render.ImageDisplay
	recorder   *input.Recorder

	slot  job.Slot
	store *store.Store
	watch *watcher.FileWatcher

	modelFile   string
	eventsFile  string
	layerHeight float64

	width      int
	height     int
	frameLines []string
	fps        float64

	statusPercent int
	statusText    string
	progressBar   progress.Model

	lastClickAt time.Time
	lastClickX  int
	lastClickY  int

	replayCount int
	quitting    bool

	now func() time.Time
}

// NewModel constructs the shell around a fresh scene
func NewModel(opts Options) *Model {
	m := &Model{
		scene:       scene.NewScene(),
		controller:  scene.NewController(),
		display:     render.NewImageDisplay(80, 22),
		modelFile:   opts.ModelFile,
		eventsFile:  opts.EventsFile,
		layerHeight: opts.LayerHeight,
		store:       opts.Store,
		watch:       opts.Watcher,
		progressBar: progress.New(progress.WithDefaultGradient()),
		now:         time.Now,
	}
	m.controller.SetScene(m.scene)
	m.controller.AddDisplay(m.display)
	m.display.SetScene(m.scene)
	if m.watch != nil {
		m.watch.OnError = func(err error) {
			m.post(func() { m.status(0, fmt.Sprintf("Watcher error: %v", err)) })
		}
	}
	m.display.OnFrame = func(img *image.RGBA) {
		m.frameLines = render.ASCII(img)
	}
	m.display.FPSCounter().AddListener(func(fps float64) {
		m.fps = fps
	})

	m.scene.SetClipPercent(opts.ClipPercent)

	settings := m.display.Settings()
	settings.EnableCSG(opts.CSG)
	settings.SetAlgorithm(opts.Algorithm)
	settings.SetConvexity(opts.Convexity)
	m.display.ApplySettings(settings)

	m.recorder = input.NewRecorder(nil)
	m.recorder.AddListener(m.controller)
	return m
}

// SetProgram hands the model its running program for cross-goroutine
// message delivery
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// post marshals a closure onto the update loop. Without a program it runs
// the closure directly, which only synchronous callers may rely on.
func (m *Model) post(fn func()) {
	if m.program == nil {
		fn()
		return
	}
	m.program.Send(applyMsg{fn: fn})
}

// status is the shell's job.StatusFunc surface
func (m *Model) status(percent int, text string) {
	m.statusPercent = percent
	m.statusText = text
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return startMsg{} }
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		if m.modelFile != "" {
			m.startLoad(m.modelFile)
			m.watchModel(m.modelFile)
		}
		return m, nil
	case applyMsg:
		msg.fn()
		return m, nil
	case fileChangedMsg:
		slog.Debug("model file changed", "path", msg.path)
		m.status(0, fmt.Sprintf("%s changed, reloading...", filepath.Base(msg.path)))
		m.startLoad(m.modelFile)
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		frameRows := msg.Height - chromeRows
		if frameRows < 1 {
			frameRows = 1
		}
		m.display.SetScreenSize(msg.Width, frameRows)
		m.progressBar.Width = msg.Width / 4
		m.display.Repaint()
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "r":
		m.toggleRecord()
	case "p":
		m.playLog()
	case "s":
		m.saveLog()
	case "l":
		m.loadLog()
	case "c":
		m.updateSettings(func(s *scene.CSGSettings) { s.EnableCSG(!s.Enabled()) })
		if m.display.Settings().Enabled() {
			m.status(100, "CSG rendering enabled.")
		} else {
			m.status(100, "CSG rendering disabled.")
		}
	case "a":
		m.updateSettings(func(s *scene.CSGSettings) {
			s.SetAlgorithm((s.Algorithm() + 1) % 3)
		})
		m.status(100, fmt.Sprintf("Algorithm %s.", m.display.Settings().Algorithm()))
	case "d":
		if m.display.Settings().Algorithm() == scene.AlgorithmAuto {
			m.status(0, "Depth complexity needs an explicit algorithm.")
			break
		}
		m.updateSettings(func(s *scene.CSGSettings) {
			s.SetDepthAlgorithm((s.DepthAlgorithm() + 1) % 3)
		})
		m.status(100, fmt.Sprintf("Depth complexity %s.", m.display.Settings().DepthAlgorithm()))
	case "o":
		m.updateSettings(func(s *scene.CSGSettings) {
			s.SetOptimization((s.Optimization() + 1) % 4)
		})
		m.status(100, fmt.Sprintf("Optimization %s.", m.display.Settings().Optimization()))
	case "+":
		m.updateSettings(func(s *scene.CSGSettings) { s.SetConvexity(s.Convexity() + 1) })
		m.status(100, fmt.Sprintf("Convexity %d.", m.display.Settings().Convexity()))
	case "-":
		m.updateSettings(func(s *scene.CSGSettings) { s.SetConvexity(s.Convexity() - 1) })
		m.status(100, fmt.Sprintf("Convexity %d.", m.display.Settings().Convexity()))
	case "[":
		m.controller.MoveClipPlane(m.scene.ClipPercent() - 5)
		m.status(100, fmt.Sprintf("Clip %.0f%%.", m.scene.ClipPercent()))
	case "]":
		m.controller.MoveClipPlane(m.scene.ClipPercent() + 5)
		m.status(100, fmt.Sprintf("Clip %.0f%%.", m.scene.ClipPercent()))
	}
	return m, nil
}

// handleMouse translates terminal mouse events into the dispatcher's
// vocabulary. Every event passes through the recorder, so a recording
// session captures exactly what the controller saw.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if m.isDoubleClick(msg.X, msg.Y) {
				m.recorder.DoubleClick()
				return
			}
			m.recorder.LeftDown()
		case tea.MouseButtonRight:
			m.recorder.RightDown()
		case tea.MouseButtonWheelUp:
			m.recorder.Scroll(wheelDelta, wheelDelta, input.Vertical)
		case tea.MouseButtonWheelDown:
			m.recorder.Scroll(-wheelDelta, wheelDelta, input.Vertical)
		case tea.MouseButtonWheelLeft:
			m.recorder.Scroll(-wheelDelta, wheelDelta, input.Horizontal)
		case tea.MouseButtonWheelRight:
			m.recorder.Scroll(wheelDelta, wheelDelta, input.Horizontal)
		}
	case tea.MouseActionRelease:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.recorder.LeftUp()
		case tea.MouseButtonRight:
			m.recorder.RightUp()
		}
	case tea.MouseActionMotion:
		m.recorder.MoveTo(msg.X, msg.Y)
	}
}

// isDoubleClick reports whether this left press completes a double click.
// A third quick press starts a new cycle instead of chaining.
func (m *Model) isDoubleClick(x, y int) bool {
	now := m.now()
	same := x == m.lastClickX && y == m.lastClickY
	quick := !m.lastClickAt.IsZero() && now.Sub(m.lastClickAt) < doubleClickWindow

	m.lastClickAt = now
	m.lastClickX, m.lastClickY = x, y

	if same && quick {
		m.lastClickAt = time.Time{}
		return true
	}
	return false
}

func (m *Model) updateSettings(mutate func(*scene.CSGSettings)) {
	s := m.display.Settings()
	mutate(&s)
	m.display.ApplySettings(s)
	m.display.Repaint()
}

func (m *Model) toggleRecord() {
	switch m.recorder.State() {
	case input.Playing:
		return
	case input.Recording:
		if err := m.recorder.Record(false); err != nil {
			m.status(0, err.Error())
			return
		}
		m.status(100, fmt.Sprintf("Recorded %d events. Press s to save.", len(m.recorder.Events())))
	default:
		if m.scene.Print() == nil {
			m.status(0, "No project loaded!")
			return
		}
		m.controller.SceneUpdated(m.scene)
		if err := m.recorder.Record(true); err != nil {
			m.status(0, err.Error())
			return
		}
		m.status(0, "Recording...")
	}
}

func (m *Model) playLog() {
	if len(m.recorder.Events()) == 0 {
		m.status(0, "No events to replay. Record with r or load with l.")
		return
	}
	if m.scene.Print() == nil {
		m.status(0, "No project loaded!")
		return
	}

	m.replayCount = 0
	m.recorder.SetYield(func() { m.replayCount++ })

	start := m.now()
	if err := m.recorder.Play(); err != nil {
		m.status(0, err.Error())
		return
	}
	took := m.now().Sub(start)
	m.status(100, fmt.Sprintf("Replayed %d events in %s.", m.replayCount, took.Round(time.Millisecond)))
	m.recordRun(store.KindReplay, m.replayCount, took)
}

func (m *Model) saveLog() {
	if m.recorder.State() == input.Recording {
		m.status(0, "Stop recording before saving.")
		return
	}
	if len(m.recorder.Events()) == 0 {
		m.status(0, "Nothing recorded yet.")
		return
	}

	name := ""
	if p := m.scene.Print(); p != nil {
		name = p.ModelFile
	}
	f, err := os.Create(m.eventsFile)
	if err != nil {
		m.status(0, fmt.Sprintf("Failed to save events: %v", err))
		return
	}
	if err := input.SaveLog(f, name, m.recorder); err != nil {
		_ = f.Close()
		m.status(0, fmt.Sprintf("Failed to save events: %v", err))
		return
	}
	if err := f.Close(); err != nil {
		m.status(0, fmt.Sprintf("Failed to save events: %v", err))
		return
	}
	m.status(100, fmt.Sprintf("Saved %d events to %s.", len(m.recorder.Events()), m.eventsFile))
}

func (m *Model) loadLog() {
	f, err := os.Open(m.eventsFile)
	if err != nil {
		m.status(0, fmt.Sprintf("Failed to open events: %v", err))
		return
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close after reading.
			_ = cerr
		}
	}()

	header, err := input.LoadLog(f, m.recorder)
	if err != nil {
		m.status(0, fmt.Sprintf("Failed to read events: %v", err))
		return
	}
	m.status(100, fmt.Sprintf("Loaded %d events for %s.", len(m.recorder.Events()), header))

	if p := m.scene.Print(); p == nil || p.ModelFile != header {
		m.startLoad(header)
	}
}

func (m *Model) startLoad(fname string) {
	task := &LoadJob{
		Filename:    fname,
		LayerHeight: m.layerHeight,
		Scene:       m.scene,
		Controller:  m.controller,
		OnLoaded: func(p *sla.Print, took time.Duration) {
			m.status(100, fmt.Sprintf("Model %s loaded.", filepath.Base(p.ModelFile)))
			m.recordRun(store.KindLoad, 0, took)
		},
	}
	m.modelFile = fname
	if err := m.slot.Start(job.New(task, m.post, m.status)); err != nil {
		m.status(0, fmt.Sprintf("Failed to start load: %v", err))
		return
	}
	m.status(0, fmt.Sprintf("Loading %s...", filepath.Base(fname)))
}

// watchModel registers the model file with the watcher. OpenSCAD sources
// are watched together with their use/include closure, so editing any part
// of the model triggers a reload.
func (m *Model) watchModel(fname string) {
	if m.watch == nil {
		return
	}

	files := []string{fname}
	if strings.EqualFold(filepath.Ext(fname), ".scad") {
		if deps, err := openscad.Dependencies(fname); err == nil {
			files = deps
		}
	}

	err := m.watch.Watch(files, func(path string) {
		if m.program != nil {
			m.program.Send(fileChangedMsg{path: path})
		}
	})
	if err != nil {
		m.status(0, fmt.Sprintf("Watch failed: %v", err))
	}
}

func (m *Model) recordRun(kind string, events int, took time.Duration) {
	if m.store == nil {
		return
	}
	p := m.scene.Print()
	if p == nil {
		return
	}
	triangles := 0
	if p.Model != nil {
		triangles = p.Model.TriangleCount()
	}
	run := store.Run{
		StartedAt:  m.now(),
		Kind:       kind,
		ModelFile:  p.ModelFile,
		Triangles:  triangles,
		Layers:     len(p.Layers),
		Segments:   p.SegmentCount(),
		Events:     events,
		DurationMs: took.Milliseconds(),
	}
	if _, err := m.store.InsertRun(context.Background(), run); err != nil {
		m.status(0, fmt.Sprintf("Failed to record run: %v", err))
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.Render(m.titleLine())
	frame := strings.Join(m.frameLines, "\n")
	status := m.statusLine()
	help := helpStyle.Render("q quit · drag orbit · right drag pan · wheel zoom · [ ] clip · c csg · a algorithm · d depth · o optimization · + - convexity · r record · p play · s save · l load")

	return title + "\n" + frame + "\n" + status + "\n" + help
}

func (m *Model) titleLine() string {
	name := "no model"
	if p := m.scene.Print(); p != nil {
		name = filepath.Base(p.ModelFile)
	}

	state := ""
	switch m.recorder.State() {
	case input.Recording:
		state = " · REC"
	case input.Playing:
		state = " · PLAY"
	}

	s := m.display.Settings()
	csg := "csg off"
	if s.Enabled() {
		csg = fmt.Sprintf("csg %s/%d", s.Algorithm(), s.Convexity())
	}
	return fmt.Sprintf("%s%s · %s · clip %.0f%%", name, state, csg, m.scene.ClipPercent())
}

func (m *Model) statusLine() string {
	bar := m.progressBar.ViewAs(float64(m.statusPercent) / 100)
	fps := fmt.Sprintf("fps: %.2f", m.fps)
	return fmt.Sprintf("%s %s  %s", bar, statusStyle.Render(m.statusText), helpStyle.Render(fps))
}

// Run starts the terminal shell and blocks until it exits
func Run(opts Options) error {
	m := NewModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	m.SetProgram(p)
	_, err := p.Run()
	return err
}
