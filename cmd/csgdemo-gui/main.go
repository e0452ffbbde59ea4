package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/Kp61dude/PrusaSlicer/internal/app"
	"github.com/Kp61dude/PrusaSlicer/internal/job"
	"github.com/Kp61dude/PrusaSlicer/pkg/input"
	"github.com/Kp61dude/PrusaSlicer/pkg/render"
	"github.com/Kp61dude/PrusaSlicer/pkg/scene"
	"github.com/Kp61dude/PrusaSlicer/pkg/sla"
	"github.com/Kp61dude/PrusaSlicer/pkg/viewer"
)

type gui struct {
	window fyne.Window

	scene      *scene.Scene
	controller *scene.Controller
	display    *render.ImageDisplay
	recorder   *input.Recorder
	viewport   *viewer.Viewport
	slot       job.Slot

	status   *widget.Label
	fps      *widget.Label
	progress *widget.ProgressBar

	clip           *widget.Slider
	csgCheck       *widget.Check
	algorithm      *widget.Select
	depth          *widget.Select
	optimization   *widget.Select
	convexity      *widget.Slider
	convexityLabel *widget.Label
	recordBtn      *widget.Button

	layerHeight float64
}

func main() {
	a := fyneapp.New()
	w := a.NewWindow("csgdemo")

	g := newGUI(w)
	w.SetMainMenu(g.mainMenu())
	w.Resize(fyne.NewSize(1200, 800))

	if len(os.Args) > 1 {
		g.startLoad(os.Args[1])
	}

	w.ShowAndRun()
}

func newGUI(w fyne.Window) *gui {
	g := &gui{
		window:      w,
		scene:       scene.NewScene(),
		controller:  scene.NewController(),
		layerHeight: sla.DefaultLayerHeight,
	}
	g.display = render.NewImageDisplay(800, 600)
	g.display.SetScene(g.scene)
	g.controller.SetScene(g.scene)
	g.controller.AddDisplay(g.display)

	g.recorder = input.NewRecorder(nil)
	g.recorder.AddListener(g.controller)
	g.viewport = viewer.NewViewport(g.recorder, g.display)

	g.status = widget.NewLabel("No model loaded. Open one from the File menu.")
	g.fps = widget.NewLabel("fps: 0.00")
	g.display.FPSCounter().AddListener(func(fps float64) {
		g.fps.SetText(fmt.Sprintf("fps: %.2f", fps))
	})
	g.progress = widget.NewProgressBar()

	controls := g.buildControls()
	scroll := container.NewVScroll(controls)
	scroll.SetMinSize(fyne.NewSize(260, 0))

	statusBar := container.NewBorder(nil, nil, g.progress, g.fps, g.status)
	content := container.NewBorder(nil, statusBar, nil, scroll, g.viewport)
	w.SetContent(content)
	return g
}

func (g *gui) buildControls() *fyne.Container {
	g.clip = widget.NewSlider(0, 100)
	g.clip.Step = 1
	g.clip.OnChanged = func(v float64) {
		g.controller.MoveClipPlane(v)
	}

	g.csgCheck = widget.NewCheck("CSG rendering", func(on bool) {
		g.updateSettings(func(s *scene.CSGSettings) { s.EnableCSG(on) })
	})

	g.depth = widget.NewSelect([]string{"Off", "Occlusion queries", "On"}, func(choice string) {
		g.updateSettings(func(s *scene.CSGSettings) {
			switch choice {
			case "Occlusion queries":
				s.SetDepthAlgorithm(scene.DepthOcclusionQuery)
			case "On":
				s.SetDepthAlgorithm(scene.DepthOn)
			default:
				s.SetDepthAlgorithm(scene.DepthOff)
			}
		})
	})

	g.algorithm = widget.NewSelect([]string{"Automatic", "Goldfeather", "SCS"}, func(choice string) {
		algorithm := scene.AlgorithmAuto
		switch choice {
		case "Goldfeather":
			algorithm = scene.AlgorithmGoldfeather
		case "SCS":
			algorithm = scene.AlgorithmSCS
		}
		g.updateSettings(func(s *scene.CSGSettings) { s.SetAlgorithm(algorithm) })

		// Depth complexity only takes effect with an explicit algorithm.
		if algorithm == scene.AlgorithmAuto {
			g.depth.Disable()
		} else {
			g.depth.Enable()
		}
	})

	g.optimization = widget.NewSelect([]string{"Default", "Force on", "On", "Off"}, func(choice string) {
		g.updateSettings(func(s *scene.CSGSettings) {
			switch choice {
			case "Force on":
				s.SetOptimization(scene.OptimizationForceOn)
			case "On":
				s.SetOptimization(scene.OptimizationOn)
			case "Off":
				s.SetOptimization(scene.OptimizationOff)
			default:
				s.SetOptimization(scene.OptimizationDefault)
			}
		})
	})

	g.convexityLabel = widget.NewLabel(fmt.Sprintf("Convexity: %d", scene.DefaultConvexity))
	g.convexity = widget.NewSlider(1, 20)
	g.convexity.Step = 1
	g.convexity.OnChanged = func(v float64) {
		g.updateSettings(func(s *scene.CSGSettings) { s.SetConvexity(uint(v)) })
		g.convexityLabel.SetText(fmt.Sprintf("Convexity: %d", g.display.Settings().Convexity()))
	}

	g.csgCheck.SetChecked(true)
	g.depth.SetSelectedIndex(0)
	g.algorithm.SetSelectedIndex(0)
	g.optimization.SetSelectedIndex(0)
	g.convexity.SetValue(scene.DefaultConvexity)

	g.recordBtn = widget.NewButton("Record", g.toggleRecord)
	playBtn := widget.NewButton("Play", g.playEvents)
	loadBtn := widget.NewButton("Load events...", g.loadEventsDialog)

	return container.NewVBox(
		widget.NewLabel("Clip plane:"),
		g.clip,
		widget.NewSeparator(),
		g.csgCheck,
		widget.NewLabel("Algorithm:"),
		g.algorithm,
		widget.NewLabel("Depth complexity:"),
		g.depth,
		widget.NewLabel("Optimization:"),
		g.optimization,
		g.convexityLabel,
		g.convexity,
		widget.NewSeparator(),
		g.recordBtn,
		playBtn,
		loadBtn,
	)
}

func (g *gui) mainMenu() *fyne.MainMenu {
	open := fyne.NewMenuItem("Open Model...", g.openModelDialog)
	return fyne.NewMainMenu(fyne.NewMenu("File", open))
}

func (g *gui) updateSettings(mutate func(*scene.CSGSettings)) {
	s := g.display.Settings()
	mutate(&s)
	g.display.ApplySettings(s)
	g.display.Repaint()
}

func (g *gui) openModelDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		g.startLoad(path)
	}, g.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".stl", ".scad"}))
	d.Show()
}

func (g *gui) startLoad(fname string) {
	task := &app.LoadJob{
		Filename:    fname,
		LayerHeight: g.layerHeight,
		Scene:       g.scene,
		Controller:  g.controller,
		OnLoaded: func(p *sla.Print, took time.Duration) {
			name := filepath.Base(p.ModelFile)
			g.window.SetTitle("csgdemo - " + name)
			g.status.SetText(fmt.Sprintf("Model %s loaded.", name))
		},
	}
	if err := g.slot.Start(job.New(task, fyne.Do, g.jobStatus)); err != nil {
		g.status.SetText(fmt.Sprintf("Failed to start load: %v", err))
		return
	}
	g.status.SetText(fmt.Sprintf("Loading %s...", filepath.Base(fname)))
}

// jobStatus receives job progress. Delivery is marshalled onto the main
// goroutine by the job itself.
func (g *gui) jobStatus(percent int, text string) {
	g.progress.SetValue(float64(percent) / 100)
	g.status.SetText(text)
}

func (g *gui) toggleRecord() {
	switch g.recorder.State() {
	case input.Playing:
		return
	case input.Recording:
		if err := g.recorder.Record(false); err != nil {
			g.status.SetText(err.Error())
			return
		}
		g.recordBtn.SetText("Record")
		g.status.SetText(fmt.Sprintf("Recorded %d events.", len(g.recorder.Events())))
		g.saveEventsDialog()
	default:
		if g.scene.Print() == nil {
			dialog.ShowInformation("Recorder", "No project loaded!", g.window)
			return
		}
		g.controller.SceneUpdated(g.scene)
		if err := g.recorder.Record(true); err != nil {
			g.status.SetText(err.Error())
			return
		}
		g.recordBtn.SetText("Stop recording")
		g.status.SetText("Recording...")
	}
}

func (g *gui) playEvents() {
	if g.recorder.State() != input.Idle {
		return
	}
	if len(g.recorder.Events()) == 0 {
		dialog.ShowInformation("Player", "No events recorded or loaded.", g.window)
		return
	}
	if g.scene.Print() == nil {
		dialog.ShowInformation("Player", "No project loaded!", g.window)
		return
	}

	count := 0
	g.recorder.SetYield(func() { count++ })
	start := time.Now()
	if err := g.recorder.Play(); err != nil {
		g.status.SetText(err.Error())
		return
	}
	took := time.Since(start)
	g.status.SetText(fmt.Sprintf("Replayed %d events in %s.", count, took.Round(time.Millisecond)))
}

func (g *gui) saveEventsDialog() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if writer == nil {
			return
		}

		name := ""
		if p := g.scene.Print(); p != nil {
			name = p.ModelFile
		}
		if err := input.SaveLog(writer, name, g.recorder); err != nil {
			_ = writer.Close()
			dialog.ShowError(fmt.Errorf("failed to save event log: %w", err), g.window)
			return
		}
		if err := writer.Close(); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save event log: %w", err), g.window)
			return
		}
		g.status.SetText(fmt.Sprintf("Saved %d events.", len(g.recorder.Events())))
	}, g.window)
	d.SetFileName("session.events")
	d.Show()
}

func (g *gui) loadEventsDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if reader == nil {
			return
		}
		defer func() {
			_ = reader.Close()
		}()

		header, err := input.LoadLog(reader, g.recorder)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to read event log: %w", err), g.window)
			return
		}
		g.status.SetText(fmt.Sprintf("Loaded %d events for %s.", len(g.recorder.Events()), header))

		if p := g.scene.Print(); p == nil || p.ModelFile != header {
			g.startLoad(header)
		}
	}, g.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".events"}))
	d.Show()
}
