package app

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Kp61dude/PrusaSlicer/internal/job"
	"github.com/Kp61dude/PrusaSlicer/internal/store"
	"github.com/Kp61dude/PrusaSlicer/pkg/input"
	"github.com/Kp61dude/PrusaSlicer/pkg/render"
	"github.com/Kp61dude/PrusaSlicer/pkg/scene"
	"github.com/Kp61dude/PrusaSlicer/pkg/sla"
)

// ReplayOptions configures a headless replay of an event log.
type ReplayOptions struct {
	EventsFile  string
	ModelFile   string // overrides the log header when set
	LayerHeight float64
	ClipPercent float64
	CSG         bool
	Algorithm   scene.Algorithm
	Convexity   uint
	Width       int
	Height      int
	Delay       time.Duration
	Snapshot    string
	Store       *store.Store
	Out         io.Writer
}

// Replay reads an event log, loads the model it names through the same
// background job the interactive shells use, and drives the dispatcher
// with the logged events against an offscreen display. The final view
// state is printed so replays can be compared run to run.
func Replay(opts ReplayOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 96
	}
	if height <= 0 {
		height = 54
	}

	rec := input.NewRecorder(nil)
	f, err := os.Open(opts.EventsFile)
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	header, err := input.LoadLog(f, rec)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to read event log: %w", err)
	}

	modelFile := opts.ModelFile
	if modelFile == "" {
		modelFile = header
	}

	s := scene.NewScene()
	s.SetClipPercent(opts.ClipPercent)

	ctl := scene.NewController()
	ctl.SetScene(s)

	display := render.NewImageDisplay(width, height)
	display.SetScene(s)
	settings := display.Settings()
	settings.EnableCSG(opts.CSG)
	settings.SetAlgorithm(opts.Algorithm)
	settings.SetConvexity(opts.Convexity)
	display.ApplySettings(settings)
	ctl.AddDisplay(display)
	rec.AddListener(ctl)

	// The replay loop stands in for the interactive context: job hand-offs
	// queue up here and run on this goroutine whenever the loop drains.
	var mu sync.Mutex
	var queued []func()
	post := func(fn func()) {
		mu.Lock()
		queued = append(queued, fn)
		mu.Unlock()
	}
	drain := func() {
		mu.Lock()
		pending := queued
		queued = nil
		mu.Unlock()
		for _, fn := range pending {
			fn()
		}
	}

	var p *sla.Print
	var loadErr error
	task := &LoadJob{
		Filename:    modelFile,
		LayerHeight: opts.LayerHeight,
		Scene:       s,
		Controller:  ctl,
		OnLoaded:    func(loaded *sla.Print, _ time.Duration) { p = loaded },
		OnFailed:    func(err error) { loadErr = err },
	}
	j := job.New(task, post, func(percent int, text string) {
		slog.Debug("load progress", "percent", percent, "status", text)
	})
	if err := j.Start(); err != nil {
		return fmt.Errorf("failed to start load job: %w", err)
	}
	for done := false; !done; {
		drain()
		select {
		case <-j.Done():
			done = true
		default:
			time.Sleep(time.Millisecond)
		}
	}
	if loadErr != nil {
		return fmt.Errorf("failed to load %s: %w", modelFile, loadErr)
	}
	if p == nil {
		return fmt.Errorf("failed to load %s", modelFile)
	}
	fmt.Fprintf(out, "Model %s loaded: %d triangles, %d layers.\n",
		filepath.Base(p.ModelFile), p.Model.TriangleCount(), len(p.Layers))

	events := 0
	rec.SetYield(func() {
		drain()
		events++
		if opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}
	})

	started := time.Now()
	if err := rec.Play(); err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}
	took := time.Since(started)

	cam := s.Camera()
	fmt.Fprintf(out, "Replayed %d events in %s.\n", events, took.Round(time.Millisecond))
	fmt.Fprintf(out, "Camera: distance %.3f, rotation (%.3f, %.3f), clip %.0f%%.\n",
		cam.Distance, cam.RotationX, cam.RotationY, s.ClipPercent())

	if opts.Snapshot != "" {
		if err := writeSnapshot(opts.Snapshot, display); err != nil {
			return err
		}
		fmt.Fprintf(out, "Snapshot written to %s.\n", opts.Snapshot)
	}

	if opts.Store != nil {
		run := store.Run{
			StartedAt:  started,
			Kind:       store.KindReplay,
			ModelFile:  p.ModelFile,
			Triangles:  p.Model.TriangleCount(),
			Layers:     len(p.Layers),
			Segments:   p.SegmentCount(),
			Events:     events,
			DurationMs: took.Milliseconds(),
		}
		if _, err := opts.Store.InsertRun(context.Background(), run); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
	}
	return nil
}

func writeSnapshot(path string, d *render.ImageDisplay) error {
	if d.Frame() == nil {
		d.Repaint()
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := png.Encode(f, d.Frame()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
