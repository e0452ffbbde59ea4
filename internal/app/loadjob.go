package app

import (
	"time"

	"github.com/Kp61dude/PrusaSlicer/internal/job"
	"github.com/Kp61dude/PrusaSlicer/pkg/scene"
	"github.com/Kp61dude/PrusaSlicer/pkg/sla"
)

// LoadJob reads and slices a model file on the worker goroutine and
// commits the resulting print into the scene when finalized. A failed
// load leaves the scene untouched.
type LoadJob struct {
	Filename    string
	LayerHeight float64
	Scene       *scene.Scene
	Controller  *scene.Controller

	// OnLoaded runs on the interactive context after a successful commit
	OnLoaded func(p *sla.Print, took time.Duration)
	// OnFailed runs on the interactive context when nothing was committed
	OnFailed func(err error)

	print   *sla.Print
	started time.Time
}

// Process implements job.Task
func (j *LoadJob) Process(report job.StatusFunc) error {
	j.started = time.Now()

	h := j.LayerHeight
	if h <= 0 {
		h = sla.DefaultLayerHeight
	}
	p, err := sla.Load(j.Filename, sla.Options{LayerHeight: h}, sla.ProgressFunc(report))
	if err != nil {
		return err
	}
	j.print = p
	return nil
}

// Finalize implements job.Task
func (j *LoadJob) Finalize(err error) {
	if err != nil || j.print == nil {
		if j.OnFailed != nil {
			j.OnFailed(err)
		}
		return
	}
	j.Scene.SetPrint(j.print)
	if j.Controller != nil {
		j.Controller.SceneUpdated(j.Scene)
	}
	if j.OnLoaded != nil {
		j.OnLoaded(j.print, time.Since(j.started))
	}
}
