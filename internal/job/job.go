// Package job runs a unit of work off the interactive loop and hands its
// completion back to that loop for committing into shared state. At most
// one job per slot is live; replacing a job abandons the old one, whose
// late status reports and finalize are dropped.
package job

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// State describes a job's lifecycle
type State int32

const (
	Idle State = iota
	Running
	Finished
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// StatusFunc receives progress reports: a percentage in [0,100] and a
// status line
type StatusFunc func(percent int, text string)

// Task is the unit of work a Job executes. Process runs on a worker
// goroutine and may report progress any number of times. Finalize runs
// exactly once afterwards on the interactive context with the process
// error, and is the only place results may be committed into shared
// state.
type Task interface {
	Process(report StatusFunc) error
	Finalize(err error)
}

// Job executes one task. The post function marshals closures onto the
// interactive context; every status report and the finalize call go
// through it, so the worker goroutine never touches UI state directly.
type Job struct {
	task     Task
	post     func(func())
	onStatus StatusFunc

	state atomic.Int32
	alive atomic.Bool
	done  chan struct{}
}

// New prepares a job. A nil post runs hand-offs directly on the worker
// goroutine, which is only suitable for tests and synchronous callers.
// onStatus may be nil when no status surface exists.
func New(task Task, post func(func()), onStatus StatusFunc) *Job {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	j := &Job{
		task:     task,
		post:     post,
		onStatus: onStatus,
		done:     make(chan struct{}),
	}
	j.alive.Store(true)
	return j
}

// Start begins executing the task on a worker goroutine. A job runs at
// most once.
func (j *Job) Start() error {
	if !j.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return errors.New("job already started")
	}
	go j.run()
	return nil
}

// State returns the current lifecycle state
func (j *Job) State() State {
	return State(j.state.Load())
}

// Done is closed once the finalize hand-off has run on the interactive
// context, whether or not the job was still alive to commit.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Abandon drops the job's claim on shared state. Status reports and the
// finalize call delivered after this point become no-ops. Process keeps
// running to completion; there is no cancellation.
func (j *Job) Abandon() {
	j.alive.Store(false)
}

func (j *Job) run() {
	err := j.process()
	if err != nil {
		j.state.Store(int32(Failed))
		j.report(0, fmt.Sprintf("Processing failed: %v", err))
	} else {
		j.state.Store(int32(Finished))
	}

	j.post(func() {
		defer close(j.done)
		if !j.alive.Load() {
			return
		}
		j.task.Finalize(err)
	})
}

// process runs the task, converting a panic into an ordinary failure so
// it never escapes the worker goroutine
func (j *Job) process() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return j.task.Process(j.report)
}

func (j *Job) report(percent int, text string) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if j.onStatus == nil {
		return
	}
	j.post(func() {
		if !j.alive.Load() {
			return
		}
		j.onStatus(percent, text)
	})
}
