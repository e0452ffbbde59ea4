package job

// Slot holds the application's single current job. It is owned by the
// interactive context and must only be used from there.
type Slot struct {
	current *Job
}

// Start abandons the current job, if any, and starts the given one in
// its place. The abandoned job's pending hand-offs are dropped; its
// worker keeps running unobserved.
func (s *Slot) Start(j *Job) error {
	if s.current != nil {
		s.current.Abandon()
	}
	s.current = j
	return j.Start()
}

// Current returns the job occupying the slot, or nil
func (s *Slot) Current() *Job {
	return s.current
}

// Busy reports whether the slot's job is still running
func (s *Slot) Busy() bool {
	return s.current != nil && s.current.State() == Running
}
