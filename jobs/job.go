package jobs

// State is the lifecycle state of a job within one frame.
type State int

const (
	// NotScheduled jobs have not been scheduled since creation or the last Reset.
	NotScheduled State = iota
	// Scheduled jobs are waiting for dependencies, queued, or running.
	Scheduled
	// Done jobs have run to completion.
	Done
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case NotScheduled:
		return "NotScheduled"
	case Scheduled:
		return "Scheduled"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

// Job is a unit of work with dependencies. Jobs are recurrent: after
// Manager.Reset the same graph can be scheduled again.
//
// All mutable fields are guarded by the owning manager's mutex.
type Job struct {
	name string
	fn   func()
	deps []*Job
	m    *Manager

	state      State
	waiting    int // dependencies not yet done
	dependants []*Job
}

// Name returns the job's name.
func (j *Job) Name() string {
	return j.name
}

// State returns the job's current state.
func (j *Job) State() State {
	j.m.mu.Lock()
	defer j.m.mu.Unlock()
	return j.state
}

// Dependencies returns the jobs that must be done before j runs.
func (j *Job) Dependencies() []*Job {
	return append([]*Job(nil), j.deps...)
}
