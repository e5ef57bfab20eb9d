package jobs

import (
	"sync"

	"github.com/skyne98/neptune"
	"github.com/skyne98/neptune/internal/parallel"
)

// Manager schedules jobs onto its own worker pool, honouring dependencies.
//
// The pool is private to the manager, so a job may itself call into a
// neptune.Compositor (which blocks on its own pool) without starving the
// job graph.
type Manager struct {
	pool *parallel.WorkerPool

	mu      sync.Mutex
	cond    *sync.Cond // signalled when pending or active drops, or on Reset
	jobs    []*Job
	paused  bool
	held    []*Job // ready while paused
	pending int    // scheduled, not yet done
	active  int    // submitted to the pool, not yet done
}

// NewManager creates a job manager with the given number of workers.
// If workers <= 0, GOMAXPROCS is used.
func NewManager(workers int) *Manager {
	m := &Manager{pool: parallel.NewWorkerPool(workers)}
	m.cond = sync.NewCond(&m.mu)
	neptune.Logger().Info("job manager started", "workers", m.pool.Workers())
	return m
}

// NewJob creates a job that runs fn once all deps are done. Dependencies
// must already exist, so job graphs are acyclic by construction. Every
// dependency must belong to the same manager.
func (m *Manager) NewJob(name string, fn func(), deps ...*Job) *Job {
	for _, d := range deps {
		if d == nil || d.m != m {
			panic("jobs: dependency " + describe(d) + " of " + name + " belongs to another manager")
		}
	}

	j := &Job{
		name: name,
		fn:   fn,
		deps: append([]*Job(nil), deps...),
		m:    m,
	}

	m.mu.Lock()
	m.jobs = append(m.jobs, j)
	m.mu.Unlock()
	return j
}

func describe(j *Job) string {
	if j == nil {
		return "<nil>"
	}
	return j.name
}

// Schedule schedules j for execution. It is a no-op unless j is
// NotScheduled. Dependencies that are NotScheduled are scheduled first;
// j runs once the last of them is done.
func (m *Manager) Schedule(j *Job) {
	m.mu.Lock()
	ready := m.schedule(j, nil)
	m.mu.Unlock()

	m.submit(ready)
}

// schedule marks j and its unscheduled dependencies Scheduled and returns
// the jobs that can be submitted now. Caller holds m.mu.
func (m *Manager) schedule(j *Job, ready []*Job) []*Job {
	if j.state != NotScheduled {
		return ready
	}

	j.state = Scheduled
	j.waiting = 0
	m.pending++

	for _, d := range j.deps {
		if d.state == NotScheduled {
			ready = m.schedule(d, ready)
		}
		if d.state != Done {
			d.dependants = append(d.dependants, j)
			j.waiting++
		}
	}

	if j.waiting == 0 {
		ready = m.release(j, ready)
	}
	return ready
}

// release moves a job whose dependencies are done towards the pool.
// Caller holds m.mu.
func (m *Manager) release(j *Job, ready []*Job) []*Job {
	if m.paused {
		m.held = append(m.held, j)
		return ready
	}
	m.active++
	return append(ready, j)
}

// submit hands ready jobs to the pool. Must be called without m.mu held:
// the pool runs a task inline when its queues are full.
func (m *Manager) submit(ready []*Job) {
	for _, j := range ready {
		neptune.Logger().Debug("job submitted", "job", j.name)
		m.pool.Submit(func() { m.run(j) })
	}
}

// run executes j and releases its dependants. A panicking job is not
// recovered.
func (m *Manager) run(j *Job) {
	if j.fn != nil {
		j.fn()
	}

	m.mu.Lock()
	j.state = Done
	m.pending--
	m.active--

	var ready []*Job
	for _, d := range j.dependants {
		d.waiting--
		if d.waiting == 0 {
			ready = m.release(d, ready)
		}
	}
	j.dependants = nil
	m.cond.Broadcast()
	m.mu.Unlock()

	m.submit(ready)
}

// Wait blocks until every scheduled job is done. While the manager is
// paused, Wait blocks until Resume lets held jobs run.
func (m *Manager) Wait() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.pending > 0 {
		m.cond.Wait()
	}
}

// Pause stops new jobs from starting. Running jobs finish; jobs that become
// ready are held until Resume.
func (m *Manager) Pause() {
	m.mu.Lock()
	m.paused = true
	m.mu.Unlock()
}

// Resume lets held jobs run.
func (m *Manager) Resume() {
	m.mu.Lock()
	m.paused = false
	ready := m.held
	m.held = nil
	m.active += len(ready)
	m.mu.Unlock()

	m.submit(ready)
}

// Paused reports whether the manager is paused.
func (m *Manager) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// Reset prepares the job graph for the next frame. Jobs held while paused
// are dropped; jobs already submitted run to completion first. Every job
// then returns to NotScheduled and pending Wait calls return.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	wasPaused := m.paused
	m.paused = true
	for m.active > 0 {
		m.cond.Wait()
	}
	if dropped := len(m.held); dropped > 0 {
		neptune.Logger().Debug("job manager reset dropped queued jobs", "jobs", dropped)
	}
	m.held = nil
	m.paused = wasPaused

	for _, j := range m.jobs {
		j.state = NotScheduled
		j.waiting = 0
		j.dependants = nil
	}
	m.pending = 0
	m.cond.Broadcast()
}

// Workers returns the number of worker goroutines.
func (m *Manager) Workers() int {
	return m.pool.Workers()
}

// Close stops the worker pool. Jobs scheduled after Close run on the
// goroutine that makes them ready.
func (m *Manager) Close() {
	if m.pool.IsRunning() {
		neptune.Logger().Info("job manager stopped")
	}
	m.pool.Close()
}
