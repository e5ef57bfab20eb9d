package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines for data-parallel batch work.
//
// The pool distributes tasks across multiple workers, each with their own
// queue. Workers steal from other workers when their own queue is empty,
// which keeps every core busy when chunks take uneven time.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker task queues.
	// Each worker primarily pulls from its own queue but can steal from others.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// submitMu orders submissions against Close: submitters hold the read
	// lock, Close takes the write lock before signalling done, so every task
	// that made it into a queue is drained before the workers exit.
	submitMu sync.RWMutex

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// stolen counts tasks executed by a worker other than the one they
	// were queued on.
	stolen atomic.Int64
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case task := <-myQueue:
			task()

		default:
			if stolen := p.steal(id); stolen != nil {
				p.stolen.Add(1)
				stolen()
				continue
			}

			// Nothing anywhere: block on our own queue.
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case task := <-myQueue:
				task()
			}
		}
	}
}

// drainQueue executes all remaining tasks in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case task := <-queue:
			task()
		default:
			return
		}
	}
}

// steal attempts to take a task from another worker's queue.
// Returns nil if no work is available.
func (p *WorkerPool) steal(myID int) func() {
	for i := 1; i < p.workers; i++ {
		victim := (myID + i) % p.workers
		select {
		case task := <-p.workQueues[victim]:
			return task
		default:
		}
	}
	return nil
}

// ExecuteAll distributes tasks across workers and waits for all to complete.
// Tasks are assigned round-robin; idle workers steal the rest.
//
// Every task runs exactly once. If the pool is closed, the tasks run inline
// on the calling goroutine instead of being dropped.
//
// ExecuteAll must not be called from a task running on the same pool.
func (p *WorkerPool) ExecuteAll(tasks []func()) {
	if len(tasks) == 0 {
		return
	}

	p.submitMu.RLock()
	if !p.running.Load() {
		p.submitMu.RUnlock()
		runInline(tasks)
		return
	}

	var completion sync.WaitGroup
	completion.Add(len(tasks))

	for i, fn := range tasks {
		p.workQueues[i%p.workers] <- func() {
			defer completion.Done()
			fn()
		}
	}
	p.submitMu.RUnlock()

	completion.Wait()
}

// Submit sends a single task to the worker with the shortest queue and
// returns without waiting. Submit never blocks on a full queue, so tasks
// may submit follow-up tasks: if the pool is closed or every queue is
// full, fn runs inline on the caller.
func (p *WorkerPool) Submit(fn func()) {
	if fn == nil {
		return
	}

	p.submitMu.RLock()
	if !p.running.Load() {
		p.submitMu.RUnlock()
		fn()
		return
	}

	minLen := len(p.workQueues[0])
	minIdx := 0
	for i := 1; i < p.workers; i++ {
		if qLen := len(p.workQueues[i]); qLen < minLen {
			minLen = qLen
			minIdx = i
		}
	}

	select {
	case p.workQueues[minIdx] <- fn:
		p.submitMu.RUnlock()
	default:
		p.submitMu.RUnlock()
		fn()
	}
}

// ForEachRange partitions [0, n) into consecutive half-open chunks of at
// most grain indices and calls fn(lo, hi) once per chunk, in parallel.
// Chunks are disjoint and together cover [0, n) exactly once.
// ForEachRange returns when every chunk has completed.
func (p *WorkerPool) ForEachRange(n, grain int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if grain <= 0 {
		grain = 1
	}
	if n <= grain || p.workers == 1 {
		fn(0, n)
		return
	}

	p.ExecuteAll(chunkTasks(n, grain, fn))
}

// ForEachRangeContext is ForEachRange with cooperative cancellation.
// ctx is checked before each chunk starts; chunks that have not started
// when ctx is done are skipped, and ctx.Err() is returned. A nil error means
// every chunk ran.
func (p *WorkerPool) ForEachRangeContext(ctx context.Context, n, grain int, fn func(lo, hi int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if grain <= 0 {
		grain = 1
	}

	var skipped atomic.Bool
	guarded := func(lo, hi int) {
		if ctx.Err() != nil {
			skipped.Store(true)
			return
		}
		fn(lo, hi)
	}

	if p.workers == 1 {
		for lo := 0; lo < n; lo += grain {
			guarded(lo, min(lo+grain, n))
		}
	} else {
		p.ExecuteAll(chunkTasks(n, grain, guarded))
	}

	if skipped.Load() {
		return ctx.Err()
	}
	return nil
}

// chunkTasks builds one task per chunk of [0, n).
func chunkTasks(n, grain int, fn func(lo, hi int)) []func() {
	tasks := make([]func(), 0, (n+grain-1)/grain)
	for lo := 0; lo < n; lo += grain {
		hi := min(lo+grain, n)
		tasks = append(tasks, func() { fn(lo, hi) })
	}
	return tasks
}

func runInline(tasks []func()) {
	for _, fn := range tasks {
		fn()
	}
}

// Close gracefully shuts down the pool.
// It stops accepting new work, waits for all queued work to complete,
// and then stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.submitMu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.submitMu.Unlock()
		return
	}
	close(p.done)
	p.submitMu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// QueuedWork returns the total number of tasks currently queued.
// This is an approximation as queues can change while iterating.
func (p *WorkerPool) QueuedWork() int {
	total := 0
	for _, q := range p.workQueues {
		total += len(q)
	}
	return total
}

// Stolen returns how many tasks have been executed by a worker other than
// the one they were queued on since the pool started.
func (p *WorkerPool) Stolen() int64 {
	return p.stolen.Load()
}
