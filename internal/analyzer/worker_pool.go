package analyzer

import (
	"runtime"
	"sync"
)

// WorkerPool fans pipeline work out over a fixed set of goroutines. The
// analysis math itself is synchronous; the pool exists so the two structural
// extractions of a pair, and independent invocations, can run in parallel.
type WorkerPool struct {
	workers  int
	jobQueue chan func()
	once     sync.Once
	closed   sync.Once
}

// NewWorkerPool creates a pool with the given number of workers, defaulting
// to the CPU count.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan func(), workers*2),
	}
}

// Start launches the workers. Safe to call more than once.
func (wp *WorkerPool) Start() {
	wp.once.Do(func() {
		for i := 0; i < wp.workers; i++ {
			go wp.worker()
		}
	})
}

func (wp *WorkerPool) worker() {
	for job := range wp.jobQueue {
		job()
	}
}

// Submit queues one job.
func (wp *WorkerPool) Submit(job func()) {
	wp.jobQueue <- job
}

// Run submits the given jobs and blocks until all of them finish.
func (wp *WorkerPool) Run(jobs ...func()) {
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for _, job := range jobs {
		j := job
		wp.Submit(func() {
			defer wg.Done()
			j()
		})
	}
	wg.Wait()
}

// Close shuts the pool down. Safe to call more than once.
func (wp *WorkerPool) Close() {
	wp.closed.Do(func() {
		close(wp.jobQueue)
	})
}
