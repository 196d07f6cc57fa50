package analyzer

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunBlocksUntilDone(t *testing.T) {
	wp := NewWorkerPool(4)
	wp.Start()
	defer wp.Close()

	var counter int64
	jobs := make([]func(), 32)
	for i := range jobs {
		jobs[i] = func() { atomic.AddInt64(&counter, 1) }
	}

	wp.Run(jobs...)

	if got := atomic.LoadInt64(&counter); got != 32 {
		t.Errorf("Expected all 32 jobs to complete before Run returns, got %d", got)
	}
}

func TestWorkerPool_CloseIsIdempotent(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Start()
	wp.Run(func() {})
	wp.Close()
	wp.Close()
}
