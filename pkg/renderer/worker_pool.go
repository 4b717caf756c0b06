package renderer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultChannelCapacity bounds the sample channel so slow consumers apply backpressure
const DefaultChannelCapacity = 4096

// WorkFunc is run once per worker. id is in [0, numWorkers). It must stop sending and return
// ctx.Err() once ctx is done.
type WorkFunc func(ctx context.Context, id, numWorkers int, out chan<- SampleMessage) error

// WorkerPool runs a fixed number of sample producers that share one bounded channel
type WorkerPool struct {
	numWorkers int
	capacity   int
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 uses the CPU count; capacity <= 0 uses DefaultChannelCapacity.
func NewWorkerPool(numWorkers, capacity int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if capacity <= 0 {
		capacity = DefaultChannelCapacity
	}
	return &WorkerPool{numWorkers: numWorkers, capacity: capacity}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run starts every worker and returns the channel they send on plus a wait function.
//
// The channel is closed once all workers have returned. wait blocks until then and returns the
// first worker error; a panicking worker is reported as ErrWorkerPanic and cancels the others.
func (wp *WorkerPool) Run(ctx context.Context, work WorkFunc) (<-chan SampleMessage, func() error) {
	out := make(chan SampleMessage, wp.capacity)
	g, gctx := errgroup.WithContext(ctx)

	for id := 0; id < wp.numWorkers; id++ {
		id := id
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: worker %d: %v", ErrWorkerPanic, id, r)
				}
			}()
			return work(gctx, id, wp.numWorkers, out)
		})
	}

	done := make(chan struct{})
	var waitErr error
	go func() {
		waitErr = g.Wait()
		close(out)
		close(done)
	}()

	return out, func() error {
		<-done
		return waitErr
	}
}
