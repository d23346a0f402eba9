package graphblas

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// workersPool bounds the number of goroutines doing kernel work.
type workersPool struct {
	// maxParallelism is a soft target on the limit of parallel work to do.
	// The actual number of goroutines can be higher -- because of waits.
	maxParallelism int
	mu             sync.Mutex
	cond           sync.Cond // Signaled whenever numRunning is decreased.
	numRunning     int

	// extraParallelism is temporarily increased when a worker goes to sleep.
	extraParallelism atomic.Int32
}

// Initialize should be called before use.
func (w *workersPool) Initialize() {
	w.maxParallelism = runtime.NumCPU()
	w.cond = sync.Cond{L: &w.mu}
}

// IsEnabled returns whether parallelism is enabled (maxParallelism != 0).
func (w *workersPool) IsEnabled() bool {
	return w.maxParallelism != 0
}

// IsUnlimited returns whether parallelism is unlimited (maxParallelism < 0).
func (w *workersPool) IsUnlimited() bool {
	return w.maxParallelism < 0
}

// MaxParallelism is a soft target for parallelism (the limit of goroutines
// is higher than this). 0 disables parallelism, -1 makes it unlimited.
func (w *workersPool) MaxParallelism() int {
	return w.maxParallelism
}

// SetMaxParallelism sets maxParallelism.
//
// Only change the parallelism while no workers are running; if changed
// during an execution the behavior is undefined.
func (w *workersPool) SetMaxParallelism(maxParallelism int) {
	w.maxParallelism = maxParallelism
}

const goroutineToParallelismRatio = 2

// lockedIsFull returns whether all available workers are in use.
//
// It must be called with workersPool.mu acquired.
func (w *workersPool) lockedIsFull() bool {
	if w.maxParallelism == 0 {
		return true
	} else if w.maxParallelism < 0 {
		return false
	}
	return w.numRunning >= goroutineToParallelismRatio*w.maxParallelism+int(w.extraParallelism.Load())
}

// WaitToStart waits until there is a worker available to run the task.
//
// If parallelism is disabled (maxParallelism is 0), it runs the task inline
// and returns when it is finished.
func (w *workersPool) WaitToStart(task func()) {
	if w.IsUnlimited() {
		go task()
		return
	} else if w.maxParallelism == 0 {
		task()
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for w.lockedIsFull() {
		w.cond.Wait()
	}
	w.lockedRunTaskInGoroutine(task)
}

// lockedRunTaskInGoroutine and keep tabs on w.numRunning.
//
// It must be called with workersPool.mu acquired.
func (w *workersPool) lockedRunTaskInGoroutine(task func()) {
	w.numRunning++
	go func() {
		task()
		w.mu.Lock()
		w.numRunning--
		w.cond.Signal()
		w.mu.Unlock()
	}()
}

// StartIfAvailable runs the task in a separate goroutine if there are
// workers left. It returns true if it found a worker, false otherwise.
//
// It's up to the client to synchronize the end of the task execution.
func (w *workersPool) StartIfAvailable(task func()) bool {
	if w.IsUnlimited() {
		go task()
		return true
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.lockedIsFull() {
		return false
	}
	w.lockedRunTaskInGoroutine(task)
	return true
}

// parallelFor runs fn(task) for task in [0, ntasks) on the workers pool and
// waits for all of them. Cancellation is polled between tasks only; tasks
// already started run to completion on their slice.
func (e *Engine) parallelFor(ctx context.Context, ntasks int, fn func(task int)) error {
	if ntasks <= 1 || !e.workers.IsEnabled() {
		for task := 0; task < ntasks; task++ {
			if err := ctxErr(ctx); err != nil {
				return err
			}
			fn(task)
		}
		return nil
	}
	var wg sync.WaitGroup
	wg.Add(ntasks)
	var cancelled atomic.Bool
	for task := 0; task < ntasks; task++ {
		if ctxErr(ctx) != nil {
			cancelled.Store(true)
		}
		if cancelled.Load() {
			// Remaining tasks are not started.
			wg.Add(task - ntasks)
			break
		}
		task := task
		e.workers.WaitToStart(func() {
			defer wg.Done()
			fn(task)
		})
	}
	wg.Wait()
	return ctxErr(ctx)
}
