// Package graphblas implements a sparse-matrix GraphBLAS engine: linear
// algebra over arbitrary semirings and monoids, with optional masks,
// accumulators and in-place output replacement.
//
// Matrices are stored compressed by column (CSC) or by row (CSR), optionally
// hypersparse, with a pending-tuple bag and zombie entries that are resolved
// lazily by Wait. Operations dispatch to kernels specialized per
// (operator, dtype) -- registered by the build-time generator in
// internal/cmd/kernels_dispatcher -- and fall back to a generic worker driven
// by function pointers and byte-sized value moves for user-defined operators
// and typecasting combinations.
package graphblas

import (
	"os"
	"strconv"

	"k8s.io/klog/v2"
)

//go:generate go run ./internal/cmd/kernels_dispatcher

// EnvMaxParallelism is the environment variable read by New to bound the
// engine's parallelism. 0 disables parallelism, negative means unlimited.
const EnvMaxParallelism = "GRAPHBLAS_MAXPARALLELISM"

// defaultChunk is the minimum amount of work (in nonzeros) that justifies
// one extra thread.
const defaultChunk = 4096

// Engine owns the scheduling and scratch resources shared by operations:
// the workers pool and the pool of per-worker dense scratch (saunas).
//
// Matrices are bound to the engine that created them. The Engine is safe for
// concurrent use; individual matrices are not.
type Engine struct {
	workers workersPool
	saunas  saunaPool

	// chunk is the cost-model granularity, in nonzeros per thread.
	chunk int
}

// New creates an Engine. Parallelism defaults to runtime.NumCPU and can be
// overridden with the GRAPHBLAS_MAXPARALLELISM environment variable.
func New() *Engine {
	e := &Engine{chunk: defaultChunk}
	e.workers.Initialize()
	if value, found := os.LookupEnv(EnvMaxParallelism); found {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			klog.Warningf("ignoring invalid %s=%q: %v", EnvMaxParallelism, value, err)
		} else {
			e.workers.SetMaxParallelism(parsed)
		}
	}
	e.saunas.Initialize(e.workers.MaxParallelism())
	return e
}

// MaxParallelism is a soft target for the number of concurrent workers.
func (e *Engine) MaxParallelism() int { return e.workers.MaxParallelism() }

// SetMaxParallelism changes the parallelism target. Only call it while no
// operations are in flight.
func (e *Engine) SetMaxParallelism(maxParallelism int) {
	e.workers.SetMaxParallelism(maxParallelism)
	e.saunas.Initialize(maxParallelism)
}

// SetChunk overrides the cost-model granularity (nonzeros per thread).
func (e *Engine) SetChunk(chunk int) {
	if chunk < 1 {
		chunk = 1
	}
	e.chunk = chunk
}

// nthreadsFor returns how many workers the cost model assigns to an
// operation touching work nonzeros: min(maxParallelism, ceil(work/chunk)).
// desc's NThreads overrides the maximum if set.
func (e *Engine) nthreadsFor(work int, desc *Descriptor) int {
	maxThreads := e.workers.MaxParallelism()
	if desc != nil && desc.NThreads > 0 {
		maxThreads = desc.NThreads
	}
	if maxThreads <= 0 {
		// Disabled parallelism runs a single worker; unlimited parallelism
		// allows one worker per chunk of work.
		maxThreads = 1
		if e.workers.IsUnlimited() {
			maxThreads = (work + e.chunk - 1) / e.chunk
		}
	}
	nthreads := (work + e.chunk - 1) / e.chunk
	if nthreads < 1 {
		nthreads = 1
	}
	if nthreads > maxThreads {
		nthreads = maxThreads
	}
	return nthreads
}

// ntasksFor splits work for nthreads workers: a single task when serial,
// otherwise up to 64 tasks per thread, capped by the work itself.
func ntasksFor(nthreads, work int) int {
	if nthreads <= 1 {
		return 1
	}
	ntasks := 64 * nthreads
	if ntasks > work {
		ntasks = work
	}
	if ntasks < 1 {
		ntasks = 1
	}
	return ntasks
}
