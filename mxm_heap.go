package graphblas

import (
	"context"

	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// Heap-merge multiply: for each output vector j, the heads of the selected
// A(:, k) vectors (one per entry of B(:, j)) go into a min-heap keyed by
// inner index; popping and merging produces C(:, j) directly in sorted
// order, with no dense workspace. Chosen when both inputs are hypersparse,
// where a dense scratch the size of the inner dimension would be wasteful.

// heapList is one source list of the merge: a cursor over A(:, k) plus the
// position of b(k, j).
type heapList struct {
	apos, aend int
	bpos       int
}

// buildHeapLists collects the non-empty A(:, k) cursors for the entries of
// B(:, j) and seeds the heap with their head indices.
func buildHeapLists(a, b *Matrix, bs, be int, lists []heapList, h minHeap) ([]heapList, minHeap) {
	lists = lists[:0]
	h = h[:0]
	for pos := bs; pos < be; pos++ {
		k := b.i[pos]
		as, ae := a.vectorRange(k)
		if as == ae {
			continue
		}
		lists = append(lists, heapList{apos: as, aend: ae, bpos: pos})
		h = append(h, heapElem{index: a.i[as], list: len(lists) - 1})
	}
	h.heapify()
	return lists, h
}

func mxmHeapTyped[T dtypes.Supported](ctx context.Context, e *Engine, ops semiringOps[T], mask *maskSpec, a, b *Matrix, nthreads int) (*Matrix, error) {
	bvdim := b.vdim()
	ntasks := ntasksFor(nthreads, bvdim)
	slabs := make([]vecSlab, ntasks)
	av, bv := flatView[T](a), flatView[T](b)
	hasMask := mask != nil && mask.m != nil

	err := e.parallelFor(ctx, ntasks, func(task int) {
		var lists []heapList
		var h minHeap
		var idx []int
		var vals []T

		j0, j1 := partitionRange(bvdim, ntasks, task)
		for j := j0; j < j1; j++ {
			bs, be := b.vectorRange(j)
			if bs == be {
				continue
			}
			mv := mask.vector(j)
			lists, h = buildHeapLists(a, b, bs, be, lists, h)
			idx = idx[:0]
			vals = vals[:0]
			for len(h) > 0 {
				i := h[0].index
				var cij T
				exists := false
				// Merge every list currently at inner index i; the heap
				// order processes the left-most source first.
				for len(h) > 0 && h[0].index == i {
					l := &lists[h[0].list]
					t := ops.mul(av[l.apos], bv[l.bpos])
					if !exists {
						cij = t
						exists = true
					} else if ops.terminal == nil || cij != *ops.terminal {
						cij = ops.add(cij, t)
					}
					l.apos++
					if l.apos < l.aend {
						h[0].index = a.i[l.apos]
						h.fix(0)
					} else {
						h.popHead()
					}
				}
				if exists && (!hasMask || mv.admit(i)) {
					idx = append(idx, i)
					vals = append(vals, cij)
				}
			}
			slabs[task].push(j, idx, bytesView(vals))
		}
	})
	if err != nil {
		return nil, err
	}
	return assembleMatrix(e, dtypes.TypeOf[T](), a.nrows, b.ncols, true, slabs), nil
}

func mxmHeapGeneric(ctx context.Context, e *Engine, ops *genericSemiringOps, mask *maskSpec, a, b *Matrix, nthreads int) (*Matrix, error) {
	bvdim := b.vdim()
	ntasks := ntasksFor(nthreads, bvdim)
	slabs := make([]vecSlab, ntasks)
	hasMask := mask != nil && mask.m != nil
	zsize := ops.zsize

	err := e.parallelFor(ctx, ntasks, func(task int) {
		tctx := ops.newTaskCtx()
		cij := make([]byte, zsize)
		var lists []heapList
		var h minHeap
		var idx []int
		var vals []byte

		j0, j1 := partitionRange(bvdim, ntasks, task)
		for j := j0; j < j1; j++ {
			bs, be := b.vectorRange(j)
			if bs == be {
				continue
			}
			mv := mask.vector(j)
			lists, h = buildHeapLists(a, b, bs, be, lists, h)
			idx = idx[:0]
			vals = vals[:0]
			for len(h) > 0 {
				i := h[0].index
				exists := false
				for len(h) > 0 && h[0].index == i {
					l := &lists[h[0].list]
					bkj := tctx.loadB(b, l.bpos)
					if !exists {
						tctx.mulInto(cij, a, l.apos, bkj)
						exists = true
					} else if !ops.isTerminal(cij) {
						tctx.mulAddInto(cij, a, l.apos, bkj)
					}
					l.apos++
					if l.apos < l.aend {
						h[0].index = a.i[l.apos]
						h.fix(0)
					} else {
						h.popHead()
					}
				}
				if exists && (!hasMask || mv.admit(i)) {
					idx = append(idx, i)
					vals = append(vals, cij...)
				}
			}
			slabs[task].push(j, idx, vals)
		}
	})
	if err != nil {
		return nil, err
	}
	return assembleMatrix(e, ops.ztype, a.nrows, b.ncols, true, slabs), nil
}
