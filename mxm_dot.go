package graphblas

import (
	"context"

	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// Dot-product multiply: every admitted C(i, j) is the add-reduction of the
// two-pointer intersection of A(i, :) and B(:, j). A is first rebuilt in the
// opposite orientation so its rows are directly iterable. Work is sliced
// over output vectors with small dynamic-friendly tasks, since dot lengths
// vary wildly. The monoid terminal short-circuits each dot product.
//
// Chosen when the mask is much sparser than the scatter work, or when A is
// tall and thin: iterating structure beats a mostly-empty dense workspace.

func mxmDotTyped[T dtypes.Supported](ctx context.Context, e *Engine, ops semiringOps[T], mask *maskSpec, a, b *Matrix, nthreads int) (*Matrix, error) {
	at, err := transposeStorage(ctx, a) // rows of A as vectors
	if err != nil {
		return nil, err
	}
	bvdim := b.vdim()
	ntasks := ntasksFor(nthreads, bvdim)
	slabs := make([]vecSlab, ntasks)
	atv, bv := flatView[T](at), flatView[T](b)
	hasMask := mask != nil && mask.m != nil
	sparseMaskIter := hasMask && !mask.complement

	err = e.parallelFor(ctx, ntasks, func(task int) {
		var idx []int
		var vals []T

		dot := func(i, as, ae, bs, be int) (T, bool) {
			var cij T = ops.identity
			exists := false
			ap, bp := as, bs
			for ap < ae && bp < be {
				ai, bi := at.i[ap], b.i[bp]
				switch {
				case ai < bi:
					ap++
				case ai > bi:
					bp++
				default:
					t := ops.mul(atv[ap], bv[bp])
					if !exists {
						cij = t
						exists = true
					} else {
						cij = ops.add(cij, t)
					}
					if ops.terminal != nil && cij == *ops.terminal {
						return cij, true
					}
					ap++
					bp++
				}
			}
			return cij, exists
		}

		j0, j1 := partitionRange(bvdim, ntasks, task)
		for j := j0; j < j1; j++ {
			bs, be := b.vectorRange(j)
			if bs == be {
				continue
			}
			mv := mask.vector(j)
			idx = idx[:0]
			vals = vals[:0]
			if sparseMaskIter {
				// Iterate the admitted mask entries: the mask is sparser
				// than the structural candidates.
				for pos, i := range mv.indices {
					if !mv.entryTrue(pos) {
						continue
					}
					as, ae := at.vectorRange(i)
					if as == ae {
						continue
					}
					if cij, ok := dot(i, as, ae, bs, be); ok {
						idx = append(idx, i)
						vals = append(vals, cij)
					}
				}
			} else {
				for slot := 0; slot < at.nvec; slot++ {
					i := at.kthVector(slot)
					as, ae := at.p[slot], at.p[slot+1]
					if as == ae {
						continue
					}
					if hasMask && !mv.admit(i) {
						continue
					}
					if cij, ok := dot(i, as, ae, bs, be); ok {
						idx = append(idx, i)
						vals = append(vals, cij)
					}
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

func mxmDotGeneric(ctx context.Context, e *Engine, ops *genericSemiringOps, mask *maskSpec, a, b *Matrix, nthreads int) (*Matrix, error) {
	at, err := transposeStorage(ctx, a)
	if err != nil {
		return nil, err
	}
	bvdim := b.vdim()
	ntasks := ntasksFor(nthreads, bvdim)
	slabs := make([]vecSlab, ntasks)
	hasMask := mask != nil && mask.m != nil
	sparseMaskIter := hasMask && !mask.complement
	zsize := ops.zsize

	err = e.parallelFor(ctx, ntasks, func(task int) {
		tctx := ops.newTaskCtx()
		cij := make([]byte, zsize)
		var idx []int
		var vals []byte

		dot := func(i, as, ae, bs, be int) bool {
			exists := false
			ap, bp := as, bs
			for ap < ae && bp < be {
				ai, bi := at.i[ap], b.i[bp]
				switch {
				case ai < bi:
					ap++
				case ai > bi:
					bp++
				default:
					bkj := tctx.loadB(b, bp)
					if !exists {
						tctx.mulInto(cij, at, ap, bkj)
						exists = true
					} else {
						tctx.mulAddInto(cij, at, ap, bkj)
					}
					if ops.isTerminal(cij) {
						return true
					}
					ap++
					bp++
				}
			}
			return exists
		}

		j0, j1 := partitionRange(bvdim, ntasks, task)
		for j := j0; j < j1; j++ {
			bs, be := b.vectorRange(j)
			if bs == be {
				continue
			}
			mv := mask.vector(j)
			idx = idx[:0]
			vals = vals[:0]
			emit := func(i int) {
				idx = append(idx, i)
				vals = append(vals, cij...)
			}
			if sparseMaskIter {
				for pos, i := range mv.indices {
					if !mv.entryTrue(pos) {
						continue
					}
					as, ae := at.vectorRange(i)
					if as == ae {
						continue
					}
					if dot(i, as, ae, bs, be) {
						emit(i)
					}
				}
			} else {
				for slot := 0; slot < at.nvec; slot++ {
					i := at.kthVector(slot)
					as, ae := at.p[slot], at.p[slot+1]
					if as == ae {
						continue
					}
					if hasMask && !mv.admit(i) {
						continue
					}
					if dot(i, as, ae, bs, be) {
						emit(i)
					}
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
