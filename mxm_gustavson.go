package graphblas

import (
	"context"
	"slices"
	"unsafe"

	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// Gustavson gather/scatter multiply: for each output vector j, the selected
// columns of A are scattered into a dense per-worker workspace, then the
// touched slots are gathered in sorted order. The workspace mark array uses
// the hi-watermark discipline, so no per-vector reset is ever needed.
//
// With a mask, the mask vector is scattered first: under a normal mask the
// base marker tags admitted slots, under a complemented mask it tags
// rejected slots.

func mxmGustavsonTyped[T dtypes.Supported](ctx context.Context, e *Engine, ops semiringOps[T], mask *maskSpec, a, b *Matrix, nthreads int) (*Matrix, error) {
	bvdim := b.vdim()
	ntasks := ntasksFor(nthreads, bvdim)
	slabs := make([]vecSlab, ntasks)
	vlen := a.vlen()
	var zero T
	zsize := int(unsafe.Sizeof(zero))
	av, bv := flatView[T](a), flatView[T](b)
	hasMask := mask != nil && mask.m != nil
	complement := hasMask && mask.complement

	err := e.parallelFor(ctx, ntasks, func(task int) {
		s := e.saunas.acquire(vlen, zsize)
		defer e.saunas.release(s)
		work := typedView[T](s.work, vlen)
		var idx []int
		var vals []T

		j0, j1 := partitionRange(bvdim, ntasks, task)
		for j := j0; j < j1; j++ {
			bs, be := b.vectorRange(j)
			if bs == be {
				continue
			}
			base := s.bump2()
			occupied := base + 1
			if hasMask {
				mv := mask.vector(j)
				if !complement && len(mv.indices) == 0 {
					continue // nothing admitted in this vector
				}
				for pos, mi := range mv.indices {
					if mv.entryTrue(pos) {
						s.mark[mi] = base
					}
				}
			}

			idx = idx[:0]
			for pos := bs; pos < be; pos++ {
				k := b.i[pos]
				bkj := bv[pos]
				as, ae := a.vectorRange(k)
				for apos := as; apos < ae; apos++ {
					i := a.i[apos]
					mark := s.mark[i]
					if mark == occupied {
						if ops.terminal != nil && work[i] == *ops.terminal {
							continue // absorbing value, further adds are no-ops
						}
						work[i] = ops.add(work[i], ops.mul(av[apos], bkj))
						continue
					}
					if hasMask && (complement == (mark == base)) {
						// Normal mask: only base-marked slots are admitted.
						// Complemented mask: base-marked slots are rejected.
						continue
					}
					work[i] = ops.mul(av[apos], bkj)
					s.mark[i] = occupied
					idx = append(idx, i)
				}
			}
			if len(idx) == 0 {
				continue
			}
			slices.Sort(idx)
			vals = vals[:0]
			for _, i := range idx {
				vals = append(vals, work[i])
			}
			slabs[task].push(j, idx, bytesView(vals))
		}
	})
	if err != nil {
		return nil, err
	}
	return assembleMatrix(e, dtypes.TypeOf[T](), a.nrows, b.ncols, true, slabs), nil
}

// mxmGustavsonGeneric is the function-pointer rendition for user-defined
// semirings and typecast combinations.
func mxmGustavsonGeneric(ctx context.Context, e *Engine, ops *genericSemiringOps, mask *maskSpec, a, b *Matrix, nthreads int) (*Matrix, error) {
	bvdim := b.vdim()
	ntasks := ntasksFor(nthreads, bvdim)
	slabs := make([]vecSlab, ntasks)
	vlen := a.vlen()
	zsize := ops.zsize
	hasMask := mask != nil && mask.m != nil
	complement := hasMask && mask.complement

	err := e.parallelFor(ctx, ntasks, func(task int) {
		s := e.saunas.acquire(vlen, zsize)
		defer e.saunas.release(s)
		tctx := ops.newTaskCtx()
		var idx []int
		var vals []byte

		j0, j1 := partitionRange(bvdim, ntasks, task)
		for j := j0; j < j1; j++ {
			bs, be := b.vectorRange(j)
			if bs == be {
				continue
			}
			base := s.bump2()
			occupied := base + 1
			if hasMask {
				mv := mask.vector(j)
				if !complement && len(mv.indices) == 0 {
					continue
				}
				for pos, mi := range mv.indices {
					if mv.entryTrue(pos) {
						s.mark[mi] = base
					}
				}
			}

			idx = idx[:0]
			for pos := bs; pos < be; pos++ {
				k := b.i[pos]
				bkj := tctx.loadB(b, pos)
				as, ae := a.vectorRange(k)
				for apos := as; apos < ae; apos++ {
					i := a.i[apos]
					slot := s.work[i*zsize : (i+1)*zsize]
					mark := s.mark[i]
					if mark == occupied {
						if ops.isTerminal(slot) {
							continue
						}
						tctx.mulAddInto(slot, a, apos, bkj)
						continue
					}
					if hasMask && (complement == (mark == base)) {
						continue
					}
					tctx.mulInto(slot, a, apos, bkj)
					s.mark[i] = occupied
					idx = append(idx, i)
				}
			}
			if len(idx) == 0 {
				continue
			}
			slices.Sort(idx)
			vals = vals[:0]
			for _, i := range idx {
				vals = append(vals, s.work[i*zsize:(i+1)*zsize]...)
			}
			slabs[task].push(j, idx, vals)
		}
	})
	if err != nil {
		return nil, err
	}
	return assembleMatrix(e, ops.ztype, a.nrows, b.ncols, true, slabs), nil
}
