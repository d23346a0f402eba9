package graphblas

import (
	"context"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/gosparse/graphblas/pkg/core/algebra"
)

// Transpose computes C<M> = accum(C, A'). With desc.Tran0 set the transposes
// cancel and it degenerates to a masked copy of A.
func Transpose(ctx context.Context, c, m *Matrix, accum *algebra.BinaryOp, a *Matrix, desc *Descriptor) error {
	if c == nil || a == nil {
		return errors.Wrap(ErrNullPointer, "Transpose")
	}
	if c == a {
		return errors.Wrap(ErrInvalidValue, "Transpose: output may not alias the input")
	}
	for _, mat := range []*Matrix{c, a} {
		if err := mat.checkValid(); err != nil {
			return err
		}
	}
	doTranspose := !desc.tran0()
	anrows, ancols := effectiveDims(a, doTranspose)
	if c.nrows != anrows || c.ncols != ancols {
		return errors.Wrapf(ErrDimensionMismatch, "Transpose: output %dx%d, input would be %dx%d",
			c.nrows, c.ncols, anrows, ancols)
	}
	if !a.typ.CompatibleWith(c.typ) {
		return errors.Wrapf(ErrDomainMismatch, "Transpose: input type %s cannot be typecast to output type %s", a.typ, c.typ)
	}
	if err := checkAccum(accum, c.typ, a.typ); err != nil {
		return err
	}
	mask, err := newMaskSpec(m, desc, c.nrows, c.ncols)
	if err != nil {
		return err
	}
	if mask.admitsNothing() {
		return quickMaskReturn(c, desc)
	}
	for _, mat := range []*Matrix{m, a} {
		if mat != nil {
			if err := mat.Wait(); err != nil {
				return err
			}
		}
	}
	t, err := conformInput(ctx, a, doTranspose, c.byCol)
	if err != nil {
		return err
	}
	mask, err = conformMask(ctx, mask, c.byCol)
	if err != nil {
		return err
	}
	return accumMask(ctx, c, mask, accum, t, desc)
}

// logicalTransposeView reinterprets the matrix as its transpose without
// moving data: CSC storage of A is CSR storage of A'. The view shares the
// underlying arrays, so it is read-only and requires a clean matrix.
func (m *Matrix) logicalTransposeView() *Matrix {
	m.assertClean()
	view := *m
	view.nrows, view.ncols = m.ncols, m.nrows
	view.byCol = !m.byCol
	return &view
}

// conformInput applies an optional logical transpose and then converts the
// result to the wanted storage orientation, physically transposing the
// storage when the two disagree.
func conformInput(ctx context.Context, m *Matrix, transpose, wantByCol bool) (*Matrix, error) {
	m.assertClean()
	if transpose {
		m = m.logicalTransposeView()
	}
	if m.byCol == wantByCol {
		return m, nil
	}
	return transposeStorage(ctx, m)
}

// conformMask reorients the mask matrix to the output's orientation.
func conformMask(ctx context.Context, mask *maskSpec, wantByCol bool) (*maskSpec, error) {
	if mask == nil || mask.m == nil || mask.m.byCol == wantByCol {
		return mask, nil
	}
	flipped, err := transposeStorage(ctx, mask.m)
	if err != nil {
		return nil, err
	}
	conformed := *mask
	conformed.m = flipped
	return &conformed, nil
}

// transposeStorage rebuilds the matrix in the opposite storage orientation
// without changing its logical content. Two phases: count entries per new
// outer vector (which becomes p), then bucket-scatter every entry to its
// transposed position, each task owning a disjoint range of new outer
// indices so no two tasks write the same bucket.
func transposeStorage(ctx context.Context, m *Matrix) (*Matrix, error) {
	m.assertClean()
	e := m.e
	out := e.newMatrixShell(m.typ, m.nrows, m.ncols, !m.byCol)
	vdimOut := out.vdim()
	if vdimOut != m.vlen() {
		exceptions.Panicf("transposeStorage: inner dimension %d does not match flipped outer %d", m.vlen(), vdimOut)
	}
	nz := len(m.i)
	asize := m.typ.ByteSize

	// Phase 1: per-task counts of entries per new outer vector, then merged
	// into the vector-pointer array.
	nthreads := e.nthreadsFor(nz, nil)
	ntasks := ntasksFor(nthreads, nz)
	taskCounts := make([][]int, ntasks)
	err := e.parallelFor(ctx, ntasks, func(task int) {
		counts := make([]int, vdimOut)
		start, end := partitionRange(nz, ntasks, task)
		for pos := start; pos < end; pos++ {
			counts[m.i[pos]]++
		}
		taskCounts[task] = counts
	})
	if err != nil {
		return nil, err
	}
	p := make([]int, vdimOut+1)
	for _, counts := range taskCounts {
		for inner, n := range counts {
			p[inner] += n
		}
	}
	cumulativeSum(p)

	out.p = p
	out.nvec = vdimOut
	out.i = make([]int, nz)
	out.x = make([]byte, nz*asize)

	// Phase 2: scatter. Each task owns new outer indices [r0, r1) and scans
	// the whole matrix, so buckets are written by exactly one task and in
	// ascending source order, keeping inner indices sorted.
	next := make([]int, vdimOut)
	copy(next, p[:vdimOut])
	scatterTasks := nthreads
	if scatterTasks < 1 {
		scatterTasks = 1
	}
	err = e.parallelFor(ctx, scatterTasks, func(task int) {
		r0, r1 := partitionRange(vdimOut, scatterTasks, task)
		if r0 == r1 {
			return
		}
		for k := 0; k < m.nvec; k++ {
			outer := m.kthVector(k)
			for pos := m.p[k]; pos < m.p[k+1]; pos++ {
				inner := m.i[pos]
				if inner < r0 || inner >= r1 {
					continue
				}
				dst := next[inner]
				next[inner]++
				out.i[dst] = outer
				copy(out.x[dst*asize:(dst+1)*asize], m.x[pos*asize:(pos+1)*asize])
			}
		}
	})
	if err != nil {
		return nil, err
	}
	out.conformHyper()
	return out, nil
}
