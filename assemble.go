package graphblas

import "github.com/gosparse/graphblas/pkg/core/dtypes"

// vecSlab accumulates the output vectors produced by one task. Tasks own
// disjoint outer ranges, so slabs concatenate in task order into a valid
// compressed matrix.
type vecSlab struct {
	js   []int // outer index of each non-empty vector, ascending
	lens []int // entries per vector
	i    []int
	x    []byte
}

// push appends one non-empty output vector.
func (s *vecSlab) push(j int, indices []int, raw []byte) {
	if len(indices) == 0 {
		return
	}
	s.js = append(s.js, j)
	s.lens = append(s.lens, len(indices))
	s.i = append(s.i, indices...)
	s.x = append(s.x, raw...)
}

// assembleMatrix stitches per-task slabs into a clean matrix. The result is
// built hypersparse and then conformed to the density threshold.
func assembleMatrix(e *Engine, typ *dtypes.Type, nrows, ncols int, byCol bool, slabs []vecSlab) *Matrix {
	nvec, nz := 0, 0
	for _, s := range slabs {
		nvec += len(s.js)
		nz += len(s.i)
	}
	m := e.newMatrixShell(typ, nrows, ncols, byCol)
	m.hyper = true
	m.nvec = nvec
	m.h = make([]int, 0, nvec)
	m.p = make([]int, 0, nvec+1)
	m.i = make([]int, 0, nz)
	m.x = make([]byte, 0, nz*typ.ByteSize)
	for _, s := range slabs {
		m.h = append(m.h, s.js...)
		m.i = append(m.i, s.i...)
		m.x = append(m.x, s.x...)
	}
	// Build p from the per-vector lengths.
	offset := 0
	for _, s := range slabs {
		for _, n := range s.lens {
			m.p = append(m.p, offset)
			offset += n
		}
	}
	m.p = append(m.p, offset)
	m.conformHyper()
	return m
}
