package graphblas

import (
	"github.com/pkg/errors"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// NewMatrix creates an empty nrows x ncols matrix of the given type, stored
// by column (the default orientation).
func (e *Engine) NewMatrix(typ *dtypes.Type, nrows, ncols int) (*Matrix, error) {
	return e.newMatrixOriented(typ, nrows, ncols, true)
}

// NewMatrixByRow creates an empty matrix stored by row (CSR).
func (e *Engine) NewMatrixByRow(typ *dtypes.Type, nrows, ncols int) (*Matrix, error) {
	return e.newMatrixOriented(typ, nrows, ncols, false)
}

func (e *Engine) newMatrixOriented(typ *dtypes.Type, nrows, ncols int, byCol bool) (*Matrix, error) {
	if typ == nil {
		return nil, errors.Wrap(ErrNullPointer, "NewMatrix: nil type")
	}
	if nrows <= 0 || ncols <= 0 {
		return nil, errors.Wrapf(ErrInvalidValue, "NewMatrix: dimensions %dx%d", nrows, ncols)
	}
	m := &Matrix{
		e:     e,
		typ:   typ,
		nrows: nrows,
		ncols: ncols,
		byCol: byCol,
	}
	m.nvec = m.vdim()
	m.p = make([]int, m.nvec+1)
	return m, nil
}

// newMatrixShell creates a clean matrix with the given shape, used by
// kernels to assemble outputs before swapping them into place.
func (e *Engine) newMatrixShell(typ *dtypes.Type, nrows, ncols int, byCol bool) *Matrix {
	m := &Matrix{e: e, typ: typ, nrows: nrows, ncols: ncols, byCol: byCol}
	m.nvec = m.vdim()
	m.p = make([]int, m.nvec+1)
	return m
}

// outerInner converts user (row, col) coordinates to the matrix's
// (outer, inner) pair.
func (m *Matrix) outerInner(i, j int) (k, inner int) {
	if m.byCol {
		return j, i
	}
	return i, j
}

// checkCoords validates user coordinates.
func (m *Matrix) checkCoords(i, j int) error {
	if i < 0 || i >= m.nrows || j < 0 || j >= m.ncols {
		return errors.Wrapf(ErrInvalidValue, "coordinates (%d, %d) outside %dx%d", i, j, m.nrows, m.ncols)
	}
	return nil
}

// SetElement writes value v at (i, j). The write is deferred: it lands in
// the pending-tuple bag and is folded into the compressed form by the next
// Wait. v is a Go scalar (or []byte for user-defined types).
func (m *Matrix) SetElement(i, j int, v any) error {
	if err := m.checkValid(); err != nil {
		return err
	}
	if err := m.checkCoords(i, j); err != nil {
		return err
	}
	raw, err := dtypes.ScalarBytes(m.typ, v)
	if err != nil {
		return errors.Wrapf(ErrDomainMismatch, "SetElement: %v", err)
	}
	k, inner := m.outerInner(i, j)
	m.pending = append(m.pending, pendingTuple{k: k, i: inner, v: raw})
	return nil
}

// RemoveElement deletes the entry at (i, j), if any. An entry already in the
// compressed form becomes a zombie until the next Wait; pending writes to
// the same position are dropped first.
func (m *Matrix) RemoveElement(i, j int) error {
	if err := m.checkValid(); err != nil {
		return err
	}
	if err := m.checkCoords(i, j); err != nil {
		return err
	}
	k, inner := m.outerInner(i, j)
	if len(m.pending) > 0 {
		// Deferred writes to (i, j) must not resurface after the removal.
		kept := m.pending[:0]
		for _, t := range m.pending {
			if t.k != k || t.i != inner {
				kept = append(kept, t)
			}
		}
		m.pending = kept
	}
	start, end := m.vectorRange(k)
	pos, found := searchZombieRange(m.i[start:end], inner)
	if found {
		pos += start
		if !isZombie(m.i[pos]) {
			m.i[pos] = flipIndex(m.i[pos])
			m.nzombies++
		}
	}
	return nil
}

// ExtractElement reads the value at (i, j), returning (value, true) or
// (nil, false) when the position is empty. A non-empty pending bag forces a
// Wait first.
func (m *Matrix) ExtractElement(i, j int) (any, bool, error) {
	if err := m.checkValid(); err != nil {
		return nil, false, err
	}
	if err := m.checkCoords(i, j); err != nil {
		return nil, false, err
	}
	if len(m.pending) > 0 {
		if err := m.Wait(); err != nil {
			return nil, false, err
		}
	}
	k, inner := m.outerInner(i, j)
	start, end := m.vectorRange(k)
	pos, found := searchZombieRange(m.i[start:end], inner)
	if !found {
		return nil, false, nil
	}
	pos += start
	if isZombie(m.i[pos]) {
		return nil, false, nil
	}
	return dtypes.ScalarAny(m.typ, m.value(pos)), true, nil
}

// searchZombieRange is a binary search over a vector's inner indices that
// sees through zombie flips: the indices remain sorted under unflipping.
func searchZombieRange(indices []int, needle int) (int, bool) {
	lo, hi := 0, len(indices)
	for lo < hi {
		mid := (lo + hi) / 2
		imid := indices[mid]
		if isZombie(imid) {
			imid = flipIndex(imid)
		}
		if imid < needle {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= len(indices) {
		return lo, false
	}
	found := indices[lo]
	if isZombie(found) {
		found = flipIndex(found)
	}
	return lo, found == needle
}

// Clear removes all entries, keeping type, dimensions and orientation.
func (m *Matrix) Clear() error {
	if err := m.checkValid(); err != nil {
		return err
	}
	m.hyper = false
	m.h = nil
	m.nvec = m.vdim()
	m.p = make([]int, m.nvec+1)
	m.i = nil
	m.x = nil
	m.nzombies = 0
	m.pending = nil
	m.pendingOp = nil
	return nil
}

// Dup returns a deep copy of the matrix with deferred mutations resolved.
func (m *Matrix) Dup() (*Matrix, error) {
	if err := m.checkValid(); err != nil {
		return nil, err
	}
	if err := m.Wait(); err != nil {
		return nil, err
	}
	dup := m.e.newMatrixShell(m.typ, m.nrows, m.ncols, m.byCol)
	dup.hyper = m.hyper
	dup.nvec = m.nvec
	dup.p = append([]int(nil), m.p...)
	if m.hyper {
		dup.h = append([]int(nil), m.h...)
	}
	dup.i = append([]int(nil), m.i...)
	dup.x = append([]byte(nil), m.x...)
	return dup, nil
}

// Build loads tuples into an empty matrix in one shot. Duplicate positions
// are combined with dup (or overwritten in input order when dup is nil).
// values is a []T slice of the Go type matching the matrix type, or a
// [][]byte for user-defined types.
func (m *Matrix) Build(rows, cols []int, values any, dup *algebra.BinaryOp) error {
	if err := m.checkValid(); err != nil {
		return err
	}
	if m.NVals() != 0 {
		return errors.Wrap(ErrInvalidValue, "Build: matrix must be empty")
	}
	if len(rows) != len(cols) {
		return errors.Wrapf(ErrInvalidValue, "Build: %d rows vs %d cols", len(rows), len(cols))
	}
	scalars, err := scalarSlice(m.typ, values, len(rows))
	if err != nil {
		return err
	}
	if dup != nil {
		if !dup.X.Equal(m.typ) || !dup.Y.Equal(m.typ) || !dup.Z.Equal(m.typ) {
			return errors.Wrapf(ErrDomainMismatch, "Build: dup operator %s does not match matrix type %s", dup.Name, m.typ)
		}
	}
	// Validate every coordinate before the first mutation, so a failed Build
	// leaves the matrix untouched.
	for n := range rows {
		if err := m.checkCoords(rows[n], cols[n]); err != nil {
			return err
		}
	}
	for n := range rows {
		k, inner := m.outerInner(rows[n], cols[n])
		m.pending = append(m.pending, pendingTuple{k: k, i: inner, v: scalars[n]})
	}
	m.pendingOp = dup
	return m.Wait()
}

// scalarSlice converts a user values slice to per-value raw bytes.
func scalarSlice(typ *dtypes.Type, values any, n int) ([][]byte, error) {
	if raw, ok := values.([][]byte); ok && typ.Code == dtypes.UserDefined {
		if len(raw) != n {
			return nil, errors.Wrapf(ErrInvalidValue, "got %d values for %d tuples", len(raw), n)
		}
		out := make([][]byte, n)
		for idx, v := range raw {
			b, err := dtypes.ScalarBytes(typ, v)
			if err != nil {
				return nil, errors.Wrapf(ErrDomainMismatch, "value %d: %v", idx, err)
			}
			out[idx] = b
		}
		return out, nil
	}
	boxed, err := anySlice(values)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidValue, "Build values: %v", err)
	}
	if len(boxed) != n {
		return nil, errors.Wrapf(ErrInvalidValue, "got %d values for %d tuples", len(boxed), n)
	}
	out := make([][]byte, n)
	for idx, v := range boxed {
		b, err := dtypes.ScalarBytes(typ, v)
		if err != nil {
			return nil, errors.Wrapf(ErrDomainMismatch, "value %d: %v", idx, err)
		}
		out[idx] = b
	}
	return out, nil
}

// ExtractTuples returns the coordinates and values of every live entry, in
// storage order.
func ExtractTuples[T dtypes.Supported](m *Matrix) (rows, cols []int, values []T, err error) {
	if err = m.checkValid(); err != nil {
		return
	}
	if dtypes.FromGenericsType[T]() != m.typ.Code {
		err = errors.Wrapf(ErrDomainMismatch, "ExtractTuples: matrix type is %s", m.typ)
		return
	}
	if err = m.Wait(); err != nil {
		return
	}
	nvals := m.NVals()
	rows = make([]int, 0, nvals)
	cols = make([]int, 0, nvals)
	values = make([]T, 0, nvals)
	flat := flatView[T](m)
	for k := 0; k < m.nvec; k++ {
		outer := m.kthVector(k)
		for pos := m.p[k]; pos < m.p[k+1]; pos++ {
			if m.byCol {
				rows = append(rows, m.i[pos])
				cols = append(cols, outer)
			} else {
				rows = append(rows, outer)
				cols = append(cols, m.i[pos])
			}
			values = append(values, flat[pos])
		}
	}
	return
}
