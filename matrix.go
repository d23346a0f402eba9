package graphblas

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// Matrix is a sparse matrix stored compressed by column (CSC) or by row
// (CSR), optionally hypersparse.
//
// Entries of outer vector k occupy positions p[k]..p[k+1]-1 of the inner
// index array i and the value array x (typ.ByteSize bytes per value). When
// hyper, the ordered list h gives the outer index of each stored vector;
// otherwise vector k has outer index k.
//
// Mutations by SetElement/RemoveElement do not rebuild the compressed form:
// they append pending tuples or mark zombies, which Wait resolves. At every
// observable operation boundary either the matrix is clean (no pending, no
// zombies, inner indices strictly sorted per vector) or it carries the
// deferred mutations that the next Wait will fold in.
//
// A Matrix is not safe for concurrent mutation; it is read-only while used
// as an input of a running operation.
type Matrix struct {
	e   *Engine
	typ *dtypes.Type

	nrows, ncols int

	// byCol selects CSC (true) or CSR (false) storage.
	byCol bool

	// hyper selects hypersparse storage: only non-empty outer vectors are
	// materialized, with their outer indices listed in h.
	hyper bool

	// nvec is the number of stored outer vectors: vdim when not hyper,
	// len(h) when hyper.
	nvec int

	p []int // vector pointers, len nvec+1
	h []int // outer indices of stored vectors, len nvec; nil if not hyper
	i []int // inner indices, strictly increasing per vector (zombies flipped)
	x []byte

	// nzombies counts entries of (i, x) marked deleted by flipping their
	// inner index.
	nzombies int

	// pending tuples not yet merged into (p, i, x). Duplicates are resolved
	// by pendingOp, or by overwrite (last one wins) when pendingOp is nil.
	pending   []pendingTuple
	pendingOp *algebra.BinaryOp
}

// pendingTuple is one deferred write: outer/inner coordinates plus the raw
// value bytes.
type pendingTuple struct {
	k, i int
	v    []byte
}

// flipIndex encodes a zombie: an entry still physically present whose inner
// index is folded to a negative sentinel until the next Wait removes it.
func flipIndex(i int) int { return -i - 2 }

func isZombie(i int) bool { return i < 0 }

// vlen is the inner dimension: the length of each stored vector.
func (m *Matrix) vlen() int {
	if m.byCol {
		return m.nrows
	}
	return m.ncols
}

// vdim is the outer dimension: the number of logical vectors.
func (m *Matrix) vdim() int {
	if m.byCol {
		return m.ncols
	}
	return m.nrows
}

// kthVector returns the outer index of stored vector slot k.
func (m *Matrix) kthVector(k int) int {
	if m.hyper {
		return m.h[k]
	}
	return k
}

// findVector locates the stored slot of outer index j, returning (slot, true)
// or (insertion point, false). For hypersparse matrices this is the binary
// search over h.
func (m *Matrix) findVector(j int) (int, bool) {
	if !m.hyper {
		if j < 0 || j >= m.nvec {
			return m.nvec, false
		}
		return j, true
	}
	return searchSorted(m.h, j)
}

// vectorRange returns the range [start, end) of entries of outer index j.
// Empty (or absent) vectors return start == end.
func (m *Matrix) vectorRange(j int) (int, int) {
	k, found := m.findVector(j)
	if !found {
		return 0, 0
	}
	return m.p[k], m.p[k+1]
}

// NRows and NCols are the matrix dimensions.
func (m *Matrix) NRows() int { return m.nrows }
func (m *Matrix) NCols() int { return m.ncols }

// Type returns the matrix value type.
func (m *Matrix) Type() *dtypes.Type { return m.typ }

// ByCol reports whether the matrix is stored by column (CSC).
func (m *Matrix) ByCol() bool { return m.byCol }

// Hyper reports whether the matrix is stored hypersparse.
func (m *Matrix) Hyper() bool { return m.hyper }

// NVals returns the number of live stored entries plus pending tuples. Note
// pending duplicates are counted until the next Wait folds them.
func (m *Matrix) NVals() int {
	return m.p[m.nvec] - m.nzombies + len(m.pending)
}

// isClean reports that the matrix has no deferred mutations.
func (m *Matrix) isClean() bool {
	return m.nzombies == 0 && len(m.pending) == 0
}

// value returns the raw bytes of entry position pos.
func (m *Matrix) value(pos int) []byte {
	asize := m.typ.ByteSize
	return m.x[pos*asize : (pos+1)*asize]
}

// String summarizes the matrix for debugging.
func (m *Matrix) String() string {
	if m == nil {
		return "Matrix(nil)"
	}
	layout := "csr"
	if m.byCol {
		layout = "csc"
	}
	if m.hyper {
		layout = "hyper-" + layout
	}
	return fmt.Sprintf("Matrix[%s, %dx%d, %s, nvals=%d (%s), pending=%d, zombies=%d]",
		m.typ, m.nrows, m.ncols, layout, m.NVals(),
		humanize.Bytes(uint64(len(m.x)+8*(len(m.p)+len(m.h)+len(m.i)))),
		len(m.pending), m.nzombies)
}

// checkValid verifies the invariants that must hold at operation boundaries.
// It is used at orchestrator entry; a failure means the object was corrupted
// or forged.
func (m *Matrix) checkValid() error {
	if m == nil {
		return errors.WithStack(ErrNullPointer)
	}
	if m.e == nil || m.typ == nil {
		return errors.WithStack(ErrUninitialized)
	}
	if m.nvec < 0 || m.nvec > m.vdim() || len(m.p) != m.nvec+1 {
		return errors.Wrapf(ErrInvalidObject, "nvec=%d vdim=%d len(p)=%d", m.nvec, m.vdim(), len(m.p))
	}
	if m.hyper != (m.h != nil) || (m.hyper && len(m.h) != m.nvec) {
		return errors.Wrapf(ErrInvalidObject, "hyper=%v len(h)=%d nvec=%d", m.hyper, len(m.h), m.nvec)
	}
	if m.p[0] != 0 || m.p[m.nvec] != len(m.i) {
		return errors.Wrapf(ErrInvalidObject, "p[0]=%d p[nvec]=%d nstored=%d", m.p[0], m.p[m.nvec], len(m.i))
	}
	if len(m.x) != len(m.i)*m.typ.ByteSize {
		return errors.Wrapf(ErrInvalidObject, "len(x)=%d want %d", len(m.x), len(m.i)*m.typ.ByteSize)
	}
	return nil
}

// assertClean panics if the matrix still has deferred mutations; kernels
// require inputs already finalized by the orchestrator.
func (m *Matrix) assertClean() {
	if !m.isClean() {
		exceptions.Panicf("matrix %s reached a kernel with deferred mutations", m)
	}
}
