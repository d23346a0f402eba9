package graphblas

import (
	"context"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// SelectorKind enumerates the built-in select predicates.
type SelectorKind int32

const (
	// Positional selectors; the thunk is the diagonal offset.
	SelTriu SelectorKind = iota
	SelTril
	SelDiag
	SelOffdiag

	// Value selectors; the thunk is the comparison operand (ignored by
	// SelNonzero and SelEqZero).
	SelNonzero
	SelEqZero
	SelGtThunk
	SelGeThunk
	SelLtThunk
	SelLeThunk
	SelEqThunk
	SelNeThunk

	// SelUser runs a user predicate; always the generic path.
	SelUser
)

// Selector is the predicate of a Select operation. For SelUser, Predicate
// receives the row, column and raw value of each entry.
type Selector struct {
	Kind      SelectorKind
	Predicate func(i, j int, x []byte) bool
}

// isPositional reports selectors decided by coordinates alone.
func (k SelectorKind) isPositional() bool {
	return k == SelTriu || k == SelTril || k == SelDiag || k == SelOffdiag
}

// Select computes C<M> = accum(C, select(A, thunk)): the entries of A for
// which the selector holds, with A's values passed through unchanged.
func Select(ctx context.Context, c, m *Matrix, accum *algebra.BinaryOp, sel Selector, a *Matrix, thunk any, desc *Descriptor) error {
	if c == nil || a == nil {
		return errors.Wrap(ErrNullPointer, "Select")
	}
	if sel.Kind == SelUser && sel.Predicate == nil {
		return errors.Wrap(ErrNullPointer, "Select: user selector without predicate")
	}
	for _, mat := range []*Matrix{c, a} {
		if err := mat.checkValid(); err != nil {
			return err
		}
	}
	if !a.typ.CompatibleWith(c.typ) {
		return errors.Wrapf(ErrDomainMismatch, "Select: input type %s cannot be typecast to output type %s", a.typ, c.typ)
	}
	if err := checkAccum(accum, c.typ, a.typ); err != nil {
		return err
	}
	anrows, ancols := effectiveDims(a, desc.tran0())
	if c.nrows != anrows || c.ncols != ancols {
		return errors.Wrapf(ErrDimensionMismatch, "Select: output %dx%d, input %dx%d", c.nrows, c.ncols, anrows, ancols)
	}

	// Resolve the thunk: an int offset for positional selectors, a value of
	// A's type for value selectors.
	var ithunk int
	var vthunk []byte
	switch {
	case sel.Kind.isPositional():
		if thunk != nil {
			switch v := thunk.(type) {
			case int:
				ithunk = v
			case int32:
				ithunk = int(v)
			case int64:
				ithunk = int(v)
			default:
				return errors.Wrapf(ErrInvalidValue, "Select: positional thunk must be an integer, got %T", thunk)
			}
		}
	case sel.Kind == SelGtThunk || sel.Kind == SelGeThunk || sel.Kind == SelLtThunk ||
		sel.Kind == SelLeThunk || sel.Kind == SelEqThunk || sel.Kind == SelNeThunk:
		if thunk == nil {
			return errors.Wrap(ErrNullPointer, "Select: comparison selector without thunk")
		}
		var err error
		vthunk, err = dtypes.ScalarBytes(a.typ, thunk)
		if err != nil {
			return errors.Wrapf(ErrDomainMismatch, "Select thunk: %v", err)
		}
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
	aEff, err := conformInput(ctx, a, desc.tran0(), c.byCol)
	if err != nil {
		return err
	}
	mask, err = conformMask(ctx, mask, c.byCol)
	if err != nil {
		return err
	}

	t, err := selectAll(ctx, c.e, sel, ithunk, vthunk, aEff, desc)
	if err != nil {
		return err
	}
	return accumMask(ctx, c, mask, accum, t, desc)
}

// entryKeeper decides whether the entry at position pos (inner index i of
// outer vector j) survives.
type entryKeeper func(a *Matrix, row, col, pos int) bool

// keeperFor resolves the selector to a per-entry decision. Value selectors
// over built-in types use the specialized typed predicates; SelNonzero and
// SelEqZero on user-defined types fall back to a bytewise zero test.
func keeperFor(sel Selector, ithunk int, vthunk []byte, a *Matrix) (entryKeeper, error) {
	switch sel.Kind {
	case SelTriu:
		return func(_ *Matrix, row, col, _ int) bool { return col-row >= ithunk }, nil
	case SelTril:
		return func(_ *Matrix, row, col, _ int) bool { return col-row <= ithunk }, nil
	case SelDiag:
		return func(_ *Matrix, row, col, _ int) bool { return col-row == ithunk }, nil
	case SelOffdiag:
		return func(_ *Matrix, row, col, _ int) bool { return col-row != ithunk }, nil
	case SelUser:
		return func(a *Matrix, row, col, pos int) bool { return sel.Predicate(row, col, a.value(pos)) }, nil
	case SelNonzero, SelEqZero:
		if !a.typ.IsBuiltin() {
			wantZero := sel.Kind == SelEqZero
			return func(a *Matrix, _, _, pos int) bool {
				return bytesAllZero(a.value(pos)) == wantZero
			}, nil
		}
	}
	pred, ok := selectPredicates.Lookup(selKey{kind: sel.Kind, dt: a.typ.Code})
	if !ok {
		return nil, errors.Wrapf(ErrDomainMismatch, "Select: selector %d not defined for type %s", sel.Kind, a.typ)
	}
	return func(a *Matrix, _, _, pos int) bool { return pred(a.value(pos), vthunk) }, nil
}

func bytesAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// selectAll builds T = select(A): a two-phase filter. Phase 1 counts the
// surviving entries of each vector; phase 2 writes them, each task owning
// the same vectors in both phases.
func selectAll(ctx context.Context, e *Engine, sel Selector, ithunk int, vthunk []byte, a *Matrix, desc *Descriptor) (*Matrix, error) {
	keep, err := keeperFor(sel, ithunk, vthunk, a)
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("Select: kind=%d over %s", sel.Kind, a.typ)
	asize := a.typ.ByteSize
	nvec := a.nvec
	nthreads := e.nthreadsFor(len(a.i), desc)
	ntasks := ntasksFor(nthreads, nvec)

	rowColOf := func(k, pos int) (int, int) {
		outer := a.kthVector(k)
		if a.byCol {
			return a.i[pos], outer
		}
		return outer, a.i[pos]
	}

	// Phase 1: count survivors per vector.
	counts := make([]int, nvec+1)
	err = e.parallelFor(ctx, ntasks, func(task int) {
		k0, k1 := partitionRange(nvec, ntasks, task)
		for k := k0; k < k1; k++ {
			n := 0
			for pos := a.p[k]; pos < a.p[k+1]; pos++ {
				row, col := rowColOf(k, pos)
				if keep(a, row, col, pos) {
					n++
				}
			}
			counts[k] = n
		}
	})
	if err != nil {
		return nil, err
	}
	cumulativeSum(counts)
	nz := counts[nvec]

	t := e.newMatrixShell(a.typ, a.nrows, a.ncols, a.byCol)
	t.hyper = a.hyper
	t.nvec = nvec
	if a.hyper {
		t.h = append([]int(nil), a.h...)
	}
	t.p = counts
	t.i = make([]int, nz)
	t.x = make([]byte, nz*asize)

	// Phase 2: write survivors.
	err = e.parallelFor(ctx, ntasks, func(task int) {
		k0, k1 := partitionRange(nvec, ntasks, task)
		for k := k0; k < k1; k++ {
			dst := t.p[k]
			for pos := a.p[k]; pos < a.p[k+1]; pos++ {
				row, col := rowColOf(k, pos)
				if !keep(a, row, col, pos) {
					continue
				}
				t.i[dst] = a.i[pos]
				copy(t.x[dst*asize:(dst+1)*asize], a.value(pos))
				dst++
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// makeThunkPredicate builds one typed comparison-vs-thunk predicate.
func makeThunkPredicate[T dtypes.Supported](cmp func(x, thunk T) bool) selectPredicate {
	return func(x, thunk []byte) bool {
		var tv T
		if thunk != nil {
			tv = dtypes.GetValue[T](thunk)
		}
		return cmp(dtypes.GetValue[T](x), tv)
	}
}

// registerSelectKernels registers the value predicates of one numeric dtype.
func registerSelectKernels[T dtypes.Number]() {
	dt := dtypes.FromGenericsType[T]()
	selectPredicates.Register(selKey{kind: SelNonzero, dt: dt},
		makeThunkPredicate[T](func(x, _ T) bool { return x != 0 }))
	selectPredicates.Register(selKey{kind: SelEqZero, dt: dt},
		makeThunkPredicate[T](func(x, _ T) bool { return x == 0 }))
	selectPredicates.Register(selKey{kind: SelGtThunk, dt: dt},
		makeThunkPredicate[T](func(x, thunk T) bool { return x > thunk }))
	selectPredicates.Register(selKey{kind: SelGeThunk, dt: dt},
		makeThunkPredicate[T](func(x, thunk T) bool { return x >= thunk }))
	selectPredicates.Register(selKey{kind: SelLtThunk, dt: dt},
		makeThunkPredicate[T](func(x, thunk T) bool { return x < thunk }))
	selectPredicates.Register(selKey{kind: SelLeThunk, dt: dt},
		makeThunkPredicate[T](func(x, thunk T) bool { return x <= thunk }))
	selectPredicates.Register(selKey{kind: SelEqThunk, dt: dt},
		makeThunkPredicate[T](func(x, thunk T) bool { return x == thunk }))
	selectPredicates.Register(selKey{kind: SelNeThunk, dt: dt},
		makeThunkPredicate[T](func(x, thunk T) bool { return x != thunk }))
}

// registerBoolSelectKernels registers the boolean value predicates.
func registerBoolSelectKernels() {
	selectPredicates.Register(selKey{kind: SelNonzero, dt: dtypes.Bool},
		makeThunkPredicate[bool](func(x, _ bool) bool { return x }))
	selectPredicates.Register(selKey{kind: SelEqZero, dt: dtypes.Bool},
		makeThunkPredicate[bool](func(x, _ bool) bool { return !x }))
	selectPredicates.Register(selKey{kind: SelEqThunk, dt: dtypes.Bool},
		makeThunkPredicate[bool](func(x, thunk bool) bool { return x == thunk }))
	selectPredicates.Register(selKey{kind: SelNeThunk, dt: dtypes.Bool},
		makeThunkPredicate[bool](func(x, thunk bool) bool { return x != thunk }))
}
