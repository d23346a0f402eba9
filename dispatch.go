package graphblas

import (
	"context"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// The switch factory: each operation looks up a specialized worker by
// (opcode, dtype) key and falls back to the generic worker when the lookup
// misses, when the worker declines with errNoValue, or unconditionally when
// any typecasting is involved. Specialized workers are registered by
// gen_register_kernels.go, emitted by internal/cmd/kernels_dispatcher.

// opDTypeKey keys kernels specialized per (operator, operand dtype).
type opDTypeKey struct {
	op algebra.Opcode
	dt dtypes.DType
}

// semiringKey keys multiply kernels: additive opcode, multiplicative opcode
// and the shared element dtype.
type semiringKey struct {
	add, mul algebra.Opcode
	dt       dtypes.DType
}

// kernelTable maps a dispatch key to a specialized worker.
type kernelTable[K comparable, F any] struct {
	name string
	m    map[K]F
}

func newKernelTable[K comparable, F any](name string) *kernelTable[K, F] {
	return &kernelTable[K, F]{name: name, m: make(map[K]F)}
}

// Register a specialized worker. Later registrations win, mirroring the
// generator's ability to override a combination.
func (t *kernelTable[K, F]) Register(key K, fn F) {
	t.m[key] = fn
}

// Lookup a specialized worker; the second result is false when the
// combination was not generated and the caller must use the generic worker.
func (t *kernelTable[K, F]) Lookup(key K) (F, bool) {
	fn, ok := t.m[key]
	return fn, ok
}

// sliceReducer folds values ax[start:end) (raw bytes of one value each into
// out, which arrives holding the running value. Returns true if the terminal
// value was reached.
type sliceReducer func(out []byte, ax []byte, start, end int, terminal []byte) bool

// mxmKernel computes T = A*B over one semiring with the requested method.
type mxmKernel func(ctx context.Context, e *Engine, method AxBMethod, mask *maskSpec, a, b *Matrix, nthreads int) (*Matrix, error)

// ewiseKernel computes the set-union (union=true) or set-intersection merge
// of A and B under an optional mask.
type ewiseKernel func(ctx context.Context, e *Engine, union bool, mask *maskSpec, a, b *Matrix, nthreads int) (*Matrix, error)

// applyKernel maps one unary operator over the value chunk ax[start:end),
// writing cx[start:end).
type applyKernel func(cx, ax []byte, start, end int)

// selectPredicate decides whether an entry with raw value x survives a
// select, comparing against the raw thunk operand.
type selectPredicate func(x, thunk []byte) bool

// selKey keys the value-dependent select predicates.
type selKey struct {
	kind SelectorKind
	dt   dtypes.DType
}

var (
	sliceReducers    = newKernelTable[opDTypeKey, sliceReducer]("reduce")
	mxmKernels       = newKernelTable[semiringKey, mxmKernel]("mxm")
	ewiseKernels     = newKernelTable[opDTypeKey, ewiseKernel]("ewise")
	applyKernels     = newKernelTable[opDTypeKey, applyKernel]("apply")
	selectPredicates = newKernelTable[selKey, selectPredicate]("select")
)

// reduceKernelFor picks the specialized slice reducer for a monoid over a
// matrix of dtype dt, or nil when the generic worker must run (user-defined
// operators, or any typecasting).
func reduceKernelFor(monoid *algebra.Monoid, dt dtypes.DType) sliceReducer {
	if monoid.Op.Opcode == algebra.OpcodeUserDefined || monoid.Type().Code != dt {
		return nil
	}
	fn, ok := sliceReducers.Lookup(opDTypeKey{op: monoid.Op.Opcode, dt: dt})
	if !ok {
		return nil
	}
	return fn
}

// mxmKernelFor picks the specialized multiply worker for a semiring with
// both inputs already of the semiring's element type.
func mxmKernelFor(semiring *algebra.Semiring, a, b *Matrix) mxmKernel {
	mul := semiring.Mul
	if mul.Opcode == algebra.OpcodeUserDefined || semiring.Add.Op.Opcode == algebra.OpcodeUserDefined {
		return nil
	}
	zc := semiring.Add.Type().Code
	// Typecasting forces the generic worker.
	if !zc.IsBuiltin() || a.typ.Code != mul.X.Code || b.typ.Code != mul.Y.Code ||
		mul.X.Code != zc || mul.Y.Code != zc {
		return nil
	}
	fn, ok := mxmKernels.Lookup(semiringKey{add: semiring.Add.Op.Opcode, mul: mul.Opcode, dt: zc})
	if !ok {
		return nil
	}
	return fn
}

// ewiseKernelFor picks the specialized element-wise worker.
func ewiseKernelFor(op *algebra.BinaryOp, a, b *Matrix) ewiseKernel {
	if op.Opcode == algebra.OpcodeUserDefined {
		return nil
	}
	zc := op.Z.Code
	if !zc.IsBuiltin() || a.typ.Code != zc || b.typ.Code != zc ||
		op.X.Code != zc || op.Y.Code != zc {
		return nil
	}
	fn, ok := ewiseKernels.Lookup(opDTypeKey{op: op.Opcode, dt: zc})
	if !ok {
		return nil
	}
	return fn
}

// applyKernelFor picks the specialized unary worker.
func applyKernelFor(op *algebra.UnaryOp, a *Matrix) applyKernel {
	if op.Opcode == algebra.OpcodeUserDefined {
		return nil
	}
	if a.typ.Code != op.X.Code || op.X.Code != op.Z.Code {
		return nil
	}
	fn, ok := applyKernels.Lookup(opDTypeKey{op: op.Opcode, dt: op.X.Code})
	if !ok {
		return nil
	}
	return fn
}
