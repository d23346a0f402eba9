package graphblas

import (
	"bytes"
	"context"
	"reflect"
	"sync/atomic"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// Reduce folds every value of A with the monoid, returning the result as a
// native Go scalar. See ReduceScalar for the full form with an accumulator.
func Reduce[T dtypes.Supported](ctx context.Context, monoid *algebra.Monoid, a *Matrix) (T, error) {
	var c T
	err := ReduceScalar(ctx, &c, nil, monoid, a)
	return c, err
}

// ReduceScalar computes c = accum(c, reduce(A)): all values of A folded with
// the monoid. c must be a pointer to a supported Go scalar; it is both read
// (when accum is present) and written.
//
// An empty matrix reduces to the monoid identity -- and accum is still
// applied to it: identity is not an implicit no-op here.
func ReduceScalar(ctx context.Context, c any, accum *algebra.BinaryOp, monoid *algebra.Monoid, a *Matrix) error {
	if monoid == nil || c == nil {
		return errors.Wrap(ErrNullPointer, "ReduceScalar")
	}
	if err := a.checkValid(); err != nil {
		return err
	}
	cptr := reflect.ValueOf(c)
	if cptr.Kind() != reflect.Pointer || cptr.IsNil() {
		return errors.Wrapf(ErrNullPointer, "ReduceScalar: c must be a non-nil pointer, got %T", c)
	}
	ctype := dtypes.FromGoType(cptr.Type().Elem())
	if ctype == dtypes.InvalidDType {
		return errors.Wrapf(ErrDomainMismatch, "ReduceScalar: unsupported scalar type %T", c)
	}
	ztype := monoid.Type()
	if !a.typ.CompatibleWith(ztype) {
		return errors.Wrapf(ErrDomainMismatch,
			"ReduceScalar: matrix type %s cannot be typecast to monoid type %s", a.typ, ztype)
	}
	if err := checkAccum(accum, dtypes.TypeFor(ctype), ztype); err != nil {
		return err
	}
	if err := a.Wait(); err != nil {
		return err
	}
	if err := ctxErr(ctx); err != nil {
		return err
	}

	zsize := ztype.ByteSize
	s := make([]byte, zsize)
	copy(s, monoid.Identity)

	anz := a.NVals()
	if anz > 0 {
		reducer := reduceKernelFor(monoid, a.typ.Code)
		if reducer == nil {
			klog.V(1).Infof("ReduceScalar: generic worker for %s over %s", monoid.Op.Name, a.typ)
			reducer = genericSliceReducer(monoid, a.typ)
		}
		if err := a.e.reduceAll(ctx, a, monoid, reducer, s); err != nil {
			return err
		}
	}

	// c = (ctype) s, or c = accum(c, s) with explicit casts.
	out := make([]byte, ctype.Size())
	if accum == nil {
		dtypes.CastFunc(ctype, ztype.Code)(out, s)
	} else {
		xin := make([]byte, accum.X.ByteSize)
		yin := make([]byte, accum.Y.ByteSize)
		zout := make([]byte, accum.Z.ByteSize)
		ccur := make([]byte, ctype.Size())
		reflect.NewAt(ctype.GoType(), bytesPtr(ccur)).Elem().Set(cptr.Elem())
		dtypes.CastFunc(accum.X.Code, ctype)(xin, ccur)
		dtypes.CastFunc(accum.Y.Code, ztype.Code)(yin, s)
		accum.Fn(zout, xin, yin)
		dtypes.CastFunc(ctype, accum.Z.Code)(out, zout)
	}
	cptr.Elem().Set(reflect.NewAt(ctype.GoType(), bytesPtr(out)).Elem())
	return nil
}

// checkAccum validates an optional accumulator against the output type and
// the intermediate type it will combine.
func checkAccum(accum *algebra.BinaryOp, ctype, ttype *dtypes.Type) error {
	if accum == nil {
		return nil
	}
	if !ctype.CompatibleWith(accum.X) || !ttype.CompatibleWith(accum.Y) || !accum.Z.CompatibleWith(ctype) {
		return errors.Wrapf(ErrDomainMismatch,
			"accum %s(%s, %s)->%s incompatible with output type %s and intermediate type %s",
			accum.Name, accum.X, accum.Y, accum.Z, ctype, ttype)
	}
	return nil
}

// reduceAll runs the parallel reduction skeleton shared by the specialized
// and generic workers: the nonzeros are split into ntasks contiguous slices,
// each task folds its slice into a private slot of W starting from the
// identity, and the slots are combined sequentially into s.
//
// A monoid terminal short-circuits: the task that reaches it publishes the
// early-exit flag (store-release) and the other tasks poll it between inner
// blocks (load-acquire), not per element.
func (e *Engine) reduceAll(ctx context.Context, a *Matrix, monoid *algebra.Monoid, reducer sliceReducer, s []byte) error {
	anz := a.NVals()
	zsize := monoid.Type().ByteSize
	nthreads := e.nthreadsFor(anz, nil)
	ntasks := ntasksFor(nthreads, anz)
	klog.V(1).Infof("reduce: %d nonzeros, %d threads, %d tasks", anz, nthreads, ntasks)

	w := make([]byte, ntasks*zsize)
	for task := 0; task < ntasks; task++ {
		copy(w[task*zsize:(task+1)*zsize], monoid.Identity)
	}

	var earlyExit atomic.Bool
	err := e.parallelFor(ctx, ntasks, func(task int) {
		start, end := partitionRange(anz, ntasks, task)
		wt := w[task*zsize : (task+1)*zsize]
		for blockStart := start; blockStart < end; blockStart += defaultChunk {
			if earlyExit.Load() {
				return
			}
			blockEnd := min(blockStart+defaultChunk, end)
			if reducer(wt, a.x, blockStart, blockEnd, monoid.Terminal) {
				earlyExit.Store(true)
				return
			}
		}
	})
	if err != nil {
		return err
	}

	// Combine the per-task partials in task order.
	for task := 0; task < ntasks; task++ {
		monoid.Op.Fn(s, s, w[task*zsize:(task+1)*zsize])
		if monoid.IsTerminal(s) {
			break
		}
	}
	return nil
}

// genericSliceReducer folds a value slice through the monoid's function
// pointer, casting each element when the matrix type differs from the monoid
// type. This is the fallback for user-defined operators and typecasts.
func genericSliceReducer(monoid *algebra.Monoid, atype *dtypes.Type) sliceReducer {
	fadd := monoid.Op.Fn
	zsize := monoid.Type().ByteSize
	asize := atype.ByteSize
	var cast dtypes.CastFn
	if !atype.Equal(monoid.Type()) {
		cast = dtypes.CastFunc(monoid.Type().Code, atype.Code)
	}
	return func(out, ax []byte, start, end int, terminal []byte) bool {
		var buf []byte
		if cast != nil {
			buf = make([]byte, zsize)
		}
		for pos := start; pos < end; pos++ {
			src := ax[pos*asize : (pos+1)*asize]
			if cast != nil {
				cast(buf, src)
				src = buf
			}
			fadd(out, out, src)
			if terminal != nil && bytes.Equal(out[:zsize], terminal) {
				return true
			}
		}
		return false
	}
}

// makeSliceReducer builds the specialized reducer for one native operator:
// no casts, no function pointers in the inner loop.
func makeSliceReducer[T dtypes.Supported](f func(x, y T) T) sliceReducer {
	return func(out, ax []byte, start, end int, terminal []byte) bool {
		vals := typedView[T](ax, end)
		z := dtypes.GetValue[T](out)
		if terminal == nil {
			for _, v := range vals[start:end] {
				z = f(z, v)
			}
			dtypes.PutValue(out, z)
			return false
		}
		term := dtypes.GetValue[T](terminal)
		for _, v := range vals[start:end] {
			z = f(z, v)
			if z == term {
				dtypes.PutValue(out, z)
				return true
			}
		}
		dtypes.PutValue(out, z)
		return false
	}
}

// registerReduceKernels registers the monoid reducers of one numeric dtype.
func registerReduceKernels[T dtypes.Number]() {
	dt := dtypes.FromGenericsType[T]()
	sliceReducers.Register(opDTypeKey{op: algebra.OpcodePlus, dt: dt},
		makeSliceReducer[T](func(x, y T) T { return x + y }))
	sliceReducers.Register(opDTypeKey{op: algebra.OpcodeTimes, dt: dt},
		makeSliceReducer[T](func(x, y T) T { return x * y }))
	sliceReducers.Register(opDTypeKey{op: algebra.OpcodeMin, dt: dt},
		makeSliceReducer[T](func(x, y T) T {
			if y < x {
				return y
			}
			return x
		}))
	sliceReducers.Register(opDTypeKey{op: algebra.OpcodeMax, dt: dt},
		makeSliceReducer[T](func(x, y T) T {
			if y > x {
				return y
			}
			return x
		}))
}

// registerBoolReduceKernels registers the boolean monoid reducers.
func registerBoolReduceKernels() {
	sliceReducers.Register(opDTypeKey{op: algebra.OpcodeLOr, dt: dtypes.Bool},
		makeSliceReducer[bool](func(x, y bool) bool { return x || y }))
	sliceReducers.Register(opDTypeKey{op: algebra.OpcodeLAnd, dt: dtypes.Bool},
		makeSliceReducer[bool](func(x, y bool) bool { return x && y }))
	sliceReducers.Register(opDTypeKey{op: algebra.OpcodeLXor, dt: dtypes.Bool},
		makeSliceReducer[bool](func(x, y bool) bool { return x != y }))
	sliceReducers.Register(opDTypeKey{op: algebra.OpcodeEq, dt: dtypes.Bool},
		makeSliceReducer[bool](func(x, y bool) bool { return x == y }))
}
