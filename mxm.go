package graphblas

import (
	"context"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// MxM computes C<M> = accum(C, A*B) over a semiring.
//
// Three multiply algorithms are available (see AxBMethod); with AxBAuto the
// planner picks one from the shapes and the mask. The multiply may not alias
// its output with an input.
func MxM(ctx context.Context, c, m *Matrix, accum *algebra.BinaryOp, semiring *algebra.Semiring, a, b *Matrix, desc *Descriptor) error {
	if c == nil || semiring == nil || a == nil || b == nil {
		return errors.Wrap(ErrNullPointer, "MxM")
	}
	if c == a || c == b {
		return errors.Wrap(ErrInvalidValue, "MxM: output may not alias an input")
	}
	for _, mat := range []*Matrix{c, a, b} {
		if err := mat.checkValid(); err != nil {
			return err
		}
	}

	mul := semiring.Mul
	ztype := semiring.Add.Type()
	if !a.typ.CompatibleWith(mul.X) || !b.typ.CompatibleWith(mul.Y) {
		return errors.Wrapf(ErrDomainMismatch,
			"MxM: inputs (%s, %s) cannot be typecast to multiply %s(%s, %s)",
			a.typ, b.typ, mul.Name, mul.X, mul.Y)
	}
	if !ztype.CompatibleWith(c.typ) {
		return errors.Wrapf(ErrDomainMismatch, "MxM: semiring type %s cannot be typecast to output type %s", ztype, c.typ)
	}
	if err := checkAccum(accum, c.typ, ztype); err != nil {
		return err
	}

	anrows, ancols := effectiveDims(a, desc.tran0())
	bnrows, bncols := effectiveDims(b, desc.tran1())
	if ancols != bnrows || c.nrows != anrows || c.ncols != bncols {
		return errors.Wrapf(ErrDimensionMismatch,
			"MxM: output %dx%d, first input %dx%d, second input %dx%d",
			c.nrows, c.ncols, anrows, ancols, bnrows, bncols)
	}

	mask, err := newMaskSpec(m, desc, c.nrows, c.ncols)
	if err != nil {
		return err
	}
	if mask.admitsNothing() {
		return quickMaskReturn(c, desc)
	}
	for _, mat := range []*Matrix{m, a, b} {
		if mat != nil {
			if err := mat.Wait(); err != nil {
				return err
			}
		}
	}
	if err := ctxErr(ctx); err != nil {
		return err
	}

	// The multiply kernels build T by column. When C is stored by row, T' is
	// computed instead -- T' = Beff' * Aeff' -- and presented back through a
	// transposed view.
	var t *Matrix
	if c.byCol {
		ac, err := conformInput(ctx, a, desc.tran0(), true)
		if err != nil {
			return err
		}
		bc, err := conformInput(ctx, b, desc.tran1(), true)
		if err != nil {
			return err
		}
		kernelMask, err := conformMask(ctx, mask, true)
		if err != nil {
			return err
		}
		t, err = mxmWork(ctx, c.e, semiring, kernelMask, ac, bc, desc)
		if err != nil {
			return err
		}
	} else {
		ac, err := conformInput(ctx, b, !desc.tran1(), true)
		if err != nil {
			return err
		}
		bc, err := conformInput(ctx, a, !desc.tran0(), true)
		if err != nil {
			return err
		}
		kernelMask, err := conformMask(ctx, mask, false)
		if err != nil {
			return err
		}
		if kernelMask != nil && kernelMask.m != nil {
			flipped := *kernelMask
			flipped.m = kernelMask.m.logicalTransposeView()
			kernelMask = &flipped
		}
		u, err := mxmWork(ctx, c.e, semiring, kernelMask, ac, bc, desc)
		if err != nil {
			return err
		}
		t = u.logicalTransposeView()
	}

	mask, err = conformMask(ctx, mask, c.byCol)
	if err != nil {
		return err
	}
	return accumMask(ctx, c, mask, accum, t, desc)
}

// mxmWork plans and runs T = A*B with A and B stored by column.
func mxmWork(ctx context.Context, e *Engine, semiring *algebra.Semiring, mask *maskSpec, a, b *Matrix, desc *Descriptor) (*Matrix, error) {
	method := desc.method()
	if method == AxBAuto {
		method = planAxB(mask, a, b)
	}
	nthreads := e.nthreadsFor(a.NVals()+b.NVals()+1, desc)
	klog.V(1).Infof("MxM: method=%s semiring=%s nthreads=%d", method, semiring.Name, nthreads)

	kernel := mxmKernelFor(semiring, a, b)
	if kernel != nil {
		t, err := kernel(ctx, e, method, mask, a, b, nthreads)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, errNoValue) {
			return nil, err
		}
		// The combination was disabled at generation time: fall through.
	}
	klog.V(1).Infof("MxM: generic worker for semiring %s over (%s, %s)", semiring.Name, a.typ, b.typ)
	return mxmGeneric(ctx, e, method, semiring, mask, a, b, nthreads)
}

// planAxB picks the multiply algorithm: heap when both inputs are
// hypersparse, dot when the mask is much sparser than the work a scatter
// pass would touch (or when A is tall and thin), Gustavson otherwise.
func planAxB(mask *maskSpec, a, b *Matrix) AxBMethod {
	if a.hyper && b.hyper {
		return AxBHeap
	}
	if mask != nil && mask.m != nil && !mask.complement {
		mnz := mask.m.NVals()
		if mnz*16 < a.NVals()+b.NVals() {
			return AxBDot
		}
	}
	if a.vlen() > 4*max(a.NVals(), 1) {
		// Tall-thin A: a dense scatter workspace would be mostly empty.
		return AxBDot
	}
	return AxBGustavson
}

// semiringOps carries the native operator closures of one specialized
// semiring instantiation.
type semiringOps[T dtypes.Supported] struct {
	mul, add func(x, y T) T
	identity T
	terminal *T
}

// makeMxMKernel builds the specialized multiply worker for one semiring.
func makeMxMKernel[T dtypes.Supported](ops semiringOps[T]) mxmKernel {
	return func(ctx context.Context, e *Engine, method AxBMethod, mask *maskSpec, a, b *Matrix, nthreads int) (*Matrix, error) {
		switch method {
		case AxBDot:
			return mxmDotTyped(ctx, e, ops, mask, a, b, nthreads)
		case AxBHeap:
			return mxmHeapTyped(ctx, e, ops, mask, a, b, nthreads)
		default:
			return mxmGustavsonTyped(ctx, e, ops, mask, a, b, nthreads)
		}
	}
}

// mxmGeneric is the generic multiply worker: same three algorithms, driven
// by function pointers and byte-sized value moves, with typecasting wrapped
// around every load.
func mxmGeneric(ctx context.Context, e *Engine, method AxBMethod, semiring *algebra.Semiring, mask *maskSpec, a, b *Matrix, nthreads int) (*Matrix, error) {
	ops := newGenericSemiringOps(semiring, a, b)
	switch method {
	case AxBDot:
		return mxmDotGeneric(ctx, e, ops, mask, a, b, nthreads)
	case AxBHeap:
		return mxmHeapGeneric(ctx, e, ops, mask, a, b, nthreads)
	default:
		return mxmGustavsonGeneric(ctx, e, ops, mask, a, b, nthreads)
	}
}

func highestOf[T dtypes.Number]() T {
	return dtypes.FromGenericsType[T]().HighestValue().(T)
}

func lowestOf[T dtypes.Number]() T {
	return dtypes.FromGenericsType[T]().LowestValue().(T)
}

// registerMxMKernels registers the multiply workers of the standard named
// semirings over one numeric dtype.
func registerMxMKernels[T dtypes.Number]() {
	dt := dtypes.FromGenericsType[T]()
	plus := func(x, y T) T { return x + y }
	times := func(x, y T) T { return x * y }
	minOp := func(x, y T) T {
		if y < x {
			return y
		}
		return x
	}
	maxOp := func(x, y T) T {
		if y > x {
			return y
		}
		return x
	}
	lowest, highest := lowestOf[T](), highestOf[T]()

	mxmKernels.Register(semiringKey{add: algebra.OpcodePlus, mul: algebra.OpcodeTimes, dt: dt},
		makeMxMKernel(semiringOps[T]{mul: times, add: plus}))
	mxmKernels.Register(semiringKey{add: algebra.OpcodeMin, mul: algebra.OpcodePlus, dt: dt},
		makeMxMKernel(semiringOps[T]{mul: plus, add: minOp, identity: highest, terminal: &lowest}))
	mxmKernels.Register(semiringKey{add: algebra.OpcodeMin, mul: algebra.OpcodeTimes, dt: dt},
		makeMxMKernel(semiringOps[T]{mul: times, add: minOp, identity: highest, terminal: &lowest}))
	mxmKernels.Register(semiringKey{add: algebra.OpcodeMax, mul: algebra.OpcodeTimes, dt: dt},
		makeMxMKernel(semiringOps[T]{mul: times, add: maxOp, identity: lowest, terminal: &highest}))
}

// registerBoolMxMKernels registers the boolean (||, &&) semiring worker.
func registerBoolMxMKernels() {
	trueVal := true
	mxmKernels.Register(semiringKey{add: algebra.OpcodeLOr, mul: algebra.OpcodeLAnd, dt: dtypes.Bool},
		makeMxMKernel(semiringOps[bool]{
			mul:      func(x, y bool) bool { return x && y },
			add:      func(x, y bool) bool { return x || y },
			identity: false,
			terminal: &trueVal,
		}))
}
