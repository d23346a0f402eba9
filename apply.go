package graphblas

import (
	"context"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// Apply computes C<M> = accum(C, op(A)): the unary operator mapped over
// every entry of A, keeping A's pattern. C may alias A when types and shape
// match.
func Apply(ctx context.Context, c, m *Matrix, accum *algebra.BinaryOp, op *algebra.UnaryOp, a *Matrix, desc *Descriptor) error {
	if c == nil || op == nil || a == nil {
		return errors.Wrap(ErrNullPointer, "Apply")
	}
	for _, mat := range []*Matrix{c, a} {
		if err := mat.checkValid(); err != nil {
			return err
		}
	}
	if !a.typ.CompatibleWith(op.X) {
		return errors.Wrapf(ErrDomainMismatch, "Apply: input type %s cannot be typecast to operator %s(%s)",
			a.typ, op.Name, op.X)
	}
	if !op.Z.CompatibleWith(c.typ) {
		return errors.Wrapf(ErrDomainMismatch, "Apply: operator result %s cannot be typecast to output type %s",
			op.Z, c.typ)
	}
	if err := checkAccum(accum, c.typ, op.Z); err != nil {
		return err
	}
	anrows, ancols := effectiveDims(a, desc.tran0())
	if c.nrows != anrows || c.ncols != ancols {
		return errors.Wrapf(ErrDimensionMismatch, "Apply: output %dx%d, input %dx%d", c.nrows, c.ncols, anrows, ancols)
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

	t, err := applyAll(ctx, c.e, op, aEff, desc)
	if err != nil {
		return err
	}
	return accumMask(ctx, c, mask, accum, t, desc)
}

// applyAll builds T = op(A): A's pattern with mapped values, computed over
// parallel chunks of the value array.
func applyAll(ctx context.Context, e *Engine, op *algebra.UnaryOp, a *Matrix, desc *Descriptor) (*Matrix, error) {
	nz := len(a.i)
	t := e.newMatrixShell(op.Z, a.nrows, a.ncols, a.byCol)
	t.hyper = a.hyper
	t.nvec = a.nvec
	t.p = a.p
	t.h = a.h
	t.i = a.i
	t.x = make([]byte, nz*op.Z.ByteSize)
	if nz == 0 {
		return t, nil
	}

	kernel := applyKernelFor(op, a)
	if kernel == nil {
		klog.V(1).Infof("Apply: generic worker for %s over %s", op.Name, a.typ)
		kernel = genericApplyKernel(op, a.typ)
	}
	nthreads := e.nthreadsFor(nz, desc)
	ntasks := ntasksFor(nthreads, nz)
	err := e.parallelFor(ctx, ntasks, func(task int) {
		start, end := partitionRange(nz, ntasks, task)
		kernel(t.x, a.x, start, end)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// genericApplyKernel maps the operator's function pointer over a chunk,
// wrapping the loads and stores in typecasts when needed.
func genericApplyKernel(op *algebra.UnaryOp, atype *dtypes.Type) applyKernel {
	castIn := castBetween(op.X, atype)
	asize := atype.ByteSize
	zsize := op.Z.ByteSize
	return func(cx, ax []byte, start, end int) {
		var xbuf []byte
		if castIn != nil {
			xbuf = make([]byte, op.X.ByteSize)
		}
		for pos := start; pos < end; pos++ {
			x := ax[pos*asize : (pos+1)*asize]
			if castIn != nil {
				castIn(xbuf, x)
				x = xbuf
			}
			op.Fn(cx[pos*zsize:(pos+1)*zsize], x)
		}
	}
}

// makeApplyKernel builds the specialized chunk worker for one native unary
// operator.
func makeApplyKernel[T dtypes.Supported](f func(x T) T) applyKernel {
	return func(cx, ax []byte, start, end int) {
		src := typedView[T](ax, end)
		dst := typedView[T](cx, end)
		for pos := start; pos < end; pos++ {
			dst[pos] = f(src[pos])
		}
	}
}

// registerApplyKernels registers the unary workers of one numeric dtype.
func registerApplyKernels[T dtypes.Number]() {
	dt := dtypes.FromGenericsType[T]()
	applyKernels.Register(opDTypeKey{op: algebra.OpcodeIdentity, dt: dt},
		makeApplyKernel[T](func(x T) T { return x }))
	applyKernels.Register(opDTypeKey{op: algebra.OpcodeAInv, dt: dt},
		makeApplyKernel[T](func(x T) T { return -x }))
	applyKernels.Register(opDTypeKey{op: algebra.OpcodeAbs, dt: dt},
		makeApplyKernel[T](func(x T) T {
			if x < 0 {
				return -x
			}
			return x
		}))
}

// registerBoolApplyKernels registers the boolean unary workers.
func registerBoolApplyKernels() {
	applyKernels.Register(opDTypeKey{op: algebra.OpcodeIdentity, dt: dtypes.Bool},
		makeApplyKernel[bool](func(x bool) bool { return x }))
	applyKernels.Register(opDTypeKey{op: algebra.OpcodeLNot, dt: dtypes.Bool},
		makeApplyKernel[bool](func(x bool) bool { return !x }))
}
