package graphblas

import (
	"context"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// EWiseAdd computes C<M> = accum(C, A (+) B): the set-union element-wise
// combination. op combines values on the intersection of the patterns;
// positions present in only one input copy that input's value through.
func EWiseAdd(ctx context.Context, c, m *Matrix, accum, op *algebra.BinaryOp, a, b *Matrix, desc *Descriptor) error {
	return eWise(ctx, true, c, m, accum, op, a, b, desc)
}

// EWiseMult computes C<M> = accum(C, A (*) B): the set-intersection
// element-wise combination; only positions present in both inputs produce an
// entry.
func EWiseMult(ctx context.Context, c, m *Matrix, accum, op *algebra.BinaryOp, a, b *Matrix, desc *Descriptor) error {
	return eWise(ctx, false, c, m, accum, op, a, b, desc)
}

func eWise(ctx context.Context, union bool, c, m *Matrix, accum, op *algebra.BinaryOp, a, b *Matrix, desc *Descriptor) error {
	if c == nil || op == nil || a == nil || b == nil {
		return errors.Wrap(ErrNullPointer, "eWise")
	}
	for _, mat := range []*Matrix{c, a, b} {
		if err := mat.checkValid(); err != nil {
			return err
		}
	}

	// T has the type of z = op(a, b).
	ttype := op.Z
	if !a.typ.CompatibleWith(op.X) || !b.typ.CompatibleWith(op.Y) {
		return errors.Wrapf(ErrDomainMismatch,
			"eWise: inputs (%s, %s) cannot be typecast to operator %s(%s, %s)",
			a.typ, b.typ, op.Name, op.X, op.Y)
	}
	if union {
		// Entries present in only one input are copied through to T.
		if !a.typ.CompatibleWith(ttype) || !b.typ.CompatibleWith(ttype) {
			return errors.Wrapf(ErrDomainMismatch,
				"eWiseAdd: inputs (%s, %s) cannot be typecast to result type %s", a.typ, b.typ, ttype)
		}
	}
	if err := checkAccum(accum, c.typ, ttype); err != nil {
		return err
	}
	if !ttype.CompatibleWith(c.typ) {
		return errors.Wrapf(ErrDomainMismatch, "eWise: result type %s cannot be typecast to output type %s", ttype, c.typ)
	}

	anrows, ancols := effectiveDims(a, desc.tran0())
	bnrows, bncols := effectiveDims(b, desc.tran1())
	if anrows != bnrows || ancols != bncols || c.nrows != anrows || c.ncols != ancols {
		return errors.Wrapf(ErrDimensionMismatch,
			"eWise: output %dx%d, first input %dx%d, second input %dx%d",
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

	aEff, err := conformInput(ctx, a, desc.tran0(), c.byCol)
	if err != nil {
		return err
	}
	bEff, err := conformInput(ctx, b, desc.tran1(), c.byCol)
	if err != nil {
		return err
	}
	mask, err = conformMask(ctx, mask, c.byCol)
	if err != nil {
		return err
	}

	nthreads := c.e.nthreadsFor(aEff.NVals()+bEff.NVals()+1, desc)
	kernel := ewiseKernelFor(op, aEff, bEff)
	var t *Matrix
	if kernel != nil {
		t, err = kernel(ctx, c.e, union, mask, aEff, bEff, nthreads)
		if errors.Is(err, errNoValue) {
			kernel = nil
		} else if err != nil {
			return err
		}
	}
	if kernel == nil {
		klog.V(1).Infof("eWise: generic worker for %s over (%s, %s)", op.Name, a.typ, b.typ)
		t, err = ewiseGeneric(ctx, c.e, union, mask, op, aEff, bEff, nthreads)
		if err != nil {
			return err
		}
	}
	return accumMask(ctx, c, mask, accum, t, desc)
}

// effectiveDims returns the dimensions of an input after an optional
// transpose.
func effectiveDims(m *Matrix, transpose bool) (int, int) {
	if transpose {
		return m.ncols, m.nrows
	}
	return m.nrows, m.ncols
}

// quickMaskReturn handles the complemented-empty-mask shortcut: nothing is
// admitted, so the output is either untouched or fully cleared.
func quickMaskReturn(c *Matrix, desc *Descriptor) error {
	if desc.replace() {
		return c.Clear()
	}
	return nil
}

// ewiseMerge is the merge skeleton shared by the typed and generic
// element-wise kernels: for every outer vector, walk the two sorted inner
// index lists with two cursors. emit functions receive entry positions in
// the respective input.
type ewiseEmitter interface {
	both(j, i, apos, bpos int)
	left(j, i, apos int)
	right(j, i, bpos int)
	flush(j int)
}

func ewiseMergeVectors(ctx context.Context, e *Engine, union bool, mask *maskSpec, a, b *Matrix,
	nthreads int, makeEmitter func(task int) ewiseEmitter) error {
	vdim := a.vdim()
	ntasks := ntasksFor(nthreads, vdim)
	return e.parallelFor(ctx, ntasks, func(task int) {
		j0, j1 := partitionRange(vdim, ntasks, task)
		em := makeEmitter(task)
		for j := j0; j < j1; j++ {
			as, ae := a.vectorRange(j)
			bs, be := b.vectorRange(j)
			if ae == as && be == bs {
				continue
			}
			if !union && (ae == as || be == bs) {
				continue
			}
			mv := mask.vector(j)
			ap, bp := as, bs
			for ap < ae && bp < be {
				ai, bi := a.i[ap], b.i[bp]
				switch {
				case ai < bi:
					if union && mv.admit(ai) {
						em.left(j, ai, ap)
					}
					ap++
				case ai > bi:
					if union && mv.admit(bi) {
						em.right(j, bi, bp)
					}
					bp++
				default:
					if mv.admit(ai) {
						em.both(j, ai, ap, bp)
					}
					ap++
					bp++
				}
			}
			if union {
				for ; ap < ae; ap++ {
					if i := a.i[ap]; mv.admit(i) {
						em.left(j, i, ap)
					}
				}
				for ; bp < be; bp++ {
					if i := b.i[bp]; mv.admit(i) {
						em.right(j, i, bp)
					}
				}
			}
			em.flush(j)
		}
	})
}

// typedEwiseEmitter is the specialized emitter: all three matrices share one
// native type, so values move as native slices with no casts.
type typedEwiseEmitter[T dtypes.Supported] struct {
	f      func(x, y T) T
	av, bv []T
	idx    []int
	vals   []T
	slab   *vecSlab
}

func (em *typedEwiseEmitter[T]) both(_, i, apos, bpos int) {
	em.idx = append(em.idx, i)
	em.vals = append(em.vals, em.f(em.av[apos], em.bv[bpos]))
}

func (em *typedEwiseEmitter[T]) left(_, i, apos int) {
	em.idx = append(em.idx, i)
	em.vals = append(em.vals, em.av[apos])
}

func (em *typedEwiseEmitter[T]) right(_, i, bpos int) {
	em.idx = append(em.idx, i)
	em.vals = append(em.vals, em.bv[bpos])
}

func (em *typedEwiseEmitter[T]) flush(j int) {
	em.slab.push(j, em.idx, bytesView(em.vals))
	em.idx = em.idx[:0]
	em.vals = em.vals[:0]
}

// makeEwiseKernel builds the specialized element-wise worker for one native
// operator.
func makeEwiseKernel[T dtypes.Supported](f func(x, y T) T) ewiseKernel {
	return func(ctx context.Context, e *Engine, union bool, mask *maskSpec, a, b *Matrix, nthreads int) (*Matrix, error) {
		vdim := a.vdim()
		ntasks := ntasksFor(nthreads, vdim)
		slabs := make([]vecSlab, ntasks)
		av, bv := flatView[T](a), flatView[T](b)
		err := ewiseMergeVectors(ctx, e, union, mask, a, b, nthreads, func(task int) ewiseEmitter {
			return &typedEwiseEmitter[T]{f: f, av: av, bv: bv, slab: &slabs[task]}
		})
		if err != nil {
			return nil, err
		}
		return assembleMatrix(e, a.typ, a.nrows, a.ncols, a.byCol, slabs), nil
	}
}

// genericEwiseEmitter drives the merge through the operator's function
// pointer, wrapping every value move in the needed typecast.
type genericEwiseEmitter struct {
	op         *algebra.BinaryOp
	a, b       *Matrix
	castAtoX   dtypes.CastFn // nil if no cast needed
	castBtoY   dtypes.CastFn
	castAtoZ   dtypes.CastFn
	castBtoZ   dtypes.CastFn
	xbuf, ybuf []byte
	idx        []int
	vals       []byte
	zsize      int
	slab       *vecSlab
}

func (em *genericEwiseEmitter) emitRaw(i int, z []byte) {
	em.idx = append(em.idx, i)
	em.vals = append(em.vals, z...)
}

func (em *genericEwiseEmitter) both(_, i, apos, bpos int) {
	x := em.a.value(apos)
	if em.castAtoX != nil {
		em.castAtoX(em.xbuf, x)
		x = em.xbuf
	}
	y := em.b.value(bpos)
	if em.castBtoY != nil {
		em.castBtoY(em.ybuf, y)
		y = em.ybuf
	}
	z := make([]byte, em.zsize)
	em.op.Fn(z, x, y)
	em.emitRaw(i, z)
}

func (em *genericEwiseEmitter) left(_, i, apos int) {
	z := make([]byte, em.zsize)
	if em.castAtoZ != nil {
		em.castAtoZ(z, em.a.value(apos))
	} else {
		copy(z, em.a.value(apos))
	}
	em.emitRaw(i, z)
}

func (em *genericEwiseEmitter) right(_, i, bpos int) {
	z := make([]byte, em.zsize)
	if em.castBtoZ != nil {
		em.castBtoZ(z, em.b.value(bpos))
	} else {
		copy(z, em.b.value(bpos))
	}
	em.emitRaw(i, z)
}

func (em *genericEwiseEmitter) flush(j int) {
	em.slab.push(j, em.idx, em.vals)
	em.idx = em.idx[:0]
	em.vals = em.vals[:0]
}

// castBetween returns the cast for a (to, from) pair, or nil when the types
// already match (including matching user-defined types, which only copy).
func castBetween(to, from *dtypes.Type) dtypes.CastFn {
	if to.Equal(from) || !to.IsBuiltin() || !from.IsBuiltin() {
		return nil
	}
	return dtypes.CastFunc(to.Code, from.Code)
}

// ewiseGeneric is the generic element-wise worker.
func ewiseGeneric(ctx context.Context, e *Engine, union bool, mask *maskSpec, op *algebra.BinaryOp, a, b *Matrix, nthreads int) (*Matrix, error) {
	vdim := a.vdim()
	ntasks := ntasksFor(nthreads, vdim)
	slabs := make([]vecSlab, ntasks)
	err := ewiseMergeVectors(ctx, e, union, mask, a, b, nthreads, func(task int) ewiseEmitter {
		return &genericEwiseEmitter{
			op: op, a: a, b: b,
			castAtoX: castBetween(op.X, a.typ),
			castBtoY: castBetween(op.Y, b.typ),
			castAtoZ: castBetween(op.Z, a.typ),
			castBtoZ: castBetween(op.Z, b.typ),
			xbuf:     make([]byte, op.X.ByteSize),
			ybuf:     make([]byte, op.Y.ByteSize),
			zsize:    op.Z.ByteSize,
			slab:     &slabs[task],
		}
	})
	if err != nil {
		return nil, err
	}
	return assembleMatrix(e, op.Z, a.nrows, a.ncols, a.byCol, slabs), nil
}

// registerEwiseKernels registers the element-wise workers of one numeric
// dtype.
func registerEwiseKernels[T dtypes.Number]() {
	dt := dtypes.FromGenericsType[T]()
	ewiseKernels.Register(opDTypeKey{op: algebra.OpcodePlus, dt: dt},
		makeEwiseKernel[T](func(x, y T) T { return x + y }))
	ewiseKernels.Register(opDTypeKey{op: algebra.OpcodeMinus, dt: dt},
		makeEwiseKernel[T](func(x, y T) T { return x - y }))
	ewiseKernels.Register(opDTypeKey{op: algebra.OpcodeTimes, dt: dt},
		makeEwiseKernel[T](func(x, y T) T { return x * y }))
	ewiseKernels.Register(opDTypeKey{op: algebra.OpcodeMin, dt: dt},
		makeEwiseKernel[T](func(x, y T) T {
			if y < x {
				return y
			}
			return x
		}))
	ewiseKernels.Register(opDTypeKey{op: algebra.OpcodeMax, dt: dt},
		makeEwiseKernel[T](func(x, y T) T {
			if y > x {
				return y
			}
			return x
		}))
	ewiseKernels.Register(opDTypeKey{op: algebra.OpcodeFirst, dt: dt},
		makeEwiseKernel[T](func(x, _ T) T { return x }))
	ewiseKernels.Register(opDTypeKey{op: algebra.OpcodeSecond, dt: dt},
		makeEwiseKernel[T](func(_, y T) T { return y }))
}

// registerBoolEwiseKernels registers the boolean element-wise workers.
func registerBoolEwiseKernels() {
	ewiseKernels.Register(opDTypeKey{op: algebra.OpcodeLOr, dt: dtypes.Bool},
		makeEwiseKernel[bool](func(x, y bool) bool { return x || y }))
	ewiseKernels.Register(opDTypeKey{op: algebra.OpcodeLAnd, dt: dtypes.Bool},
		makeEwiseKernel[bool](func(x, y bool) bool { return x && y }))
	ewiseKernels.Register(opDTypeKey{op: algebra.OpcodeLXor, dt: dtypes.Bool},
		makeEwiseKernel[bool](func(x, y bool) bool { return x != y }))
}
