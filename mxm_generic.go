package graphblas

import (
	"bytes"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// genericSemiringOps binds a semiring to two concrete input matrices for the
// generic multiply workers: function pointers for multiply and add, casts
// for the value loads, and the identity/terminal bytes.
type genericSemiringOps struct {
	ztype        *dtypes.Type
	zsize        int
	mulFn, addFn algebra.BinaryFn
	castA, castB dtypes.CastFn // nil when no typecast is needed
	mulXsize     int
	mulYsize     int
	identity     []byte
	terminal     []byte
}

func newGenericSemiringOps(s *algebra.Semiring, a, b *Matrix) *genericSemiringOps {
	return &genericSemiringOps{
		ztype:    s.Add.Type(),
		zsize:    s.Add.Type().ByteSize,
		mulFn:    s.Mul.Fn,
		addFn:    s.Add.Op.Fn,
		castA:    castBetween(s.Mul.X, a.typ),
		castB:    castBetween(s.Mul.Y, b.typ),
		mulXsize: s.Mul.X.ByteSize,
		mulYsize: s.Mul.Y.ByteSize,
		identity: s.Add.Identity,
		terminal: s.Add.Terminal,
	}
}

func (o *genericSemiringOps) isTerminal(z []byte) bool {
	return o.terminal != nil && bytes.Equal(z[:o.zsize], o.terminal)
}

// mxmTaskCtx is the per-task scratch of the generic workers; the buffers
// make every value move memcpy-shaped without allocation in the inner loop.
type mxmTaskCtx struct {
	o          *genericSemiringOps
	xbuf, ybuf []byte
	tbuf       []byte
}

func (o *genericSemiringOps) newTaskCtx() *mxmTaskCtx {
	return &mxmTaskCtx{
		o:    o,
		xbuf: make([]byte, o.mulXsize),
		ybuf: make([]byte, o.mulYsize),
		tbuf: make([]byte, o.zsize),
	}
}

// loadB returns the multiply's y operand for B's entry at pos, casting into
// the task buffer when needed. The result is valid until the next loadB.
func (t *mxmTaskCtx) loadB(b *Matrix, pos int) []byte {
	y := b.value(pos)
	if t.o.castB != nil {
		t.o.castB(t.ybuf, y)
		y = t.ybuf
	}
	return y
}

// mulInto computes z = mul(A[apos], bkj).
func (t *mxmTaskCtx) mulInto(z []byte, a *Matrix, apos int, bkj []byte) {
	x := a.value(apos)
	if t.o.castA != nil {
		t.o.castA(t.xbuf, x)
		x = t.xbuf
	}
	t.o.mulFn(z, x, bkj)
}

// mulAddInto computes z = add(z, mul(A[apos], bkj)).
func (t *mxmTaskCtx) mulAddInto(z []byte, a *Matrix, apos int, bkj []byte) {
	t.mulInto(t.tbuf, a, apos, bkj)
	t.o.addFn(z, z, t.tbuf)
}
