package graphblas

import (
	"context"

	"github.com/gomlx/exceptions"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// accumMask folds the freshly computed intermediate T into the destination C
// under the optional mask and accumulator:
//
//   - admitted positions present in both C and T get accum(C, T), or T when
//     there is no accumulator;
//   - admitted positions present only in T get T;
//   - admitted positions present only in C keep C under an accumulator and
//     are dropped without one (C<M> = T);
//   - rejected positions keep C, or are cleared when Replace is set.
//
// Typecasts follow C.type <- accum.z <- accum(accum.x <- C.type,
// accum.y <- T.type). T was built in C's orientation, so this is a linear
// merge per outer vector. C is only swapped at the very end, so a cancelled
// operation leaves it untouched.
func accumMask(ctx context.Context, c *Matrix, mask *maskSpec, accum *algebra.BinaryOp, t *Matrix, desc *Descriptor) error {
	if t.byCol != c.byCol || t.nrows != c.nrows || t.ncols != c.ncols {
		exceptions.Panicf("accumMask: T (%s) does not conform to C (%s)", t, c)
	}
	if err := c.Wait(); err != nil {
		return err
	}
	if err := ctxErr(ctx); err != nil {
		return err
	}

	csize := c.typ.ByteSize
	castTtoC := castBetween(c.typ, t.typ)
	var castCtoX, castTtoY, castZtoC dtypes.CastFn
	var xbuf, ybuf, zbuf []byte
	if accum != nil {
		castCtoX = castBetween(accum.X, c.typ)
		castTtoY = castBetween(accum.Y, t.typ)
		castZtoC = castBetween(c.typ, accum.Z)
		xbuf = make([]byte, accum.X.ByteSize)
		ybuf = make([]byte, accum.Y.ByteSize)
		zbuf = make([]byte, accum.Z.ByteSize)
	}

	writeT := func(dst []byte, pos int) {
		if castTtoC != nil {
			castTtoC(dst, t.value(pos))
		} else {
			copy(dst, t.value(pos))
		}
	}
	combine := func(dst []byte, cpos, tpos int) {
		if accum == nil {
			writeT(dst, tpos)
			return
		}
		x := c.value(cpos)
		if castCtoX != nil {
			castCtoX(xbuf, x)
			x = xbuf
		}
		y := t.value(tpos)
		if castTtoY != nil {
			castTtoY(ybuf, y)
			y = ybuf
		}
		accum.Fn(zbuf, x, y)
		if castZtoC != nil {
			castZtoC(dst, zbuf)
		} else {
			copy(dst, zbuf)
		}
	}

	replace := desc.replace()
	vdim := c.vdim()
	newH := make([]int, 0, c.nvec)
	newP := make([]int, 0, c.nvec+1)
	var newI []int
	var newX []byte
	entry := make([]byte, csize)
	emit := func(i int, raw []byte) {
		newI = append(newI, i)
		newX = append(newX, raw[:csize]...)
	}

	for j := 0; j < vdim; j++ {
		if j%1024 == 0 {
			if err := ctxErr(ctx); err != nil {
				return err
			}
		}
		cs, ce := c.vectorRange(j)
		ts, te := t.vectorRange(j)
		if cs == ce && ts == te {
			continue
		}
		mv := mask.vector(j)
		vecStart := len(newI)
		cp, tp := cs, ts
		for cp < ce || tp < te {
			var ci, ti int
			ci, ti = int(^uint(0)>>1), int(^uint(0)>>1)
			if cp < ce {
				ci = c.i[cp]
			}
			if tp < te {
				ti = t.i[tp]
			}
			switch {
			case ci < ti:
				// Only C. Admitted positions follow the result: the
				// accumulator keeps C where T has no entry, but plain
				// C<M> = T deletes it. Rejected positions keep C unless
				// replace clears them.
				if mv.admit(ci) {
					if accum != nil {
						emit(ci, c.value(cp))
					}
				} else if !replace {
					emit(ci, c.value(cp))
				}
				cp++
			case ti < ci:
				if mv.admit(ti) {
					writeT(entry, tp)
					emit(ti, entry)
				}
				tp++
			default:
				if mv.admit(ci) {
					combine(entry, cp, tp)
					emit(ci, entry)
				} else if !replace {
					emit(ci, c.value(cp))
				}
				cp++
				tp++
			}
		}
		if len(newI) > vecStart {
			newH = append(newH, j)
			newP = append(newP, vecStart)
		}
	}
	newP = append(newP, len(newI))

	c.hyper = true
	c.h = newH
	c.nvec = len(newH)
	c.p = newP
	c.i = newI
	c.x = newX
	c.conformHyper()
	return nil
}
