package graphblas

import (
	"github.com/pkg/errors"

	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// maskSpec carries a mask matrix together with the descriptor bits that
// change how it is consulted. A nil maskSpec (or nil inside) admits every
// position.
type maskSpec struct {
	m          *Matrix
	complement bool
	structural bool

	// toBool converts a mask value to its truth value; nil when structural
	// or when the mask is already boolean.
	toBool dtypes.CastFn
}

// newMaskSpec validates M against the output shape and prepares value
// conversion. M must be a built-in type (anything castable to bool).
func newMaskSpec(m *Matrix, desc *Descriptor, nrows, ncols int) (*maskSpec, error) {
	if m == nil {
		if desc.complement() {
			// A missing mask with complement admits nothing; callers use
			// quickMaskReturn.
			return &maskSpec{complement: true}, nil
		}
		return nil, nil
	}
	if err := m.checkValid(); err != nil {
		return nil, err
	}
	if m.nrows != nrows || m.ncols != ncols {
		return nil, errors.Wrapf(ErrDimensionMismatch, "mask is %dx%d, output is %dx%d",
			m.nrows, m.ncols, nrows, ncols)
	}
	if !m.typ.IsBuiltin() {
		return nil, errors.Wrapf(ErrDomainMismatch, "mask type %s cannot be interpreted as boolean", m.typ)
	}
	spec := &maskSpec{m: m, complement: desc.complement(), structural: desc.structural()}
	if !spec.structural && m.typ.Code != dtypes.Bool {
		spec.toBool = dtypes.CastFunc(dtypes.Bool, m.typ.Code)
	}
	return spec, nil
}

// admitsNothing reports a mask that rejects every position (complemented
// missing mask).
func (s *maskSpec) admitsNothing() bool {
	return s != nil && s.m == nil && s.complement
}

// maskVec is the mask restricted to one outer vector, pre-located by the
// hypersparse lookup so per-entry consultation is a binary search over the
// vector only.
type maskVec struct {
	spec    *maskSpec
	indices []int
	values  []byte
	vsize   int
}

// vector locates outer vector j of the mask. The orientation of the mask
// must already match the output's (the orchestrator conforms it).
func (s *maskSpec) vector(j int) maskVec {
	if s == nil || s.m == nil {
		return maskVec{spec: s}
	}
	start, end := s.m.vectorRange(j)
	return maskVec{
		spec:    s,
		indices: s.m.i[start:end],
		values:  s.m.x[start*s.m.typ.ByteSize : end*s.m.typ.ByteSize],
		vsize:   s.m.typ.ByteSize,
	}
}

// entryTrue returns the truth value of the mask entry at position pos of the
// vector (structural masks treat any present entry as true).
func (v maskVec) entryTrue(pos int) bool {
	if v.spec.structural {
		return true
	}
	if v.spec.toBool == nil {
		return v.values[pos] != 0
	}
	var b [1]byte
	v.spec.toBool(b[:], v.values[pos*v.vsize:(pos+1)*v.vsize])
	return b[0] != 0
}

// admit decides whether inner index i may be written.
func (v maskVec) admit(i int) bool {
	if v.spec == nil {
		return true
	}
	if v.spec.m == nil {
		// Missing mask: complement admits nothing, otherwise everything.
		return !v.spec.complement
	}
	pos, found := searchSorted(v.indices, i)
	mij := false
	if found {
		if v.spec.structural {
			mij = true
		} else if v.spec.toBool == nil {
			mij = v.values[pos] != 0
		} else {
			var b [1]byte
			v.spec.toBool(b[:], v.values[pos*v.vsize:(pos+1)*v.vsize])
			mij = b[0] != 0
		}
	}
	if v.spec.complement {
		return !mij
	}
	return mij
}
