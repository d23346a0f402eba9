package algebra

import (
	"github.com/gomlx/exceptions"

	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

var (
	plusTimesSemirings [dtypes.NumBuiltin]*Semiring
	minPlusSemirings   [dtypes.NumBuiltin]*Semiring
	maxTimesSemirings  [dtypes.NumBuiltin]*Semiring
	minTimesSemirings  [dtypes.NumBuiltin]*Semiring
	lorLAndSemiring    *Semiring
)

func mustSemiring(name string, add *Monoid, mul *BinaryOp) *Semiring {
	s, err := NewSemiring(name, add, mul)
	if err != nil {
		exceptions.Panicf("building built-in semiring: %+v", err)
	}
	return s
}

// PlusTimes returns the conventional (+, *) semiring over a numeric dtype.
func PlusTimes(dt dtypes.DType) *Semiring {
	if s := plusTimesSemirings[dt]; s != nil {
		return s
	}
	plusTimesSemirings[dt] = mustSemiring("plus_times_"+dt.String(), PlusMonoid(dt), Times(dt))
	return plusTimesSemirings[dt]
}

// MinPlus returns the tropical (min, +) semiring over a numeric dtype.
func MinPlus(dt dtypes.DType) *Semiring {
	if s := minPlusSemirings[dt]; s != nil {
		return s
	}
	minPlusSemirings[dt] = mustSemiring("min_plus_"+dt.String(), MinMonoid(dt), Plus(dt))
	return minPlusSemirings[dt]
}

// MaxTimes returns the (max, *) semiring over a numeric dtype.
func MaxTimes(dt dtypes.DType) *Semiring {
	if s := maxTimesSemirings[dt]; s != nil {
		return s
	}
	maxTimesSemirings[dt] = mustSemiring("max_times_"+dt.String(), MaxMonoid(dt), Times(dt))
	return maxTimesSemirings[dt]
}

// MinTimes returns the (min, *) semiring over a numeric dtype.
func MinTimes(dt dtypes.DType) *Semiring {
	if s := minTimesSemirings[dt]; s != nil {
		return s
	}
	minTimesSemirings[dt] = mustSemiring("min_times_"+dt.String(), MinMonoid(dt), Times(dt))
	return minTimesSemirings[dt]
}

// LOrLAnd returns the boolean (||, &&) semiring.
func LOrLAnd() *Semiring {
	if lorLAndSemiring == nil {
		lorLAndSemiring = mustSemiring("lor_land_bool", LOrMonoid(), LAnd())
	}
	return lorLAndSemiring
}
