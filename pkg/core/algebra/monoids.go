package algebra

import (
	"reflect"

	"github.com/gomlx/exceptions"

	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// Cached built-in monoids, created on first use.
var (
	plusMonoids  [dtypes.NumBuiltin]*Monoid
	timesMonoids [dtypes.NumBuiltin]*Monoid
	minMonoids   [dtypes.NumBuiltin]*Monoid
	maxMonoids   [dtypes.NumBuiltin]*Monoid
	lorMonoid    *Monoid
	landMonoid   *Monoid
	lxorMonoid   *Monoid
	eqMonoid     *Monoid
)

func mustMonoid(op *BinaryOp, identity, terminal any) *Monoid {
	m, err := NewMonoid(op, identity, terminal)
	if err != nil {
		exceptions.Panicf("building built-in monoid: %+v", err)
	}
	return m
}

func zeroOf(dt dtypes.DType) any {
	return reflect.Zero(dt.GoType()).Interface()
}

// PlusMonoid returns the (+, 0) monoid over a numeric dtype. No terminal.
func PlusMonoid(dt dtypes.DType) *Monoid {
	if m := plusMonoids[dt]; m != nil {
		return m
	}
	plusMonoids[dt] = mustMonoid(Plus(dt), zeroOf(dt), nil)
	return plusMonoids[dt]
}

// TimesMonoid returns the (*, 1) monoid over a numeric dtype.
// Integer dtypes have terminal 0; float dtypes have no terminal.
func TimesMonoid(dt dtypes.DType) *Monoid {
	if m := timesMonoids[dt]; m != nil {
		return m
	}
	var terminal any
	if dt.IsInt() {
		terminal = zeroOf(dt)
	}
	timesMonoids[dt] = mustMonoid(Times(dt), int8(1), terminal)
	return timesMonoids[dt]
}

// MinMonoid returns the (min, +inf) monoid; its terminal is the dtype's
// lowest value.
func MinMonoid(dt dtypes.DType) *Monoid {
	if m := minMonoids[dt]; m != nil {
		return m
	}
	minMonoids[dt] = mustMonoid(Min(dt), dt.HighestValue(), dt.LowestValue())
	return minMonoids[dt]
}

// MaxMonoid returns the (max, -inf) monoid; its terminal is the dtype's
// highest value.
func MaxMonoid(dt dtypes.DType) *Monoid {
	if m := maxMonoids[dt]; m != nil {
		return m
	}
	maxMonoids[dt] = mustMonoid(Max(dt), dt.LowestValue(), dt.HighestValue())
	return maxMonoids[dt]
}

// LOrMonoid returns the (||, false) monoid with terminal true.
func LOrMonoid() *Monoid {
	if lorMonoid == nil {
		lorMonoid = mustMonoid(LOr(), false, true)
	}
	return lorMonoid
}

// LAndMonoid returns the (&&, true) monoid with terminal false.
func LAndMonoid() *Monoid {
	if landMonoid == nil {
		landMonoid = mustMonoid(LAnd(), true, false)
	}
	return landMonoid
}

// LXorMonoid returns the (!=, false) monoid over bool. No terminal.
func LXorMonoid() *Monoid {
	if lxorMonoid == nil {
		lxorMonoid = mustMonoid(LXor(), false, nil)
	}
	return lxorMonoid
}

// EqMonoid returns the (==, true) monoid over bool. No terminal.
func EqMonoid() *Monoid {
	if eqMonoid == nil {
		eqMonoid = mustMonoid(mustBinary(OpcodeEq, dtypes.Bool), true, nil)
	}
	return eqMonoid
}
