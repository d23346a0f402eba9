package graphblas

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

func TestReducePlusInt32Diag(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int32{
		{1, 0, 0, 0},
		{0, 2, 0, 0},
		{0, 0, 3, 0},
		{0, 0, 0, 4},
	}, true)
	s, err := Reduce[int32](ctxTest(), algebra.PlusMonoid(dtypes.Int32), a)
	require.NoError(t, err)
	assert.Equal(t, int32(10), s)
}

func TestReduceEmptyIsIdentity(t *testing.T) {
	e := New()
	a, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 3, 3)
	require.NoError(t, err)

	s, err := Reduce[float64](ctxTest(), algebra.PlusMonoid(dtypes.Float64), a)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)

	minOf, err := Reduce[float64](ctxTest(), algebra.MinMonoid(dtypes.Float64), a)
	require.NoError(t, err)
	assert.True(t, minOf > 1e308, "empty min reduces to +inf identity")

	// The accumulator still combines with the identity: it is not a no-op.
	c := 5.0
	require.NoError(t, ReduceScalar(ctxTest(), &c, algebra.Plus(dtypes.Float64), algebra.PlusMonoid(dtypes.Float64), a))
	assert.Equal(t, 5.0, c)
	c = 5.0
	require.NoError(t, ReduceScalar(ctxTest(), &c, algebra.Times(dtypes.Float64), algebra.TimesMonoid(dtypes.Float64), a))
	assert.Equal(t, 5.0, c) // 5 * identity(1)
}

func TestReduceMaxUint8Terminal(t *testing.T) {
	e := New()
	const n = 1000
	a, err := e.NewMatrix(dtypes.TypeFor(dtypes.Uint8), n, n)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(42))
	for k := 0; k < 100000; k++ {
		v := uint8(rng.Intn(200)) // never 255
		require.NoError(t, a.SetElement(rng.Intn(n), rng.Intn(n), v))
	}
	require.NoError(t, a.SetElement(n/2, n/3, uint8(255)))
	require.NoError(t, a.Wait())

	s, err := Reduce[uint8](ctxTest(), algebra.MaxMonoid(dtypes.Uint8), a)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), s)
}

func TestReduceTerminalPlacementInvariant(t *testing.T) {
	// A terminal anywhere reduces like reducing just the terminal.
	e := New()
	lor := algebra.LOrMonoid()
	for _, pos := range []int{0, 2, 5} {
		a, err := e.NewMatrix(dtypes.TypeFor(dtypes.Bool), 3, 3)
		require.NoError(t, err)
		for k := 0; k < 6; k++ {
			require.NoError(t, a.SetElement(k/3, k%3, k == pos))
		}
		s, err := Reduce[bool](ctxTest(), lor, a)
		require.NoError(t, err)
		assert.True(t, s)
	}
}

func TestReduceWithAccumAndCasts(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int32{{1, 2}, {3, 4}}, true)

	// c is float64, monoid is int32: casts on both sides of the accum.
	c := 0.5
	require.NoError(t, ReduceScalar(ctxTest(), &c, algebra.Plus(dtypes.Float64), algebra.PlusMonoid(dtypes.Int32), a))
	assert.Equal(t, 10.5, c)

	// No accum: plain cast of the reduction into c.
	var ci int64
	require.NoError(t, ReduceScalar(ctxTest(), &ci, nil, algebra.PlusMonoid(dtypes.Int32), a))
	assert.Equal(t, int64(10), ci)
}

func TestReduceTypecastMatrix(t *testing.T) {
	// Uint8 matrix reduced through an Int64 monoid: per-element casts on the
	// generic path.
	e := New()
	a := fromDense(t, e, [][]uint8{{200, 100}, {55, 1}}, true)
	s, err := Reduce[int64](ctxTest(), algebra.PlusMonoid(dtypes.Int64), a)
	require.NoError(t, err)
	assert.Equal(t, int64(356), s)
}

func TestReduceUserMonoidGenericPath(t *testing.T) {
	e := New()
	f64 := dtypes.TypeFor(dtypes.Float64)
	op, err := algebra.NewBinaryOp("sumsq", f64, f64, f64, func(z, x, y []byte) {
		dtypes.PutValue(z, dtypes.GetValue[float64](x)+dtypes.GetValue[float64](y))
	})
	require.NoError(t, err)
	monoid, err := algebra.NewMonoid(op, 0.0, nil)
	require.NoError(t, err)

	a := fromDense(t, e, [][]float64{{1.5, 2.5}, {0, 4}}, true)
	s, err := Reduce[float64](ctxTest(), monoid, a)
	require.NoError(t, err)
	assert.Equal(t, 8.0, s)
}

func TestReduceDomainChecks(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]float64{{1, 2}}, true)
	var s float64
	require.ErrorIs(t, ReduceScalar(ctxTest(), nil, nil, algebra.PlusMonoid(dtypes.Float64), a), ErrNullPointer)
	require.ErrorIs(t, ReduceScalar(ctxTest(), s, nil, algebra.PlusMonoid(dtypes.Float64), a), ErrNullPointer)

	user := dtypes.NewUserType("blob", 4)
	ua, err := e.NewMatrix(user, 1, 1)
	require.NoError(t, err)
	require.ErrorIs(t, ReduceScalar(ctxTest(), &s, nil, algebra.PlusMonoid(dtypes.Float64), ua), ErrDomainMismatch)
}
