package graphblas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

func TestApplyAInv(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int32{{1, 0}, {0, -2}}, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 2, 2)
	require.NoError(t, err)

	require.NoError(t, Apply(ctxTest(), c, nil, nil, algebra.AInv(dtypes.Int32), a, nil))
	assert.Equal(t, [][]int32{{-1, 0}, {0, 2}}, toDense[int32](t, c))
}

func TestApplyTypecastGeneric(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int32{{1, 0}, {0, 2}}, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 2, 2)
	require.NoError(t, err)

	// Identity over Float64 on an Int32 input: generic path with casts.
	require.NoError(t, Apply(ctxTest(), c, nil, nil, algebra.Identity(dtypes.Float64), a, nil))
	assert.Equal(t, [][]float64{{1, 0}, {0, 2}}, toDense[float64](t, c))
}

func TestApplyUserOp(t *testing.T) {
	e := New()
	f64 := dtypes.TypeFor(dtypes.Float64)
	op, err := algebra.NewUnaryOp("square", f64, f64, func(z, x []byte) {
		v := dtypes.GetValue[float64](x)
		dtypes.PutValue(z, v*v)
	})
	require.NoError(t, err)

	a := fromDense(t, e, [][]float64{{3, 0}, {0, 4}}, true)
	c, err := e.NewMatrix(f64, 2, 2)
	require.NoError(t, err)
	require.NoError(t, Apply(ctxTest(), c, nil, nil, op, a, nil))
	assert.Equal(t, [][]float64{{9, 0}, {0, 16}}, toDense[float64](t, c))
}

func TestApplyAliased(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]float64{{1, -2}, {-3, 4}}, true)
	require.NoError(t, Apply(ctxTest(), a, nil, nil, algebra.Abs(dtypes.Float64), a, nil))
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, toDense[float64](t, a))
}

func TestSelectTriu(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int32{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 3, 3)
	require.NoError(t, err)

	require.NoError(t, Select(ctxTest(), c, nil, nil, Selector{Kind: SelTriu}, a, 0, nil))
	assert.Equal(t, [][]int32{{1, 2, 3}, {0, 5, 6}, {0, 0, 9}}, toDense[int32](t, c))
	assert.Equal(t, 6, c.NVals())
}

func TestSelectTrilDiagOffdiag(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int32{{1, 2}, {3, 4}}, true)

	tril, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 2, 2)
	require.NoError(t, err)
	require.NoError(t, Select(ctxTest(), tril, nil, nil, Selector{Kind: SelTril}, a, 0, nil))
	assert.Equal(t, [][]int32{{1, 0}, {3, 4}}, toDense[int32](t, tril))

	diag, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 2, 2)
	require.NoError(t, err)
	require.NoError(t, Select(ctxTest(), diag, nil, nil, Selector{Kind: SelDiag}, a, 0, nil))
	assert.Equal(t, [][]int32{{1, 0}, {0, 4}}, toDense[int32](t, diag))

	offdiag, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 2, 2)
	require.NoError(t, err)
	require.NoError(t, Select(ctxTest(), offdiag, nil, nil, Selector{Kind: SelOffdiag}, a, 0, nil))
	assert.Equal(t, [][]int32{{0, 2}, {3, 0}}, toDense[int32](t, offdiag))
}

func TestSelectValuePredicates(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]float64{{-1, 2}, {3, -4}}, true)

	gt, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 2, 2)
	require.NoError(t, err)
	require.NoError(t, Select(ctxTest(), gt, nil, nil, Selector{Kind: SelGtThunk}, a, 0.0, nil))
	assert.Equal(t, [][]float64{{0, 2}, {3, 0}}, toDense[float64](t, gt))

	le, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 2, 2)
	require.NoError(t, err)
	require.NoError(t, Select(ctxTest(), le, nil, nil, Selector{Kind: SelLeThunk}, a, -1.0, nil))
	assert.Equal(t, [][]float64{{-1, 0}, {0, -4}}, toDense[float64](t, le))

	// A comparison selector without thunk is rejected.
	bad, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, Select(ctxTest(), bad, nil, nil, Selector{Kind: SelGtThunk}, a, nil, nil), ErrNullPointer)
}

func TestSelectNonzeroKeepsExplicitStructure(t *testing.T) {
	e := New()
	a, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 1, 3)
	require.NoError(t, err)
	require.NoError(t, a.SetElement(0, 0, int32(0))) // explicit zero
	require.NoError(t, a.SetElement(0, 1, int32(5)))
	require.NoError(t, a.Wait())
	require.Equal(t, 2, a.NVals())

	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 1, 3)
	require.NoError(t, err)
	require.NoError(t, Select(ctxTest(), c, nil, nil, Selector{Kind: SelNonzero}, a, nil, nil))
	assert.Equal(t, 1, c.NVals(), "explicit zero is dropped")
}

func TestSelectUserPredicate(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int64{{1, 2, 3}, {4, 5, 6}}, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int64), 2, 3)
	require.NoError(t, err)
	sel := Selector{Kind: SelUser, Predicate: func(i, j int, x []byte) bool {
		return (i+j)%2 == 0 && dtypes.GetValue[int64](x) > 1
	}}
	require.NoError(t, Select(ctxTest(), c, nil, nil, sel, a, nil, nil))
	assert.Equal(t, [][]int64{{0, 0, 3}, {0, 5, 0}}, toDense[int64](t, c))
}

func TestTransposeInvolution(t *testing.T) {
	e := New()
	dense := [][]float64{{1, 2, 0}, {0, 3, 4}}
	a := fromDense(t, e, dense, true)

	at, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 3, 2)
	require.NoError(t, err)
	require.NoError(t, Transpose(ctxTest(), at, nil, nil, a, nil))
	assert.Equal(t, [][]float64{{1, 0}, {2, 3}, {0, 4}}, toDense[float64](t, at))

	att, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 2, 3)
	require.NoError(t, err)
	require.NoError(t, Transpose(ctxTest(), att, nil, nil, at, nil))
	assert.Equal(t, dense, toDense[float64](t, att))
	checkInvariants(t, att)
}

func TestTransposeWithTran0IsCopy(t *testing.T) {
	e := New()
	dense := [][]int32{{1, 0}, {2, 3}}
	a := fromDense(t, e, dense, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 2, 2)
	require.NoError(t, err)
	require.NoError(t, Transpose(ctxTest(), c, nil, nil, a, &Descriptor{Tran0: true}))
	assert.Equal(t, dense, toDense[int32](t, c))
}

func TestTransposeMasked(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int32{{1, 2}, {3, 4}}, true)
	mask := fromDense(t, e, [][]bool{{true, false}, {false, true}}, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 2, 2)
	require.NoError(t, err)
	require.NoError(t, Transpose(ctxTest(), c, mask, nil, a, nil))
	assert.Equal(t, [][]int32{{1, 0}, {0, 4}}, toDense[int32](t, c))
}
