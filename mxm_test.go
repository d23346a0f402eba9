package graphblas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

func TestMxMPlusTimesFP64(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]float64{{1, 2}, {0, 3}}, true)
	b := fromDense(t, e, [][]float64{{4, 0}, {0, 5}}, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 2, 2)
	require.NoError(t, err)

	require.NoError(t, MxM(ctxTest(), c, nil, nil, algebra.PlusTimes(dtypes.Float64), a, b, nil))
	assert.Equal(t, [][]float64{{4, 10}, {0, 15}}, toDense[float64](t, c))
}

func TestMxMMaskedMinPlusInt32(t *testing.T) {
	e := New()
	// Sparse matrices over the tropical semiring: absent means +inf.
	a, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 2, 2)
	require.NoError(t, err)
	require.NoError(t, a.SetElement(0, 0, int32(1)))
	require.NoError(t, a.SetElement(1, 0, int32(2)))
	require.NoError(t, a.SetElement(1, 1, int32(0)))

	b, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 2, 2)
	require.NoError(t, err)
	require.NoError(t, b.SetElement(0, 0, int32(0)))
	require.NoError(t, b.SetElement(0, 1, int32(3)))
	require.NoError(t, b.SetElement(1, 1, int32(1)))

	mask := fromDense(t, e, [][]bool{{true, false}, {false, true}}, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 2, 2)
	require.NoError(t, err)

	require.NoError(t, MxM(ctxTest(), c, mask, nil, algebra.MinPlus(dtypes.Int32), a, b, nil))

	rows, cols, vals, err := ExtractTuples[int32](c)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, rows)
	assert.Equal(t, []int{0, 1}, cols)
	assert.Equal(t, []int32{1, 1}, vals)
}

func TestMxMMethodsAgree(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int64{
		{1, 0, 2, 0},
		{0, 3, 0, 0},
		{4, 0, 0, 5},
		{0, 6, 7, 0},
	}, true)
	b := fromDense(t, e, [][]int64{
		{0, 1, 0, 0},
		{2, 0, 0, 3},
		{0, 0, 4, 0},
		{5, 0, 6, 0},
	}, true)
	semiring := algebra.PlusTimes(dtypes.Int64)

	results := make([][][]int64, 0, 3)
	for _, method := range []AxBMethod{AxBGustavson, AxBDot, AxBHeap} {
		c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int64), 4, 4)
		require.NoError(t, err)
		require.NoError(t, MxM(ctxTest(), c, nil, nil, semiring, a, b, &Descriptor{Method: method}))
		results = append(results, toDense[int64](t, c))
	}
	assert.Equal(t, results[0], results[1], "gustavson vs dot")
	assert.Equal(t, results[0], results[2], "gustavson vs heap")

	want := [][]int64{
		{0, 1, 8, 0},
		{6, 0, 0, 9},
		{25, 4, 30, 0},
		{12, 0, 28, 18},
	}
	assert.Equal(t, want, results[0])
}

func TestMxMMaskEquivalence(t *testing.T) {
	// No mask and an all-true mask must agree.
	e := New()
	a := fromDense(t, e, [][]float64{{1, 2, 0}, {0, 1, 1}, {3, 0, 1}}, true)
	b := fromDense(t, e, [][]float64{{0, 1, 1}, {1, 0, 2}, {2, 2, 0}}, true)
	semiring := algebra.PlusTimes(dtypes.Float64)

	noMask, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 3, 3)
	require.NoError(t, err)
	require.NoError(t, MxM(ctxTest(), noMask, nil, nil, semiring, a, b, nil))

	ones := fromDense(t, e, [][]bool{
		{true, true, true}, {true, true, true}, {true, true, true},
	}, true)
	allTrue, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 3, 3)
	require.NoError(t, err)
	require.NoError(t, MxM(ctxTest(), allTrue, ones, nil, semiring, a, b, nil))

	assert.Equal(t, toDense[float64](t, noMask), toDense[float64](t, allTrue))
}

func TestMxMComplementMask(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int32{{1, 1}, {1, 1}}, true)
	b := fromDense(t, e, [][]int32{{1, 1}, {1, 1}}, true)
	mask := fromDense(t, e, [][]bool{{true, false}, {false, true}}, true)
	semiring := algebra.PlusTimes(dtypes.Int32)

	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 2, 2)
	require.NoError(t, err)
	require.NoError(t, MxM(ctxTest(), c, mask, nil, semiring, a, b, &Descriptor{MaskComplement: true}))
	assert.Equal(t, [][]int32{{0, 2}, {2, 0}}, toDense[int32](t, c))
}

func TestMxMByRowOutput(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]float64{{1, 2}, {0, 3}}, false)
	b := fromDense(t, e, [][]float64{{4, 0}, {0, 5}}, false)
	c, err := e.NewMatrixByRow(dtypes.TypeFor(dtypes.Float64), 2, 2)
	require.NoError(t, err)

	require.NoError(t, MxM(ctxTest(), c, nil, nil, algebra.PlusTimes(dtypes.Float64), a, b, nil))
	assert.False(t, c.ByCol())
	assert.Equal(t, [][]float64{{4, 10}, {0, 15}}, toDense[float64](t, c))
}

func TestMxMOrientationEquivalence(t *testing.T) {
	e := New()
	dense := [][]float64{{1, 0, 2}, {0, 3, 0}, {4, 0, 5}}
	id := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	semiring := algebra.PlusTimes(dtypes.Float64)

	aCSC := fromDense(t, e, dense, true)
	aCSR := fromDense(t, e, dense, false)
	bCSC := fromDense(t, e, id, true)

	c1, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 3, 3)
	require.NoError(t, err)
	require.NoError(t, MxM(ctxTest(), c1, nil, nil, semiring, aCSC, bCSC, nil))
	c2, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 3, 3)
	require.NoError(t, err)
	require.NoError(t, MxM(ctxTest(), c2, nil, nil, semiring, aCSR, bCSC, nil))

	assert.Equal(t, dense, toDense[float64](t, c1))
	assert.Equal(t, dense, toDense[float64](t, c2))
}

func TestMxMTransposedInputs(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]float64{{1, 2}, {3, 4}}, true)
	b := fromDense(t, e, [][]float64{{1, 0}, {0, 1}}, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 2, 2)
	require.NoError(t, err)

	// C = A' * B.
	require.NoError(t, MxM(ctxTest(), c, nil, nil, algebra.PlusTimes(dtypes.Float64), a, b, &Descriptor{Tran0: true}))
	assert.Equal(t, [][]float64{{1, 3}, {2, 4}}, toDense[float64](t, c))
}

func TestMxMGenericUserSemiring(t *testing.T) {
	e := New()
	f64 := dtypes.TypeFor(dtypes.Float64)
	// The plus monoid with a user-defined multiply forces the generic worker.
	mulOp, err := algebra.NewBinaryOp("plus2", f64, f64, f64, func(z, x, y []byte) {
		dtypes.PutValue(z, dtypes.GetValue[float64](x)+dtypes.GetValue[float64](y)+2)
	})
	require.NoError(t, err)
	monoid := algebra.PlusMonoid(dtypes.Float64)
	semiring, err := algebra.NewSemiring("plus_plus2", monoid, mulOp)
	require.NoError(t, err)

	a := fromDense(t, e, [][]float64{{1, 0}, {0, 1}}, true)
	b := fromDense(t, e, [][]float64{{5, 0}, {0, 7}}, true)
	c, err := e.NewMatrix(f64, 2, 2)
	require.NoError(t, err)
	require.NoError(t, MxM(ctxTest(), c, nil, nil, semiring, a, b, nil))
	assert.Equal(t, [][]float64{{8, 0}, {0, 10}}, toDense[float64](t, c))
}

func TestMxMTypecastGoesGeneric(t *testing.T) {
	e := New()
	// Int32 inputs over a Float64 semiring: typecasting forces the generic
	// worker; results are the cast products.
	a := fromDense(t, e, [][]int32{{2, 0}, {0, 3}}, true)
	b := fromDense(t, e, [][]int32{{4, 0}, {0, 5}}, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 2, 2)
	require.NoError(t, err)
	require.NoError(t, MxM(ctxTest(), c, nil, nil, algebra.PlusTimes(dtypes.Float64), a, b, nil))
	assert.Equal(t, [][]float64{{8, 0}, {0, 15}}, toDense[float64](t, c))
}

func TestMxMDimensionAndAliasChecks(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]float64{{1, 2}}, true) // 1x2
	b := fromDense(t, e, [][]float64{{1, 2}}, true) // 1x2
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 1, 2)
	require.NoError(t, err)
	err = MxM(ctxTest(), c, nil, nil, algebra.PlusTimes(dtypes.Float64), a, b, nil)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	err = MxM(ctxTest(), a, nil, nil, algebra.PlusTimes(dtypes.Float64), a, b, nil)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestMxMAccum(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]float64{{1, 0}, {0, 1}}, true)
	b := fromDense(t, e, [][]float64{{2, 0}, {0, 3}}, true)
	c := fromDense(t, e, [][]float64{{10, 0}, {0, 10}}, true)

	require.NoError(t, MxM(ctxTest(), c, nil, algebra.Plus(dtypes.Float64), algebra.PlusTimes(dtypes.Float64), a, b, nil))
	assert.Equal(t, [][]float64{{12, 0}, {0, 13}}, toDense[float64](t, c))
}
