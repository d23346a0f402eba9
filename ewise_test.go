package graphblas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

func TestEWiseAddWithAccum(t *testing.T) {
	e := New()
	c := fromDense(t, e, [][]float64{{1, 0}, {0, 1}}, true)
	a := fromDense(t, e, [][]float64{{0, 2}, {3, 0}}, true)
	b := fromDense(t, e, [][]float64{{0, 0}, {0, 4}}, true)

	require.NoError(t, EWiseAdd(ctxTest(), c, nil, algebra.Plus(dtypes.Float64), algebra.Plus(dtypes.Float64), a, b, nil))
	assert.Equal(t, [][]float64{{1, 2}, {3, 5}}, toDense[float64](t, c))
}

func TestEWiseAddUnionSemantics(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int32{{1, 2, 0}}, true)
	b := fromDense(t, e, [][]int32{{0, 10, 20}}, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 1, 3)
	require.NoError(t, err)

	require.NoError(t, EWiseAdd(ctxTest(), c, nil, nil, algebra.Plus(dtypes.Int32), a, b, nil))
	assert.Equal(t, [][]int32{{1, 12, 20}}, toDense[int32](t, c))
	assert.Equal(t, 3, c.NVals())
}

func TestEWiseMultIntersection(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int32{{1, 2, 0}}, true)
	b := fromDense(t, e, [][]int32{{5, 10, 20}}, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 1, 3)
	require.NoError(t, err)

	require.NoError(t, EWiseMult(ctxTest(), c, nil, nil, algebra.Times(dtypes.Int32), a, b, nil))
	assert.Equal(t, [][]int32{{5, 20, 0}}, toDense[int32](t, c))
	assert.Equal(t, 2, c.NVals(), "intersection only")
}

func TestEWiseAddIdentityProperty(t *testing.T) {
	// ewise_add(A, empty) == A.
	e := New()
	dense := [][]float64{{1, 0, 2}, {0, 3, 0}}
	a := fromDense(t, e, dense, true)
	empty, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 2, 3)
	require.NoError(t, err)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 2, 3)
	require.NoError(t, err)

	require.NoError(t, EWiseAdd(ctxTest(), c, nil, nil, algebra.Plus(dtypes.Float64), a, empty, nil))
	assert.Equal(t, dense, toDense[float64](t, c))
}

func TestEWiseMasked(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int64{{1, 1}, {1, 1}}, true)
	b := fromDense(t, e, [][]int64{{1, 1}, {1, 1}}, true)
	mask := fromDense(t, e, [][]bool{{true, false}, {false, true}}, true)

	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int64), 2, 2)
	require.NoError(t, err)
	require.NoError(t, EWiseAdd(ctxTest(), c, mask, nil, algebra.Plus(dtypes.Int64), a, b, nil))
	assert.Equal(t, [][]int64{{2, 0}, {0, 2}}, toDense[int64](t, c))

	// The complemented mask admits only the off-diagonal positions.
	c2, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int64), 2, 2)
	require.NoError(t, err)
	require.NoError(t, EWiseAdd(ctxTest(), c2, mask, nil, algebra.Plus(dtypes.Int64), a, b, &Descriptor{MaskComplement: true}))
	assert.Equal(t, [][]int64{{0, 2}, {2, 0}}, toDense[int64](t, c2))
}

func TestEWiseMaskReplace(t *testing.T) {
	e := New()
	c := fromDense(t, e, [][]int32{{7, 7}, {7, 7}}, true)
	a := fromDense(t, e, [][]int32{{1, 1}, {1, 1}}, true)
	b := fromDense(t, e, [][]int32{{1, 1}, {1, 1}}, true)
	mask := fromDense(t, e, [][]bool{{true, false}, {false, true}}, true)

	// Without replace, rejected positions keep the old C.
	require.NoError(t, EWiseAdd(ctxTest(), c, mask, nil, algebra.Plus(dtypes.Int32), a, b, nil))
	assert.Equal(t, [][]int32{{2, 7}, {7, 2}}, toDense[int32](t, c))

	// With replace, rejected positions are cleared.
	c2 := fromDense(t, e, [][]int32{{7, 7}, {7, 7}}, true)
	require.NoError(t, EWiseAdd(ctxTest(), c2, mask, nil, algebra.Plus(dtypes.Int32), a, b, &Descriptor{Replace: true}))
	assert.Equal(t, [][]int32{{2, 0}, {0, 2}}, toDense[int32](t, c2))
}

func TestEWiseStructuralMask(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int32{{1, 1}, {1, 1}}, true)
	b := fromDense(t, e, [][]int32{{1, 1}, {1, 1}}, true)

	// A mask with explicit false entries: by value it rejects them, by
	// structure it admits them.
	mask, err := e.NewMatrix(dtypes.TypeFor(dtypes.Bool), 2, 2)
	require.NoError(t, err)
	require.NoError(t, mask.SetElement(0, 0, true))
	require.NoError(t, mask.SetElement(1, 1, false))
	require.NoError(t, mask.Wait())

	byValue, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 2, 2)
	require.NoError(t, err)
	require.NoError(t, EWiseAdd(ctxTest(), byValue, mask, nil, algebra.Plus(dtypes.Int32), a, b, nil))
	assert.Equal(t, [][]int32{{2, 0}, {0, 0}}, toDense[int32](t, byValue))

	byStructure, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int32), 2, 2)
	require.NoError(t, err)
	require.NoError(t, EWiseAdd(ctxTest(), byStructure, mask, nil, algebra.Plus(dtypes.Int32), a, b, &Descriptor{MaskStructure: true}))
	assert.Equal(t, [][]int32{{2, 0}, {0, 2}}, toDense[int32](t, byStructure))
}

func TestEWiseTypecastGeneric(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]int32{{1, 0}, {0, 2}}, true)
	b := fromDense(t, e, [][]float64{{0.5, 0}, {0, 0.25}}, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 2, 2)
	require.NoError(t, err)

	require.NoError(t, EWiseAdd(ctxTest(), c, nil, nil, algebra.Plus(dtypes.Float64), a, b, nil))
	assert.Equal(t, [][]float64{{1.5, 0}, {0, 2.25}}, toDense[float64](t, c))
}

func TestEWiseUserOpGeneric(t *testing.T) {
	e := New()
	i64 := dtypes.TypeFor(dtypes.Int64)
	op, err := algebra.NewBinaryOp("absdiff", i64, i64, i64, func(z, x, y []byte) {
		d := dtypes.GetValue[int64](x) - dtypes.GetValue[int64](y)
		if d < 0 {
			d = -d
		}
		dtypes.PutValue(z, d)
	})
	require.NoError(t, err)

	a := fromDense(t, e, [][]int64{{5, 3}}, true)
	b := fromDense(t, e, [][]int64{{8, 1}}, true)
	c, err := e.NewMatrix(i64, 1, 2)
	require.NoError(t, err)
	require.NoError(t, EWiseMult(ctxTest(), c, nil, nil, op, a, b, nil))
	assert.Equal(t, [][]int64{{3, 2}}, toDense[int64](t, c))
}

func TestEWiseAliasedOutput(t *testing.T) {
	// Element-wise ops may alias C with A.
	e := New()
	a := fromDense(t, e, [][]float64{{1, 2}, {3, 4}}, true)
	b := fromDense(t, e, [][]float64{{10, 0}, {0, 10}}, true)
	require.NoError(t, EWiseAdd(ctxTest(), a, nil, nil, algebra.Plus(dtypes.Float64), a, b, nil))
	assert.Equal(t, [][]float64{{11, 2}, {3, 14}}, toDense[float64](t, a))
}

func TestEWiseDimensionMismatch(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]float64{{1, 2}}, true)
	b := fromDense(t, e, [][]float64{{1}, {2}}, true)
	c, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 1, 2)
	require.NoError(t, err)
	require.ErrorIs(t, EWiseAdd(ctxTest(), c, nil, nil, algebra.Plus(dtypes.Float64), a, b, nil), ErrDimensionMismatch)
}
