package graphblas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// checkInvariants asserts the §storage invariants of a finalized matrix.
func checkInvariants(t *testing.T, m *Matrix) {
	t.Helper()
	require.NoError(t, m.checkValid())
	require.True(t, m.isClean())
	for k := 0; k < m.nvec; k++ {
		for pos := m.p[k] + 1; pos < m.p[k+1]; pos++ {
			require.Greater(t, m.i[pos], m.i[pos-1], "inner indices must be strictly sorted")
		}
	}
	if m.hyper {
		for k := 1; k < m.nvec; k++ {
			require.Greater(t, m.h[k], m.h[k-1], "h must be strictly sorted")
		}
	}
}

func TestWaitMergesPendingSorted(t *testing.T) {
	e := New()
	m, err := e.NewMatrix(dtypes.TypeFor(dtypes.Int64), 5, 5)
	require.NoError(t, err)

	// Insert in scrambled order.
	coords := [][2]int{{4, 4}, {0, 0}, {2, 3}, {1, 3}, {3, 0}, {0, 4}}
	for n, c := range coords {
		require.NoError(t, m.SetElement(c[0], c[1], int64(n+1)))
	}
	require.NoError(t, m.Wait())
	checkInvariants(t, m)
	assert.Equal(t, len(coords), m.NVals())

	want := [][]int64{
		{2, 0, 0, 0, 6},
		{0, 0, 0, 4, 0},
		{0, 0, 0, 3, 0},
		{5, 0, 0, 0, 0},
		{0, 0, 0, 0, 1},
	}
	assert.Equal(t, want, toDense[int64](t, m))
}

func TestWaitIdempotent(t *testing.T) {
	e := New()
	m := fromDense(t, e, [][]float32{{1, 2, 0}, {0, 3, 4}, {5, 0, 6}}, true)
	before, err := m.Serialize()
	require.NoError(t, err)
	require.NoError(t, m.Wait())
	require.NoError(t, m.Wait())
	after, err := m.Serialize()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	checkInvariants(t, m)
}

func TestWaitMixedPendingAndZombies(t *testing.T) {
	e := New()
	m := fromDense(t, e, [][]int32{{1, 2}, {3, 4}}, true)
	require.NoError(t, m.RemoveElement(1, 0))
	require.NoError(t, m.SetElement(0, 0, int32(9))) // overwrites
	require.NoError(t, m.SetElement(1, 1, int32(8))) // overwrites
	require.NoError(t, m.Wait())
	checkInvariants(t, m)
	assert.Equal(t, [][]int32{{9, 2}, {0, 8}}, toDense[int32](t, m))
}

func TestHypersparseSwitch(t *testing.T) {
	e := New()
	// 1 non-empty column out of 100: becomes hypersparse.
	m, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 100, 100)
	require.NoError(t, err)
	require.NoError(t, m.SetElement(3, 7, 1.5))
	require.NoError(t, m.Wait())
	checkInvariants(t, m)
	assert.True(t, m.Hyper())
	assert.Equal(t, 1, m.nvec)

	// Filling most columns flips it back to regular storage.
	for j := 0; j < 100; j++ {
		require.NoError(t, m.SetElement(0, j, float64(j)))
	}
	require.NoError(t, m.Wait())
	checkInvariants(t, m)
	assert.False(t, m.Hyper())
	assert.Equal(t, 100, m.nvec)

	v, found, err := m.ExtractElement(3, 7)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1.5, v)
}

func TestHypersparseEquivalence(t *testing.T) {
	// A hypersparse matrix reads back exactly the entries of its dense form.
	e := New()
	dense := make([][]float64, 50)
	for i := range dense {
		dense[i] = make([]float64, 50)
	}
	dense[7][3] = 2.5
	dense[12][3] = -1

	hyperM, err := e.NewMatrix(dtypes.TypeFor(dtypes.Float64), 50, 50)
	require.NoError(t, err)
	require.NoError(t, hyperM.SetElement(7, 3, 2.5))
	require.NoError(t, hyperM.SetElement(12, 3, -1.0))
	require.NoError(t, hyperM.Wait())
	require.True(t, hyperM.Hyper())

	assert.Equal(t, dense, toDense[float64](t, hyperM))
	v, found, err := hyperM.ExtractElement(12, 3)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, -1.0, v)
}
