package graphblas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosparse/graphblas/pkg/core/algebra"
	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// fromDense builds a matrix from a dense Go slice-of-rows, skipping zero
// values, and finalizes it.
func fromDense[T dtypes.Supported](t *testing.T, e *Engine, rows [][]T, byCol bool) *Matrix {
	t.Helper()
	require.NotEmpty(t, rows)
	var zero T
	var m *Matrix
	var err error
	if byCol {
		m, err = e.NewMatrix(dtypes.TypeOf[T](), len(rows), len(rows[0]))
	} else {
		m, err = e.NewMatrixByRow(dtypes.TypeOf[T](), len(rows), len(rows[0]))
	}
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			if v == zero {
				continue
			}
			require.NoError(t, m.SetElement(i, j, v))
		}
	}
	require.NoError(t, m.Wait())
	return m
}

// toDense extracts a matrix into a dense Go slice-of-rows (absent entries
// are zero).
func toDense[T dtypes.Supported](t *testing.T, m *Matrix) [][]T {
	t.Helper()
	dense := make([][]T, m.NRows())
	for i := range dense {
		dense[i] = make([]T, m.NCols())
	}
	rows, cols, vals, err := ExtractTuples[T](m)
	require.NoError(t, err)
	for n := range rows {
		dense[rows[n]][cols[n]] = vals[n]
	}
	return dense
}

func ctxTest() context.Context { return context.Background() }

func TestEngineCostModel(t *testing.T) {
	e := New()
	e.SetMaxParallelism(8)
	require.Equal(t, 1, e.nthreadsFor(100, nil))
	require.Equal(t, 3, e.nthreadsFor(3*defaultChunk, nil))
	require.Equal(t, 8, e.nthreadsFor(1<<30, nil))
	require.Equal(t, 2, e.nthreadsFor(1<<30, &Descriptor{NThreads: 2}))

	require.Equal(t, 1, ntasksFor(1, 1000))
	require.Equal(t, 100, ntasksFor(4, 100))
	require.Equal(t, 256, ntasksFor(4, 1<<20))
}

func TestPartitionRange(t *testing.T) {
	n, ntasks := 10, 4
	covered := 0
	prevEnd := 0
	for task := 0; task < ntasks; task++ {
		start, end := partitionRange(n, ntasks, task)
		require.Equal(t, prevEnd, start)
		require.LessOrEqual(t, start, end)
		covered += end - start
		prevEnd = end
	}
	require.Equal(t, n, covered)
}

func TestCancelledContextLeavesOutputUntouched(t *testing.T) {
	e := New()
	a := fromDense(t, e, [][]float64{{1, 2}, {3, 4}}, true)
	b := fromDense(t, e, [][]float64{{1, 0}, {0, 1}}, true)
	c := fromDense(t, e, [][]float64{{9, 9}, {9, 9}}, true)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	err := MxM(cancelled, c, nil, nil, algebra.PlusTimes(dtypes.Float64), a, b, nil)
	require.ErrorIs(t, err, ErrCancelled)
	require.Equal(t, [][]float64{{9, 9}, {9, 9}}, toDense[float64](t, c))
}
