package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

func applyBinary[T dtypes.Supported](t *testing.T, op *BinaryOp, x, y T) T {
	t.Helper()
	z := make([]byte, op.Z.ByteSize)
	xb, err := dtypes.ScalarBytes(op.X, x)
	require.NoError(t, err)
	yb, err := dtypes.ScalarBytes(op.Y, y)
	require.NoError(t, err)
	op.Fn(z, xb, yb)
	return dtypes.GetValue[T](z)
}

func TestBuiltinBinaryOps(t *testing.T) {
	assert.Equal(t, int32(7), applyBinary[int32](t, Plus(dtypes.Int32), 3, 4))
	assert.Equal(t, float64(12), applyBinary[float64](t, Times(dtypes.Float64), 3, 4))
	assert.Equal(t, int8(-1), applyBinary[int8](t, Minus(dtypes.Int8), 3, 4))
	assert.Equal(t, uint16(3), applyBinary[uint16](t, Min(dtypes.Uint16), 3, 4))
	assert.Equal(t, uint16(4), applyBinary[uint16](t, Max(dtypes.Uint16), 3, 4))
	assert.Equal(t, int64(3), applyBinary[int64](t, First(dtypes.Int64), 3, 4))
	assert.Equal(t, int64(4), applyBinary[int64](t, Second(dtypes.Int64), 3, 4))

	// Integer division by zero yields zero.
	assert.Equal(t, int32(0), applyBinary[int32](t, Div(dtypes.Int32), 3, 0))
	assert.Equal(t, int32(2), applyBinary[int32](t, Div(dtypes.Int32), 7, 3))
}

func TestComparatorsProduceBool(t *testing.T) {
	lt := Binary(OpcodeLt, dtypes.Float32)
	require.NotNil(t, lt)
	assert.Equal(t, dtypes.Bool, lt.Z.Code)
	z := make([]byte, 1)
	xb, _ := dtypes.ScalarBytes(lt.X, float32(1))
	yb, _ := dtypes.ScalarBytes(lt.Y, float32(2))
	lt.Fn(z, xb, yb)
	assert.True(t, dtypes.GetValue[bool](z))
}

func TestMonoids(t *testing.T) {
	plus := PlusMonoid(dtypes.Int32)
	assert.Equal(t, int32(0), dtypes.GetValue[int32](plus.Identity))
	assert.Nil(t, plus.Terminal)

	minM := MinMonoid(dtypes.Float64)
	require.NotNil(t, minM.Terminal)
	assert.True(t, minM.IsTerminal(minM.Terminal))
	assert.False(t, minM.IsTerminal(minM.Identity))

	maxU8 := MaxMonoid(dtypes.Uint8)
	require.NotNil(t, maxU8.Terminal)
	assert.Equal(t, uint8(255), dtypes.GetValue[uint8](maxU8.Terminal))

	timesInt := TimesMonoid(dtypes.Int16)
	require.NotNil(t, timesInt.Terminal)
	assert.Equal(t, int16(0), dtypes.GetValue[int16](timesInt.Terminal))
	timesFP := TimesMonoid(dtypes.Float32)
	assert.Nil(t, timesFP.Terminal)

	lor := LOrMonoid()
	assert.Equal(t, false, dtypes.GetValue[bool](lor.Identity))
	assert.Equal(t, true, dtypes.GetValue[bool](lor.Terminal))
}

func TestMonoidValidation(t *testing.T) {
	// A comparator (z is Bool, operands are not) cannot form a monoid.
	_, err := NewMonoid(Binary(OpcodeLt, dtypes.Int32), int32(0), nil)
	require.Error(t, err)
}

func TestSemirings(t *testing.T) {
	s := PlusTimes(dtypes.Float64)
	assert.Equal(t, OpcodePlus, s.Add.Op.Opcode)
	assert.Equal(t, OpcodeTimes, s.Mul.Opcode)

	tropical := MinPlus(dtypes.Int32)
	assert.Equal(t, OpcodeMin, tropical.Add.Op.Opcode)
	assert.Equal(t, int32(2), applyBinary[int32](t, tropical.Mul, 1, 1))

	// Mismatched types are rejected.
	_, err := NewSemiring("bad", PlusMonoid(dtypes.Int32), Times(dtypes.Float64))
	require.Error(t, err)
}

func TestUserDefinedOpsForceGenericPath(t *testing.T) {
	f64 := dtypes.TypeFor(dtypes.Float64)
	op, err := NewBinaryOp("hypot2", f64, f64, f64, func(z, x, y []byte) {
		a := dtypes.GetValue[float64](x)
		b := dtypes.GetValue[float64](y)
		dtypes.PutValue(z, a*a+b*b)
	})
	require.NoError(t, err)
	assert.Equal(t, OpcodeUserDefined, op.Opcode)
	assert.False(t, op.IsBuiltin())
	assert.True(t, Plus(dtypes.Float64).IsBuiltin())
}
