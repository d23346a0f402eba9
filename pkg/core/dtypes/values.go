package dtypes

import (
	"math"
	"reflect"

	"github.com/pkg/errors"
)

// LowestValue for dtype converted to the corresponding Go type.
// For float values it returns negative infinity.
func (dtype DType) LowestValue() any {
	switch dtype {
	case Bool:
		return false
	case Int8:
		return int8(math.MinInt8)
	case Int16:
		return int16(math.MinInt16)
	case Int32:
		return int32(math.MinInt32)
	case Int64:
		return int64(math.MinInt64)
	case Uint8:
		return uint8(0)
	case Uint16:
		return uint16(0)
	case Uint32:
		return uint32(0)
	case Uint64:
		return uint64(0)
	case Float32:
		return float32(math.Inf(-1))
	case Float64:
		return math.Inf(-1)
	default:
		panicf("dtype %q has no lowest value", dtype)
		panic(nil)
	}
}

// HighestValue for dtype converted to the corresponding Go type.
// For float values it returns positive infinity.
func (dtype DType) HighestValue() any {
	switch dtype {
	case Bool:
		return true
	case Int8:
		return int8(math.MaxInt8)
	case Int16:
		return int16(math.MaxInt16)
	case Int32:
		return int32(math.MaxInt32)
	case Int64:
		return int64(math.MaxInt64)
	case Uint8:
		return uint8(math.MaxUint8)
	case Uint16:
		return uint16(math.MaxUint16)
	case Uint32:
		return uint32(math.MaxUint32)
	case Uint64:
		return uint64(math.MaxUint64)
	case Float32:
		return float32(math.Inf(1))
	case Float64:
		return math.Inf(1)
	default:
		panicf("dtype %q has no highest value", dtype)
		panic(nil)
	}
}

// ScalarBytes converts a Go scalar value to the raw bytes of one value of
// type t, typecasting between built-in dtypes if needed.
//
// For user-defined types, v must already be a []byte of exactly t.ByteSize
// bytes -- the engine cannot convert into an opaque type.
func ScalarBytes(t *Type, v any) ([]byte, error) {
	out := make([]byte, t.ByteSize)
	if t.Code == UserDefined {
		raw, ok := v.([]byte)
		if !ok || len(raw) != t.ByteSize {
			return nil, errors.Errorf("value for user-defined type %q must be a []byte of %d bytes, got %T",
				t.Name, t.ByteSize, v)
		}
		copy(out, raw)
		return out, nil
	}
	from := FromAny(v)
	if from == InvalidDType {
		return nil, errors.Errorf("cannot use a value of type %T with dtype %s", v, t.Code)
	}
	src := make([]byte, from.Size())
	reflect.NewAt(from.GoType(), ptrOf(src)).Elem().Set(reflect.ValueOf(v).Convert(from.GoType()))
	CastFunc(t.Code, from)(out, src)
	return out, nil
}

// ScalarAny converts the raw bytes of one value of a built-in type into the
// matching native Go value (boxed).
func ScalarAny(t *Type, raw []byte) any {
	if !t.IsBuiltin() {
		b := make([]byte, t.ByteSize)
		copy(b, raw)
		return b
	}
	return reflect.NewAt(t.Code.GoType(), ptrOf(raw)).Elem().Interface()
}
