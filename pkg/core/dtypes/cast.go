package dtypes

import "unsafe"

// CastFn copies one value from src to dst, converting between two built-in
// dtypes. dst and src are the raw bytes of a single value each.
type CastFn func(dst, src []byte)

// castTable holds the typecast function for every (to, from) pair of built-in
// dtypes. It is filled by the registrations in gen_casts.go.
var castTable [NumBuiltin][NumBuiltin]CastFn

// registerCast sets the cast function for the (to, from) pair.
func registerCast(to, from DType, fn CastFn) {
	castTable[to][from] = fn
}

// CastFunc returns the function that converts a single value of dtype "from"
// into a value of dtype "to". For identical dtypes it returns a plain copy.
// It panics if either dtype is not built-in: user-defined types are never
// typecast, only copied, and callers must check compatibility beforehand.
func CastFunc(to, from DType) CastFn {
	if !to.IsBuiltin() || !from.IsBuiltin() {
		panicf("CastFunc(%s, %s): both dtypes must be built-in", to, from)
	}
	fn := castTable[to][from]
	if fn == nil {
		panicf("CastFunc(%s, %s): no cast registered", to, from)
	}
	return fn
}

// CopyFn returns a CastFn that moves one value of the given byte size with no
// conversion.
func CopyFn(byteSize int) CastFn {
	return func(dst, src []byte) {
		copy(dst[:byteSize], src[:byteSize])
	}
}

// value reinterprets the first bytes of b as a value of type T.
func value[T Supported](b []byte) *T {
	return (*T)(unsafe.Pointer(&b[0]))
}

// ptrOf returns the address of the first byte of b.
func ptrOf(b []byte) unsafe.Pointer { return unsafe.Pointer(&b[0]) }

// castNumberGeneric implements the numeric C-style conversion between two
// native number types.
func castNumberGeneric[To, From Number](dst, src []byte) {
	*value[To](dst) = To(*value[From](src))
}

// castToBoolGeneric converts a number to bool: non-zero is true.
func castToBoolGeneric[From Number](dst, src []byte) {
	*value[bool](dst) = *value[From](src) != 0
}

// castFromBoolGeneric converts a bool to a number: true is 1, false is 0.
func castFromBoolGeneric[To Number](dst, src []byte) {
	if *value[bool](src) {
		*value[To](dst) = 1
	} else {
		*value[To](dst) = 0
	}
}

func castBoolToBool(dst, src []byte) {
	dst[0] = src[0]
}

// PutValue stores a native Go value into the raw byte buffer b.
func PutValue[T Supported](b []byte, v T) {
	*value[T](b) = v
}

// GetValue reads a native Go value from the raw byte buffer b.
func GetValue[T Supported](b []byte) T {
	return *value[T](b)
}
