// Package dtypes defines the DType enum of value types the engine knows how
// to store and compute on, and the Type descriptor that pairs a DType with a
// byte size (needed for user-defined types).
//
// The numeric values of the DType constants are wire constants: they appear
// in serialized matrices and in the kernel dispatch tables, so they must
// never be renumbered.
//
// It also includes converters to/from Go native types (and reflect.Type), and
// constraint interfaces to be used with generics (Supported, Number, Integer, Float).
package dtypes

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// panicf panics with the formatted description.
//
// It is only used for "bugs in the code" -- when parameters don't follow the
// specifications. In principle, it should never happen -- the same way
// nil-pointer panics should never happen.
func panicf(format string, args ...any) {
	panic(errors.Errorf(format, args...))
}

// DType is an enum of the value types supported by the engine.
//
// The constant values are stable wire/build constants shared with the
// serialization format and the generated kernel tables.
type DType int32

const (
	// Bool holds a two-state boolean.
	Bool DType = 0

	// Int8 .. Int64 are signed integral values of fixed width.
	Int8  DType = 1
	Uint8 DType = 2

	Int16  DType = 3
	Uint16 DType = 4

	Int32  DType = 5
	Uint32 DType = 6

	Int64  DType = 7
	Uint64 DType = 8

	// Float32 and Float64 are IEEE-754 floating-point values.
	Float32 DType = 9
	Float64 DType = 10

	// UserDefined marks an opaque user type: the engine only knows its byte
	// size and moves values with copy semantics. Kernels always take the
	// generic path for it.
	UserDefined DType = 11

	// InvalidDType serves as a default for uninitialized values.
	InvalidDType DType = -1
)

// NumBuiltin is the number of built-in (non-user-defined) dtypes.
// Dispatch tables are sized with it.
const NumBuiltin = 11

// MapOfNames to their dtypes. It includes aliases to the various dtypes.
var MapOfNames = map[string]DType{
	"Bool":        Bool,
	"Int8":        Int8,
	"Int16":       Int16,
	"Int32":       Int32,
	"Int64":       Int64,
	"Uint8":       Uint8,
	"Uint16":      Uint16,
	"Uint32":      Uint32,
	"Uint64":      Uint64,
	"Float32":     Float32,
	"Float64":     Float64,
	"UserDefined": UserDefined,

	// Aliases following the GraphBLAS naming.
	"FP32": Float32,
	"FP64": Float64,
	"UDT":  UserDefined,
}

var namesOfDTypes = [NumBuiltin + 1]string{
	"Bool", "Int8", "Uint8", "Int16", "Uint16", "Int32", "Uint32",
	"Int64", "Uint64", "Float32", "Float64", "UserDefined",
}

func init() {
	// Add a mapping of the lower-case version of the names.
	for name, dtype := range MapOfNames {
		lowerName := strings.ToLower(name)
		if _, found := MapOfNames[lowerName]; !found {
			MapOfNames[lowerName] = dtype
		}
	}
}

// String implements fmt.Stringer.
func (dtype DType) String() string {
	if dtype < 0 || int(dtype) >= len(namesOfDTypes) {
		return "InvalidDType"
	}
	return namesOfDTypes[dtype]
}

// FromName returns the DType with the given name (or alias), or InvalidDType
// if it is not known.
func FromName(name string) DType {
	dtype, found := MapOfNames[name]
	if !found {
		return InvalidDType
	}
	return dtype
}

// FromGenericsType returns the DType enum for the given native Go type.
func FromGenericsType[T Supported]() DType {
	var t T
	switch (any(t)).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	}
	return InvalidDType
}

// FromGoType returns the DType for the given "reflect.Type", or InvalidDType
// if the type is not supported.
func FromGoType(t reflect.Type) DType {
	switch t.Kind() {
	case reflect.Bool:
		return Bool
	case reflect.Int:
		// Go's int is not portable; it maps to the platform word size.
		switch strconv.IntSize {
		case 32:
			return Int32
		case 64:
			return Int64
		default:
			panicf("cannot use int of %d bits -- use a sized integer type", strconv.IntSize)
		}
		return InvalidDType
	case reflect.Uint:
		switch strconv.IntSize {
		case 32:
			return Uint32
		case 64:
			return Uint64
		default:
			panicf("cannot use uint of %d bits -- use a sized integer type", strconv.IntSize)
		}
		return InvalidDType
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64:
		return Uint64
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	default:
		return InvalidDType
	}
}

// FromAny introspects the underlying type of any and returns the
// corresponding DType. Non-scalar or unsupported types return InvalidDType.
func FromAny(value any) DType {
	return FromGoType(reflect.TypeOf(value))
}

// Size returns the number of bytes for the given DType.
// It panics for UserDefined (whose size lives in the Type descriptor) and
// invalid dtypes.
func (dtype DType) Size() int {
	switch dtype {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		panicf("dtype %q (%d) has no fixed size", dtype, dtype)
		panic(nil)
	}
}

// GoType returns the Go `reflect.Type` corresponding to the DType.
// It panics for UserDefined and invalid dtypes.
func (dtype DType) GoType() reflect.Type {
	switch dtype {
	case Bool:
		return reflect.TypeOf(true)
	case Int8:
		return reflect.TypeOf(int8(0))
	case Int16:
		return reflect.TypeOf(int16(0))
	case Int32:
		return reflect.TypeOf(int32(0))
	case Int64:
		return reflect.TypeOf(int64(0))
	case Uint8:
		return reflect.TypeOf(uint8(0))
	case Uint16:
		return reflect.TypeOf(uint16(0))
	case Uint32:
		return reflect.TypeOf(uint32(0))
	case Uint64:
		return reflect.TypeOf(uint64(0))
	case Float32:
		return reflect.TypeOf(float32(0))
	case Float64:
		return reflect.TypeOf(float64(0))
	default:
		panicf("dtype %q (%d) has no Go type", dtype, dtype)
		panic(nil)
	}
}

// IsBuiltin returns whether dtype is one of the built-in value types, for
// which specialized kernels may exist.
func (dtype DType) IsBuiltin() bool {
	return dtype >= Bool && dtype < UserDefined
}

// IsFloat returns whether dtype is a floating-point type.
func (dtype DType) IsFloat() bool {
	return dtype == Float32 || dtype == Float64
}

// IsInt returns whether dtype is a fixed-width integer type, signed or not.
func (dtype DType) IsInt() bool {
	switch dtype {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// IsUnsigned returns whether dtype is one of the unsigned integer types.
func (dtype DType) IsUnsigned() bool {
	switch dtype {
	case Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// Supported lists the Go types the engine stores natively.
// Used as a constraint for generics.
type Supported interface {
	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// Number represents the Go numeric types corresponding to built-in DTypes.
// Used as a constraint for generics.
type Number interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// Integer represents the fixed-width Go integer types supported by the
// engine, signed and unsigned.
type Integer interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64
}

// Float represents the continuous Go numeric types supported by the engine.
type Float interface {
	float32 | float64
}
