package algebra

import (
	"unsafe"

	"github.com/gomlx/exceptions"

	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// Tables of the built-in operators, indexed by (opcode, dtype). Filled by
// the per-dtype registrations in gen_builtins.go. The dtype index is the
// operand dtype (for comparators the result is Bool but the index is still
// the operand dtype).
var (
	binaryOps [NumOpcodes][dtypes.NumBuiltin]*BinaryOp
	unaryOps  [NumOpcodes][dtypes.NumBuiltin]*UnaryOp
)

// Binary returns the built-in binary operator for (opcode, operand dtype),
// or nil if the combination does not exist.
func Binary(opcode Opcode, dtype dtypes.DType) *BinaryOp {
	if !dtype.IsBuiltin() || opcode <= OpcodeNone || opcode >= OpcodeUserDefined {
		return nil
	}
	return binaryOps[opcode][dtype]
}

// Unary returns the built-in unary operator for (opcode, operand dtype), or
// nil if the combination does not exist.
func Unary(opcode Opcode, dtype dtypes.DType) *UnaryOp {
	if !dtype.IsBuiltin() || opcode <= OpcodeNone || opcode >= OpcodeUserDefined {
		return nil
	}
	return unaryOps[opcode][dtype]
}

func mustBinary(opcode Opcode, dtype dtypes.DType) *BinaryOp {
	op := Binary(opcode, dtype)
	if op == nil {
		exceptions.Panicf("no built-in %s operator for dtype %s", opcode, dtype)
	}
	return op
}

func mustUnary(opcode Opcode, dtype dtypes.DType) *UnaryOp {
	op := Unary(opcode, dtype)
	if op == nil {
		exceptions.Panicf("no built-in %s operator for dtype %s", opcode, dtype)
	}
	return op
}

// Named accessors for the most used built-ins.

func First(dt dtypes.DType) *BinaryOp  { return mustBinary(OpcodeFirst, dt) }
func Second(dt dtypes.DType) *BinaryOp { return mustBinary(OpcodeSecond, dt) }
func Plus(dt dtypes.DType) *BinaryOp   { return mustBinary(OpcodePlus, dt) }
func Minus(dt dtypes.DType) *BinaryOp  { return mustBinary(OpcodeMinus, dt) }
func Times(dt dtypes.DType) *BinaryOp  { return mustBinary(OpcodeTimes, dt) }
func Div(dt dtypes.DType) *BinaryOp    { return mustBinary(OpcodeDiv, dt) }
func Min(dt dtypes.DType) *BinaryOp    { return mustBinary(OpcodeMin, dt) }
func Max(dt dtypes.DType) *BinaryOp    { return mustBinary(OpcodeMax, dt) }

func LOr() *BinaryOp  { return mustBinary(OpcodeLOr, dtypes.Bool) }
func LAnd() *BinaryOp { return mustBinary(OpcodeLAnd, dtypes.Bool) }
func LXor() *BinaryOp { return mustBinary(OpcodeLXor, dtypes.Bool) }

func Identity(dt dtypes.DType) *UnaryOp { return mustUnary(OpcodeIdentity, dt) }
func AInv(dt dtypes.DType) *UnaryOp     { return mustUnary(OpcodeAInv, dt) }
func Abs(dt dtypes.DType) *UnaryOp      { return mustUnary(OpcodeAbs, dt) }
func LNot() *UnaryOp                    { return mustUnary(OpcodeLNot, dtypes.Bool) }

// val reinterprets the head of b as a value of type T.
func val[T dtypes.Supported](b []byte) *T {
	return (*T)(unsafe.Pointer(&b[0]))
}

// binFn lifts a native Go function to a BinaryFn over raw bytes.
func binFn[X, Y, Z dtypes.Supported](f func(x X, y Y) Z) BinaryFn {
	return func(z, x, y []byte) {
		*val[Z](z) = f(*val[X](x), *val[Y](y))
	}
}

// unFn lifts a native Go function to a UnaryFn over raw bytes.
func unFn[X, Z dtypes.Supported](f func(x X) Z) UnaryFn {
	return func(z, x []byte) {
		*val[Z](z) = f(*val[X](x))
	}
}

func registerBinary[X, Y, Z dtypes.Supported](opcode Opcode, f func(X, Y) Z) {
	xt := dtypes.TypeOf[X]()
	op := &BinaryOp{
		Name:   opcode.String() + "_" + xt.Name,
		Opcode: opcode,
		X:      xt, Y: dtypes.TypeOf[Y](), Z: dtypes.TypeOf[Z](),
		Fn: binFn(f),
	}
	binaryOps[opcode][xt.Code] = op
}

func registerUnary[X, Z dtypes.Supported](opcode Opcode, f func(X) Z) {
	xt := dtypes.TypeOf[X]()
	op := &UnaryOp{
		Name:   opcode.String() + "_" + xt.Name,
		Opcode: opcode,
		X:      xt, Z: dtypes.TypeOf[Z](),
		Fn: unFn(f),
	}
	unaryOps[opcode][xt.Code] = op
}

// registerNumberOps registers every built-in operator defined on a numeric
// dtype. Integer division semantics are overridden right after by
// registerIntegerDivOps for the integer dtypes.
func registerNumberOps[T dtypes.Number]() {
	registerBinary(OpcodeFirst, func(x, _ T) T { return x })
	registerBinary(OpcodeSecond, func(_, y T) T { return y })
	registerBinary(OpcodePlus, func(x, y T) T { return x + y })
	registerBinary(OpcodeMinus, func(x, y T) T { return x - y })
	registerBinary(OpcodeRMinus, func(x, y T) T { return y - x })
	registerBinary(OpcodeTimes, func(x, y T) T { return x * y })
	registerBinary(OpcodeDiv, func(x, y T) T { return x / y })
	registerBinary(OpcodeRDiv, func(x, y T) T { return y / x })
	registerBinary(OpcodeMin, func(x, y T) T {
		if y < x {
			return y
		}
		return x
	})
	registerBinary(OpcodeMax, func(x, y T) T {
		if y > x {
			return y
		}
		return x
	})

	registerBinary(OpcodeEq, func(x, y T) bool { return x == y })
	registerBinary(OpcodeNe, func(x, y T) bool { return x != y })
	registerBinary(OpcodeGt, func(x, y T) bool { return x > y })
	registerBinary(OpcodeLt, func(x, y T) bool { return x < y })
	registerBinary(OpcodeGe, func(x, y T) bool { return x >= y })
	registerBinary(OpcodeLe, func(x, y T) bool { return x <= y })

	registerUnary(OpcodeIdentity, func(x T) T { return x })
	registerUnary(OpcodeAInv, func(x T) T { return -x })
	registerUnary(OpcodeAbs, func(x T) T {
		if x < 0 {
			return -x
		}
		return x
	})
}

// registerIntegerDivOps overrides division for an integer dtype: division by
// zero yields zero instead of faulting.
func registerIntegerDivOps[T dtypes.Integer]() {
	registerBinary(OpcodeDiv, func(x, y T) T {
		if y == 0 {
			return 0
		}
		return x / y
	})
	registerBinary(OpcodeRDiv, func(x, y T) T {
		if x == 0 {
			return 0
		}
		return y / x
	})
	registerUnary(OpcodeMInv, func(x T) T {
		if x == 0 {
			return 0
		}
		return 1 / x
	})
}

func registerFloatMInv[T dtypes.Float]() {
	registerUnary(OpcodeMInv, func(x T) T { return 1 / x })
}

// registerBoolOps registers the boolean operators.
func registerBoolOps() {
	registerBinary(OpcodeFirst, func(x, _ bool) bool { return x })
	registerBinary(OpcodeSecond, func(_, y bool) bool { return y })
	registerBinary(OpcodeLOr, func(x, y bool) bool { return x || y })
	registerBinary(OpcodeLAnd, func(x, y bool) bool { return x && y })
	registerBinary(OpcodeLXor, func(x, y bool) bool { return x != y })
	registerBinary(OpcodeEq, func(x, y bool) bool { return x == y })
	registerBinary(OpcodeNe, func(x, y bool) bool { return x != y })

	registerUnary(OpcodeIdentity, func(x bool) bool { return x })
	registerUnary(OpcodeLNot, func(x bool) bool { return !x })
}
