package algebra

// Opcode identifies a built-in operator independently of its operand types.
// Together with a dtype it forms the key of the specialized-kernel tables,
// so the values are stable build constants.
type Opcode int32

const (
	// OpcodeNone marks "no operator".
	OpcodeNone Opcode = iota

	// Unary operators.

	OpcodeIdentity // z = x
	OpcodeAInv     // z = -x
	OpcodeAbs      // z = |x|
	OpcodeMInv     // z = 1/x
	OpcodeLNot     // z = !x

	// Binary operators.

	OpcodeFirst  // z = x
	OpcodeSecond // z = y
	OpcodeMin
	OpcodeMax
	OpcodePlus
	OpcodeMinus
	OpcodeRMinus // z = y - x
	OpcodeTimes
	OpcodeDiv
	OpcodeRDiv // z = y / x
	OpcodeEq
	OpcodeNe
	OpcodeGt
	OpcodeLt
	OpcodeGe
	OpcodeLe
	OpcodeLOr
	OpcodeLAnd
	OpcodeLXor

	// OpcodeUserDefined is the reserved opcode of user operators; it always
	// dispatches to the generic worker.
	OpcodeUserDefined

	// NumOpcodes sizes dispatch tables.
	NumOpcodes
)

var opcodeNames = [NumOpcodes]string{
	"none",
	"identity", "ainv", "abs", "minv", "lnot",
	"first", "second", "min", "max", "plus", "minus", "rminus",
	"times", "div", "rdiv",
	"eq", "ne", "gt", "lt", "ge", "le",
	"lor", "land", "lxor",
	"user-defined",
}

// String implements fmt.Stringer.
func (op Opcode) String() string {
	if op < 0 || op >= NumOpcodes {
		return "invalid-opcode"
	}
	return opcodeNames[op]
}
