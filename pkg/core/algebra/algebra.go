// Package algebra defines the algebraic objects the engine computes with:
// unary and binary operators, monoids (an associative operator plus identity
// and optional terminal value) and semirings (an additive monoid paired with
// a multiplicative operator).
//
// All objects are immutable after creation and shared by handle; they must
// outlive the operations referencing them. Built-in operators carry a stable
// Opcode so that kernel dispatch can pair them with specialized workers;
// user-defined operators always use OpcodeUserDefined, which forces the
// generic path.
//
// Operator functions work on the raw bytes of single values (the generic
// path); specialized kernels never call through them.
package algebra

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// UnaryFn computes z = f(x) over the raw bytes of single values.
type UnaryFn func(z, x []byte)

// BinaryFn computes z = f(x, y) over the raw bytes of single values.
type BinaryFn func(z, x, y []byte)

// UnaryOp is a typed unary operator z = f(x).
type UnaryOp struct {
	Name   string
	Opcode Opcode
	X, Z   *dtypes.Type
	Fn     UnaryFn
}

// BinaryOp is a typed binary operator z = f(x, y).
type BinaryOp struct {
	Name    string
	Opcode  Opcode
	X, Y, Z *dtypes.Type
	Fn      BinaryFn
}

// Monoid pairs an associative, commutative binary operator whose three
// operand types match with its identity value, and optionally a terminal
// (absorbing) value: op(terminal, x) == terminal for all x, letting
// reductions short-circuit.
type Monoid struct {
	Op *BinaryOp

	// Identity value, exactly Type().ByteSize bytes.
	Identity []byte

	// Terminal value or nil. Compared bytewise during reductions.
	Terminal []byte
}

// Semiring pairs an additive monoid with a multiplicative operator whose
// output type matches the monoid's element type.
type Semiring struct {
	Name string
	Add  *Monoid
	Mul  *BinaryOp
}

// NewUnaryOp creates a user-defined unary operator.
func NewUnaryOp(name string, x, z *dtypes.Type, fn UnaryFn) (*UnaryOp, error) {
	if x == nil || z == nil || fn == nil {
		return nil, errors.Errorf("NewUnaryOp(%q): nil type or function", name)
	}
	return &UnaryOp{Name: name, Opcode: OpcodeUserDefined, X: x, Z: z, Fn: fn}, nil
}

// NewBinaryOp creates a user-defined binary operator.
func NewBinaryOp(name string, x, y, z *dtypes.Type, fn BinaryFn) (*BinaryOp, error) {
	if x == nil || y == nil || z == nil || fn == nil {
		return nil, errors.Errorf("NewBinaryOp(%q): nil type or function", name)
	}
	return &BinaryOp{Name: name, Opcode: OpcodeUserDefined, X: x, Y: y, Z: z, Fn: fn}, nil
}

// Type returns the element type of the monoid: the shared operand/result
// type of its operator.
func (m *Monoid) Type() *dtypes.Type { return m.Op.Z }

// IsTerminal reports whether the raw value z equals the monoid's terminal.
func (m *Monoid) IsTerminal(z []byte) bool {
	return m.Terminal != nil && bytes.Equal(z[:len(m.Terminal)], m.Terminal)
}

// NewMonoid creates a monoid from an associative operator whose operand and
// result types all match, an identity value and an optional terminal value.
// identity and terminal are Go scalars (or []byte for user-defined types).
func NewMonoid(op *BinaryOp, identity any, terminal any) (*Monoid, error) {
	if op == nil {
		return nil, errors.New("NewMonoid: nil operator")
	}
	if !op.X.Equal(op.Z) || !op.Y.Equal(op.Z) {
		return nil, errors.Errorf("NewMonoid(%q): operand types (%s, %s) and result type %s must all match",
			op.Name, op.X, op.Y, op.Z)
	}
	id, err := dtypes.ScalarBytes(op.Z, identity)
	if err != nil {
		return nil, errors.WithMessagef(err, "NewMonoid(%q) identity", op.Name)
	}
	m := &Monoid{Op: op, Identity: id}
	if terminal != nil {
		m.Terminal, err = dtypes.ScalarBytes(op.Z, terminal)
		if err != nil {
			return nil, errors.WithMessagef(err, "NewMonoid(%q) terminal", op.Name)
		}
	}
	return m, nil
}

// NewSemiring pairs an additive monoid and a multiplicative operator.
// The multiply's result type must equal the monoid's element type.
func NewSemiring(name string, add *Monoid, mul *BinaryOp) (*Semiring, error) {
	if add == nil || mul == nil {
		return nil, errors.Errorf("NewSemiring(%q): nil monoid or multiply", name)
	}
	if !mul.Z.Equal(add.Type()) {
		return nil, errors.Errorf("NewSemiring(%q): multiply result type %s does not match monoid type %s",
			name, mul.Z, add.Type())
	}
	return &Semiring{Name: name, Add: add, Mul: mul}, nil
}

// IsBuiltin reports whether the operator can have specialized kernels: a
// built-in opcode over a built-in type.
func (op *BinaryOp) IsBuiltin() bool {
	return op.Opcode != OpcodeUserDefined && op.Z.IsBuiltin()
}

// IsBuiltin for unary operators, see BinaryOp.IsBuiltin.
func (op *UnaryOp) IsBuiltin() bool {
	return op.Opcode != OpcodeUserDefined && op.Z.IsBuiltin()
}
