package dtypes

// Type describes the value type of a matrix or operator operand: a DType plus
// the byte size of one value. For built-in dtypes the size is redundant; for
// UserDefined it is the only thing the engine knows about the values, which
// are moved with copy semantics.
type Type struct {
	Code DType

	// ByteSize of one value.
	ByteSize int

	// Name used for error messages only.
	Name string
}

// Pre-built descriptors for the built-in dtypes.
var builtinTypes [NumBuiltin]*Type

func init() {
	for code := Bool; code < UserDefined; code++ {
		builtinTypes[code] = &Type{Code: code, ByteSize: code.Size(), Name: code.String()}
	}
}

// TypeFor returns the shared Type descriptor of a built-in dtype.
// It panics for UserDefined or invalid dtypes.
func TypeFor(dtype DType) *Type {
	if !dtype.IsBuiltin() {
		panicf("TypeFor(%s): only built-in dtypes have a shared descriptor", dtype)
	}
	return builtinTypes[dtype]
}

// TypeOf returns the Type descriptor matching the native Go type T.
func TypeOf[T Supported]() *Type {
	return TypeFor(FromGenericsType[T]())
}

// NewUserType creates the descriptor of an opaque user-defined type of the
// given byte size. Values of the type are moved with copy semantics and all
// kernels take the generic path for it.
func NewUserType(name string, byteSize int) *Type {
	if byteSize <= 0 {
		panicf("NewUserType(%q, %d): byte size must be positive", name, byteSize)
	}
	return &Type{Code: UserDefined, ByteSize: byteSize, Name: name}
}

// IsBuiltin returns whether the type is one of the built-in dtypes.
func (t *Type) IsBuiltin() bool { return t.Code.IsBuiltin() }

// String implements fmt.Stringer.
func (t *Type) String() string { return t.Name }

// Equal reports whether two type descriptors describe the same type.
// Built-in descriptors are shared, so pointer equality is enough for them;
// distinct user types are never equal.
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	return t.Code.IsBuiltin() && t.Code == other.Code
}

// CompatibleWith reports whether values of type t can be typecast to values
// of type "to": any two built-in types are mutually castable, a user-defined
// type is compatible only with itself.
func (t *Type) CompatibleWith(to *Type) bool {
	if t.Code.IsBuiltin() && to.Code.IsBuiltin() {
		return true
	}
	return t.Equal(to)
}
