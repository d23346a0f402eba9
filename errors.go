package graphblas

import (
	"context"

	"github.com/pkg/errors"
)

// The error conditions reported by the engine. Every error returned by an
// operation wraps one of these sentinels, so callers test with errors.Is.
var (
	// ErrOutOfMemory reports an allocation failure; the operation's outputs
	// are left unchanged.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrDomainMismatch reports operand types that cannot be typecast to the
	// types an operator requires.
	ErrDomainMismatch = errors.New("domain mismatch")

	// ErrDimensionMismatch reports incompatible matrix dimensions.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidObject reports a matrix whose internal invariants are broken.
	ErrInvalidObject = errors.New("invalid object")

	// ErrNullPointer reports a required argument that was nil.
	ErrNullPointer = errors.New("null pointer")

	// ErrInvalidValue reports an argument value outside its valid range.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUninitialized reports use of a matrix not created by an Engine.
	ErrUninitialized = errors.New("uninitialized object")

	// ErrCancelled reports that the operation's Context was cancelled before
	// completion. User-visible outputs are unchanged.
	ErrCancelled = errors.New("operation cancelled")
)

// errNoValue is the internal kernel-not-applicable signal: a specialized
// worker returns it to request fallback to the generic worker. It is always
// consumed by the dispatcher and never surfaced to callers.
var errNoValue = errors.New("no value")

// ctxErr converts a cancelled context into the engine's cancellation error.
// Kernels poll it at task boundaries only.
func ctxErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(ErrCancelled, "%v", err)
	}
	return nil
}
