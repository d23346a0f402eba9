package graphblas

import (
	"reflect"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// flatView reinterprets the matrix value array as a typed slice. Only valid
// for built-in matrices whose dtype matches T; specialized kernels use it to
// skip per-value byte moves.
func flatView[T dtypes.Supported](m *Matrix) []T {
	if len(m.i) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&m.x[0])), len(m.i))
}

// bytesView reinterprets a typed slice as raw bytes.
func bytesView[T dtypes.Supported](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var t T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(t)))
}

// typedView reinterprets raw value bytes as a typed slice of n values.
func typedView[T dtypes.Supported](b []byte, n int) []T {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

// bytesPtr returns the address of the first byte of b.
func bytesPtr(b []byte) unsafe.Pointer { return unsafe.Pointer(&b[0]) }

// anySlice boxes the elements of any slice value.
func anySlice(values any) ([]any, error) {
	rv := reflect.ValueOf(values)
	if rv.Kind() != reflect.Slice {
		return nil, errors.Errorf("expected a slice, got %T", values)
	}
	out := make([]any, rv.Len())
	for idx := range out {
		out[idx] = rv.Index(idx).Interface()
	}
	return out, nil
}
