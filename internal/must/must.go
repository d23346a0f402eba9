// Package must provides a tiny set of helpers that panic on error.
//
// Convenient for the code generators, which just need to fail loudly.
package must

import (
	"k8s.io/klog/v2"
)

// M logs and panics if `err` is not nil.
var M = func(err error) {
	if err != nil {
		klog.Errorf("Must not error: %+v\nPanicking ...\n\n", err)
		panic(err)
	}
}

// M1 checks that there is no error with `M(err)` and then simply returns the
// value given.
func M1[T1 any](value1 T1, err error) T1 {
	M(err)
	return value1
}
