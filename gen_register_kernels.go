/***** File generated by ./internal/cmd/kernels_dispatcher. Don't edit it directly. *****/

package graphblas

func init() {
	// Monoid reducers.
	registerReduceKernels[int8]()
	registerReduceKernels[int16]()
	registerReduceKernels[int32]()
	registerReduceKernels[int64]()
	registerReduceKernels[uint8]()
	registerReduceKernels[uint16]()
	registerReduceKernels[uint32]()
	registerReduceKernels[uint64]()
	registerReduceKernels[float32]()
	registerReduceKernels[float64]()
	registerBoolReduceKernels()

	// Element-wise workers.
	registerEwiseKernels[int8]()
	registerEwiseKernels[int16]()
	registerEwiseKernels[int32]()
	registerEwiseKernels[int64]()
	registerEwiseKernels[uint8]()
	registerEwiseKernels[uint16]()
	registerEwiseKernels[uint32]()
	registerEwiseKernels[uint64]()
	registerEwiseKernels[float32]()
	registerEwiseKernels[float64]()
	registerBoolEwiseKernels()

	// Semiring multiply workers.
	registerMxMKernels[int8]()
	registerMxMKernels[int16]()
	registerMxMKernels[int32]()
	registerMxMKernels[int64]()
	registerMxMKernels[uint8]()
	registerMxMKernels[uint16]()
	registerMxMKernels[uint32]()
	registerMxMKernels[uint64]()
	registerMxMKernels[float32]()
	registerMxMKernels[float64]()
	registerBoolMxMKernels()

	// Unary apply workers.
	registerApplyKernels[int8]()
	registerApplyKernels[int16]()
	registerApplyKernels[int32]()
	registerApplyKernels[int64]()
	registerApplyKernels[uint8]()
	registerApplyKernels[uint16]()
	registerApplyKernels[uint32]()
	registerApplyKernels[uint64]()
	registerApplyKernels[float32]()
	registerApplyKernels[float64]()
	registerBoolApplyKernels()

	// Select value predicates.
	registerSelectKernels[int8]()
	registerSelectKernels[int16]()
	registerSelectKernels[int32]()
	registerSelectKernels[int64]()
	registerSelectKernels[uint8]()
	registerSelectKernels[uint16]()
	registerSelectKernels[uint32]()
	registerSelectKernels[uint64]()
	registerSelectKernels[float32]()
	registerSelectKernels[float64]()
	registerBoolSelectKernels()
}
