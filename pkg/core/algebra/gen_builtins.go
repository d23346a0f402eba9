/***** File generated by ./internal/cmd/kernels_dispatcher. Don't edit it directly. *****/

package algebra

func init() {
	// Numeric operators.
	registerNumberOps[int8]()
	registerNumberOps[int16]()
	registerNumberOps[int32]()
	registerNumberOps[int64]()
	registerNumberOps[uint8]()
	registerNumberOps[uint16]()
	registerNumberOps[uint32]()
	registerNumberOps[uint64]()
	registerNumberOps[float32]()
	registerNumberOps[float64]()

	// Integer division semantics (division by zero yields zero).
	registerIntegerDivOps[int8]()
	registerIntegerDivOps[int16]()
	registerIntegerDivOps[int32]()
	registerIntegerDivOps[int64]()
	registerIntegerDivOps[uint8]()
	registerIntegerDivOps[uint16]()
	registerIntegerDivOps[uint32]()
	registerIntegerDivOps[uint64]()
	registerFloatMInv[float32]()
	registerFloatMInv[float64]()

	// Boolean operators.
	registerBoolOps()
}
