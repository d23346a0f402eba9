/***** File generated by ./internal/cmd/kernels_dispatcher. Don't edit it directly. *****/

package dtypes

func init() {
	// Numeric casts, every (to, from) pair.
	registerCast(Int8, Int8, castNumberGeneric[int8, int8])
	registerCast(Int8, Int16, castNumberGeneric[int8, int16])
	registerCast(Int8, Int32, castNumberGeneric[int8, int32])
	registerCast(Int8, Int64, castNumberGeneric[int8, int64])
	registerCast(Int8, Uint8, castNumberGeneric[int8, uint8])
	registerCast(Int8, Uint16, castNumberGeneric[int8, uint16])
	registerCast(Int8, Uint32, castNumberGeneric[int8, uint32])
	registerCast(Int8, Uint64, castNumberGeneric[int8, uint64])
	registerCast(Int8, Float32, castNumberGeneric[int8, float32])
	registerCast(Int8, Float64, castNumberGeneric[int8, float64])
	registerCast(Int16, Int8, castNumberGeneric[int16, int8])
	registerCast(Int16, Int16, castNumberGeneric[int16, int16])
	registerCast(Int16, Int32, castNumberGeneric[int16, int32])
	registerCast(Int16, Int64, castNumberGeneric[int16, int64])
	registerCast(Int16, Uint8, castNumberGeneric[int16, uint8])
	registerCast(Int16, Uint16, castNumberGeneric[int16, uint16])
	registerCast(Int16, Uint32, castNumberGeneric[int16, uint32])
	registerCast(Int16, Uint64, castNumberGeneric[int16, uint64])
	registerCast(Int16, Float32, castNumberGeneric[int16, float32])
	registerCast(Int16, Float64, castNumberGeneric[int16, float64])
	registerCast(Int32, Int8, castNumberGeneric[int32, int8])
	registerCast(Int32, Int16, castNumberGeneric[int32, int16])
	registerCast(Int32, Int32, castNumberGeneric[int32, int32])
	registerCast(Int32, Int64, castNumberGeneric[int32, int64])
	registerCast(Int32, Uint8, castNumberGeneric[int32, uint8])
	registerCast(Int32, Uint16, castNumberGeneric[int32, uint16])
	registerCast(Int32, Uint32, castNumberGeneric[int32, uint32])
	registerCast(Int32, Uint64, castNumberGeneric[int32, uint64])
	registerCast(Int32, Float32, castNumberGeneric[int32, float32])
	registerCast(Int32, Float64, castNumberGeneric[int32, float64])
	registerCast(Int64, Int8, castNumberGeneric[int64, int8])
	registerCast(Int64, Int16, castNumberGeneric[int64, int16])
	registerCast(Int64, Int32, castNumberGeneric[int64, int32])
	registerCast(Int64, Int64, castNumberGeneric[int64, int64])
	registerCast(Int64, Uint8, castNumberGeneric[int64, uint8])
	registerCast(Int64, Uint16, castNumberGeneric[int64, uint16])
	registerCast(Int64, Uint32, castNumberGeneric[int64, uint32])
	registerCast(Int64, Uint64, castNumberGeneric[int64, uint64])
	registerCast(Int64, Float32, castNumberGeneric[int64, float32])
	registerCast(Int64, Float64, castNumberGeneric[int64, float64])
	registerCast(Uint8, Int8, castNumberGeneric[uint8, int8])
	registerCast(Uint8, Int16, castNumberGeneric[uint8, int16])
	registerCast(Uint8, Int32, castNumberGeneric[uint8, int32])
	registerCast(Uint8, Int64, castNumberGeneric[uint8, int64])
	registerCast(Uint8, Uint8, castNumberGeneric[uint8, uint8])
	registerCast(Uint8, Uint16, castNumberGeneric[uint8, uint16])
	registerCast(Uint8, Uint32, castNumberGeneric[uint8, uint32])
	registerCast(Uint8, Uint64, castNumberGeneric[uint8, uint64])
	registerCast(Uint8, Float32, castNumberGeneric[uint8, float32])
	registerCast(Uint8, Float64, castNumberGeneric[uint8, float64])
	registerCast(Uint16, Int8, castNumberGeneric[uint16, int8])
	registerCast(Uint16, Int16, castNumberGeneric[uint16, int16])
	registerCast(Uint16, Int32, castNumberGeneric[uint16, int32])
	registerCast(Uint16, Int64, castNumberGeneric[uint16, int64])
	registerCast(Uint16, Uint8, castNumberGeneric[uint16, uint8])
	registerCast(Uint16, Uint16, castNumberGeneric[uint16, uint16])
	registerCast(Uint16, Uint32, castNumberGeneric[uint16, uint32])
	registerCast(Uint16, Uint64, castNumberGeneric[uint16, uint64])
	registerCast(Uint16, Float32, castNumberGeneric[uint16, float32])
	registerCast(Uint16, Float64, castNumberGeneric[uint16, float64])
	registerCast(Uint32, Int8, castNumberGeneric[uint32, int8])
	registerCast(Uint32, Int16, castNumberGeneric[uint32, int16])
	registerCast(Uint32, Int32, castNumberGeneric[uint32, int32])
	registerCast(Uint32, Int64, castNumberGeneric[uint32, int64])
	registerCast(Uint32, Uint8, castNumberGeneric[uint32, uint8])
	registerCast(Uint32, Uint16, castNumberGeneric[uint32, uint16])
	registerCast(Uint32, Uint32, castNumberGeneric[uint32, uint32])
	registerCast(Uint32, Uint64, castNumberGeneric[uint32, uint64])
	registerCast(Uint32, Float32, castNumberGeneric[uint32, float32])
	registerCast(Uint32, Float64, castNumberGeneric[uint32, float64])
	registerCast(Uint64, Int8, castNumberGeneric[uint64, int8])
	registerCast(Uint64, Int16, castNumberGeneric[uint64, int16])
	registerCast(Uint64, Int32, castNumberGeneric[uint64, int32])
	registerCast(Uint64, Int64, castNumberGeneric[uint64, int64])
	registerCast(Uint64, Uint8, castNumberGeneric[uint64, uint8])
	registerCast(Uint64, Uint16, castNumberGeneric[uint64, uint16])
	registerCast(Uint64, Uint32, castNumberGeneric[uint64, uint32])
	registerCast(Uint64, Uint64, castNumberGeneric[uint64, uint64])
	registerCast(Uint64, Float32, castNumberGeneric[uint64, float32])
	registerCast(Uint64, Float64, castNumberGeneric[uint64, float64])
	registerCast(Float32, Int8, castNumberGeneric[float32, int8])
	registerCast(Float32, Int16, castNumberGeneric[float32, int16])
	registerCast(Float32, Int32, castNumberGeneric[float32, int32])
	registerCast(Float32, Int64, castNumberGeneric[float32, int64])
	registerCast(Float32, Uint8, castNumberGeneric[float32, uint8])
	registerCast(Float32, Uint16, castNumberGeneric[float32, uint16])
	registerCast(Float32, Uint32, castNumberGeneric[float32, uint32])
	registerCast(Float32, Uint64, castNumberGeneric[float32, uint64])
	registerCast(Float32, Float32, castNumberGeneric[float32, float32])
	registerCast(Float32, Float64, castNumberGeneric[float32, float64])
	registerCast(Float64, Int8, castNumberGeneric[float64, int8])
	registerCast(Float64, Int16, castNumberGeneric[float64, int16])
	registerCast(Float64, Int32, castNumberGeneric[float64, int32])
	registerCast(Float64, Int64, castNumberGeneric[float64, int64])
	registerCast(Float64, Uint8, castNumberGeneric[float64, uint8])
	registerCast(Float64, Uint16, castNumberGeneric[float64, uint16])
	registerCast(Float64, Uint32, castNumberGeneric[float64, uint32])
	registerCast(Float64, Uint64, castNumberGeneric[float64, uint64])
	registerCast(Float64, Float32, castNumberGeneric[float64, float32])
	registerCast(Float64, Float64, castNumberGeneric[float64, float64])

	// Bool conversions: non-zero is true, true is 1.
	registerCast(Bool, Int8, castToBoolGeneric[int8])
	registerCast(Bool, Int16, castToBoolGeneric[int16])
	registerCast(Bool, Int32, castToBoolGeneric[int32])
	registerCast(Bool, Int64, castToBoolGeneric[int64])
	registerCast(Bool, Uint8, castToBoolGeneric[uint8])
	registerCast(Bool, Uint16, castToBoolGeneric[uint16])
	registerCast(Bool, Uint32, castToBoolGeneric[uint32])
	registerCast(Bool, Uint64, castToBoolGeneric[uint64])
	registerCast(Bool, Float32, castToBoolGeneric[float32])
	registerCast(Bool, Float64, castToBoolGeneric[float64])
	registerCast(Int8, Bool, castFromBoolGeneric[int8])
	registerCast(Int16, Bool, castFromBoolGeneric[int16])
	registerCast(Int32, Bool, castFromBoolGeneric[int32])
	registerCast(Int64, Bool, castFromBoolGeneric[int64])
	registerCast(Uint8, Bool, castFromBoolGeneric[uint8])
	registerCast(Uint16, Bool, castFromBoolGeneric[uint16])
	registerCast(Uint32, Bool, castFromBoolGeneric[uint32])
	registerCast(Uint64, Bool, castFromBoolGeneric[uint64])
	registerCast(Float32, Bool, castFromBoolGeneric[float32])
	registerCast(Float64, Bool, castFromBoolGeneric[float64])
	registerCast(Bool, Bool, castBoolToBool)
}
