package graphblas

// AxBMethod selects the matrix-multiply algorithm.
type AxBMethod int32

const (
	// AxBAuto lets the planner choose per operation.
	AxBAuto AxBMethod = iota
	// AxBGustavson is the gather/scatter saxpy method with a dense
	// per-worker scratch.
	AxBGustavson
	// AxBDot computes each admitted C(i,j) as a sparse dot product.
	AxBDot
	// AxBHeap merges the selected vectors of A through a min-heap, with no
	// dense scratch.
	AxBHeap
)

func (m AxBMethod) String() string {
	switch m {
	case AxBAuto:
		return "auto"
	case AxBGustavson:
		return "gustavson"
	case AxBDot:
		return "dot"
	case AxBHeap:
		return "heap"
	}
	return "invalid"
}

// Descriptor configures an operation. The zero value (and nil) is the
// default behavior: keep C outside the mask, use mask values, no transposes,
// automatic method, engine-wide thread budget.
type Descriptor struct {
	// Replace clears entries of C not admitted by the mask, instead of
	// keeping them.
	Replace bool

	// MaskComplement admits the positions where the mask is absent/false.
	MaskComplement bool

	// MaskStructure consults only structural presence of mask entries,
	// ignoring their values.
	MaskStructure bool

	// Tran0 and Tran1 use the transpose of the first/second input.
	Tran0, Tran1 bool

	// Method forces a multiply algorithm.
	Method AxBMethod

	// NThreads caps the worker count for this operation; 0 uses the engine
	// setting.
	NThreads int
}

func (d *Descriptor) replace() bool    { return d != nil && d.Replace }
func (d *Descriptor) complement() bool { return d != nil && d.MaskComplement }
func (d *Descriptor) structural() bool { return d != nil && d.MaskStructure }
func (d *Descriptor) tran0() bool      { return d != nil && d.Tran0 }
func (d *Descriptor) tran1() bool      { return d != nil && d.Tran1 }
func (d *Descriptor) method() AxBMethod {
	if d == nil {
		return AxBAuto
	}
	return d.Method
}
