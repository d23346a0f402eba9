package graphblas

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/gosparse/graphblas/pkg/core/dtypes"
)

// Matrix serialization: a little-endian header
// (magic, version, orientation, hyper, typecode, nrows, ncols, nvec, nvals)
// followed by the p, h (hypersparse only), i and x arrays. Only matrices of
// built-in types serialize; user-defined types have no stable wire code.

const (
	serializeMagic   uint64 = 0x53_42_72_47 // "GrBS"
	serializeVersion uint64 = 1
)

// Serialize finalizes the matrix and encodes it into a fresh byte slice.
func (m *Matrix) Serialize() ([]byte, error) {
	if err := m.checkValid(); err != nil {
		return nil, err
	}
	if !m.typ.IsBuiltin() {
		return nil, errors.Wrapf(ErrDomainMismatch, "Serialize: user-defined type %s has no wire code", m.typ)
	}
	if err := m.Wait(); err != nil {
		return nil, err
	}

	nvals := len(m.i)
	size := 9 * 8 // header
	size += (len(m.p) + len(m.h) + nvals) * 8
	size += nvals * m.typ.ByteSize
	out := make([]byte, 0, size)

	putU64 := func(v uint64) {
		out = binary.LittleEndian.AppendUint64(out, v)
	}
	orientation := uint64(0)
	if m.byCol {
		orientation = 1
	}
	hyper := uint64(0)
	if m.hyper {
		hyper = 1
	}
	putU64(serializeMagic)
	putU64(serializeVersion)
	putU64(orientation)
	putU64(hyper)
	putU64(uint64(m.typ.Code))
	putU64(uint64(m.nrows))
	putU64(uint64(m.ncols))
	putU64(uint64(m.nvec))
	putU64(uint64(nvals))
	for _, v := range m.p {
		putU64(uint64(v))
	}
	for _, v := range m.h {
		putU64(uint64(v))
	}
	for _, v := range m.i {
		putU64(uint64(v))
	}
	out = append(out, m.x...)
	return out, nil
}

// Deserialize decodes a matrix previously produced by Serialize.
func (e *Engine) Deserialize(data []byte) (*Matrix, error) {
	if len(data) < 9*8 {
		return nil, errors.Wrapf(ErrInvalidValue, "Deserialize: truncated header (%d bytes)", len(data))
	}
	next := 0
	getU64 := func() uint64 {
		v := binary.LittleEndian.Uint64(data[next:])
		next += 8
		return v
	}
	if magic := getU64(); magic != serializeMagic {
		return nil, errors.Wrapf(ErrInvalidValue, "Deserialize: bad magic %#x", magic)
	}
	if version := getU64(); version != serializeVersion {
		return nil, errors.Wrapf(ErrInvalidValue, "Deserialize: unsupported version %d", version)
	}
	byCol := getU64() == 1
	hyper := getU64() == 1
	code := dtypes.DType(getU64())
	if !code.IsBuiltin() {
		return nil, errors.Wrapf(ErrInvalidValue, "Deserialize: invalid type code %d", code)
	}
	typ := dtypes.TypeFor(code)
	nrows := int(getU64())
	ncols := int(getU64())
	nvec := int(getU64())
	nvals := int(getU64())

	m := e.newMatrixShell(typ, nrows, ncols, byCol)
	if nrows <= 0 || ncols <= 0 || nvec < 0 || nvec > m.vdim() || nvals < 0 {
		return nil, errors.Wrapf(ErrInvalidValue, "Deserialize: inconsistent header %dx%d nvec=%d nvals=%d",
			nrows, ncols, nvec, nvals)
	}
	hlen := 0
	if hyper {
		hlen = nvec
	}
	want := 9*8 + (nvec+1+hlen+nvals)*8 + nvals*typ.ByteSize
	if len(data) != want {
		return nil, errors.Wrapf(ErrInvalidValue, "Deserialize: got %d bytes, want %d", len(data), want)
	}

	m.hyper = hyper
	m.nvec = nvec
	m.p = make([]int, nvec+1)
	for idx := range m.p {
		m.p[idx] = int(getU64())
	}
	if hyper {
		m.h = make([]int, nvec)
		for idx := range m.h {
			m.h[idx] = int(getU64())
		}
	}
	m.i = make([]int, nvals)
	for idx := range m.i {
		m.i[idx] = int(getU64())
	}
	m.x = append([]byte(nil), data[next:]...)
	if err := m.checkValid(); err != nil {
		return nil, err
	}
	return m, nil
}
