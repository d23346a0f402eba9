package graphblas

import (
	"context"
	"slices"

	"k8s.io/klog/v2"
)

// hyperRatio is the density threshold for switching between hypersparse and
// regular storage: a matrix stays hypersparse while fewer than vdim/16 of
// its outer vectors are non-empty.
const hyperRatio = 16

// Wait finalizes the matrix: zombies are compacted out and pending tuples
// are sorted, deduplicated and merged into the compressed form. After Wait
// the matrix is clean and all storage invariants hold. Idempotent.
//
// On error the matrix is unchanged.
func (m *Matrix) Wait() error {
	if err := m.checkValid(); err != nil {
		return err
	}
	if m.isClean() {
		m.conformHyper()
		return nil
	}
	klog.V(2).Infof("Wait(%s): %d pending, %d zombies", m.typ, len(m.pending), m.nzombies)
	if m.nzombies > 0 {
		m.compactZombies()
	}
	if len(m.pending) > 0 {
		m.mergePending()
	}
	m.conformHyper()
	return nil
}

// compactZombies removes flipped entries in place: first each vector is
// compacted within its own region in parallel, then the regions are squeezed
// together sequentially and p rebuilt.
func (m *Matrix) compactZombies() {
	asize := m.typ.ByteSize
	counts := make([]int, m.nvec+1)
	_ = m.e.parallelFor(context.Background(), m.nvec, func(k int) {
		start, end := m.p[k], m.p[k+1]
		live := start
		for pos := start; pos < end; pos++ {
			if isZombie(m.i[pos]) {
				continue
			}
			if live != pos {
				m.i[live] = m.i[pos]
				copy(m.x[live*asize:(live+1)*asize], m.x[pos*asize:(pos+1)*asize])
			}
			live++
		}
		counts[k] = live - start
	})

	// Squeeze the per-vector blocks together, left to right.
	dst := 0
	for k := 0; k < m.nvec; k++ {
		src := m.p[k]
		n := counts[k]
		if dst != src && n > 0 {
			copy(m.i[dst:dst+n], m.i[src:src+n])
			copy(m.x[dst*asize:(dst+n)*asize], m.x[src*asize:(src+n)*asize])
		}
		counts[k] = dst // becomes the new p[k]
		dst += n
	}
	counts[m.nvec] = dst
	m.p = counts
	m.i = m.i[:dst]
	m.x = m.x[:dst*asize]
	m.nzombies = 0
}

// mergePending folds the pending-tuple bag into the compressed form:
// stable-sort by (outer, inner), reduce duplicates with the pending operator
// (overwrite when none), then merge with the already-sorted vectors into
// fresh arrays.
func (m *Matrix) mergePending() {
	asize := m.typ.ByteSize
	slices.SortStableFunc(m.pending, func(a, b pendingTuple) int {
		if a.k != b.k {
			return a.k - b.k
		}
		return a.i - b.i
	})

	// Reduce duplicate positions. Stability makes "last wins" well-defined.
	reduced := m.pending[:0]
	for _, t := range m.pending {
		if n := len(reduced); n > 0 && reduced[n-1].k == t.k && reduced[n-1].i == t.i {
			prev := reduced[n-1]
			if m.pendingOp != nil {
				m.pendingOp.Fn(prev.v, prev.v, t.v)
			} else {
				copy(prev.v, t.v)
			}
			continue
		}
		reduced = append(reduced, t)
	}

	newP := make([]int, 0, m.nvec+1)
	newH := make([]int, 0, m.nvec)
	newI := make([]int, 0, len(m.i)+len(reduced))
	newX := make([]byte, 0, (len(m.i)+len(reduced))*asize)

	appendEntry := func(inner int, v []byte) {
		newI = append(newI, inner)
		newX = append(newX, v[:asize]...)
	}

	// Walk stored vectors and pending groups in outer order.
	slot, cursor := 0, 0
	for slot < m.nvec || cursor < len(reduced) {
		var outer int
		switch {
		case slot >= m.nvec:
			outer = reduced[cursor].k
		case cursor >= len(reduced):
			outer = m.kthVector(slot)
		default:
			outer = min(m.kthVector(slot), reduced[cursor].k)
		}

		start, end := 0, 0
		if slot < m.nvec && m.kthVector(slot) == outer {
			start, end = m.p[slot], m.p[slot+1]
			slot++
		}
		groupEnd := cursor
		for groupEnd < len(reduced) && reduced[groupEnd].k == outer {
			groupEnd++
		}

		vecStart := len(newI)
		pos := start
		for pos < end && cursor < groupEnd {
			switch {
			case m.i[pos] < reduced[cursor].i:
				appendEntry(m.i[pos], m.value(pos))
				pos++
			case m.i[pos] > reduced[cursor].i:
				appendEntry(reduced[cursor].i, reduced[cursor].v)
				cursor++
			default:
				// Stored and pending collide: the pending operator combines
				// them, or the pending value overwrites.
				v := reduced[cursor].v
				if m.pendingOp != nil {
					m.pendingOp.Fn(v, m.value(pos), v)
				}
				appendEntry(m.i[pos], v)
				pos++
				cursor++
			}
		}
		for ; pos < end; pos++ {
			appendEntry(m.i[pos], m.value(pos))
		}
		for ; cursor < groupEnd; cursor++ {
			appendEntry(reduced[cursor].i, reduced[cursor].v)
		}

		if len(newI) > vecStart {
			newH = append(newH, outer)
			newP = append(newP, vecStart)
		}
	}
	newP = append(newP, len(newI))

	m.hyper = true
	m.h = newH
	m.nvec = len(newH)
	m.p = newP
	m.i = newI
	m.x = newX
	m.pending = nil
	m.pendingOp = nil
}

// conformHyper switches between hypersparse and regular storage based on the
// density of non-empty vectors.
func (m *Matrix) conformHyper() {
	if !m.isClean() {
		return
	}
	vdim := m.vdim()
	if m.hyper {
		if m.nvec*hyperRatio < vdim {
			return // stays hypersparse
		}
		// Expand h into a dense vector index: p[j] becomes the start of the
		// first stored vector at or after j.
		p := make([]int, vdim+1)
		next := len(m.i)
		for j := vdim - 1; j >= 0; j-- {
			if slot, found := searchSorted(m.h, j); found {
				next = m.p[slot]
			}
			p[j] = next
		}
		p[vdim] = len(m.i)
		m.p = p
		m.h = nil
		m.hyper = false
		m.nvec = vdim
		klog.V(2).Infof("conformHyper: expanded to regular storage, vdim=%d", vdim)
		return
	}
	// Regular storage: count non-empty vectors.
	nonEmpty := 0
	for k := 0; k < m.nvec; k++ {
		if m.p[k+1] > m.p[k] {
			nonEmpty++
		}
	}
	if nonEmpty*hyperRatio >= vdim {
		return
	}
	h := make([]int, 0, nonEmpty)
	p := make([]int, 0, nonEmpty+1)
	for k := 0; k < m.nvec; k++ {
		if m.p[k+1] > m.p[k] {
			h = append(h, k)
			p = append(p, m.p[k])
		}
	}
	p = append(p, m.p[m.nvec])
	m.h = h
	m.p = p
	m.nvec = nonEmpty
	m.hyper = true
	klog.V(2).Infof("conformHyper: switched to hypersparse, nvec=%d of %d", nonEmpty, vdim)
}
