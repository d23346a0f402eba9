package graphblas

// heapElem is one head of the k-way merge in the heap multiply: the current
// inner index of source list.
type heapElem struct {
	index int // current inner index of this list
	list  int // which source list, also the tie-break (left first)
}

// minHeap of merge heads ordered by inner index. The code mirrors
// container/heap but with a concrete element type to keep the merge loop
// free of interface calls.
type minHeap []heapElem

func (h minHeap) less(i, j int) bool {
	if h[i].index != h[j].index {
		return h[i].index < h[j].index
	}
	return h[i].list < h[j].list
}

func (h minHeap) swap(i, j int) { h[i], h[j] = h[j], h[i] }

// heapify establishes the heap invariants; idempotent, O(n).
func (h *minHeap) heapify() {
	n := len(*h)
	for i := n/2 - 1; i >= 0; i-- {
		h.down(i, n)
	}
}

// push the element x onto the heap. O(log n).
func (h *minHeap) push(x heapElem) {
	*h = append(*h, x)
	h.up(len(*h) - 1)
}

// popHead removes the minimum element. O(log n).
func (h *minHeap) popHead() {
	n := len(*h) - 1
	h.swap(0, n)
	h.down(0, n)
	*h = (*h)[:n]
}

// fix re-establishes the ordering after the head element changed its index.
// Cheaper than popHead followed by push.
func (h *minHeap) fix(i int) {
	if !h.down(i, len(*h)) {
		h.up(i)
	}
}

func (h *minHeap) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

func (h *minHeap) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}
	return i > i0
}
