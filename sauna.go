package graphblas

// A sauna is the per-worker dense scratch used by the gather/scatter
// multiply: a dense work array of one value per inner index and a companion
// mark array with the hi-watermark discipline.
//
// A slot i holds a valid value for the current output vector iff
// mark[i] == hiwater; bumping hiwater invalidates the whole array in O(1),
// so marks are never reset between vectors.
type sauna struct {
	work []byte
	mark []int64

	hiwater int64
}

// hiwaterWrap is the saturation point of the hi-watermark counter. Reaching
// it forces a one-time reset of the marks, once per ~2^62 uses.
const hiwaterWrap = int64(1) << 62

// reset prepares the sauna for a matrix with vlen inner indices and values
// of zsize bytes, growing the arrays if needed.
func (s *sauna) reset(vlen, zsize int) {
	need := vlen * zsize
	if cap(s.work) < need {
		s.work = make([]byte, need)
	}
	s.work = s.work[:need]
	if cap(s.mark) < vlen {
		// A fresh mark array starts at zero; hiwater restarts with it.
		s.mark = make([]int64, vlen)
		s.hiwater = 0
	}
	s.mark = s.mark[:vlen]
}

// bump starts a new output vector: all slots become empty. Returns the mark
// value that identifies occupied slots for this vector.
func (s *sauna) bump() int64 {
	if s.hiwater >= hiwaterWrap {
		clear(s.mark)
		s.hiwater = 0
	}
	s.hiwater++
	return s.hiwater
}

// bump2 starts a new output vector that needs two marker states (the masked
// scatter: admitted-but-empty and occupied). Returns base; base identifies
// admitted/rejected slots and base+1 occupied slots.
func (s *sauna) bump2() int64 {
	if s.hiwater >= hiwaterWrap {
		clear(s.mark)
		s.hiwater = 0
	}
	s.hiwater += 2
	return s.hiwater - 1
}

// saunaPool is a fixed pool of saunas shared by all operations of an
// engine. Acquisition blocks until one is free.
type saunaPool struct {
	ch chan *sauna
}

// Initialize sizes the pool to the engine parallelism target.
func (p *saunaPool) Initialize(maxParallelism int) {
	n := maxParallelism
	if n < 1 {
		n = 1
	}
	p.ch = make(chan *sauna, n)
	for j := 0; j < n; j++ {
		p.ch <- &sauna{}
	}
}

// acquire blocks until a sauna is free and returns it sized for vlen slots
// of zsize bytes.
func (p *saunaPool) acquire(vlen, zsize int) *sauna {
	s := <-p.ch
	s.reset(vlen, zsize)
	return s
}

// release returns the sauna to the pool.
func (p *saunaPool) release(s *sauna) {
	p.ch <- s
}
