package graphblas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaunaHiWatermark(t *testing.T) {
	s := &sauna{}
	s.reset(8, 4)
	base := s.bump2()
	s.mark[3] = base + 1
	// Bumping invalidates every slot without touching the mark array.
	next := s.bump2()
	assert.Greater(t, next, base+1)
	assert.Equal(t, base+1, s.mark[3], "marks are never reset")
}

func TestSaunaWrapResetsMarks(t *testing.T) {
	s := &sauna{}
	s.reset(4, 1)
	s.hiwater = hiwaterWrap
	s.mark[0] = hiwaterWrap
	base := s.bump2()
	assert.Equal(t, int64(1), base)
	assert.Equal(t, int64(0), s.mark[0], "saturation clears the marks")
}

func TestSaunaPoolBlocksAndReleases(t *testing.T) {
	var p saunaPool
	p.Initialize(2)
	s1 := p.acquire(4, 8)
	s2 := p.acquire(4, 8)
	require.NotNil(t, s1)
	require.NotNil(t, s2)

	done := make(chan *sauna)
	go func() {
		done <- p.acquire(16, 8) // blocks until a release
	}()
	p.release(s1)
	s3 := <-done
	require.NotNil(t, s3)
	assert.GreaterOrEqual(t, len(s3.work), 16*8)
	p.release(s2)
	p.release(s3)
}

func TestMinHeapOrdering(t *testing.T) {
	h := minHeap{{index: 5, list: 0}, {index: 1, list: 1}, {index: 3, list: 2}, {index: 1, list: 0}}
	h.heapify()
	// Equal indices pop left list first.
	assert.Equal(t, heapElem{index: 1, list: 0}, h[0])
	h.popHead()
	assert.Equal(t, heapElem{index: 1, list: 1}, h[0])
	h[0].index = 9
	h.fix(0)
	assert.Equal(t, 3, h[0].index)
	h.push(heapElem{index: 0, list: 7})
	assert.Equal(t, 0, h[0].index)
}
