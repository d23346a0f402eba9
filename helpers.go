package graphblas

import "golang.org/x/exp/constraints"

// searchSorted finds needle in the ascending slice s, returning its position
// and whether it was found; when absent, the position is the insertion point.
func searchSorted[T constraints.Ordered](s []T, needle T) (int, bool) {
	lo, hi := 0, len(s)
	for lo < hi {
		mid := (lo + hi) / 2
		if s[mid] < needle {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < len(s) && s[lo] == needle
}

// cumulativeSum turns per-slot counts (len n+1, last slot ignored) into
// offsets in place: counts[k] becomes the sum of counts[0..k-1], and the
// total lands in counts[n].
func cumulativeSum(counts []int) {
	sum := 0
	for k := range counts {
		c := counts[k]
		counts[k] = sum
		sum += c
	}
}

// partitionRange splits n units of work into ntasks near-equal contiguous
// slices; task t covers [start, end).
func partitionRange(n, ntasks, task int) (start, end int) {
	quo, rem := n/ntasks, n%ntasks
	start = task*quo + min(task, rem)
	end = start + quo
	if task < rem {
		end++
	}
	return
}
