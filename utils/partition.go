package utils

import (
	"runtime"
	"sync"
)

// MinParallelItems is the item count below which ParallelFor runs inline
var MinParallelItems = 4096

// Partition splits [0, N) into Degree contiguous buckets whose sizes differ by at most one
type Partition struct {
	N       int
	Degree  int
	Buckets [][2]int // [begin, end) of each bucket
}

func NewPartition(degree, n int) (pt *Partition) {
	if degree < 1 {
		degree = 1
	}
	pt = &Partition{
		N:       n,
		Degree:  degree,
		Buckets: make([][2]int, degree),
	}
	for b := 0; b < degree; b++ {
		pt.Buckets[b] = pt.split(b)
	}
	return
}

func (pt *Partition) split(b int) (bucket [2]int) {
	var (
		size      = pt.N / pt.Degree
		remainder = pt.N % pt.Degree
		lead      int
		extra     int
	)
	// The first remainder buckets carry one extra item
	if b < remainder {
		lead, extra = b, 1
	} else {
		lead = remainder
	}
	bucket[0] = b*size + lead
	bucket[1] = bucket[0] + size + extra
	return
}

func (pt *Partition) Range(b int) (lo, hi int) {
	return pt.Buckets[b][0], pt.Buckets[b][1]
}

/*
ParallelFor calls fn once per non empty bucket of a partition of [0, n) across
the available CPUs and waits for all of them. Small n runs inline on the caller.
*/
func ParallelFor(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	np := runtime.GOMAXPROCS(0)
	if n < MinParallelItems || np == 1 {
		fn(0, n)
		return
	}
	var (
		pt = NewPartition(np, n)
		wg = sync.WaitGroup{}
	)
	for b := 0; b < pt.Degree; b++ {
		lo, hi := pt.Range(b)
		if lo == hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
