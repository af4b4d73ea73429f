package render

import (
	"sync"
	"sync/atomic"
)

type span struct {
	start, end int
}

// partition splits [0,n) into workers contiguous spans of n/workers pixels.
// The remainder goes to the last span.
func partition(n, workers int) []span {
	if workers < 1 {
		workers = 1
	}
	size := n / workers
	spans := make([]span, workers)
	for i := range spans {
		spans[i] = span{start: i * size, end: (i + 1) * size}
	}
	spans[workers-1].end = n
	return spans
}

// cursor is a worker's remaining [start,end) range packed into one word:
// start in the high 32 bits, end in the low 32. One cache line each.
type cursor struct {
	atomic.Uint64
	_ [56]byte
}

func pack(start, end int) uint64 {
	return uint64(uint32(start))<<32 | uint64(uint32(end))
}

func unpack(v uint64) (int, int) {
	return int(v >> 32), int(uint32(v))
}

// schedule hands out pixel indices. Owners take pixels from the front of
// their cursor; thieves cut the back half off the fullest other cursor.
// Every change is a CAS on the cursor word, so a pixel is claimed once.
type schedule struct {
	cursors  []cursor
	stealing bool
	steals   atomic.Int64
}

func newSchedule(spans []span, stealing bool) *schedule {
	s := &schedule{
		cursors:  make([]cursor, len(spans)),
		stealing: stealing,
	}
	for i, sp := range spans {
		s.cursors[i].Store(pack(sp.start, sp.end))
	}
	return s
}

// next claims the next pixel of worker w, stealing more work once its own
// range is empty. The bool is false when no work is left anywhere.
func (s *schedule) next(w int) (int, bool) {
	for {
		if idx, ok := s.claim(w); ok {
			return idx, true
		}
		if !s.stealing || !s.steal(w) {
			return 0, false
		}
	}
}

func (s *schedule) claim(w int) (int, bool) {
	c := &s.cursors[w]
	for {
		v := c.Load()
		start, end := unpack(v)
		if start >= end {
			return 0, false
		}
		if c.CompareAndSwap(v, pack(start+1, end)) {
			return start, true
		}
	}
}

// steal moves the back half of the largest remaining range into w's cursor.
// w's own cursor must be empty; nobody else writes to an empty cursor.
func (s *schedule) steal(w int) bool {
	for {
		victim, remaining := -1, 0
		var seen uint64
		for i := range s.cursors {
			if i == w {
				continue
			}
			v := s.cursors[i].Load()
			start, end := unpack(v)
			if end-start > remaining {
				victim, remaining, seen = i, end-start, v
			}
		}
		if victim < 0 {
			return false
		}

		start, end := unpack(seen)
		mid := start + (end-start)/2
		if s.cursors[victim].CompareAndSwap(seen, pack(start, mid)) {
			s.cursors[w].Store(pack(mid, end))
			s.steals.Add(1)
			return true
		}
		// the victim moved on; look again
	}
}

// run executes work for every pixel. Goroutines take all spans but the last,
// the calling goroutine takes the last one.
func (s *schedule) run(work func(worker, idx int)) {
	loop := func(w int) {
		for {
			idx, ok := s.next(w)
			if !ok {
				return
			}
			work(w, idx)
		}
	}

	var wg sync.WaitGroup
	last := len(s.cursors) - 1
	for w := 0; w < last; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			loop(w)
		}(w)
	}
	loop(last)
	wg.Wait()
}
