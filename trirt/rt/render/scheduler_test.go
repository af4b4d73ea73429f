package render

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		n, workers int
		expected   []span
	}{
		{10, 1, []span{{0, 10}}},
		{10, 2, []span{{0, 5}, {5, 10}}},
		{10, 3, []span{{0, 3}, {3, 6}, {6, 10}}},
		{7, 4, []span{{0, 1}, {1, 2}, {2, 3}, {3, 7}}},
		{3, 4, []span{{0, 0}, {0, 0}, {0, 0}, {0, 3}}},
	}

	for _, tc := range tests {
		got := partition(tc.n, tc.workers)
		assert.Equal(t, tc.expected, got, "n=%d workers=%d", tc.n, tc.workers)
	}
}

func TestCursorPacking(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {1, 2}, {123456, 7654321}, {1 << 30, 1<<30 + 5}} {
		s, e := unpack(pack(c[0], c[1]))
		assert.Equal(t, c[0], s)
		assert.Equal(t, c[1], e)
	}
}

func runCounted(t *testing.T, n, workers int, stealing bool, slow func(idx int) bool) (*schedule, []int32) {
	t.Helper()
	counts := make([]atomic.Int32, n)
	s := newSchedule(partition(n, workers), stealing)
	s.run(func(_ int, idx int) {
		if slow != nil && slow(idx) {
			time.Sleep(200 * time.Microsecond)
		}
		counts[idx].Add(1)
	})

	out := make([]int32, n)
	for i := range counts {
		out[i] = counts[i].Load()
	}
	return s, out
}

func TestScheduleEveryIndexOnce(t *testing.T) {
	for _, stealing := range []bool{false, true} {
		for _, workers := range []int{1, 2, 3, 8} {
			for _, n := range []int{1, 17, 1000} {
				t.Run(fmt.Sprintf("steal=%v/w=%d/n=%d", stealing, workers, n), func(t *testing.T) {
					_, counts := runCounted(t, n, workers, stealing, nil)
					for i, c := range counts {
						require.Equal(t, int32(1), c, "index %d", i)
					}
				})
			}
		}
	}
}

func TestScheduleStealsFromSlowWorker(t *testing.T) {
	const n = 400
	// all of the first worker's pixels are slow
	s, counts := runCounted(t, n, 4, true, func(idx int) bool { return idx < n/4 })

	for i, c := range counts {
		require.Equal(t, int32(1), c, "index %d", i)
	}
	t.Logf("steals: %d", s.steals.Load())
	assert.Greater(t, s.steals.Load(), int64(0))

	for i := range s.cursors {
		start, end := unpack(s.cursors[i].Load())
		assert.GreaterOrEqual(t, start, end, "cursor %d not drained", i)
	}
}

func TestScheduleWithoutStealingNeverSteals(t *testing.T) {
	s, _ := runCounted(t, 200, 4, false, func(idx int) bool { return idx < 20 })
	assert.Equal(t, int64(0), s.steals.Load())
}
