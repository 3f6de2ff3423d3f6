package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunks(t *testing.T) {
	tests := []struct {
		name    string
		items   int
		workers int
		want    []Range
	}{
		{"even", 8, 4, []Range{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"ceil", 10, 4, []Range{{0, 3}, {3, 6}, {6, 9}, {9, 10}}},
		{"more workers than items", 2, 8, []Range{{0, 1}, {1, 2}}},
		{"zero workers", 3, 0, []Range{{0, 3}}},
		{"no items", 0, 4, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chunks(tt.items, tt.workers))
		})
	}
}

func TestForEachChunkCoversEveryIndexOnce(t *testing.T) {
	for _, threshold := range []int{0, 10, 1 << 20} {
		const items = 5000
		counts := make([]int32, items)
		n := ForEachChunk(items, threshold, func(_, start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&counts[i], 1)
			}
		})
		assert.Equal(t, NumChunks(items, threshold), n)
		for i, c := range counts {
			if c != 1 {
				t.Fatalf("threshold %d: index %d visited %d times", threshold, i, c)
			}
		}
	}
}

func TestForEachChunkBelowThresholdIsSingleChunk(t *testing.T) {
	var calls int
	n := ForEachChunk(100, 1000, func(chunk, start, end int) {
		calls++
		assert.Equal(t, 0, chunk)
		assert.Equal(t, 0, start)
		assert.Equal(t, 100, end)
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, ForEachChunk(0, 0, func(int, int, int) { t.Fatal("unexpected call") }))
}

func TestParallelizeWithThreshold(t *testing.T) {
	var sum int64
	ParallelizeWithThreshold(1000, 10, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt64(&sum, int64(i))
		}
	})
	assert.Equal(t, int64(999*1000/2), sum)
}
