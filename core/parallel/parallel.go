// Package parallel splits index ranges across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// Range is a half-open index range [Start, End).
type Range struct {
	Start, End int
}

// Chunks divides [0, items) into at most workers contiguous, non-empty
// ranges of nearly equal size (ceiling division), in index order.
func Chunks(items, workers int) []Range {
	if items <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > items {
		workers = items
	}
	chunkSize := (items + workers - 1) / workers

	ranges := make([]Range, 0, workers)
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges
}

// ForEachChunk runs fn once per chunk of [0, items). Above threshold the
// chunks are split by runtime.NumCPU() and run concurrently; otherwise fn
// is called once with chunk 0 covering everything. It returns the number
// of chunks so callers can allocate one partial result per chunk and merge
// them in chunk order.
func ForEachChunk(items, threshold int, fn func(chunk, start, end int)) int {
	if items <= 0 {
		return 0
	}
	if items <= threshold {
		fn(0, 0, items)
		return 1
	}

	ranges := Chunks(items, runtime.NumCPU())
	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(chunk int, r Range) {
			defer wg.Done()
			fn(chunk, r.Start, r.End)
		}(i, r)
	}
	wg.Wait()
	return len(ranges)
}

// NumChunks reports how many chunks ForEachChunk will use for items.
func NumChunks(items, threshold int) int {
	if items <= 0 {
		return 0
	}
	if items <= threshold {
		return 1
	}
	return len(Chunks(items, runtime.NumCPU()))
}

// ParallelizeWithThreshold performs parallelization only when the number of
// items exceeds the threshold. Below it fn(0, items) runs on the caller's
// goroutine.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	ForEachChunk(items, threshold, func(_, start, end int) {
		fn(start, end)
	})
}
