// Package parallel splits index ranges across goroutines.
//
// The estimator uses it to fill design matrices and batch predictions once the
// sample count passes a threshold. Each worker owns a disjoint [start, end)
// range, so results are identical to a sequential loop.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides items across runtime.NumCPU() workers and runs fn on
// each contiguous [start, end) range.
func Parallelize(items int, fn func(start, end int)) {
	ParallelizeN(items, runtime.NumCPU(), fn)
}

// ParallelizeN is Parallelize with an explicit worker count.
func ParallelizeN(items, workers int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	if workers > items {
		workers = items // No need for more workers than items
	}
	if workers == 1 {
		fn(0, items)
		return
	}

	// ceiling division
	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially over the whole range when
// items <= threshold, and in parallel otherwise. A threshold < 0 forces
// sequential execution.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if threshold < 0 || items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}
