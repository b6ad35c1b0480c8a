package core

import (
	"runtime"
	"sync"

	"raystein/internal/mathutil"
)

// ParallelMap applies fn to every item and returns the results in input
// order. Each goroutine writes a disjoint range of the result slice.
func ParallelMap[T any, R any](items []T, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}

	numWorkers := mathutil.IntMin(runtime.NumCPU(), len(items))
	chunkSize := mathutil.IntMax(1, len(items)/numWorkers)
	results := make([]R, len(items))
	var wg sync.WaitGroup

	for i := 0; i < len(items); i += chunkSize {
		start, end := i, mathutil.IntMin(i+chunkSize, len(items))

		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := start; j < end; j++ {
				results[j] = fn(items[j])
			}
		}()
	}

	wg.Wait()
	return results
}
