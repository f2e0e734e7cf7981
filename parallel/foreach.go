// Package parallel contains the bounded worker-pool primitive used for
// the per-unit update loop of a training step.
package parallel

import "runtime"
import "sync"

import "github.com/klauspost/cpuid/v2"

// Workers returns the default worker count: the number of logical CPU
// cores as reported by cpuid, falling back to the Go runtime.
func Workers() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// ForEach executes a for loop over [0, length) with at most limit
// concurrent goroutines. The index range is split into contiguous
// chunks, one per goroutine; the body must not touch state owned by
// other indices.
func ForEach(length, limit int, body func(i int)) {
	if length <= 0 {
		return // No iterations to perform
	}
	if limit <= 0 {
		limit = 1
	}
	if limit > length {
		limit = length
	}
	if limit == 1 {
		for i := 0; i < length; i++ {
			body(i)
		}
		return
	}

	chunk := length / limit
	rest := length % limit

	var wg sync.WaitGroup
	wg.Add(limit)

	start := 0
	for w := 0; w < limit; w++ {
		end := start + chunk
		if w < rest {
			end++
		}
		go func(from, to int) {
			defer wg.Done()
			for i := from; i < to; i++ {
				body(i)
			}
		}(start, end)
		start = end
	}

	wg.Wait() // Wait for all goroutines to finish
}
