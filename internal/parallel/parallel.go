// Package parallel provides row-partitioned execution for order-independent matrix kernels.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how row kernels are fanned out.
//
// The zero value runs everything on the calling goroutine.
type Config struct {
	Enabled      bool // Fan out at all
	NumWorkers   int  // Upper bound on goroutines per call
	MinChunkSize int  // Rows below which a call stays sequential
}

// DefaultConfig uses one worker per CPU and chunks of at least 64 rows.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// Sequential returns a config that always runs on the calling goroutine.
func Sequential() Config {
	return Config{}
}

// Range executes f over contiguous chunks [lo, hi) covering [0, n).
//
// Chunks never overlap, so f may write to rows lo..hi-1 of a shared matrix
// without synchronization. Falls back to a single f(0, n) call when
// parallelism is disabled or n is below MinChunkSize.
func Range(n int, f func(lo, hi int), cfg Config) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinChunkSize {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f(lo, hi)
		}(start, end)
	}
	wg.Wait()
}

// For executes f(i) for i in [0, n), partitioned as Range does.
func For(n int, f func(i int), cfg Config) {
	Range(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(i)
		}
	}, cfg)
}
