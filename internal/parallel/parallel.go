// Package parallel runs elementwise loops across goroutines.
//
// The vector field uses it for unary kernels. Short inputs run sequentially.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum elements per goroutine.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// For executes f(i) for i in [0, n), splitting the range into chunks of at
// least cfg.MinChunkSize. Falls back to a plain loop when parallelism is
// disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Map stores fn(src[i]) into dst[i]. dst must be at least as long as src.
func Map(dst, src []float64, fn func(float64) float64, cfg Config) {
	if len(dst) < len(src) {
		panic("parallel: dst shorter than src")
	}
	For(len(src), func(i int) {
		dst[i] = fn(src[i])
	}, cfg)
}
