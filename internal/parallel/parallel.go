// Package parallel splits independent index ranges across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Upper bound on goroutines; <= 0 means runtime.NumCPU().
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// Sequential returns a config that always runs on the calling goroutine.
func Sequential() Config {
	return Config{Enabled: false}
}

// chunkSize returns how many items each goroutine receives for n items,
// or n when the work should stay on the calling goroutine.
func (c Config) chunkSize(n int) int {
	workers := c.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	minChunk := max(c.MinChunkSize, 1)
	if !c.Enabled || workers < 2 || n < 2*minChunk {
		return n
	}
	return max((n+workers-1)/workers, minChunk)
}

// For calls f with disjoint half-open ranges [lo, hi) that together cover
// [0, n). Each range is handled by at most one goroutine and ranges never
// overlap, so f may write to per-index output regions without locking.
// For returns after every call to f has returned.
func For(n int, cfg Config, f func(lo, hi int)) {
	if n <= 0 {
		return
	}
	chunk := cfg.chunkSize(n)
	if chunk >= n {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
