package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor_CoversEveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	n := 1000
	hits := make([]int32, n)
	For(n, cfg, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		require.Equal(t, int32(1), h, "index %d", i)
	}
}

func TestFor_Sequential(t *testing.T) {
	var calls [][2]int
	For(100, Sequential(), func(lo, hi int) {
		calls = append(calls, [2]int{lo, hi})
	})

	assert.Equal(t, [][2]int{{0, 100}}, calls)
}

func TestFor_SmallWorkStaysOnCaller(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 16}

	var calls int
	For(20, cfg, func(lo, hi int) {
		calls++
		assert.Equal(t, 0, lo)
		assert.Equal(t, 20, hi)
	})
	assert.Equal(t, 1, calls)
}

func TestFor_Chunks(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	var mu sync.Mutex
	total := 0
	chunks := 0
	For(10, cfg, func(lo, hi int) {
		mu.Lock()
		defer mu.Unlock()
		total += hi - lo
		chunks++
	})

	assert.Equal(t, 10, total)
	assert.Equal(t, 4, chunks) // ceil(10/4) = 3 per chunk -> 3,3,3,1
}

func TestFor_Empty(t *testing.T) {
	called := false
	For(0, DefaultConfig(), func(_, _ int) { called = true })
	assert.False(t, called)
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, cfg, func(lo, hi int) {
				local := int64(0)
				for j := lo; j < hi; j++ {
					local += int64(j)
				}
				atomic.AddInt64(&sum, local)
			})
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, Sequential(), func(lo, hi int) {
				for j := lo; j < hi; j++ {
					sum += int64(j)
				}
			})
		}
	})
}
