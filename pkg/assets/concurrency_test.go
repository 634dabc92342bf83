package assets

import (
	"sync/atomic"
	"testing"
)

func TestRunParallelInvokesEveryIndexExactlyOnce(t *testing.T) {
	const n = 50
	var seen [n]int32
	runParallel(n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, count := range seen {
		if count != 1 {
			t.Errorf("index %d invoked %d times, want 1", i, count)
		}
	}
}

func TestRunParallelZeroIsNoOp(t *testing.T) {
	called := false
	runParallel(0, func(i int) { called = true })
	if called {
		t.Error("expected fn not to be called for n == 0")
	}
}

func TestRunParallelRespectsConcurrencyBound(t *testing.T) {
	const n = 100
	var current, max int32
	runParallel(n, func(i int) {
		c := atomic.AddInt32(&current, 1)
		for {
			m := atomic.LoadInt32(&max)
			if c <= m || atomic.CompareAndSwapInt32(&max, m, c) {
				break
			}
		}
		atomic.AddInt32(&current, -1)
	})
	if max > defaultConcurrency {
		t.Errorf("observed concurrency %d exceeds bound %d", max, defaultConcurrency)
	}
}
