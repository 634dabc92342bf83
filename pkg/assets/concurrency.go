package assets

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// defaultConcurrency bounds the number of extractor/parser tasks running at
// once. It's a fixed size rather than GOMAXPROCS-derived because the work
// is I/O-bound (small-file reads across a large asset tree), matching
// spec.md §5's note that "the thread pool is sized to cover I/O latency."
const defaultConcurrency = 16

// runParallel invokes fn(i) for every i in [0,n) with bounded concurrency,
// blocking until every invocation has returned. This is the bulk-synchronous
// building block spec.md §5 calls for: a round of uniform, independent
// per-item work with no ordering guarantees between tasks and a single
// barrier before the caller proceeds (grounded on the semaphore+WaitGroup
// pattern of standardbeagle-lci's relationship analyzer, expressed with
// errgroup instead of a raw WaitGroup).
func runParallel(n int, fn func(i int)) {
	if n == 0 {
		return
	}

	limit := defaultConcurrency
	if n < limit {
		limit = n
	}
	semaphore := make(chan struct{}, limit)

	group, _ := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		index := i
		semaphore <- struct{}{}
		group.Go(func() error {
			defer func() { <-semaphore }()
			fn(index)
			return nil
		})
	}
	_ = group.Wait()
}
