// Package source contains one adapter per external content source.
// Every adapter implements trend.Source and tolerates partial upstream
// failure: a sub-request error is logged and contributes zero items.
package source

import (
	"context"
	"sync"
	"time"
)

// forEachBatch runs fn for indexes 0..n-1 in concurrent batches of
// batchSize, pausing delay between batches. The pause is the only
// deliberate serialization point and exists purely to stay under
// upstream rate limits. Remaining batches are skipped once ctx is done.
func forEachBatch(ctx context.Context, n, batchSize int, delay time.Duration, fn func(i int)) {
	if batchSize <= 0 {
		batchSize = 1
	}

	for start := 0; start < n; start += batchSize {
		if ctx.Err() != nil {
			return
		}

		end := start + batchSize
		if end > n {
			end = n
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				fn(i)
			}(i)
		}
		wg.Wait()

		if end < n && delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}
	}
}
