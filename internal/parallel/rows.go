package parallel

import (
	"context"
	"sync/atomic"
)

// ForRows calls fn once for every row in [start, end) and waits for all calls
// to finish.
//
// Rows are grouped into contiguous bands (see SplitRows); each band is one
// work item, and rows inside a band run top to bottom on the goroutine that
// picked the band up. Bands may finish in any order.
//
// After the first error, whether returned by fn, recovered from a panic, or
// reported by ctx, no new row is started. Rows already in flight complete.
// The first error is returned.
func (p *WorkerPool) ForRows(ctx context.Context, start, end int, fn func(y int) error) error {
	bands := SplitRows(start, end, p.workers*BandsPerWorker)
	if len(bands) == 0 {
		return nil
	}

	var failed atomic.Bool
	work := make([]func() error, len(bands))
	for i, b := range bands {
		b := b
		work[i] = func() error {
			defer func() {
				if r := recover(); r != nil {
					failed.Store(true)
					panic(r)
				}
			}()
			for y := b.Y0; y < b.Y1; y++ {
				if failed.Load() {
					return nil
				}
				if err := ctx.Err(); err != nil {
					failed.Store(true)
					return err
				}
				if err := fn(y); err != nil {
					failed.Store(true)
					return err
				}
			}
			return nil
		}
	}

	return p.ExecuteAll(work)
}
