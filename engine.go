package pixproc

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/pixproc/internal/parallel"
)

var (
	// ErrNilPixelFunc is returned by Process when no pixel function is given.
	ErrNilPixelFunc = errors.New("pixproc: nil pixel function")

	// ErrNilBuffer is returned, wrapped, when Process is given a nil Buffer.
	ErrNilBuffer = errors.New("pixproc: nil buffer")
)

// PixelFunc transforms one pixel. It reads from src and writes to dst at
// (x, y) itself; the engine only guarantees that (x, y) is inside both
// accessors' extents. PixelFunc is called concurrently for different rows.
type PixelFunc func(src, dst PixelAccessor, x, y int) error

// Engine runs pixel functions over row ranges on a fixed worker pool.
//
// An Engine must be created with NewEngine; a zero Engine behaves like a
// closed one. An Engine is safe for concurrent use, including Close racing
// Process. Close releases its workers.
type Engine struct {
	pool *parallel.WorkerPool
}

// NewEngine creates an engine and starts its workers.
func NewEngine(opts ...EngineOption) *Engine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{pool: parallel.NewWorkerPool(o.workers)}
}

// Workers returns the number of worker goroutines.
func (e *Engine) Workers() int {
	if e.pool == nil {
		return 0
	}
	return e.pool.Workers()
}

// Close stops the engine's workers. Close is safe to call multiple times.
// Process calls made after Close fail with parallel.ErrPoolClosed.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

// Process applies fn to every pixel of sourceRect whose row lies in
// [startY, endY), then calls onRowDone once for each such row.
//
// The source accessor is acquired first, then the target accessor; both are
// released before Process returns, whatever the outcome. A lock failure is
// returned before any pixel is visited.
//
// Rows are limited to [sourceRect.Y, sourceRect.Bottom()) and columns to
// [sourceRect.X, sourceRect.Right()), both further clipped to the extents of
// the source and the target. Nothing outside that span is read or written.
// Within a row, columns are visited left to right. onRowDone fires after the
// row's last column, even when the column span is empty, and may be called
// from several goroutines at once. A nil onRowDone is allowed.
//
// targetRect is accepted for callers that pass both regions; it does not
// take part in clipping.
//
// The first error from fn, a panic in fn, or ctx cancellation stops further
// rows from starting and is returned once all in-flight rows finish. Rows
// already written are kept.
func (e *Engine) Process(ctx context.Context, target, source Buffer, targetRect, sourceRect Rect,
	startY, endY int, fn PixelFunc, onRowDone func()) (err error) {
	if fn == nil {
		return ErrNilPixelFunc
	}
	if e.pool == nil || !e.pool.IsRunning() {
		return parallel.ErrPoolClosed
	}
	if source == nil {
		return fmt.Errorf("pixproc: lock source: %w", ErrNilBuffer)
	}
	if target == nil {
		return fmt.Errorf("pixproc: lock target: %w", ErrNilBuffer)
	}

	src, err := source.Lock()
	if err != nil {
		return fmt.Errorf("pixproc: lock source: %w", err)
	}
	defer release(src, "source", &err)

	dst, err := target.Lock()
	if err != nil {
		return fmt.Errorf("pixproc: lock target: %w", err)
	}
	defer release(dst, "target", &err)

	y0, y1, x0, x1 := clipSpan(sourceRect, src, dst)
	y0 = max(y0, startY)
	y1 = min(y1, endY)

	Logger().Debug("pixproc: process",
		"rows", [2]int{y0, y1},
		"cols", [2]int{x0, x1},
		"source", sourceRect,
		"target", targetRect,
		"workers", e.pool.Workers(),
		"queued", e.pool.QueuedWork())

	if y1 <= y0 {
		return nil
	}

	return e.pool.ForRows(ctx, y0, y1, func(y int) error {
		for x := x0; x < x1; x++ {
			if err := fn(src, dst, x, y); err != nil {
				return err
			}
		}
		if onRowDone != nil {
			onRowDone()
		}
		return nil
	})
}

// clipSpan returns the half-open row range [y0, y1) and column range
// [x0, x1) of r that are valid in both accessors. The column range may be
// empty while the row range is not.
func clipSpan(r Rect, src, dst PixelAccessor) (y0, y1, x0, x1 int) {
	y0 = max(r.Y, 0)
	y1 = min(r.Bottom(), src.Height(), dst.Height())
	x0 = max(r.X, 0)
	x1 = min(r.Right(), src.Width(), dst.Width())
	return y0, y1, x0, x1
}

// release closes an accessor, keeping the first error seen by the caller.
func release(a PixelAccessor, name string, err *error) {
	cerr := a.Close()
	if cerr == nil {
		return
	}
	Logger().Warn("pixproc: release accessor", "buffer", name, "err", cerr)
	if *err == nil {
		*err = fmt.Errorf("pixproc: release %s: %w", name, cerr)
	}
}
