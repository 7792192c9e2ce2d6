package pixproc

import (
	"context"
	"fmt"

	"github.com/gogpu/pixproc/internal/parallel"
)

// Filter is a transform that processes a row range through an Engine.
type Filter interface {
	// Apply processes rows [startY, endY) of sourceRect from source into
	// target, calling onRowDone once per processed row.
	Apply(ctx context.Context, e *Engine, target, source Buffer, targetRect, sourceRect Rect,
		startY, endY int, onRowDone func()) error
}

// Run applies f to every row of sourceRect that lies inside both buffers.
//
// The buffers are locked once up front to read their extents, so a lock
// failure is returned before f is called. With WithBandHeight the clipped
// rows are tiled into consecutive bands and f is applied once per band; the
// output is the same as a single call. Progress handlers registered with
// WithProgress see one update per processed row, with TotalRows set to the
// number of clipped rows, so the last update reports 100%.
func (e *Engine) Run(ctx context.Context, f Filter, target, source Buffer, targetRect, sourceRect Rect,
	opts ...RunOption) error {
	o := defaultRunOptions()
	for _, opt := range opts {
		opt(&o)
	}

	startY, endY, err := rowSpan(target, source, sourceRect)
	if err != nil {
		return err
	}
	reporter := NewProgressReporter(max(endY-startY, 0), o.progress)

	for _, b := range parallel.SplitHeight(startY, endY, o.bandHeight) {
		if err := f.Apply(ctx, e, target, source, targetRect, sourceRect, b.Y0, b.Y1, reporter.RowDone); err != nil {
			return err
		}
	}

	Logger().Debug("pixproc: run complete", "rows", reporter.Rows(), "total", reporter.Total())
	return nil
}

// rowSpan returns the rows of r that Process would visit for target and
// source, locking each buffer briefly to read its extent.
func rowSpan(target, source Buffer, r Rect) (y0, y1 int, err error) {
	if source == nil {
		return 0, 0, fmt.Errorf("pixproc: lock source: %w", ErrNilBuffer)
	}
	if target == nil {
		return 0, 0, fmt.Errorf("pixproc: lock target: %w", ErrNilBuffer)
	}

	src, err := source.Lock()
	if err != nil {
		return 0, 0, fmt.Errorf("pixproc: lock source: %w", err)
	}
	defer release(src, "source", &err)

	dst, err := target.Lock()
	if err != nil {
		return 0, 0, fmt.Errorf("pixproc: lock target: %w", err)
	}
	defer release(dst, "target", &err)

	y0, y1, _, _ = clipSpan(r, src, dst)
	return y0, y1, nil
}

// FilterFunc adapts a PixelFunc to the Filter interface.
type FilterFunc PixelFunc

// Apply runs the pixel function through e.Process.
func (f FilterFunc) Apply(ctx context.Context, e *Engine, target, source Buffer, targetRect, sourceRect Rect,
	startY, endY int, onRowDone func()) error {
	return e.Process(ctx, target, source, targetRect, sourceRect, startY, endY, PixelFunc(f), onRowDone)
}
