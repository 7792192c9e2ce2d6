package filter

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/pixproc"
)

// backgroundEpsilon is the alpha below which a pixel counts as fully
// transparent.
const backgroundEpsilon = 0.001

// Background sets the background color of an image.
//
// For each source pixel with alpha a:
//
//	a < 0.001        → the background color
//	0.001 <= a < 1   → halfway between the pixel and the background
//	a >= 1           → the pixel, unchanged
//
// The halfway blend is a fixed 50% lerp on all four channels, independent of
// how transparent the pixel is.
type Background struct {
	value pixproc.RGBA
}

// NewBackground creates a background filter for c.
// c is converted to non-premultiplied form once, at construction.
func NewBackground(c color.Color) *Background {
	return &Background{value: pixproc.NonPremultiplied(c)}
}

// Value returns the background color.
func (b *Background) Value() pixproc.RGBA {
	return b.value
}

// Composite returns the output color for one source color.
func (b *Background) Composite(c pixproc.RGBA) pixproc.RGBA {
	a := c.A

	if a < 1 && a > 0 {
		c = c.Lerp(b.value, .5)
	}

	// Runs after the blend, so alphas in (0, epsilon) also end up as the
	// background.
	if math.Abs(a) < backgroundEpsilon {
		c = b.value
	}

	return c
}

// Pixel reads (x, y) from src, composites it and writes the result to dst.
// It satisfies pixproc.PixelFunc.
func (b *Background) Pixel(src, dst pixproc.PixelAccessor, x, y int) error {
	dst.SetPixel(x, y, b.Composite(src.GetPixel(x, y)))
	return nil
}

// Apply runs the filter over rows [startY, endY) of sourceRect.
func (b *Background) Apply(ctx context.Context, e *pixproc.Engine, target, source pixproc.Buffer,
	targetRect, sourceRect pixproc.Rect, startY, endY int, onRowDone func()) error {
	return e.Process(ctx, target, source, targetRect, sourceRect, startY, endY, b.Pixel, onRowDone)
}

// ApplyBackground returns a copy of pm with c applied as background over the
// whole image. pm itself is not modified.
func ApplyBackground(ctx context.Context, e *pixproc.Engine, pm *pixproc.Pixmap, c color.Color,
	opts ...pixproc.RunOption) (*pixproc.Pixmap, error) {
	if pm == nil || pm.Width() == 0 || pm.Height() == 0 {
		return nil, fmt.Errorf("filter: background: %w", pixproc.ErrEmptyPixmap)
	}

	b := NewBackground(c)
	out := pm.Clone()
	r := pm.Rect()
	if err := e.Run(ctx, b, out, pm, r, r, opts...); err != nil {
		return nil, fmt.Errorf("filter: background: %w", err)
	}
	pixproc.Logger().Debug("filter: background applied", "size", r, "color", b.Value())
	return out, nil
}
