package pixproc

// PixelAccessor is a scoped view over a pixel buffer.
//
// An accessor is obtained from [Buffer.Lock] immediately before a processing
// pass and must be closed when the pass ends, on every exit path. Reading or
// writing outside [0, Width()) x [0, Height()) is undefined; callers are
// responsible for clipping.
//
// GetPixel and SetPixel may be called from several goroutines at once as long
// as no two goroutines touch the same pixel.
type PixelAccessor interface {
	// Width returns the width of the underlying buffer.
	Width() int

	// Height returns the height of the underlying buffer.
	Height() int

	// GetPixel returns the color at (x, y).
	GetPixel(x, y int) RGBA

	// SetPixel stores c at (x, y).
	SetPixel(x, y int, c RGBA)

	// Close releases the accessor. Calling Close more than once is a no-op.
	Close() error
}

// Buffer is a pixel store that can produce a PixelAccessor over itself.
// The engine never allocates or resizes a Buffer.
type Buffer interface {
	Lock() (PixelAccessor, error)
}
