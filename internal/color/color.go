// Package color provides fixed-precision color types and conversions for pixproc.
package color

// ColorF32 represents a color with float32 components in [0,1].
// Components are non-premultiplied.
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 represents a color with uint8 components in [0,255].
// Components are non-premultiplied, matching image.NRGBA byte order.
type ColorU8 struct {
	R, G, B, A uint8
}
