package pixproc

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync/atomic"

	intColor "github.com/gogpu/pixproc/internal/color"
	intImage "github.com/gogpu/pixproc/internal/image"
)

// ErrEmptyPixmap is returned by Lock when the pixmap has no pixels.
var ErrEmptyPixmap = errors.New("pixproc: empty pixmap")

// Pixmap represents a rectangular buffer of non-premultiplied float colors.
//
// Pixmap implements [Buffer] and image.Image. Pixel storage is row-major,
// one RGBA per pixel, with no padding between rows.
type Pixmap struct {
	width  int
	height int
	data   []RGBA

	// locks counts accessors that have not been closed yet.
	locks atomic.Int32
}

// NewPixmap creates a new pixmap with the given dimensions.
// All pixels start as Transparent. Negative dimensions are treated as zero.
func NewPixmap(width, height int) *Pixmap {
	width = max(width, 0)
	height = max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]RGBA, width*height),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Rect returns the full extent of the pixmap as a Rect anchored at (0, 0).
func (p *Pixmap) Rect() Rect {
	return Rect{Width: p.width, Height: p.height}
}

// Data returns the raw pixel slice in row-major order.
func (p *Pixmap) Data() []RGBA {
	return p.data
}

// SetPixel sets the color of a single pixel.
// Coordinates outside the pixmap are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	p.data[y*p.width+x] = c
}

// GetPixel returns the color of a single pixel.
// Coordinates outside the pixmap return Transparent.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	return p.data[y*p.width+x]
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	for i := range p.data {
		p.data[i] = c
	}
}

// Clone returns a deep copy of the pixmap. Lock state is not copied.
func (p *Pixmap) Clone() *Pixmap {
	c := NewPixmap(p.width, p.height)
	copy(c.data, p.data)
	return c
}

// Locked reports whether any accessor obtained from Lock is still open.
func (p *Pixmap) Locked() bool {
	return p.locks.Load() > 0
}

// Lock returns an accessor over the pixmap's pixels.
// The accessor must be closed when the caller is done with it.
func (p *Pixmap) Lock() (PixelAccessor, error) {
	if p == nil || p.width == 0 || p.height == 0 {
		return nil, ErrEmptyPixmap
	}
	p.locks.Add(1)
	return &pixmapAccessor{
		owner:  p,
		data:   p.data,
		width:  p.width,
		height: p.height,
	}, nil
}

// pixmapAccessor is the PixelAccessor handed out by Pixmap.Lock.
// Indexing is unchecked beyond what the slice itself enforces.
type pixmapAccessor struct {
	owner  *Pixmap
	data   []RGBA
	width  int
	height int
	closed atomic.Bool
}

func (a *pixmapAccessor) Width() int  { return a.width }
func (a *pixmapAccessor) Height() int { return a.height }

func (a *pixmapAccessor) GetPixel(x, y int) RGBA {
	return a.data[y*a.width+x]
}

func (a *pixmapAccessor) SetPixel(x, y int, c RGBA) {
	a.data[y*a.width+x] = c
}

func (a *pixmapAccessor) Close() error {
	if a.closed.CompareAndSwap(false, true) {
		a.owner.locks.Add(-1)
	}
	return nil
}

// ToNRGBA converts the pixmap to an 8-bit image.NRGBA.
// Channels are clamped to [0, 1] and rounded.
func (p *Pixmap) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	for y := 0; y < p.height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < p.width; x++ {
			c := p.data[y*p.width+x]
			u := intColor.F32ToU8(intColor.ColorF32{
				R: float32(c.R),
				G: float32(c.G),
				B: float32(c.B),
				A: float32(c.A),
			})
			u.PutBytes(row[x*4:])
		}
	}
	return img
}

// FromImage creates a pixmap from an image.
// The image is converted to 8-bit non-premultiplied form first; the result
// is anchored at (0, 0) regardless of the source bounds.
func FromImage(img image.Image) *Pixmap {
	nrgba := intImage.ToNRGBA(img)
	bounds := nrgba.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())

	for y := 0; y < pm.height; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < pm.width; x++ {
			f := intColor.U8ToF32(intColor.FromBytes(row[x*4:]))
			pm.data[y*pm.width+x] = RGBA{
				R: float64(f.R),
				G: float64(f.G),
				B: float64(f.B),
				A: float64(f.A),
			}
		}
	}

	return pm
}

// LoadPixmap reads an image file into a new pixmap.
// PNG, JPEG, GIF, BMP, TIFF and WebP are recognized by content.
func LoadPixmap(path string) (*Pixmap, error) {
	img, _, err := intImage.Load(path)
	if err != nil {
		return nil, fmt.Errorf("pixproc: load %s: %w", path, err)
	}
	return FromImage(img), nil
}

// Save writes the pixmap to path. The codec is chosen from the file
// extension: .png, .jpg/.jpeg, .bmp or .tif/.tiff.
func (p *Pixmap) Save(path string) error {
	if err := intImage.Save(path, p.ToNRGBA()); err != nil {
		return fmt.Errorf("pixproc: save %s: %w", path, err)
	}
	return nil
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
