package poster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Surface is a rectangular RGBA8 pixel buffer.
//
// Texels are stored non-premultiplied, 4 bytes per pixel, row-major with no
// padding, so len(Data()) == Width()*Height()*4 at all times. A Surface is
// never resized in place; callers replace it wholesale.
type Surface struct {
	width  int
	height int
	data   []uint8
}

// NewSurface creates a fully transparent surface with the given dimensions.
// It fails with ErrInvalidDimension if either dimension is not positive.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: surface %dx%d", ErrInvalidDimension, width, height)
	}
	return &Surface{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}, nil
}

// SurfaceFromImage creates a surface holding a copy of img.
func SurfaceFromImage(img image.Image) (*Surface, error) {
	b := img.Bounds()
	s, err := NewSurface(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	draw.Draw(s.NRGBA(), s.Bounds(), img, b.Min, draw.Src)
	return s, nil
}

// Width returns the width of the surface.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the height of the surface.
func (s *Surface) Height() int {
	return s.height
}

// Data returns the raw pixel data (non-premultiplied RGBA).
func (s *Surface) Data() []uint8 {
	return s.data
}

// SetPixel sets the color of a single pixel.
// Coordinates outside the surface are ignored.
func (s *Surface) SetPixel(x, y int, c color.NRGBA) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := (y*s.width + x) * 4
	s.data[i+0] = c.R
	s.data[i+1] = c.G
	s.data[i+2] = c.B
	s.data[i+3] = c.A
}

// GetPixel returns the color of a single pixel.
// Coordinates outside the surface return transparent black.
func (s *Surface) GetPixel(x, y int) color.NRGBA {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return color.NRGBA{}
	}
	i := (y*s.width + x) * 4
	return color.NRGBA{R: s.data[i+0], G: s.data[i+1], B: s.data[i+2], A: s.data[i+3]}
}

// Clear resets every texel to zero (transparent black).
func (s *Surface) Clear() {
	clear(s.data)
}

// Fill sets every texel to c.
func (s *Surface) Fill(c color.NRGBA) {
	for i := 0; i < len(s.data); i += 4 {
		s.data[i+0] = c.R
		s.data[i+1] = c.G
		s.data[i+2] = c.B
		s.data[i+3] = c.A
	}
}

// Clone returns a deep copy of the surface.
func (s *Surface) Clone() *Surface {
	clone := &Surface{
		width:  s.width,
		height: s.height,
		data:   make([]uint8, len(s.data)),
	}
	copy(clone.data, s.data)
	return clone
}

// CopyFrom overwrites s with the contents of src.
// Both surfaces must have the same dimensions.
func (s *Surface) CopyFrom(src *Surface) error {
	if src.width != s.width || src.height != s.height {
		return fmt.Errorf("%w: copy %dx%d into %dx%d",
			ErrInvalidDimension, src.width, src.height, s.width, s.height)
	}
	copy(s.data, src.data)
	return nil
}

// Equal reports whether two surfaces have identical dimensions and bytes.
// A nil surface equals nothing.
func (s *Surface) Equal(o *Surface) bool {
	if o == nil {
		return false
	}
	return s.width == o.width && s.height == o.height && bytes.Equal(s.data, o.data)
}

// IsZero reports whether every texel's raw 32-bit value is zero,
// i.e. the surface has never been painted since it was cleared.
func (s *Surface) IsZero() bool {
	for _, v := range s.data {
		if v != 0 {
			return false
		}
	}
	return true
}

// NRGBA returns an *image.NRGBA view that shares the surface's buffer.
// Writes through the view modify the surface.
func (s *Surface) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    s.data,
		Stride: s.width * 4,
		Rect:   image.Rect(0, 0, s.width, s.height),
	}
}

// At implements the image.Image interface.
func (s *Surface) At(x, y int) color.Color {
	return s.GetPixel(x, y)
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.NRGBAModel
}
