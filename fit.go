package poster

import (
	"fmt"
	"math"
)

// FitRect is the rectangle an image occupies when fitted into a container
// without cropping. Offsets center the rectangle inside the container.
type FitRect struct {
	Width, Height    float64
	OffsetX, OffsetY float64
}

// Fit computes the largest rectangle with the image's aspect ratio that fits
// entirely inside the container (letterbox or pillarbox).
//
// If the image is relatively wider than the container it is constrained by
// width, otherwise by height. All four dimensions must be positive; otherwise
// Fit fails with ErrInvalidDimension.
func Fit(containerW, containerH, imageW, imageH float64) (FitRect, error) {
	if !(containerW > 0) || !(containerH > 0) || !(imageW > 0) || !(imageH > 0) {
		return FitRect{}, fmt.Errorf("%w: fit image %gx%g into container %gx%g",
			ErrInvalidDimension, imageW, imageH, containerW, containerH)
	}

	imageAspect := imageW / imageH
	containerAspect := containerW / containerH

	var r FitRect
	if imageAspect > containerAspect {
		r.Width = containerW
		r.Height = containerW / imageAspect
	} else {
		r.Height = containerH
		r.Width = containerH * imageAspect
	}
	r.OffsetX = (containerW - r.Width) / 2
	r.OffsetY = (containerH - r.Height) / 2
	return r, nil
}

// PixelSize returns the integer surface size for the rectangle.
// Fractional sizes are truncated, and each dimension is at least 1.
func (r FitRect) PixelSize() (width, height int) {
	return max(1, int(math.Floor(r.Width))), max(1, int(math.Floor(r.Height)))
}

// Contains reports whether the container-space point p falls inside the rectangle.
func (r FitRect) Contains(p Point) bool {
	return p.X >= r.OffsetX && p.X < r.OffsetX+r.Width &&
		p.Y >= r.OffsetY && p.Y < r.OffsetY+r.Height
}

// ToLocal converts a container-space point to rectangle-local coordinates.
func (r FitRect) ToLocal(p Point) Point {
	return Pt(p.X-r.OffsetX, p.Y-r.OffsetY)
}
