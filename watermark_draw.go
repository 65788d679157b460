package poster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/poster/internal/typeset"
)

var (
	watermarkFill    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	watermarkOutline = color.NRGBA{A: 255}
)

// drawWatermark renders wm into a transparent layer the size of out and
// composites that layer once at wm.Opacity. It reports whether anything was
// drawn; a logo that cannot be decoded is logged and skipped.
func (e *Exporter) drawWatermark(out *Surface, wm Watermark) (bool, error) {
	layer, err := NewSurface(out.Width(), out.Height())
	if err != nil {
		return false, err
	}

	var drawn bool
	switch c := wm.Content.(type) {
	case TextContent:
		drawn, err = e.drawText(layer, c.Text, wm)
	case LogoContent:
		drawn = e.drawLogo(layer, c, wm)
	default:
		return false, fmt.Errorf("%w: unknown content %T", ErrInvalidWatermark, wm.Content)
	}
	if err != nil || !drawn {
		return false, err
	}

	if err := out.DrawLayer(layer, wm.Opacity); err != nil {
		return false, err
	}
	return true, nil
}

// drawText draws white text with a black outline. The outline goes down
// first so the fill covers its inner half.
func (e *Exporter) drawText(layer *Surface, text string, wm Watermark) (bool, error) {
	face, err := e.typeface()
	if err != nil {
		return false, fmt.Errorf("poster: watermark font: %w", err)
	}

	w, h := float64(layer.Width()), float64(layer.Height())
	size := TextFontSize(w, wm.Size)
	line := face.Shape(text, size)
	if len(line.Glyphs) == 0 {
		return false, nil
	}

	p := Place(WatermarkText, wm.Position, wm.Size, w, h,
		ContentMetrics{Width: line.Advance, Height: line.Height()})
	o := p.Origin()
	contours, err := face.Contours(line, typeset.Vec{X: o.X, Y: o.Y + line.Ascent})
	if err != nil {
		return false, err
	}

	Logger().Debug("watermark text",
		"text", text, "size", size, "x", p.X, "y", p.Y, "position", wm.Position.String())

	outline := NewStrokeRenderer(layer, watermarkOutline)
	sw := TextStrokeWidth(size)
	pts := make([]Point, 0, 64)
	for _, c := range contours {
		pts = pts[:0]
		for _, v := range c {
			pts = append(pts, Pt(v.X, v.Y))
		}
		outline.Polyline(pts, sw, true)
	}

	fillContours(layer, contours, watermarkFill)
	return true, nil
}

// fillContours fills closed contours with c using non-zero coverage from an
// analytic rasterizer.
func fillContours(s *Surface, contours [][]typeset.Vec, c color.NRGBA) {
	w, h := s.Width(), s.Height()
	r := vector.NewRasterizer(w, h)
	for _, contour := range contours {
		r.MoveTo(float32(contour[0].X), float32(contour[0].Y))
		for _, v := range contour[1:] {
			r.LineTo(float32(v.X), float32(v.Y))
		}
		r.ClosePath()
	}

	cov := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(cov, cov.Bounds(), image.Opaque, image.Point{})

	for i, a := range cov.Pix {
		if a == 0 {
			continue
		}
		blendOver(s.data, i*4, c, float64(a)/255)
	}
}

// drawLogo scales the logo into its placement box.
func (e *Exporter) drawLogo(layer *Surface, c LogoContent, wm Watermark) bool {
	w, h := float64(layer.Width()), float64(layer.Height())

	img := c.Image
	var p Placement
	switch {
	case img != nil:
		b := img.Bounds()
		p = Place(WatermarkLogo, wm.Position, wm.Size, w, h,
			ContentMetrics{Width: float64(b.Dx()), Height: float64(b.Dy())})

	case isSVG(c.Data):
		sw, sh, err := svgSize(c.Data)
		if err != nil {
			Logger().Warn("watermark logo skipped", "err", err)
			return false
		}
		p = Place(WatermarkLogo, wm.Position, wm.Size, w, h, ContentMetrics{Width: sw, Height: sh})
		img, err = rasterizeSVG(c.Data, max(1, int(math.Round(p.Width))), max(1, int(math.Round(p.Height))))
		if err != nil {
			Logger().Warn("watermark logo skipped", "err", err)
			return false
		}

	default:
		var err error
		img, err = decodeImage("logo", c.Data)
		if err != nil {
			Logger().Warn("watermark logo skipped", "err", err)
			return false
		}
		b := img.Bounds()
		p = Place(WatermarkLogo, wm.Position, wm.Size, w, h,
			ContentMetrics{Width: float64(b.Dx()), Height: float64(b.Dy())})
	}

	dr := image.Rect(
		int(math.Round(p.X)), int(math.Round(p.Y)),
		int(math.Round(p.X+p.Width)), int(math.Round(p.Y+p.Height)),
	)
	if dr.Empty() || img.Bounds().Empty() {
		return false
	}

	Logger().Debug("watermark logo",
		"rect", dr.String(), "position", wm.Position.String())

	e.opts.interpolator.Scale(layer.NRGBA(), dr, img, img.Bounds(), draw.Over, nil)
	return true
}
