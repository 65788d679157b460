package poster

import (
	"image/color"
	"math"
)

// StrokeRenderer draws round-capped, round-joined line segments onto a
// Surface with a solid color.
//
// Each segment is rendered as a capsule (the set of points within half the
// brush width of the segment), so consecutive segments of a polyline join
// with a round join and open ends get round caps. Rendering is confined to
// the surface; callers that must keep points in bounds clip them first.
type StrokeRenderer struct {
	surface *Surface
	color   color.NRGBA
}

// NewStrokeRenderer creates a renderer drawing onto s with color c.
func NewStrokeRenderer(s *Surface, c color.NRGBA) *StrokeRenderer {
	return &StrokeRenderer{surface: s, color: c}
}

// Dot renders a zero-length stroke: a filled circle of diameter width at p.
func (r *StrokeRenderer) Dot(p Point, width float64) {
	r.Segment(p, p, width)
}

// Segment renders a line from a to b with the given width.
func (r *StrokeRenderer) Segment(a, b Point, width float64) {
	if width <= 0 {
		return
	}
	radius := width / 2

	// Coverage is zero beyond radius+antialiasWidth from the segment.
	pad := radius + antialiasWidth
	x0 := max(0, int(math.Floor(math.Min(a.X, b.X)-pad)))
	y0 := max(0, int(math.Floor(math.Min(a.Y, b.Y)-pad)))
	x1 := min(r.surface.width-1, int(math.Ceil(math.Max(a.X, b.X)+pad)))
	y1 := min(r.surface.height-1, int(math.Ceil(math.Max(a.Y, b.Y)+pad)))

	data := r.surface.data
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c := capsuleCoverage(Pt(float64(x)+0.5, float64(y)+0.5), a, b, radius)
			if c <= 0 {
				continue
			}
			blendOver(data, (y*r.surface.width+x)*4, r.color, c)
		}
	}
}

// Polyline renders consecutive segments through pts. When closed is true a
// final segment joins the last point back to the first.
func (r *StrokeRenderer) Polyline(pts []Point, width float64, closed bool) {
	switch len(pts) {
	case 0:
		return
	case 1:
		r.Dot(pts[0], width)
		return
	}
	for i := 1; i < len(pts); i++ {
		r.Segment(pts[i-1], pts[i], width)
	}
	if closed {
		r.Segment(pts[len(pts)-1], pts[0], width)
	}
}

// Render draws a complete stroke.
func (r *StrokeRenderer) Render(s *Stroke) {
	r.Polyline(s.Points, s.Width, false)
}
