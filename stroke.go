package poster

// Stroke is an ordered sequence of pointer positions drawn with a fixed
// brush width. Strokes are transient: only their raster effect persists.
type Stroke struct {
	// Points in surface-local coordinates. Never empty.
	Points []Point

	// Width is the brush diameter in pixels.
	Width float64
}

// NewStroke starts a stroke at p.
func NewStroke(p Point, width float64) *Stroke {
	return &Stroke{
		Points: []Point{p},
		Width:  width,
	}
}

// Append adds p to the end of the stroke.
func (s *Stroke) Append(p Point) {
	s.Points = append(s.Points, p)
}

// Last returns the most recent point of the stroke.
func (s *Stroke) Last() Point {
	return s.Points[len(s.Points)-1]
}

// Len returns the number of points in the stroke.
func (s *Stroke) Len() int {
	return len(s.Points)
}
