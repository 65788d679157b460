package poster

import "math"

// Anchor is the horizontal alignment of text relative to its placement X.
type Anchor int

const (
	AnchorStart  Anchor = iota // X is the left edge
	AnchorMiddle               // X is the horizontal center
	AnchorEnd                  // X is the right edge
)

// Baseline is the vertical alignment of text relative to its placement Y.
type Baseline int

const (
	BaselineTop    Baseline = iota // Y is the top of the line box
	BaselineMiddle                 // Y is the vertical center of the line box
	BaselineBottom                 // Y is the bottom of the line box
)

// ContentMetrics is the size of the watermark content.
// For text it is the measured line box at the final font size; for a logo
// it is the logo's source pixel size.
type ContentMetrics struct {
	Width, Height float64
}

// Placement is the resolved watermark location on the output canvas.
//
// For text, (X, Y) is the anchor point interpreted with Anchor and Baseline.
// For logos, (X, Y) is the top-left corner, Anchor is AnchorStart and
// Baseline is BaselineTop. Width and Height are the drawn content size.
type Placement struct {
	X, Y          float64
	Anchor        Anchor
	Baseline      Baseline
	Width, Height float64
}

// Origin returns the top-left corner of the content box.
func (p Placement) Origin() Point {
	x, y := p.X, p.Y
	switch p.Anchor {
	case AnchorMiddle:
		x -= p.Width / 2
	case AnchorEnd:
		x -= p.Width
	}
	switch p.Baseline {
	case BaselineMiddle:
		y -= p.Height / 2
	case BaselineBottom:
		y -= p.Height
	}
	return Pt(x, y)
}

// Margin returns the watermark inset: 5% of the shorter canvas side.
func Margin(canvasW, canvasH float64) float64 {
	return 0.05 * math.Min(canvasW, canvasH)
}

// TextFontSize returns the pixel font size for a text watermark:
// max(12, floor(canvasW * size * 0.2)).
func TextFontSize(canvasW, size float64) float64 {
	return math.Max(12, math.Floor(canvasW*size*0.2))
}

// TextStrokeWidth returns the outline width for a text watermark.
func TextStrokeWidth(fontSize float64) float64 {
	return math.Max(1, fontSize/12)
}

// LogoSize returns the drawn logo size: size * canvasW wide, with the
// logo's aspect ratio preserved.
func LogoSize(canvasW, size, logoW, logoH float64) (w, h float64) {
	w = canvasW * size
	if logoW <= 0 {
		return w, 0
	}
	return w, w * (logoH / logoW)
}

// Place maps a grid cell to canvas coordinates.
//
// Each axis resolves independently. Text is anchored at the margin, the
// center line, or the far margin, with Anchor and Baseline telling the
// renderer which side of the content sits on that point. Logos are
// positioned by their top-left corner so that the logo box touches the
// margin or is centered.
func Place(kind WatermarkKind, pos Position, size, canvasW, canvasH float64, m ContentMetrics) Placement {
	margin := Margin(canvasW, canvasH)

	if kind == WatermarkLogo {
		w, h := LogoSize(canvasW, size, m.Width, m.Height)
		p := Placement{Anchor: AnchorStart, Baseline: BaselineTop, Width: w, Height: h}
		switch pos.Horizontal() {
		case AlignLeft:
			p.X = margin
		case AlignCenter:
			p.X = (canvasW - w) / 2
		case AlignRight:
			p.X = canvasW - w - margin
		}
		switch pos.Vertical() {
		case AlignTop:
			p.Y = margin
		case AlignMiddle:
			p.Y = (canvasH - h) / 2
		case AlignBottom:
			p.Y = canvasH - h - margin
		}
		return p
	}

	p := Placement{Width: m.Width, Height: m.Height}
	switch pos.Horizontal() {
	case AlignLeft:
		p.X, p.Anchor = margin, AnchorStart
	case AlignCenter:
		p.X, p.Anchor = canvasW/2, AnchorMiddle
	case AlignRight:
		p.X, p.Anchor = canvasW-margin, AnchorEnd
	}
	switch pos.Vertical() {
	case AlignTop:
		p.Y, p.Baseline = margin, BaselineTop
	case AlignMiddle:
		p.Y, p.Baseline = canvasH/2, BaselineMiddle
	case AlignBottom:
		p.Y, p.Baseline = canvasH-margin, BaselineBottom
	}
	return p
}
