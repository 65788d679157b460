package poster

import (
	"fmt"
	"image"
	"strings"
)

// Watermark defaults offered by the export dialog.
const (
	DefaultWatermarkText    = "© Vixel AI"
	DefaultWatermarkOpacity = 0.7
	DefaultWatermarkSize    = 0.2
)

// WatermarkKind tags the content of a watermark.
type WatermarkKind int

const (
	// WatermarkText renders outlined text.
	WatermarkText WatermarkKind = iota

	// WatermarkLogo renders a scaled image.
	WatermarkLogo
)

// String returns a string representation of the kind.
func (k WatermarkKind) String() string {
	switch k {
	case WatermarkText:
		return "text"
	case WatermarkLogo:
		return "logo"
	default:
		return "unknown"
	}
}

// HAlign is the horizontal cell of a watermark position.
type HAlign int

// Horizontal cells.
const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is the vertical cell of a watermark position.
type VAlign int

// Vertical cells.
const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// Position is one of the nine cells of the watermark placement grid.
type Position int

// Grid cells, row-major from the top-left.
const (
	TopLeft Position = iota
	TopCenter
	TopRight
	MiddleLeft
	Center
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

var positionNames = [...]string{
	TopLeft:      "top-left",
	TopCenter:    "top-center",
	TopRight:     "top-right",
	MiddleLeft:   "middle-left",
	Center:       "center",
	MiddleRight:  "middle-right",
	BottomLeft:   "bottom-left",
	BottomCenter: "bottom-center",
	BottomRight:  "bottom-right",
}

// Positions returns all grid cells in row-major order.
func Positions() []Position {
	return []Position{TopLeft, TopCenter, TopRight, MiddleLeft, Center, MiddleRight, BottomLeft, BottomCenter, BottomRight}
}

// ParsePosition parses a cell name such as "bottom-right".
// "middle-center" is accepted as an alias of "center".
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "middle-center" {
		return Center, nil
	}
	for i, name := range positionNames {
		if name == s {
			return Position(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown position %q", ErrInvalidWatermark, s)
}

// String returns the cell name.
func (p Position) String() string {
	if p < 0 || int(p) >= len(positionNames) {
		return "unknown"
	}
	return positionNames[p]
}

// Horizontal returns the column of the cell.
func (p Position) Horizontal() HAlign {
	return HAlign(int(p) % 3)
}

// Vertical returns the row of the cell.
func (p Position) Vertical() VAlign {
	return VAlign(int(p) / 3)
}

// WatermarkContent is the tagged payload of a watermark: TextContent or LogoContent.
type WatermarkContent interface {
	Kind() WatermarkKind
	validate() error
}

// TextContent is a text watermark payload.
type TextContent struct {
	Text string
}

// Kind implements WatermarkContent.
func (TextContent) Kind() WatermarkKind { return WatermarkText }

func (c TextContent) validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidWatermark)
	}
	return nil
}

// LogoContent is a logo watermark payload.
//
// Either Image is set to an already decoded logo, or Data holds the encoded
// bytes (PNG, JPEG, GIF, WebP, BMP or SVG) decoded at export time. A logo that
// fails to decode is skipped without failing the export.
type LogoContent struct {
	Image image.Image
	Data  []byte
}

// Kind implements WatermarkContent.
func (LogoContent) Kind() WatermarkKind { return WatermarkLogo }

func (c LogoContent) validate() error {
	if c.Image == nil && len(c.Data) == 0 {
		return fmt.Errorf("%w: empty logo", ErrInvalidWatermark)
	}
	return nil
}

// Watermark describes a text or logo overlay applied at export time.
type Watermark struct {
	Content  WatermarkContent
	Opacity  float64  // in [0, 1]
	Position Position // grid cell
	Size     float64  // fraction of the output width, in (0, 1]
}

// DefaultWatermark returns the export dialog's default text watermark.
func DefaultWatermark() Watermark {
	return Watermark{
		Content:  TextContent{Text: DefaultWatermarkText},
		Opacity:  DefaultWatermarkOpacity,
		Position: BottomRight,
		Size:     DefaultWatermarkSize,
	}
}

// Kind returns the kind of the content.
func (w Watermark) Kind() WatermarkKind {
	return w.Content.Kind()
}

// Validate checks the watermark invariants.
func (w Watermark) Validate() error {
	if w.Content == nil {
		return fmt.Errorf("%w: no content", ErrInvalidWatermark)
	}
	if err := w.Content.validate(); err != nil {
		return err
	}
	if !(w.Opacity >= 0 && w.Opacity <= 1) {
		return fmt.Errorf("%w: opacity %g outside [0,1]", ErrInvalidWatermark, w.Opacity)
	}
	if !(w.Size > 0 && w.Size <= 1) {
		return fmt.Errorf("%w: size %g outside (0,1]", ErrInvalidWatermark, w.Size)
	}
	if w.Position < TopLeft || w.Position > BottomRight {
		return fmt.Errorf("%w: position %d", ErrInvalidWatermark, int(w.Position))
	}
	return nil
}
