package poster

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultJPEGQuality is the JPEG quality used for exports (0.9 on a 0-1 scale).
const DefaultJPEGQuality = 90

// Format is an export file format.
type Format int

const (
	// FormatPNG is lossless and keeps transparency.
	FormatPNG Format = iota

	// FormatJPEG is lossy; transparent regions are flattened onto white.
	FormatJPEG
)

// ParseFormat parses "png", "jpeg" or "jpg" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// String returns the format name, which is also its file extension.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	default:
		return "unknown"
	}
}

// MIMEType returns the MIME type of the format.
func (f Format) MIMEType() string {
	return "image/" + f.String()
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	return f.String()
}

// Size presets offered for download.
const (
	ScaleOriginal = 1.0
	ScaleLarge    = 0.5
	ScaleMedium   = 0.25
	ScaleSmall    = 0.125
)

// ParseScale parses a preset label ("original", "large", "medium", "small")
// or a number in (0, 1].
func ParseScale(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "original":
		return ScaleOriginal, nil
	case "large":
		return ScaleLarge, nil
	case "medium":
		return ScaleMedium, nil
	case "small":
		return ScaleSmall, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: scale %q", ErrInvalidDimension, s)
	}
	if err := validateScale(v); err != nil {
		return 0, err
	}
	return v, nil
}

// ScaleLabel returns the dialog label of a preset scale, or the number itself.
func ScaleLabel(scale float64) string {
	switch scale {
	case ScaleOriginal:
		return "Original"
	case ScaleLarge:
		return "Large"
	case ScaleMedium:
		return "Medium"
	case ScaleSmall:
		return "Small"
	default:
		return strconv.FormatFloat(scale, 'g', -1, 64)
	}
}

func validateScale(scale float64) error {
	if !(scale > 0 && scale <= 1) {
		return fmt.Errorf("%w: scale %g outside (0,1]", ErrInvalidDimension, scale)
	}
	return nil
}

// scaledSize applies scale to both dimensions, flooring each to at least 1.
func scaledSize(w, h int, scale float64) (int, int) {
	sw := max(1, int(math.Floor(float64(w)*scale)))
	sh := max(1, int(math.Floor(float64(h)*scale)))
	return sw, sh
}
