package poster

import (
	"image/color"

	"golang.org/x/image/draw"
)

// DefaultBrushSize is the initial brush diameter of a MaskEditor, in pixels.
const DefaultBrushSize = 40

// MaskColor is the color strokes are painted with. Only presence matters:
// the mask is exported as painted vs. not painted.
var MaskColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// EditorOption configures a MaskEditor during creation.
//
// Example:
//
//	ed, err := poster.NewMaskEditor(800, 600,
//	    poster.WithBrushSize(24),
//	    poster.WithHistoryCapacity(20))
type EditorOption func(*editorOptions)

// editorOptions holds optional configuration for MaskEditor creation.
type editorOptions struct {
	brushSize       float64
	historyCapacity int
	enabled         bool
	interpolator    draw.Interpolator
}

// defaultEditorOptions returns the default editor options.
func defaultEditorOptions() editorOptions {
	return editorOptions{
		brushSize:       DefaultBrushSize,
		historyCapacity: DefaultHistoryCapacity,
		enabled:         true,
		interpolator:    draw.ApproxBiLinear,
	}
}

// WithBrushSize sets the initial brush diameter. Non-positive values are ignored.
func WithBrushSize(size float64) EditorOption {
	return func(o *editorOptions) {
		if size > 0 {
			o.brushSize = size
		}
	}
}

// WithHistoryCapacity sets how many undo snapshots the editor keeps.
func WithHistoryCapacity(n int) EditorOption {
	return func(o *editorOptions) {
		o.historyCapacity = n
	}
}

// WithDrawingEnabled sets whether pointer-down starts a stroke.
// Hosts disable drawing while a non-mask edit mode is active.
func WithDrawingEnabled(enabled bool) EditorOption {
	return func(o *editorOptions) {
		o.enabled = enabled
	}
}

// WithEditorInterpolator sets the resampler used to fit the source image.
func WithEditorInterpolator(i draw.Interpolator) EditorOption {
	return func(o *editorOptions) {
		if i != nil {
			o.interpolator = i
		}
	}
}

// ExportOption configures an Exporter.
type ExportOption func(*exportOptions)

// exportOptions holds optional configuration for Exporter creation.
type exportOptions struct {
	jpegQuality  int
	interpolator draw.Interpolator
	font         []byte
}

// defaultExportOptions returns the default export options.
func defaultExportOptions() exportOptions {
	return exportOptions{
		jpegQuality:  DefaultJPEGQuality,
		interpolator: draw.BiLinear,
	}
}

// WithJPEGQuality overrides the JPEG quality (1-100).
func WithJPEGQuality(q int) ExportOption {
	return func(o *exportOptions) {
		o.jpegQuality = min(100, max(1, q))
	}
}

// WithInterpolator sets the resampler used to scale the source image and logos.
func WithInterpolator(i draw.Interpolator) ExportOption {
	return func(o *exportOptions) {
		if i != nil {
			o.interpolator = i
		}
	}
}

// WithFont sets the TrueType/OpenType font used for text watermarks.
// The default is the embedded Go Bold font.
func WithFont(ttf []byte) ExportOption {
	return func(o *exportOptions) {
		o.font = ttf
	}
}
