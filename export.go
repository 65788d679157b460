package poster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"

	"github.com/oklog/ulid/v2"
	"golang.org/x/image/draw"

	"github.com/gogpu/poster/internal/typeset"
)

// ExportRequest describes one download.
type ExportRequest struct {
	// Source is the encoded image to export.
	Source []byte

	// Format selects the output encoding.
	Format Format

	// Scale is applied uniformly to both dimensions, in (0, 1].
	Scale float64

	// Watermark is optional.
	Watermark *Watermark
}

// ExportResult is an encoded output image.
type ExportResult struct {
	Data   []byte
	Format Format
	Width  int
	Height int

	// Watermarked is false when no watermark was requested or a logo could
	// not be decoded and was skipped.
	Watermarked bool
}

// DataURL returns the result as a data URL.
func (r *ExportResult) DataURL() DataURL {
	return DataURL{MIMEType: r.Format.MIMEType(), Data: r.Data}
}

// Filename returns base with the extension matching the format.
// An empty base gets a unique generated name.
func (r *ExportResult) Filename(base string) string {
	if base == "" {
		base = "poster-" + ulid.Make().String()
	}
	return base + "." + r.Format.Extension()
}

// Exporter rescales, re-encodes and watermarks images for download.
//
// An Exporter holds no per-export state: every call allocates its own output
// surface, so concurrent Export calls do not interfere.
type Exporter struct {
	opts exportOptions

	faceOnce sync.Once
	face     *typeset.Face
	faceErr  error
}

// NewExporter creates an exporter.
func NewExporter(opts ...ExportOption) *Exporter {
	o := defaultExportOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Exporter{opts: o}
}

var defaultExporter = NewExporter()

// Export runs req through a default Exporter.
func Export(req ExportRequest) (*ExportResult, error) {
	return defaultExporter.Export(req)
}

// Export produces the encoded output for req.
//
// The source is decoded, scaled, flattened onto white for JPEG, watermarked
// at output resolution and encoded. A source that fails to decode fails the
// export with *ImageLoadError. A logo that fails to decode is skipped and the
// export still succeeds.
func (e *Exporter) Export(req ExportRequest) (*ExportResult, error) {
	if req.Format != FormatPNG && req.Format != FormatJPEG {
		return nil, fmt.Errorf("%w: format %d", ErrUnsupportedFormat, int(req.Format))
	}
	if err := validateScale(req.Scale); err != nil {
		return nil, err
	}
	if req.Watermark != nil {
		if err := req.Watermark.Validate(); err != nil {
			return nil, err
		}
	}

	src, err := decodeImage("source", req.Source)
	if err != nil {
		return nil, err
	}
	sb := src.Bounds()
	w, h := scaledSize(sb.Dx(), sb.Dy(), req.Scale)

	out, err := NewSurface(w, h)
	if err != nil {
		return nil, err
	}
	if req.Format == FormatJPEG {
		// JPEG has no alpha; without this, transparent regions turn black.
		out.Fill(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	}
	e.opts.interpolator.Scale(out.NRGBA(), out.Bounds(), src, sb, draw.Over, nil)

	Logger().Debug("export",
		"source", fmt.Sprintf("%dx%d", sb.Dx(), sb.Dy()),
		"output", fmt.Sprintf("%dx%d", w, h),
		"format", req.Format.String())

	res := &ExportResult{Format: req.Format, Width: w, Height: h}
	if req.Watermark != nil {
		res.Watermarked, err = e.drawWatermark(out, *req.Watermark)
		if err != nil {
			return nil, err
		}
	}

	res.Data, err = e.encode(out, req.Format)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (e *Exporter) encode(s *Surface, f Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case FormatJPEG:
		err = jpeg.Encode(&buf, opaqueView(s), &jpeg.Options{Quality: e.opts.jpegQuality})
	default:
		err = png.Encode(&buf, s.NRGBA())
	}
	if err != nil {
		return nil, &EncodingError{Format: f, Err: err}
	}
	return buf.Bytes(), nil
}

// opaqueView converts a surface that has been flattened onto an opaque
// background into an *image.RGBA, which the JPEG encoder handles directly.
func opaqueView(s *Surface) *image.RGBA {
	img := image.NewRGBA(s.Bounds())
	draw.Draw(img, img.Bounds(), s.NRGBA(), image.Point{}, draw.Src)
	return img
}

// typeface returns the face used for text watermarks.
func (e *Exporter) typeface() (*typeset.Face, error) {
	e.faceOnce.Do(func() {
		if len(e.opts.font) > 0 {
			e.face, e.faceErr = typeset.Parse(e.opts.font)
			return
		}
		e.face, e.faceErr = typeset.Default()
	})
	return e.face, e.faceErr
}
