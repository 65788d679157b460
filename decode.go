package poster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"math"
	"strings"

	"github.com/h2non/filetype"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// svgFallbackSize is the raster size of an SVG without a usable viewBox.
const svgFallbackSize = 512

// maxDecodeSide bounds each side of a decoded image; the pixel count is
// bounded by maxDecodePixels.
const (
	maxDecodeSide   = 16384
	maxDecodePixels = 8192 * 8192
)

var errEmptyData = errors.New("empty data")

// DecodeImage decodes a PNG, JPEG, GIF, WebP, BMP or SVG payload.
// Failures are reported as *ImageLoadError.
func DecodeImage(data []byte) (image.Image, error) {
	return decodeImage("source", data)
}

// DecodeDataURL decodes the image carried by a data URL.
func DecodeDataURL(s string) (image.Image, error) {
	d, err := ParseDataURL(s)
	if err != nil {
		return nil, &ImageLoadError{Source: "source", Err: err}
	}
	if sniffed := sniffMIME(d.Data); d.MIMEType != "" && !sameMIME(d.MIMEType, sniffed) {
		Logger().Debug("data URL MIME mismatch", "declared", d.MIMEType, "sniffed", sniffed)
	}
	return DecodeImage(d.Data)
}

// sameMIME compares MIME types case-insensitively, treating image/jpg as
// image/jpeg.
func sameMIME(a, b string) bool {
	norm := func(m string) string {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "image/jpg" {
			return "image/jpeg"
		}
		return m
	}
	return norm(a) == norm(b)
}

// checkDecodeSize rejects dimensions that are non-positive or too large to
// allocate.
func checkDecodeSize(w, h int) error {
	if w <= 0 || h <= 0 || w > maxDecodeSide || h > maxDecodeSide || w*h > maxDecodePixels {
		return fmt.Errorf("%w: image %dx%d exceeds %dx%d or %d pixels",
			ErrInvalidDimension, w, h, maxDecodeSide, maxDecodeSide, maxDecodePixels)
	}
	return nil
}

func decodeImage(source string, data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, &ImageLoadError{Source: source, Err: errEmptyData}
	}
	if isSVG(data) {
		img, err := rasterizeSVG(data, 0, 0)
		if err != nil {
			return nil, &ImageLoadError{Source: source, Err: err}
		}
		return img, nil
	}
	if kind, _ := filetype.Match(data); kind != filetype.Unknown && kind.MIME.Type != "image" {
		return nil, &ImageLoadError{
			Source: source,
			Err:    fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value),
		}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageLoadError{Source: source, Err: err}
	}
	if err := checkDecodeSize(cfg.Width, cfg.Height); err != nil {
		return nil, &ImageLoadError{Source: source, Err: err}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageLoadError{Source: source, Err: err}
	}
	return img, nil
}

// sniffMIME returns the MIME type of an encoded payload, or
// "application/octet-stream" when it cannot be determined.
func sniffMIME(data []byte) string {
	if isSVG(data) {
		return "image/svg+xml"
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream"
	}
	return kind.MIME.Value
}

// isSVG reports whether data looks like an SVG document.
func isSVG(data []byte) bool {
	head := data[:min(len(data), 1024)]
	head = bytes.TrimSpace(bytes.TrimPrefix(head, []byte("\xef\xbb\xbf")))
	if !bytes.HasPrefix(head, []byte("<")) {
		return false
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

// svgSize returns the intrinsic size of an SVG from its viewBox.
func svgSize(data []byte) (w, h float64, err error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("parse svg: %w", err)
	}
	w, h = icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		return svgFallbackSize, svgFallbackSize, nil
	}
	return w, h, nil
}

// rasterizeSVG renders an SVG at w x h pixels. Zero dimensions select the
// viewBox size. Sizes beyond maxDecodeSide fail with ErrInvalidDimension.
func rasterizeSVG(data []byte, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	if w <= 0 || h <= 0 {
		vw, vh := icon.ViewBox.W, icon.ViewBox.H
		if !(vw > 0 && vh > 0) {
			vw, vh = svgFallbackSize, svgFallbackSize
		}
		// Compare as floats so huge viewBoxes cannot overflow int.
		if vw > maxDecodeSide || vh > maxDecodeSide {
			return nil, fmt.Errorf("%w: svg viewBox %gx%g exceeds %d",
				ErrInvalidDimension, vw, vh, maxDecodeSide)
		}
		w, h = max(1, int(math.Round(vw))), max(1, int(math.Round(vh)))
	}
	if err := checkDecodeSize(w, h); err != nil {
		return nil, err
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

// mimeExtension maps an image MIME type to a file extension without the dot.
func mimeExtension(mime string) string {
	switch strings.ToLower(mime) {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/svg+xml":
		return "svg"
	default:
		if _, sub, ok := strings.Cut(mime, "/"); ok && sub != "" {
			return sub
		}
		return "bin"
	}
}
