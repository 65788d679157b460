package poster

import (
	"bytes"
	"errors"
	"image"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// halfTransparent returns a w x h image whose left half is transparent and
// right half opaque red.
func halfTransparent(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			img.SetNRGBA(x, y, opaqueRed)
		}
	}
	return img
}

func TestExportScaleAndTransparency(t *testing.T) {
	src := encodePNG(t, halfTransparent(1000, 800))

	res, err := Export(ExportRequest{Source: src, Format: FormatPNG, Scale: 0.5})
	if err != nil {
		t.Fatalf("Export(png) error = %v", err)
	}
	if res.Width != 500 || res.Height != 400 {
		t.Errorf("png size = %dx%d, want 500x400", res.Width, res.Height)
	}
	img := decodeBytes(t, res.Data)
	if b := img.Bounds(); b.Dx() != 500 || b.Dy() != 400 {
		t.Errorf("decoded png = %v, want 500x400", b)
	}
	if c := nrgbaAt(img, 10, 10); c.A != 0 {
		t.Errorf("png transparent region = %v, want alpha 0", c)
	}
	if c := nrgbaAt(img, 400, 200); c != opaqueRed {
		t.Errorf("png opaque region = %v, want %v", c, opaqueRed)
	}

	res, err = Export(ExportRequest{Source: src, Format: FormatJPEG, Scale: 0.5})
	if err != nil {
		t.Fatalf("Export(jpeg) error = %v", err)
	}
	img = decodeBytes(t, res.Data)
	if b := img.Bounds(); b.Dx() != 500 || b.Dy() != 400 {
		t.Errorf("decoded jpeg = %v, want 500x400", b)
	}
	if c := nrgbaAt(img, 10, 10); c.R < 245 || c.G < 245 || c.B < 245 || c.A != 255 {
		t.Errorf("jpeg formerly transparent region = %v, want opaque white", c)
	}
	if c := nrgbaAt(img, 400, 200); c.R < 200 || c.G > 60 {
		t.Errorf("jpeg opaque region = %v, want red", c)
	}
	if res.DataURL().MIMEType != "image/jpeg" {
		t.Errorf("DataURL().MIMEType = %q", res.DataURL().MIMEType)
	}
}

func TestExportLogoDecodeFailureDegrades(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	src := encodePNG(t, solidImage(200, 100, opaqueWhite))
	plain, err := Export(ExportRequest{Source: src, Format: FormatPNG, Scale: 1})
	if err != nil {
		t.Fatal(err)
	}

	wm := Watermark{Content: LogoContent{Data: []byte("broken logo")}, Opacity: 1, Position: BottomRight, Size: 0.2}
	res, err := Export(ExportRequest{Source: src, Format: FormatPNG, Scale: 1, Watermark: &wm})
	if err != nil {
		t.Fatalf("Export() error = %v, want success without watermark", err)
	}
	if res.Watermarked {
		t.Error("Watermarked = true for an undecodable logo")
	}
	if !bytes.Equal(res.Data, plain.Data) {
		t.Error("output differs from an export without watermark")
	}
	if !strings.Contains(logs.String(), "watermark logo skipped") {
		t.Errorf("expected a warning, got: %s", logs.String())
	}
}

func TestExportLogoWatermark(t *testing.T) {
	src := encodePNG(t, solidImage(200, 100, opaqueWhite))
	logo := encodePNG(t, solidImage(10, 10, opaqueRed))

	tests := []struct {
		name    string
		content LogoContent
		opacity float64
		wantG   uint8
	}{
		{"encoded opaque", LogoContent{Data: logo}, 1, 0},
		{"decoded half opacity", LogoContent{Image: solidImage(10, 10, opaqueRed)}, 0.5, 128},
		{"svg", LogoContent{Data: []byte(redRectSVG)}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wm := Watermark{Content: tt.content, Opacity: tt.opacity, Position: BottomRight, Size: 0.2}
			res, err := Export(ExportRequest{Source: src, Format: FormatPNG, Scale: 1, Watermark: &wm})
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if !res.Watermarked {
				t.Error("Watermarked = false")
			}
			img := decodeBytes(t, res.Data)

			// 40px wide logo, 5px margin, anchored bottom-right.
			if c := nrgbaAt(img, 175, 90); c.R < 250 || absDiff(c.G, tt.wantG) > 3 {
				t.Errorf("logo pixel = %v, want R 255 G %d", c, tt.wantG)
			}
			if c := nrgbaAt(img, 20, 20); c != opaqueWhite {
				t.Errorf("pixel outside logo = %v, want white", c)
			}
		})
	}
}

func TestExportTextWatermark(t *testing.T) {
	src := encodePNG(t, solidImage(400, 200, opaqueBlack))
	wm := DefaultWatermark()
	wm.Opacity = 1

	res, err := Export(ExportRequest{Source: src, Format: FormatPNG, Scale: 1, Watermark: &wm})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !res.Watermarked {
		t.Fatal("Watermarked = false")
	}
	img := decodeBytes(t, res.Data)

	var lit int
	for y := 100; y < 200; y++ {
		for x := 200; x < 400; x++ {
			if nrgbaAt(img, x, y).R > 128 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no white text pixels in the bottom-right quadrant")
	}
	for _, p := range [][2]int{{5, 5}, {100, 50}, {395, 195}} {
		if c := nrgbaAt(img, p[0], p[1]); c != opaqueBlack {
			t.Errorf("pixel %v = %v, want untouched", p, c)
		}
	}
}

func TestExportTextWatermarkCustomFont(t *testing.T) {
	src := encodePNG(t, solidImage(300, 300, opaqueBlack))
	wm := DefaultWatermark()

	res, err := NewExporter(WithFont(goregular.TTF)).Export(
		ExportRequest{Source: src, Format: FormatJPEG, Scale: 1, Watermark: &wm})
	if err != nil || !res.Watermarked {
		t.Errorf("Export() with goregular = %v, %v", res, err)
	}

	if _, err := NewExporter(WithFont([]byte("not a font"))).Export(
		ExportRequest{Source: src, Format: FormatPNG, Scale: 1, Watermark: &wm}); err == nil {
		t.Error("Export() with an invalid font succeeded")
	}
}

func TestExportInvalidRequests(t *testing.T) {
	src := encodePNG(t, solidImage(10, 10, opaqueRed))
	bad := Watermark{Content: TextContent{Text: ""}, Opacity: 1, Size: 0.2}

	tests := []struct {
		name string
		req  ExportRequest
		want error
	}{
		{"zero scale", ExportRequest{Source: src, Scale: 0}, ErrInvalidDimension},
		{"scale above one", ExportRequest{Source: src, Scale: 2}, ErrInvalidDimension},
		{"unknown format", ExportRequest{Source: src, Scale: 1, Format: Format(9)}, ErrUnsupportedFormat},
		{"invalid watermark", ExportRequest{Source: src, Scale: 1, Watermark: &bad}, ErrInvalidWatermark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Export(tt.req); !errors.Is(err, tt.want) {
				t.Errorf("Export() error = %v, want %v", err, tt.want)
			}
		})
	}

	var loadErr *ImageLoadError
	if _, err := Export(ExportRequest{Source: []byte("junk"), Scale: 1}); !errors.As(err, &loadErr) {
		t.Errorf("Export(junk) error = %v, want *ImageLoadError", err)
	}
}

func TestExportConcurrent(t *testing.T) {
	src := encodePNG(t, halfTransparent(120, 80))
	wm := DefaultWatermark()
	req := ExportRequest{Source: src, Format: FormatJPEG, Scale: 0.5, Watermark: &wm}

	want, err := Export(req)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Export(req)
			if err != nil {
				t.Errorf("Export() error = %v", err)
				return
			}
			if !bytes.Equal(got.Data, want.Data) {
				t.Error("concurrent export produced different bytes")
			}
		}()
	}
	wg.Wait()
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
