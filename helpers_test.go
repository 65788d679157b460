package poster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

var (
	opaqueRed   = color.NRGBA{R: 255, A: 255}
	opaqueBlack = color.NRGBA{A: 255}
	opaqueWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func decodeBytes(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("image.Decode: %v", err)
	}
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func newLoadedEditor(t *testing.T, w, h int, opts ...EditorOption) *MaskEditor {
	t.Helper()
	ed, err := NewMaskEditor(w, h, opts...)
	if err != nil {
		t.Fatalf("NewMaskEditor: %v", err)
	}
	if err := ed.Load(solidImage(w, h, opaqueBlack)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ed
}

// drawStroke runs one pointer gesture through the editor.
func drawStroke(ed *MaskEditor, pts ...Point) {
	ed.PointerDown(pts[0])
	for _, p := range pts[1:] {
		ed.PointerMove(p)
	}
	ed.PointerUp()
}
