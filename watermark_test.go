package poster

import (
	"errors"
	"testing"
)

func TestParsePosition(t *testing.T) {
	for _, p := range Positions() {
		got, err := ParsePosition(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePosition(%q) = %v, %v; want %v", p.String(), got, err, p)
		}
	}
	if got, err := ParsePosition(" Middle-Center "); err != nil || got != Center {
		t.Errorf("ParsePosition(middle-center) = %v, %v; want center", got, err)
	}
	if _, err := ParsePosition("upper-left"); !errors.Is(err, ErrInvalidWatermark) {
		t.Errorf("ParsePosition(upper-left) error = %v, want ErrInvalidWatermark", err)
	}
}

func TestPositionCells(t *testing.T) {
	tests := []struct {
		pos Position
		h   HAlign
		v   VAlign
	}{
		{TopLeft, AlignLeft, AlignTop},
		{Center, AlignCenter, AlignMiddle},
		{MiddleRight, AlignRight, AlignMiddle},
		{BottomCenter, AlignCenter, AlignBottom},
		{BottomRight, AlignRight, AlignBottom},
	}
	for _, tt := range tests {
		if tt.pos.Horizontal() != tt.h || tt.pos.Vertical() != tt.v {
			t.Errorf("%v cells = %v/%v, want %v/%v", tt.pos, tt.pos.Horizontal(), tt.pos.Vertical(), tt.h, tt.v)
		}
	}
}

func TestDefaultWatermark(t *testing.T) {
	wm := DefaultWatermark()
	if wm.Kind() != WatermarkText {
		t.Errorf("Kind() = %v, want text", wm.Kind())
	}
	if c := wm.Content.(TextContent); c.Text != "© Vixel AI" {
		t.Errorf("Text = %q", c.Text)
	}
	if wm.Opacity != 0.7 || wm.Size != 0.2 || wm.Position != BottomRight {
		t.Errorf("DefaultWatermark() = %+v", wm)
	}
	if err := wm.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestWatermarkValidate(t *testing.T) {
	valid := DefaultWatermark()
	tests := []struct {
		name   string
		modify func(*Watermark)
	}{
		{"no content", func(w *Watermark) { w.Content = nil }},
		{"blank text", func(w *Watermark) { w.Content = TextContent{Text: "  "} }},
		{"empty logo", func(w *Watermark) { w.Content = LogoContent{} }},
		{"negative opacity", func(w *Watermark) { w.Opacity = -0.1 }},
		{"opacity above one", func(w *Watermark) { w.Opacity = 1.5 }},
		{"zero size", func(w *Watermark) { w.Size = 0 }},
		{"size above one", func(w *Watermark) { w.Size = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wm := valid
			tt.modify(&wm)
			if err := wm.Validate(); !errors.Is(err, ErrInvalidWatermark) {
				t.Errorf("Validate() = %v, want ErrInvalidWatermark", err)
			}
		})
	}

	logo := Watermark{Content: LogoContent{Data: []byte{1}}, Opacity: 1, Size: 1}
	if err := logo.Validate(); err != nil {
		t.Errorf("logo Validate() = %v, want nil (decoding is deferred to export)", err)
	}
}
