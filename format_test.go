package poster

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", FormatPNG},
		{"PNG", FormatPNG},
		{"jpeg", FormatJPEG},
		{"jpg", FormatJPEG},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseFormat(gif) error = %v, want ErrUnsupportedFormat", err)
	}
	if FormatJPEG.MIMEType() != "image/jpeg" || FormatPNG.MIMEType() != "image/png" {
		t.Error("MIMEType() mismatch")
	}
}

func TestParseScale(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"original", 1},
		{"Large", 0.5},
		{"medium", 0.25},
		{"small", 0.125},
		{"0.3", 0.3},
	}
	for _, tt := range tests {
		got, err := ParseScale(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseScale(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	for _, in := range []string{"0", "1.5", "-1", "huge"} {
		if _, err := ParseScale(in); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("ParseScale(%q) error = %v, want ErrInvalidDimension", in, err)
		}
	}
	if got := ScaleLabel(ScaleMedium); got != "Medium" {
		t.Errorf("ScaleLabel(0.25) = %q, want Medium", got)
	}
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		w, h         int
		scale        float64
		wantW, wantH int
	}{
		{1000, 800, 0.5, 500, 400},
		{1001, 801, 0.5, 500, 400},
		{1000, 800, 0.125, 125, 100},
		{3, 5, 0.125, 1, 1},
	}
	for _, tt := range tests {
		w, h := scaledSize(tt.w, tt.h, tt.scale)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("scaledSize(%d, %d, %v) = %d, %d; want %d, %d", tt.w, tt.h, tt.scale, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestExportResultFilename(t *testing.T) {
	r := &ExportResult{Format: FormatJPEG}
	if got := r.Filename("poster"); got != "poster.jpeg" {
		t.Errorf("Filename(poster) = %q, want poster.jpeg", got)
	}

	a, b := r.Filename(""), r.Filename("")
	if !strings.HasPrefix(a, "poster-") || !strings.HasSuffix(a, ".jpeg") {
		t.Errorf("Filename(\"\") = %q, want poster-<id>.jpeg", a)
	}
	if a == b {
		t.Errorf("generated names collide: %q", a)
	}
}
