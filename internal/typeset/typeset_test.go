package typeset

import (
	"errors"
	"testing"
)

func TestDefault(t *testing.T) {
	f, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	g, _ := Default()
	if f != g {
		t.Error("Default() should return the same face on every call")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(nil); !errors.Is(err, ErrEmptyFont) {
		t.Errorf("Parse(nil) error = %v, want ErrEmptyFont", err)
	}
	if _, err := Parse([]byte("not a font")); err == nil {
		t.Error("Parse(garbage) error = nil")
	}
}

func TestShape(t *testing.T) {
	f, _ := Default()
	l := f.Shape("Hello", 40)

	if len(l.Glyphs) != 5 {
		t.Fatalf("len(Glyphs) = %d, want 5", len(l.Glyphs))
	}
	if l.Advance <= 0 {
		t.Errorf("Advance = %v, want > 0", l.Advance)
	}
	for i := 1; i < len(l.Glyphs); i++ {
		if l.Glyphs[i].X <= l.Glyphs[i-1].X {
			t.Errorf("glyph %d at x=%v not right of glyph %d at x=%v", i, l.Glyphs[i].X, i-1, l.Glyphs[i-1].X)
		}
	}
	if l.Ascent <= 0 || l.Descent <= 0 || l.Height() <= 40*0.8 {
		t.Errorf("metrics ascent=%v descent=%v", l.Ascent, l.Descent)
	}

	bigger := f.Shape("Hello", 80)
	if bigger.Advance <= l.Advance*1.5 {
		t.Errorf("Advance at 80px = %v, want about twice %v", bigger.Advance, l.Advance)
	}
}

func TestShapeEmpty(t *testing.T) {
	f, _ := Default()
	l := f.Shape("", 20)
	if len(l.Glyphs) != 0 || l.Advance != 0 {
		t.Errorf("Shape(\"\") = %+v, want no glyphs", l)
	}
}

func TestShapeNormalizes(t *testing.T) {
	f, _ := Default()
	composed := f.Shape("caf\u00e9", 32)
	decomposed := f.Shape("cafe\u0301", 32)

	if len(composed.Glyphs) != len(decomposed.Glyphs) {
		t.Fatalf("glyph counts differ: %d vs %d", len(composed.Glyphs), len(decomposed.Glyphs))
	}
	for i := range composed.Glyphs {
		if composed.Glyphs[i].ID != decomposed.Glyphs[i].ID {
			t.Errorf("glyph %d: %d vs %d", i, composed.Glyphs[i].ID, decomposed.Glyphs[i].ID)
		}
	}
}

func TestContours(t *testing.T) {
	f, _ := Default()
	l := f.Shape("O", 50)
	origin := Vec{X: 100, Y: 200}

	cs, err := f.Contours(l, origin)
	if err != nil {
		t.Fatalf("Contours() error = %v", err)
	}
	// "O" has an outer and an inner contour.
	if len(cs) != 2 {
		t.Fatalf("len(contours) = %d, want 2", len(cs))
	}
	for _, c := range cs {
		for _, v := range c {
			if v.X < origin.X-1 || v.X > origin.X+l.Advance+1 {
				t.Errorf("point %v outside the advance box", v)
			}
			if v.Y > origin.Y+l.Descent+1 || v.Y < origin.Y-l.Ascent-1 {
				t.Errorf("point %v outside the line box", v)
			}
		}
	}
}

func TestContoursSpaceHasNoOutline(t *testing.T) {
	f, _ := Default()
	cs, err := f.Contours(f.Shape(" ", 30), Vec{})
	if err != nil {
		t.Fatalf("Contours() error = %v", err)
	}
	if len(cs) != 0 {
		t.Errorf("len(contours) = %d, want 0", len(cs))
	}
}
