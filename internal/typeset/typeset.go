// Package typeset shapes single lines of text and extracts their glyph
// outlines for the watermark renderer.
//
// Shaping (glyph selection, kerning, ligatures) uses go-text/typesetting's
// HarfBuzz port. Outlines and vertical metrics come from
// golang.org/x/image/font/sfnt parsing the same font data, so glyph IDs
// produced by the shaper index the sfnt glyph table directly.
package typeset

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyFont is returned when Parse is given no data.
var ErrEmptyFont = errors.New("typeset: empty font data")

// Vec is a 2D position in pixels, Y increasing downward.
type Vec struct {
	X, Y float64
}

// Face is a parsed font usable at any size.
// Face is safe for concurrent use.
type Face struct {
	outlines *sfnt.Font
	shaping  *gotext.Font

	shaperPool sync.Pool
}

var defaultFace struct {
	once sync.Once
	face *Face
	err  error
}

// Default returns the embedded Go Bold face.
func Default() (*Face, error) {
	defaultFace.once.Do(func() {
		defaultFace.face, defaultFace.err = Parse(gobold.TTF)
	})
	return defaultFace.face, defaultFace.err
}

// Parse parses TrueType or OpenType font data.
func Parse(data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFont
	}
	otf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("typeset: parse outlines: %w", err)
	}
	// ParseTTF returns a *Face which embeds the thread-safe *Font.
	gtFace, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("typeset: parse for shaping: %w", err)
	}
	return &Face{
		outlines: otf,
		shaping:  gtFace.Font,
		shaperPool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}, nil
}

// Glyph is a shaped glyph positioned relative to the line origin
// (left end of the baseline).
type Glyph struct {
	ID   uint16
	X, Y float64
}

// Line is a shaped single line of text.
type Line struct {
	Glyphs  []Glyph
	Size    float64 // pixels per em
	Advance float64 // total horizontal advance
	Ascent  float64 // distance from baseline to the top of the line box
	Descent float64 // distance from baseline to the bottom of the line box (positive)
}

// Height returns the height of the line box.
func (l Line) Height() float64 {
	return l.Ascent + l.Descent
}

// Shape converts s to positioned glyphs at the given pixel size.
// The text is NFC-normalized first so composed and decomposed input shape alike.
func (f *Face) Shape(s string, size float64) Line {
	line := Line{Size: size}
	line.Ascent, line.Descent = f.metrics(size)

	runes := []rune(norm.NFC.String(s))
	if len(runes) == 0 {
		return line
	}

	script := detectScript(runes)
	dir := di.DirectionLTR
	if script == language.Arabic || script == language.Hebrew {
		dir = di.DirectionRTL
	}

	// font.Face is NOT safe for concurrent use; each call gets its own.
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      gotext.NewFace(f.shaping),
		Size:      floatToFixed(size),
		Script:    script,
		Language:  language.NewLanguage("en"),
	}

	hb := f.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	f.shaperPool.Put(hb)

	line.Glyphs = make([]Glyph, 0, len(out.Glyphs))
	var pen float64
	for _, g := range out.Glyphs {
		line.Glyphs = append(line.Glyphs, Glyph{
			ID: uint16(g.GlyphID), //nolint:gosec // sfnt glyph tables are 16-bit indexed
			X:  pen + fixedToFloat(g.XOffset),
			Y:  -fixedToFloat(g.YOffset), // shaper offsets are Y-up
		})
		pen += fixedToFloat(g.Advance)
	}
	line.Advance = pen
	return line
}

// Contours returns the outlines of every glyph in the line as closed
// polylines, with the line origin placed at origin. Curves are flattened.
func (f *Face) Contours(l Line, origin Vec) ([][]Vec, error) {
	var (
		buf      sfnt.Buffer
		contours [][]Vec
	)
	ppem := floatToFixed(l.Size)
	for _, g := range l.Glyphs {
		segs, err := f.outlines.LoadGlyph(&buf, sfnt.GlyphIndex(g.ID), ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("typeset: load glyph %d: %w", g.ID, err)
		}
		contours = appendContours(contours, segs, Vec{X: origin.X + g.X, Y: origin.Y + g.Y})
	}
	return contours, nil
}

// metrics returns the ascent and descent at the given size.
func (f *Face) metrics(size float64) (ascent, descent float64) {
	var buf sfnt.Buffer
	m, err := f.outlines.Metrics(&buf, floatToFixed(size), xfont.HintingNone)
	if err != nil {
		// Conventional proportions when the font lacks hhea/OS2 data.
		return size * 0.8, size * 0.2
	}
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
}

// Flattening resolution per curve segment.
const (
	quadSteps  = 8
	cubicSteps = 12
)

// appendContours converts sfnt segments (pixel units, Y down, relative to
// the glyph origin) into polylines offset by at.
func appendContours(dst [][]Vec, segs sfnt.Segments, at Vec) [][]Vec {
	var cur []Vec
	pt := func(p fixed.Point26_6) Vec {
		return Vec{X: at.X + fixedToFloat(p.X), Y: at.Y + fixedToFloat(p.Y)}
	}
	flush := func() {
		if len(cur) > 1 {
			dst = append(dst, cur)
		}
		cur = nil
	}

	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			cur = append(cur, pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			cur = append(cur, pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p0 := last(cur)
			c, p1 := pt(s.Args[0]), pt(s.Args[1])
			for i := 1; i <= quadSteps; i++ {
				t := float64(i) / quadSteps
				u := 1 - t
				cur = append(cur, Vec{
					X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
					Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
				})
			}
		case sfnt.SegmentOpCubeTo:
			p0 := last(cur)
			c0, c1, p1 := pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2])
			for i := 1; i <= cubicSteps; i++ {
				t := float64(i) / cubicSteps
				u := 1 - t
				cur = append(cur, Vec{
					X: u*u*u*p0.X + 3*u*u*t*c0.X + 3*u*t*t*c1.X + t*t*t*p1.X,
					Y: u*u*u*p0.Y + 3*u*u*t*c0.Y + 3*u*t*t*c1.Y + t*t*t*p1.Y,
				})
			}
		}
	}
	flush()
	return dst
}

func last(vs []Vec) Vec {
	if len(vs) == 0 {
		return Vec{}
	}
	return vs[len(vs)-1]
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
