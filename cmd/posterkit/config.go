package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/poster"
)

// Preset is an export preset file. Command-line flags override its values.
//
//	format = "jpeg"
//	scale = "large"
//	out_dir = "exports"
//
//	[watermark]
//	text = "© Vixel AI"
//	position = "bottom-right"
//	opacity = 0.7
//	size = 0.2
type Preset struct {
	Format    string           `toml:"format"`
	Scale     string           `toml:"scale"`
	OutDir    string           `toml:"out_dir"`
	Name      string           `toml:"name"`
	Watermark *WatermarkPreset `toml:"watermark"`
}

// WatermarkPreset describes the watermark of a preset. Logo is a file path
// and takes precedence over Text.
type WatermarkPreset struct {
	Text     string   `toml:"text"`
	Logo     string   `toml:"logo"`
	Position string   `toml:"position"`
	Opacity  *float64 `toml:"opacity"`
	Size     *float64 `toml:"size"`
}

// StrokeScript is a recorded sequence of mask strokes replayed by the mask
// subcommand.
//
//	[[stroke]]
//	brush = 24
//	points = [[10, 10], [120, 40], [200, 40]]
//
//	[[stroke]]
//	undo = true
type StrokeScript struct {
	Strokes []StrokeStep `toml:"stroke"`
}

// StrokeStep is one pointer-down..pointer-up gesture, or an undo.
type StrokeStep struct {
	Brush  float64     `toml:"brush"`
	Points [][]float64 `toml:"points"`
	Undo   bool        `toml:"undo"`
}

func loadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, err
	}
	return parsePreset(data)
}

func parsePreset(data []byte) (Preset, error) {
	var p Preset
	if err := toml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("parse preset: %w", err)
	}
	return p, nil
}

func loadStrokes(path string) (StrokeScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StrokeScript{}, err
	}
	return parseStrokes(data)
}

func parseStrokes(data []byte) (StrokeScript, error) {
	var s StrokeScript
	if err := toml.Unmarshal(data, &s); err != nil {
		return StrokeScript{}, fmt.Errorf("parse strokes: %w", err)
	}
	for i, st := range s.Strokes {
		if st.Undo {
			continue
		}
		if len(st.Points) == 0 {
			return StrokeScript{}, fmt.Errorf("stroke %d: no points", i)
		}
		for j, p := range st.Points {
			if len(p) != 2 {
				return StrokeScript{}, fmt.Errorf("stroke %d point %d: want [x, y], got %v", i, j, p)
			}
		}
	}
	return s, nil
}

// points converts the step's coordinates to editor points.
func (s StrokeStep) points() []poster.Point {
	pts := make([]poster.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = poster.Pt(p[0], p[1])
	}
	return pts
}

// watermark resolves the preset into a watermark, starting from the dialog
// defaults. A nil preset yields no watermark.
func (wp *WatermarkPreset) watermark() (*poster.Watermark, error) {
	if wp == nil {
		return nil, nil
	}
	wm := poster.DefaultWatermark()
	switch {
	case wp.Logo != "":
		data, err := os.ReadFile(wp.Logo)
		if err != nil {
			return nil, fmt.Errorf("read logo: %w", err)
		}
		wm.Content = poster.LogoContent{Data: data}
	case wp.Text != "":
		wm.Content = poster.TextContent{Text: wp.Text}
	}
	if wp.Position != "" {
		pos, err := poster.ParsePosition(wp.Position)
		if err != nil {
			return nil, err
		}
		wm.Position = pos
	}
	if wp.Opacity != nil {
		wm.Opacity = *wp.Opacity
	}
	if wp.Size != nil {
		wm.Size = *wp.Size
	}
	if err := wm.Validate(); err != nil {
		return nil, err
	}
	return &wm, nil
}

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: %w", s, poster.ErrInvalidDimension)
	}
	return w, h, nil
}
