// Command posterkit exports watermarked posters and paints edit masks from
// the command line.
//
// Usage:
//
//	posterkit export [flags] <image>
//	posterkit mask [flags] <image> <strokes.toml>
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/poster"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "export":
		err = runExport(os.Args[2:])
	case "mask":
		err = runMask(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "posterkit: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("posterkit failed", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  posterkit export [flags] <image>")
	fmt.Fprintln(os.Stderr, "  posterkit mask [flags] <image> <strokes.toml>")
}

// setupLogging routes both the command's and the library's logs to stderr.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	poster.SetLogger(l)
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var (
		presetPath = fs.String("preset", "", "TOML preset file")
		format     = fs.String("format", "png", "output format: png or jpeg")
		scale      = fs.String("scale", "original", "original, large, medium, small or a number in (0,1]")
		text       = fs.String("text", "", "text watermark")
		logo       = fs.String("logo", "", "logo watermark image file")
		position   = fs.String("position", poster.BottomRight.String(), "watermark position")
		opacity    = fs.Float64("opacity", poster.DefaultWatermarkOpacity, "watermark opacity in [0,1]")
		size       = fs.Float64("size", poster.DefaultWatermarkSize, "watermark size as a fraction of the width")
		outDir     = fs.String("out", ".", "output directory")
		name       = fs.String("name", "", "output file name without extension")
		verbose    = fs.Bool("v", false, "verbose logging")
	)
	_ = fs.Parse(args)
	setupLogging(*verbose)
	if fs.NArg() != 1 {
		return errors.New("export: want exactly one image argument")
	}

	var p Preset
	if *presetPath != "" {
		var err error
		if p, err = loadPreset(*presetPath); err != nil {
			return err
		}
	}

	// Explicit flags win over the preset; unset preset fields take flag defaults.
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	pick := func(flagName, presetVal, flagVal string) string {
		if set[flagName] || presetVal == "" {
			return flagVal
		}
		return presetVal
	}
	p.Format = pick("format", p.Format, *format)
	p.Scale = pick("scale", p.Scale, *scale)
	p.OutDir = pick("out", p.OutDir, *outDir)
	p.Name = pick("name", p.Name, *name)

	if set["text"] || set["logo"] || set["position"] || set["opacity"] || set["size"] {
		if p.Watermark == nil {
			p.Watermark = &WatermarkPreset{}
		}
		wp := p.Watermark
		if set["text"] {
			wp.Text, wp.Logo = *text, ""
		}
		if set["logo"] {
			wp.Logo = *logo
		}
		if set["position"] {
			wp.Position = *position
		}
		if set["opacity"] {
			wp.Opacity = opacity
		}
		if set["size"] {
			wp.Size = size
		}
	}

	f, err := poster.ParseFormat(p.Format)
	if err != nil {
		return err
	}
	sc, err := poster.ParseScale(p.Scale)
	if err != nil {
		return err
	}
	wm, err := p.Watermark.watermark()
	if err != nil {
		return err
	}
	src, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	res, err := poster.Export(poster.ExportRequest{Source: src, Format: f, Scale: sc, Watermark: wm})
	if err != nil {
		return err
	}
	if wm != nil && !res.Watermarked {
		slog.Warn("watermark was not applied")
	}

	if err := os.MkdirAll(p.OutDir, 0o755); err != nil {
		return err
	}
	out := filepath.Join(p.OutDir, res.Filename(p.Name))
	if err := os.WriteFile(out, res.Data, 0o644); err != nil { //nolint:gosec // exported images are world-readable
		return err
	}
	slog.Info("exported", "file", out, "size", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"scale", poster.ScaleLabel(sc))
	return nil
}

func runMask(args []string) error {
	fs := flag.NewFlagSet("mask", flag.ExitOnError)
	var (
		container = fs.String("container", "800x600", "editor container size WxH")
		brush     = fs.Float64("brush", poster.DefaultBrushSize, "default brush diameter")
		out       = fs.String("out", "mask.png", "output mask file")
		verbose   = fs.Bool("v", false, "verbose logging")
	)
	_ = fs.Parse(args)
	setupLogging(*verbose)
	if fs.NArg() != 2 {
		return errors.New("mask: want <image> <strokes.toml>")
	}

	cw, ch, err := parseSize(*container)
	if err != nil {
		return err
	}
	ed, err := poster.NewMaskEditor(cw, ch, poster.WithBrushSize(*brush))
	if err != nil {
		return err
	}
	src, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := ed.LoadData(src); err != nil {
		return err
	}
	script, err := loadStrokes(fs.Arg(1))
	if err != nil {
		return err
	}

	replay(ed, script, *brush)

	data, err := ed.ExportMask()
	if errors.Is(err, poster.ErrEmptyMask) {
		return errors.New("mask: nothing painted, paint the area to edit first")
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil { //nolint:gosec // mask output is not sensitive
		return err
	}
	r := ed.Rect()
	slog.Info("mask written", "file", *out,
		"size", fmt.Sprintf("%.0fx%.0f", r.Width, r.Height), "undo_depth", ed.HistoryLen())
	return nil
}

// replay feeds the script's gestures to the editor as pointer events.
func replay(ed *poster.MaskEditor, script StrokeScript, defaultBrush float64) {
	for _, st := range script.Strokes {
		if st.Undo {
			ed.Undo()
			continue
		}
		b := defaultBrush
		if st.Brush > 0 {
			b = st.Brush
		}
		_ = ed.SetBrushSize(b)

		pts := st.points()
		ed.PointerDown(pts[0])
		for _, p := range pts[1:] {
			ed.PointerMove(p)
		}
		ed.PointerUp()
	}
}
