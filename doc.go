// Package poster provides the raster side of an AI poster editor: a mask
// painting canvas for masked generative edits, and an export compositor that
// rescales, re-encodes and watermarks finished images.
//
// # Overview
//
// A MaskEditor fits a source image into a host container, lets the user paint
// round-capped brush strokes onto a transparent mask of the same pixel size,
// keeps a bounded undo history, and exports the mask as a binary PNG
// (painted = region to regenerate). An EditSession sends the image, a prompt
// and that mask to an external MaskedEditor backend.
//
// An Exporter decodes an image, scales it, flattens it onto white for JPEG,
// draws an optional text or logo watermark at output resolution and encodes
// the result.
//
// # Quick Start
//
//	import "github.com/gogpu/poster"
//
//	ed, _ := poster.NewMaskEditor(800, 600)
//	_ = ed.LoadData(pngBytes)
//
//	ed.PointerDown(poster.Pt(100, 100))
//	ed.PointerMove(poster.Pt(200, 120))
//	ed.PointerUp()
//
//	mask, err := ed.ExportMask() // ErrEmptyMask if nothing was painted
//
//	wm := poster.DefaultWatermark()
//	res, err := poster.Export(poster.ExportRequest{
//		Source:    pngBytes,
//		Format:    poster.FormatJPEG,
//		Scale:     poster.ScaleLarge,
//		Watermark: &wm,
//	})
//
// # Coordinate System
//
// Pointer positions are local to the fitted surface:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Logging
//
// The package is silent by default. Call SetLogger to receive debug output
// and warnings such as a skipped logo.
package poster

// Version is the current version of the library.
const Version = "0.1.0"
