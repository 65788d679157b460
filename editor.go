package poster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// EditorState is the drawing state of a MaskEditor.
type EditorState int

const (
	// StateIdle means no stroke is in progress.
	StateIdle EditorState = iota

	// StateDrawing means a stroke started by PointerDown is in progress.
	StateDrawing
)

// String returns a string representation of the state.
func (s EditorState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDrawing:
		return "Drawing"
	default:
		return "Unknown"
	}
}

// MaskEditor builds a binary occlusion mask over a displayed image for
// masked generative edits.
//
// The editor fits the source image into its container (see Fit), keeps a
// static image surface and a mask surface of the fitted size, and turns
// pointer events into round brush strokes on the mask. Before every stroke
// the mask is snapshotted so Undo restores the exact pre-stroke bytes.
//
// MaskEditor is not safe for concurrent use; it is driven by a single event
// loop that owns it.
type MaskEditor struct {
	containerW, containerH int

	source image.Image
	rect   FitRect
	image  *Surface
	mask   *Surface

	renderer *StrokeRenderer
	history  *History

	state     EditorState
	stroke    *Stroke
	brushSize float64
	enabled   bool

	interpolator draw.Interpolator
}

// NewMaskEditor creates an editor for a container of the given size.
// No surfaces exist until Load is called.
func NewMaskEditor(containerW, containerH int, opts ...EditorOption) (*MaskEditor, error) {
	if containerW <= 0 || containerH <= 0 {
		return nil, fmt.Errorf("%w: container %dx%d", ErrInvalidDimension, containerW, containerH)
	}
	o := defaultEditorOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &MaskEditor{
		containerW:   containerW,
		containerH:   containerH,
		history:      NewHistory(o.historyCapacity),
		brushSize:    o.brushSize,
		enabled:      o.enabled,
		interpolator: o.interpolator,
	}, nil
}

// Load installs a new source image.
//
// The fitted rectangle is recomputed, both surfaces are reallocated at the
// new size, the image is drawn into the image surface, and the mask and its
// history are cleared unconditionally so no stale mask survives a source swap.
func (e *MaskEditor) Load(src image.Image) error {
	b := src.Bounds()
	rect, err := Fit(float64(e.containerW), float64(e.containerH), float64(b.Dx()), float64(b.Dy()))
	if err != nil {
		return err
	}
	w, h := rect.PixelSize()

	img, err := NewSurface(w, h)
	if err != nil {
		return err
	}
	mask, err := NewSurface(w, h)
	if err != nil {
		return err
	}
	e.interpolator.Scale(img.NRGBA(), img.Bounds(), src, b, draw.Src, nil)

	e.source = src
	e.rect = rect
	e.image = img
	e.mask = mask
	e.renderer = NewStrokeRenderer(mask, MaskColor)
	e.Clear()

	Logger().Debug("mask editor loaded",
		"source", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"surface", fmt.Sprintf("%dx%d", w, h))
	return nil
}

// LoadData decodes an encoded image and loads it.
// On decode failure the editor keeps its previous state.
func (e *MaskEditor) LoadData(data []byte) error {
	img, err := DecodeImage(data)
	if err != nil {
		return err
	}
	return e.Load(img)
}

// LoadDataURL decodes a data URL image and loads it.
func (e *MaskEditor) LoadDataURL(s string) error {
	img, err := DecodeDataURL(s)
	if err != nil {
		return err
	}
	return e.Load(img)
}

// Resize changes the container size and reloads the current source image,
// which clears the mask and history.
func (e *MaskEditor) Resize(containerW, containerH int) error {
	if containerW <= 0 || containerH <= 0 {
		return fmt.Errorf("%w: container %dx%d", ErrInvalidDimension, containerW, containerH)
	}
	e.containerW, e.containerH = containerW, containerH
	if e.source == nil {
		return nil
	}
	return e.Load(e.source)
}

// PointerDown starts a stroke at p (surface-local coordinates).
//
// The current mask is pushed to the history before anything is drawn, then
// p is rendered as a dot. PointerDown does nothing and returns false when
// drawing is disabled or no image is loaded.
func (e *MaskEditor) PointerDown(p Point) bool {
	if !e.enabled || e.mask == nil {
		return false
	}
	if e.state == StateDrawing {
		e.finishStroke()
	}

	e.history.Push(e.mask)

	e.stroke = NewStroke(e.clip(p), e.brushSize)
	e.state = StateDrawing
	e.renderer.Dot(e.stroke.Last(), e.stroke.Width)
	return true
}

// PointerMove extends the stroke in progress to p.
// It is ignored while idle.
func (e *MaskEditor) PointerMove(p Point) {
	if e.state != StateDrawing {
		return
	}
	prev := e.stroke.Last()
	p = e.clip(p)
	e.stroke.Append(p)
	e.renderer.Segment(prev, p, e.stroke.Width)
}

// PointerUp finishes the stroke in progress.
func (e *MaskEditor) PointerUp() {
	e.finishStroke()
}

// PointerLeave finishes the stroke in progress when the pointer exits the surface.
func (e *MaskEditor) PointerLeave() {
	e.finishStroke()
}

// Undo restores the mask to its state before the most recent stroke.
// A stroke in progress is finished first. Returns false when there is
// nothing to undo.
func (e *MaskEditor) Undo() bool {
	e.finishStroke()
	snap, ok := e.history.Pop()
	if !ok {
		return false
	}
	if err := e.mask.CopyFrom(snap); err != nil {
		// History is cleared on every reload, so sizes always match.
		Logger().Warn("mask undo snapshot size mismatch", "err", err)
		return false
	}
	return true
}

// Clear wipes the mask to fully transparent and empties the history.
func (e *MaskEditor) Clear() {
	e.finishStroke()
	if e.mask != nil {
		e.mask.Clear()
	}
	e.history.Clear()
}

// ExportMask encodes the mask as a PNG of the fitted surface size.
//
// Painted texels become opaque white and untouched texels transparent.
// If no texel has been painted, ExportMask returns ErrEmptyMask and callers
// must not run the masked edit. It returns ErrNoImage before the first Load.
func (e *MaskEditor) ExportMask() ([]byte, error) {
	if e.mask == nil {
		return nil, ErrNoImage
	}
	if e.mask.IsZero() {
		return nil, ErrEmptyMask
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, e.BinaryMask()); err != nil {
		return nil, &EncodingError{Format: FormatPNG, Err: err}
	}
	return buf.Bytes(), nil
}

// ExportMaskDataURL is ExportMask returning a data URL.
func (e *MaskEditor) ExportMaskDataURL() (DataURL, error) {
	data, err := e.ExportMask()
	if err != nil {
		return DataURL{}, err
	}
	return DataURL{MIMEType: FormatPNG.MIMEType(), Data: data}, nil
}

// BinaryMask returns a copy of the mask where every painted texel is opaque
// white and every other texel is transparent. Returns nil before Load.
func (e *MaskEditor) BinaryMask() *image.NRGBA {
	if e.mask == nil {
		return nil
	}
	out := image.NewNRGBA(e.mask.Bounds())
	src := e.mask.data
	for i := 0; i < len(src); i += 4 {
		if src[i+0]|src[i+1]|src[i+2]|src[i+3] == 0 {
			continue
		}
		out.Pix[i+0], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = 255, 255, 255, 255
	}
	return out
}

// ImageSurface returns a copy of the fitted source image, or nil before Load.
func (e *MaskEditor) ImageSurface() *Surface {
	if e.image == nil {
		return nil
	}
	return e.image.Clone()
}

// MaskSurface returns a copy of the live mask, or nil before Load.
func (e *MaskEditor) MaskSurface() *Surface {
	if e.mask == nil {
		return nil
	}
	return e.mask.Clone()
}

// Rect returns the fitted rectangle of the current source inside the container.
func (e *MaskEditor) Rect() FitRect {
	return e.rect
}

// State returns the current drawing state.
func (e *MaskEditor) State() EditorState {
	return e.state
}

// Loaded reports whether a source image has been loaded.
func (e *MaskEditor) Loaded() bool {
	return e.mask != nil
}

// CanUndo reports whether Undo would restore a snapshot.
func (e *MaskEditor) CanUndo() bool {
	return e.history.Len() > 0
}

// HistoryLen returns the number of stored undo snapshots.
func (e *MaskEditor) HistoryLen() int {
	return e.history.Len()
}

// BrushSize returns the current brush diameter.
func (e *MaskEditor) BrushSize() float64 {
	return e.brushSize
}

// SetBrushSize sets the brush diameter for subsequent strokes.
func (e *MaskEditor) SetBrushSize(size float64) error {
	if !(size > 0) {
		return fmt.Errorf("%w: brush size %g", ErrInvalidDimension, size)
	}
	e.brushSize = size
	return nil
}

// Enabled reports whether pointer-down starts strokes.
func (e *MaskEditor) Enabled() bool {
	return e.enabled
}

// SetEnabled enables or disables drawing. Disabling finishes a stroke in progress.
func (e *MaskEditor) SetEnabled(enabled bool) {
	if !enabled {
		e.finishStroke()
	}
	e.enabled = enabled
}

func (e *MaskEditor) finishStroke() {
	if e.state != StateDrawing {
		return
	}
	Logger().Debug("mask stroke finished", "points", e.stroke.Len(), "width", e.stroke.Width)
	e.stroke = nil
	e.state = StateIdle
}

func (e *MaskEditor) clip(p Point) Point {
	return p.Clamp(float64(e.mask.width), float64(e.mask.height))
}
