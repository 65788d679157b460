package poster

import (
	"context"
	"fmt"
	"strings"
)

// EditMode selects which kind of edit an EditSession applies.
type EditMode int

const (
	// EditModeGenerative repaints a masked region from a prompt. Drawing is
	// enabled in this mode.
	EditModeGenerative EditMode = iota

	// EditModeText rewrites the poster's text with a TextStyle. The mask
	// editor ignores pointer input in this mode.
	EditModeText
)

func (m EditMode) String() string {
	switch m {
	case EditModeGenerative:
		return "generative"
	case EditModeText:
		return "text"
	default:
		return "unknown"
	}
}

// TextSize is the relative size of rewritten poster text.
type TextSize int

const (
	TextSizeSmall TextSize = iota
	TextSizeMedium
	TextSizeLarge
	TextSizeExtraLarge
)

func (s TextSize) String() string {
	switch s {
	case TextSizeSmall:
		return "Small"
	case TextSizeMedium:
		return "Medium"
	case TextSizeLarge:
		return "Large"
	case TextSizeExtraLarge:
		return "Extra Large"
	default:
		return "unknown"
	}
}

// TextAlign is the horizontal alignment of rewritten poster text.
type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

func (a TextAlign) String() string {
	switch a {
	case TextAlignLeft:
		return "Left"
	case TextAlignCenter:
		return "Center"
	case TextAlignRight:
		return "Right"
	default:
		return "unknown"
	}
}

// DefaultFontFamily is the font family a text edit uses when none is set.
const DefaultFontFamily = "Inter"

// FontFamilies lists the font families offered for text edits.
var FontFamilies = []string{"Inter", "Poppins", "Montserrat", "Playfair Display", "Roboto", "Lato"}

// TextStyle describes how a text edit should typeset the new text.
type TextStyle struct {
	FontFamily string
	Size       TextSize
	Align      TextAlign
}

// DefaultTextStyle returns Inter, medium, centered.
func DefaultTextStyle() TextStyle {
	return TextStyle{FontFamily: DefaultFontFamily, Size: TextSizeMedium, Align: TextAlignCenter}
}

// Validate checks that the size and alignment are known values.
// The font family is free-form; the backend interprets it.
func (s TextStyle) Validate() error {
	if s.Size < TextSizeSmall || s.Size > TextSizeExtraLarge {
		return fmt.Errorf("%w: size %d", ErrInvalidTextStyle, s.Size)
	}
	if s.Align < TextAlignLeft || s.Align > TextAlignRight {
		return fmt.Errorf("%w: align %d", ErrInvalidTextStyle, s.Align)
	}
	return nil
}

// TextEditor is the external backend for text edits. It receives the
// current image, the replacement text and its style, and returns the edited
// image.
type TextEditor interface {
	EditText(ctx context.Context, image DataURL, text string, style TextStyle) (DataURL, error)
}

// SessionOption configures an EditSession.
type SessionOption func(*EditSession)

// WithTextEditor sets the backend used by ApplyTextEdit.
func WithTextEditor(te TextEditor) SessionOption {
	return func(s *EditSession) {
		s.text = te
	}
}

// Mode returns the active edit mode.
func (s *EditSession) Mode() EditMode {
	return s.mode
}

// SetMode switches the edit mode. Drawing on the mask editor is enabled only
// in EditModeGenerative; leaving it finishes any stroke in progress.
func (s *EditSession) SetMode(m EditMode) {
	s.mode = m
	s.editor.SetEnabled(m == EditModeGenerative)
}

// ApplyTextEdit asks the text backend to replace the poster's text with text
// typeset in style. An empty FontFamily selects DefaultFontFamily.
//
// On success the result becomes the current image and is reloaded into the
// editor.
func (s *EditSession) ApplyTextEdit(ctx context.Context, text string, style TextStyle) (DataURL, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return DataURL{}, ErrEmptyPrompt
	}
	if err := style.Validate(); err != nil {
		return DataURL{}, err
	}
	if style.FontFamily == "" {
		style.FontFamily = DefaultFontFamily
	}
	if s.text == nil {
		return DataURL{}, ErrNoTextEditor
	}
	if s.current.IsZero() {
		return DataURL{}, ErrNoImage
	}

	done, err := s.begin()
	if err != nil {
		return DataURL{}, err
	}
	defer done()

	Logger().Debug("text edit", "font", style.FontFamily, "size", style.Size, "align", style.Align)

	out, err := s.text.EditText(ctx, s.current, text, style)
	if err != nil {
		return DataURL{}, fmt.Errorf("poster: text edit: %w", err)
	}
	if err := s.Load(out); err != nil {
		return DataURL{}, err
	}
	return s.current, nil
}
