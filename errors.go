package poster

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrInvalidDimension is returned when a width or height is zero or negative.
	ErrInvalidDimension = errors.New("poster: invalid dimension")

	// ErrEmptyMask is returned by MaskEditor.ExportMask when no texel has been painted.
	// Callers must not invoke a masked edit when they receive it.
	ErrEmptyMask = errors.New("poster: mask is empty")

	// ErrNoImage is returned when a MaskEditor is used before a source image was loaded.
	ErrNoImage = errors.New("poster: no source image loaded")

	// ErrInvalidDataURL is returned when a string is not a base64 data URL.
	ErrInvalidDataURL = errors.New("poster: invalid data URL")

	// ErrInvalidWatermark is returned when a watermark fails validation.
	ErrInvalidWatermark = errors.New("poster: invalid watermark")

	// ErrEmptyPrompt is returned when an edit is requested without a prompt or text.
	ErrEmptyPrompt = errors.New("poster: empty edit prompt")

	// ErrInvalidTextStyle is returned for a text edit with an unknown size or alignment.
	ErrInvalidTextStyle = errors.New("poster: invalid text style")

	// ErrNoTextEditor is returned when a text edit is requested from a session
	// created without a TextEditor.
	ErrNoTextEditor = errors.New("poster: no text editor configured")

	// ErrEditInProgress is returned when a generative edit is requested while
	// another one is still running.
	ErrEditInProgress = errors.New("poster: edit already in progress")

	// ErrUnsupportedFormat is returned for an unknown export format or image payload.
	ErrUnsupportedFormat = errors.New("poster: unsupported format")
)

// ImageLoadError reports that a source or logo image could not be decoded.
type ImageLoadError struct {
	// Source names what was being loaded, e.g. "source" or "logo".
	Source string
	Err    error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("poster: load %s image: %v", e.Source, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// EncodingError reports that a surface could not be encoded to the requested format.
type EncodingError struct {
	Format Format
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("poster: encode %s: %v", e.Format, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
