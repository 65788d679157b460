package poster

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MaskedEditor is the external image-editing backend. It receives the
// current image, the instruction and the binary mask (painted = region to
// change) and returns the edited image.
type MaskedEditor interface {
	EditWithMask(ctx context.Context, image DataURL, prompt string, mask DataURL) (DataURL, error)
}

// EditSession drives the edit dialog. In EditModeGenerative the user paints a
// mask over the current image in the session's MaskEditor, then asks for an
// edit; in EditModeText the poster text is rewritten with a TextStyle.
//
// The MaskEditor itself is not safe for concurrent use; pointer events and
// ApplyGenerativeEdit must come from the same goroutine.
type EditSession struct {
	editor  *MaskEditor
	backend MaskedEditor
	text    TextEditor
	mode    EditMode
	current DataURL

	mu      sync.Mutex
	pending bool
}

// NewEditSession creates a session that sends masked edits to backend.
// The session starts in EditModeGenerative.
func NewEditSession(editor *MaskEditor, backend MaskedEditor, opts ...SessionOption) *EditSession {
	s := &EditSession{editor: editor, backend: backend, mode: EditModeGenerative}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Editor returns the session's mask editor.
func (s *EditSession) Editor() *MaskEditor {
	return s.editor
}

// Current returns the image the next edit applies to.
func (s *EditSession) Current() DataURL {
	return s.current
}

// Load makes img the current image and loads it into the editor.
func (s *EditSession) Load(img DataURL) error {
	if err := s.editor.LoadData(img.Data); err != nil {
		return err
	}
	if img.MIMEType == "" {
		img.MIMEType = sniffMIME(img.Data)
	}
	s.current = img
	return nil
}

// ApplyGenerativeEdit asks the backend to edit the masked region according
// to prompt. An empty prompt fails with ErrEmptyPrompt and an unpainted mask
// with ErrEmptyMask; the backend is not called in either case.
//
// On success the result becomes the current image and is reloaded into the
// editor, which clears the mask and its history.
func (s *EditSession) ApplyGenerativeEdit(ctx context.Context, prompt string) (DataURL, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return DataURL{}, ErrEmptyPrompt
	}
	if s.current.IsZero() {
		return DataURL{}, ErrNoImage
	}
	mask, err := s.editor.ExportMaskDataURL()
	if err != nil {
		return DataURL{}, err
	}

	done, err := s.begin()
	if err != nil {
		return DataURL{}, err
	}
	defer done()

	Logger().Debug("generative edit", "prompt", prompt, "mask_bytes", len(mask.Data))

	out, err := s.backend.EditWithMask(ctx, s.current, prompt, mask)
	if err != nil {
		return DataURL{}, fmt.Errorf("poster: masked edit: %w", err)
	}
	if err := s.Load(out); err != nil {
		return DataURL{}, err
	}
	return s.current, nil
}

// begin marks an edit as in flight. The returned func clears the mark.
func (s *EditSession) begin() (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return nil, ErrEditInProgress
	}
	s.pending = true
	return func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
	}, nil
}
