package poster

import (
	"context"
	"errors"
	"testing"
)

type fakeBackend struct {
	calls  int
	prompt string
	mask   DataURL
	result DataURL
	err    error
}

func (f *fakeBackend) EditWithMask(_ context.Context, _ DataURL, prompt string, mask DataURL) (DataURL, error) {
	f.calls++
	f.prompt = prompt
	f.mask = mask
	return f.result, f.err
}

func newTestSession(t *testing.T, backend *fakeBackend) *EditSession {
	t.Helper()
	ed, err := NewMaskEditor(100, 100)
	if err != nil {
		t.Fatal(err)
	}
	s := NewEditSession(ed, backend)
	if err := s.Load(NewDataURL(encodePNG(t, solidImage(100, 100, opaqueBlack)))); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s
}

func TestEditSessionRejectsEmptyInput(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestSession(t, backend)

	if _, err := s.ApplyGenerativeEdit(context.Background(), "replace the sky"); !errors.Is(err, ErrEmptyMask) {
		t.Errorf("edit with empty mask error = %v, want ErrEmptyMask", err)
	}

	drawStroke(s.Editor(), Pt(50, 50))
	if _, err := s.ApplyGenerativeEdit(context.Background(), "   "); !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("edit with blank prompt error = %v, want ErrEmptyPrompt", err)
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times, want 0", backend.calls)
	}
}

func TestEditSessionApply(t *testing.T) {
	result := NewDataURL(encodePNG(t, solidImage(200, 100, opaqueRed)))
	backend := &fakeBackend{result: result}
	s := newTestSession(t, backend)
	if s.Current().MIMEType != "image/png" {
		t.Errorf("Current().MIMEType = %q, want image/png", s.Current().MIMEType)
	}

	drawStroke(s.Editor(), Pt(20, 20), Pt(80, 80))
	got, err := s.ApplyGenerativeEdit(context.Background(), " add a moon ")
	if err != nil {
		t.Fatalf("ApplyGenerativeEdit() error = %v", err)
	}
	if backend.prompt != "add a moon" {
		t.Errorf("prompt = %q, want trimmed", backend.prompt)
	}
	if backend.mask.MIMEType != "image/png" || len(backend.mask.Data) == 0 {
		t.Errorf("mask sent = %q (%d bytes), want PNG", backend.mask.MIMEType, len(backend.mask.Data))
	}
	if string(got.Data) != string(result.Data) || string(s.Current().Data) != string(result.Data) {
		t.Error("result did not become the current image")
	}

	// Reloading the result clears the mask and its history.
	ed := s.Editor()
	if ed.CanUndo() || !ed.MaskSurface().IsZero() {
		t.Error("mask or history survived the edit")
	}
	if m := ed.MaskSurface(); m.Width() != 100 || m.Height() != 50 {
		t.Errorf("mask after edit = %dx%d, want 100x50", m.Width(), m.Height())
	}
}

func TestEditSessionBackendError(t *testing.T) {
	boom := errors.New("quota exceeded")
	s := newTestSession(t, &fakeBackend{err: boom})
	drawStroke(s.Editor(), Pt(50, 50))
	before := s.Current()

	if _, err := s.ApplyGenerativeEdit(context.Background(), "edit"); !errors.Is(err, boom) {
		t.Errorf("ApplyGenerativeEdit() error = %v, want %v", err, boom)
	}
	if string(s.Current().Data) != string(before.Data) {
		t.Error("failed edit replaced the current image")
	}
	if !s.Editor().CanUndo() {
		t.Error("failed edit cleared the mask history")
	}
}

func TestEditSessionNoImage(t *testing.T) {
	ed, _ := NewMaskEditor(10, 10)
	s := NewEditSession(ed, &fakeBackend{})
	if _, err := s.ApplyGenerativeEdit(context.Background(), "edit"); !errors.Is(err, ErrNoImage) {
		t.Errorf("ApplyGenerativeEdit() error = %v, want ErrNoImage", err)
	}
}
