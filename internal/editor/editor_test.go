package editor

import (
	"errors"
	"testing"

	"github.com/termide/termide/internal/apperrors"
)

func newTestEditor(content string) *Editor {
	return New("", content, Config{TabSize: 4})
}

func TestNew_SeedsBufferAndHistory(t *testing.T) {
	e := newTestEditor("hello\nworld")
	if e.Buffer.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", e.Buffer.LineCount())
	}
	if e.Modified() {
		t.Error("expected fresh editor to be unmodified")
	}
}

func TestInsertText_MarksModified(t *testing.T) {
	e := newTestEditor("hello")
	if err := e.InsertChar('!'); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.Modified() {
		t.Error("expected editor to be modified after insert")
	}
	if e.Buffer.Line(0) != "!hello" {
		t.Errorf("expected char inserted at cursor, got %q", e.Buffer.Line(0))
	}
}

func TestMarkSaved_ClearsModified(t *testing.T) {
	e := newTestEditor("hello")
	_ = e.InsertChar('x')
	e.MarkSaved()
	if e.Modified() {
		t.Error("expected MarkSaved to clear the modified flag")
	}
}

func TestRequireWritable_BlocksEditsOnReadOnly(t *testing.T) {
	e := New("", "hello", Config{ReadOnly: true})
	err := e.InsertChar('x')
	if !errors.Is(err, apperrors.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}

func TestSelectAll_SpansWholeBuffer(t *testing.T) {
	e := newTestEditor("ab\ncd")
	e.SelectAll()
	if !e.Selection.Active {
		t.Fatal("expected selection active")
	}
	if e.Selection.Anchor != (Position{0, 0}) {
		t.Errorf("expected anchor at start, got %+v", e.Selection.Anchor)
	}
	if e.Selection.Head != (Position{1, 2}) {
		t.Errorf("expected head at buffer end, got %+v", e.Selection.Head)
	}
}

func TestSaveNow_WritesContentAndMarksSaved(t *testing.T) {
	e := New("/tmp/x.txt", "hello", Config{})
	var written string
	err := e.SaveNow(func(path, content string) error {
		written = content
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != "hello" {
		t.Errorf("expected content written, got %q", written)
	}
	if e.Modified() {
		t.Error("expected SaveNow to mark the buffer saved")
	}
}
