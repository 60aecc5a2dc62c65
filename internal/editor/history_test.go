package editor

import (
	"errors"
	"testing"

	"github.com/termide/termide/internal/apperrors"
)

func TestUndoRedo_RevertsAndReappliesDistinctEdits(t *testing.T) {
	e := newTestEditor("")
	if err := e.InsertText("hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.Move(DirEnd, false) // flushes coalescing between the two inserts
	if err := e.InsertText(" world"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Buffer.Content() != "hello world" {
		t.Fatalf("setup: expected %q, got %q", "hello world", e.Buffer.Content())
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Buffer.Content() != "hello" {
		t.Errorf("expected the second insert undone, got %q", e.Buffer.Content())
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Buffer.Content() != "" {
		t.Errorf("expected the first insert undone, got %q", e.Buffer.Content())
	}

	if err := e.Redo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Buffer.Content() != "hello" {
		t.Errorf("expected redo to reapply the first insert, got %q", e.Buffer.Content())
	}
}

func TestUndo_NothingToUndoOnFreshEditor(t *testing.T) {
	e := newTestEditor("hello")
	err := e.Undo()
	if !errors.Is(err, apperrors.ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestRedo_NothingToRedoAtTail(t *testing.T) {
	e := newTestEditor("hello")
	_ = e.InsertChar('!')
	err := e.Redo()
	if !errors.Is(err, apperrors.ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}
}
