package undo

import (
	"errors"
	"testing"
	"time"

	"github.com/termide/termide/internal/apperrors"
)

func fixedClock(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

func TestLog_UndoRedo_RoundTrips(t *testing.T) {
	now := time.Now()
	l := NewLog()
	l.Now = fixedClock(&now)

	l.Push(Edit{Kind: KindInsert, Start: Pos{0, 0}, End: Pos{0, 5}, Inserted: "hello"})
	if !l.Modified() {
		t.Error("expected modified after push")
	}

	inv, err := l.Undo()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Kind != KindDelete || inv.Removed != "hello" {
		t.Errorf("unexpected inverse: %+v", inv)
	}

	if _, err := l.Undo(); !errors.Is(err, apperrors.ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}

	redone, err := l.Redo()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if redone.Inserted != "hello" {
		t.Errorf("unexpected redo: %+v", redone)
	}

	if _, err := l.Redo(); !errors.Is(err, apperrors.ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestLog_Coalesces_ConsecutiveInserts(t *testing.T) {
	now := time.Now()
	l := NewLog()
	l.Now = fixedClock(&now)

	l.Push(Edit{Kind: KindInsert, Start: Pos{0, 0}, End: Pos{0, 1}, Inserted: "a"})
	now = now.Add(10 * time.Millisecond)
	l.Push(Edit{Kind: KindInsert, Start: Pos{0, 1}, End: Pos{0, 2}, Inserted: "b"})

	if len(l.entries) != 1 {
		t.Fatalf("expected coalesced into 1 entry, got %d", len(l.entries))
	}
	inv, err := l.Undo()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Removed != "ab" {
		t.Errorf("expected coalesced removal %q, got %q", "ab", inv.Removed)
	}
}

func TestLog_DoesNotCoalesce_AfterWindowExpires(t *testing.T) {
	now := time.Now()
	l := NewLog()
	l.Now = fixedClock(&now)

	l.Push(Edit{Kind: KindInsert, Start: Pos{0, 0}, End: Pos{0, 1}, Inserted: "a"})
	now = now.Add(500 * time.Millisecond)
	l.Push(Edit{Kind: KindInsert, Start: Pos{0, 1}, End: Pos{0, 2}, Inserted: "b"})

	if len(l.entries) != 2 {
		t.Fatalf("expected 2 separate entries, got %d", len(l.entries))
	}
}

func TestLog_Push_TruncatesRedoTail(t *testing.T) {
	now := time.Now()
	l := NewLog()
	l.Now = fixedClock(&now)

	l.Push(Edit{Kind: KindInsert, Start: Pos{0, 0}, End: Pos{0, 1}, Inserted: "a"})
	l.Flush()
	now = now.Add(time.Second)
	l.Push(Edit{Kind: KindInsert, Start: Pos{0, 1}, End: Pos{0, 2}, Inserted: "b"})
	l.Flush()

	if _, err := l.Undo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// New edit while cursor is mid-history truncates redo.
	now = now.Add(time.Second)
	l.Push(Edit{Kind: KindInsert, Start: Pos{0, 1}, End: Pos{0, 2}, Inserted: "c"})

	if _, err := l.Redo(); !errors.Is(err, apperrors.ErrNothingToRedo) {
		t.Errorf("expected redo tail truncated, got %v", err)
	}
}

func TestLog_ModifiedFlag_ReturnsFalseAfterUndo(t *testing.T) {
	now := time.Now()
	l := NewLog()
	l.Now = fixedClock(&now)

	l.Push(Edit{Kind: KindInsert, Start: Pos{0, 0}, End: Pos{0, 1}, Inserted: "a"})
	l.MarkSaved()
	now = now.Add(time.Second)
	l.Push(Edit{Kind: KindInsert, Start: Pos{0, 1}, End: Pos{0, 2}, Inserted: "b"})
	if !l.Modified() {
		t.Error("expected modified true after edit")
	}
	l.Undo()
	if l.Modified() {
		t.Error("expected modified false after undo returns to saved cursor")
	}
}
