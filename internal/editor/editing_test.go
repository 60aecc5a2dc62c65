package editor

import "testing"

func TestInsertText_ReplacesActiveSelection(t *testing.T) {
	e := newTestEditor("hello world")
	e.Selection = Selection{Anchor: Position{0, 0}, Head: Position{0, 5}, Active: true}
	if err := e.InsertText("goodbye"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Buffer.Line(0) != "goodbye world" {
		t.Errorf("expected selection replaced, got %q", e.Buffer.Line(0))
	}
	if e.Selection.Active {
		t.Error("expected selection cleared after replace")
	}
}

func TestBackspace_JoinsPreviousLineAtColumnZero(t *testing.T) {
	e := newTestEditor("foo\nbar")
	e.Cursor = Cursor{Line: 1, Col: 0}
	if err := e.Backspace(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Buffer.LineCount() != 1 || e.Buffer.Line(0) != "foobar" {
		t.Errorf("expected lines joined, got %d lines: %q", e.Buffer.LineCount(), e.Buffer.Line(0))
	}
	if e.Cursor.Line != 0 || e.Cursor.Col != 3 {
		t.Errorf("expected cursor at join point, got %+v", e.Cursor)
	}
}

func TestDelete_JoinsNextLineAtLineEnd(t *testing.T) {
	e := newTestEditor("foo\nbar")
	e.Cursor = Cursor{Line: 0, Col: 3}
	if err := e.Delete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Buffer.LineCount() != 1 || e.Buffer.Line(0) != "foobar" {
		t.Errorf("expected lines joined, got %d lines: %q", e.Buffer.LineCount(), e.Buffer.Line(0))
	}
}

func TestDuplicateLineOrSelection_NoSelectionDuplicatesCurrentLine(t *testing.T) {
	e := newTestEditor("foo\nbar")
	e.Cursor = Cursor{Line: 0, Col: 2}
	if err := e.DuplicateLineOrSelection(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Buffer.LineCount() != 3 || e.Buffer.Line(0) != "foo" || e.Buffer.Line(1) != "foo" {
		t.Errorf("expected line duplicated, got lines: %q %q %q", e.Buffer.Line(0), e.Buffer.Line(1), e.Buffer.Line(2))
	}
	if e.Cursor.Line != 1 || e.Cursor.Col != 2 {
		t.Errorf("expected cursor on the duplicate at the same column, got %+v", e.Cursor)
	}
}

func TestDuplicateLineOrSelection_WithSelectionDuplicatesRange(t *testing.T) {
	e := newTestEditor("abcdef")
	e.Selection = Selection{Anchor: Position{0, 0}, Head: Position{0, 3}, Active: true}
	if err := e.DuplicateLineOrSelection(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Buffer.Line(0) != "abcabcdef" {
		t.Errorf("expected selection duplicated in place, got %q", e.Buffer.Line(0))
	}
}

func TestIndentSelection_IndentsEveryCoveredLine(t *testing.T) {
	e := newTestEditor("aaa\nbbb\nccc")
	e.Selection = Selection{Anchor: Position{0, 1}, Head: Position{2, 1}, Active: true}
	if err := e.IndentSelection(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []string{"    aaa", "    bbb", "    ccc"} {
		if got := e.Buffer.Line(i); got != want {
			t.Errorf("line %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestIndentSelection_UnindentStripsLeadingTabOrSpaces(t *testing.T) {
	e := newTestEditor("    aaa\n\tbbb\nccc")
	e.Selection = Selection{Anchor: Position{0, 0}, Head: Position{2, 0}, Active: true}
	if err := e.IndentSelection(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Buffer.Line(0) != "aaa" {
		t.Errorf("expected spaces stripped, got %q", e.Buffer.Line(0))
	}
	if e.Buffer.Line(1) != "bbb" {
		t.Errorf("expected tab stripped, got %q", e.Buffer.Line(1))
	}
	if e.Buffer.Line(2) != "ccc" {
		t.Errorf("expected unindented line with no indent left unchanged, got %q", e.Buffer.Line(2))
	}
}

func TestInsertChar_TabExpandsToSpacesWhenConfigured(t *testing.T) {
	e := New("", "", Config{TabSize: 2, SpacesForTab: true})
	if err := e.InsertChar('\t'); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Buffer.Line(0) != "  " {
		t.Errorf("expected 2 spaces, got %q", e.Buffer.Line(0))
	}
}
