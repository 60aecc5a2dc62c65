package editor

import "testing"

func TestMove_LeftRightCrossLineBoundaries(t *testing.T) {
	e := newTestEditor("ab\ncd")
	e.Cursor = Cursor{Line: 0, Col: 0}
	e.Move(DirLeft, false)
	if e.Cursor.Line != 0 || e.Cursor.Col != 0 {
		t.Errorf("expected left at buffer start to stay put, got %+v", e.Cursor)
	}

	e.Cursor = Cursor{Line: 0, Col: 2}
	e.Move(DirRight, false)
	if e.Cursor.Line != 1 || e.Cursor.Col != 0 {
		t.Errorf("expected right at line end to wrap to next line, got %+v", e.Cursor)
	}

	e.Move(DirLeft, false)
	if e.Cursor.Line != 0 || e.Cursor.Col != 2 {
		t.Errorf("expected left at col 0 to wrap to previous line end, got %+v", e.Cursor)
	}
}

func TestMove_UpDownClampsToPreferredColumn(t *testing.T) {
	e := newTestEditor("abcdef\nab\nabcdef")
	e.Cursor = Cursor{Line: 0, Col: 5, Preferred: 5}
	e.Move(DirDown, false)
	if e.Cursor.Line != 1 || e.Cursor.Col != 2 {
		t.Errorf("expected clamp to short line's length, got %+v", e.Cursor)
	}
	if e.Cursor.Preferred != 5 {
		t.Errorf("expected preferred column retained across the short line, got %d", e.Cursor.Preferred)
	}
	e.Move(DirDown, false)
	if e.Cursor.Line != 2 || e.Cursor.Col != 5 {
		t.Errorf("expected cursor restored to preferred column, got %+v", e.Cursor)
	}
}

func TestMove_HomeEndOnLogicalLine(t *testing.T) {
	e := newTestEditor("hello world")
	e.Cursor = Cursor{Line: 0, Col: 5}
	e.Move(DirEnd, false)
	if e.Cursor.Col != 11 {
		t.Errorf("expected end of line, got col %d", e.Cursor.Col)
	}
	e.Move(DirHome, false)
	if e.Cursor.Col != 0 {
		t.Errorf("expected start of line, got col %d", e.Cursor.Col)
	}
}

func TestMove_ExtendSelectionPinsAnchorOnce(t *testing.T) {
	e := newTestEditor("abcdef")
	e.Cursor = Cursor{Line: 0, Col: 1}
	e.Move(DirRight, true)
	e.Move(DirRight, true)
	if !e.Selection.Active {
		t.Fatal("expected selection active")
	}
	if e.Selection.Anchor != (Position{0, 1}) {
		t.Errorf("expected anchor pinned at the movement's start, got %+v", e.Selection.Anchor)
	}
	if e.Selection.Head != (Position{0, 3}) {
		t.Errorf("expected head at the cursor's new position, got %+v", e.Selection.Head)
	}
}

func TestMove_WithoutExtendClearsSelection(t *testing.T) {
	e := newTestEditor("abcdef")
	e.Selection = Selection{Anchor: Position{0, 0}, Head: Position{0, 3}, Active: true}
	e.Move(DirRight, false)
	if e.Selection.Active {
		t.Error("expected plain movement to clear the selection")
	}
}

func TestMoveVisual_DownStepsIntoNextWrappedChunk(t *testing.T) {
	e := newTestEditor("aaaaaaaaaa bbbbbbbbbb")
	e.Config.WordWrap = true
	e.Viewport = Viewport{Width: 10, Height: 5}
	e.Cursor = Cursor{Line: 0, Col: 2, Preferred: 2}
	e.Move(DirDown, false)
	if e.Cursor.Line != 0 {
		t.Fatalf("expected to stay on the same logical line, got line %d", e.Cursor.Line)
	}
	if e.Cursor.Col <= 10 {
		t.Errorf("expected cursor to land in the second visual chunk, got col %d", e.Cursor.Col)
	}
}
