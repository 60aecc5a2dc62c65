package editor

import "testing"

func TestBuildVirtualLines_NoWrapOneRowPerLine(t *testing.T) {
	e := newTestEditor("aaa\nbbb\nccc")
	rows := e.buildVirtualLines()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if r.Kind != RowContent || r.Line != i {
			t.Errorf("row %d: expected content row for line %d, got %+v", i, i, r)
		}
	}
}

func TestBuildVirtualLines_WordWrapSplitsLongLines(t *testing.T) {
	e := newTestEditor("aaaaaaaaaa bbbbbbbbbb")
	e.Config.WordWrap = true
	e.Viewport.Width = 10
	rows := e.buildVirtualLines()
	if len(rows) < 2 {
		t.Fatalf("expected at least 2 visual rows, got %d", len(rows))
	}
	if rows[0].Continuation {
		t.Error("expected the first visual row to not be marked a continuation")
	}
	if !rows[1].Continuation {
		t.Error("expected the second visual row to be marked a continuation")
	}
}

func TestSyncViewport_ScrollsDownToKeepCursorVisible(t *testing.T) {
	e := newTestEditor("l0\nl1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9")
	e.Viewport.Height = 3
	e.Cursor.Line = 8
	e.SyncViewport()
	if e.Viewport.TopLine != 6 {
		t.Errorf("expected viewport to scroll so line 8 is the last visible row, got TopLine=%d", e.Viewport.TopLine)
	}
}

func TestSyncViewport_ScrollsUpWhenCursorAboveWindow(t *testing.T) {
	e := newTestEditor("l0\nl1\nl2\nl3\nl4")
	e.Viewport = Viewport{TopLine: 3, Height: 2}
	e.Cursor.Line = 0
	e.SyncViewport()
	if e.Viewport.TopLine != 0 {
		t.Errorf("expected viewport to scroll up to the cursor, got TopLine=%d", e.Viewport.TopLine)
	}
}

func TestOverlayFor_CursorLineAndSelectionAndCursor(t *testing.T) {
	e := newTestEditor("abcdef")
	e.Cursor = Cursor{Line: 0, Col: 3}
	e.Selection = Selection{Anchor: Position{0, 1}, Head: Position{0, 4}, Active: true}

	o := e.OverlayFor(0, 2)
	if o&OverlaySelection == 0 {
		t.Error("expected col 2 to be within the selection")
	}
	if o&OverlayCursor != 0 {
		t.Error("col 2 is not the cursor position")
	}

	o = e.OverlayFor(0, 3)
	if o&OverlayCursor == 0 {
		t.Error("expected col 3 to carry the cursor overlay")
	}
	if o&OverlayCursorLine == 0 {
		t.Error("expected line 0 to carry the cursor-line overlay")
	}
}

func TestOverlayFor_SearchMatchAndCurrentMatch(t *testing.T) {
	e := newTestEditor("foo bar foo")
	e.RunSearch("foo", true)

	o := e.OverlayFor(0, 1)
	if o&OverlaySearchMatch == 0 {
		t.Error("expected col 1 to be inside a search match")
	}
	if o&OverlayCurrentMatch == 0 {
		t.Error("expected the first match to be the current match")
	}

	o = e.OverlayFor(0, 9)
	if o&OverlaySearchMatch == 0 {
		t.Error("expected col 9 to be inside the second match")
	}
	if o&OverlayCurrentMatch != 0 {
		t.Error("expected the second match to not be the current one")
	}
}
