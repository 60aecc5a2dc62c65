package vt100

import "testing"

func TestParser_PrintsText(t *testing.T) {
	g := NewGrid(10, 3)
	p := NewParser(g)
	p.Write([]byte("hi"))
	if g.Cell(0, 0).Ch != 'h' || g.Cell(1, 0).Ch != 'i' {
		t.Fatalf("expected 'hi' at row 0, got %q%q", g.Cell(0, 0).Ch, g.Cell(1, 0).Ch)
	}
	if g.Cursor.X != 2 {
		t.Errorf("expected cursor at column 2, got %d", g.Cursor.X)
	}
}

func TestParser_WrapsAtLineEnd(t *testing.T) {
	g := NewGrid(3, 3)
	p := NewParser(g)
	p.Write([]byte("abcd"))
	if g.Cell(0, 1).Ch != 'd' {
		t.Errorf("expected wrap to put 'd' at row 1 col 0, got %q", g.Cell(0, 1).Ch)
	}
}

func TestParser_CUPMovesCursor(t *testing.T) {
	g := NewGrid(10, 10)
	p := NewParser(g)
	p.Write([]byte("\x1b[3;5H"))
	if g.Cursor.Y != 2 || g.Cursor.X != 4 {
		t.Fatalf("expected cursor at (4,2), got (%d,%d)", g.Cursor.X, g.Cursor.Y)
	}
}

func TestParser_SGRTruecolor(t *testing.T) {
	g := NewGrid(10, 3)
	p := NewParser(g)
	p.Write([]byte("\x1b[38;2;10;20;30mX"))
	cell := g.Cell(0, 0)
	if cell.Style.Foreground.R != 10 || cell.Style.Foreground.G != 20 || cell.Style.Foreground.B != 30 {
		t.Errorf("expected truecolor fg (10,20,30), got %+v", cell.Style.Foreground)
	}
}

func TestParser_EraseDisplayClearsFromCursor(t *testing.T) {
	g := NewGrid(5, 2)
	p := NewParser(g)
	p.Write([]byte("hello"))
	p.Write([]byte("\x1b[H\x1b[0J"))
	if g.Cell(0, 0).Ch != ' ' {
		t.Error("expected erase from cursor to clear the line")
	}
}

func TestParser_AltScreenModeSwitchesBuffer(t *testing.T) {
	g := NewGrid(5, 2)
	p := NewParser(g)
	p.Write([]byte("main"))
	p.Write([]byte("\x1b[?1049h"))
	if !g.AltScreen {
		t.Fatal("expected alt screen active")
	}
	if g.Cell(0, 0).Ch != ' ' {
		t.Error("expected alt screen to start blank")
	}
	p.Write([]byte("\x1b[?1049l"))
	if g.Cell(0, 0).Ch != 'm' {
		t.Error("expected primary screen content restored")
	}
}

func TestParser_BracketedPasteMode(t *testing.T) {
	g := NewGrid(5, 2)
	p := NewParser(g)
	if g.BracketedPaste {
		t.Fatal("expected bracketed paste off by default")
	}
	p.Write([]byte("\x1b[?2004h"))
	if !g.BracketedPaste {
		t.Error("expected bracketed paste enabled")
	}
}

func TestColor256_CubeAndGrayscale(t *testing.T) {
	black := color256(16)
	if black.R != 0 || black.G != 0 || black.B != 0 {
		t.Errorf("expected cube index 16 to be black, got %+v", black)
	}
	gray := color256(232)
	if gray.R != gray.G || gray.G != gray.B {
		t.Errorf("expected grayscale ramp entry to have equal channels, got %+v", gray)
	}
}
