package editor

import "github.com/termide/termide/internal/wrap"

// Direction is one of the navigation contract's movement kinds
// (spec §4.6.1).
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	DirHome
	DirEnd
	DirPageUp
	DirPageDown
	DirDocHome
	DirDocEnd
)

// Move applies a navigation direction. extendSelection is true when the
// key was held with Shift: an empty selection gets its anchor pinned at
// the current cursor before the head moves; a non-empty selection simply
// extends. Without extension, any existing selection is cleared.
func (e *Editor) Move(dir Direction, extendSelection bool) {
	e.History.Flush()
	if extendSelection {
		if !e.Selection.Active {
			e.Selection.Anchor = Position{Line: e.Cursor.Line, Col: e.Cursor.Col}
			e.Selection.Active = true
		}
	} else {
		e.Selection = Selection{}
	}

	if e.Config.WordWrap {
		e.moveVisual(dir)
	} else {
		e.moveLogical(dir)
	}

	if extendSelection {
		e.Selection.Head = Position{Line: e.Cursor.Line, Col: e.Cursor.Col}
	}
}

func (e *Editor) chunksFor(line int) []wrap.Chunk {
	return wrap.Wrap(e.Buffer.Line(line), e.Viewport.Width, e.Config.SmartWrap)
}

func (e *Editor) moveLogical(dir Direction) {
	switch dir {
	case DirLeft:
		if e.Cursor.Col > 0 {
			e.Cursor.Col--
		} else if e.Cursor.Line > 0 {
			e.Cursor.Line--
			e.Cursor.Col = e.Buffer.LineRuneCount(e.Cursor.Line)
		}
		e.Cursor.Preferred = e.Cursor.Col
	case DirRight:
		if e.Cursor.Col < e.Buffer.LineRuneCount(e.Cursor.Line) {
			e.Cursor.Col++
		} else if e.Cursor.Line < e.Buffer.LineCount()-1 {
			e.Cursor.Line++
			e.Cursor.Col = 0
		}
		e.Cursor.Preferred = e.Cursor.Col
	case DirUp:
		if e.Cursor.Line > 0 {
			e.Cursor.Line--
			e.clampToPreferred()
		}
	case DirDown:
		if e.Cursor.Line < e.Buffer.LineCount()-1 {
			e.Cursor.Line++
			e.clampToPreferred()
		}
	case DirHome:
		e.Cursor.Col = 0
		e.Cursor.Preferred = 0
	case DirEnd:
		e.Cursor.Col = e.Buffer.LineRuneCount(e.Cursor.Line)
		e.Cursor.Preferred = e.Cursor.Col
	case DirPageUp:
		e.Cursor.Line = clampLine(e.Cursor.Line-e.Viewport.Height, 0, e.Buffer.LineCount()-1)
		e.clampToPreferred()
	case DirPageDown:
		e.Cursor.Line = clampLine(e.Cursor.Line+e.Viewport.Height, 0, e.Buffer.LineCount()-1)
		e.clampToPreferred()
	case DirDocHome:
		e.Cursor.Line, e.Cursor.Col, e.Cursor.Preferred = 0, 0, 0
	case DirDocEnd:
		e.Cursor.Line = e.Buffer.LineCount() - 1
		e.Cursor.Col = e.Buffer.LineRuneCount(e.Cursor.Line)
		e.Cursor.Preferred = e.Cursor.Col
	}
}

func (e *Editor) clampToPreferred() {
	max := e.Buffer.LineRuneCount(e.Cursor.Line)
	if e.Cursor.Preferred < max {
		e.Cursor.Col = e.Cursor.Preferred
	} else {
		e.Cursor.Col = max
	}
}

func clampLine(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// moveVisual implements the word-wrap-mode navigation contract: up/down
// move by visual row, home/end act on the visual line, and page-up/down
// move by viewport height in visual rows.
func (e *Editor) moveVisual(dir Direction) {
	switch dir {
	case DirLeft, DirRight, DirDocHome, DirDocEnd:
		e.moveLogical(dir)
		return
	}

	chunks := e.chunksFor(e.Cursor.Line)
	row, col := wrap.VisualFromLogical(chunks, e.Cursor.Col)

	switch dir {
	case DirHome:
		e.Cursor.Col = wrap.LogicalFromVisual(chunks, row, 0)
		e.Cursor.Preferred = e.Cursor.Col
	case DirEnd:
		rowWidth := chunks[row].EndCol - chunks[row].StartCol
		e.Cursor.Col = wrap.LogicalFromVisual(chunks, row, rowWidth)
		e.Cursor.Preferred = e.Cursor.Col
	case DirUp:
		e.stepVisualRow(row, col, -1)
	case DirDown:
		e.stepVisualRow(row, col, 1)
	case DirPageUp:
		for i := 0; i < e.Viewport.Height; i++ {
			e.stepVisualRow(-1, e.Cursor.Preferred, -1)
		}
	case DirPageDown:
		for i := 0; i < e.Viewport.Height; i++ {
			e.stepVisualRow(-1, e.Cursor.Preferred, 1)
		}
	}
}

// stepVisualRow moves one visual row in delta's direction (+1/-1) from
// (curRow, curCol) on the current logical line, crossing into the
// adjacent logical line's first/last visual row when needed. Pass
// curRow=-1 to recompute it from the live cursor (used by the page
// stepping loop, which must re-derive position each iteration since the
// logical line may have changed).
func (e *Editor) stepVisualRow(curRow, curCol, delta int) {
	chunks := e.chunksFor(e.Cursor.Line)
	if curRow < 0 {
		curRow, _ = wrap.VisualFromLogical(chunks, e.Cursor.Col)
	}
	nextRow := curRow + delta
	if nextRow >= 0 && nextRow < len(chunks) {
		e.Cursor.Col = wrap.LogicalFromVisual(chunks, nextRow, curCol)
		return
	}
	if delta < 0 {
		if e.Cursor.Line == 0 {
			e.Cursor.Col = wrap.LogicalFromVisual(chunks, 0, curCol)
			return
		}
		e.Cursor.Line--
		prevChunks := e.chunksFor(e.Cursor.Line)
		e.Cursor.Col = wrap.LogicalFromVisual(prevChunks, len(prevChunks)-1, curCol)
		return
	}
	if e.Cursor.Line >= e.Buffer.LineCount()-1 {
		e.Cursor.Col = wrap.LogicalFromVisual(chunks, len(chunks)-1, curCol)
		return
	}
	e.Cursor.Line++
	nextChunks := e.chunksFor(e.Cursor.Line)
	e.Cursor.Col = wrap.LogicalFromVisual(nextChunks, 0, curCol)
}
