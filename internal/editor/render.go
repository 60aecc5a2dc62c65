package editor

import "github.com/termide/termide/internal/gitdiff"

// RowKind tags a virtual row as either real buffer content or a synthetic
// marker inserted between lines to show HEAD-only deletions.
type RowKind int

const (
	RowContent RowKind = iota
	RowDeletionMarker
)

// Overlay is a bitmask of the layers spec §4.6.5 stacks over a row's base
// (syntax-highlighted) text, applied in ascending order: CursorLine,
// Selection, SearchMatch, CurrentMatch, Cursor.
type Overlay uint8

const (
	OverlayNone         Overlay = 0
	OverlayCursorLine   Overlay = 1 << iota
	OverlaySelection
	OverlaySearchMatch
	OverlayCurrentMatch
	OverlayCursor
)

// Row is one virtual line of the rendered editor viewport.
type Row struct {
	Kind RowKind

	// Content rows:
	Line         int // logical line index
	VisualRow    int // row within the logical line's wrap chunks (0 for no-wrap)
	StartCol     int // first logical column this row covers
	EndCol       int // one past the last logical column this row covers
	Continuation bool // a wrapped row after the line's first visual row
	GitStatus    gitdiff.Status

	// Deletion-marker rows:
	DeletedCount int // number of HEAD-only lines removed at this point
}

// virtualRow is one (line, chunk) pair plus the deletion marker that
// immediately follows it, built once per render pass.
type virtualRow struct {
	row     Row
	marker  bool
	deleted int
}

// buildVirtualLines expands the buffer into the full virtual-line sequence:
// every wrapped visual row of every logical line, each optionally followed
// by a deletion-marker row when the git-diff overlay has HEAD-only lines
// attached there.
func (e *Editor) buildVirtualLines() []Row {
	var rows []Row
	showDiff := e.Config.ShowGitDiff && e.GitDiff != nil && e.GitState.InRepo

	for line := 0; line < e.Buffer.LineCount(); line++ {
		status := gitdiff.Unchanged
		if showDiff && line < len(e.GitState.LineStatus) {
			status = e.GitState.LineStatus[line]
		}

		if e.Config.WordWrap {
			chunks := e.chunksFor(line)
			for i, c := range chunks {
				rows = append(rows, Row{
					Kind:         RowContent,
					Line:         line,
					VisualRow:    i,
					StartCol:     c.StartCol,
					EndCol:       c.EndCol,
					Continuation: i > 0,
					GitStatus:    status,
				})
			}
		} else {
			rows = append(rows, Row{
				Kind:      RowContent,
				Line:      line,
				StartCol:  0,
				EndCol:    e.Buffer.LineRuneCount(line),
				GitStatus: status,
			})
		}

		if showDiff && line < len(e.GitState.DeletedAfter) && e.GitState.DeletedAfter[line] > 0 {
			rows = append(rows, Row{Kind: RowDeletionMarker, DeletedCount: e.GitState.DeletedAfter[line]})
		}
	}

	if showDiff && e.Buffer.LineCount() == 0 && len(e.GitState.DeletedAfter) > 0 && e.GitState.DeletedAfter[0] > 0 {
		rows = append(rows, Row{Kind: RowDeletionMarker, DeletedCount: e.GitState.DeletedAfter[0]})
	}

	return rows
}

// cursorVirtualRow finds the virtual-row index holding the cursor's current
// (line, col) within rows, used to keep the viewport scrolled to it.
func cursorVirtualRow(rows []Row, line, col int) int {
	best := 0
	for i, r := range rows {
		if r.Kind != RowContent || r.Line != line {
			continue
		}
		best = i
		if col >= r.StartCol && col <= r.EndCol {
			return i
		}
	}
	return best
}

// SyncViewport clamps Viewport.TopLine so the cursor's virtual row stays
// within the visible window, scrolling the minimal amount needed.
func (e *Editor) SyncViewport() {
	rows := e.buildVirtualLines()
	cur := cursorVirtualRow(rows, e.Cursor.Line, e.Cursor.Col)

	if cur < e.Viewport.TopLine {
		e.Viewport.TopLine = cur
	} else if e.Viewport.Height > 0 && cur >= e.Viewport.TopLine+e.Viewport.Height {
		e.Viewport.TopLine = cur - e.Viewport.Height + 1
	}
	if e.Viewport.TopLine < 0 {
		e.Viewport.TopLine = 0
	}
	maxTop := len(rows) - 1
	if maxTop < 0 {
		maxTop = 0
	}
	if e.Viewport.TopLine > maxTop {
		e.Viewport.TopLine = maxTop
	}
}

// VisibleRows returns the virtual rows currently within the viewport
// window, for the renderer to draw top-to-bottom.
func (e *Editor) VisibleRows() []Row {
	rows := e.buildVirtualLines()
	top := e.Viewport.TopLine
	if top < 0 {
		top = 0
	}
	if top >= len(rows) {
		return nil
	}
	end := top + e.Viewport.Height
	if e.Viewport.Height <= 0 || end > len(rows) {
		end = len(rows)
	}
	return rows[top:end]
}

// OverlayFor reports which overlay layers apply to logical position
// (line, col) on a content row, per the 5-layer stacking order in spec
// §4.6.5. Layers are combined by the caller (base/syntax color first, then
// each set bit's tint in ascending order).
func (e *Editor) OverlayFor(line, col int) Overlay {
	var o Overlay
	if line == e.Cursor.Line {
		o |= OverlayCursorLine
	}
	if e.Selection.Active && e.positionInSelection(line, col) {
		o |= OverlaySelection
	}
	for i, m := range e.Search.Matches {
		if m.Line == line && col >= m.StartCol && col < m.EndCol {
			o |= OverlaySearchMatch
			if i == e.Search.CurrentIdx {
				o |= OverlayCurrentMatch
			}
		}
	}
	if line == e.Cursor.Line && col == e.Cursor.Col {
		o |= OverlayCursor
	}
	return o
}

func (e *Editor) positionInSelection(line, col int) bool {
	r := e.selectionRange()
	if line < r.StartLine || line > r.EndLine {
		return false
	}
	if r.StartLine == r.EndLine {
		return line == r.StartLine && col >= r.StartCol && col < r.EndCol
	}
	switch line {
	case r.StartLine:
		return col >= r.StartCol
	case r.EndLine:
		return col < r.EndCol
	default:
		return true
	}
}
