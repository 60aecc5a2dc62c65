package editor

import (
	"strings"

	"github.com/termide/termide/internal/rope"
	"github.com/termide/termide/internal/undo"
)

// deleteSelection removes the active selection's text, clears it, and
// leaves the cursor at the selection start. The undo entry is recorded by
// deleteRange; only an error is returned.
func (e *Editor) deleteSelection() error {
	r := e.selectionRange()
	if err := e.deleteRange(r); err != nil {
		return err
	}
	e.Selection = Selection{}
	return nil
}

// deleteRange deletes r from the buffer, records the inverse in the undo
// log, moves the cursor to the range start, and runs the post-edit side
// effects.
func (e *Editor) deleteRange(r rope.Range) error {
	removed, err := e.Buffer.Delete(r)
	if err != nil {
		return err
	}
	e.History.Push(undo.Edit{
		Kind:    undo.KindDelete,
		Start:   undo.Pos{Line: r.StartLine, Col: r.StartCol},
		End:     undo.Pos{Line: r.EndLine, Col: r.EndCol},
		Removed: removed,
	})
	e.Cursor.Line, e.Cursor.Col = r.StartLine, r.StartCol
	e.Cursor.Preferred = e.Cursor.Col
	e.afterEdit(r.StartLine)
	return nil
}

// InsertText inserts text at the cursor, deleting any active selection
// first, and moves the cursor to the end of the inserted text.
func (e *Editor) InsertText(text string) error {
	if err := e.requireWritable(); err != nil {
		return err
	}
	if e.Selection.Active {
		if err := e.deleteSelection(); err != nil {
			return err
		}
	}
	startLine, startCol := e.Cursor.Line, e.Cursor.Col
	endLine, endCol, err := e.Buffer.Insert(startLine, startCol, text)
	if err != nil {
		return err
	}
	e.History.Push(undo.Edit{
		Kind:     undo.KindInsert,
		Start:    undo.Pos{Line: startLine, Col: startCol},
		End:      undo.Pos{Line: endLine, Col: endCol},
		Inserted: text,
	})
	e.Cursor.Line, e.Cursor.Col = endLine, endCol
	e.Cursor.Preferred = e.Cursor.Col
	e.afterEdit(startLine)
	return nil
}

// InsertChar inserts a single character at the cursor. Tab expands to
// Config.TabSize spaces when SpacesForTab is set, otherwise a literal tab
// byte, per spec §4.6.2.
func (e *Editor) InsertChar(c rune) error {
	if c == '\t' && e.Config.SpacesForTab {
		width := e.Config.TabSize
		if width <= 0 {
			width = 4
		}
		return e.InsertText(strings.Repeat(" ", width))
	}
	return e.InsertText(string(c))
}

// InsertNewline deletes the selection (if any) then splits the current
// line at the cursor.
func (e *Editor) InsertNewline() error {
	return e.InsertText("\n")
}

// Backspace deletes the selection if non-empty, else the character before
// the cursor, joining with the previous line at column 0.
func (e *Editor) Backspace() error {
	if err := e.requireWritable(); err != nil {
		return err
	}
	if e.Selection.Active {
		return e.deleteSelection()
	}
	line, col := e.Cursor.Line, e.Cursor.Col
	if col == 0 {
		if line == 0 {
			return nil
		}
		prevLen := e.Buffer.LineRuneCount(line - 1)
		return e.deleteRange(rope.Range{StartLine: line - 1, StartCol: prevLen, EndLine: line, EndCol: 0})
	}
	return e.deleteRange(rope.Range{StartLine: line, StartCol: col - 1, EndLine: line, EndCol: col})
}

// Delete removes the character after the cursor, joining with the next
// line at the end of the current one.
func (e *Editor) Delete() error {
	if err := e.requireWritable(); err != nil {
		return err
	}
	if e.Selection.Active {
		return e.deleteSelection()
	}
	line, col := e.Cursor.Line, e.Cursor.Col
	lineLen := e.Buffer.LineRuneCount(line)
	if col >= lineLen {
		if line >= e.Buffer.LineCount()-1 {
			return nil
		}
		return e.deleteRange(rope.Range{StartLine: line, StartCol: col, EndLine: line + 1, EndCol: 0})
	}
	return e.deleteRange(rope.Range{StartLine: line, StartCol: col, EndLine: line, EndCol: col + 1})
}

// DuplicateLineOrSelection duplicates the selection (inserted at the
// selection end, with the cursor left at the start of the copy) or, with
// no selection, the current line (inserted on the next line, with the
// cursor on the copy at its original column).
func (e *Editor) DuplicateLineOrSelection() error {
	if err := e.requireWritable(); err != nil {
		return err
	}
	if e.Selection.Active {
		r := e.selectionRange()
		text, err := e.Buffer.Slice(r)
		if err != nil {
			return err
		}
		e.Selection = Selection{}
		e.Cursor.Line, e.Cursor.Col = r.EndLine, r.EndCol
		if err := e.InsertText(text); err != nil {
			return err
		}
		e.Cursor.Line, e.Cursor.Col = r.EndLine, r.EndCol
		e.Cursor.Preferred = r.EndCol
		return nil
	}
	line := e.Cursor.Line
	text := e.Buffer.Line(line)
	savedCol := e.Cursor.Col
	e.Cursor.Line = line
	e.Cursor.Col = e.Buffer.LineRuneCount(line)
	if err := e.InsertText("\n" + text); err != nil {
		return err
	}
	e.Cursor.Line = line + 1
	e.Cursor.Col = savedCol
	e.Cursor.Preferred = savedCol
	return nil
}

// IndentSelection indents (or, with shiftUnindent, unindents) every line
// covered by the selection by one tab width. A single-line Shift-Tab with
// no selection unindents only the current line's start, per spec §4.6.2.
func (e *Editor) IndentSelection(shiftUnindent bool) error {
	if err := e.requireWritable(); err != nil {
		return err
	}
	width := e.Config.TabSize
	if width <= 0 {
		width = 4
	}
	indent := strings.Repeat(" ", width)

	startLine, endLine := e.Cursor.Line, e.Cursor.Line
	if e.Selection.Active {
		r := e.selectionRange()
		startLine, endLine = r.StartLine, r.EndLine
		if r.EndCol == 0 && endLine > startLine {
			endLine--
		}
	}

	for line := startLine; line <= endLine; line++ {
		text := e.Buffer.Line(line)
		if shiftUnindent {
			cut := 0
			switch {
			case strings.HasPrefix(text, indent):
				cut = width
			case strings.HasPrefix(text, "\t"):
				cut = 1
			default:
				continue
			}
			r := rope.Range{StartLine: line, StartCol: 0, EndLine: line, EndCol: cut}
			removed, err := e.Buffer.Delete(r)
			if err != nil {
				return err
			}
			e.History.Push(undo.Edit{Kind: undo.KindDelete, Start: undo.Pos{Line: line, Col: 0}, End: undo.Pos{Line: line, Col: cut}, Removed: removed})
		} else {
			if _, _, err := e.Buffer.Insert(line, 0, indent); err != nil {
				return err
			}
			e.History.Push(undo.Edit{Kind: undo.KindInsert, Start: undo.Pos{Line: line, Col: 0}, End: undo.Pos{Line: line, Col: len([]rune(indent))}, Inserted: indent})
		}
	}
	e.afterEdit(startLine)
	return nil
}
