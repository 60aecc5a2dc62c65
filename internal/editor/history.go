package editor

import (
	"github.com/termide/termide/internal/rope"
	"github.com/termide/termide/internal/undo"
)

// Undo reverts the most recent undo-log entry, re-applying its inverse to
// the buffer and leaving the cursor at the change site.
func (e *Editor) Undo() error {
	inv, err := e.History.Undo()
	if err != nil {
		return err
	}
	return e.applyInverse(inv)
}

// Redo re-applies the next entry past the undo cursor.
func (e *Editor) Redo() error {
	edit, err := e.History.Redo()
	if err != nil {
		return err
	}
	return e.applyInverse(edit)
}

// applyInverse applies an already-inverted Edit directly to the buffer,
// bypassing InsertText/deleteRange (which would themselves push a new undo
// entry) and moves the cursor to the edit's resulting position.
func (e *Editor) applyInverse(edit undo.Edit) error {
	switch edit.Kind {
	case undo.KindInsert:
		endLine, endCol, err := e.Buffer.Insert(edit.Start.Line, edit.Start.Col, edit.Inserted)
		if err != nil {
			return err
		}
		e.Cursor.Line, e.Cursor.Col = endLine, endCol
	case undo.KindDelete:
		if _, err := e.Buffer.Delete(rope.Range{
			StartLine: edit.Start.Line, StartCol: edit.Start.Col,
			EndLine: edit.End.Line, EndCol: edit.End.Col,
		}); err != nil {
			return err
		}
		e.Cursor.Line, e.Cursor.Col = edit.Start.Line, edit.Start.Col
	case undo.KindReplace:
		if _, _, _, err := e.Buffer.Replace(rope.Range{
			StartLine: edit.Start.Line, StartCol: edit.Start.Col,
			EndLine: edit.End.Line, EndCol: edit.End.Col,
		}, edit.Inserted); err != nil {
			return err
		}
		e.Cursor.Line, e.Cursor.Col = edit.Start.Line, edit.Start.Col
	}
	e.Cursor.Preferred = e.Cursor.Col
	e.Selection = Selection{}
	e.afterEdit(edit.Start.Line)
	return nil
}
