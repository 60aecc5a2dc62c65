// Package undo implements the editor's undo/redo log: an append-only
// history with a cursor separating "done" entries from a redo tail, and
// time-windowed coalescing of consecutive newline-free inserts. It
// generalizes the coalescing idiom sketched in the teacher's
// editor.MessageBuffer history comments into a standalone, clock-injected
// component so tests are deterministic.
package undo

import (
	"time"

	"github.com/termide/termide/internal/apperrors"
)

// coalesceWindow is the maximum elapsed time between two newline-free
// inserts for them to merge into one undo entry.
const coalesceWindow = 400 * time.Millisecond

// Kind tags the variant of an Edit.
type Kind int

const (
	KindInsert Kind = iota
	KindDelete
	KindReplace
)

// Pos is a logical (line, column) position in characters.
type Pos struct {
	Line, Col int
}

// Edit records one reversible text mutation. Insert carries the inserted
// text at Start; Delete carries the removed text spanning [Start, End);
// Replace carries both.
type Edit struct {
	Kind     Kind
	Start    Pos
	End      Pos
	Inserted string
	Removed  string
}

// entry is an Edit plus the timestamp it was pushed, used for coalescing.
type entry struct {
	edit Edit
	at   time.Time
}

// Log is the undo/redo history for one buffer.
type Log struct {
	entries []entry
	cursor  int // index into entries of "current"; entries[cursor:] is redo tail
	savedAt int // cursor value at last save, for the modified flag

	// Now returns the current time; overridable in tests for deterministic
	// coalescing behavior.
	Now func() time.Time
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{Now: time.Now}
}

// Push records edit, truncating any redo tail. Consecutive Insert edits that
// contain no newline, each starting where the previous one ended (so on the
// same line), within the coalesce window and with no intervening Flush,
// merge into the prior entry instead of appending.
func (l *Log) Push(edit Edit) {
	now := l.Now()
	l.entries = l.entries[:l.cursor]

	if l.cursor > 0 && canCoalesce(l.entries[l.cursor-1], edit, now) {
		prev := &l.entries[l.cursor-1]
		prev.edit.Inserted += edit.Inserted
		prev.edit.End = edit.End
		prev.at = now
		return
	}

	l.entries = append(l.entries, entry{edit: edit, at: now})
	l.cursor++
}

// Flush ends any coalescing run (called by MarkSaved and by the editor's
// cursor Move) by forgetting the last entry's timestamp so the next Insert
// cannot merge into it.
func (l *Log) Flush() {
	if l.cursor > 0 {
		l.entries[l.cursor-1].at = time.Time{}
	}
}

func canCoalesce(prev entry, next Edit, now time.Time) bool {
	if prev.edit.Kind != KindInsert || next.Kind != KindInsert {
		return false
	}
	if prev.at.IsZero() {
		return false
	}
	if now.Sub(prev.at) >= coalesceWindow {
		return false
	}
	if prev.edit.End != next.Start {
		return false
	}
	if !onlyPrintable(prev.edit.Inserted) || !onlyPrintable(next.Inserted) {
		return false
	}
	return true
}

func onlyPrintable(s string) bool {
	for _, r := range s {
		if r == '\n' {
			return false
		}
	}
	return true
}

// Undo pops the most recent entry and returns its inverse Edit (suitable
// for direct application to the buffer). Fails with ErrNothingToUndo when
// the log is at the start.
func (l *Log) Undo() (Edit, error) {
	if l.cursor == 0 {
		return Edit{}, apperrors.New(apperrors.KindNothingToUndo, apperrors.ErrNothingToUndo)
	}
	l.cursor--
	return inverse(l.entries[l.cursor].edit), nil
}

// Redo advances past the next entry and returns its original Edit for the
// caller to re-apply to the buffer. Fails with
// ErrNothingToRedo when the cursor is at the tail.
func (l *Log) Redo() (Edit, error) {
	if l.cursor >= len(l.entries) {
		return Edit{}, apperrors.New(apperrors.KindNothingToRedo, apperrors.ErrNothingToRedo)
	}
	e := l.entries[l.cursor].edit
	l.cursor++
	return e, nil
}

func inverse(e Edit) Edit {
	switch e.Kind {
	case KindInsert:
		return Edit{Kind: KindDelete, Start: e.Start, End: e.End, Removed: e.Inserted}
	case KindDelete:
		return Edit{Kind: KindInsert, Start: e.Start, End: e.End, Inserted: e.Removed}
	default: // KindReplace
		return Edit{Kind: KindReplace, Start: e.Start, End: e.End, Inserted: e.Removed, Removed: e.Inserted}
	}
}

// MarkSaved records the current cursor as the saved point.
func (l *Log) MarkSaved() {
	l.savedAt = l.cursor
	l.Flush()
}

// Modified reports whether the log's cursor has moved from the last saved
// point, in either direction.
func (l *Log) Modified() bool {
	return l.cursor != l.savedAt
}
