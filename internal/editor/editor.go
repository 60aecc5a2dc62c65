// Package editor implements the Editor Core: cursor, selection, viewport,
// search/replace, clipboard, and the key-command table that drives a
// rope-backed buffer. It is grounded on the teacher's FSEditor (internal
// component composition of buffer + word-wrapper + command handler +
// screen, 1-based cursor/viewport fields, insertMode/modified/quit flags),
// generalized from a full-screen BBS message editor (subject/recipient/
// quote metadata, DOS color codes) to a 0-based source-code editor wired
// to internal/rope, internal/undo, internal/wrap, internal/highlight, and
// internal/gitdiff.
package editor

import (
	"github.com/termide/termide/internal/apperrors"
	"github.com/termide/termide/internal/clipboard"
	"github.com/termide/termide/internal/gitdiff"
	"github.com/termide/termide/internal/highlight"
	"github.com/termide/termide/internal/rope"
	"github.com/termide/termide/internal/undo"
)

// Position is a logical (line, column) address in characters.
type Position = undo.Pos

// Cursor is the logical edit position plus the remembered preferred column
// used when moving vertically across lines of different lengths.
type Cursor struct {
	Line, Col int
	Preferred int
}

// Selection is an anchor/head pair of logical positions; empty when anchor
// equals head.
type Selection struct {
	Anchor, Head Position
	Active       bool
}

// Viewport is the visible window into the virtual-line sequence, measured
// in virtual rows when word-wrap or the git-diff overlay is active.
type Viewport struct {
	TopLine, LeftCol int
	Width, Height    int
}

// SearchMatch is one located occurrence of the active search pattern.
type SearchMatch struct {
	Line, StartCol, EndCol int
}

// SearchState holds the live search/replace session, persisting across
// modal close/reopen per spec §4.6.4.
type SearchState struct {
	Pattern       string
	CaseSensitive bool
	Matches       []SearchMatch
	CurrentIdx    int
}

// Config is the subset of internal/config.Config an editor instance reads.
type Config struct {
	TabSize      int
	WordWrap     bool
	SmartWrap    bool
	ShowGitDiff  bool
	SpacesForTab bool
	ReadOnly     bool
}

// Editor is one open file's full live state.
type Editor struct {
	Buffer    *rope.Buffer
	History   *undo.Log
	Cursor    Cursor
	Selection Selection
	Viewport  Viewport
	Search    SearchState
	Highlight *highlight.Cache
	GitDiff   *gitdiff.Engine
	GitState  gitdiff.State
	GitGen    int64

	Config Config
	Path   string // empty for an untitled buffer
}

// New returns an editor over content for the given path (empty for
// untitled), seeding the highlight cache from the path's extension.
func New(path, content string, cfg Config) *Editor {
	e := &Editor{
		Buffer:    rope.FromContent(content),
		History:   undo.NewLog(),
		Highlight: highlight.New(path),
		Config:    cfg,
		Path:      path,
	}
	if path != "" {
		e.GitDiff = gitdiff.NewEngine(dirOf(path), path)
	}
	return e
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}

// Modified reports whether the buffer has unsaved changes, per spec §4.2
// (undo cursor differs from the saved baseline).
func (e *Editor) Modified() bool {
	return e.History.Modified()
}

// MarkSaved records the current undo cursor as the saved baseline, called
// after a successful write-to-disk.
func (e *Editor) MarkSaved() {
	e.History.MarkSaved()
}

func (e *Editor) requireWritable() error {
	if e.Config.ReadOnly {
		return apperrors.New(apperrors.KindReadOnly, apperrors.ErrReadOnly)
	}
	return nil
}

// afterEdit runs the side effects named in spec §4.6.2 beyond the buffer
// mutation and undo push themselves: invalidate syntax from the edit line
// and schedule a debounced git-diff recompute.
func (e *Editor) afterEdit(fromLine int) {
	e.Highlight.Invalidate(fromLine)
	if e.GitDiff != nil {
		e.GitDiff.ScheduleAfterEdit(e.Buffer.Content(), func(gen int64, st gitdiff.State) {
			if gen < e.GitGen {
				return
			}
			e.GitGen = gen
			e.GitState = st
		})
	}
}

// SaveNow writes the buffer's content to Path and triggers an immediate
// (non-debounced) git-diff recompute, per spec §4.5 ("triggered on save").
func (e *Editor) SaveNow(write func(path, content string) error) error {
	content := e.Buffer.Content()
	if err := write(e.Path, content); err != nil {
		return apperrors.New(apperrors.KindIO, err)
	}
	e.MarkSaved()
	if e.GitDiff != nil {
		gen, st := e.GitDiff.ComputeNow(content)
		if gen >= e.GitGen {
			e.GitGen = gen
			e.GitState = st
		}
	}
	return nil
}

func (e *Editor) selectionRange() rope.Range {
	a, h := e.Selection.Anchor, e.Selection.Head
	if a.Line > h.Line || (a.Line == h.Line && a.Col > h.Col) {
		a, h = h, a
	}
	return rope.Range{StartLine: a.Line, StartCol: a.Col, EndLine: h.Line, EndCol: h.Col}
}

// clipboardText reads the active selection text, or the current line if
// none, per spec §4.6.3.
func (e *Editor) clipboardText() string {
	if e.Selection.Active {
		r := e.selectionRange()
		text, err := e.Buffer.Slice(r)
		if err != nil {
			return ""
		}
		return text
	}
	return e.Buffer.Line(e.Cursor.Line) + "\n"
}

// Copy writes the selection (or current line) to the system clipboard.
func (e *Editor) Copy() error {
	return clipboard.Write(e.clipboardText())
}

// Cut copies then deletes the selection (or current line).
func (e *Editor) Cut() error {
	if err := e.requireWritable(); err != nil {
		return err
	}
	text := e.clipboardText()
	if err := clipboard.Write(text); err != nil {
		return err
	}
	if e.Selection.Active {
		return e.deleteSelection()
	}
	var r rope.Range
	if e.Cursor.Line == e.Buffer.LineCount()-1 {
		r = rope.Range{StartLine: e.Cursor.Line, StartCol: 0, EndLine: e.Cursor.Line, EndCol: e.Buffer.LineRuneCount(e.Cursor.Line)}
	} else {
		r = rope.Range{StartLine: e.Cursor.Line, StartCol: 0, EndLine: e.Cursor.Line + 1, EndCol: 0}
	}
	return e.deleteRange(r)
}

// Paste inserts clipboard text at the cursor, deleting any selection
// first.
func (e *Editor) Paste() error {
	if err := e.requireWritable(); err != nil {
		return err
	}
	text, err := clipboard.Read()
	if err != nil {
		return err
	}
	return e.InsertText(text)
}

// SelectAll sets the selection to span the whole buffer, per spec §4.6.3.
func (e *Editor) SelectAll() {
	last := e.Buffer.LineCount() - 1
	e.Selection = Selection{
		Anchor: Position{Line: 0, Col: 0},
		Head:   Position{Line: last, Col: e.Buffer.LineRuneCount(last)},
		Active: true,
	}
	e.Cursor.Line, e.Cursor.Col = last, e.Buffer.LineRuneCount(last)
}
