package editor

import (
	"github.com/termide/termide/internal/rope"
	"github.com/termide/termide/internal/undo"
)

// ExternalChangeAction tells the caller what to do after a fs-watcher
// notification that this editor's file changed on disk, per spec §4.6.6.
type ExternalChangeAction int

const (
	// ActionReloaded means the buffer had no unsaved changes and was
	// silently replaced with the new disk content.
	ActionReloaded ExternalChangeAction = iota
	// ActionConfirmNeeded means the buffer is modified; the caller must
	// show a reload-or-keep modal and call ReloadFromDisk or
	// KeepInMemory with the user's answer.
	ActionConfirmNeeded
)

// NotifyExternalChange runs the external-file-change contract: an
// unmodified buffer reloads silently, a modified one defers to the caller
// to prompt. It keeps no record of a confirmation already outstanding:
// each call decides from Modified() alone.
func (e *Editor) NotifyExternalChange(diskContent string) ExternalChangeAction {
	if e.Modified() {
		return ActionConfirmNeeded
	}
	e.ReloadFromDisk(diskContent)
	return ActionReloaded
}

// ReloadFromDisk replaces the buffer with diskContent, resets undo history
// and the cursor, and marks the buffer saved (it now matches disk).
func (e *Editor) ReloadFromDisk(diskContent string) {
	e.Buffer = rope.FromContent(diskContent)
	e.History = undo.NewLog()
	e.Cursor = Cursor{}
	e.Selection = Selection{}
	e.Highlight.Invalidate(0)
	if e.GitDiff != nil {
		gen, st := e.GitDiff.ComputeNow(diskContent)
		if gen >= e.GitGen {
			e.GitGen = gen
			e.GitState = st
		}
	}
}

// KeepInMemory is the no-op counterpart to ReloadFromDisk: the in-memory
// buffer is left untouched, and the next save will overwrite disk.
func (e *Editor) KeepInMemory() {}
