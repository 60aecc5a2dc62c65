package editor

import "testing"

func TestNotifyExternalChange_SilentlyReloadsWhenUnmodified(t *testing.T) {
	e := newTestEditor("old content")
	action := e.NotifyExternalChange("new content")
	if action != ActionReloaded {
		t.Fatalf("expected ActionReloaded, got %v", action)
	}
	if e.Buffer.Content() != "new content" {
		t.Errorf("expected buffer reloaded from disk, got %q", e.Buffer.Content())
	}
	if e.Modified() {
		t.Error("expected reloaded buffer to be unmodified")
	}
}

func TestNotifyExternalChange_RequiresConfirmationWhenModified(t *testing.T) {
	e := newTestEditor("old content")
	_ = e.InsertChar('!')
	action := e.NotifyExternalChange("new content")
	if action != ActionConfirmNeeded {
		t.Fatalf("expected ActionConfirmNeeded, got %v", action)
	}
	if e.Buffer.Content() == "new content" {
		t.Error("expected buffer left untouched pending confirmation")
	}
}

func TestReloadFromDisk_ResetsCursorAndHistory(t *testing.T) {
	e := newTestEditor("hello")
	_ = e.InsertChar('!')
	e.Cursor = Cursor{Line: 0, Col: 5}
	e.ReloadFromDisk("fresh")
	if e.Cursor != (Cursor{}) {
		t.Errorf("expected cursor reset, got %+v", e.Cursor)
	}
	if err := e.Undo(); err == nil {
		t.Error("expected a fresh history with nothing to undo")
	}
}
