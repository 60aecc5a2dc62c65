package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingSession_ReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(dir, "/some/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ProjectDir != "/some/project" || len(s.Groups) != 0 {
		t.Errorf("expected empty session, got %+v", s)
	}
}

func TestSaveLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	s := Session{
		ProjectDir: "/some/project",
		SavedAt:    time.Unix(1000, 0).UTC(),
		Groups: []GroupState{
			{Weight: 1, Panels: []PanelState{
				{Kind: PanelEditor, Expanded: true, Path: "main.go", CursorLine: 3, CursorCol: 5},
			}},
		},
	}
	if err := Save(dir, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(dir, "/some/project")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Groups) != 1 || loaded.Groups[0].Panels[0].Path != "main.go" {
		t.Errorf("unexpected round trip: %+v", loaded)
	}
}

func TestHashCwd_Deterministic(t *testing.T) {
	a := HashCwd("/a/b")
	b := HashCwd("/a/b")
	c := HashCwd("/a/c")
	if a != b {
		t.Error("expected same hash for same path")
	}
	if a == c {
		t.Error("expected different hash for different path")
	}
}

func TestCleanStale_RemovesOldSessions(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.toml")
	fresh := filepath.Join(dir, "fresh.toml")
	if err := os.WriteFile(old, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fresh, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-40 * 24 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	if err := CleanStale(dir, 30, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expected old session removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("expected fresh session kept")
	}
}
