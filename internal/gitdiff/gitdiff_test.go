package gitdiff

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func initRepo(t *testing.T, dir, path, content string) {
	t.Helper()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init", "-q")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")
	full := filepath.Join(dir, path)
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	run("add", path)
	run("commit", "-q", "-m", "initial")
}

func TestEngine_Compute_UnchangedWhenIdentical(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir, "a.txt", "one\ntwo\nthree")

	e := NewEngine(dir, "a.txt")
	st := e.Compute("one\ntwo\nthree")
	if !st.InRepo {
		t.Fatal("expected InRepo true")
	}
	for i, s := range st.LineStatus {
		if s != Unchanged {
			t.Errorf("line %d: expected Unchanged, got %v", i, s)
		}
	}
}

func TestEngine_Compute_DetectsModifiedAndDeleted(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir, "a.txt", "one\ntwo\nthree\nfour")

	e := NewEngine(dir, "a.txt")
	st := e.Compute("one\nTWO\nfour")
	if st.LineStatus[1] != Modified {
		t.Errorf("expected line 1 Modified, got %v", st.LineStatus[1])
	}
	total := 0
	for _, n := range st.DeletedAfter {
		total += n
	}
	if total == 0 {
		t.Error("expected at least one deletion recorded")
	}
}

func TestEngine_Compute_EmptyBufferAgainstNonEmptyHead(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir, "a.txt", "one\ntwo\nthree")

	e := NewEngine(dir, "a.txt")
	st := e.Compute("")
	if len(st.DeletedAfter) == 0 {
		t.Fatal("expected DeletedAfter to have at least one slot for an empty buffer")
	}
	if st.DeletedAfter[0] != 3 {
		t.Errorf("expected all 3 HEAD lines recorded as deleted after index 0, got %d", st.DeletedAfter[0])
	}
}

func TestEngine_Compute_NotInRepo_AllUnchanged(t *testing.T) {
	dir := t.TempDir()
	e := NewEngine(dir, "nope.txt")
	st := e.Compute("anything")
	if st.InRepo {
		t.Error("expected InRepo false outside a repository")
	}
	for _, s := range st.LineStatus {
		if s != Unchanged {
			t.Error("expected all-Unchanged when not in a repo")
		}
	}
}
