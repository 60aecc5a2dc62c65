package editor

import "testing"

func TestRunSearch_FindsAllMatchesCaseInsensitive(t *testing.T) {
	e := newTestEditor("foo Foo\nbar foo")
	e.RunSearch("foo", false)
	if len(e.Search.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d: %+v", len(e.Search.Matches), e.Search.Matches)
	}
}

func TestRunSearch_CaseSensitiveExcludesDifferentCase(t *testing.T) {
	e := newTestEditor("foo Foo")
	e.RunSearch("foo", true)
	if len(e.Search.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(e.Search.Matches))
	}
}

func TestRunSearch_SelectsFirstMatchAtOrAfterCursor(t *testing.T) {
	e := newTestEditor("foo bar foo baz foo")
	e.Cursor = Cursor{Line: 0, Col: 5}
	e.RunSearch("foo", true)
	if e.Search.CurrentIdx != 1 {
		t.Fatalf("expected match index 1 (the occurrence at col 8), got %d", e.Search.CurrentIdx)
	}
}

func TestNextPrev_WrapAround(t *testing.T) {
	e := newTestEditor("foo foo foo")
	e.RunSearch("foo", true)
	if e.Search.CurrentIdx != 0 {
		t.Fatalf("expected first match selected, got %d", e.Search.CurrentIdx)
	}
	e.Next()
	e.Next()
	if e.Search.CurrentIdx != 2 {
		t.Fatalf("expected third match, got %d", e.Search.CurrentIdx)
	}
	e.Next()
	if e.Search.CurrentIdx != 0 {
		t.Errorf("expected Next to wrap around to the first match, got %d", e.Search.CurrentIdx)
	}
	e.Prev()
	if e.Search.CurrentIdx != 2 {
		t.Errorf("expected Prev to wrap around to the last match, got %d", e.Search.CurrentIdx)
	}
}

func TestReplaceCurrent_ReplacesOnlyTheActiveMatch(t *testing.T) {
	e := newTestEditor("foo bar foo")
	e.RunSearch("foo", true)
	if err := e.ReplaceCurrent("baz"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Buffer.Line(0) != "baz bar foo" {
		t.Errorf("expected only the first match replaced, got %q", e.Buffer.Line(0))
	}
}

func TestReplaceAll_ReplacesEveryMatch(t *testing.T) {
	e := newTestEditor("foo bar foo baz foo")
	e.RunSearch("foo", true)
	count, err := e.ReplaceAll("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 replacements, got %d", count)
	}
	if e.Buffer.Line(0) != "x bar x baz x" {
		t.Errorf("expected all matches replaced, got %q", e.Buffer.Line(0))
	}
}

func TestRunSearch_EmptyPatternYieldsNoMatches(t *testing.T) {
	e := newTestEditor("foo")
	e.RunSearch("", true)
	if len(e.Search.Matches) != 0 {
		t.Errorf("expected no matches for empty pattern, got %d", len(e.Search.Matches))
	}
}
