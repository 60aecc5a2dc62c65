package highlight

import "testing"

func TestCache_SegmentsFor_CachesResult(t *testing.T) {
	c := New("main.go")
	segs1 := c.SegmentsFor(0, "func main() {}")
	segs2 := c.SegmentsFor(0, "func main() {}")
	if len(segs1) == 0 {
		t.Fatal("expected at least one segment")
	}
	if &segs1[0] != &segs2[0] {
		t.Error("expected the same cached slice to be returned on a hit")
	}
}

func TestCache_Invalidate_DropsFromPointForward(t *testing.T) {
	c := New("main.go")
	c.SegmentsFor(0, "package main")
	c.SegmentsFor(1, "func main() {}")
	c.SegmentsFor(2, "// done")

	c.Invalidate(1)

	if _, ok := c.segments[0]; !ok {
		t.Error("expected line 0 to remain cached")
	}
	if _, ok := c.segments[1]; ok {
		t.Error("expected line 1 invalidated")
	}
	if _, ok := c.segments[2]; ok {
		t.Error("expected line 2 invalidated")
	}
}

func TestCache_EmptyLine_NoSegments(t *testing.T) {
	c := New("main.go")
	segs := c.SegmentsFor(0, "")
	if len(segs) != 0 {
		t.Errorf("expected no segments for empty line, got %d", len(segs))
	}
}

func TestCache_UnknownLanguage_FallsBackToPlain(t *testing.T) {
	c := New("unknown.xyz123")
	segs := c.SegmentsFor(0, "some text")
	if len(segs) == 0 {
		t.Error("expected fallback lexer to still produce a segment")
	}
}
