// Package rope implements the text buffer: an ordered sequence of lines
// with logical (line, column) addressing in characters, plus grapheme-width
// queries for rendering. It generalizes the teacher's fixed-array
// MessageBuffer (100 lines, 79 columns, 1-based indexing) into an unbounded
// slice of lines addressed 0-based, splicing only the affected lines on
// edit rather than rewriting the whole document.
package rope

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/termide/termide/internal/apperrors"
)

// Range is a half-open span between two logical positions: [Start, End).
type Range struct {
	StartLine, StartCol int
	EndLine, EndCol      int
}

// Buffer is a line-indexed, splice-based text store. It is never mutated
// concurrently; the Editor Core is its sole mutator.
type Buffer struct {
	lines []string
}

// New returns an empty buffer: a single empty line.
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// FromContent splits content on '\n' into lines. The split is literal
// (strings.Split semantics): content ending in '\n' yields an empty final
// line, so Content() returns the original text unchanged.
func FromContent(content string) *Buffer {
	if content == "" {
		return New()
	}
	return &Buffer{lines: strings.Split(content, "\n")}
}

// LineCount returns the number of lines, always ≥ 1.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the content of line i, or "" if out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// CharAt returns the rune at (line, col), or 0 if out of range.
func (b *Buffer) CharAt(line, col int) rune {
	l := b.Line(line)
	r := []rune(l)
	if col < 0 || col >= len(r) {
		return 0
	}
	return r[col]
}

// LineRuneCount returns the number of characters on line i.
func (b *Buffer) LineRuneCount(i int) int {
	return len([]rune(b.Line(i)))
}

// LineWidth returns the grapheme-cluster display width of line i (CJK/
// combining-aware), used by the word-wrap engine and renderer.
func (b *Buffer) LineWidth(i int) int {
	return uniseg.StringWidth(b.Line(i))
}

// valid reports whether pos is a legal insertion/cursor point: any line in
// [0, LineCount), any column in [0, LineRuneCount(line)].
func (b *Buffer) valid(line, col int) bool {
	if line < 0 || line >= len(b.lines) {
		return false
	}
	return col >= 0 && col <= len([]rune(b.lines[line]))
}

// Slice returns the text within r as a single '\n'-joined string.
func (b *Buffer) Slice(r Range) (string, error) {
	if !b.valid(r.StartLine, r.StartCol) || !b.validEnd(r.EndLine, r.EndCol) {
		return "", apperrors.New(apperrors.KindInvalidPosition, apperrors.ErrInvalidPosition)
	}
	if r.StartLine == r.EndLine {
		rs := []rune(b.lines[r.StartLine])
		return string(rs[r.StartCol:r.EndCol]), nil
	}
	var sb strings.Builder
	first := []rune(b.lines[r.StartLine])
	sb.WriteString(string(first[r.StartCol:]))
	for l := r.StartLine + 1; l < r.EndLine; l++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[l])
	}
	sb.WriteByte('\n')
	last := []rune(b.lines[r.EndLine])
	sb.WriteString(string(last[:r.EndCol]))
	return sb.String(), nil
}

// validEnd allows EndCol == rune count (exclusive bound at line end).
func (b *Buffer) validEnd(line, col int) bool {
	if line < 0 || line >= len(b.lines) {
		return false
	}
	return col >= 0 && col <= len([]rune(b.lines[line]))
}

// Insert splices text into the buffer at pos, splitting on '\n' into
// multiple lines as needed. Returns the end position of the inserted text.
func (b *Buffer) Insert(line, col int, text string) (endLine, endCol int, err error) {
	if !b.valid(line, col) {
		return 0, 0, apperrors.New(apperrors.KindInvalidPosition, apperrors.ErrInvalidPosition)
	}
	orig := []rune(b.lines[line])
	before := string(orig[:col])
	after := string(orig[col:])

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.lines[line] = before + parts[0] + after
		return line, col + len([]rune(parts[0])), nil
	}

	newLines := make([]string, 0, len(parts))
	newLines = append(newLines, before+parts[0])
	for i := 1; i < len(parts)-1; i++ {
		newLines = append(newLines, parts[i])
	}
	last := parts[len(parts)-1]
	newLines = append(newLines, last+after)

	tail := append([]string{}, b.lines[line+1:]...)
	b.lines = append(b.lines[:line], newLines...)
	b.lines = append(b.lines, tail...)

	endLine = line + len(parts) - 1
	endCol = len([]rune(last))
	return endLine, endCol, nil
}

// Delete removes the text within r and returns the removed text.
func (b *Buffer) Delete(r Range) (removed string, err error) {
	removed, err = b.Slice(r)
	if err != nil {
		return "", err
	}
	first := []rune(b.lines[r.StartLine])
	last := []rune(b.lines[r.EndLine])
	combined := string(first[:r.StartCol]) + string(last[r.EndCol:])

	tail := append([]string{}, b.lines[r.EndLine+1:]...)
	b.lines = append(b.lines[:r.StartLine], combined)
	b.lines = append(b.lines, tail...)
	return removed, nil
}

// Replace deletes r then inserts text at its start, returning the removed
// text and the end position of the inserted text.
func (b *Buffer) Replace(r Range, text string) (removed string, endLine, endCol int, err error) {
	removed, err = b.Delete(r)
	if err != nil {
		return "", 0, 0, err
	}
	endLine, endCol, err = b.Insert(r.StartLine, r.StartCol, text)
	return removed, endLine, endCol, err
}

// Content returns the entire buffer as a '\n'-joined string.
func (b *Buffer) Content() string {
	return strings.Join(b.lines, "\n")
}

// Clear resets the buffer to a single empty line.
func (b *Buffer) Clear() {
	b.lines = []string{""}
}
