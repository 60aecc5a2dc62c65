// Package wrap implements the word-wrap engine as a pure function module:
// given a line of text, a viewport width and a smart-wrap flag, it computes
// the visual row boundaries and maps logical columns to visual (row, col)
// and back. It generalizes the teacher's editor.WordWrapper — which wraps
// a fixed 79-column BBS message line by scanning for the last space before
// that column — to an arbitrary width measured in grapheme-cluster display
// columns via github.com/rivo/uniseg, so CJK/combining characters count
// correctly.
//
// Both cursor navigation and mouse-to-position translation in the editor
// core go through this package, per the "mouse/wrap math duplication"
// design note: there is exactly one implementation of wrap math.
package wrap

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Chunk is one visual row produced by wrapping a logical line: the
// half-open rune range [StartCol, EndCol) of the line that it covers.
type Chunk struct {
	StartCol, EndCol int
}

// Wrap splits line into visual-row chunks. width is the number of display
// columns available; smart selects word-boundary wrapping over hard
// character wrapping. An empty line always yields exactly one chunk.
func Wrap(line string, width int, smart bool) []Chunk {
	if width < 1 {
		width = 1
	}
	runes := []rune(line)
	if len(runes) == 0 {
		return []Chunk{{0, 0}}
	}

	var chunks []Chunk
	start := 0
	for start < len(runes) {
		end := advance(runes, start, width)
		if smart && end < len(runes) {
			if brk := rewindToWhitespace(runes, start, end); brk > start {
				end = brk
			}
		}
		if end <= start {
			end = start + 1 // always make progress even if one rune overflows width
		}
		chunks = append(chunks, Chunk{StartCol: start, EndCol: end})
		start = end
	}
	return chunks
}

// advance returns the furthest index end such that the grapheme clusters in
// runes[start:end] fit within width display columns, advancing by at least
// one rune.
func advance(runes []rune, start, width int) int {
	col := 0
	i := start
	state := -1
	for i < len(runes) {
		cluster, rest, w, newState := uniseg.FirstGraphemeClusterInString(string(runes[i:]), state)
		_ = rest
		state = newState
		n := len([]rune(cluster))
		if n == 0 {
			n = 1
		}
		if col > 0 && col+w > width {
			break
		}
		col += w
		i += n
		if col >= width {
			break
		}
	}
	if i == start {
		i = start + 1
	}
	return i
}

// rewindToWhitespace finds the last whitespace rune within (start, end],
// returning the column just after it so the break lands after the space.
// Returns start if no whitespace was found in the chunk (caller falls back
// to a hard break at end).
func rewindToWhitespace(runes []rune, start, end int) int {
	for i := end; i > start; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return start
}

// VisualFromLogical maps a logical column on a line to its visual
// (row, col) position given the line's chunks.
func VisualFromLogical(chunks []Chunk, col int) (row, visualCol int) {
	for i, c := range chunks {
		if col >= c.StartCol && col <= c.EndCol {
			return i, col - c.StartCol
		}
	}
	last := len(chunks) - 1
	if last < 0 {
		return 0, 0
	}
	return last, chunks[last].EndCol - chunks[last].StartCol
}

// LogicalFromVisual maps a visual (row, col) back to a logical column,
// clamped to the chunk's bounds.
func LogicalFromVisual(chunks []Chunk, row, visualCol int) int {
	if row < 0 {
		row = 0
	}
	if row >= len(chunks) {
		row = len(chunks) - 1
	}
	if row < 0 {
		return 0
	}
	c := chunks[row]
	col := c.StartCol + visualCol
	if col > c.EndCol {
		col = c.EndCol
	}
	if col < c.StartCol {
		col = c.StartCol
	}
	return col
}

// Width returns the grapheme-cluster display width of s (CJK/combining
// clusters count as their true terminal column width).
func Width(s string) int {
	return uniseg.StringWidth(s)
}
