// Package highlight implements the syntax highlight cache: a line-keyed
// cache of styled segments, invalidated conservatively from an edit point
// forward and lazily filled by the renderer. Tokenization is delegated to
// github.com/alecthomas/chroma/v2's lexer registry; the mapping from
// symbolic token class to color lives in the theme, not here.
package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Style is a symbolic highlight class; the theme maps these to colors.
type Style int

const (
	StyleNone Style = iota
	StyleKeyword
	StyleString
	StyleComment
	StyleNumber
	StyleOperator
	StyleFunction
	StyleType
	StyleVariable
)

// Segment is a styled byte range within a line: [Start, End) in bytes.
type Segment struct {
	Start, End int
	Style      Style
}

// LineSource supplies line text to the cache by index.
type LineSource interface {
	Line(i int) string
	LineCount() int
}

// Cache holds per-line segment lists for one buffer, keyed by line index.
// A line entry is absent until first requested (lazy fill).
type Cache struct {
	lexer    chroma.Lexer
	segments map[int][]Segment
}

// New returns a cache that tokenizes with the lexer registered for
// filename (by extension/name), falling back to a no-op plain lexer when
// the language is unrecognized.
func New(filename string) *Cache {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Cache{
		lexer:    chroma.Coalesce(lexer),
		segments: make(map[int][]Segment),
	}
}

// Invalidate drops cached segments for every line at or after `from`,
// conservative about the fact that a change to an open string or comment
// affects everything downstream of it.
func (c *Cache) Invalidate(from int) {
	for line := range c.segments {
		if line >= from {
			delete(c.segments, line)
		}
	}
}

// SegmentsFor returns the styled segments for line content `text` at index
// `line`, filling the cache on a miss.
func (c *Cache) SegmentsFor(line int, text string) []Segment {
	if segs, ok := c.segments[line]; ok {
		return segs
	}
	segs := c.tokenizeLine(text)
	c.segments[line] = segs
	return segs
}

// tokenizeLine runs the line through the lexer in isolation. Chroma lexers
// are designed to tokenize a whole source; tokenizing per-line loses
// cross-line state (e.g. block comments), so a line inside a multi-line
// construct is styled as if it stood alone. The invalidate-from-edit-point-
// forward policy above only ensures that every line at or after an edit is
// re-tokenized.
func (c *Cache) tokenizeLine(text string) []Segment {
	if text == "" {
		return nil
	}
	iter, err := c.lexer.Tokenise(nil, text)
	if err != nil {
		return []Segment{{Start: 0, End: len(text), Style: StyleNone}}
	}
	var segs []Segment
	offset := 0
	for _, tok := range iter.Tokens() {
		n := len(tok.Value)
		if n == 0 {
			continue
		}
		segs = append(segs, Segment{
			Start: offset,
			End:   offset + n,
			Style: styleFor(tok.Type),
		})
		offset += n
	}
	return segs
}

func styleFor(t chroma.TokenType) Style {
	switch {
	case t.InCategory(chroma.Keyword):
		return StyleKeyword
	case t.InCategory(chroma.String):
		return StyleString
	case t.InCategory(chroma.Comment):
		return StyleComment
	case t.InCategory(chroma.Number):
		return StyleNumber
	case t.InCategory(chroma.Operator), t.InCategory(chroma.Punctuation):
		return StyleOperator
	case t.InCategory(chroma.Name):
		if t == chroma.NameFunction {
			return StyleFunction
		}
		if t == chroma.NameClass || t == chroma.NameBuiltin {
			return StyleType
		}
		return StyleVariable
	default:
		return StyleNone
	}
}
