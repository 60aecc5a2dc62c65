package editor

import "strings"

// RunSearch rebuilds the match list for pattern in logical order, then
// selects the first match at or after the cursor, jumping there.
func (e *Editor) RunSearch(pattern string, caseSensitive bool) {
	e.Search = SearchState{Pattern: pattern, CaseSensitive: caseSensitive}
	e.Search.Matches = e.findAll(pattern, caseSensitive)
	e.Search.CurrentIdx = -1
	if len(e.Search.Matches) == 0 {
		return
	}
	for i, m := range e.Search.Matches {
		if m.Line > e.Cursor.Line || (m.Line == e.Cursor.Line && m.StartCol >= e.Cursor.Col) {
			e.jumpToMatch(i)
			return
		}
	}
	e.jumpToMatch(0)
}

func (e *Editor) findAll(pattern string, caseSensitive bool) []SearchMatch {
	if pattern == "" {
		return nil
	}
	needle := pattern
	if !caseSensitive {
		needle = strings.ToLower(pattern)
	}
	needleRunes := []rune(needle)
	if len(needleRunes) == 0 {
		return nil
	}

	var matches []SearchMatch
	for line := 0; line < e.Buffer.LineCount(); line++ {
		hay := e.Buffer.Line(line)
		if !caseSensitive {
			hay = strings.ToLower(hay)
		}
		runes := []rune(hay)
		for i := 0; i+len(needleRunes) <= len(runes); i++ {
			if string(runes[i:i+len(needleRunes)]) == needle {
				matches = append(matches, SearchMatch{Line: line, StartCol: i, EndCol: i + len(needleRunes)})
			}
		}
	}
	return matches
}

func (e *Editor) jumpToMatch(idx int) {
	e.Search.CurrentIdx = idx
	m := e.Search.Matches[idx]
	e.Cursor.Line, e.Cursor.Col = m.Line, m.StartCol
	e.Cursor.Preferred = e.Cursor.Col
	e.Selection = Selection{
		Anchor: Position{Line: m.Line, Col: m.StartCol},
		Head:   Position{Line: m.Line, Col: m.EndCol},
		Active: true,
	}
}

// Next cycles to the next match, wrapping to the first.
func (e *Editor) Next() {
	if len(e.Search.Matches) == 0 {
		return
	}
	e.jumpToMatch((e.Search.CurrentIdx + 1) % len(e.Search.Matches))
}

// Prev cycles to the previous match, wrapping to the last.
func (e *Editor) Prev() {
	if len(e.Search.Matches) == 0 {
		return
	}
	idx := e.Search.CurrentIdx - 1
	if idx < 0 {
		idx = len(e.Search.Matches) - 1
	}
	e.jumpToMatch(idx)
}

// ReplaceCurrent replaces the active match with `with`, then re-runs the
// search so subsequent match indices on the same line stay correct.
func (e *Editor) ReplaceCurrent(with string) error {
	if e.Search.CurrentIdx < 0 || e.Search.CurrentIdx >= len(e.Search.Matches) {
		return nil
	}
	m := e.Search.Matches[e.Search.CurrentIdx]
	e.Selection = Selection{
		Anchor: Position{Line: m.Line, Col: m.StartCol},
		Head:   Position{Line: m.Line, Col: m.EndCol},
		Active: true,
	}
	if err := e.deleteSelection(); err != nil {
		return err
	}
	if err := e.InsertText(with); err != nil {
		return err
	}
	pattern, cs := e.Search.Pattern, e.Search.CaseSensitive
	e.RunSearch(pattern, cs)
	return nil
}

// ReplaceAll replaces every match from the top with `with`, returns the
// count replaced, and clears the selection.
func (e *Editor) ReplaceAll(with string) (int, error) {
	count := 0
	fromLine, fromCol := 0, 0
	for {
		var m SearchMatch
		found := false
		for _, c := range e.findAll(e.Search.Pattern, e.Search.CaseSensitive) {
			if c.Line > fromLine || (c.Line == fromLine && c.StartCol >= fromCol) {
				m, found = c, true
				break
			}
		}
		if !found {
			break
		}
		e.Selection = Selection{
			Anchor: Position{Line: m.Line, Col: m.StartCol},
			Head:   Position{Line: m.Line, Col: m.EndCol},
			Active: true,
		}
		if err := e.deleteSelection(); err != nil {
			return count, err
		}
		if err := e.InsertText(with); err != nil {
			return count, err
		}
		fromLine, fromCol = e.Cursor.Line, e.Cursor.Col
		count++
	}
	e.Selection = Selection{}
	e.Search.Matches = nil
	e.Search.CurrentIdx = -1
	return count, nil
}
