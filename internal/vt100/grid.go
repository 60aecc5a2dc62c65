// Package vt100 implements the VT100-capable terminal panel: a PTY host
// driving an ANSI/VT100 parser state machine over a cell grid with
// scrollback. The parser's state machine (Ground → Escape → CSI/OSC/DCS →
// Ground) and its CSI dispatch table are grounded on the teacher's
// internal/terminal.ANSIParser, generalized from "parser calls back into a
// BBS screen renderer" to "parser writes directly into an owned Grid",
// with full 256-color/truecolor SGR, DECSET/DECRST mode handling, alt
// screen, and bracketed paste added to satisfy spec §4.7/§6.
package vt100

import "github.com/termide/termide/pkg/goturbotui"

// Cell is one terminal grid cell.
type Cell struct {
	Ch    rune
	Style goturbotui.Style
}

// Cursor tracks position, visibility and save/restore state.
type Cursor struct {
	X, Y           int
	SavedX, SavedY int
	Visible        bool
	AppMode        bool // application-cursor-key mode (DECSET ?1)
}

// Grid is the 2D cell buffer with scrollback, a primary and an alternate
// screen (DECSET ?47/1047/1049), and terminal mode flags.
type Grid struct {
	Width, Height int

	primary   [][]Cell
	alternate [][]Cell
	useAlt    bool

	Scrollback     [][]Cell
	maxScrollback  int
	scrollTop      int
	scrollBottom   int

	Cursor Cursor

	WrapMode       bool
	BracketedPaste bool // DECSET ?2004
	AltScreen      bool // currently on the alternate screen
	Title          string
}

const defaultMaxScrollback = 5000

// NewGrid returns a grid sized width×height with default modes.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width: width, Height: height,
		maxScrollback: defaultMaxScrollback,
		scrollBottom:  height - 1,
		WrapMode:      true,
	}
	g.primary = newCells(width, height)
	g.alternate = newCells(width, height)
	g.Cursor = Cursor{Visible: true}
	return g
}

func newCells(width, height int) [][]Cell {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Cell{Ch: ' '}
		}
	}
	return cells
}

func (g *Grid) screen() [][]Cell {
	if g.useAlt {
		return g.alternate
	}
	return g.primary
}

// Cell returns the cell at (x, y) on the active screen, or a blank cell if
// out of range.
func (g *Grid) Cell(x, y int) Cell {
	scr := g.screen()
	if y < 0 || y >= len(scr) || x < 0 || x >= len(scr[y]) {
		return Cell{Ch: ' '}
	}
	return scr[y][x]
}

// SetCell writes a styled rune at (x, y) on the active screen.
func (g *Grid) SetCell(x, y int, ch rune, style goturbotui.Style) {
	scr := g.screen()
	if y < 0 || y >= len(scr) || x < 0 || x >= len(scr[y]) {
		return
	}
	scr[y][x] = Cell{Ch: ch, Style: style}
}

// EnterAltScreen switches to the alternate screen buffer, clearing it.
func (g *Grid) EnterAltScreen() {
	if g.useAlt {
		return
	}
	g.useAlt = true
	g.AltScreen = true
	g.alternate = newCells(g.Width, g.Height)
}

// ExitAltScreen switches back to the primary screen buffer.
func (g *Grid) ExitAltScreen() {
	g.useAlt = false
	g.AltScreen = false
}

// ScrollDown shifts the scroll region up by n rows (content moves up,
// i.e. output "scrolls down" the page), pushing the top row of the region
// into scrollback when scrolling the primary screen's full-height region.
func (g *Grid) ScrollDown(n int) {
	scr := g.screen()
	top, bottom := g.scrollRegion()
	for i := 0; i < n; i++ {
		if top == 0 && bottom == g.Height-1 && !g.useAlt {
			g.pushScrollback(scr[top])
		}
		copy(scr[top:bottom], scr[top+1:bottom+1])
		scr[bottom] = blankRow(g.Width)
	}
}

// ScrollUp shifts the scroll region down by n rows (reverse index).
func (g *Grid) ScrollUp(n int) {
	scr := g.screen()
	top, bottom := g.scrollRegion()
	for i := 0; i < n; i++ {
		copy(scr[top+1:bottom+1], scr[top:bottom])
		scr[top] = blankRow(g.Width)
	}
}

func (g *Grid) scrollRegion() (top, bottom int) {
	top, bottom = g.scrollTop, g.scrollBottom
	if bottom >= g.Height {
		bottom = g.Height - 1
	}
	if top < 0 || top > bottom {
		top = 0
	}
	return
}

// SetScrollRegion sets the DECSTBM scroll region, 0-based inclusive.
func (g *Grid) SetScrollRegion(top, bottom int) {
	g.scrollTop = top
	g.scrollBottom = bottom
}

func (g *Grid) pushScrollback(row []Cell) {
	cp := make([]Cell, len(row))
	copy(cp, row)
	g.Scrollback = append(g.Scrollback, cp)
	if len(g.Scrollback) > g.maxScrollback {
		g.Scrollback = g.Scrollback[len(g.Scrollback)-g.maxScrollback:]
	}
}

func blankRow(width int) []Cell {
	row := make([]Cell, width)
	for i := range row {
		row[i] = Cell{Ch: ' '}
	}
	return row
}

// EraseDisplay implements ED: mode 0 = cursor-to-end, 1 = start-to-cursor,
// 2/3 = entire screen.
func (g *Grid) EraseDisplay(mode int) {
	scr := g.screen()
	switch mode {
	case 0:
		g.eraseLineFrom(g.Cursor.Y, g.Cursor.X, g.Width)
		for y := g.Cursor.Y + 1; y < g.Height; y++ {
			scr[y] = blankRow(g.Width)
		}
	case 1:
		for y := 0; y < g.Cursor.Y; y++ {
			scr[y] = blankRow(g.Width)
		}
		g.eraseLineFrom(g.Cursor.Y, 0, g.Cursor.X+1)
	default:
		for y := 0; y < g.Height; y++ {
			scr[y] = blankRow(g.Width)
		}
	}
}

// EraseLine implements EL: mode 0 = cursor-to-end, 1 = start-to-cursor,
// 2 = entire line.
func (g *Grid) EraseLine(mode int) {
	switch mode {
	case 0:
		g.eraseLineFrom(g.Cursor.Y, g.Cursor.X, g.Width)
	case 1:
		g.eraseLineFrom(g.Cursor.Y, 0, g.Cursor.X+1)
	default:
		g.eraseLineFrom(g.Cursor.Y, 0, g.Width)
	}
}

func (g *Grid) eraseLineFrom(y, start, end int) {
	scr := g.screen()
	if y < 0 || y >= len(scr) {
		return
	}
	if start < 0 {
		start = 0
	}
	if end > g.Width {
		end = g.Width
	}
	for x := start; x < end; x++ {
		scr[y][x] = Cell{Ch: ' '}
	}
}

// Resize changes the grid dimensions, preserving overlapping content on
// both screens and adjusting the scroll region bounds.
func (g *Grid) Resize(width, height int) {
	g.primary = resizeCells(g.primary, g.Width, g.Height, width, height)
	g.alternate = resizeCells(g.alternate, g.Width, g.Height, width, height)
	g.Width, g.Height = width, height
	g.scrollBottom = height - 1
	if g.Cursor.X >= width {
		g.Cursor.X = width - 1
	}
	if g.Cursor.Y >= height {
		g.Cursor.Y = height - 1
	}
}

func resizeCells(old [][]Cell, oldW, oldH, newW, newH int) [][]Cell {
	cells := newCells(newW, newH)
	for y := 0; y < oldH && y < newH; y++ {
		for x := 0; x < oldW && x < newW; x++ {
			cells[y][x] = old[y][x]
		}
	}
	return cells
}
