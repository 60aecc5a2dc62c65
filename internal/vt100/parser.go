package vt100

import "github.com/termide/termide/pkg/goturbotui"

// parserState mirrors the teacher's ANSIParser ground/escape/CSI/OSC/DCS
// state machine in internal/terminal.ANSIParser.
type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateCSI
	stateOSC
	stateDCS
)

// Parser is a byte-stream VT100/ANSI decoder that writes directly into an
// owned Grid. It generalizes the teacher's callback-driven ANSIParser
// (which pushed text/cursor/graphics/clear/scroll events out to a BBS
// screen renderer) into a parser that owns its output grid, since
// TermIDE's terminal panel has no separate renderer to notify: the Grid
// itself is read directly by internal/render.
type Parser struct {
	state parserState
	grid  *Grid

	params    []int
	curParam  string
	private   byte // '?' for DEC private sequences
	oscBuf    []byte
	intermediate byte

	curStyle goturbotui.Style

	// OnTitle is invoked when an OSC 0/2 sets the window/tab title.
	OnTitle func(string)
	// OnBell is invoked on BEL (0x07).
	OnBell func()
}

// NewParser returns a parser that writes into grid.
func NewParser(grid *Grid) *Parser {
	return &Parser{grid: grid, curStyle: goturbotui.NewStyle()}
}

// Write feeds raw PTY output bytes into the parser, advancing the grid.
// Implements io.Writer so the PTY host can use the parser directly as a
// copy destination.
func (p *Parser) Write(data []byte) (int, error) {
	for _, b := range data {
		p.feed(b)
	}
	return len(data), nil
}

func (p *Parser) feed(b byte) {
	switch p.state {
	case stateGround:
		p.feedGround(b)
	case stateEscape:
		p.feedEscape(b)
	case stateCSI:
		p.feedCSI(b)
	case stateOSC:
		p.feedOSC(b)
	case stateDCS:
		p.feedDCS(b)
	}
}

func (p *Parser) feedGround(b byte) {
	switch b {
	case 0x1b:
		p.state = stateEscape
	case '\r':
		p.grid.Cursor.X = 0
	case '\n':
		p.lineFeed()
	case '\t':
		p.tab()
	case 0x08: // backspace
		if p.grid.Cursor.X > 0 {
			p.grid.Cursor.X--
		}
	case 0x07: // BEL
		if p.OnBell != nil {
			p.OnBell()
		}
	default:
		if b >= 0x20 {
			p.printByte(rune(b))
		}
	}
}

func (p *Parser) printByte(r rune) {
	g := p.grid
	if g.Cursor.X >= g.Width {
		if g.WrapMode {
			g.Cursor.X = 0
			p.lineFeed()
		} else {
			g.Cursor.X = g.Width - 1
		}
	}
	g.SetCell(g.Cursor.X, g.Cursor.Y, r, p.curStyle)
	g.Cursor.X++
}

func (p *Parser) lineFeed() {
	g := p.grid
	top, bottom := g.scrollRegion()
	if g.Cursor.Y >= bottom {
		g.ScrollDown(1)
		g.Cursor.Y = bottom
	} else if g.Cursor.Y < top {
		g.Cursor.Y++
	} else {
		g.Cursor.Y++
	}
}

func (p *Parser) tab() {
	g := p.grid
	next := (g.Cursor.X/8 + 1) * 8
	if next >= g.Width {
		next = g.Width - 1
	}
	g.Cursor.X = next
}

func (p *Parser) feedEscape(b byte) {
	switch b {
	case '[':
		p.state = stateCSI
		p.params = p.params[:0]
		p.curParam = ""
		p.private = 0
		p.intermediate = 0
	case ']':
		p.state = stateOSC
		p.oscBuf = p.oscBuf[:0]
	case 'P':
		p.state = stateDCS
		p.oscBuf = p.oscBuf[:0]
	case 'c':
		p.resetTerminal()
		p.state = stateGround
	case 'D':
		p.lineFeed()
		p.state = stateGround
	case 'M':
		g := p.grid
		top, _ := g.scrollRegion()
		if g.Cursor.Y <= top {
			g.ScrollUp(1)
		} else {
			g.Cursor.Y--
		}
		p.state = stateGround
	case '7':
		p.grid.Cursor.SavedX, p.grid.Cursor.SavedY = p.grid.Cursor.X, p.grid.Cursor.Y
		p.state = stateGround
	case '8':
		p.grid.Cursor.X, p.grid.Cursor.Y = p.grid.Cursor.SavedX, p.grid.Cursor.SavedY
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

func (p *Parser) feedCSI(b byte) {
	switch {
	case b == '?' || b == '>' || b == '=':
		p.private = b
	case b >= '0' && b <= '9':
		p.curParam += string(b)
	case b == ';':
		p.pushParam()
	case b >= 0x20 && b <= 0x2f:
		p.intermediate = b
	default:
		p.pushParam()
		p.executeCSI(b)
		p.state = stateGround
	}
}

func (p *Parser) pushParam() {
	if p.curParam == "" {
		p.params = append(p.params, -1)
	} else {
		n := 0
		for _, c := range p.curParam {
			n = n*10 + int(c-'0')
		}
		p.params = append(p.params, n)
	}
	p.curParam = ""
}

func (p *Parser) param(i, def int) int {
	if i >= len(p.params) || p.params[i] < 0 {
		return def
	}
	return p.params[i]
}

func (p *Parser) executeCSI(final byte) {
	g := p.grid
	switch final {
	case 'A': // CUU
		g.Cursor.Y = max(0, g.Cursor.Y-p.param(0, 1))
	case 'B': // CUD
		g.Cursor.Y = min(g.Height-1, g.Cursor.Y+p.param(0, 1))
	case 'C': // CUF
		g.Cursor.X = min(g.Width-1, g.Cursor.X+p.param(0, 1))
	case 'D': // CUB
		g.Cursor.X = max(0, g.Cursor.X-p.param(0, 1))
	case 'G': // CHA
		g.Cursor.X = clamp(p.param(0, 1)-1, 0, g.Width-1)
	case 'd': // VPA
		g.Cursor.Y = clamp(p.param(0, 1)-1, 0, g.Height-1)
	case 'H', 'f': // CUP / HVP
		row := clamp(p.param(0, 1)-1, 0, g.Height-1)
		col := clamp(p.param(1, 1)-1, 0, g.Width-1)
		g.Cursor.Y, g.Cursor.X = row, col
	case 'J': // ED
		g.EraseDisplay(p.param(0, 0))
	case 'K': // EL
		g.EraseLine(p.param(0, 0))
	case 'S': // SU
		g.ScrollDown(p.param(0, 1))
	case 'T': // SD
		g.ScrollUp(p.param(0, 1))
	case 'r': // DECSTBM
		top := p.param(0, 1) - 1
		bottom := p.param(1, g.Height) - 1
		if top < 0 {
			top = 0
		}
		g.SetScrollRegion(top, bottom)
	case 'm': // SGR
		p.handleSGR()
	case 'h', 'l':
		p.handleMode(final == 'h')
	case 's':
		g.Cursor.SavedX, g.Cursor.SavedY = g.Cursor.X, g.Cursor.Y
	case 'u':
		g.Cursor.X, g.Cursor.Y = g.Cursor.SavedX, g.Cursor.SavedY
	}
}

func (p *Parser) handleMode(set bool) {
	g := p.grid
	for _, mode := range p.params {
		if p.private != '?' {
			continue
		}
		switch mode {
		case 1: // DECCKM application cursor keys
			g.Cursor.AppMode = set
		case 7: // DECAWM autowrap
			g.WrapMode = set
		case 25: // DECTCEM cursor visibility
			g.Cursor.Visible = set
		case 1049, 47, 1047: // alternate screen buffer
			if set {
				g.EnterAltScreen()
			} else {
				g.ExitAltScreen()
			}
		case 2004: // bracketed paste
			g.BracketedPaste = set
		}
	}
}

func (p *Parser) handleSGR() {
	if len(p.params) == 0 {
		p.curStyle = goturbotui.NewStyle()
		return
	}
	i := 0
	for i < len(p.params) {
		code := p.params[i]
		if code < 0 {
			code = 0
		}
		switch {
		case code == 0:
			p.curStyle = goturbotui.NewStyle()
		case code == 1:
			p.curStyle.Attributes |= goturbotui.AttrBold
		case code == 2:
			p.curStyle.Attributes |= goturbotui.AttrDim
		case code == 3:
			p.curStyle.Attributes |= goturbotui.AttrItalic
		case code == 4:
			p.curStyle.Attributes |= goturbotui.AttrUnderline
		case code == 5:
			p.curStyle.Attributes |= goturbotui.AttrBlink
		case code == 7:
			p.curStyle.Attributes |= goturbotui.AttrReverse
		case code == 9:
			p.curStyle.Attributes |= goturbotui.AttrStrikethrough
		case code == 22:
			p.curStyle.Attributes &^= goturbotui.AttrBold | goturbotui.AttrDim
		case code == 23:
			p.curStyle.Attributes &^= goturbotui.AttrItalic
		case code == 24:
			p.curStyle.Attributes &^= goturbotui.AttrUnderline
		case code == 27:
			p.curStyle.Attributes &^= goturbotui.AttrReverse
		case code >= 30 && code <= 37:
			p.curStyle.Foreground = ansi16[code-30]
		case code == 38:
			var c goturbotui.Color
			c, i = p.extendedColor(i)
			p.curStyle.Foreground = c
		case code == 39:
			p.curStyle.Foreground = goturbotui.ColorWhite
		case code >= 40 && code <= 47:
			p.curStyle.Background = ansi16[code-40]
		case code == 48:
			var c goturbotui.Color
			c, i = p.extendedColor(i)
			p.curStyle.Background = c
		case code == 49:
			p.curStyle.Background = goturbotui.ColorBlack
		case code >= 90 && code <= 97:
			p.curStyle.Foreground = ansi16[8+code-90]
		case code >= 100 && code <= 107:
			p.curStyle.Background = ansi16[8+code-100]
		}
		i++
	}
}

// extendedColor parses a 38/48;5;n (256-color) or 38/48;2;r;g;b (truecolor)
// sub-sequence starting at params[i] (which holds 38 or 48), returning the
// resolved color and the index of the last consumed param.
func (p *Parser) extendedColor(i int) (goturbotui.Color, int) {
	if i+1 >= len(p.params) {
		return goturbotui.ColorWhite, i
	}
	switch p.params[i+1] {
	case 5:
		if i+2 < len(p.params) {
			return color256(p.params[i+2]), i + 2
		}
	case 2:
		if i+4 < len(p.params) {
			return goturbotui.RGB(
				uint8(p.params[i+2]), uint8(p.params[i+3]), uint8(p.params[i+4]),
			), i + 4
		}
	}
	return goturbotui.ColorWhite, i + 1
}

var ansi16 = [16]goturbotui.Color{
	goturbotui.ColorBlack, goturbotui.ColorDarkRed, goturbotui.ColorDarkGreen, goturbotui.ColorDarkYellow,
	goturbotui.ColorDarkBlue, goturbotui.ColorDarkMagenta, goturbotui.ColorDarkCyan, goturbotui.ColorGray,
	goturbotui.ColorDarkGray, goturbotui.ColorRed, goturbotui.ColorGreen, goturbotui.ColorYellow,
	goturbotui.ColorBlue, goturbotui.ColorMagenta, goturbotui.ColorCyan, goturbotui.ColorWhite,
}

// color256 resolves an xterm 256-color palette index to RGB: 0-15 are the
// ANSI 16, 16-231 are a 6x6x6 cube, 232-255 are a grayscale ramp.
func color256(n int) goturbotui.Color {
	if n < 0 {
		n = 0
	}
	if n < 16 {
		return ansi16[n]
	}
	if n < 232 {
		n -= 16
		r := (n / 36) % 6
		g := (n / 6) % 6
		b := n % 6
		step := func(v int) uint8 {
			if v == 0 {
				return 0
			}
			return uint8(55 + v*40)
		}
		return goturbotui.RGB(step(r), step(g), step(b))
	}
	level := uint8(8 + (n-232)*10)
	return goturbotui.RGB(level, level, level)
}

func (p *Parser) feedOSC(b byte) {
	if b == 0x07 || (b == '\\' && len(p.oscBuf) > 0 && p.oscBuf[len(p.oscBuf)-1] == 0x1b) {
		if b == '\\' {
			p.oscBuf = p.oscBuf[:len(p.oscBuf)-1]
		}
		p.executeOSC(string(p.oscBuf))
		p.state = stateGround
		return
	}
	p.oscBuf = append(p.oscBuf, b)
}

func (p *Parser) executeOSC(payload string) {
	if len(payload) < 2 {
		return
	}
	if (payload[0] == '0' || payload[0] == '2') && payload[1] == ';' {
		title := payload[2:]
		p.grid.Title = title
		if p.OnTitle != nil {
			p.OnTitle(title)
		}
	}
}

func (p *Parser) feedDCS(b byte) {
	if b == 0x1b {
		p.state = stateGround
		return
	}
	p.oscBuf = append(p.oscBuf, b)
}

func (p *Parser) resetTerminal() {
	g := p.grid
	g.EraseDisplay(2)
	g.Cursor = Cursor{Visible: true}
	g.WrapMode = true
	p.curStyle = goturbotui.NewStyle()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
