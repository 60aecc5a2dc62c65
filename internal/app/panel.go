// Package app implements the Event Loop & Workers: the single-threaded
// cooperative main loop that is the sole mutator of panel/layout state,
// plus the coordination of its background workers (fs-watcher, git-diff,
// PTY bytes) through bounded channels. It is grounded on pkg/goturbotui.
// Application's Run/handleEvent/draw cycle (teacher's select over
// a.ctx.Done()/events, global-key-then-modal-then-desktop dispatch
// precedence), generalized from one fixed desktop+modal-stack shape into
// spec §9's redesign: an explicit (Event, State) → State + []Effect state
// machine, so the runtime (cmd/termide) executes side effects rather than
// the loop performing them inline.
package app

import (
	"strings"

	"github.com/termide/termide/internal/editor"
	"github.com/termide/termide/internal/filemgr"
	"github.com/termide/termide/internal/modal"
	"github.com/termide/termide/internal/util"
	"github.com/termide/termide/internal/vt100"
	"github.com/termide/termide/pkg/goturbotui"
)

// Kind is the closed set of panel variants named in spec §9's redesign
// flag: "model as a closed tagged variant {FileManager, Editor, Terminal,
// Log, Welcome} with a capability interface", not an open subclass
// hierarchy.
type Kind int

const (
	KindFileManager Kind = iota
	KindEditor
	KindTerminal
	KindLog
	KindWelcome
)

// Panel is the capability interface every variant implements: render,
// handle_key, handle_mouse, title, tick, plus the two "pull a pending
// request out of me" accessors the dispatcher polls after an event is
// dispatched to the panel, since a panel cannot itself push onto the
// layout manager's panel list or the modal stack (only the main loop
// mutates those). There is no command-handling method: global actions
// are applied by App.applyAction, which reaches into EditorPanel directly.
type Panel interface {
	Kind() Kind
	Title() string
	Tick()
	HandleKey(event goturbotui.Event) bool
	HandleMouse(event goturbotui.Event) bool
	Render(canvas goturbotui.Canvas, bounds goturbotui.Rect)

	// TakeFileToOpen returns a path the panel wants opened in a new editor
	// (e.g. the file manager's Enter key) and clears the pending request.
	TakeFileToOpen() (path string, ok bool)

	// TakeModalRequest returns a modal the panel wants shown (e.g. the
	// editor's Ctrl+F) and clears the pending request.
	TakeModalRequest() (req *modal.Modal, ok bool)
}

// FileManagerPanel wraps a filemgr.Manager as a Panel.
type FileManagerPanel struct {
	Manager *filemgr.Manager

	pendingOpen    string
	hasPendingOpen bool
	pendingModal   *modal.Modal
}

func NewFileManagerPanel(m *filemgr.Manager) *FileManagerPanel {
	return &FileManagerPanel{Manager: m}
}

func (p *FileManagerPanel) Kind() Kind   { return KindFileManager }
func (p *FileManagerPanel) Title() string { return "files: " + p.Manager.Cwd() }
func (p *FileManagerPanel) Tick()        {}

func (p *FileManagerPanel) HandleKey(event goturbotui.Event) bool {
	if event.Type != goturbotui.EventKey {
		return false
	}
	switch event.Key.Code {
	case goturbotui.KeyUp:
		p.Manager.MoveCursor(-1)
		return true
	case goturbotui.KeyDown:
		p.Manager.MoveCursor(1)
		return true
	case goturbotui.KeyEnter:
		entries := p.Manager.Entries()
		cur := p.Manager.Cursor()
		if cur < 0 || cur >= len(entries) {
			return true
		}
		entry := entries[cur]
		if entry.Kind == filemgr.KindDir {
			_ = p.Manager.Chdir(entry.Name)
		} else {
			p.pendingOpen = p.Manager.Cwd() + "/" + entry.Name
			p.hasPendingOpen = true
		}
		return true
	}
	switch event.Key.Rune {
	case ' ':
		p.Manager.ToggleSelect(p.Manager.Cursor())
		return true
	case 'd', 'D':
		names := p.selectionOrCursor()
		if len(names) == 0 {
			return true
		}
		p.pendingModal = &modal.Modal{
			Kind:  modal.KindConfirm,
			Title: "Delete " + strings.Join(names, ", ") + "?",
			OnSubmit: func(m modal.Modal) {
				_ = p.Manager.Delete(names, "")
			},
		}
		return true
	case 'r', 'R':
		entries := p.Manager.Entries()
		cur := p.Manager.Cursor()
		if cur < 0 || cur >= len(entries) {
			return true
		}
		oldName := entries[cur].Name
		p.pendingModal = &modal.Modal{
			Kind:       modal.KindInput,
			Title:      "Rename " + oldName,
			InputValue: oldName,
			OnSubmit: func(m modal.Modal) {
				_ = p.Manager.Rename(oldName, m.InputValue)
			},
		}
		return true
	}
	return false
}

// selectionOrCursor returns the current multi-selection, or the
// cursor-highlighted entry alone when nothing is selected — batch
// operations always act on "what the user visibly has highlighted."
func (p *FileManagerPanel) selectionOrCursor() []string {
	if sel := p.Manager.Selected(); len(sel) > 0 {
		return sel
	}
	entries := p.Manager.Entries()
	cur := p.Manager.Cursor()
	if cur < 0 || cur >= len(entries) {
		return nil
	}
	return []string{entries[cur].Name}
}

func (p *FileManagerPanel) HandleMouse(event goturbotui.Event) bool { return false }

func (p *FileManagerPanel) Render(canvas goturbotui.Canvas, bounds goturbotui.Rect) {
	entries := p.Manager.Entries()
	cursor := p.Manager.Cursor()
	for i, e := range entries {
		y := bounds.Y + i
		if y >= bounds.Bottom() {
			break
		}
		style := goturbotui.NewStyle()
		if i == cursor {
			style = style.WithAttributes(goturbotui.AttrReverse)
		}
		if p.Manager.IsSelected(e.Name) {
			style = style.WithAttributes(style.Attributes | goturbotui.AttrBold)
		}
		name := e.Name
		if e.Kind == filemgr.KindDir {
			name += "/"
		} else {
			name = name + strings.Repeat(" ", max(1, bounds.W-len(name)-8)) + util.FormatFileSize(e.Size)
		}
		canvas.SetString(bounds.X, y, name, style)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (p *FileManagerPanel) TakeFileToOpen() (string, bool) {
	if !p.hasPendingOpen {
		return "", false
	}
	p.hasPendingOpen = false
	return p.pendingOpen, true
}

func (p *FileManagerPanel) TakeModalRequest() (*modal.Modal, bool) {
	if p.pendingModal == nil {
		return nil, false
	}
	m := p.pendingModal
	p.pendingModal = nil
	return m, true
}

// EditorPanel wraps an editor.Editor as a Panel.
type EditorPanel struct {
	Editor *editor.Editor

	pendingModal *modal.Modal
}

func NewEditorPanel(e *editor.Editor) *EditorPanel {
	return &EditorPanel{Editor: e}
}

func (p *EditorPanel) Kind() Kind { return KindEditor }

func (p *EditorPanel) Title() string {
	name := p.Editor.Path
	if name == "" {
		name = "untitled"
	}
	if p.Editor.Modified() {
		name += " *"
	}
	return name
}

func (p *EditorPanel) Tick() {}

func (p *EditorPanel) HandleKey(event goturbotui.Event) bool {
	if event.Type != goturbotui.EventKey {
		return false
	}
	shift := event.Key.Modifiers&goturbotui.ModShift != 0
	switch event.Key.Code {
	case goturbotui.KeyUp:
		p.Editor.Move(editor.DirUp, shift)
	case goturbotui.KeyDown:
		p.Editor.Move(editor.DirDown, shift)
	case goturbotui.KeyLeft:
		p.Editor.Move(editor.DirLeft, shift)
	case goturbotui.KeyRight:
		p.Editor.Move(editor.DirRight, shift)
	case goturbotui.KeyHome:
		p.Editor.Move(editor.DirHome, shift)
	case goturbotui.KeyEnd:
		p.Editor.Move(editor.DirEnd, shift)
	case goturbotui.KeyPageUp:
		p.Editor.Move(editor.DirPageUp, shift)
	case goturbotui.KeyPageDown:
		p.Editor.Move(editor.DirPageDown, shift)
	case goturbotui.KeyBackspace:
		_ = p.Editor.Backspace()
	case goturbotui.KeyDelete:
		_ = p.Editor.Delete()
	case goturbotui.KeyEnter:
		_ = p.Editor.InsertNewline()
	case goturbotui.KeyTab:
		_ = p.Editor.IndentSelection(shift)
	default:
		if event.Rune != 0 {
			_ = p.Editor.InsertChar(event.Rune)
			return true
		}
		return false
	}
	p.Editor.SyncViewport()
	return true
}

func (p *EditorPanel) HandleMouse(event goturbotui.Event) bool { return false }

func (p *EditorPanel) Render(canvas goturbotui.Canvas, bounds goturbotui.Rect) {
	p.Editor.Viewport.Width = bounds.W
	p.Editor.Viewport.Height = bounds.H
	p.Editor.SyncViewport()
	for y, row := range p.Editor.VisibleRows() {
		if row.Kind == editor.RowDeletionMarker {
			canvas.SetString(bounds.X, bounds.Y+y, "‾‾‾ deleted lines ‾‾‾", goturbotui.NewStyle())
			continue
		}
		text := p.Editor.Buffer.Line(row.Line)
		runes := []rune(text)
		if row.StartCol < len(runes) {
			end := row.EndCol
			if end > len(runes) {
				end = len(runes)
			}
			canvas.SetString(bounds.X, bounds.Y+y, string(runes[row.StartCol:end]), goturbotui.NewStyle())
		}
	}
}

func (p *EditorPanel) TakeFileToOpen() (string, bool) { return "", false }

func (p *EditorPanel) TakeModalRequest() (*modal.Modal, bool) {
	if p.pendingModal == nil {
		return nil, false
	}
	m := p.pendingModal
	p.pendingModal = nil
	return m, true
}

// RequestSearch queues a Search modal request, polled by the main loop on
// the next iteration (Ctrl+F).
func (p *EditorPanel) RequestSearch() {
	p.pendingModal = &modal.Modal{Kind: modal.KindSearch}
}

// TerminalPanel wraps a vt100.Host as a Panel.
type TerminalPanel struct {
	Host *vt100.Host
}

func NewTerminalPanel(h *vt100.Host) *TerminalPanel {
	return &TerminalPanel{Host: h}
}

func (p *TerminalPanel) Kind() Kind        { return KindTerminal }
func (p *TerminalPanel) Title() string     { return "terminal" }
func (p *TerminalPanel) Tick()             {}

func (p *TerminalPanel) HandleKey(event goturbotui.Event) bool {
	if event.Type != goturbotui.EventKey {
		return false
	}
	if name, ok := keyName(event.Key.Code); ok {
		_, _ = p.Host.Write(vt100.EncodeKey(name, p.Host.Grid.Cursor.AppMode))
		return true
	}
	if event.Rune != 0 {
		_, _ = p.Host.Write([]byte(string(event.Rune)))
		return true
	}
	return false
}

func keyName(code goturbotui.KeyCode) (string, bool) {
	switch code {
	case goturbotui.KeyUp:
		return "Up", true
	case goturbotui.KeyDown:
		return "Down", true
	case goturbotui.KeyLeft:
		return "Left", true
	case goturbotui.KeyRight:
		return "Right", true
	case goturbotui.KeyHome:
		return "Home", true
	case goturbotui.KeyEnd:
		return "End", true
	case goturbotui.KeyEnter:
		return "Enter", true
	case goturbotui.KeyTab:
		return "Tab", true
	case goturbotui.KeyBackspace:
		return "Backspace", true
	case goturbotui.KeyEscape:
		return "Escape", true
	}
	return "", false
}

func (p *TerminalPanel) HandleMouse(event goturbotui.Event) bool { return false }

func (p *TerminalPanel) Render(canvas goturbotui.Canvas, bounds goturbotui.Rect) {
	for y := 0; y < p.Host.Grid.Height && y < bounds.H; y++ {
		for x := 0; x < p.Host.Grid.Width && x < bounds.W; x++ {
			cell := p.Host.Grid.Cell(x, y)
			canvas.SetCell(bounds.X+x, bounds.Y+y, cell.Ch, cell.Style)
		}
	}
}

func (p *TerminalPanel) TakeFileToOpen() (string, bool)      { return "", false }
func (p *TerminalPanel) TakeModalRequest() (*modal.Modal, bool) { return nil, false }

// LogPanel renders the process log tail.
type LogPanel struct {
	Lines []string
}

func NewLogPanel() *LogPanel { return &LogPanel{} }

func (p *LogPanel) Kind() Kind    { return KindLog }
func (p *LogPanel) Title() string { return "log" }
func (p *LogPanel) Tick()        {}

func (p *LogPanel) Append(line string) {
	p.Lines = append(p.Lines, line)
	const maxLines = 1000
	if len(p.Lines) > maxLines {
		p.Lines = p.Lines[len(p.Lines)-maxLines:]
	}
}

func (p *LogPanel) HandleKey(event goturbotui.Event) bool          { return false }
func (p *LogPanel) HandleMouse(event goturbotui.Event) bool        { return false }
func (p *LogPanel) TakeFileToOpen() (string, bool)                 { return "", false }
func (p *LogPanel) TakeModalRequest() (*modal.Modal, bool)         { return nil, false }

func (p *LogPanel) Render(canvas goturbotui.Canvas, bounds goturbotui.Rect) {
	start := 0
	if len(p.Lines) > bounds.H {
		start = len(p.Lines) - bounds.H
	}
	for i, line := range p.Lines[start:] {
		canvas.SetString(bounds.X, bounds.Y+i, line, goturbotui.NewStyle())
	}
}

// WelcomePanel is the placeholder shown when no other panels are open. It
// implements layout's welcomeMarker interface so the layout manager
// replaces it outright on the first real panel instead of stacking beside
// it.
type WelcomePanel struct{}

func NewWelcomePanel() *WelcomePanel { return &WelcomePanel{} }

func (p *WelcomePanel) Kind() Kind            { return KindWelcome }
func (p *WelcomePanel) Title() string         { return "welcome" }
func (p *WelcomePanel) Tick()                 {}
func (p *WelcomePanel) IsWelcomePanel() bool  { return true }

func (p *WelcomePanel) HandleKey(event goturbotui.Event) bool             { return false }
func (p *WelcomePanel) HandleMouse(event goturbotui.Event) bool           { return false }
func (p *WelcomePanel) TakeFileToOpen() (string, bool)                    { return "", false }
func (p *WelcomePanel) TakeModalRequest() (*modal.Modal, bool)            { return nil, false }

func (p *WelcomePanel) Render(canvas goturbotui.Canvas, bounds goturbotui.Rect) {
	canvas.SetString(bounds.X, bounds.Y, "TermIDE — Alt+O to open a file", goturbotui.NewStyle())
}
