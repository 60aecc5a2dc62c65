package vt100

import (
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

// Host runs a shell (or arbitrary command) attached to a pseudo-terminal,
// feeding its output into a Parser/Grid pair and accepting input/resize
// requests from the event loop. It is grounded on the teacher's
// internal/transfer PTY-hosting pattern (github.com/creack/pty driving a
// door program over an SSH session's io.Reader/Writer), generalized by
// dropping the ssh.Session coupling: TermIDE's terminal panel is local, so
// Host's input/output are plain io.Reader/io.Writer the event loop owns.
type Host struct {
	cmd  *exec.Cmd
	pty  *os.File
	Grid *Grid
	Parser *Parser

	mu     sync.Mutex
	closed bool

	// OnExit is invoked once, from the output-copy goroutine, when the
	// child's PTY output ends; it is not invoked if Close was called first.
	OnExit func(error)
}

// StartShell launches shellPath (or the user's $SHELL, or /bin/sh) with
// the given working directory inside a width×height PTY.
func StartShell(shellPath, dir string, width, height int) (*Host, error) {
	if shellPath == "" {
		shellPath = os.Getenv("SHELL")
	}
	if shellPath == "" {
		shellPath = "/bin/sh"
	}
	cmd := exec.Command(shellPath)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	if err != nil {
		return nil, err
	}

	grid := NewGrid(width, height)
	h := &Host{
		cmd:    cmd,
		pty:    f,
		Grid:   grid,
		Parser: NewParser(grid),
	}
	go h.copyOutput()
	return h, nil
}

func (h *Host) copyOutput() {
	_, err := io.Copy(h.Parser, h.pty)
	h.mu.Lock()
	exited := h.closed
	h.mu.Unlock()
	if h.OnExit != nil && !exited {
		h.OnExit(err)
	}
}

// Write sends keyboard input bytes to the child process.
func (h *Host) Write(data []byte) (int, error) {
	return h.pty.Write(data)
}

// Resize applies a new terminal size to both the OS-level PTY and the grid.
func (h *Host) Resize(width, height int) error {
	h.Grid.Resize(width, height)
	return pty.Setsize(h.pty, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
}

// Close terminates the child process and releases the PTY.
func (h *Host) Close() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	_ = h.pty.Close()
	if h.cmd.Process != nil {
		_ = h.cmd.Process.Kill()
	}
	return h.cmd.Wait()
}

// EncodeKey translates a logical key press into the byte sequence to send
// to the child, honoring DECCKM application-cursor-key mode for the arrow
// keys per spec §4.7 ("application mode" toggling cursor-key encoding).
func EncodeKey(key string, appMode bool) []byte {
	if seq, ok := specialKeys[key]; ok {
		if appMode {
			if alt, ok := appModeKeys[key]; ok {
				return alt
			}
		}
		return seq
	}
	return []byte(key)
}

var specialKeys = map[string][]byte{
	"Up":    {0x1b, '[', 'A'},
	"Down":  {0x1b, '[', 'B'},
	"Right": {0x1b, '[', 'C'},
	"Left":  {0x1b, '[', 'D'},
	"Home":  {0x1b, '[', 'H'},
	"End":   {0x1b, '[', 'F'},
	"Enter": {'\r'},
	"Tab":   {'\t'},
	"Backspace": {0x7f},
	"Escape":    {0x1b},
}

var appModeKeys = map[string][]byte{
	"Up":    {0x1b, 'O', 'A'},
	"Down":  {0x1b, 'O', 'B'},
	"Right": {0x1b, 'O', 'C'},
	"Left":  {0x1b, 'O', 'D'},
}

// BracketPaste wraps text in bracketed-paste markers when the grid has
// enabled mode 2004, otherwise returns it unchanged.
func BracketPaste(grid *Grid, text []byte) []byte {
	if !grid.BracketedPaste {
		return text
	}
	out := make([]byte, 0, len(text)+12)
	out = append(out, 0x1b, '[', '2', '0', '0', '~')
	out = append(out, text...)
	out = append(out, 0x1b, '[', '2', '0', '1', '~')
	return out
}
