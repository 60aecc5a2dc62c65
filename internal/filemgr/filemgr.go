// Package filemgr implements the File Manager panel: directory listing,
// selection, batch file operations, and fs-watch-driven refresh. It is
// grounded on the teacher's internal/file.FileManager (area/record model
// under mutex-guarded maps, JSON-persisted metadata, path-traversal
// guards), generalized from BBS file areas tied to a fixed config file
// into listings of arbitrary real filesystem directories with no
// persisted record store of their own — the directory itself is the
// source of truth.
package filemgr

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/termide/termide/internal/apperrors"
	"github.com/termide/termide/internal/gitdiff"
)

// EntryKind distinguishes directories from regular files in a listing.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
)

// Entry is one row of a directory listing.
type Entry struct {
	Name        string
	Kind        EntryKind
	Size        int64
	ModTime     time.Time
	Mode        os.FileMode
	GitStatus   gitdiff.Status
	Ignored     bool
}

// Manager holds the current directory, its listing, and the selection set,
// guarded by a mutex since fs-watch refreshes arrive on a background
// goroutine (spec §4.11's single-mutator rule is honored by the event loop
// applying Refresh's result, not by Manager itself running on the main
// goroutine).
type Manager struct {
	mu       sync.Mutex
	cwd      string
	entries  []Entry
	cursor   int
	selected map[string]bool
}

// New returns a manager rooted at dir, with an initial listing loaded.
func New(dir string) (*Manager, error) {
	m := &Manager{cwd: dir, selected: make(map[string]bool)}
	if err := m.Refresh(); err != nil {
		return nil, err
	}
	return m, nil
}

// Cwd returns the current directory.
func (m *Manager) Cwd() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cwd
}

// Entries returns a copy of the current listing.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Cursor returns the index of the cursor row in Entries.
func (m *Manager) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// Refresh re-lists the current directory: directories first, then files,
// both alphabetically, preserving the cursor on the same entry name when
// it still exists after the refresh (spec §4.8's "cursor-on-same-name"
// rule for fs-watch-triggered reloads).
func (m *Manager) Refresh() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshLocked()
}

func (m *Manager) refreshLocked() error {
	dirEntries, err := os.ReadDir(m.cwd)
	if err != nil {
		return apperrors.New(apperrors.KindIO, err)
	}

	var prevName string
	if m.cursor >= 0 && m.cursor < len(m.entries) {
		prevName = m.entries[m.cursor].Name
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			continue
		}
		kind := KindFile
		if de.IsDir() {
			kind = KindDir
		}
		entries = append(entries, Entry{
			Name:    de.Name(),
			Kind:    kind,
			Size:    info.Size(),
			ModTime: info.ModTime().Local(),
			Mode:    info.Mode(),
			Ignored: isGitIgnored(m.cwd, de.Name()),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind == KindDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	m.entries = entries
	m.cursor = 0
	if prevName != "" {
		for i, e := range entries {
			if e.Name == prevName {
				m.cursor = i
				break
			}
		}
	}
	return nil
}

// isGitIgnored shells out to `git check-ignore`, mirroring the teacher's
// shell-out-to-git idiom in internal/gitdiff. A non-zero exit (not a git
// repository, or git missing) silently means "not ignored".
func isGitIgnored(dir, name string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", name)
	cmd.Dir = dir
	return cmd.Run() == nil
}

// ApplyGitStatus decorates the listing with per-file statuses computed by
// internal/gitdiff's porcelain-less status reuse: the caller (internal/app)
// supplies a name→Status map for the current directory, keeping filemgr
// itself free of a second git-shelling code path.
func (m *Manager) ApplyGitStatus(statuses map[string]gitdiff.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if s, ok := statuses[m.entries[i].Name]; ok {
			m.entries[i].GitStatus = s
		}
	}
}

// MoveCursor moves the cursor by delta rows, clamped to the listing bounds.
func (m *Manager) MoveCursor(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Chdir navigates into name (must be a directory in the current listing,
// or ".." to go up) and refreshes.
func (m *Manager) Chdir(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var target string
	if name == ".." {
		target = filepath.Dir(m.cwd)
	} else {
		target = filepath.Join(m.cwd, name)
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return apperrors.New(apperrors.KindIO, apperrors.ErrInvalidPosition)
	}
	m.cwd = target
	return m.refreshLocked()
}

// ToggleSelect toggles the selection state of the entry at index i
// (spec §4.8 "Insert" key).
func (m *Manager) ToggleSelect(i int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.entries) {
		return
	}
	name := m.entries[i].Name
	if m.selected[name] {
		delete(m.selected, name)
	} else {
		m.selected[name] = true
	}
}

// SelectRange selects every entry between from and to inclusive
// (spec §4.8 "Shift+arrow" range select).
func (m *Manager) SelectRange(from, to int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if from > to {
		from, to = to, from
	}
	for i := from; i <= to && i < len(m.entries); i++ {
		if i >= 0 {
			m.selected[m.entries[i].Name] = true
		}
	}
}

// SelectAll selects every entry (spec §4.8 Ctrl+A).
func (m *Manager) SelectAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		m.selected[e.Name] = true
	}
}

// ClearSelection empties the selection set (spec §4.8 Escape).
func (m *Manager) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = make(map[string]bool)
}

// Selected returns the currently selected names.
func (m *Manager) Selected() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.selected))
	for name := range m.selected {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsSelected reports whether name is in the selection.
func (m *Manager) IsSelected(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected[name]
}
