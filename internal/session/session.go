// Package session implements the per-project session store: persisted
// layout skeleton and unsaved-buffer state, keyed by a hash of the
// project's working directory. It is reauthored against
// github.com/pelletier/go-toml/v2 (spec §6 mandates .toml session files)
// but keeps the teacher's load/save idiom of "read whole file, decode,
// mutate in memory, write whole file back" rather than introducing a
// database.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

// PanelKind tags a persisted panel descriptor's kind.
type PanelKind string

const (
	PanelFileManager PanelKind = "file_manager"
	PanelEditor      PanelKind = "editor"
	PanelTerminal    PanelKind = "terminal"
	PanelLog         PanelKind = "log"
	PanelWelcome     PanelKind = "welcome"
)

// PanelState is one persisted panel within a group.
type PanelState struct {
	Kind     PanelKind `toml:"kind"`
	Expanded bool      `toml:"expanded"`

	// Editor fields.
	Path           string `toml:"path,omitempty"`
	UntitledID     string `toml:"untitled_id,omitempty"`
	CursorLine     int    `toml:"cursor_line,omitempty"`
	CursorCol      int    `toml:"cursor_col,omitempty"`
	ViewportTop    int    `toml:"viewport_top,omitempty"`
	UnsavedBuffer  string `toml:"unsaved_buffer,omitempty"`
	WasModified    bool   `toml:"was_modified,omitempty"`

	// File manager fields.
	Cwd string `toml:"cwd,omitempty"`
}

// GroupState is a persisted PanelGroup: ordered panels plus the layout
// manager's horizontal weight for it.
type GroupState struct {
	Weight int          `toml:"weight"`
	Panels []PanelState `toml:"panels"`
}

// Session is the full persisted state for one project.
type Session struct {
	ProjectDir string       `toml:"project_dir"`
	SavedAt    time.Time    `toml:"saved_at"`
	Groups     []GroupState `toml:"groups"`
}

// NewUntitledID returns a fresh identifier for an unsaved buffer with no
// backing path, e.g. "untitled-3f9a2b".
func NewUntitledID() string {
	return "untitled-" + uuid.NewString()[:6]
}

// HashCwd returns the filename-safe hash of a project directory used to
// name its session file.
func HashCwd(cwd string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(cwd)))
	return hex.EncodeToString(sum[:])
}

// PathFor returns the session file path for a project directory under the
// given sessions directory.
func PathFor(sessionsDir, cwd string) string {
	return filepath.Join(sessionsDir, HashCwd(cwd)+".toml")
}

// Load reads the session for cwd from sessionsDir. A missing file is not
// an error: it returns a fresh, empty Session for the project.
func Load(sessionsDir, cwd string) (Session, error) {
	path := PathFor(sessionsDir, cwd)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{ProjectDir: cwd}, nil
		}
		return Session{ProjectDir: cwd}, err
	}
	var s Session
	if err := toml.Unmarshal(data, &s); err != nil {
		return Session{ProjectDir: cwd}, err
	}
	return s, nil
}

// Save writes s to its project's session file under sessionsDir, creating
// the directory if needed. Callers stamp SavedAt before calling Save.
func Save(sessionsDir string, s Session) error {
	if err := os.MkdirAll(sessionsDir, 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(PathFor(sessionsDir, s.ProjectDir), data, 0o644)
}

// CleanStale removes session files older than retentionDays under
// sessionsDir. Called once on startup, per spec §4.12's retention rule.
func CleanStale(sessionsDir string, retentionDays int, now time.Time) error {
	entries, err := os.ReadDir(sessionsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(sessionsDir, entry.Name()))
		}
	}
	return nil
}
