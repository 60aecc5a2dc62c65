// Package gitdiff computes a per-line diff between an in-memory buffer and
// the same path's content at HEAD, for the editor's live git-diff overlay.
// It shells out to `git show HEAD:<path>` the way cogentcore-core's
// base/vcs.GitRepo drives git as a subprocess, and diffs line-by-line with
// github.com/pmezard/go-difflib/difflib's Matcher/GetOpCodes rather than
// pulling in a full VCS abstraction library — the engine only ever needs
// "diff this path against HEAD", not general repository introspection.
package gitdiff

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pmezard/go-difflib/difflib"
)

// Status tags a buffer line's relationship to HEAD.
type Status int

const (
	Unchanged Status = iota
	Added
	Modified
)

// State is the result of one diff computation: per-line status and, per
// buffer line index, the count of HEAD-only lines removed immediately
// after it. Deletions past the end of the buffer attach to the last line
// (or index 0 when the buffer is empty).
type State struct {
	LineStatus   []Status
	DeletedAfter []int
	InRepo       bool
	Err          error
}

// Engine schedules and runs diffs for one file path, debouncing bursts of
// edits and discarding stale results via a generation counter — a newer
// request always supersedes an in-flight one.
type Engine struct {
	Dir  string // repository working directory
	Path string // path relative to Dir

	gen      int64
	debounce time.Duration
	timer    *time.Timer
	pending  context.CancelFunc
}

const defaultDebounce = 300 * time.Millisecond

// NewEngine returns an engine for path inside the repository rooted at dir.
func NewEngine(dir, path string) *Engine {
	return &Engine{Dir: dir, Path: path, debounce: defaultDebounce}
}

// ScheduleAfterEdit arranges for Compute to run after the debounce window,
// cancelling any pending timer from an earlier edit. done is called on the
// timer's own goroutine with the result and the generation issued for this
// request; stale results must be dropped by the caller by comparing that
// generation.
func (e *Engine) ScheduleAfterEdit(content string, done func(gen int64, state State)) {
	if e.timer != nil {
		e.timer.Stop()
	}
	gen := atomic.AddInt64(&e.gen, 1)
	e.timer = time.AfterFunc(e.debounce, func() {
		done(gen, e.Compute(content))
	})
}

// CurrentGeneration returns the latest generation issued by this engine.
func (e *Engine) CurrentGeneration() int64 {
	return atomic.LoadInt64(&e.gen)
}

// ComputeNow bumps the generation and computes immediately (used on save,
// which must not wait for the debounce window).
func (e *Engine) ComputeNow(content string) (int64, State) {
	gen := atomic.AddInt64(&e.gen, 1)
	return gen, e.Compute(content)
}

// Compute diffs content against the HEAD revision of Path. Errors and
// "not in a repository" both degrade to a silent all-Unchanged state, per
// the error-handling design: a displayable error flag is set but the main
// loop never aborts on it.
func (e *Engine) Compute(content string) State {
	bufLines := splitLines(content)

	head, err := e.readHead()
	if err != nil {
		if isNotInRepo(err) {
			return allUnchanged(len(bufLines))
		}
		st := allUnchanged(len(bufLines))
		st.Err = err
		return st
	}

	headLines := splitLines(head)
	matcher := difflib.NewMatcher(headLines, bufLines)
	opcodes := matcher.GetOpCodes()

	status := make([]Status, len(bufLines))
	// DeletedAfter always has at least one slot (index 0) even when the
	// buffer is empty, since a deletion of every line in a file still
	// needs somewhere to attach per spec's "index 0 if the buffer is
	// empty" rule.
	deletedAfter := make([]int, max(1, len(bufLines)))
	lastBufLine := 0

	for _, op := range opcodes {
		switch op.Tag {
		case 'e': // equal
			for i := op.J1; i < op.J2; i++ {
				status[i] = Unchanged
			}
			if op.J2 > op.J1 {
				lastBufLine = op.J2 - 1
			}
		case 'r': // replace
			for i := op.J1; i < op.J2; i++ {
				status[i] = Modified
			}
			if op.J2 > op.J1 {
				lastBufLine = op.J2 - 1
			}
			if extra := (op.I2 - op.I1) - (op.J2 - op.J1); extra > 0 {
				deletedAfter[lastBufLine] += extra
			}
		case 'i': // insert (buffer has lines HEAD doesn't)
			for i := op.J1; i < op.J2; i++ {
				status[i] = Added
			}
			if op.J2 > op.J1 {
				lastBufLine = op.J2 - 1
			}
		case 'd': // delete (HEAD has lines the buffer doesn't)
			n := op.I2 - op.I1
			if len(bufLines) == 0 {
				deletedAfter[0] += n
			} else {
				deletedAfter[lastBufLine] += n
			}
		}
	}

	return State{LineStatus: status, DeletedAfter: deletedAfter, InRepo: true}
}

func (e *Engine) readHead() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, "git", "show", "HEAD:"+e.Path)
	cmd.Dir = e.Dir
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &gitError{err: err, stderr: stderr.String()}
	}
	return out.String(), nil
}

type gitError struct {
	err    error
	stderr string
}

func (e *gitError) Error() string { return e.err.Error() + ": " + e.stderr }
func (e *gitError) Unwrap() error { return e.err }

func isNotInRepo(err error) bool {
	ge, ok := err.(*gitError)
	if !ok {
		return false
	}
	return strings.Contains(ge.stderr, "not a git repository") ||
		strings.Contains(ge.stderr, "does not exist") ||
		strings.Contains(ge.stderr, "exists on disk, but not in")
}

func allUnchanged(n int) State {
	return State{
		LineStatus:   make([]Status, n),
		DeletedAfter: make([]int, max(1, n)),
		InRepo:       false,
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
