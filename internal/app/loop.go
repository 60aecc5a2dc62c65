package app

import (
	"os"

	"github.com/termide/termide/internal/gitdiff"
	"github.com/termide/termide/internal/layout"
	"github.com/termide/termide/internal/modal"
	"github.com/termide/termide/pkg/goturbotui"
)

// writeFileToDisk is the editor.SaveNow write callback used by the
// ActionSave path; a plain os.WriteFile, since TermIDE's save target is
// always a local filesystem path (unlike a PTY or network write, there is
// no ambient stack reason to route this through another library).
func writeFileToDisk(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// App owns every piece of mutable state the single-threaded loop is the
// sole mutator of: the accordion layout, the modal stack, and the global
// hotkey table. It is grounded on the teacher's Application type (which
// played the same role for a fixed desktop/modal pair — superseded here,
// see DESIGN.md), generalized into a step-function shape so cmd/termide's
// Run loop — not this package — owns the actual select over input and
// worker channels.
type App struct {
	Layout     *layout.Manager
	Modals     modal.Stack
	Dispatcher *modal.Dispatcher

	quit bool

	// Width/Height are the last known terminal dimensions, needed
	// by every layout operation (spec §4.9.2's operations all take the
	// caller-supplied terminal width).
	Width, Height int
}

// New returns an App with an empty (welcome-only) layout.
func New(width, height int) *App {
	return &App{
		Layout:     layout.NewManager(20, func() layout.Panel { return NewWelcomePanel() }),
		Dispatcher: modal.NewDispatcher(),
		Width:      width,
		Height:     height,
	}
}

// ShouldQuit reports whether the loop's step function has asked the
// runtime to stop iterating.
func (a *App) ShouldQuit() bool { return a.quit }

// HandleResize updates the dimensions every subsequent layout op uses.
func (a *App) HandleResize(width, height int) {
	a.Width, a.Height = width, height
}

// HandleEvent is the step function: (Event, *App) → []Effect, mutating
// App's own state in place (it is the loop's only mutator, so there is no
// need for an immutable-state return value) and returning the side
// effects the runtime must still perform. Dispatch precedence is modal
// stack, then the global hotkey dispatcher, then the focused panel — per
// spec §4.10.
func (a *App) HandleEvent(event goturbotui.Event) []Effect {
	if event.Type == goturbotui.EventResize {
		a.HandleResize(event.Resize.Width, event.Resize.Height)
		return nil
	}

	if event.Type == goturbotui.EventKey {
		if a.Modals.Active() {
			switch event.Key.Code {
			case goturbotui.KeyEnter:
				a.Modals.Submit()
				return nil
			default:
				a.Modals.HandleKey(event.Key)
				return nil
			}
		}

		if action, ok := a.Dispatcher.Lookup(event); ok {
			return a.applyAction(action)
		}
	}

	if event.Type == goturbotui.EventMouse && a.Modals.Active() {
		a.Modals.HandleMouseOutside(event.Mouse.X, event.Mouse.Y)
		return nil
	}

	return a.dispatchToFocusedPanel(event)
}

func (a *App) applyAction(action modal.Action) []Effect {
	switch action {
	case modal.ActionQuit:
		a.quit = true
		return []Effect{Quit{}}
	case modal.ActionFocusGroupNext:
		a.Layout.FocusNext()
	case modal.ActionFocusGroupPrev:
		a.Layout.FocusPrev()
	case modal.ActionExpandNextInGroup:
		a.Layout.ExpandNextInFocused()
	case modal.ActionExpandPrevInGroup:
		a.Layout.ExpandPrevInFocused()
	case modal.ActionToggleStacking:
		a.Layout.ToggleStacking(a.Width)
	case modal.ActionNewTerminal:
		return []Effect{SpawnTerminal{Dir: "."}}
	case modal.ActionOpenFile:
		a.Modals.Push(&modal.Modal{Kind: modal.KindInput, Title: "Open file"})
	case modal.ActionSave:
		if p := a.focusedPanel(); p != nil {
			if ep, ok := p.(*EditorPanel); ok {
				_ = ep.Editor.SaveNow(writeFileToDisk)
			}
		}
	case modal.ActionSearch:
		if p := a.focusedPanel(); p != nil {
			if ep, ok := p.(*EditorPanel); ok {
				ep.RequestSearch()
			}
		}
	}
	return nil
}

func (a *App) dispatchToFocusedPanel(event goturbotui.Event) []Effect {
	p := a.focusedPanel()
	if p == nil {
		return nil
	}
	switch event.Type {
	case goturbotui.EventKey:
		p.HandleKey(event)
	case goturbotui.EventMouse:
		p.HandleMouse(event)
	}

	var effects []Effect
	if path, ok := p.TakeFileToOpen(); ok {
		effects = append(effects, OpenFile{Path: path})
	}
	if req, ok := p.TakeModalRequest(); ok {
		a.Modals.Push(req)
	}
	return effects
}

// focusedPanel returns the currently expanded panel of the focused group,
// or nil when the layout has no groups (never true after New, but guarded
// for safety since ClosePanel can momentarily empty the slice mid-prune).
func (a *App) focusedPanel() Panel {
	if len(a.Layout.Groups) == 0 {
		return nil
	}
	g := a.Layout.Groups[a.Layout.Focus]
	if len(g.Panels) == 0 {
		return nil
	}
	lp := g.Panels[g.Expanded]
	p, _ := lp.(Panel)
	return p
}

// Mount adds p to the layout, splitting into a new group when there is
// room, per spec §4.9.2.
func (a *App) Mount(p Panel) {
	a.Layout.AddPanel(p, a.Width)
}

// Tick calls every mounted panel's Tick once per main-loop tick,
// independent of whether an event arrived. Every panel variant's Tick is
// a no-op.
func (a *App) Tick() {
	for _, g := range a.Layout.Groups {
		for _, lp := range g.Panels {
			if p, ok := lp.(Panel); ok {
				p.Tick()
			}
		}
	}
}

// DrainFSEvent applies a debounced fs-watcher notification for dir: every
// mounted FileManagerPanel rooted there refreshes its listing. This is
// the fs-watcher leg of spec §4.11 step 1 ("drain worker channels, apply
// to state") — filemgr.Watcher already debounces per-directory, so one
// notification here means exactly one Refresh call.
func (a *App) DrainFSEvent(dir string) {
	a.forEachPanel(func(p Panel) {
		if fp, ok := p.(*FileManagerPanel); ok && fp.Manager.Cwd() == dir {
			_ = fp.Manager.Refresh()
		}
	})
}

// DrainGitDiffResult applies a generation-tagged git-diff computation to
// every editor panel open on path, discarding stale generations (the
// generation counter is owned by gitdiff.Engine; this only guards against
// applying a result to an editor that has since reloaded/reassigned its
// own GitGen).
func (a *App) DrainGitDiffResult(path string, generation int64, state gitdiff.State, statuses map[string]gitdiff.Status) {
	a.forEachPanel(func(p Panel) {
		ep, ok := p.(*EditorPanel)
		if !ok || ep.Editor.Path != path || ep.Editor.GitGen != generation {
			return
		}
		ep.Editor.GitState = state
	})
	a.forEachPanel(func(p Panel) {
		if fp, ok := p.(*FileManagerPanel); ok {
			fp.Manager.ApplyGitStatus(statuses)
		}
	})
}

func (a *App) forEachPanel(fn func(Panel)) {
	for _, g := range a.Layout.Groups {
		for _, lp := range g.Panels {
			if p, ok := lp.(Panel); ok {
				fn(p)
			}
		}
	}
}
