// Command termide is TermIDE's CLI entry point: flag parsing, config/
// theme/i18n/logging bring-up, the panic-recovery wrapper that always
// restores the terminal before the process exits, and the top-level
// select loop driving internal/app's step function against
// pkg/goturbotui's Screen and internal/render's Frame. Grounded on the
// teacher's cmd entry point idiom (parse flags, open the log, defer a
// panic handler that restores terminal state before re-panicking/exiting)
// generalized from a BBS door's fixed SSH-session lifetime to a single
// local process's flag-driven one-shot run.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/termide/termide/internal/app"
	"github.com/termide/termide/internal/config"
	"github.com/termide/termide/internal/editor"
	"github.com/termide/termide/internal/filemgr"
	"github.com/termide/termide/internal/i18n"
	"github.com/termide/termide/internal/logging"
	"github.com/termide/termide/internal/render"
	"github.com/termide/termide/internal/session"
	"github.com/termide/termide/internal/theme"
	"github.com/termide/termide/internal/vt100"
	"github.com/termide/termide/pkg/goturbotui"
)

const version = "0.1.0"

// Exit codes per spec §6/§7: 0 clean shutdown, 2 bad invocation (flag
// parse failure), 3 startup failure after flags parsed (log file or
// terminal cannot be opened). A recovered panic exits 1 (see runUI).
const (
	exitOK          = 0
	exitBadInvocation = 2
	exitStartupFailed = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("termide", flag.ContinueOnError)
	showVersion := fs.Bool("version", false, "print the version and exit")
	configPath := fs.String("config", "", "path to config.toml (default: XDG config dir)")
	logPath := fs.String("log", "", "path to the log file (default: XDG cache dir)")
	if err := fs.Parse(args); err != nil {
		return exitBadInvocation
	}

	if *showVersion {
		fmt.Println("termide", version)
		return exitOK
	}

	if *configPath == "" {
		*configPath = config.DefaultPath()
	}
	cfg, cfgErr := config.Load(*configPath)

	if *logPath == "" {
		*logPath = filepath.Join(config.CacheDir(), "termide.log")
	}
	logger, err := logging.Open(*logPath, logging.ParseLevel(cfg.MinLogLevel))
	if err != nil {
		fmt.Fprintln(os.Stderr, "termide: cannot open log file:", err)
		return exitStartupFailed
	}
	defer logger.Close()

	if cfgErr != nil {
		logger.Warn("config parse failed, using defaults: %v", cfgErr)
	}

	th, err := theme.Load(filepath.Join(config.ConfigDir(), "themes", cfg.Theme+".toml"))
	if err != nil {
		logger.Warn("theme load failed, using defaults: %v", err)
		th = theme.Default()
	}

	lang := cfg.Language
	if lang == "" || lang == "auto" {
		lang = i18n.ResolveLanguage()
	}
	strings, err := i18n.Load(filepath.Join(config.ConfigDir(), "i18n", lang+".toml"))
	if err != nil {
		logger.Warn("i18n table load failed, using English defaults: %v", err)
		strings = i18n.Default()
	}

	return runUI(cfg, th, strings, logger)
}

func runUI(cfg config.Config, th theme.Theme, strings *i18n.Strings, logger *logging.Logger) (code int) {
	screen := goturbotui.NewTerminalScreen()
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "termide: cannot initialize terminal:", err)
		return exitStartupFailed
	}

	// Last-ditch panic handler: always restore the terminal before the
	// process exits, per the teacher's "recover, log, restore tty, exit
	// non-zero" idiom — a panic that escapes straight out of main with raw
	// mode still active leaves the user's shell unusable. screen.Close is
	// deferred exactly once so a panic path and the clean-exit path never
	// both try to close it.
	defer screen.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.PanicRecovered(r)
			code = 1
		}
	}()

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	width, height := screen.Size()
	a := app.New(width, height)
	a.Layout.MinPanelWidth = cfg.MinPanelWidth

	fm, err := filemgr.New(cwd)
	if err != nil {
		logger.Warn("cannot list %s: %v", cwd, err)
	} else {
		a.Mount(app.NewFileManagerPanel(fm))
	}

	watcher, err := filemgr.NewWatcher(cwd)
	if err != nil {
		logger.Warn("cannot start filesystem watcher: %v", err)
	}
	if watcher != nil {
		defer watcher.Close()
	}

	sessionsDir := filepath.Join(config.DataDir(), "sessions")
	if err := session.CleanStale(sessionsDir, cfg.SessionRetentionDays, nowForSession()); err != nil {
		logger.Warn("session cleanup failed: %v", err)
	}

	events := screen.PollEvents()
	ticker := time.NewTicker(40 * time.Millisecond)
	defer ticker.Stop()

	logger.Info("%s", strings.Get("panel.welcome"))

	canvas := goturbotui.NewMemoryCanvas(width, height)
	drawFrame(canvas, screen, a, th)

	for !a.ShouldQuit() {
		select {
		case ev := <-events:
			if ev.Type == goturbotui.EventResize {
				canvas = goturbotui.NewMemoryCanvas(ev.Resize.Width, ev.Resize.Height)
			}
			for _, effect := range a.HandleEvent(ev) {
				applyEffect(a, effect, cfg, logger)
			}
			drawFrame(canvas, screen, a, th)
		case dir := <-watcherChanged(watcher):
			a.DrainFSEvent(dir)
			drawFrame(canvas, screen, a, th)
		case <-ticker.C:
			a.Tick()
			drawFrame(canvas, screen, a, th)
		}
	}

	return exitOK
}

// drawFrame composites every mounted panel onto canvas via internal/render
// and flushes it to the screen. The hit-table is discarded here since this
// loop resolves mouse clicks through App.HandleEvent's focused-panel path
// rather than a separate mouse-routing stage; a fuller runtime would keep
// it to resolve title-bar clicks before forwarding to App.
func drawFrame(canvas goturbotui.Canvas, screen goturbotui.Screen, a *app.App, th theme.Theme) {
	w, h := screen.Size()
	bounds := goturbotui.NewRect(0, 0, w, h)
	panels := make([][]render.TitledPanel, len(a.Layout.Groups))
	for gi, g := range a.Layout.Groups {
		row := make([]render.TitledPanel, len(g.Panels))
		for pi, lp := range g.Panels {
			if tp, ok := lp.(render.TitledPanel); ok {
				row[pi] = tp
			}
		}
		panels[gi] = row
	}
	render.Frame(canvas, bounds, a.Layout, panels, th)
	canvas.Render()
}

// watcherChanged returns w's Changed channel, or a nil channel (which
// blocks forever in a select) when no watcher was started — keeping the
// select in runUI uniform regardless of watcher startup failure.
func watcherChanged(w *filemgr.Watcher) <-chan string {
	if w == nil {
		return nil
	}
	return w.Changed
}

// nowForSession is the one place main.go calls time.Now, isolated so the
// rest of the process never needs wall-clock time directly.
func nowForSession() time.Time {
	return time.Now()
}

// editorConfigFrom narrows the global config down to the per-editor knobs
// editor.Config exposes.
func editorConfigFrom(cfg config.Config) editor.Config {
	return editor.Config{
		TabSize:      cfg.TabSize,
		WordWrap:     cfg.WordWrap,
		SmartWrap:    cfg.SmartWrap,
		ShowGitDiff:  cfg.ShowGitDiff,
		SpacesForTab: true,
	}
}

func applyEffect(a *app.App, effect app.Effect, cfg config.Config, logger *logging.Logger) {
	switch e := effect.(type) {
	case app.Quit:
		// a.ShouldQuit() already reflects this; nothing further to do.
	case app.OpenFile:
		data, err := os.ReadFile(e.Path)
		if err != nil {
			logger.Warn("cannot open %s: %v", e.Path, err)
			return
		}
		ed := editor.New(e.Path, string(data), editorConfigFrom(cfg))
		a.Mount(app.NewEditorPanel(ed))
	case app.SpawnTerminal:
		host, err := vt100.StartShell("", e.Dir, 80, 24)
		if err != nil {
			logger.Warn("cannot start shell in %s: %v", e.Dir, err)
			return
		}
		a.Mount(app.NewTerminalPanel(host))
	case app.WriteFile:
		if err := os.WriteFile(e.Path, []byte(e.Content), 0o644); err != nil {
			logger.Warn("cannot write %s: %v", e.Path, err)
		}
	case app.SaveSession:
		// Serialization of the current layout into a session.Session is
		// the responsibility of a future save-on-quit hook; CleanStale is
		// already wired at startup.
	case app.Log:
		logger.Info("%s", e.Line)
	default:
		_ = e
	}
}
