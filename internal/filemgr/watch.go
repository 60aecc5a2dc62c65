package filemgr

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/termide/termide/internal/apperrors"
)

const watchDebounce = 100 * time.Millisecond

// Watcher recursively watches a directory tree and emits a debounced
// refresh signal per directory, grounded on the teacher's
// ConfigWatcher.watchLoop (fsnotify events drained in a select loop,
// coalesced behind a single time.AfterFunc timer), generalized from one
// timer for a fixed set of config files to one timer per watched
// directory so a burst of writes deep in a project only refreshes the
// directories actually affected.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}

	mu     sync.Mutex
	timers map[string]*time.Timer

	// Changed receives the directory that changed, after the debounce
	// window. The event loop's worker-channel drain (spec §4.11 step 1)
	// reads from this channel and calls Manager.Refresh.
	Changed chan string
}

// NewWatcher starts watching root and all of its subdirectories.
func NewWatcher(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, apperrors.New(apperrors.KindWorkers, err)
	}
	w := &Watcher{
		fsw:    fsw,
		done:   make(chan struct{}),
		timers: make(map[string]*time.Timer),
		Changed: make(chan string, 64),
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, apperrors.New(apperrors.KindWorkers, err)
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" && path != root {
				return filepath.SkipDir
			}
			return w.fsw.Add(path)
		}
		return nil
	})
}

// Add starts watching dir as well. Subdirectories created after
// NewWatcher are not watched unless they are passed to Add.
func (w *Watcher) Add(dir string) error {
	return w.fsw.Add(dir)
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			dir := filepath.Dir(event.Name)
			w.scheduleNotify(dir)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) scheduleNotify(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[dir]; ok {
		t.Stop()
	}
	w.timers[dir] = time.AfterFunc(watchDebounce, func() {
		select {
		case w.Changed <- dir:
		case <-w.done:
		}
	})
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}
