// Package devreload implements the dev-mode autoreloader: watch the
// source/config tree, and when it changes, exit with a sentinel code so a
// supervising shell loop can re-exec the binary. fsnotify drives this
// event-driven rather than by polling mtimes, with a debounce so a burst
// of writes triggers one restart instead of several.
package devreload

import (
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/graphsync/logger"
)

// ExitCodeReload is returned to the OS (via os.Exit) when a watched path
// changes. A supervising process loop (e.g. a shell `while` or systemd
// Restart=on-failure with this as the success code) re-execs the binary
// on seeing it; reloader.py's restart_with_reloader looped on the same
// convention with exit code 3.
const ExitCodeReload = 3

// Watcher watches a set of paths and triggers a debounced restart when
// any of them changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Watcher over paths (files or directories), debouncing
// rapid bursts of change events into a single restart.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if err := fsw.Add(p); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return &Watcher{fsw: fsw, debounce: debounce}, nil
}

// Run blocks, watching for filesystem events, and calls exit(ExitCodeReload)
// once a debounced change settles. exit is injected so tests can observe
// the trigger without ending the test process.
func (w *Watcher) Run(exit func(code int)) {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debugw("devreload detected change", "file", event.Name, "op", event.Op.String())
			w.scheduleExit(exit)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warnw("devreload watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleExit(exit func(code int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { exit(ExitCodeReload) })
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Exit is the production exit func: os.Exit(code).
func Exit(code int) { os.Exit(code) }
