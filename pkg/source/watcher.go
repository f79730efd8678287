package source

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kart-io/logger/core"
)

// changeWatcher observes one path non-recursively and turns bursts of
// filesystem events into single coalesced wakeups.
//
// One goroutine pumps fsnotify events for the watcher's whole lifetime; the
// orchestrator re-waits on the same wakeup channel every cycle, so no watcher
// or goroutine is leaked per reload. The wakeup channel has capacity one:
// a change that fires while a generation is starting up stays pending and is
// observed by the next Wait.
type changeWatcher struct {
	path   string
	window time.Duration
	fw     *fsnotify.Watcher
	wake   chan struct{}
	log    core.Logger
}

// newChangeWatcher installs an fsnotify watch on path. An error here is
// fatal to source construction: without a watch there is no reload.
func newChangeWatcher(path string, window time.Duration, log core.Logger) (*changeWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(path); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &changeWatcher{
		path:   path,
		window: window,
		fw:     fw,
		wake:   make(chan struct{}, 1),
		log:    log,
	}
	go w.loop()

	return w, nil
}

// loop coalesces raw events: the first event opens the window, further
// events inside it are absorbed, and one wakeup is emitted when it closes.
func (w *changeWatcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time
	rearm := false

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if timer == nil {
				timer = time.NewTimer(w.window)
				timerC = timer.C
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				// Atomic saves replace the inode; the watch must follow.
				rearm = true
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warnw("Filesystem watch error", "path", w.path, "error", err)

		case <-timerC:
			timer = nil
			timerC = nil
			if rearm {
				rearm = false
				if err := w.fw.Add(w.path); err != nil {
					w.log.Warnw("Failed to re-arm watch after rename",
						"path", w.path,
						"error", err,
					)
				}
			}
			select {
			case w.wake <- struct{}{}:
			default:
			}
		}
	}
}

// Wait blocks until a coalesced change fires or ctx is cancelled.
func (w *changeWatcher) Wait(ctx context.Context) error {
	select {
	case <-w.wake:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the underlying fsnotify watcher and ends the pump goroutine.
func (w *changeWatcher) Close() error {
	return w.fw.Close()
}
