package schema

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/edifix/edifix/edilog"
)

// DirWatcher monitors a directory of quarterly MIG/AHB-derived files
// (PID schema JSON, TOML mapping definitions) and signals when any of
// them changes on disk, so development tooling can reload without a
// restart.
type DirWatcher struct {
	dir    string
	events chan struct{}
	done   chan struct{}
	fsw    *fsnotify.Watcher
	once   sync.Once
}

// WatchDir starts watching dir for create/write events.
func WatchDir(dir string) (*DirWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("schema: creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("schema: watching %s: %w", dir, err)
	}

	w := &DirWatcher{
		dir:    dir,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
		fsw:    fsw,
	}
	go w.run()
	return w, nil
}

// Events returns a channel that receives a signal whenever a file in the
// watched directory is created or written. Back-to-back changes coalesce
// into a single pending signal.
func (w *DirWatcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher.
func (w *DirWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *DirWatcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.notify()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			edilog.Warn("schema watcher error", zap.String("dir", w.dir), zap.Error(err))
		}
	}
}

func (w *DirWatcher) notify() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}
