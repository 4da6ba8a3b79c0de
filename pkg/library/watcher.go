package library

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher coalesces filesystem changes to the library's index into a
// single-slot notification channel. Long-lived views block on Events
// and reload when it fires; bursts of writes collapse into one signal.
type Watcher struct {
	fsw    *fsnotify.Watcher
	events chan struct{}
}

// Watch starts watching the library for changes made by other
// processes. Close the watcher when done.
func (l *Library) Watch() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// The sqlite file and its journal live in the data dir, so watching
	// the directory catches every commit.
	if err := fsw.Add(l.dataDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch data dir: %w", err)
	}

	w := &Watcher{
		fsw:    fsw,
		events: make(chan struct{}, 1),
	}
	go w.loop(filepath.Base(l.dbPath), l.log)

	return w, nil
}

func (w *Watcher) loop(dbName string, log *logrus.Logger) {
	defer close(w.events)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(ev.Name), dbName) {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Remove) {
				continue
			}
			select {
			case w.events <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warnf("library watcher: %v", err)
		}
	}
}

// Events fires once per batch of index changes.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher and its goroutine.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
