// Package watcher monitors the inventory database for changes made by other
// processes (another tabula, an import, a script) and notifies the TUI to
// refresh.
//
// SQLite replaces and truncates its side files constantly, so the watcher
// observes the database's directory rather than the file itself and keeps
// only events for:
//   - <db>      → checkpoints and rollback-journal commits
//   - <db>-wal  → commits in WAL mode
//
// Shared-memory, journal, lock and editor temp files are ignored.
package watcher

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is sent when the watcher detects a change to the database.
type Event struct{}

// Watch monitors the database at dbPath and sends Event values on the
// returned channel. Rapid bursts are coalesced via the debounce window.
//
// Call the returned stop function to tear down the watcher.
func Watch(dbPath string, debounce time.Duration) (<-chan Event, func(), error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving %s: %w", dbPath, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	db := filepath.Base(abs)

	ch := make(chan Event, 1)
	done := make(chan struct{})

	// Jitter spreads refreshes when several instances share a database.
	jitterRange := int64(debounce / 2)

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if shouldIgnore(db, ev.Name) {
					continue
				}
				d := debounce
				if jitterRange > 0 {
					d += time.Duration(rand.Int64N(jitterRange))
				}
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					timer.Reset(d)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Event{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}

	return ch, stop, nil
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// shouldIgnore reports whether an event on path is irrelevant to the
// database named db. The database's -shm and -journal files change on reads
// and are ignored with everything else in the directory.
func shouldIgnore(db, path string) bool {
	switch filepath.Base(path) {
	case db, db + "-wal":
		return false
	}
	return true
}
