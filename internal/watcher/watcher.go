// Package watcher follows the snapshot files the generator writes into a
// directory and keeps track of the newest one.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before it is reported
const DefaultDebounce = 200 * time.Millisecond

// Watcher tracks files matching a glob such as "out/output_*.json". Snapshot
// names end in a sortable timestamp, so the newest file is the greatest name.
type Watcher struct {
	dir      string
	glob     string // base name pattern
	onChange func(path string)
	debounce time.Duration
	logger   *log.Logger

	mu     sync.RWMutex
	latest string

	// pending debounce timers by path; a timer removes itself once it fires
	timersMu sync.Mutex
	timers   map[string]*time.Timer
}

// New creates a watcher for pattern. onChange, if not nil, is called with the
// path of each new or rewritten matching file once it settles.
func New(pattern string, onChange func(path string), logger *log.Logger) (*Watcher, error) {
	if _, err := filepath.Match(filepath.Base(pattern), ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		dir:      filepath.Dir(pattern),
		glob:     filepath.Base(pattern),
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   logger,
	}, nil
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Pattern returns the full glob being watched
func (w *Watcher) Pattern() string {
	return filepath.Join(w.dir, w.glob)
}

// Latest returns the newest matching file seen so far
func (w *Watcher) Latest() (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest, w.latest != ""
}

// Scan resets Latest from the files currently on disk
func (w *Watcher) Scan() error {
	matches, err := filepath.Glob(w.Pattern())
	if err != nil {
		return err
	}
	sort.Strings(matches)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.latest = ""
	if len(matches) > 0 {
		w.latest = matches[len(matches)-1]
	}
	return nil
}

// observe records path as a candidate for Latest
func (w *Watcher) observe(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if path > w.latest {
		w.latest = path
	}
}

func (w *Watcher) matches(path string) bool {
	ok, _ := filepath.Match(w.glob, filepath.Base(path))
	return ok
}

// Watch scans the directory, then follows changes until ctx is cancelled
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if err := w.Scan(); err != nil {
		return err
	}

	w.logger.Info("watching for snapshots", "pattern", w.Pattern())

	w.timersMu.Lock()
	w.timers = make(map[string]*time.Timer)
	w.timersMu.Unlock()
	defer func() {
		w.timersMu.Lock()
		defer w.timersMu.Unlock()
		for _, timer := range w.timers {
			timer.Stop()
		}
		w.timers = nil
	}()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.matches(event.Name) {
				continue
			}

			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				w.debounced(event.Name)

			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				if latest, _ := w.Latest(); latest == event.Name {
					if err := w.Scan(); err != nil {
						w.logger.Error("rescan failed", "err", err)
					}
				}
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "err", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// debounced reports path once it has been quiet for the debounce duration
func (w *Watcher) debounced(path string) {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()
	if timer, exists := w.timers[path]; exists {
		timer.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(w.debounce, func() {
		w.timersMu.Lock()
		if w.timers[path] == timer {
			delete(w.timers, path)
		}
		w.timersMu.Unlock()

		w.observe(path)
		w.logger.Debug("snapshot written", "path", path)
		if w.onChange != nil {
			w.onChange(path)
		}
	})
	w.timers[path] = timer
}

// pending returns the number of debounce timers not yet fired
func (w *Watcher) pending() int {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()
	return len(w.timers)
}
