package prefabs

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceWindow drops repeated events for the same file inside the window.
// Editors often write a file several times per save.
const DebounceWindow = 100 * time.Millisecond

// Watcher reports changed prefab, script and level files.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	now     func() time.Time
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("prefabs: new watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("prefabs: watch %s: %w", dir, err)
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		now:     time.Now,
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	d := newDebouncer(DebounceWindow)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isWatchedFile(event.Name) || !d.allow(event.Name, w.now()) {
				continue
			}
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

type debouncer struct {
	window time.Duration
	last   map[string]time.Time
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window, last: make(map[string]time.Time)}
}

// allow reports whether an event for name at now falls outside the window
// of the last allowed one.
func (d *debouncer) allow(name string, now time.Time) bool {
	if t, ok := d.last[name]; ok && now.Sub(t) < d.window {
		return false
	}
	d.last[name] = now
	return true
}

func isWatchedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".tengo", ".tmx":
		return true
	}
	return false
}
