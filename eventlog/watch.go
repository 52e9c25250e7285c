package eventlog

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a task log file whenever the agent process appends to it,
// so an open review panel can refresh while the task is still running.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func(Snapshot)
	stopChan chan bool
}

// WatchTaskLog starts watching path and invokes onChange with a fresh
// snapshot after every write. The parent directory is watched rather than
// the file itself so atomic rename-style rewrites are picked up too.
func WatchTaskLog(path string, onChange func(Snapshot)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		watcher:  fsWatcher,
		path:     path,
		onChange: onChange,
		stopChan: make(chan bool, 1),
	}
	go w.loop()

	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			snap, err := LoadTaskLog(w.path)
			if err != nil {
				// A mid-write read can see a torn file; the next event retries.
				continue
			}
			w.onChange(snap)
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		case <-w.stopChan:
			return
		}
	}
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	select {
	case w.stopChan <- true:
	default:
	}
	return w.watcher.Close()
}
