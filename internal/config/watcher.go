package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a config file and invokes a callback on change. The
// callback runs on the watcher goroutine; callers that must stay
// single-threaded should forward it into their own event queue.
type Watcher struct {
	fsw  *fsnotify.Watcher
	path string
	done chan struct{}
}

// Watch starts watching path. The parent directory is watched so that
// editors which replace the file (rename-over) are still observed.
func Watch(path string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:  fsw,
		path: abs,
		done: make(chan struct{}),
	}

	go w.run(onChange)
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run(onChange func()) {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				onChange()
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// watch errors are not fatal; keep watching
		}
	}
}
