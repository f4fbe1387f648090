// SPDX-License-Identifier: GPL-2.0-or-later

package tuning

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

const debounce = 100 * time.Millisecond

// Watcher reports changes of tuning files. The directories are watched so
// editors replacing the file are noticed as well.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(files ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create watcher")
	}
	watcher := &Watcher{
		watcher: w,
		files:   make(map[string]bool),
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, f := range files {
		f = filepath.Clean(f)
		watcher.files[f] = true
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, errors.Wrapf(err, "failed to watch %q", dir)
		}
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

// run reports a file once it was quiet for the debounce interval, so a
// truncate followed by a write is seen as one change.
func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)
	tick := time.NewTicker(debounce / 2)
	defer tick.Stop()
	pending := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if w.files[name] {
				pending[name] = time.Now()
			}
		case <-tick.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) < debounce {
					continue
				}
				delete(pending, name)
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
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

// Poll applies every file changed since the last call. It never blocks and
// is meant to be called once per frame.
func (w *Watcher) Poll() []error {
	var errs []error
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return errs
			}
			if err := LoadAndApply(name); err != nil {
				errs = append(errs, err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return errs
			}
			errs = append(errs, errors.Wrap(err, "watcher"))
		default:
			return errs
		}
	}
}
