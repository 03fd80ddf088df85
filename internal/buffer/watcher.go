package buffer

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher notifies when the backing files of watched buffers change on
// disk, so the controller can run its reload check without polling. The
// callback runs on the watcher's goroutine; it should only nudge the
// dispatch loop, never touch client state directly.
type Watcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	paths   map[string]bool
	onEvent func(path string)
	onError func(err error)

	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher. onEvent is invoked with the changed path;
// onError may be nil.
func NewWatcher(onEvent func(path string), onError func(err error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		paths:   make(map[string]bool),
		onEvent: onEvent,
		onError: onError,
		done:    make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Watch starts watching a buffer's backing file. Non-file buffers and
// new-file buffers (no file on disk yet) are ignored.
func (w *Watcher) Watch(b *Buffer) error {
	if !b.Flags().Has(FlagFile) || b.Flags().Has(FlagNew) {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.paths[b.Name()] {
		return nil
	}

	if err := w.watcher.Add(b.Name()); err != nil {
		return err
	}
	w.paths[b.Name()] = true
	return nil
}

// Unwatch stops watching a buffer's backing file.
func (w *Watcher) Unwatch(b *Buffer) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.paths[b.Name()] {
		return
	}
	_ = w.watcher.Remove(b.Name())
	delete(w.paths, b.Name())
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	defer close(w.done)

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			watched := w.paths[filepath.Clean(ev.Name)]
			cb := w.onEvent
			w.mu.Unlock()
			if watched && cb != nil {
				cb(filepath.Clean(ev.Name))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			cb := w.onError
			w.mu.Unlock()
			if cb != nil && err != nil {
				cb(err)
			}
		}
	}
}
