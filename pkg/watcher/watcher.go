// Package watcher reloads models edited outside the viewer. It observes a
// set of source files with fsnotify and reports changes once they have
// settled for a debounce window.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reports changes to registered files. Editors that save by
// replacing the file drop the underlying watch; the watcher re-arms the
// path and reports the replacement as a change.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	// OnError receives watch failures occurring after Start. Nil drops
	// them.
	OnError func(error)

	mu        sync.Mutex
	callbacks map[string]func(string)
	timers    map[string]*time.Timer
}

// NewFileWatcher creates a watcher that lets changes settle for the given
// debounce window before reporting them
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:   w,
		debounce:  debounce,
		callbacks: make(map[string]func(string)),
		timers:    make(map[string]*time.Timer),
	}, nil
}

// Watch registers files and the callback invoked when any of them change.
// A model is typically registered together with every source it includes,
// so editing any part of it triggers one reload.
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if err := fw.watcher.Add(abs); err != nil {
			return fmt.Errorf("failed to watch %s: %w", abs, err)
		}
		fw.callbacks[abs] = callback
	}
	return nil
}

// Start launches the event loop. Changes are delivered on the watcher's
// goroutine after the debounce window; callers marshal them onto their
// own loop.
func (fw *FileWatcher) Start() {
	go fw.loop()
}

func (fw *FileWatcher) loop() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handle(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.fail(err)
		}
	}
}

func (fw *FileWatcher) handle(event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create):
		fw.schedule(event.Name)
	case event.Op.Has(fsnotify.Rename), event.Op.Has(fsnotify.Remove):
		// Atomic saves replace the watched inode and take the watch with
		// it.
		fw.rearm(event.Name)
	}
}

// schedule arms the debounce timer for a registered path, restarting it if
// more changes arrive before it fires
func (fw *FileWatcher) schedule(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, ok := fw.callbacks[path]
	if !ok {
		return
	}

	if timer, ok := fw.timers[path]; ok {
		timer.Stop()
	}
	fw.timers[path] = time.AfterFunc(fw.debounce, func() {
		callback(path)
	})
}

// rearm re-adds a replaced path once the new file has had time to appear,
// then reports it as changed
func (fw *FileWatcher) rearm(path string) {
	fw.mu.Lock()
	_, registered := fw.callbacks[path]
	fw.mu.Unlock()
	if !registered {
		return
	}

	time.AfterFunc(fw.debounce, func() {
		if err := fw.watcher.Add(path); err != nil {
			fw.fail(fmt.Errorf("failed to re-watch %s: %w", path, err))
			return
		}
		fw.schedule(path)
	})
}

func (fw *FileWatcher) fail(err error) {
	if fw.OnError != nil {
		fw.OnError(err)
	}
}

// Close stops the watcher and releases its resources
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
