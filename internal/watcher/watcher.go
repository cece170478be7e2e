package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	apperrors "pwm/internal/errors"
)

// Dispatcher runs fn on the UI goroutine. The GUI passes fyne.Do.
type Dispatcher func(fn func())

// StoreWatcher reports external changes to the credentials file
type StoreWatcher struct {
	path       string
	onChange   func()
	dispatch   Dispatcher
	debounce   time.Duration
	debugPrint func(format string, args ...interface{})

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	stopped chan struct{}
	done    chan struct{}
	timer   *time.Timer
}

// NewStoreWatcher creates a watcher for the credentials file at path.
// onChange is invoked through dispatch once events settle for debounce.
func NewStoreWatcher(path string, debounce time.Duration, dispatch Dispatcher, onChange func(), debugPrint func(format string, args ...interface{})) *StoreWatcher {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &StoreWatcher{
		path:       filepath.Clean(path),
		onChange:   onChange,
		dispatch:   dispatch,
		debounce:   debounce,
		debugPrint: debugPrint,
	}
}

// Start begins watching. The parent directory is watched so that atomic
// rename-over writes are still observed.
func (sw *StoreWatcher) Start() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.fsw != nil {
		return nil // Already running
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.NewWatcherError("start", sw.path, "cannot create watcher", err)
	}
	dir := filepath.Dir(sw.path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return apperrors.NewWatcherError("start", dir, "cannot watch directory", err)
	}

	sw.fsw = fsw
	sw.stopped = make(chan struct{})
	sw.done = make(chan struct{})
	go sw.loop(fsw, sw.stopped, sw.done)

	sw.debugPrint("StoreWatcher: watching %s", sw.path)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (sw *StoreWatcher) Stop() {
	sw.mu.Lock()
	if sw.fsw == nil {
		sw.mu.Unlock()
		return // Already stopped
	}
	fsw, stopped, done := sw.fsw, sw.stopped, sw.done
	sw.fsw = nil
	if sw.timer != nil {
		sw.timer.Stop()
		sw.timer = nil
	}
	sw.mu.Unlock()

	close(stopped)
	_ = fsw.Close()
	<-done
	sw.debugPrint("StoreWatcher: stopped")
}

func (sw *StoreWatcher) loop(fsw *fsnotify.Watcher, stopped, done chan struct{}) {
	defer close(done)
	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if sw.relevant(ev) {
				sw.debugPrint("StoreWatcher: %s", ev)
				sw.schedule()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			sw.debugPrint("StoreWatcher: watch error: %v", err)
		case <-stopped:
			return
		}
	}
}

// relevant reports whether ev concerns the credentials file itself.
func (sw *StoreWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != sw.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// schedule coalesces bursts of events into one onChange call.
func (sw *StoreWatcher) schedule() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.fsw == nil {
		return
	}
	if sw.timer != nil {
		sw.timer.Stop()
	}
	sw.timer = time.AfterFunc(sw.debounce, func() {
		sw.mu.Lock()
		running := sw.fsw != nil
		sw.timer = nil
		sw.mu.Unlock()
		if running && sw.onChange != nil {
			sw.dispatch(sw.onChange)
		}
	})
}
