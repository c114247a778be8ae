package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc receives the freshly loaded settings after the config
// file changes on disk.
type ReloadFunc func(Settings)

// ErrorFunc receives load or watch errors. The watcher keeps running
// after an error; a broken config on disk simply never reloads.
type ErrorFunc func(error)

// Watcher watches one config file and invokes a reload callback when
// it changes. Rapid successive events, as produced by editors that
// write via truncate or rename, are debounced into a single reload.
type Watcher struct {
	path     string
	debounce time.Duration
	onReload ReloadFunc
	onError  ErrorFunc

	mu      sync.Mutex
	fw      *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	running bool
}

// NewWatcher creates a watcher for the config file at path. A nil
// reload callback is a programmer error. debounce of 0 uses a 100ms
// default.
func NewWatcher(path string, debounce time.Duration, onReload ReloadFunc, onError ErrorFunc) (*Watcher, error) {
	if onReload == nil {
		panic("config: watcher requires a reload callback")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		onReload: onReload,
		onError:  onError,
	}, nil
}

// Start begins watching. The parent directory is watched rather than
// the file itself, so the file may not exist yet and atomic
// save-via-rename still triggers a reload.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return err
	}

	w.fw = fw
	w.done = make(chan struct{})
	w.running = true

	w.wg.Add(1)
	go w.loop(fw, w.done)
	return nil
}

// Stop stops watching and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.done)
	w.fw.Close()
	w.mu.Unlock()

	w.wg.Wait()
}

// IsRunning reports whether the event loop is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) loop(fw *fsnotify.Watcher, done chan struct{}) {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			w.reload()

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

func (w *Watcher) reload() {
	s, err := Load(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	w.safeCall(s)
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

// safeCall invokes the reload callback with panic recovery so a
// panicking handler cannot kill the watch loop.
func (w *Watcher) safeCall(s Settings) {
	defer func() {
		_ = recover()
	}()
	w.onReload(s)
}
