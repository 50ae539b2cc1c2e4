package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SketchWatcher reloads sketch files when they change on disk. Change
// bursts from editors that write in multiple syscalls are debounced so
// the callback fires once per save.
type SketchWatcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	onChange  map[string]func(string)
	debounce  time.Duration
	timers    map[string]*time.Timer
	errFn     func(error)
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a watcher. The debounce window applies per file.
func New(debounce time.Duration) (*SketchWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &SketchWatcher{
		watcher:  fsw,
		onChange: make(map[string]func(string)),
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}, nil
}

// Watch registers a sketch file. The callback receives the absolute
// path after each debounced change.
func (sw *SketchWatcher) Watch(file string, callback func(string)) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}

	// Watch the directory rather than the file itself so atomic
	// rename-over saves keep being observed.
	if err := sw.watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}

	sw.onChange[absPath] = callback
	return nil
}

// OnError sets the handler for watcher errors. Without one, errors are
// dropped.
func (sw *SketchWatcher) OnError(fn func(error)) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.errFn = fn
}

// Start begins dispatching change events in a background goroutine.
func (sw *SketchWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-sw.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					sw.handleChange(event.Name)
				}

			case err, ok := <-sw.watcher.Errors:
				if !ok {
					return
				}
				sw.mu.Lock()
				fn := sw.errFn
				sw.mu.Unlock()
				if fn != nil {
					fn(err)
				}

			case <-sw.done:
				return
			}
		}
	}()
}

func (sw *SketchWatcher) handleChange(path string) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return
	}
	callback, watched := sw.onChange[absPath]
	if !watched {
		return
	}

	if timer, exists := sw.timers[absPath]; exists {
		timer.Stop()
	}
	sw.timers[absPath] = time.AfterFunc(sw.debounce, func() {
		callback(absPath)
	})
}

// Close stops the watcher and any pending debounce timers. Safe to call
// more than once.
func (sw *SketchWatcher) Close() error {
	var err error
	sw.closeOnce.Do(func() {
		sw.mu.Lock()
		for _, timer := range sw.timers {
			timer.Stop()
		}
		sw.timers = make(map[string]*time.Timer)
		sw.mu.Unlock()

		close(sw.done)
		err = sw.watcher.Close()
	})
	return err
}
