// Package watcher drives the watch-on-save loop: it observes source
// directories for changes and emits debounced file events so the CLI can
// re-run extraction.
package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileOp represents the type of file operation
type FileOp int

const (
	// FileCreated indicates a new file was created
	FileCreated FileOp = iota
	// FileWritten indicates a file was written to
	FileWritten
	// FileRemoved indicates a file was removed
	FileRemoved
)

// String returns a human-readable representation of the file operation
func (op FileOp) String() string {
	switch op {
	case FileCreated:
		return "created"
	case FileWritten:
		return "written"
	case FileRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// FileEvent represents a file system event for a watched file
type FileEvent struct {
	Path      string    // Absolute path to the file
	Op        FileOp    // Type of operation
	Timestamp time.Time // When the event occurred
}

// Watcher watches directory trees for source file changes
type Watcher struct {
	watcher    *fsnotify.Watcher
	events     chan FileEvent
	errors     chan error
	done       chan struct{}
	extensions map[string]bool

	mu            sync.Mutex
	debounceDelay time.Duration
	debounceMap   map[string]*time.Timer
	closed        bool
}

// DefaultDebounceDelay is the default delay for coalescing rapid writes
const DefaultDebounceDelay = 100 * time.Millisecond

// New creates a Watcher covering the given root directories and all their
// subdirectories. Only files whose extension appears in extensions produce
// events; an empty extension list matches every file.
func New(roots []string, extensions []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounceDelay
	}

	extMap := make(map[string]bool)
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}

	w := &Watcher{
		watcher:       fsw,
		events:        make(chan FileEvent, 100),
		errors:        make(chan error, 10),
		done:          make(chan struct{}),
		extensions:    extMap,
		debounceDelay: debounce,
		debounceMap:   make(map[string]*time.Timer),
	}

	for _, root := range roots {
		if err := w.addRecursive(filepath.Clean(root)); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	// Start the event processing goroutine
	go w.processEvents()

	return w, nil
}

// addRecursive adds the directory and all its subdirectories to the watcher
func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// If the directory doesn't exist, that's ok - skip it
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		if info.IsDir() {
			if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				// Ignore permission errors for directories we can't access
				if os.IsPermission(err) {
					return nil
				}
				return err
			}
		}

		return nil
	})
}

// processEvents processes fsnotify events and converts them to FileEvents
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				// Error channel full, drop the error
			}
		}
	}
}

// handleEvent processes a single fsnotify event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	// Handle new directories - add them to the watcher
	if event.Has(fsnotify.Create) {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			if err := w.addRecursive(path); err != nil {
				select {
				case w.errors <- err:
				default:
				}
			}
			return
		}
	}

	if !w.matchesExtension(path) {
		return
	}

	var op FileOp
	switch {
	case event.Has(fsnotify.Create):
		op = FileCreated
	case event.Has(fsnotify.Write):
		op = FileWritten
	case event.Has(fsnotify.Remove):
		op = FileRemoved
	case event.Has(fsnotify.Rename):
		// Treat rename as remove (file moved away)
		op = FileRemoved
	default:
		// Ignore chmod events
		return
	}

	// Debounce writes; creates and removes are sent immediately
	if op == FileWritten {
		w.debounce(path, op)
	} else {
		w.sendEvent(path, op)
	}
}

// matchesExtension checks if the file has one of the watched extensions
func (w *Watcher) matchesExtension(path string) bool {
	if len(w.extensions) == 0 {
		return true
	}
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

// debounce coalesces rapid writes for the same file
func (w *Watcher) debounce(path string, op FileOp) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	// Cancel existing timer if any
	if timer, exists := w.debounceMap[path]; exists {
		timer.Stop()
	}

	w.debounceMap[path] = time.AfterFunc(w.debounceDelay, func() {
		w.mu.Lock()
		delete(w.debounceMap, path)
		w.mu.Unlock()

		w.sendEvent(path, op)
	})
}

// sendEvent sends a FileEvent to the events channel
func (w *Watcher) sendEvent(path string, op FileOp) {
	event := FileEvent{
		Path:      path,
		Op:        op,
		Timestamp: time.Now(),
	}

	select {
	case w.events <- event:
	case <-w.done:
	default:
		// Events channel full, drop the event
	}
}

// Events returns the channel for receiving file events
func (w *Watcher) Events() <-chan FileEvent {
	return w.events
}

// Errors returns the channel for receiving errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the file watcher and releases resources
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true

	// Cancel all pending debounce timers
	for _, timer := range w.debounceMap {
		timer.Stop()
	}
	w.debounceMap = make(map[string]*time.Timer)
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}
