// Package watcher ingests files as they appear in the knowledge tree.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driving"
	"github.com/mindsonic-labs/mindsonic/internal/core/services"
	"github.com/mindsonic-labs/mindsonic/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driving.Watcher = (*Watcher)(nil)

// DefaultDebounce is how long a file must stay quiet before it is
// ingested. Editors and downloads often write in bursts.
const DefaultDebounce = 500 * time.Millisecond

// Watcher observes the knowledge tree recursively and routes new or
// changed files through the processor.
type Watcher struct {
	root      string
	processor *services.Processor
	debounce  time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher over the knowledge root.
func New(root string, processor *services.Processor, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		root:      root,
		processor: processor,
		debounce:  debounce,
		pending:   make(map[string]*time.Timer),
	}
}

// Watch blocks until ctx is cancelled, ingesting files on arrival.
// Directories created under the root are watched as they appear.
func (w *Watcher) Watch(ctx context.Context) error {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return fmt.Errorf("create knowledge root: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addRecursive(fw, w.root); err != nil {
		return err
	}

	logger.Info("watching %s", w.root)

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, fw, event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, fw *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// The file may already be gone (archived or deleted).
		return
	}

	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := w.addRecursive(fw, event.Name); err != nil {
				logger.Warn("watch new directory %s: %v", event.Name, err)
			}
		}
		return
	}

	if domain.DetectFileType(event.Name) == domain.FileTypeUnknown {
		logger.Debug("watcher: ignoring %s (unrecognised extension)", event.Name)
		return
	}

	w.schedule(ctx, event.Name)
}

// schedule queues a file for ingestion after the debounce interval,
// restarting the timer on every new event for the same path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.ingest(ctx, path)
	})
}

func (w *Watcher) ingest(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		logger.Error("watcher: relativise %s: %v", path, err)
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		logger.Error("watcher: absolutise %s: %v", path, err)
		return
	}

	record := domain.FileRecord{
		Path:    abs,
		RelPath: rel,
		Type:    domain.DetectFileType(path),
	}

	if err := w.processor.ProcessFile(ctx, record); err != nil {
		logger.Error("watcher: process %s: %v", rel, err)
		return
	}
	logger.Info("watcher: ingested %s", rel)
}

// addRecursive watches dir and every directory beneath it.
func (w *Watcher) addRecursive(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}
