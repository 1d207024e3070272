// Package watcher re-runs generation when a request file changes on disk.
// Rapid editor save bursts are debounced into a single regeneration.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cmsforge/cmsforge/internal/logging"
)

// ChangeHandler is invoked once per debounced batch of changes.
type ChangeHandler func() error

// FileWatcher watches a single request file with debouncing.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	delay   time.Duration
	handler ChangeHandler
	logger  logging.Logger
}

// NewFileWatcher creates a watcher for one file. Editors often replace files
// on save, so the containing directory is watched and events are filtered to
// the target path.
func NewFileWatcher(path string, debounceDelay time.Duration, handler ChangeHandler, logger logging.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	return &FileWatcher{
		watcher: w,
		path:    abs,
		delay:   debounceDelay,
		handler: handler,
		logger:  logger.WithComponent("watcher"),
	}, nil
}

// Start blocks until the context is cancelled, invoking the handler after
// each debounced change to the watched file.
func (fw *FileWatcher) Start(ctx context.Context) error {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			fw.logger.Debug(ctx, "request file changed", "path", fw.path, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(fw.delay)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(fw.delay)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if err := fw.handler(); err != nil {
				fw.logger.Error(ctx, err, "regeneration failed", "path", fw.path)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Warn(ctx, err, "watch error", "path", fw.path)
		}
	}
}

// Stop closes the watcher and releases its resources.
func (fw *FileWatcher) Stop() error {
	return fw.watcher.Close()
}
