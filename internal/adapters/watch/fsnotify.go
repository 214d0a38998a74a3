// Package watch provides a ports.Watcher backed by fsnotify.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/buildlayout/internal/ports"
	"github.com/fsnotify/fsnotify"
)

// ErrWatcherFailed indicates the filesystem watcher failed to initialize.
var ErrWatcherFailed = errors.New("failed to initialize filesystem watcher")

// DefaultDebounce is how long a file must be quiet before a change is sent.
const DefaultDebounce = 200 * time.Millisecond

// FSNotifyWatcher watches files through fsnotify. It watches the parent
// directories so that editors replacing files by rename are still seen.
type FSNotifyWatcher struct {
	debounce time.Duration
	logger   ports.Logger
}

// Option configures an FSNotifyWatcher.
type Option func(*FSNotifyWatcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *FSNotifyWatcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger for watcher errors.
func WithLogger(logger ports.Logger) Option {
	return func(w *FSNotifyWatcher) {
		w.logger = logger
	}
}

// NewFSNotifyWatcher creates a watcher.
func NewFSNotifyWatcher(opts ...Option) *FSNotifyWatcher {
	w := &FSNotifyWatcher{debounce: DefaultDebounce, logger: ports.Discard}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch implements ports.Watcher. paths must be absolute.
func (w *FSNotifyWatcher) Watch(ctx context.Context, paths ...string) (<-chan string, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}

	wanted := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		p = filepath.Clean(p)
		wanted[p] = true
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	out := make(chan string)
	go w.loop(ctx, fw, wanted, out)
	return out, nil
}

func (w *FSNotifyWatcher) loop(ctx context.Context, fw *fsnotify.Watcher, wanted map[string]bool, out chan<- string) {
	defer close(out)
	defer func() { _ = fw.Close() }()

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			name := filepath.Clean(event.Name)
			if !wanted[name] || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending[name] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			for name := range pending {
				select {
				case out <- name:
				case <-ctx.Done():
					return
				}
				delete(pending, name)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn(ctx, "file watcher error", ports.F("error", err.Error()))
		}
	}
}
