package mocks

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/buildlayout/internal/ports"
)

// Watcher is a ports.Watcher driven by the test through Trigger.
type Watcher struct {
	mu      sync.Mutex
	ch      chan string
	paths   []string
	started chan struct{}
	err     error
}

// NewWatcher creates a Watcher.
func NewWatcher() *Watcher {
	return &Watcher{
		ch:      make(chan string),
		started: make(chan struct{}),
	}
}

// SetError makes Watch fail with err.
func (w *Watcher) SetError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
}

// Watch records paths and returns the trigger channel. The channel is
// closed when ctx is done.
func (w *Watcher) Watch(ctx context.Context, paths ...string) (<-chan string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return nil, w.err
	}
	w.paths = append(w.paths, paths...)
	select {
	case <-w.started:
	default:
		close(w.started)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case p := <-w.ch:
				select {
				case out <- p:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Started is closed once Watch has been called.
func (w *Watcher) Started() <-chan struct{} {
	return w.started
}

// Trigger reports a change of path. It blocks until the change is picked up.
func (w *Watcher) Trigger(path string) {
	w.ch <- path
}

// Paths returns the paths passed to Watch.
func (w *Watcher) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.paths...)
}

var _ ports.Watcher = (*Watcher)(nil)
