// Package app provides the application logic behind the buildlayout CLI.
package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/buildlayout/internal/adapters/filesystem"
	"github.com/felixgeelhaar/buildlayout/internal/adapters/logging"
	"github.com/felixgeelhaar/buildlayout/internal/adapters/watch"
	"github.com/felixgeelhaar/buildlayout/internal/domain/layout"
	"github.com/felixgeelhaar/buildlayout/internal/domain/project"
	"github.com/felixgeelhaar/buildlayout/internal/domain/workspace"
	"github.com/felixgeelhaar/buildlayout/internal/ports"
	"github.com/felixgeelhaar/buildlayout/internal/settings"
)

// BuildLayout is the application orchestrator.
type BuildLayout struct {
	fs          ports.FileSystem
	logger      ports.Logger
	loader      *workspace.Loader
	coordinator *layout.Coordinator
	metrics     ports.Metrics
	watcher     ports.Watcher
	out         io.Writer
}

// Option configures a BuildLayout.
type Option func(*BuildLayout)

// WithFileSystem replaces the real filesystem.
func WithFileSystem(fs ports.FileSystem) Option {
	return func(b *BuildLayout) {
		b.fs = fs
	}
}

// WithLogger sets the logger shared by the loader and the coordinator.
func WithLogger(logger ports.Logger) Option {
	return func(b *BuildLayout) {
		b.logger = logger
	}
}

// WithMetrics records pass and clean metrics.
func WithMetrics(m ports.Metrics) Option {
	return func(b *BuildLayout) {
		b.metrics = m
	}
}

// WithWatcher replaces the fsnotify watcher used by Watch.
func WithWatcher(w ports.Watcher) Option {
	return func(b *BuildLayout) {
		b.watcher = w
	}
}

// New creates a BuildLayout writing human-readable output to out.
func New(out io.Writer, opts ...Option) *BuildLayout {
	b := &BuildLayout{
		fs:      filesystem.NewRealFileSystem(),
		logger:  logging.NewNopLogger(),
		metrics: ports.NopMetrics{},
		out:     out,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.watcher == nil {
		b.watcher = watch.NewFSNotifyWatcher(watch.WithLogger(b.logger))
	}
	b.loader = workspace.NewLoader(b.fs, workspace.WithLoaderLogger(b.logger))
	b.coordinator = layout.NewCoordinator(b.fs, layout.WithLogger(b.logger))
	return b
}

// FileSystem returns the filesystem the application works on.
func (b *BuildLayout) FileSystem() ports.FileSystem {
	return b.fs
}

// Configure loads the manifest and runs a full layout pass.
func (b *BuildLayout) Configure(ctx context.Context, manifestPath string, s *settings.Settings) (*layout.Layout, error) {
	start := time.Now()
	l, err := b.configure(ctx, manifestPath, s)
	if err != nil {
		b.metrics.ObservePass(ports.ResultFailure, 0, 0, time.Since(start))
		return nil, err
	}
	b.metrics.ObservePass(ports.ResultSuccess, len(l.Projects), countSteps(l), time.Since(start))
	return l, nil
}

func (b *BuildLayout) configure(ctx context.Context, manifestPath string, s *settings.Settings) (*layout.Layout, error) {
	g, err := b.loader.Load(ctx, manifestPath)
	if err != nil {
		return nil, err
	}
	return b.coordinator.Configure(ctx, g, s.Plan())
}

func countSteps(l *layout.Layout) int {
	n := 0
	for _, p := range l.Projects {
		n += len(p.CompileSteps)
	}
	return n
}

// Order returns the sequence in which the host engine evaluates projects.
func (b *BuildLayout) Order(ctx context.Context, manifestPath string, s *settings.Settings) ([]string, error) {
	l, err := b.Configure(ctx, manifestPath, s)
	if err != nil {
		return nil, err
	}
	return l.EvaluationOrder, nil
}

// Clean resolves the shared output root and deletes it. It returns the
// deleted path.
func (b *BuildLayout) Clean(ctx context.Context, manifestPath string, s *settings.Settings) (string, error) {
	root, err := b.clean(ctx, manifestPath, s)
	if err != nil {
		b.metrics.ObserveClean(ports.ResultFailure)
		return "", err
	}
	b.metrics.ObserveClean(ports.ResultSuccess)
	return root, nil
}

func (b *BuildLayout) clean(ctx context.Context, manifestPath string, s *settings.Settings) (string, error) {
	_, manifest, err := b.loader.LoadManifest(manifestPath)
	if err != nil {
		return "", err
	}
	g, err := b.loader.Load(ctx, manifest)
	if err != nil {
		return "", err
	}
	root, err := b.coordinator.RedirectOutputRoot(ctx, g.Root(), s.Output.Root)
	if err != nil {
		return "", err
	}
	if err := b.coordinator.Clean(ctx, root, sourceDirs(g, filepath.Dir(manifest))...); err != nil {
		return "", err
	}
	return root, nil
}

// sourceDirs lists the directories clean must never remove: the manifest
// directory and the source directory of every project.
func sourceDirs(g *project.Graph, manifestDir string) []string {
	dirs := []string{manifestDir}
	for _, n := range g.Projects() {
		if src, ok := n.(project.HasSourceDir); ok && src.Dir() != "" {
			dirs = append(dirs, src.Dir())
		}
	}
	return dirs
}

// WriteLayout encodes l in format f and writes it to path, creating the
// parent directory.
func (b *BuildLayout) WriteLayout(l *layout.Layout, path string, f layout.Format) error {
	var buf bytes.Buffer
	if err := l.Encode(&buf, f); err != nil {
		return err
	}
	abs, err := b.fs.Abs(path)
	if err != nil {
		return project.NewPathResolutionError(path, "cannot resolve layout file", err)
	}
	if err := b.fs.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return project.NewIOError("create", filepath.Dir(abs), err)
	}
	if err := b.fs.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return project.NewIOError("write", abs, err)
	}
	return nil
}

// printf writes to the output writer, ignoring errors.
func (b *BuildLayout) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(b.out, format, args...)
}
