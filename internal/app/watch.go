package app

import (
	"context"

	"github.com/felixgeelhaar/buildlayout/internal/domain/layout"
	"github.com/felixgeelhaar/buildlayout/internal/ports"
	"github.com/felixgeelhaar/buildlayout/internal/settings"
)

// LayoutHandler receives the layout of every successful pass in Watch.
type LayoutHandler func(*layout.Layout) error

// SettingsLoader returns the settings for the next pass. Watch calls it
// once per pass so edits to the settings file take effect.
type SettingsLoader func() (*settings.Settings, error)

// Watch configures once, then again whenever the manifest or one of
// extraPaths changes, until ctx is done. Failed passes and settings that
// fail to load are logged and watching continues; an error from handle
// stops the watch.
func (b *BuildLayout) Watch(ctx context.Context, manifestPath string, load SettingsLoader, handle LayoutHandler, extraPaths ...string) error {
	_, manifest, err := b.loader.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	paths := []string{manifest}
	for _, p := range extraPaths {
		abs, err := b.fs.Abs(p)
		if err != nil {
			return err
		}
		paths = append(paths, abs)
	}

	changes, err := b.watcher.Watch(ctx, paths...)
	if err != nil {
		return err
	}

	if err := b.pass(ctx, manifest, load, handle); err != nil {
		return err
	}
	b.logger.Info(ctx, "watching for changes", ports.F("manifest", manifest))

	for {
		select {
		case <-ctx.Done():
			return nil
		case changed, ok := <-changes:
			if !ok {
				return nil
			}
			b.logger.Info(ctx, "change detected", ports.F("path", changed))
			if err := b.pass(ctx, manifest, load, handle); err != nil {
				return err
			}
		}
	}
}

// pass runs one configuration and hands the result to handle. Only handler
// errors are returned.
func (b *BuildLayout) pass(ctx context.Context, manifest string, load SettingsLoader, handle LayoutHandler) error {
	s, err := load()
	if err != nil {
		b.logger.Error(ctx, "settings reload failed", ports.F("error", err.Error()))
		return nil
	}
	l, err := b.Configure(ctx, manifest, s)
	if err != nil {
		b.logger.Error(ctx, "layout pass failed", ports.F("error", err.Error()))
		return nil
	}
	return handle(l)
}
