// Package testutil provides test helpers and utilities for buildlayout tests.
package testutil

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/buildlayout/internal/domain/workspace"
	"github.com/stretchr/testify/require"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// TempDir returns a fresh temporary directory with symlinks resolved, so
// paths compare equal to what the real filesystem adapter reports.
func TempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err, "failed to resolve temp directory")
	return dir
}

// TempWorkspace writes manifest as buildlayout.yaml into a fresh temporary
// directory and returns the manifest path.
func TempWorkspace(t *testing.T, manifest string) string {
	t.Helper()
	return WriteTempFile(t, TempDir(t), workspace.DefaultManifestName, manifest)
}

// WriteTempFile writes content to a file in dir, creating parent
// directories.
func WriteTempFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	p := filepath.Join(dir, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755), "failed to create parent of %s", filename)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644), "failed to write temp file: %s", filename)
	return p
}

// WriteTempDir creates a subdirectory in dir.
func WriteTempDir(t *testing.T, dir, dirname string) string {
	t.Helper()

	p := filepath.Join(dir, dirname)
	require.NoError(t, os.MkdirAll(p, 0o755), "failed to create temp subdirectory: %s", dirname)
	return p
}

// LoadFixture loads a fixture file from the embedded fixtures directory.
func LoadFixture(t *testing.T, name string) []byte {
	t.Helper()

	content, err := fixturesFS.ReadFile(path.Join("fixtures", name))
	require.NoError(t, err, "failed to load fixture: %s", name)
	return content
}

// ChangeDir changes to a directory for the duration of the test.
func ChangeDir(t *testing.T, dir string) {
	t.Helper()

	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	t.Cleanup(func() {
		_ = os.Chdir(original)
	})
}
