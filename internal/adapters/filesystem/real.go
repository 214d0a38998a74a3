// Package filesystem provides the os-backed ports.FileSystem.
package filesystem

import (
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/buildlayout/internal/ports"
)

// RealFileSystem implements ports.FileSystem on top of package os.
type RealFileSystem struct{}

// NewRealFileSystem creates a RealFileSystem.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// Abs returns the absolute, cleaned form of path. Symlinks in the
// longest existing prefix are resolved so that containment checks
// compare physical locations.
func (fs *RealFileSystem) Abs(path string) (string, error) {
	abs, err := filepath.Abs(ports.ExpandPath(path))
	if err != nil {
		return "", err
	}
	return resolveExisting(abs), nil
}

// ReadFile reads a file.
func (fs *RealFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes a file.
func (fs *RealFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// MkdirAll creates a directory and its parents.
func (fs *RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Exists reports whether path exists (without following a final symlink).
func (fs *RealFileSystem) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether path is a directory.
func (fs *RealFileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// RemoveAll deletes path recursively.
func (fs *RealFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// resolveExisting evaluates symlinks in the deepest existing ancestor of
// path and re-appends the missing tail.
func resolveExisting(path string) string {
	existing := path
	var tail []string
	for {
		if resolved, err := filepath.EvalSymlinks(existing); err == nil {
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return path
		}
		tail = append(tail, filepath.Base(existing))
		existing = parent
	}
}

var _ ports.FileSystem = (*RealFileSystem)(nil)
