package mocks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/felixgeelhaar/buildlayout/internal/ports"
)

// FileSystem is a thread-safe in-memory ports.FileSystem with failure
// injection for Abs and RemoveAll.
type FileSystem struct {
	mu        sync.RWMutex
	cwd       string
	files     map[string][]byte
	dirs      map[string]bool
	absErr    error
	removeErr map[string]error
	removed   []string
}

// NewFileSystem creates an empty FileSystem whose working directory is "/".
func NewFileSystem() *FileSystem {
	return &FileSystem{
		cwd:       string(filepath.Separator),
		files:     make(map[string][]byte),
		dirs:      make(map[string]bool),
		removeErr: make(map[string]error),
	}
}

// SetWorkingDir sets the directory relative paths resolve against.
func (fs *FileSystem) SetWorkingDir(dir string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.cwd = filepath.Clean(dir)
}

// AddFile adds a file and its parent directories.
func (fs *FileSystem) AddFile(path, content string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	fs.files[path] = []byte(content)
	fs.addParentsLocked(path)
}

// AddDir adds a directory and its parents.
func (fs *FileSystem) AddDir(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	fs.dirs[path] = true
	fs.addParentsLocked(path)
}

// FailAbs makes every Abs call return err.
func (fs *FileSystem) FailAbs(err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.absErr = err
}

// FailRemove makes RemoveAll(path) return err.
func (fs *FileSystem) FailRemove(path string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.removeErr[filepath.Clean(path)] = err
}

// Removed returns the paths passed to successful RemoveAll calls.
func (fs *FileSystem) Removed() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return append([]string(nil), fs.removed...)
}

// Paths returns every file and directory, sorted.
func (fs *FileSystem) Paths() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	out := make([]string, 0, len(fs.files)+len(fs.dirs))
	for p := range fs.files {
		out = append(out, p)
	}
	for p := range fs.dirs {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Abs resolves path against the working directory.
func (fs *FileSystem) Abs(path string) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if fs.absErr != nil {
		return "", fs.absErr
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join(fs.cwd, path), nil
}

// ReadFile returns the content of a file.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if content, ok := fs.files[filepath.Clean(path)]; ok {
		return content, nil
	}
	return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
}

// WriteFile stores a file.
func (fs *FileSystem) WriteFile(path string, data []byte, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	fs.files[path] = append([]byte(nil), data...)
	fs.addParentsLocked(path)
	return nil
}

// MkdirAll records a directory.
func (fs *FileSystem) MkdirAll(path string, _ os.FileMode) error {
	fs.AddDir(path)
	return nil
}

// Exists reports whether a file or directory is present.
func (fs *FileSystem) Exists(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	path = filepath.Clean(path)
	_, isFile := fs.files[path]
	return isFile || fs.dirs[path]
}

// IsDir reports whether path is a directory.
func (fs *FileSystem) IsDir(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.dirs[filepath.Clean(path)]
}

// RemoveAll removes path and everything below it.
func (fs *FileSystem) RemoveAll(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	if err := fs.removeErr[path]; err != nil {
		return err
	}
	for p := range fs.files {
		if ports.IsWithin(p, path) {
			delete(fs.files, p)
		}
	}
	for p := range fs.dirs {
		if ports.IsWithin(p, path) {
			delete(fs.dirs, p)
		}
	}
	fs.removed = append(fs.removed, path)
	return nil
}

func (fs *FileSystem) addParentsLocked(path string) {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		fs.dirs[dir] = true
		if dir == filepath.Dir(dir) {
			return
		}
	}
}

var _ ports.FileSystem = (*FileSystem)(nil)
