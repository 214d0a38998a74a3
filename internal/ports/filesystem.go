package ports

import (
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is the subset of filesystem access the layout pass needs.
// Directory creation is left to the host build engine; the pass only
// resolves paths, reads manifests and removes output trees.
type FileSystem interface {
	// Abs returns an absolute, cleaned representation of path.
	Abs(path string) (string, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Exists(path string) bool
	IsDir(path string) bool
	// RemoveAll deletes path and everything below it.
	// A missing path is not an error.
	RemoveAll(path string) error
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// IsWithin reports whether path equals dir or lies below it.
// Both arguments must be absolute and cleaned.
func IsWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
