package filesystem

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealFileSystem_ReadWrite(t *testing.T) {
	fs := NewRealFileSystem()
	dir := t.TempDir()
	path := filepath.Join(dir, "buildlayout.yaml")

	require.NoError(t, fs.WriteFile(path, []byte("root: {name: android}"), 0o644))
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "root: {name: android}", string(data))

	assert.True(t, fs.Exists(path))
	assert.False(t, fs.IsDir(path))
	assert.True(t, fs.IsDir(dir))
	assert.False(t, fs.Exists(filepath.Join(dir, "missing")))
}

func TestRealFileSystem_Abs(t *testing.T) {
	fs := NewRealFileSystem()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	got, err := fs.Abs(filepath.Join(dir, "android", "build", "..", "..", "build"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "build"), got)
}

func TestRealFileSystem_AbsResolvesSymlinkedAncestor(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	fs := NewRealFileSystem()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	real := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(real, 0o755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(real, link))

	got, err := fs.Abs(filepath.Join(link, "not-yet", "build"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(real, "not-yet", "build"), got)
}

func TestRealFileSystem_RemoveAll(t *testing.T) {
	fs := NewRealFileSystem()
	root := filepath.Join(t.TempDir(), "build")
	require.NoError(t, fs.MkdirAll(filepath.Join(root, "pluginA", "intermediates"), 0o755))
	require.NoError(t, fs.WriteFile(filepath.Join(root, "pluginA", "classes.jar"), []byte("x"), 0o644))

	require.NoError(t, fs.RemoveAll(root))
	assert.False(t, fs.Exists(root))

	// removing again is not an error
	assert.NoError(t, fs.RemoveAll(root))
}
