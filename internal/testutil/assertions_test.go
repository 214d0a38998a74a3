package testutil

import (
	"path/filepath"
	"testing"
)

func TestAssertions(t *testing.T) {
	dir := TempDir(t)
	file := WriteTempFile(t, dir, "layout.yaml", "root: android\noutput_root: /work/build\n")

	AssertFileExists(t, file)
	AssertDirExists(t, dir)
	AssertNotExists(t, filepath.Join(dir, "missing"))
	AssertDirectChild(t, "/work/build", "/work/build/pluginA")
	AssertDirectChild(t, "/work/build/", "/work/build/pluginA/")
	AssertYAMLEquals(t, "output_root: /work/build\nroot: android\n", "root: android\noutput_root: /work/build\n")
}
