package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/buildlayout/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCmd_RemovesSharedRoot(t *testing.T) {
	manifest, shared := writeWorkspace(t)
	artifact := filepath.Join(shared, "pluginA", "outputs", "aar", "pluginA-release.aar")
	require.NoError(t, os.MkdirAll(filepath.Dir(artifact), 0o755))
	require.NoError(t, os.WriteFile(artifact, []byte("aar"), 0o644))

	out, _, err := execute(t, "clean", "--manifest", manifest)
	require.NoError(t, err)
	assert.Equal(t, "Removed "+shared+"\n", out)

	testutil.AssertNotExists(t, shared)
	testutil.AssertFileExists(t, manifest)
}

func TestCleanCmd_MissingRootSucceeds(t *testing.T) {
	manifest, _ := writeWorkspace(t)

	_, _, err := execute(t, "clean", "--manifest", manifest)
	assert.NoError(t, err)
}

func TestCleanCmd_RejectsNestedRoot(t *testing.T) {
	manifest, _ := writeWorkspace(t)
	t.Setenv("BUILDLAYOUT_OUTPUT_ROOT", "intermediates")

	_, stderr, err := execute(t, "clean", "--manifest", manifest)
	require.Error(t, err)
	assert.Contains(t, stderr, "Error:")
}

func TestCleanCmd_NoArgs(t *testing.T) {
	_, _, err := execute(t, "clean", "extra")
	assert.Error(t, err)
}
