package testutil

import (
	"testing"

	"github.com/felixgeelhaar/buildlayout/internal/domain/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestBuilder(t *testing.T) {
	t.Parallel()

	m := NewManifestBuilder("android").
		WithRootDir("android").
		WithProject("app", "com.android.application").
		WithLibrary("pluginA", "").
		WithStep("compileReleaseJavaWithJavac", "java", "11").
		Build()

	assert.Equal(t, "android", m.Root.Name)
	assert.Equal(t, "android", m.Root.Dir)
	require.Len(t, m.Projects, 2)
	assert.Equal(t, []string{workspace.PluginAndroidLibrary, workspace.PluginJava}, m.Projects[1].Plugins)
	assert.Equal(t, []workspace.StepSpec{{Name: "compileReleaseJavaWithJavac", Kind: "java", Target: "11"}}, m.Projects[1].CompileSteps)
	assert.NoError(t, m.Validate())
}

func TestManifestBuilder_StepWithoutProject(t *testing.T) {
	t.Parallel()

	m := NewManifestBuilder("android").WithStep("compileJava", "java", "17").Build()
	assert.Empty(t, m.Projects)
	assert.Empty(t, m.Root.CompileSteps)
}

func TestManifestBuilder_Encodings(t *testing.T) {
	t.Parallel()

	b := NewManifestBuilder("android").WithLibrary("pluginA", "com.example.a")

	fromYAML, err := workspace.ParseManifest([]byte(b.YAML()), workspace.FormatYAML)
	require.NoError(t, err)
	fromTOML, err := workspace.ParseManifest([]byte(b.TOML()), workspace.FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, b.Build(), *fromYAML)
	assert.Equal(t, fromYAML, fromTOML)
}
