package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	p := New(":app", filepath.FromSlash("/work/android/app"))

	assert.Equal(t, "app", p.Name())
	assert.Equal(t, filepath.FromSlash("/work/android/app/build"), p.OutputDir())
	_, hasLib := p.LibraryExtension()
	assert.False(t, hasLib)
	_, hasToolchain := p.JavaToolchain()
	assert.False(t, hasToolchain)
	assert.Empty(t, p.CompileSteps())
}

func TestNew_Options(t *testing.T) {
	t.Parallel()

	javaStep := &CompileStep{Name: "compileJava", Kind: KindJava, TargetVersion: "11"}
	ktStep := &CompileStep{Name: "compileKotlin", Kind: KindKotlin}

	p := New("camera", "/src/camera",
		WithOutputDir("/out/camera"),
		WithPlugins("com.android.library", "java"),
		WithLibrary(""),
		WithJavaToolchain("11"),
		WithCompileSteps(javaStep, ktStep),
	)

	assert.Equal(t, "/out/camera", p.OutputDir())
	assert.Equal(t, []string{"com.android.library", "java"}, p.Plugins())

	lib, ok := p.LibraryExtension()
	require.True(t, ok)
	assert.Empty(t, lib.Namespace)

	tc, ok := p.JavaToolchain()
	require.True(t, ok)
	assert.Equal(t, "11", tc.LanguageVersion)

	assert.Equal(t, []*CompileStep{javaStep}, p.JavaCompileSteps())
	assert.Equal(t, []*CompileStep{ktStep}, p.KotlinCompileSteps())
	assert.Len(t, p.CompileSteps(), 2)
}

func TestProject_Repositories(t *testing.T) {
	t.Parallel()

	p := New("app", "")
	repos := []string{"google", "mavenCentral"}
	p.SetRepositories(repos)
	repos[0] = "changed"

	assert.Equal(t, []string{"google", "mavenCentral"}, p.Repositories())
	assert.Empty(t, p.OutputDir())
}

func TestCompileStep_Pin(t *testing.T) {
	t.Parallel()

	java := &CompileStep{Kind: KindJava, SourceVersion: "1.8", TargetVersion: "1.8"}
	assert.Equal(t, "1.8", java.Pin("17"))
	assert.Equal(t, "17", java.SourceVersion)
	assert.Equal(t, "17", java.TargetVersion)

	kotlin := &CompileStep{Kind: KindKotlin}
	assert.Empty(t, kotlin.Pin("17"))
	assert.Equal(t, "17", kotlin.TargetVersion)
	assert.Empty(t, kotlin.SourceVersion)
}

func TestParseStepKind(t *testing.T) {
	t.Parallel()

	k, err := ParseStepKind("kotlin")
	require.NoError(t, err)
	assert.Equal(t, KindKotlin, k)

	_, err = ParseStepKind("scala")
	assert.Error(t, err)
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		valid bool
	}{
		{"app", true},
		{"camera-plugin", true},
		{"plugin_a.v2", true},
		{"", false},
		{".", false},
		{"..", false},
		{"libs/core", false},
		{`libs\core`, false},
		{"libs:core", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateName(tt.name)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidProjectName)
			}
		})
	}
}
