package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/buildlayout/internal/adapters/filesystem"
	"github.com/felixgeelhaar/buildlayout/internal/domain/project"
	"github.com/felixgeelhaar/buildlayout/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flutterManifest = `
root:
  name: android
  dir: android
projects:
  - name: app
    plugins: [com.android.application, org.jetbrains.kotlin.android]
  - name: camera-android
    dir: ../plugins/camera/android
    plugins: [com.android.library, java]
    compile_steps:
      - name: compileReleaseJavaWithJavac
        kind: java
        target: "11"
  - name: url_launcher
    dir: /pub-cache/url_launcher/android
    plugins: [com.android.library, kotlin-android]
    namespace: io.flutter.plugins.urllauncher
`

func newMockLoader(t *testing.T) (*Loader, *mocks.FileSystem) {
	t.Helper()
	fs := mocks.NewFileSystem()
	fs.SetWorkingDir("/work")
	return NewLoader(fs), fs
}

func TestLoader_Load(t *testing.T) {
	l, fs := newMockLoader(t)
	fs.AddFile("/work/buildlayout.yaml", flutterManifest)

	g, err := l.Load(context.Background(), "buildlayout.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"android", "app", "camera-android", "url_launcher"}, g.Names())

	root := g.Root().(*project.Project)
	assert.Equal(t, "/work/android", root.Dir())
	assert.Equal(t, "/work/android/build", root.OutputDir())

	appNode, ok := g.Lookup("app")
	require.True(t, ok)
	app := appNode.(*project.Project)
	assert.Equal(t, "/work/android/app", app.Dir())
	_, isLibrary := app.LibraryExtension()
	assert.False(t, isLibrary)
	require.Len(t, app.KotlinCompileSteps(), 1)
	assert.Equal(t, DefaultKotlinStep, app.KotlinCompileSteps()[0].Name)

	cameraNode, _ := g.Lookup("camera-android")
	camera := cameraNode.(*project.Project)
	assert.Equal(t, "/work/plugins/camera/android", camera.Dir())
	ext, isLibrary := camera.LibraryExtension()
	require.True(t, isLibrary)
	assert.Empty(t, ext.Namespace)
	_, hasToolchain := camera.JavaToolchain()
	assert.True(t, hasToolchain)
	require.Len(t, camera.CompileSteps(), 1, "explicit steps replace the plugin defaults")
	step := camera.CompileSteps()[0]
	assert.Equal(t, "compileReleaseJavaWithJavac", step.Name)
	assert.Equal(t, "11", step.TargetVersion)
	assert.Equal(t, "11", step.SourceVersion)

	launcherNode, _ := g.Lookup(":url_launcher")
	launcher := launcherNode.(*project.Project)
	assert.Equal(t, "/pub-cache/url_launcher/android", launcher.Dir())
	ext, _ = launcher.LibraryExtension()
	assert.Equal(t, "io.flutter.plugins.urllauncher", ext.Namespace)
}

func TestLoader_LoadTOML(t *testing.T) {
	l, fs := newMockLoader(t)
	fs.AddFile("/work/buildlayout.toml", `
[root]
name = "android"
output_dir = "out"

[[projects]]
name = "pluginA"
plugins = ["java-library"]
java_toolchain = "11"
`)

	g, err := l.Load(context.Background(), "/work")
	require.NoError(t, err)

	assert.Equal(t, "/work/out", g.Root().OutputDir())
	node, ok := g.Lookup("pluginA")
	require.True(t, ok)
	p := node.(*project.Project)
	tc, ok := p.JavaToolchain()
	require.True(t, ok)
	assert.Equal(t, "11", tc.LanguageVersion)
	require.Len(t, p.JavaCompileSteps(), 1)
	assert.Equal(t, DefaultJavaStep, p.JavaCompileSteps()[0].Name)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		files    map[string]string
		wantErr  error
		contains string
	}{
		{
			name:    "missing manifest",
			path:    "buildlayout.yaml",
			wantErr: ErrManifestNotFound,
		},
		{
			name:    "missing manifest in directory",
			path:    "/work/empty",
			files:   map[string]string{"/work/empty/README": "x"},
			wantErr: ErrManifestNotFound,
		},
		{
			name:    "unsupported extension",
			path:    "layout.json",
			files:   map[string]string{"/work/layout.json": "{}"},
			wantErr: ErrManifestParse,
		},
		{
			name:     "bad yaml",
			path:     "buildlayout.yaml",
			files:    map[string]string{"/work/buildlayout.yaml": "root: [unterminated"},
			wantErr:  ErrManifestParse,
			contains: "yaml",
		},
		{
			name:     "unknown key",
			path:     "buildlayout.yaml",
			files:    map[string]string{"/work/buildlayout.yaml": "root: {name: android}\nsubprojects: []\n"},
			wantErr:  ErrManifestParse,
			contains: "subprojects",
		},
		{
			name:     "missing root name",
			path:     "buildlayout.yaml",
			files:    map[string]string{"/work/buildlayout.yaml": "projects: [{name: app}]\n"},
			wantErr:  ErrManifestInvalid,
			contains: "root.name",
		},
		{
			name:     "unknown step kind",
			path:     "buildlayout.yaml",
			files:    map[string]string{"/work/buildlayout.yaml": "root: {name: android}\nprojects:\n  - name: app\n    compile_steps: [{name: compileScala, kind: scala}]\n"},
			wantErr:  ErrManifestInvalid,
			contains: "projects[0].compile_steps[0].kind",
		},
		{
			name:     "namespace without library plugin",
			path:     "buildlayout.yaml",
			files:    map[string]string{"/work/buildlayout.yaml": "root: {name: android}\nprojects:\n  - name: app\n    namespace: com.example.app\n"},
			wantErr:  ErrManifestInvalid,
			contains: "namespace",
		},
		{
			name:    "duplicate project",
			path:    "buildlayout.yaml",
			files:   map[string]string{"/work/buildlayout.yaml": "root: {name: android}\nprojects: [{name: app}, {name: ':app'}]\n"},
			wantErr: project.ErrDuplicateProjectName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, fs := newMockLoader(t)
			for path, content := range tt.files {
				fs.AddFile(path, content)
			}

			_, err := l.Load(context.Background(), tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestLoader_PropertiesFillGaps(t *testing.T) {
	dir := t.TempDir()
	pluginDir := filepath.Join(dir, "android", "pluginA")
	require.NoError(t, os.MkdirAll(pluginDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pluginDir, PropertiesFileName),
		[]byte("# generated\nnamespace=com.example.plugin_a\njvm.target=11\n"), 0o644))
	manifest := filepath.Join(dir, DefaultManifestName)
	require.NoError(t, os.WriteFile(manifest, []byte(`
root: {name: android, dir: android}
projects:
  - name: pluginA
    plugins: [com.android.library, java, kotlin]
`), 0o644))

	g, err := NewLoader(filesystem.NewRealFileSystem()).Load(context.Background(), manifest)
	require.NoError(t, err)

	node, ok := g.Lookup("pluginA")
	require.True(t, ok)
	p := node.(*project.Project)
	ext, _ := p.LibraryExtension()
	assert.Equal(t, "com.example.plugin_a", ext.Namespace)
	tc, _ := p.JavaToolchain()
	assert.Equal(t, "11", tc.LanguageVersion)
	for _, s := range p.CompileSteps() {
		assert.Equal(t, "11", s.TargetVersion, s.Name)
	}
	assert.Equal(t, "11", p.JavaCompileSteps()[0].SourceVersion)
}

func TestDetectFormat(t *testing.T) {
	for path, want := range map[string]Format{"a.yaml": FormatYAML, "b.YML": FormatYAML, "c.toml": FormatTOML, "d.hcl": FormatHCL} {
		got, err := DetectFormat(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := DetectFormat("layout.json")
	assert.Error(t, err)
}

func TestParseProperties(t *testing.T) {
	props, err := ParseProperties([]byte("namespace = io.flutter.plugins.camera\njvm.target=17\nunrelated=1\n"))
	require.NoError(t, err)
	assert.Equal(t, Properties{Namespace: "io.flutter.plugins.camera", JVMTarget: "17"}, props)

	props, err = ParseProperties(nil)
	require.NoError(t, err)
	assert.Equal(t, Properties{}, props)
}

func TestUserError_Format(t *testing.T) {
	err := NewManifestNotFoundError("/work/buildlayout.yaml")
	formatted := err.Format()
	assert.Contains(t, formatted, "[MANIFEST_NOT_FOUND]")
	assert.Contains(t, formatted, "Location: /work/buildlayout.yaml")
	assert.Contains(t, formatted, "Suggestion:")
	assert.NotErrorIs(t, err, ErrManifestParse)
}
