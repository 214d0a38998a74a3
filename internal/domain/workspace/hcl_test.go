package workspace

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/buildlayout/internal/domain/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hclManifestSrc = `
root "android" {
  dir = "android"
}

project "app" {
  plugins = ["com.android.application", "kotlin-android"]
}

project "camera-plugin" {
  dir       = "${manifest_dir}/plugins/camera"
  plugins   = ["com.android.library", "java"]
  namespace = format("dev.flutter.plugins.%s", replace("camera-plugin", "-", "_"))

  compile_step "compileReleaseJavaWithJavac" {
    kind   = "java"
    target = "11"
  }
}
`

func TestParseHCL(t *testing.T) {
	m, err := ParseHCL("/work/buildlayout.hcl", []byte(hclManifestSrc))
	require.NoError(t, err)

	assert.Equal(t, ProjectSpec{Name: "android", Dir: "android"}, m.Root)
	require.Len(t, m.Projects, 2)
	camera := m.Projects[1]
	assert.Equal(t, "/work/plugins/camera", camera.Dir)
	assert.Equal(t, "dev.flutter.plugins.camera_plugin", camera.Namespace)
	assert.Equal(t, []StepSpec{{Name: "compileReleaseJavaWithJavac", Kind: "java", Target: "11"}}, camera.CompileSteps)
	assert.NoError(t, m.Validate())
}

func TestParseHCL_Errors(t *testing.T) {
	tests := map[string]string{
		"syntax":        `root "android" {`,
		"missing root":  `project "app" {}`,
		"unknown attr":  "root \"android\" {\n  color = \"blue\"\n}\n",
		"unknown var":   "root \"android\" {\n  dir = flutter_root\n}\n",
		"missing label": "root {\n}\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseHCL("buildlayout.hcl", []byte(src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "hcl:")
		})
	}
}

func TestLoader_LoadHCL(t *testing.T) {
	l, fs := newMockLoader(t)
	fs.AddFile("/work/buildlayout.hcl", hclManifestSrc)

	g, err := l.Load(context.Background(), "/work")
	require.NoError(t, err)

	node, ok := g.Lookup("camera-plugin")
	require.True(t, ok)
	p := node.(*project.Project)
	assert.Equal(t, "/work/plugins/camera", p.Dir())
	ext, _ := p.LibraryExtension()
	assert.Equal(t, "dev.flutter.plugins.camera_plugin", ext.Namespace)
}
