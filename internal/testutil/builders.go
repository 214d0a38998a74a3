package testutil

import (
	"github.com/felixgeelhaar/buildlayout/internal/domain/workspace"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ManifestBuilder builds workspace manifests.
type ManifestBuilder struct {
	manifest workspace.Manifest
}

// NewManifestBuilder creates a builder for a workspace rooted at a project
// named root.
func NewManifestBuilder(root string) *ManifestBuilder {
	return &ManifestBuilder{
		manifest: workspace.Manifest{Root: workspace.ProjectSpec{Name: root}},
	}
}

// WithRootDir sets the root project directory, relative to the manifest.
func (b *ManifestBuilder) WithRootDir(dir string) *ManifestBuilder {
	b.manifest.Root.Dir = dir
	return b
}

// WithProject adds a subproject with the given plugins.
func (b *ManifestBuilder) WithProject(name string, plugins ...string) *ManifestBuilder {
	b.manifest.Projects = append(b.manifest.Projects, workspace.ProjectSpec{
		Name:    name,
		Plugins: plugins,
	})
	return b
}

// WithLibrary adds an Android library subproject.
func (b *ManifestBuilder) WithLibrary(name, namespace string) *ManifestBuilder {
	b.manifest.Projects = append(b.manifest.Projects, workspace.ProjectSpec{
		Name:      name,
		Plugins:   []string{workspace.PluginAndroidLibrary, workspace.PluginJava},
		Namespace: namespace,
	})
	return b
}

// WithStep adds a compile step to the most recently added subproject.
func (b *ManifestBuilder) WithStep(name, kind, target string) *ManifestBuilder {
	if len(b.manifest.Projects) == 0 {
		return b
	}
	last := &b.manifest.Projects[len(b.manifest.Projects)-1]
	last.CompileSteps = append(last.CompileSteps, workspace.StepSpec{
		Name:   name,
		Kind:   kind,
		Target: target,
	})
	return b
}

// Build returns the constructed manifest.
func (b *ManifestBuilder) Build() workspace.Manifest {
	return b.manifest
}

// YAML returns the manifest encoded as YAML.
func (b *ManifestBuilder) YAML() string {
	out, err := yaml.Marshal(b.manifest)
	if err != nil {
		panic(err)
	}
	return string(out)
}

// TOML returns the manifest encoded as TOML.
func (b *ManifestBuilder) TOML() string {
	out, err := toml.Marshal(b.manifest)
	if err != nil {
		panic(err)
	}
	return string(out)
}
