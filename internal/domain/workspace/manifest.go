package workspace

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/buildlayout/internal/domain/project"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default manifest file names, in lookup order.
const (
	DefaultManifestName = "buildlayout.yaml"
	TOMLManifestName    = "buildlayout.toml"
	HCLManifestName     = "buildlayout.hcl"
)

// Format is a manifest encoding.
type Format string

// Supported manifest formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// DetectFormat picks the manifest format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("unsupported manifest extension %q (want .yaml, .yml, .toml or .hcl)", filepath.Ext(path))
	}
}

// Manifest is the project graph handed over by the host build engine.
type Manifest struct {
	Root     ProjectSpec   `yaml:"root" toml:"root"`
	Projects []ProjectSpec `yaml:"projects" toml:"projects"`
}

// ProjectSpec describes one project.
type ProjectSpec struct {
	Name string `yaml:"name" toml:"name"`
	// Dir is relative to the manifest for the root and relative to the
	// root directory for subprojects. Subprojects default to <root>/<name>.
	Dir       string   `yaml:"dir,omitempty" toml:"dir,omitempty"`
	OutputDir string   `yaml:"output_dir,omitempty" toml:"output_dir,omitempty"`
	Plugins   []string `yaml:"plugins,omitempty" toml:"plugins,omitempty"`
	Namespace string   `yaml:"namespace,omitempty" toml:"namespace,omitempty"`
	// Toolchain is the Java toolchain language version.
	Toolchain    string     `yaml:"java_toolchain,omitempty" toml:"java_toolchain,omitempty"`
	CompileSteps []StepSpec `yaml:"compile_steps,omitempty" toml:"compile_steps,omitempty"`
}

// StepSpec describes one compile step.
type StepSpec struct {
	Name   string `yaml:"name" toml:"name"`
	Kind   string `yaml:"kind" toml:"kind"`
	Source string `yaml:"source,omitempty" toml:"source,omitempty"`
	Target string `yaml:"target,omitempty" toml:"target,omitempty"`
}

// ParseManifest decodes data. Unknown keys are rejected.
func ParseManifest(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatHCL:
		return ParseHCL(HCLManifestName, data)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}
	return &m, nil
}

// Validate checks the manifest for problems that would prevent building a
// project graph. Duplicate names are left to project.NewGraph.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Root.Name) == "" {
		return NewManifestInvalidError("root.name", "root project name is required")
	}
	if err := m.Root.validate("root"); err != nil {
		return err
	}
	for i, p := range m.Projects {
		field := fmt.Sprintf("projects[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			return NewManifestInvalidError(field+".name", "project name is required")
		}
		if err := p.validate(field); err != nil {
			return err
		}
	}
	return nil
}

func (p ProjectSpec) validate(field string) error {
	if p.Namespace != "" && !hasLibraryPlugin(p.Plugins) {
		e := NewManifestInvalidError(field+".namespace", "namespace is only valid on library projects")
		return e.WithSuggestion(fmt.Sprintf("Add %q to the plugins of %q or drop the namespace.", PluginAndroidLibrary, p.Name))
	}
	for j, s := range p.CompileSteps {
		stepField := fmt.Sprintf("%s.compile_steps[%d]", field, j)
		if strings.TrimSpace(s.Name) == "" {
			return NewManifestInvalidError(stepField+".name", "compile step name is required")
		}
		if _, err := project.ParseStepKind(s.Kind); err != nil {
			return NewManifestInvalidError(stepField+".kind", err.Error())
		}
	}
	return nil
}
