package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/buildlayout/internal/domain/project"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Layout is the result of a configuration pass as read back by the host
// build engine.
type Layout struct {
	RunID           string          `yaml:"run_id" json:"run_id" toml:"run_id"`
	Root            string          `yaml:"root" json:"root" toml:"root"`
	OutputRoot      string          `yaml:"output_root" json:"output_root" toml:"output_root"`
	Toolchain       string          `yaml:"toolchain,omitempty" json:"toolchain,omitempty" toml:"toolchain,omitempty"`
	Repositories    []string        `yaml:"repositories,omitempty" json:"repositories,omitempty" toml:"repositories,omitempty"`
	EvaluationOrder []string        `yaml:"evaluation_order" json:"evaluation_order" toml:"evaluation_order"`
	Projects        []ProjectLayout `yaml:"projects" json:"projects" toml:"projects"`
}

// ProjectLayout is the per-project part of a Layout.
type ProjectLayout struct {
	Name           string       `yaml:"name" json:"name" toml:"name"`
	OutputDir      string       `yaml:"output_dir" json:"output_dir" toml:"output_dir"`
	Namespace      string       `yaml:"namespace,omitempty" json:"namespace,omitempty" toml:"namespace,omitempty"`
	Toolchain      string       `yaml:"java_toolchain,omitempty" json:"java_toolchain,omitempty" toml:"java_toolchain,omitempty"`
	EvaluatedAfter []string     `yaml:"evaluated_after,omitempty" json:"evaluated_after,omitempty" toml:"evaluated_after,omitempty"`
	Repositories   []string     `yaml:"repositories,omitempty" json:"repositories,omitempty" toml:"repositories,omitempty"`
	CompileSteps   []StepLayout `yaml:"compile_steps,omitempty" json:"compile_steps,omitempty" toml:"compile_steps,omitempty"`
}

// StepLayout describes one pinned compile step.
type StepLayout struct {
	Name   string `yaml:"name" json:"name" toml:"name"`
	Kind   string `yaml:"kind" json:"kind" toml:"kind"`
	Source string `yaml:"source,omitempty" json:"source,omitempty" toml:"source,omitempty"`
	Target string `yaml:"target" json:"target" toml:"target"`
}

// Project returns the entry for name.
func (l *Layout) Project(name string) (ProjectLayout, bool) {
	for _, p := range l.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return ProjectLayout{}, false
}

func newLayout(runID string, g *project.Graph, outputRoot string, plan Plan, sequence []string) *Layout {
	l := &Layout{
		RunID:           runID,
		Root:            g.Root().Name(),
		OutputRoot:      outputRoot,
		Toolchain:       plan.ToolchainVersion,
		EvaluationOrder: sequence,
	}
	if r, ok := g.Root().(project.HasRepositories); ok {
		l.Repositories = r.Repositories()
	}

	for _, n := range g.Subprojects() {
		entry := ProjectLayout{
			Name:           n.Name(),
			OutputDir:      n.OutputDir(),
			EvaluatedAfter: g.Order().DependenciesOf(n.Name()),
		}
		if lib, ok := n.(project.HasLibraryExtension); ok {
			if ext, present := lib.LibraryExtension(); present {
				entry.Namespace = ext.Namespace
			}
		}
		if tc, ok := n.(project.HasJavaToolchain); ok {
			if toolchain, present := tc.JavaToolchain(); present {
				entry.Toolchain = toolchain.LanguageVersion
			}
		}
		if r, ok := n.(project.HasRepositories); ok {
			entry.Repositories = r.Repositories()
		}
		entry.CompileSteps = append(entry.CompileSteps, stepLayouts(n)...)
		l.Projects = append(l.Projects, entry)
	}
	return l
}

func stepLayouts(n project.Node) []StepLayout {
	var steps []*project.CompileStep
	if java, ok := n.(project.HasJavaCompileSteps); ok {
		steps = append(steps, java.JavaCompileSteps()...)
	}
	if kotlin, ok := n.(project.HasKotlinCompileSteps); ok {
		steps = append(steps, kotlin.KotlinCompileSteps()...)
	}

	out := make([]StepLayout, 0, len(steps))
	for _, s := range steps {
		out = append(out, StepLayout{
			Name:   s.Name,
			Kind:   string(s.Kind),
			Source: s.SourceVersion,
			Target: s.TargetVersion,
		})
	}
	return out
}

// Format is a serialization format for a Layout.
type Format string

// Supported layout formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ParseFormat validates a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported layout format %q (want yaml, json or toml)", s)
	}
}

// Encode writes l to w in format f.
func (l *Layout) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return fmt.Errorf("failed to encode layout as yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(l); err != nil {
			return fmt.Errorf("failed to encode layout as toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported layout format %q", f)
	}
}
