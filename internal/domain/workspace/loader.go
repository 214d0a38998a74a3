// Package workspace reads the project graph a host build engine exports
// and turns it into a project.Graph.
package workspace

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/felixgeelhaar/buildlayout/internal/domain/project"
	"github.com/felixgeelhaar/buildlayout/internal/ports"
)

// Loader loads workspace manifests through a ports.FileSystem.
type Loader struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger.
func WithLoaderLogger(logger ports.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader reading from fsys.
func NewLoader(fsys ports.FileSystem, opts ...LoaderOption) *Loader {
	l := &Loader{fs: fsys}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Find returns the manifest in dir, trying YAML, TOML and HCL in turn.
func (l *Loader) Find(dir string) (string, error) {
	for _, name := range []string{DefaultManifestName, TOMLManifestName, HCLManifestName} {
		candidate := filepath.Join(dir, name)
		if l.fs.Exists(candidate) {
			return candidate, nil
		}
	}
	return "", NewManifestNotFoundError(filepath.Join(dir, DefaultManifestName))
}

// LoadManifest reads, decodes and validates the manifest at path. It
// returns the manifest together with its absolute path.
func (l *Loader) LoadManifest(path string) (*Manifest, string, error) {
	abs, err := l.fs.Abs(path)
	if err != nil {
		return nil, "", NewManifestNotFoundError(path).WithUnderlying(err)
	}
	if l.fs.IsDir(abs) {
		if abs, err = l.Find(abs); err != nil {
			return nil, "", err
		}
	}

	format, err := DetectFormat(abs)
	if err != nil {
		return nil, "", NewManifestParseError(abs, err)
	}

	data, err := l.fs.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", NewManifestNotFoundError(abs)
		}
		return nil, "", NewManifestParseError(abs, err)
	}

	var m *Manifest
	if format == FormatHCL {
		m, err = ParseHCL(abs, data)
	} else {
		m, err = ParseManifest(data, format)
	}
	if err != nil {
		return nil, "", NewManifestParseError(abs, err)
	}
	if err := m.Validate(); err != nil {
		return nil, "", err
	}
	return m, abs, nil
}

// Load reads the manifest at path and builds the project graph it
// describes.
func (l *Loader) Load(ctx context.Context, path string) (*project.Graph, error) {
	m, abs, err := l.LoadManifest(path)
	if err != nil {
		return nil, err
	}

	manifestDir := filepath.Dir(abs)
	rootDir := resolveDir(manifestDir, m.Root.Dir, manifestDir)
	root, err := l.build(m.Root, rootDir)
	if err != nil {
		return nil, err
	}

	subs := make([]project.Node, 0, len(m.Projects))
	for _, spec := range m.Projects {
		dir := resolveDir(rootDir, spec.Dir, filepath.Join(rootDir, project.NormalizeName(spec.Name)))
		p, err := l.build(spec, dir)
		if err != nil {
			return nil, err
		}
		subs = append(subs, p)
	}

	g, err := project.NewGraph(root, subs...)
	if err != nil {
		return nil, err
	}

	l.log(ctx).Debug(ctx, "loaded workspace manifest",
		ports.F("manifest", abs),
		ports.F("root", root.Name()),
		ports.F("subprojects", len(subs)))
	return g, nil
}

// build turns a spec into a project. Values from project.properties only
// fill what the manifest left empty.
func (l *Loader) build(spec ProjectSpec, dir string) (*project.Project, error) {
	props, err := l.properties(dir)
	if err != nil {
		return nil, err
	}

	caps := capabilitiesOf(spec.Plugins)
	opts := []project.Option{project.WithPlugins(spec.Plugins...)}
	if spec.OutputDir != "" {
		opts = append(opts, project.WithOutputDir(resolveDir(dir, spec.OutputDir, "")))
	}
	if caps.library {
		opts = append(opts, project.WithLibrary(firstNonEmpty(spec.Namespace, props.Namespace)))
	}
	if caps.java || spec.Toolchain != "" {
		opts = append(opts, project.WithJavaToolchain(firstNonEmpty(spec.Toolchain, props.JVMTarget)))
	}

	steps := caps.defaultSteps()
	if len(spec.CompileSteps) > 0 {
		steps = steps[:0]
		for _, s := range spec.CompileSteps {
			kind, err := project.ParseStepKind(s.Kind)
			if err != nil {
				return nil, NewManifestInvalidError(spec.Name+".compile_steps", err.Error())
			}
			steps = append(steps, &project.CompileStep{
				Name:          s.Name,
				Kind:          kind,
				SourceVersion: s.Source,
				TargetVersion: s.Target,
			})
		}
	}
	for _, s := range steps {
		if s.TargetVersion == "" {
			s.TargetVersion = props.JVMTarget
		}
		if s.Kind == project.KindJava && s.SourceVersion == "" {
			s.SourceVersion = s.TargetVersion
		}
	}
	opts = append(opts, project.WithCompileSteps(steps...))

	return project.New(spec.Name, dir, opts...), nil
}

func (l *Loader) properties(dir string) (Properties, error) {
	path := filepath.Join(dir, PropertiesFileName)
	if !l.fs.Exists(path) {
		return Properties{}, nil
	}
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return Properties{}, NewManifestParseError(path, err)
	}
	props, err := ParseProperties(data)
	if err != nil {
		return Properties{}, NewManifestParseError(path, err)
	}
	return props, nil
}

func (l *Loader) log(ctx context.Context) ports.Logger {
	if l.logger != nil {
		return l.logger
	}
	if logger := ports.LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return ports.Discard
}

// resolveDir joins rel onto base unless rel is absolute. An empty rel
// yields fallback.
func resolveDir(base, rel, fallback string) string {
	switch {
	case rel == "":
		return fallback
	case filepath.IsAbs(rel):
		return filepath.Clean(rel)
	default:
		return filepath.Join(base, rel)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
