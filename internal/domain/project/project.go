package project

import "path/filepath"

// DefaultBuildDirName is the per-project build directory used before any
// redirection.
const DefaultBuildDirName = "build"

// Node is what the layout pass needs from every project.
type Node interface {
	Name() string
	OutputDir() string
	SetOutputDir(dir string)
}

// LibraryExtension holds the attributes of an Android-style library.
type LibraryExtension struct {
	Namespace string
}

// JavaToolchain is the language version a Java toolchain is resolved for.
type JavaToolchain struct {
	LanguageVersion string
}

// HasLibraryExtension is implemented by projects that may carry a library
// extension. ok is false when the project has none.
type HasLibraryExtension interface {
	LibraryExtension() (ext *LibraryExtension, ok bool)
}

// HasJavaCompileSteps is implemented by projects with Java compile steps.
type HasJavaCompileSteps interface {
	JavaCompileSteps() []*CompileStep
}

// HasKotlinCompileSteps is implemented by projects with Kotlin compile steps.
type HasKotlinCompileSteps interface {
	KotlinCompileSteps() []*CompileStep
}

// HasJavaToolchain is implemented by projects that may configure a Java
// toolchain.
type HasJavaToolchain interface {
	JavaToolchain() (tc *JavaToolchain, ok bool)
}

// HasRepositories is implemented by projects that resolve artifacts from
// named repositories.
type HasRepositories interface {
	Repositories() []string
	SetRepositories(repos []string)
}

// HasSourceDir is implemented by projects that know their source
// directory.
type HasSourceDir interface {
	Dir() string
}

// Project is the standard Node implementation. It supports every
// capability; absent extensions are reported through the ok results.
type Project struct {
	name         string
	dir          string
	outputDir    string
	plugins      []string
	library      *LibraryExtension
	toolchain    *JavaToolchain
	steps        []*CompileStep
	repositories []string
}

// Option configures a Project.
type Option func(*Project)

// WithOutputDir overrides the default <dir>/build output directory.
func WithOutputDir(dir string) Option {
	return func(p *Project) {
		p.outputDir = dir
	}
}

// WithPlugins records the plugin ids applied to the project.
func WithPlugins(ids ...string) Option {
	return func(p *Project) {
		p.plugins = append(p.plugins, ids...)
	}
}

// WithLibrary attaches a library extension.
func WithLibrary(namespace string) Option {
	return func(p *Project) {
		p.library = &LibraryExtension{Namespace: namespace}
	}
}

// WithJavaToolchain attaches a Java toolchain.
func WithJavaToolchain(languageVersion string) Option {
	return func(p *Project) {
		p.toolchain = &JavaToolchain{LanguageVersion: languageVersion}
	}
}

// WithCompileSteps adds compile steps.
func WithCompileSteps(steps ...*CompileStep) Option {
	return func(p *Project) {
		p.steps = append(p.steps, steps...)
	}
}

// New creates a project rooted at dir. The name is normalized with
// NormalizeName.
func New(name, dir string, opts ...Option) *Project {
	p := &Project{
		name: NormalizeName(name),
		dir:  dir,
	}
	if dir != "" {
		p.outputDir = filepath.Join(dir, DefaultBuildDirName)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the project name.
func (p *Project) Name() string { return p.name }

// Dir returns the project source directory.
func (p *Project) Dir() string { return p.dir }

// OutputDir returns the current output directory.
func (p *Project) OutputDir() string { return p.outputDir }

// SetOutputDir replaces the output directory.
func (p *Project) SetOutputDir(dir string) { p.outputDir = dir }

// Plugins returns the applied plugin ids.
func (p *Project) Plugins() []string {
	return append([]string(nil), p.plugins...)
}

// LibraryExtension returns the library extension, if any.
func (p *Project) LibraryExtension() (*LibraryExtension, bool) {
	return p.library, p.library != nil
}

// JavaToolchain returns the Java toolchain, if any.
func (p *Project) JavaToolchain() (*JavaToolchain, bool) {
	return p.toolchain, p.toolchain != nil
}

// CompileSteps returns all compile steps in declaration order.
func (p *Project) CompileSteps() []*CompileStep {
	return append([]*CompileStep(nil), p.steps...)
}

// JavaCompileSteps returns the Java compile steps.
func (p *Project) JavaCompileSteps() []*CompileStep {
	return p.stepsOfKind(KindJava)
}

// KotlinCompileSteps returns the Kotlin compile steps.
func (p *Project) KotlinCompileSteps() []*CompileStep {
	return p.stepsOfKind(KindKotlin)
}

// Repositories returns the configured repositories.
func (p *Project) Repositories() []string {
	return append([]string(nil), p.repositories...)
}

// SetRepositories replaces the configured repositories.
func (p *Project) SetRepositories(repos []string) {
	p.repositories = append([]string(nil), repos...)
}

func (p *Project) stepsOfKind(kind StepKind) []*CompileStep {
	var out []*CompileStep
	for _, s := range p.steps {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

var (
	_ Node                  = (*Project)(nil)
	_ HasLibraryExtension   = (*Project)(nil)
	_ HasJavaCompileSteps   = (*Project)(nil)
	_ HasKotlinCompileSteps = (*Project)(nil)
	_ HasJavaToolchain      = (*Project)(nil)
	_ HasRepositories       = (*Project)(nil)
)
