// Package layout computes and enforces the build layout of a multi-project
// build: one redirected output root, an isolated output directory per
// subproject, evaluation order constraints, a uniform toolchain version
// and cleanup of the redirected root.
package layout

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/buildlayout/internal/domain/project"
	"github.com/felixgeelhaar/buildlayout/internal/ports"
	"golang.org/x/mod/semver"
)

// Coordinator applies layout decisions to a project graph. It assumes
// exclusive access to the graph for the duration of a call.
type Coordinator struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger. Without one the coordinator uses the logger
// carried by the context, if any.
func WithLogger(logger ports.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// NewCoordinator creates a Coordinator resolving paths through fs.
func NewCoordinator(fs ports.FileSystem, opts ...Option) *Coordinator {
	c := &Coordinator{fs: fs}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RedirectOutputRoot resolves relativePath against the root project's
// current output directory, makes the result the root's output directory
// and returns it. The result must lie outside the root's build tree.
// Nothing is written to disk.
func (c *Coordinator) RedirectOutputRoot(ctx context.Context, root project.Node, relativePath string) (string, error) {
	if strings.TrimSpace(relativePath) == "" {
		return "", project.NewPathResolutionError(relativePath, "path is empty", nil)
	}

	defaultTree, err := c.fs.Abs(root.OutputDir())
	if err != nil {
		return "", project.NewPathResolutionError(root.OutputDir(), "root output directory is not accessible", err)
	}

	candidate := relativePath
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(defaultTree, candidate)
	}
	resolved, err := c.fs.Abs(candidate)
	if err != nil {
		return "", project.NewPathResolutionError(relativePath, "path is not accessible", err)
	}

	if ports.IsWithin(resolved, defaultTree) {
		return "", project.NewPathResolutionError(relativePath,
			"resolves inside the root project's own build tree "+defaultTree, nil)
	}

	root.SetOutputDir(resolved)
	c.log(ctx).Info(ctx, "redirected output root",
		ports.F("project", root.Name()),
		ports.F("from", defaultTree),
		ports.F("to", resolved))
	return resolved, nil
}

// AssignSubprojectOutputs sets every subproject's output directory to
// sharedRoot/<name>.
func (c *Coordinator) AssignSubprojectOutputs(ctx context.Context, g *project.Graph, sharedRoot string) error {
	subs := g.Subprojects()
	if err := project.CheckUniqueNames(subs); err != nil {
		return err
	}
	for _, n := range subs {
		if err := project.ValidateName(n.Name()); err != nil {
			return err
		}
	}

	for _, n := range subs {
		dir := filepath.Join(sharedRoot, n.Name())
		n.SetOutputDir(dir)
		c.log(ctx).Debug(ctx, "assigned output directory", ports.F("project", n.Name()), ports.F("dir", dir))
	}
	return nil
}

// DeclareEvaluationOrder records that dependent is configured after
// dependency. The constraint is consumed by the host engine's scheduler.
func (c *Coordinator) DeclareEvaluationOrder(ctx context.Context, g *project.Graph, dependent, dependency string) error {
	dependentNode, ok := g.Lookup(dependent)
	if !ok {
		return project.NewUnknownProjectError(dependent)
	}
	dependencyNode, ok := g.Lookup(dependency)
	if !ok {
		return project.NewUnknownProjectError(dependency)
	}

	if err := g.Order().Add(dependentNode.Name(), dependencyNode.Name()); err != nil {
		return err
	}
	c.log(ctx).Debug(ctx, "declared evaluation order",
		ports.F("project", dependentNode.Name()),
		ports.F("after", dependencyNode.Name()))
	return nil
}

// PinToolchainVersion sets version on every compile step and Java
// toolchain of every subproject. Later calls overwrite earlier ones.
func (c *Coordinator) PinToolchainVersion(ctx context.Context, g *project.Graph, version string) {
	for _, n := range g.Subprojects() {
		pinned := 0

		if java, ok := n.(project.HasJavaCompileSteps); ok {
			for _, step := range java.JavaCompileSteps() {
				c.warnOnDowngrade(ctx, n.Name(), step.Name, step.Pin(version), version)
				pinned++
			}
		}
		if kotlin, ok := n.(project.HasKotlinCompileSteps); ok {
			for _, step := range kotlin.KotlinCompileSteps() {
				c.warnOnDowngrade(ctx, n.Name(), step.Name, step.Pin(version), version)
				pinned++
			}
		}
		if tc, ok := n.(project.HasJavaToolchain); ok {
			if toolchain, present := tc.JavaToolchain(); present {
				toolchain.LanguageVersion = version
			}
		}

		if pinned > 0 {
			c.log(ctx).Debug(ctx, "pinned compile steps",
				ports.F("project", n.Name()),
				ports.F("steps", pinned),
				ports.F("version", version))
		}
	}
}

// Clean deletes outputRoot and everything below it. A missing root is not
// an error. The first failure is returned as an IOError. Nothing is deleted
// when outputRoot equals or contains one of the protected directories.
func (c *Coordinator) Clean(ctx context.Context, outputRoot string, protected ...string) error {
	if outputRoot == "" || !filepath.IsAbs(outputRoot) {
		return project.NewPathResolutionError(outputRoot, "clean needs an absolute output root", nil)
	}
	cleaned := filepath.Clean(outputRoot)
	if cleaned == filepath.Dir(cleaned) {
		return project.NewPathResolutionError(outputRoot, "refusing to delete a filesystem root", nil)
	}
	for _, dir := range protected {
		if dir == "" {
			continue
		}
		if ports.IsWithin(filepath.Clean(dir), cleaned) {
			return project.NewProtectedPathError(cleaned, dir)
		}
	}

	if err := c.fs.RemoveAll(cleaned); err != nil {
		return project.NewIOError("delete", cleaned, err)
	}
	c.log(ctx).Info(ctx, "cleaned output root", ports.F("dir", cleaned))
	return nil
}

// warnOnDowngrade logs when a pin lowers a semantic version. Opaque
// versions are overwritten silently.
func (c *Coordinator) warnOnDowngrade(ctx context.Context, projectName, step, previous, next string) {
	if previous == "" || previous == next {
		return
	}
	prev, nxt := canonical(previous), canonical(next)
	if prev == "" || nxt == "" || semver.Compare(prev, nxt) <= 0 {
		return
	}
	c.log(ctx).Warn(ctx, "toolchain pin lowers compile target",
		ports.F("project", projectName),
		ports.F("step", step),
		ports.F("from", previous),
		ports.F("to", next))
}

// canonical turns "17" or "1.8" into a semver string, or "" if invalid.
func canonical(version string) string {
	v := "v" + strings.TrimPrefix(version, "v")
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

func (c *Coordinator) log(ctx context.Context) ports.Logger {
	if c.logger != nil {
		return c.logger
	}
	if logger := ports.LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return ports.Discard
}
