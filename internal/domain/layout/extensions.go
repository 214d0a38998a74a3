package layout

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/buildlayout/internal/domain/project"
	"github.com/felixgeelhaar/buildlayout/internal/ports"
)

// DefaultNamespace derives a library namespace from a project name.
func DefaultNamespace(prefix, name string) string {
	return prefix + "." + strings.ReplaceAll(name, "-", "_")
}

// ApplyDefaultNamespaces gives every library subproject without a
// namespace the namespace DefaultNamespace(prefix, name). Existing
// namespaces are left alone. It returns the names of updated projects.
func (c *Coordinator) ApplyDefaultNamespaces(ctx context.Context, g *project.Graph, prefix string) []string {
	var updated []string
	for _, n := range g.Subprojects() {
		lib, ok := n.(project.HasLibraryExtension)
		if !ok {
			continue
		}
		ext, present := lib.LibraryExtension()
		if !present || ext.Namespace != "" {
			continue
		}
		ext.Namespace = DefaultNamespace(prefix, n.Name())
		updated = append(updated, n.Name())
		c.log(ctx).Debug(ctx, "applied default namespace",
			ports.F("project", n.Name()),
			ports.F("namespace", ext.Namespace))
	}
	return updated
}

// AssignRepositories sets repos on every project, root included, that
// resolves artifacts from repositories. Duplicates are dropped and the
// first occurrence keeps its position.
func (c *Coordinator) AssignRepositories(ctx context.Context, g *project.Graph, repos []string) {
	unique := dedupe(repos)
	for _, n := range g.Projects() {
		if r, ok := n.(project.HasRepositories); ok {
			r.SetRepositories(unique)
		}
	}
	c.log(ctx).Debug(ctx, "assigned repositories", ports.F("repositories", strings.Join(unique, ",")))
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
