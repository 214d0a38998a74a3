package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/felixgeelhaar/buildlayout/internal/domain/layout"
)

// Output colors.
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	projectStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
)

// PrintLayout outputs a human-readable layout summary.
func (b *BuildLayout) PrintLayout(l *layout.Layout) {
	title := cases.Title(language.English)

	b.printf("\n%s %s\n", titleStyle.Render("Build Layout"), mutedStyle.Render("(run "+l.RunID+")"))
	b.printf("============\n\n")
	b.printf("  Output root:  %s\n", l.OutputRoot)
	if l.Toolchain != "" {
		b.printf("  Toolchain:    %s\n", l.Toolchain)
	}
	if len(l.Repositories) > 0 {
		b.printf("  Repositories: %s\n", strings.Join(l.Repositories, ", "))
	}
	b.printf("  Evaluation:   %s\n\n", strings.Join(l.EvaluationOrder, " -> "))

	for _, p := range l.Projects {
		b.printf("  %s %s\n", projectStyle.Render(p.Name), mutedStyle.Render(p.OutputDir))
		if p.Namespace != "" {
			b.printf("      Namespace: %s\n", p.Namespace)
		}
		if p.Toolchain != "" {
			b.printf("      Java toolchain: %s\n", p.Toolchain)
		}
		if len(p.EvaluatedAfter) > 0 {
			b.printf("      After: %s\n", strings.Join(p.EvaluatedAfter, ", "))
		}
		for _, s := range p.CompileSteps {
			if s.Source != "" {
				b.printf("      %s: %s (source %s, target %s)\n", title.String(s.Kind), s.Name, s.Source, s.Target)
				continue
			}
			b.printf("      %s: %s (target %s)\n", title.String(s.Kind), s.Name, s.Target)
		}
	}

	b.printf("\n%s %d subprojects configured\n", successStyle.Render("✓"), len(l.Projects))
}

// PrintOrder outputs the evaluation sequence, one project per line.
func (b *BuildLayout) PrintOrder(sequence []string) {
	for i, name := range sequence {
		b.printf("%3d. %s\n", i+1, name)
	}
}
