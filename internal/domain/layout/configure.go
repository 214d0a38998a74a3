package layout

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/buildlayout/internal/domain/evaluation"
	"github.com/felixgeelhaar/buildlayout/internal/domain/project"
	"github.com/felixgeelhaar/buildlayout/internal/ports"
	"github.com/google/uuid"
)

// Plan holds the decisions one configuration pass applies.
type Plan struct {
	// OutputRoot is resolved against the root project's output directory.
	OutputRoot       string
	ToolchainVersion string
	// EvaluationAnchor is configured before every other subproject.
	// Empty disables the constraint.
	EvaluationAnchor string
	Repositories     []string
	// NamespacePrefix enables default library namespaces when non-empty.
	NamespacePrefix string
}

// Configure runs a full pass over g: repositories, default namespaces,
// output root redirection, subproject outputs, evaluation order and
// toolchain pinning, in that order. The first error aborts the pass;
// mutations already applied stay in place.
func (c *Coordinator) Configure(ctx context.Context, g *project.Graph, plan Plan) (*Layout, error) {
	runID := uuid.NewString()
	run := *c
	run.logger = c.log(ctx).With(ports.F("run_id", runID))
	logger := run.logger

	logger.Info(ctx, "configuring build layout",
		ports.F("root", g.Root().Name()),
		ports.F("subprojects", len(g.Subprojects())))

	if len(plan.Repositories) > 0 {
		run.AssignRepositories(ctx, g, plan.Repositories)
	}
	if plan.NamespacePrefix != "" {
		run.ApplyDefaultNamespaces(ctx, g, plan.NamespacePrefix)
	}

	outputRoot, err := run.RedirectOutputRoot(ctx, g.Root(), plan.OutputRoot)
	if err != nil {
		return nil, err
	}
	if err := run.AssignSubprojectOutputs(ctx, g, outputRoot); err != nil {
		return nil, err
	}

	if plan.EvaluationAnchor != "" {
		if err := run.declareAnchor(ctx, g, plan.EvaluationAnchor); err != nil {
			return nil, err
		}
	}

	if plan.ToolchainVersion != "" {
		run.PinToolchainVersion(ctx, g, plan.ToolchainVersion)
	}

	sequence, err := evaluation.NewWalker(logger).Walk(ctx, g, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compute evaluation order: %w", err)
	}

	report := newLayout(runID, g, outputRoot, plan, sequence)
	logger.Info(ctx, "build layout configured",
		ports.F("output_root", outputRoot),
		ports.F("toolchain", plan.ToolchainVersion))
	return report, nil
}

// declareAnchor makes every subproject other than the anchor evaluate
// after it.
func (c *Coordinator) declareAnchor(ctx context.Context, g *project.Graph, anchor string) error {
	anchorNode, ok := g.Lookup(anchor)
	if !ok {
		return project.NewUnknownProjectError(project.NormalizeName(anchor))
	}
	for _, n := range g.Subprojects() {
		if n.Name() == anchorNode.Name() {
			continue
		}
		if err := c.DeclareEvaluationOrder(ctx, g, n.Name(), anchorNode.Name()); err != nil {
			return err
		}
	}
	return nil
}
