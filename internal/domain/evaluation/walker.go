// Package evaluation walks a project graph in evaluation order, the way a
// host build engine configures projects: every project is configured
// after the projects it was declared to depend on.
package evaluation

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/buildlayout/internal/domain/project"
	"github.com/felixgeelhaar/buildlayout/internal/ports"
	"github.com/felixgeelhaar/statekit"
)

// Visitor configures one project.
type Visitor func(ctx context.Context, n project.Node) error

// Walker evaluates graphs.
type Walker struct {
	logger ports.Logger
}

// NewWalker creates a Walker. A nil logger is allowed.
func NewWalker(logger ports.Logger) *Walker {
	return &Walker{logger: logger}
}

// Walk visits every project of g exactly once, dependencies first, and
// returns the visit sequence. Projects are started in graph order (root
// first). A nil visit only computes the sequence.
func (w *Walker) Walk(ctx context.Context, g *project.Graph, visit Visitor) ([]string, error) {
	run, err := w.run(ctx, g, visit)
	defer run.stop()
	return run.sequence, err
}

// States walks g like Walk and reports the final state of every project.
// Projects never reached stay pending.
func (w *Walker) States(ctx context.Context, g *project.Graph, visit Visitor) (map[string]State, error) {
	run, err := w.run(ctx, g, visit)
	defer run.stop()

	states := make(map[string]State, g.Len())
	for _, name := range g.Names() {
		states[name] = StatePending
		if interp, ok := run.machines[name]; ok {
			states[name] = currentState(interp)
		}
	}
	return states, err
}

func (w *Walker) run(ctx context.Context, g *project.Graph, visit Visitor) (*walk, error) {
	run := &walk{
		ctx:      ctx,
		graph:    g,
		visit:    visit,
		logger:   w.logger,
		machines: make(map[string]*statekit.Interpreter[lifecycle], g.Len()),
	}
	for _, n := range g.Projects() {
		if err := run.evaluate(n, nil); err != nil {
			return run, err
		}
	}
	return run, nil
}

type walk struct {
	ctx      context.Context
	graph    *project.Graph
	visit    Visitor
	logger   ports.Logger
	machines map[string]*statekit.Interpreter[lifecycle]
	sequence []string
}

func (r *walk) evaluate(n project.Node, stack []string) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}

	name := n.Name()
	interp, err := r.machine(name)
	if err != nil {
		return err
	}

	switch currentState(interp) {
	case StateConfigured:
		return nil
	case StateConfiguring:
		return project.NewCycleError(append(cycleFrom(stack, name), name))
	case StateFailed:
		return fmt.Errorf("project %q failed to configure earlier", name)
	}

	interp.Send(statekit.Event{Type: EventBegin})
	stack = append(stack, name)

	for _, depName := range r.graph.Order().DependenciesOf(name) {
		dep, ok := r.graph.Lookup(depName)
		if !ok {
			interp.Send(statekit.Event{Type: EventFail})
			return project.NewUnknownProjectError(depName)
		}
		if err := r.evaluate(dep, stack); err != nil {
			interp.Send(statekit.Event{Type: EventFail})
			return err
		}
	}

	if r.visit != nil {
		if err := r.visit(r.ctx, n); err != nil {
			interp.Send(statekit.Event{Type: EventFail})
			return fmt.Errorf("configure %s: %w", name, err)
		}
	}

	interp.Send(statekit.Event{Type: EventFinish})
	r.sequence = append(r.sequence, name)
	if r.logger != nil {
		r.logger.Debug(r.ctx, "project evaluated", ports.F("project", name), ports.F("position", len(r.sequence)))
	}
	return nil
}

func (r *walk) machine(name string) (*statekit.Interpreter[lifecycle], error) {
	if interp, ok := r.machines[name]; ok {
		return interp, nil
	}
	interp, err := newLifecycle(name)
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluation state machine: %w", err)
	}
	r.machines[name] = interp
	return interp, nil
}

func (r *walk) stop() {
	for _, interp := range r.machines {
		interp.Stop()
	}
}

// cycleFrom returns the tail of stack starting at name.
func cycleFrom(stack []string, name string) []string {
	for i, s := range stack {
		if s == name {
			return append([]string(nil), stack[i:]...)
		}
	}
	return append([]string(nil), stack...)
}
