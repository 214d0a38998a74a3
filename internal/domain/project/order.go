package project

// Edge states that Dependent is configured after Dependency.
type Edge struct {
	Dependent  string
	Dependency string
}

// EvaluationOrder is the set of "configure after" constraints between
// projects. It stays acyclic: an edge that would close a cycle is
// rejected.
type EvaluationOrder struct {
	edges     []Edge
	dependsOn map[string][]string // dependent -> dependencies
}

// NewEvaluationOrder creates an empty order.
func NewEvaluationOrder() *EvaluationOrder {
	return &EvaluationOrder{dependsOn: make(map[string][]string)}
}

// Add records that dependent is evaluated after dependency. Adding an
// existing edge is a no-op. A self edge or an edge closing a cycle fails
// with a CycleError.
func (o *EvaluationOrder) Add(dependent, dependency string) error {
	if dependent == dependency {
		return NewCycleError([]string{dependent, dependency})
	}
	for _, d := range o.dependsOn[dependent] {
		if d == dependency {
			return nil
		}
	}
	if path := o.path(dependency, dependent); path != nil {
		return NewCycleError(append([]string{dependent}, path...))
	}

	o.edges = append(o.edges, Edge{Dependent: dependent, Dependency: dependency})
	o.dependsOn[dependent] = append(o.dependsOn[dependent], dependency)
	return nil
}

// Edges returns the edges in declaration order.
func (o *EvaluationOrder) Edges() []Edge {
	return append([]Edge(nil), o.edges...)
}

// Len returns the number of edges.
func (o *EvaluationOrder) Len() int {
	return len(o.edges)
}

// DependenciesOf returns the projects name must be evaluated after.
func (o *EvaluationOrder) DependenciesOf(name string) []string {
	return append([]string(nil), o.dependsOn[name]...)
}

// Sort returns names in an order that honours every edge. Ties keep the
// order of names. Edges mentioning projects outside names are ignored.
func (o *EvaluationOrder) Sort(names []string) ([]string, error) {
	// Kahn's algorithm, scanning in input order for stable output.
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	inDegree := make(map[string]int, len(names))
	dependents := make(map[string][]string)
	for _, n := range names {
		for _, dep := range o.dependsOn[n] {
			if !present[dep] {
				continue
			}
			inDegree[n]++
			dependents[dep] = append(dependents[dep], n)
		}
	}

	done := make(map[string]bool, len(names))
	sorted := make([]string, 0, len(names))
	for len(sorted) < len(names) {
		progressed := false
		for _, n := range names {
			if done[n] || inDegree[n] > 0 {
				continue
			}
			done[n] = true
			sorted = append(sorted, n)
			for _, d := range dependents[n] {
				inDegree[d]--
			}
			progressed = true
			break
		}
		if !progressed {
			var stuck []string
			for _, n := range names {
				if !done[n] {
					stuck = append(stuck, n)
				}
			}
			return nil, NewCycleError(stuck)
		}
	}
	return sorted, nil
}

// path returns a dependency chain from -> ... -> to, or nil.
func (o *EvaluationOrder) path(from, to string) []string {
	visited := make(map[string]bool)
	var walk func(n string) []string
	walk = func(n string) []string {
		if n == to {
			return []string{n}
		}
		if visited[n] {
			return nil
		}
		visited[n] = true
		for _, dep := range o.dependsOn[n] {
			if rest := walk(dep); rest != nil {
				return append([]string{n}, rest...)
			}
		}
		return nil
	}
	return walk(from)
}
