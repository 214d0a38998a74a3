package project

// Graph is one root project plus its subprojects. Subproject order is
// kept for deterministic output only.
type Graph struct {
	root        Node
	subprojects []Node
	index       map[string]Node
	order       *EvaluationOrder
}

// NewGraph builds a graph. Names must be unique across root and
// subprojects; a collision yields a DuplicateProjectNameError.
func NewGraph(root Node, subprojects ...Node) (*Graph, error) {
	all := append([]Node{root}, subprojects...)
	if err := CheckUniqueNames(all); err != nil {
		return nil, err
	}

	index := make(map[string]Node, len(all))
	for _, n := range all {
		index[n.Name()] = n
	}

	return &Graph{
		root:        root,
		subprojects: append([]Node(nil), subprojects...),
		index:       index,
		order:       NewEvaluationOrder(),
	}, nil
}

// CheckUniqueNames returns a DuplicateProjectNameError for the first name
// that appears twice.
func CheckUniqueNames(nodes []Node) error {
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if _, dup := seen[n.Name()]; dup {
			return NewDuplicateProjectNameError(n.Name())
		}
		seen[n.Name()] = struct{}{}
	}
	return nil
}

// Root returns the root project.
func (g *Graph) Root() Node { return g.root }

// Subprojects returns the subprojects in graph order.
func (g *Graph) Subprojects() []Node {
	return append([]Node(nil), g.subprojects...)
}

// Projects returns the root followed by the subprojects.
func (g *Graph) Projects() []Node {
	return append([]Node{g.root}, g.subprojects...)
}

// Names returns the project names, root first.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.subprojects)+1)
	for _, n := range g.Projects() {
		names = append(names, n.Name())
	}
	return names
}

// Lookup finds a project by name; ":app" and "app" are equivalent.
func (g *Graph) Lookup(name string) (Node, bool) {
	n, ok := g.index[NormalizeName(name)]
	return n, ok
}

// Len returns the number of projects including the root.
func (g *Graph) Len() int {
	return len(g.subprojects) + 1
}

// Order returns the evaluation order declared on this graph.
func (g *Graph) Order() *EvaluationOrder {
	return g.order
}
