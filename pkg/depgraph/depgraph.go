package depgraph

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/pydepviz/pydepviz/pkg/errors"
)

// Edge labels used in the dependency graph.
const (
	// LabelDependsOn marks an edge taken directly from the dependency mapping.
	LabelDependsOn = "depends on"

	// LabelDirectRequirement marks a synthetic edge from the root node to a
	// top-level dependency.
	LabelDirectRequirement = "direct requirement"
)

// Edge is a directed, labeled edge between two named packages.
type Edge struct {
	From  string
	To    string
	Label string
}

// Graph is a directed dependency graph with name-keyed nodes.
//
// The zero value is not usable; use [New] or [Build].
type Graph struct {
	dg    *simple.DirectedGraph
	ids   map[string]int64
	names map[int64]string
	label map[int64]map[int64]string
	next  int64
	root  string

	selfLoopsDropped int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		dg:    simple.NewDirectedGraph(),
		ids:   make(map[string]int64),
		names: make(map[int64]string),
		label: make(map[int64]map[int64]string),
	}
}

// AddNode adds a node with the given name. Adding an existing name is a
// no-op, so duplicate mentions of a package collapse into one node.
func (g *Graph) AddNode(name string) {
	if _, ok := g.ids[name]; ok {
		return
	}
	id := g.next
	g.next++
	g.ids[name] = id
	g.names[id] = name
	g.dg.AddNode(simple.Node(id))
}

// AddEdge adds a directed, labeled edge, creating missing endpoints.
// Self-referential edges are dropped and counted; AddEdge reports whether
// the edge was added. Re-adding an existing edge updates its label.
func (g *Graph) AddEdge(from, to, label string) bool {
	if from == to {
		g.selfLoopsDropped++
		return false
	}
	g.AddNode(from)
	g.AddNode(to)
	f, t := g.ids[from], g.ids[to]
	g.dg.SetEdge(simple.Edge{F: simple.Node(f), T: simple.Node(t)})
	if g.label[f] == nil {
		g.label[f] = make(map[int64]string)
	}
	g.label[f][t] = label
	return true
}

// HasNode reports whether a node with the given name exists.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.ids[name]
	return ok
}

// HasEdge reports whether an edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	f, ok := g.ids[from]
	if !ok {
		return false
	}
	t, ok := g.ids[to]
	if !ok {
		return false
	}
	return g.dg.HasEdgeFromTo(f, t)
}

// EdgeLabel returns the label of the edge from→to, or "" if absent.
func (g *Graph) EdgeLabel(from, to string) string {
	f, ok := g.ids[from]
	if !ok {
		return ""
	}
	return g.label[f][g.ids[to]]
}

// Nodes returns all node names sorted lexicographically.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.ids))
	for name := range g.ids {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Edges returns all edges sorted by (From, To) for deterministic output.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.EdgeCount())
	for f, targets := range g.label {
		for t, label := range targets {
			out = append(out, Edge{From: g.names[f], To: g.names[t], Label: label})
		}
	}
	slices.SortFunc(out, func(a, b Edge) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		if a.To < b.To {
			return -1
		}
		if a.To > b.To {
			return 1
		}
		return 0
	})
	return out
}

// Successors returns the names of nodes reachable from name by one edge,
// sorted lexicographically.
func (g *Graph) Successors(name string) []string {
	id, ok := g.ids[name]
	if !ok {
		return nil
	}
	var out []string
	it := g.dg.From(id)
	for it.Next() {
		out = append(out, g.names[it.Node().ID()])
	}
	slices.Sort(out)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.ids) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, targets := range g.label {
		n += len(targets)
	}
	return n
}

// Root returns the root node name, or "" if the graph was built without one.
func (g *Graph) Root() string { return g.root }

// SelfLoopsDropped returns the number of self-referential edges that were
// discarded while building the graph.
func (g *Graph) SelfLoopsDropped() int { return g.selfLoopsDropped }

// Directed exposes the underlying gonum graph for layout and clustering
// algorithms. Callers must not mutate it.
func (g *Graph) Directed() graph.Directed { return g.dg }

// ID returns the internal gonum node ID for a name.
func (g *Graph) ID(name string) (int64, bool) {
	id, ok := g.ids[name]
	return id, ok
}

// Name returns the node name for an internal gonum node ID.
func (g *Graph) Name(id int64) string { return g.names[id] }

// DirectSet is the set of packages the root explicitly requires.
type DirectSet map[string]struct{}

// Contains reports whether name is a direct dependency of the root.
func (s DirectSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the members sorted lexicographically.
func (s DirectSet) Names() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Build converts a parent→children dependency mapping into a directed
// graph rooted at root and computes the authoritative [DirectSet].
//
// Mapping keys that never appear as a child of another entry are top-level
// candidates and receive a synthetic "direct requirement" edge from the
// root. The DirectSet is the set of the root's successors, which also
// covers the case where the root itself is a mapping key.
//
// Empty input is not an error: the result is a graph containing only the
// root node and an empty DirectSet. Cycles are permitted.
func Build(mapping map[string][]string, root string) (*Graph, DirectSet, error) {
	if root == "" {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "root node name must not be empty")
	}

	g := New()
	g.root = root

	parents := make([]string, 0, len(mapping))
	for parent := range mapping {
		parents = append(parents, parent)
	}
	slices.Sort(parents)

	referenced := make(map[string]bool)
	for _, children := range mapping {
		for _, child := range children {
			referenced[child] = true
		}
	}

	for _, parent := range parents {
		g.AddNode(parent)
		for _, child := range mapping[parent] {
			g.AddEdge(parent, child, LabelDependsOn)
		}
	}

	g.AddNode(root)
	for _, parent := range parents {
		if parent == root || referenced[parent] {
			continue
		}
		g.AddEdge(root, parent, LabelDirectRequirement)
	}

	direct := make(DirectSet)
	for _, name := range g.Successors(root) {
		direct[name] = struct{}{}
	}
	return g, direct, nil
}
