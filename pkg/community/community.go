// Package community groups graph nodes into densely connected clusters
// for coloring.
//
// Detection is a runtime capability, not a guaranteed pipeline stage: a
// [Detector] returns a nil [Partition] to signal "unavailable" as a
// normal value, and any internal failure is reported as an error the
// caller logs and absorbs. Classification then falls back to depth-based
// coloring; nothing here ever aborts a run.
package community

import (
	"slices"

	"golang.org/x/exp/rand"
	gograph "gonum.org/v1/gonum/graph"
	loucomm "gonum.org/v1/gonum/graph/community"

	"github.com/pydepviz/pydepviz/pkg/depgraph"
	"github.com/pydepviz/pydepviz/pkg/errors"
)

// Partition maps node names to community IDs. IDs are dense, start at 0,
// and are assigned deterministically: communities are ordered by their
// lexicographically smallest member.
type Partition map[string]int

// Count returns the number of distinct communities.
func (p Partition) Count() int {
	seen := make(map[int]bool)
	for _, id := range p {
		seen[id] = true
	}
	return len(seen)
}

// Detector discovers community structure in a dependency graph.
//
// A nil Partition with a nil error means detection is unavailable for
// this graph. A non-nil error means detection was attempted and failed;
// callers treat both as a degradation to fallback coloring.
type Detector interface {
	Detect(g *depgraph.Graph) (Partition, error)
}

// Louvain detects communities with the Louvain modularity method on an
// undirected projection of the graph.
type Louvain struct {
	// Resolution is the Louvain resolution parameter. 1.0 is the
	// conventional default.
	Resolution float64

	// Seed feeds the random source used by the modularity search so runs
	// are reproducible.
	Seed uint64
}

// NewLouvain returns a Louvain detector with resolution 1.0.
func NewLouvain(seed uint64) *Louvain {
	return &Louvain{Resolution: 1.0, Seed: seed}
}

// Detect computes the community partition of g. Graphs without edges have
// no community structure and report unavailable. Panics raised inside the
// modularity search are recovered and returned as a degradation error.
func (l *Louvain) Detect(g *depgraph.Graph) (p Partition, err error) {
	if g == nil || g.EdgeCount() == 0 {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = errors.New(errors.ErrCodeClassificationDegraded,
				"community detection failed: %v", r)
		}
	}()

	resolution := l.Resolution
	if resolution <= 0 {
		resolution = 1.0
	}

	// Louvain operates on undirected structure; project the directed
	// dependency graph the same way the modularity literature does.
	und := gograph.Undirect{G: g.Directed()}
	reduced := loucomm.Modularize(und, resolution, rand.NewSource(l.Seed))

	// Communities on the top-level reduction resolve recursively to nodes
	// of the original graph, so the IDs map straight back to names.
	raw := make(map[string]int)
	for ci, comm := range reduced.Communities() {
		for _, n := range comm {
			raw[g.Name(n.ID())] = ci
		}
	}
	return renumber(raw), nil
}

// renumber reassigns community IDs so they depend only on membership:
// communities are sorted by their smallest member name and numbered in
// that order. This keeps colors stable across runs regardless of the
// search's internal ordering.
func renumber(raw map[string]int) Partition {
	groups := make(map[int][]string)
	for name, id := range raw {
		groups[id] = append(groups[id], name)
	}

	reps := make([]string, 0, len(groups))
	repToOld := make(map[string]int, len(groups))
	for id, members := range groups {
		rep := slices.Min(members)
		reps = append(reps, rep)
		repToOld[rep] = id
	}
	slices.Sort(reps)

	remap := make(map[int]int, len(reps))
	for newID, rep := range reps {
		remap[repToOld[rep]] = newID
	}

	out := make(Partition, len(raw))
	for name, id := range raw {
		out[name] = remap[id]
	}
	return out
}

// Unavailable is a Detector that always reports no community structure.
// It models the optional capability being absent and is useful in tests.
type Unavailable struct{}

// Detect reports unavailable.
func (Unavailable) Detect(*depgraph.Graph) (Partition, error) { return nil, nil }

// Failing is a Detector that always errors. It exists for exercising the
// degradation path in tests.
type Failing struct {
	Err error
}

// Detect returns the configured error.
func (f Failing) Detect(*depgraph.Graph) (Partition, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return nil, errors.New(errors.ErrCodeClassificationDegraded, "community detection failed")
}
