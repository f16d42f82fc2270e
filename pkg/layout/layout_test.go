package layout

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/pydepviz/pydepviz/pkg/depgraph"
)

func buildGraph(t *testing.T, mapping map[string][]string, root string) *depgraph.Graph {
	t.Helper()
	g, _, err := depgraph.Build(mapping, root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestLayoutDeterministic(t *testing.T) {
	mapping := map[string][]string{
		"proj": {"a", "b"},
		"a":    {"c", "d"},
		"b":    {"d"},
		"c":    {},
		"d":    {},
	}
	g := buildGraph(t, mapping, "proj")

	first := New(42).Layout(g)
	second := New(42).Layout(g)

	if !reflect.DeepEqual(first, second) {
		t.Error("same seed and graph should produce identical layouts")
	}
}

func TestLayoutSeedChangesResult(t *testing.T) {
	mapping := map[string][]string{
		"proj": {"a", "b"},
		"a":    {},
		"b":    {},
	}
	g := buildGraph(t, mapping, "proj")

	first := New(1).Layout(g)
	second := New(2).Layout(g)

	if reflect.DeepEqual(first, second) {
		t.Error("different seeds should produce different layouts")
	}
}

func TestLayoutCoversAllNodes(t *testing.T) {
	mapping := map[string][]string{
		"proj": {"x"},
		"x":    {"y"},
		"y":    {},
	}
	g := buildGraph(t, mapping, "proj")

	pos := New(DefaultSeed).Layout(g)
	if len(pos) != g.NodeCount() {
		t.Fatalf("positions = %d, want %d", len(pos), g.NodeCount())
	}
	for _, name := range g.Nodes() {
		p, ok := pos[name]
		if !ok {
			t.Errorf("node %q has no position", name)
			continue
		}
		for _, c := range []float64{p.X, p.Y, p.Z} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				t.Errorf("node %q has non-finite coordinate %v", name, p)
			}
			if math.Abs(c) > 1+1e-9 {
				t.Errorf("node %q coordinate %v outside [-1, 1]", name, c)
			}
		}
	}
}

func TestLayoutDisconnectedComponents(t *testing.T) {
	// Two islands that only the synthetic root ties together, plus a cycle.
	mapping := map[string][]string{
		"a": {"b"},
		"b": {"a"},
		"c": {"d"},
		"d": {},
	}
	g := buildGraph(t, mapping, "proj")

	pos := New(DefaultSeed).Layout(g)
	if len(pos) != g.NodeCount() {
		t.Fatalf("positions = %d, want %d", len(pos), g.NodeCount())
	}

	seen := make(map[string]bool)
	for name, p := range pos {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
			t.Fatalf("node %q has NaN coordinate", name)
		}
		key := fmt.Sprintf("%.9f/%.9f/%.9f", p.X, p.Y, p.Z)
		if seen[key] {
			t.Errorf("node %q shares a position with another node", name)
		}
		seen[key] = true
	}
}

func TestLayoutDegenerateGraphs(t *testing.T) {
	t.Run("RootOnly", func(t *testing.T) {
		g := buildGraph(t, nil, "proj")
		pos := New(DefaultSeed).Layout(g)
		if len(pos) != 1 {
			t.Fatalf("positions = %d, want 1", len(pos))
		}
		if p := pos["proj"]; p.X != 0 || p.Y != 0 || p.Z != 0 {
			t.Errorf("single node should sit at the origin, got %v", p)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		pos := New(DefaultSeed).Layout(depgraph.New())
		if len(pos) != 0 {
			t.Fatalf("positions = %d, want 0", len(pos))
		}
	})
}
