package classify

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/pydepviz/pydepviz/pkg/community"
	"github.com/pydepviz/pydepviz/pkg/depgraph"
)

const root = "test-project-root"

func directSet(names ...string) depgraph.DirectSet {
	s := make(depgraph.DirectSet)
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func TestTagIsTotalAndExclusive(t *testing.T) {
	nodes := []string{root, "pytest", "networkx", "decorator", "numpy"}
	partition := community.Partition{root: 0, "pytest": 1, "networkx": 2}
	tests := []struct {
		name string
		c    *Classifier
	}{
		{"WithPartition", New(root, directSet("pytest", "networkx"), partition)},
		{"WithoutPartition", New(root, directSet("pytest", "networkx"), nil)},
	}

	valid := map[Method]bool{
		MethodProjectRoot: true,
		MethodCommunity:   true,
		MethodDirect:      true,
		MethodTransitive:  true,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, node := range nodes {
				got := tt.c.Classify(node)
				if !valid[got.Method] {
					t.Errorf("node %q: invalid method %q", node, got.Method)
				}
				if (got.Method == MethodProjectRoot) != (node == root) {
					t.Errorf("node %q: ProjectRoot tag must hold iff node is root, got %q", node, got.Method)
				}
			}
		})
	}
}

func TestRootAlwaysWins(t *testing.T) {
	// The partition assigns the root a community; the root color must
	// still be the reserved gold.
	partition := community.Partition{root: 5, "pytest": 1}

	for _, c := range []*Classifier{
		New(root, directSet("pytest"), partition),
		New(root, directSet("pytest"), nil),
	} {
		got := c.Classify(root)
		if got.Method != MethodProjectRoot {
			t.Errorf("root method = %q, want ProjectRoot", got.Method)
		}
		if got.Color != ColorRoot {
			t.Errorf("root color = %q, want %q", got.Color, ColorRoot)
		}
		if got.Title != "Root: "+root {
			t.Errorf("root title = %q", got.Title)
		}
		if got.SizeTier != TierRoot {
			t.Errorf("root size tier = %d, want %d", got.SizeTier, TierRoot)
		}
		if !strings.Contains(got.Info, "Coloring Method: Project Root") {
			t.Errorf("root info = %q, missing coloring method", got.Info)
		}
	}
}

func TestCommunityColoring(t *testing.T) {
	partition := community.Partition{
		"pytest":    1,
		"plotly":    1,
		"networkx":  2,
		"decorator": 2,
		"numpy":     PaletteSize + 3, // exercises the modulo wrap
	}
	c := New(root, directSet("pytest", "networkx", "plotly"), partition)

	tests := []struct {
		node      string
		wantID    int
		wantColor string
	}{
		{"pytest", 1, Palette()[1]},
		{"plotly", 1, Palette()[1]},
		{"networkx", 2, Palette()[2]},
		{"decorator", 2, Palette()[2]},
		{"numpy", PaletteSize + 3, Palette()[3]},
	}

	for _, tt := range tests {
		t.Run(tt.node, func(t *testing.T) {
			got := c.Classify(tt.node)
			if got.Method != MethodCommunity {
				t.Fatalf("method = %q, want Community", got.Method)
			}
			if got.Color != tt.wantColor {
				t.Errorf("color = %q, want %q", got.Color, tt.wantColor)
			}
			if got.CommunityID != tt.wantID {
				t.Errorf("community id = %d, want %d", got.CommunityID, tt.wantID)
			}
			wantTitle := "Community " + strconv.Itoa(tt.wantID) + ": " + tt.node
			if got.Title != wantTitle {
				t.Errorf("title = %q, want %q", got.Title, wantTitle)
			}
			if !strings.Contains(got.Info, "Coloring Method: Community") {
				t.Errorf("info = %q, missing coloring method", got.Info)
			}
		})
	}

	// Same community id always yields the same color.
	if c.Classify("pytest").Color != c.Classify("plotly").Color {
		t.Error("nodes sharing a community id must share a color")
	}
}

func TestPartialPartitionFallsThrough(t *testing.T) {
	// "decorator" has no partition entry, so it falls to the depth tiers
	// even though a partition exists.
	partition := community.Partition{"pytest": 0}
	c := New(root, directSet("pytest", "networkx"), partition)

	if got := c.Classify("networkx"); got.Method != MethodDirect {
		t.Errorf("uncovered direct node method = %q, want DirectDependency", got.Method)
	}
	if got := c.Classify("decorator"); got.Method != MethodTransitive {
		t.Errorf("uncovered transitive node method = %q, want TransitiveDependency", got.Method)
	}
}

func TestDepthFallback(t *testing.T) {
	c := New(root, directSet("pytest", "networkx", "plotly"), nil)

	direct := []string{"pytest", "networkx", "plotly"}
	transitive := []string{"decorator", "numpy", "iniconfig"}

	for _, node := range direct {
		got := c.Classify(node)
		if got.Method != MethodDirect {
			t.Errorf("node %q method = %q, want DirectDependency", node, got.Method)
		}
		if got.Color != ColorDirect {
			t.Errorf("node %q color = %q, want %q", node, got.Color, ColorDirect)
		}
		if got.Title != "Direct Dep: "+node {
			t.Errorf("node %q title = %q", node, got.Title)
		}
		if got.SizeTier != TierDirect {
			t.Errorf("node %q size tier = %d, want %d", node, got.SizeTier, TierDirect)
		}
	}

	for _, node := range transitive {
		got := c.Classify(node)
		if got.Method != MethodTransitive {
			t.Errorf("node %q method = %q, want TransitiveDependency", node, got.Method)
		}
		if got.Color != ColorTransitive {
			t.Errorf("node %q color = %q, want %q", node, got.Color, ColorTransitive)
		}
		if got.Title != "Transitive Dep: "+node {
			t.Errorf("node %q title = %q", node, got.Title)
		}
		if got.SizeTier != TierTransitive {
			t.Errorf("node %q size tier = %d, want %d", node, got.SizeTier, TierTransitive)
		}
		if !strings.Contains(got.Info, "Coloring Method: Depth (Fallback)") {
			t.Errorf("node %q info = %q, missing fallback coloring method", node, got.Info)
		}
	}

	if ColorDirect == ColorTransitive {
		t.Error("direct and transitive colors must differ")
	}
}

func TestSizeTierIndependentOfCommunity(t *testing.T) {
	// Community membership must not change a node's size tier.
	partition := community.Partition{"pytest": 0, "decorator": 0}
	c := New(root, directSet("pytest"), partition)

	if got := c.Classify("pytest").SizeTier; got != TierDirect {
		t.Errorf("direct node under community coloring: tier = %d, want %d", got, TierDirect)
	}
	if got := c.Classify("decorator").SizeTier; got != TierTransitive {
		t.Errorf("transitive node under community coloring: tier = %d, want %d", got, TierTransitive)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	nodes := []string{root, "pytest", "networkx", "decorator", "numpy"}
	partition := community.Partition{"pytest": 1, "networkx": 2}
	c := New(root, directSet("pytest", "networkx"), partition)

	first := c.ClassifyAll(nodes)
	second := c.ClassifyAll(nodes)

	if !reflect.DeepEqual(first, second) {
		t.Error("classifying the same inputs twice must yield identical results")
	}
}

func TestDegraded(t *testing.T) {
	if New(root, nil, nil).Degraded() != true {
		t.Error("nil partition should report degraded")
	}
	if New(root, nil, community.Partition{}).Degraded() != false {
		t.Error("present partition should not report degraded")
	}
}

func TestPaletteProperties(t *testing.T) {
	p := Palette()
	if len(p) < 12 {
		t.Fatalf("palette size = %d, want at least 12 distinct hues", len(p))
	}

	seen := make(map[string]bool)
	for i, color := range p {
		if seen[color] {
			t.Errorf("palette color %q at index %d is duplicated", color, i)
		}
		seen[color] = true
		if color == ColorRoot {
			t.Errorf("palette index %d collides with the reserved root color", i)
		}
	}

	if CommunityColor(3) != CommunityColor(3+PaletteSize) {
		t.Error("CommunityColor must wrap modulo the palette size")
	}
	if CommunityColor(0) != p[0] {
		t.Error("CommunityColor(0) must be the first palette entry")
	}
}
