package classify

import (
	"fmt"

	"github.com/pydepviz/pydepviz/pkg/community"
	"github.com/pydepviz/pydepviz/pkg/depgraph"
)

// Method tags how a node was classified. Exactly one applies per node.
type Method string

// Classification methods in priority order.
const (
	MethodProjectRoot Method = "ProjectRoot"
	MethodCommunity   Method = "Community"
	MethodDirect      Method = "DirectDependency"
	MethodTransitive  Method = "TransitiveDependency"
)

// ColoringLabel returns the human-readable coloring method reported in
// hover info. Both fallback tiers report depth-based coloring.
func (m Method) ColoringLabel() string {
	switch m {
	case MethodProjectRoot:
		return "Project Root"
	case MethodCommunity:
		return "Community"
	default:
		return "Depth (Fallback)"
	}
}

// Size tiers. Size is a monotone function of tier and independent of
// community membership: root > direct > transitive.
const (
	TierRoot       = 3
	TierDirect     = 2
	TierTransitive = 1
)

// Classification is the display outcome for a single node.
type Classification struct {
	Method      Method
	Color       string
	Title       string // e.g. "Direct Dep: requests"
	Info        string // hover text including the coloring method
	SizeTier    int
	CommunityID int // valid only when Method is MethodCommunity
}

// Classifier assigns a classification to every node of a graph. It holds
// no hidden state: the outcome is a pure function of the node name, the
// root name, direct-set membership, and the optional partition.
type Classifier struct {
	root      string
	direct    depgraph.DirectSet
	partition community.Partition
}

// New creates a classifier. A nil partition selects the depth-based
// fallback policy for every non-root node.
func New(root string, direct depgraph.DirectSet, partition community.Partition) *Classifier {
	return &Classifier{root: root, direct: direct, partition: partition}
}

// Degraded reports whether community coloring is unavailable and the
// classifier is operating on the fallback tiers only.
func (c *Classifier) Degraded() bool { return c.partition == nil }

// Classify returns the classification for a single node, evaluating the
// priority tiers in order. It is total: tier 4 always applies when no
// higher tier does.
func (c *Classifier) Classify(node string) Classification {
	// 1. Root always wins, even over a community assignment.
	if node == c.root {
		return Classification{
			Method:   MethodProjectRoot,
			Color:    ColorRoot,
			Title:    fmt.Sprintf("Root: %s", node),
			Info:     hoverInfo(node, fmt.Sprintf("Root: %s", node), MethodProjectRoot),
			SizeTier: TierRoot,
		}
	}

	size := TierTransitive
	if c.direct.Contains(node) {
		size = TierDirect
	}

	// 2. Community coloring, when a partition exists and covers the node.
	if c.partition != nil {
		if id, ok := c.partition[node]; ok {
			title := fmt.Sprintf("Community %d: %s", id, node)
			return Classification{
				Method:      MethodCommunity,
				Color:       CommunityColor(id),
				Title:       title,
				Info:        hoverInfo(node, title, MethodCommunity),
				SizeTier:    size,
				CommunityID: id,
			}
		}
	}

	// 3. Direct dependency fallback.
	if c.direct.Contains(node) {
		title := fmt.Sprintf("Direct Dep: %s", node)
		return Classification{
			Method:   MethodDirect,
			Color:    ColorDirect,
			Title:    title,
			Info:     hoverInfo(node, title, MethodDirect),
			SizeTier: size,
		}
	}

	// 4. Transitive catch-all.
	title := fmt.Sprintf("Transitive Dep: %s", node)
	return Classification{
		Method:   MethodTransitive,
		Color:    ColorTransitive,
		Title:    title,
		Info:     hoverInfo(node, title, MethodTransitive),
		SizeTier: size,
	}
}

// ClassifyAll classifies every named node.
func (c *Classifier) ClassifyAll(nodes []string) map[string]Classification {
	out := make(map[string]Classification, len(nodes))
	for _, node := range nodes {
		out[node] = c.Classify(node)
	}
	return out
}

// hoverInfo builds the combined hover string reporting the node, its
// title, and which coloring method applied.
func hoverInfo(node, title string, m Method) string {
	return fmt.Sprintf("%s<br>%s<br>Coloring Method: %s", node, title, m.ColoringLabel())
}
