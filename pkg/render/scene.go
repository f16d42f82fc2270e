package render

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pydepviz/pydepviz/pkg/classify"
	"github.com/pydepviz/pydepviz/pkg/depgraph"
)

// markerScale converts a classification size tier into a marker size in
// pixels.
const markerScale = 10

// UnknownSize is the edge annotation used when no install size is known
// for the destination package.
const UnknownSize = "Unknown Size"

// Node is a positioned, styled marker in the scene.
type Node struct {
	Name  string
	X     float64
	Y     float64
	Z     float64
	Color string
	Size  float64 // marker size in pixels
	Label string  // persistent bold label
	Hover string  // classification hover text
}

// Edge is a line segment between two positioned nodes, with a size
// annotation rendered at its midpoint.
type Edge struct {
	From, To               string
	X0, Y0, Z0, X1, Y1, Z1 float64
	MidX, MidY, MidZ       float64
	Label                  string // bold size annotation
}

// Scene is everything the renderers need, in deterministic order: nodes
// sorted by name, edges sorted by (from, to).
type Scene struct {
	Project string
	Nodes   []Node
	Edges   []Edge
}

// BuildScene assembles a scene from a graph, its layout, its
// classifications, and a package-size table for edge annotations.
// Packages absent from the size table are annotated [UnknownSize].
func BuildScene(g *depgraph.Graph, pos map[string]r3.Vec, cls map[string]classify.Classification, sizes map[string]string) Scene {
	s := Scene{Project: g.Root()}

	for _, name := range g.Nodes() {
		p := pos[name]
		c := cls[name]
		s.Nodes = append(s.Nodes, Node{
			Name:  name,
			X:     p.X,
			Y:     p.Y,
			Z:     p.Z,
			Color: c.Color,
			Size:  float64(c.SizeTier * markerScale),
			Label: fmt.Sprintf("<b>%s</b>", name),
			Hover: c.Info,
		})
	}

	for _, e := range g.Edges() {
		from, to := pos[e.From], pos[e.To]
		size, ok := sizes[e.To]
		if !ok {
			size = UnknownSize
		}
		s.Edges = append(s.Edges, Edge{
			From: e.From,
			To:   e.To,
			X0:   from.X, Y0: from.Y, Z0: from.Z,
			X1: to.X, Y1: to.Y, Z1: to.Z,
			MidX:  (from.X + to.X) / 2,
			MidY:  (from.Y + to.Y) / 2,
			MidZ:  (from.Z + to.Z) / 2,
			Label: fmt.Sprintf("<b>%s</b>", size),
		})
	}

	return s
}
