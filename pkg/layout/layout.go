package layout

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pydepviz/pydepviz/pkg/depgraph"
)

// Defaults for the force simulation.
const (
	// DefaultSeed matches the seed used by the reference visualization so
	// repeated runs over the same graph produce the same scene.
	DefaultSeed = 42

	// DefaultIterations is the number of simulation steps. The layout has
	// visibly converged well before this for graphs of a few hundred nodes.
	DefaultIterations = 150
)

// Engine computes seeded, deterministic 3-D force-directed layouts.
type Engine struct {
	Seed       uint64
	Iterations int
}

// New returns an engine with the given seed and default iteration count.
func New(seed uint64) *Engine {
	return &Engine{Seed: seed, Iterations: DefaultIterations}
}

// Layout places every node of g in 3-D space. The result is keyed by node
// name and is identical across runs for a fixed seed and graph structure.
func (e *Engine) Layout(g *depgraph.Graph) map[string]r3.Vec {
	names := g.Nodes()
	n := len(names)
	out := make(map[string]r3.Vec, n)
	if n == 0 {
		return out
	}
	if n == 1 {
		out[names[0]] = r3.Vec{}
		return out
	}

	iters := e.Iterations
	if iters <= 0 {
		iters = DefaultIterations
	}

	rng := rand.New(rand.NewSource(e.Seed))
	pos := make([]r3.Vec, n)
	for i := range pos {
		pos[i] = r3.Vec{
			X: rng.Float64()*2 - 1,
			Y: rng.Float64()*2 - 1,
			Z: rng.Float64()*2 - 1,
		}
	}

	index := make(map[string]int, n)
	for i, name := range names {
		index[name] = i
	}

	type pair struct{ a, b int }
	var springs []pair
	for _, edge := range g.Edges() {
		a, b := index[edge.From], index[edge.To]
		if a == b {
			continue // self loops exert no force
		}
		springs = append(springs, pair{a, b})
	}

	// Ideal pairwise distance for a unit-ish cube of volume 8.
	k := math.Cbrt(8.0 / float64(n))
	temp := 0.2
	cool := temp / float64(iters+1)
	disp := make([]r3.Vec, n)

	for it := 0; it < iters; it++ {
		for i := range disp {
			disp[i] = r3.Vec{}
		}

		// Repulsion between every node pair.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				delta := r3.Sub(pos[i], pos[j])
				d := math.Max(r3.Norm(delta), 1e-9)
				f := k * k / (d * d)
				push := r3.Scale(f, delta)
				disp[i] = r3.Add(disp[i], push)
				disp[j] = r3.Sub(disp[j], push)
			}
		}

		// Attraction along edges.
		for _, s := range springs {
			delta := r3.Sub(pos[s.a], pos[s.b])
			d := math.Max(r3.Norm(delta), 1e-9)
			f := d / k
			pull := r3.Scale(f, delta)
			disp[s.a] = r3.Sub(disp[s.a], pull)
			disp[s.b] = r3.Add(disp[s.b], pull)
		}

		// Apply displacement, capped by the current temperature.
		for i := range pos {
			d := r3.Norm(disp[i])
			if d < 1e-12 {
				continue
			}
			step := math.Min(d, temp)
			pos[i] = r3.Add(pos[i], r3.Scale(step/d, disp[i]))
		}
		temp -= cool
	}

	rescale(pos)
	for i, name := range names {
		out[name] = pos[i]
	}
	return out
}

// rescale centers positions on the origin and scales the largest absolute
// coordinate to 1, mirroring how spring layouts are conventionally
// normalized before rendering.
func rescale(pos []r3.Vec) {
	var center r3.Vec
	for _, p := range pos {
		center = r3.Add(center, p)
	}
	center = r3.Scale(1/float64(len(pos)), center)

	maxAbs := 0.0
	for i := range pos {
		pos[i] = r3.Sub(pos[i], center)
		maxAbs = math.Max(maxAbs, math.Abs(pos[i].X))
		maxAbs = math.Max(maxAbs, math.Abs(pos[i].Y))
		maxAbs = math.Max(maxAbs, math.Abs(pos[i].Z))
	}
	if maxAbs == 0 {
		return
	}
	for i := range pos {
		pos[i] = r3.Scale(1/maxAbs, pos[i])
	}
}
