package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pydepviz/pydepviz/pkg/classify"
	"github.com/pydepviz/pydepviz/pkg/depgraph"
	"github.com/pydepviz/pydepviz/pkg/errors"
	"github.com/pydepviz/pydepviz/pkg/layout"
	"github.com/pydepviz/pydepviz/pkg/observability"
	"github.com/pydepviz/pydepviz/pkg/render"
)

// Runner executes the visualization pipeline.
//
// The Runner is stateless except for its logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete resolve → build → layout → classify → render
// pipeline. Recoverable problems (fallback dataset, degraded coloring,
// failed PNG export) are collected in Result.Warnings; the HTML artifact
// is always present when the returned error is nil.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		ReportID:  uuid.New(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Resolve
	resolveStart := time.Now()
	observability.Pipeline().OnResolveStart(ctx, opts.ProjectName)
	outcome := opts.Resolver.Resolve(ctx)
	result.Source = outcome.Source
	result.Stats.ResolveTime = time.Since(resolveStart)
	observability.Pipeline().OnResolveComplete(ctx, opts.ProjectName,
		len(outcome.Mapping), result.Stats.ResolveTime, outcome.Err)
	if outcome.Err != nil {
		result.Warnings = append(result.Warnings, outcome.Err)
	}

	opts.Logger.Info("resolved dependencies",
		"source", outcome.Source,
		"packages", len(outcome.Mapping),
		"duration", result.Stats.ResolveTime)

	// Stage 2: Build
	buildStart := time.Now()
	g, direct, err := depgraph.Build(outcome.Mapping, opts.ProjectName)
	if err != nil {
		return nil, err
	}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Stats.SelfLoopsDropped = g.SelfLoopsDropped()

	opts.Logger.Info("built dependency graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"direct", len(direct),
		"duration", result.Stats.BuildTime)
	if n := g.SelfLoopsDropped(); n > 0 {
		opts.Logger.Warn("dropped self-referential dependencies", "count", n)
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, g.NodeCount())
	engine := layout.New(opts.Seed)
	engine.Iterations = opts.Iterations
	positions := engine.Layout(g)
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, g.NodeCount(), result.Stats.LayoutTime)

	opts.Logger.Info("computed 3d layout",
		"seed", opts.Seed,
		"iterations", opts.Iterations,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Classify
	classifyStart := time.Now()
	partition, detectErr := opts.Detector.Detect(g)
	if detectErr != nil {
		result.Warnings = append(result.Warnings, detectErr)
		opts.Logger.Warn("community detection failed, using depth coloring",
			"err", detectErr)
		partition = nil
	}
	classifier := classify.New(opts.ProjectName, direct, partition)
	classifications := classifier.ClassifyAll(g.Nodes())
	result.Degraded = classifier.Degraded()
	result.Communities = partition.Count()
	result.Stats.ClassifyTime = time.Since(classifyStart)
	if result.Degraded {
		result.Warnings = append(result.Warnings,
			errors.New(errors.ErrCodeClassificationDegraded,
				"community detection unavailable, colored by depth"))
	}

	opts.Logger.Info("classified packages",
		"communities", result.Communities,
		"degraded", result.Degraded,
		"duration", result.Stats.ClassifyTime)

	// Stage 5: Render
	renderStart := time.Now()
	formats := []string{FormatHTML}
	if !opts.SkipPNG {
		formats = append(formats, FormatPNG)
	}
	observability.Pipeline().OnRenderStart(ctx, formats)
	scene := render.BuildScene(g, positions, classifications, opts.Sizes.Sizes())

	html, err := render.RenderHTML(scene, result.ReportID.String())
	if err != nil {
		result.Stats.RenderTime = time.Since(renderStart)
		observability.Pipeline().OnRenderComplete(ctx, formats, result.Stats.RenderTime, err)
		return nil, err
	}
	result.Artifacts[FormatHTML] = html

	var pngErr error
	if !opts.SkipPNG {
		var png []byte
		png, pngErr = render.RenderPNG(scene, opts.PNGSize)
		if pngErr != nil {
			result.Warnings = append(result.Warnings, pngErr)
			opts.Logger.Warn("png preview export failed", "err", pngErr)
		} else {
			result.Artifacts[FormatPNG] = png
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, formats, result.Stats.RenderTime, pngErr)

	opts.Logger.Info("rendered outputs",
		"artifacts", len(result.Artifacts),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
