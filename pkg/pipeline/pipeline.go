// Package pipeline provides the core visualization pipeline for pydepviz.
//
// This package implements the complete resolve → build → layout → classify →
// render pipeline used by the CLI. Centralizing the flow here keeps the
// stages consistent and makes each stage independently testable.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Resolve: Obtain the package dependency mapping (pipdeptree or fallback)
//  2. Build: Construct the directed dependency graph rooted at the project
//  3. Layout: Compute deterministic 3-D positions for every package
//  4. Classify: Assign colors, hover text and marker sizes to every package
//  5. Render: Produce the interactive HTML document and the PNG preview
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{ProjectName: "myapp"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := result.Artifacts[pipeline.FormatHTML]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pydepviz/pydepviz/pkg/community"
	"github.com/pydepviz/pydepviz/pkg/errors"
	"github.com/pydepviz/pydepviz/pkg/layout"
	"github.com/pydepviz/pydepviz/pkg/render"
	"github.com/pydepviz/pydepviz/pkg/resolve"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility. Layout
	// and community detection both derive their randomness from it.
	DefaultSeed = layout.DefaultSeed

	// DefaultIterations is the default force-simulation iteration count.
	DefaultIterations = layout.DefaultIterations

	// DefaultPNGSize is the default edge length of the PNG preview.
	DefaultPNGSize = render.DefaultPNGSize
)

// Format constants for output artifacts.
const (
	FormatHTML = "html"
	FormatPNG  = "png"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
type Options struct {
	// ProjectName is the display name of the project and the name of the
	// graph's root node. Required.
	ProjectName string

	// Seed drives layout initialization and community detection.
	// Zero selects DefaultSeed.
	Seed uint64

	// Iterations is the force-simulation iteration count.
	// Zero selects DefaultIterations.
	Iterations int

	// PNGSize is the edge length of the PNG preview in pixels.
	// Zero selects DefaultPNGSize.
	PNGSize int

	// SkipPNG disables the PNG preview stage entirely.
	SkipPNG bool

	// Resolver obtains the dependency mapping. Nil selects a pipdeptree
	// resolver backed by the bundled fallback dataset.
	Resolver resolve.Resolver

	// Detector performs community detection. Nil selects seeded Louvain.
	Detector community.Detector

	// Sizes supplies the install-size table for edge annotations. Nil
	// selects the bundled dataset.
	Sizes resolve.Provider

	// Logger receives stage progress. Nil discards output.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ProjectName == "" {
		return errors.New(errors.ErrCodeInvalidInput, "project name is required")
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.PNGSize == 0 {
		o.PNGSize = DefaultPNGSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Sizes == nil {
		o.Sizes = resolve.DefaultData()
	}
	if o.Resolver == nil {
		o.Resolver = resolve.NewPipdeptree(resolve.DefaultData(), o.Logger)
	}
	if o.Detector == nil {
		o.Detector = community.NewLouvain(o.Seed)
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// ReportID uniquely identifies this run. It is stamped into the HTML
	// artifact.
	ReportID uuid.UUID

	// Source records where the dependency mapping came from.
	Source resolve.Source

	// Artifacts contains rendered outputs keyed by format. The PNG entry
	// is absent when the preview was skipped or its export failed.
	Artifacts map[string][]byte

	// Communities is the number of detected communities, zero when
	// classification ran in degraded mode.
	Communities int

	// Degraded reports that community detection was unavailable and the
	// depth-based fallback coloring was used.
	Degraded bool

	// Warnings collects recoverable errors: fallback resolution, degraded
	// classification and failed PNG export.
	Warnings []error

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount        int
	EdgeCount        int
	SelfLoopsDropped int
	ResolveTime      time.Duration
	BuildTime        time.Duration
	LayoutTime       time.Duration
	ClassifyTime     time.Duration
	RenderTime       time.Duration
}
