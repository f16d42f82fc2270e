package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/pydepviz/pydepviz/pkg/community"
	"github.com/pydepviz/pydepviz/pkg/errors"
	"github.com/pydepviz/pydepviz/pkg/resolve"
)

// threeNodeOpts returns options for a small fully-static pipeline run:
// myapp -> requests -> urllib3.
func threeNodeOpts() Options {
	return Options{
		ProjectName: "myapp",
		PNGSize:     200,
		Resolver: resolve.Static{Data: map[string][]string{
			"myapp":    {"requests"},
			"requests": {"urllib3"},
		}},
		Sizes: resolve.StaticData{SizeTable: map[string]string{
			"urllib3": "5.0 MB",
		}},
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	o := Options{ProjectName: "proj"}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", o.Seed, DefaultSeed)
	}
	if o.Iterations != DefaultIterations {
		t.Errorf("Iterations = %d, want %d", o.Iterations, DefaultIterations)
	}
	if o.PNGSize != DefaultPNGSize {
		t.Errorf("PNGSize = %d, want %d", o.PNGSize, DefaultPNGSize)
	}
	if o.Resolver == nil || o.Detector == nil || o.Sizes == nil || o.Logger == nil {
		t.Error("defaults left nil dependencies")
	}
}

func TestOptionsRequireProjectName(t *testing.T) {
	o := Options{}
	err := o.ValidateAndSetDefaults()
	if err == nil {
		t.Fatal("expected error for empty project name")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil)
	result, err := r.Execute(context.Background(), threeNodeOpts())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Source != resolve.SourceStatic {
		t.Errorf("source = %q, want %q", result.Source, resolve.SourceStatic)
	}
	if result.Stats.NodeCount != 3 {
		t.Errorf("nodes = %d, want 3", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 2 {
		t.Errorf("edges = %d, want 2", result.Stats.EdgeCount)
	}

	html, ok := result.Artifacts[FormatHTML]
	if !ok {
		t.Fatal("missing html artifact")
	}
	doc := string(html)
	if !strings.Contains(doc, "Interactive 3D Dependency Graph: myapp") {
		t.Error("html artifact missing title")
	}
	if !strings.Contains(doc, result.ReportID.String()) {
		t.Error("html artifact missing report id")
	}

	if _, ok := result.Artifacts[FormatPNG]; !ok {
		t.Error("missing png artifact")
	}
}

func TestExecuteDetectsCommunities(t *testing.T) {
	opts := Options{
		ProjectName: "myapp",
		SkipPNG:     true,
		Resolver:    resolve.Static{Data: resolve.DefaultData().Mapping()},
	}

	result, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Degraded {
		t.Fatal("community detection degraded on the bundled dataset")
	}
	if result.Communities < 2 {
		t.Errorf("communities = %d, want at least 2", result.Communities)
	}
	for _, w := range result.Warnings {
		if errors.Is(w, errors.ErrCodeClassificationDegraded) {
			t.Errorf("unexpected degradation warning: %v", w)
		}
	}
}

func TestExecuteSkipPNG(t *testing.T) {
	opts := threeNodeOpts()
	opts.SkipPNG = true

	result, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := result.Artifacts[FormatPNG]; ok {
		t.Error("png artifact present despite SkipPNG")
	}
	if _, ok := result.Artifacts[FormatHTML]; !ok {
		t.Error("missing html artifact")
	}
}

func TestExecuteDegradedClassification(t *testing.T) {
	opts := threeNodeOpts()
	opts.Detector = community.Unavailable{}

	result, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Degraded {
		t.Error("expected degraded classification")
	}
	if result.Communities != 0 {
		t.Errorf("communities = %d, want 0", result.Communities)
	}

	found := false
	for _, w := range result.Warnings {
		if errors.Is(w, errors.ErrCodeClassificationDegraded) {
			found = true
		}
	}
	if !found {
		t.Error("missing degraded-classification warning")
	}
}

func TestExecuteDetectorFailureIsRecoverable(t *testing.T) {
	opts := threeNodeOpts()
	opts.Detector = community.Failing{
		Err: errors.New(errors.ErrCodeClassificationDegraded, "boom"),
	}

	result, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Degraded {
		t.Error("expected degraded classification after detector failure")
	}
	if _, ok := result.Artifacts[FormatHTML]; !ok {
		t.Error("missing html artifact")
	}
}

func TestExecuteFallbackResolutionWarns(t *testing.T) {
	opts := threeNodeOpts()
	opts.Resolver = resolve.Static{
		Data: map[string][]string{"myapp": {"requests"}},
		Err: errors.New(errors.ErrCodeResolutionFailed,
			"pipdeptree unavailable"),
	}

	result, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if errors.Is(w, errors.ErrCodeResolutionFailed) {
			found = true
		}
	}
	if !found {
		t.Error("missing resolution warning")
	}
	if _, ok := result.Artifacts[FormatHTML]; !ok {
		t.Error("missing html artifact")
	}
}

func TestExecuteEmptyProjectFails(t *testing.T) {
	opts := threeNodeOpts()
	opts.ProjectName = ""

	if _, err := NewRunner(nil).Execute(context.Background(), opts); err == nil {
		t.Fatal("expected error for empty project name")
	}
}

func TestExecuteDeterministicReportContent(t *testing.T) {
	// The report id differs per run; everything else must be identical.
	run := func() string {
		result, err := NewRunner(nil).Execute(context.Background(), threeNodeOpts())
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		doc := string(result.Artifacts[FormatHTML])
		return strings.ReplaceAll(doc, result.ReportID.String(), "ID")
	}

	if a, b := run(), run(); a != b {
		t.Error("html artifact differs between identical runs")
	}
}
