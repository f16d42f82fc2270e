package render

import (
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	s := testScene(t, map[string]string{"urllib3": "5.0 MB"})

	out, err := RenderHTML(s, "report-1234")
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	doc := string(out)

	for _, want := range []string{
		"<title>Interactive 3D Dependency Graph: myapp</title>",
		DefaultPlotlyURL,
		`data-report="report-1234"`,
		"Plotly.newPlot",
		colorBackground,
		colorEdge,
		`"aspectmode":"cube"`,
		`"height":750`,
		"<b>myapp</b>",
		"<b>5.0 MB</b>",
		UnknownSize,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestRenderHTMLEmptyScene(t *testing.T) {
	out, err := RenderHTML(Scene{Project: "empty"}, "r")
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(string(out), "Interactive 3D Dependency Graph: empty") {
		t.Error("document missing title for empty scene")
	}
}
