package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/pydepviz/pydepviz/pkg/errors"
)

// Theme constants shared by both renderers.
const (
	colorBackground = "#1A202C"
	colorEdge       = "#8A2BE2"
	edgeWidth       = 0.8
	plotHeight      = 750
	nodeFontSize    = 15
	edgeFontSize    = 10
)

// DefaultPlotlyURL is the CDN location of the plotly.js bundle embedded
// in the document's script tag. The document is otherwise self-contained.
const DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.32.0.min.js"

// scatter3d mirrors the subset of the plotly scatter3d trace schema the
// scene needs. Coordinate slices use `any` so edge traces can hold null
// separators between segments.
type scatter3d struct {
	Type         string     `json:"type"`
	X            []any      `json:"x"`
	Y            []any      `json:"y"`
	Z            []any      `json:"z"`
	Mode         string     `json:"mode"`
	HoverInfo    string     `json:"hoverinfo"`
	Text         []string   `json:"text,omitempty"`
	TextPosition string     `json:"textposition,omitempty"`
	Line         *lineStyle `json:"line,omitempty"`
	Marker       *marker    `json:"marker,omitempty"`
	TextFont     *textFont  `json:"textfont,omitempty"`
	HoverText    []string   `json:"hovertext,omitempty"`
}

type lineStyle struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

type marker struct {
	Symbol string    `json:"symbol"`
	Size   []float64 `json:"size"`
	Color  []string  `json:"color"`
	Line   lineStyle `json:"line"`
}

type textFont struct {
	Color string  `json:"color"`
	Size  float64 `json:"size"`
}

type axis struct {
	ShowBackground  bool   `json:"showbackground"`
	ShowLine        bool   `json:"showline"`
	ZeroLine        bool   `json:"zeroline"`
	ShowGrid        bool   `json:"showgrid"`
	Title           string `json:"title"`
	BackgroundColor string `json:"backgroundcolor"`
}

type figureLayout struct {
	Title      map[string]any `json:"title"`
	ShowLegend bool           `json:"showlegend"`
	HoverMode  string         `json:"hovermode"`
	Margin     map[string]int `json:"margin"`
	PaperBG    string         `json:"paper_bgcolor"`
	PlotBG     string         `json:"plot_bgcolor"`
	Font       textFont       `json:"font"`
	Scene      map[string]any `json:"scene"`
	Height     int            `json:"height"`
}

var docTemplate = template.Must(template.New("graph").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<title>Interactive 3D Dependency Graph: {{.Project}}</title>
<script src="{{.PlotlyURL}}"></script>
</head>
<body style="margin:0;background-color:{{.Background}};">
<div id="graph" data-report="{{.ReportID}}"></div>
<script>
Plotly.newPlot("graph", {{.Data}}, {{.Layout}}, {responsive: true});
</script>
</body>
</html>
`))

type docParams struct {
	Project    string
	ReportID   string
	PlotlyURL  string
	Background string
	Data       template.JS
	Layout     template.JS
}

// RenderHTML produces the interactive 3-D document for the scene. The
// reportID is stamped into the document so a rendered artifact can be
// matched back to the run that produced it.
func RenderHTML(s Scene, reportID string) ([]byte, error) {
	data, err := marshalJS(figureData(s))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode scene traces")
	}
	layout, err := marshalJS(layoutFor(s.Project))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode figure layout")
	}

	var buf bytes.Buffer
	params := docParams{
		Project:    s.Project,
		ReportID:   reportID,
		PlotlyURL:  DefaultPlotlyURL,
		Background: colorBackground,
		Data:       template.JS(data),
		Layout:     template.JS(layout),
	}
	if err := docTemplate.Execute(&buf, params); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "execute document template")
	}
	return buf.Bytes(), nil
}

// marshalJS encodes v without HTML escaping, so markup inside plotly
// text fields survives into the document verbatim.
func marshalJS(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// figureData builds the three plotly traces: edge lines, node markers
// with persistent labels, and edge size annotations.
func figureData(s Scene) []scatter3d {
	edges := scatter3d{
		Type:      "scatter3d",
		Mode:      "lines",
		HoverInfo: "none",
		Line:      &lineStyle{Width: edgeWidth, Color: colorEdge},
	}
	labels := scatter3d{
		Type:      "scatter3d",
		Mode:      "text",
		HoverInfo: "none",
		TextFont:  &textFont{Color: "white", Size: edgeFontSize},
	}
	for _, e := range s.Edges {
		edges.X = append(edges.X, e.X0, e.X1, nil)
		edges.Y = append(edges.Y, e.Y0, e.Y1, nil)
		edges.Z = append(edges.Z, e.Z0, e.Z1, nil)

		labels.X = append(labels.X, e.MidX)
		labels.Y = append(labels.Y, e.MidY)
		labels.Z = append(labels.Z, e.MidZ)
		labels.Text = append(labels.Text, e.Label)
	}

	nodes := scatter3d{
		Type:         "scatter3d",
		Mode:         "markers+text",
		HoverInfo:    "text",
		TextPosition: "middle center",
		Marker: &marker{
			Symbol: "circle",
			Line:   lineStyle{Width: 0.5, Color: "rgba(0,0,0,0)"},
		},
		TextFont: &textFont{Color: "white", Size: nodeFontSize},
	}
	for _, n := range s.Nodes {
		nodes.X = append(nodes.X, n.X)
		nodes.Y = append(nodes.Y, n.Y)
		nodes.Z = append(nodes.Z, n.Z)
		nodes.Text = append(nodes.Text, n.Label)
		nodes.Marker.Size = append(nodes.Marker.Size, n.Size)
		nodes.Marker.Color = append(nodes.Marker.Color, n.Color)
		nodes.HoverText = append(nodes.HoverText, n.Hover)
	}

	return []scatter3d{edges, nodes, labels}
}

func layoutFor(project string) figureLayout {
	hiddenAxis := axis{BackgroundColor: colorBackground}
	return figureLayout{
		Title: map[string]any{
			"text": fmt.Sprintf(
				`<span style="color:white; font-size:18px;"><b>Interactive 3D Dependency Graph: %s</b></span>`,
				project),
		},
		ShowLegend: false,
		HoverMode:  "closest",
		Margin:     map[string]int{"b": 20, "l": 5, "r": 5, "t": 40},
		PaperBG:    colorBackground,
		PlotBG:     colorBackground,
		Font:       textFont{Color: "white", Size: nodeFontSize},
		Scene: map[string]any{
			"xaxis":      hiddenAxis,
			"yaxis":      hiddenAxis,
			"zaxis":      hiddenAxis,
			"aspectmode": "cube",
		},
		Height: plotHeight,
	}
}
