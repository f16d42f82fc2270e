package render

import (
	"bytes"
	"image/png"
	"math"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/pydepviz/pydepviz/pkg/errors"
	"github.com/pydepviz/pydepviz/pkg/fonts"
)

// DefaultPNGSize is the edge length in pixels of the exported preview.
const DefaultPNGSize = 2000

// Fixed camera angles for the static preview, chosen to roughly match
// the default interactive viewpoint.
const (
	azimuth   = 35.0 * math.Pi / 180
	elevation = 25.0 * math.Pi / 180
)

// supersample renders at a multiple of the target size and downscales
// so strokes and text stay crisp.
const supersample = 2

var boldTags = strings.NewReplacer("<b>", "", "</b>", "")

// RenderPNG rasterizes the scene into a static PNG preview of the given
// edge length. The scene is projected orthographically from a fixed
// camera and drawn back to front.
func RenderPNG(s Scene, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultPNGSize
	}
	canvas := size * supersample

	labelFace, err := newFace(float64(nodeFontSize) * supersample)
	if err != nil {
		return nil, err
	}
	edgeFace, err := newFace(float64(edgeFontSize) * supersample)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(canvas, canvas)
	dc.SetHexColor(colorBackground)
	dc.Clear()

	proj := newProjector(canvas)

	dc.SetLineWidth(edgeWidth * supersample)
	for _, e := range s.Edges {
		x0, y0, _ := proj.point(e.X0, e.Y0, e.Z0)
		x1, y1, _ := proj.point(e.X1, e.Y1, e.Z1)
		dc.SetHexColor(colorEdge)
		dc.DrawLine(x0, y0, x1, y1)
		dc.Stroke()
	}

	dc.SetFontFace(edgeFace)
	for _, e := range s.Edges {
		mx, my, _ := proj.point(e.MidX, e.MidY, e.MidZ)
		dc.SetHexColor("#FFFFFF")
		dc.DrawStringAnchored(boldTags.Replace(e.Label), mx, my, 0.5, 0.5)
	}

	// Painter's order: farthest nodes first so near markers occlude them.
	type projected struct {
		node  Node
		x, y  float64
		depth float64
	}
	nodes := make([]projected, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		x, y, d := proj.point(n.X, n.Y, n.Z)
		nodes = append(nodes, projected{node: n, x: x, y: y, depth: d})
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].depth < nodes[j].depth })

	for _, p := range nodes {
		r := p.node.Size / 2 * supersample
		dc.SetHexColor(p.node.Color)
		dc.DrawCircle(p.x, p.y, r)
		dc.Fill()
	}

	dc.SetFontFace(labelFace)
	for _, p := range nodes {
		dc.SetHexColor("#FFFFFF")
		dc.DrawStringAnchored(p.node.Name, p.x, p.y, 0.5, 0.5)
	}

	img := imaging.Resize(dc.Image(), size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderExportFailed, err, "encode png preview")
	}
	return buf.Bytes(), nil
}

func newFace(size float64) (font.Face, error) {
	face, err := fonts.Face(size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderExportFailed, err, "load preview font")
	}
	return face, nil
}

// projector maps normalized [-1,1] scene coordinates onto the canvas
// using a fixed-angle orthographic projection.
type projector struct {
	scale  float64
	center float64

	sinAz, cosAz float64
	sinEl, cosEl float64
}

func newProjector(canvas int) projector {
	// sqrt(2) headroom keeps rotated corners inside the margin.
	margin := 0.1 * float64(canvas)
	return projector{
		scale:  (float64(canvas)/2 - margin) / math.Sqrt2,
		center: float64(canvas) / 2,
		sinAz:  math.Sin(azimuth),
		cosAz:  math.Cos(azimuth),
		sinEl:  math.Sin(elevation),
		cosEl:  math.Cos(elevation),
	}
}

// point returns canvas coordinates and a depth value that increases
// toward the camera.
func (p projector) point(x, y, z float64) (float64, float64, float64) {
	// Rotate about the vertical axis, then tilt toward the camera.
	rx := x*p.cosAz + z*p.sinAz
	rz := -x*p.sinAz + z*p.cosAz
	ry := y*p.cosEl - rz*p.sinEl
	depth := y*p.sinEl + rz*p.cosEl

	return p.center + rx*p.scale, p.center - ry*p.scale, depth
}
