// Package render turns a classified, positioned dependency graph into
// output artifacts.
//
// # Scene
//
// [BuildScene] flattens the graph, layout, and classification results
// into a [Scene]: node markers with coordinates, colors, sizes, and hover
// text, plus edge segments with size annotations at their midpoints. The
// scene is the single input to both renderers, so the interactive and
// static outputs always show the same picture.
//
// # Outputs
//
//   - [RenderHTML] emits a self-contained interactive 3-D document built
//     on plotly.js (loaded from CDN), dark themed.
//   - [RenderPNG] rasterizes an orthographic projection of the same scene
//     to a square PNG preview. Export is best effort; callers treat a
//     failure as partial success.
package render
