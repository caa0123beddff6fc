// Package render turns meshes into images.
//
// Two renderers are provided:
//
//   - [Plot] draws the triangulation itself, each cell filled with a color
//     from its radius-ratio quality on a fixed [0, 1] scale, as PNG or SVG.
//     This is the renderer behind per-step snapshots: a sequence of step
//     images makes the smoothing visibly converge.
//   - [ToDOT] plus [RenderSVG] draw the mesh's connectivity as a graph via
//     Graphviz, with vertex positions pinned to the mesh coordinates.
//     Useful for inspecting what a Delaunay repair pass changed.
//
// Surface meshes are drawn in orthographic projection onto the XY plane.
package render
