// Package render turns computed layouts into output artifacts.
//
// # Overview
//
// Every backend consumes a [layout.Layout] and produces bytes:
//
//   - SVG and EPS emit vector drawings
//   - PNG rasterizes via fogleman/gg
//   - DOT emits the tree topology for Graphviz
//   - JSON exports the raw geometry for other tooling
//
// Backends never recompute geometry. The shared scene builder flattens a
// layout into primitive lines, connectors, and labels, which each backend
// serializes in its own coordinate convention. The scene keeps the
// PostScript orientation (y grows upward); SVG and PNG flip y against the
// canvas height when serializing.
//
// # Usage
//
//	backend, err := render.ParseBackend("svg")
//	data, err := render.Render(l, backend, render.WithFontFamily("DejaVuSans", 12))
package render
