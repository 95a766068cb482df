// Package pkg provides the core libraries for treedraw phylogenetic tree
// drawing.
//
// # Overview
//
// Treedraw lays out phylogenetic trees as left-to-right cladograms, or pairs
// of trees as mirrored tanglegrams with connector lines between
// corresponding leaves. The pkg directory is organized into four main areas:
//
//  1. Domain logic (tree model, layout geometry, rendering backends)
//  2. Infrastructure (caching, drawing storage, fonts)
//  3. Orchestration (the load → layout → render pipeline)
//  4. Cross-cutting concerns (errors, observability hooks, build info)
//
// # Architecture
//
// The typical data flow through treedraw:
//
//	Tree JSON document(s)
//	         ↓
//	    [treeio] package (decode into the tree model)
//	         ↓
//	    [tree] package (rooted tree structure, traversal)
//	         ↓
//	    [layout] package (cladogram/tanglegram geometry)
//	         ↓
//	    [render] package (SVG, EPS, PNG, DOT, JSON backends)
//
// # Quick Start
//
// Lay out a tree and render it to SVG:
//
//	import (
//	    "github.com/yzhernand/treedraw/pkg/fonts"
//	    "github.com/yzhernand/treedraw/pkg/layout"
//	    "github.com/yzhernand/treedraw/pkg/render"
//	    "github.com/yzhernand/treedraw/pkg/treeio"
//	)
//
//	// 1. Load the tree
//	t, _ := treeio.ImportTree("tree.json")
//
//	// 2. Compute geometry
//	m, _ := fonts.Resolve("", 12)
//	l, _ := layout.Cladogram(t, m, layout.DefaultConfig())
//
//	// 3. Render
//	svg, _ := render.Render(l, render.BackendSVG)
//
// Or run the whole pipeline with caching through a [pipeline.Runner]:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    TreePath: "tree.json",
//	    Backend:  "svg",
//	})
//
// # Main Packages
//
// ## Domain Logic
//
// [tree] - The rooted tree model: labeled nodes with optional branch lengths
// and colors, traversal helpers, and structural validation.
//
// [treeio] - JSON import and export for tree documents, tolerant of branch
// lengths encoded as numbers or strings.
//
// [layout] - The geometry engine. Computes node coordinates for a single
// cladogram or a two-tree tanglegram, in proportional (branch-length scaled)
// or compact (fixed step) mode, plus tanglegram connector lines.
//
// [render] - Output backends over a shared drawing scene: SVG and EPS
// vector output, PNG raster output, Graphviz DOT topology export, and the
// raw layout as JSON.
//
// [fonts] - Label width measurement. Resolves system TrueType fonts and
// falls back to an approximate measurer when none is available.
//
// ## Infrastructure
//
// [cache] - Content-addressed artifact caching with file, Redis, and no-op
// backends, plus the cache key derivation shared by CLI and server.
//
// [store] - Saved drawing storage with memory and MongoDB backends, used by
// the HTTP API to re-render named drawings.
//
// ## Orchestration
//
// [pipeline] - The complete load → layout → render pipeline used by both
// the CLI and the server, with per-stage options and artifact caching.
//
// ## Cross-cutting
//
// [errors] - Structured errors with machine-readable codes shared by the
// CLI and the HTTP API.
//
// [observability] - Hook interfaces for metrics and tracing without binding
// the libraries to a specific backend.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//
// [tree]: https://pkg.go.dev/github.com/yzhernand/treedraw/pkg/tree
// [treeio]: https://pkg.go.dev/github.com/yzhernand/treedraw/pkg/treeio
// [layout]: https://pkg.go.dev/github.com/yzhernand/treedraw/pkg/layout
// [render]: https://pkg.go.dev/github.com/yzhernand/treedraw/pkg/render
// [fonts]: https://pkg.go.dev/github.com/yzhernand/treedraw/pkg/fonts
// [cache]: https://pkg.go.dev/github.com/yzhernand/treedraw/pkg/cache
// [store]: https://pkg.go.dev/github.com/yzhernand/treedraw/pkg/store
// [pipeline]: https://pkg.go.dev/github.com/yzhernand/treedraw/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/yzhernand/treedraw/pkg/errors
// [observability]: https://pkg.go.dev/github.com/yzhernand/treedraw/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/yzhernand/treedraw/pkg/buildinfo
package pkg
