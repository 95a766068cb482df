// Package pipeline provides the core drawing pipeline for treedraw.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI and server components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode one or two trees from JSON documents
//  2. Layout: Compute cladogram or tanglegram geometry
//  3. Render: Generate output with a backend (SVG, EPS, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    TreePath: "host.json",
//	    Backend:  "svg",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifact
//
// Run individual stages:
//
//	// Load only
//	trees, hash, err := runner.Load(ctx, opts)
//
//	// Layout with loaded trees
//	l, err := runner.ComputeLayout(ctx, trees, opts)
//
//	// Render an existing layout
//	data, err := runner.Render(ctx, l, hash, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yzhernand/treedraw/pkg/cache"
	apperrors "github.com/yzhernand/treedraw/pkg/errors"
	"github.com/yzhernand/treedraw/pkg/layout"
	"github.com/yzhernand/treedraw/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultBackend is the default output backend.
	DefaultBackend = render.BackendSVG

	// DefaultFontSize is the default label point size.
	DefaultFontSize = 12.0

	// DefaultScale is the default raster scale factor.
	DefaultScale = 2.0

	// DefaultLineWidth is the default stroke width.
	DefaultLineWidth = 1.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the drawing pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. A path and raw data are alternatives; data wins when
	// both are set. A second tree turns the drawing into a tanglegram.
	TreePath  string `json:"tree_path,omitempty"`
	TreeData  []byte `json:"tree_data,omitempty"`
	Tree2Path string `json:"tree2_path,omitempty"`
	Tree2Data []byte `json:"tree2_data,omitempty"`

	// Correspondences are explicit tanglegram leaf pairs by label, tree-1
	// label first. Leaves not covered are still matched by label equality.
	Correspondences [][2]string `json:"correspondences,omitempty"`

	// Refresh bypasses the artifact cache.
	Refresh bool `json:"refresh,omitempty"`

	// Layout options
	Layout   layout.Config `json:"layout"`
	Font     string        `json:"font,omitempty"`
	FontSize float64       `json:"font_size,omitempty"`

	// Render options
	Backend   string  `json:"backend,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	LineWidth float64 `json:"line_width,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger     `json:"-"`
	Measurer layout.Measurer `json:"-"` // overrides font resolution, for tests

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed geometry.
	Layout *layout.Layout

	// TreeHash is the content hash of the input document(s).
	TreeHash string

	// Backend is the backend that produced Artifact.
	Backend render.Backend

	// Artifact is the rendered output.
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LeafCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the cached pipeline stages.
type CacheInfo struct {
	ArtifactHit bool // Whether the rendered artifact came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for tree loading.
func (o *Options) ValidateForLoad() error {
	if o.TreePath == "" && len(o.TreeData) == 0 {
		return fmt.Errorf("tree input is required")
	}
	if len(o.Correspondences) > 0 && !o.Tanglegram() {
		return fmt.Errorf("correspondences require a second tree")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := apperrors.ValidateFontName(o.Font); err != nil {
		return err
	}
	if err := o.Layout.Validate(); err != nil {
		return fmt.Errorf("layout config: %w", err)
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	_, err := render.ParseBackend(o.Backend)
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Backend == "" {
		o.Backend = string(DefaultBackend)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.LineWidth == 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Tanglegram reports whether a second tree input is configured.
func (o *Options) Tanglegram() bool {
	return o.Tree2Path != "" || len(o.Tree2Data) > 0
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Tanglegram: o.Tanglegram(),
		Pairs:      o.Correspondences,
		Config:     o.Layout,
		Font:       o.Font,
		FontSize:   o.FontSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Backend:   o.Backend,
		Scale:     o.Scale,
		LineWidth: o.LineWidth,
	}
}
