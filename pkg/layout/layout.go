// Package layout computes 2-D coordinates for one or two rooted trees.
//
// The engine is a pure function of (tree structure, branch lengths, label
// widths, configuration): [Cladogram] lays out a single tree, [Tanglegram]
// lays out two trees side by side, mirrored, with connector geometry between
// matching leaves. No rendering or I/O happens here; renderers consume the
// returned [Layout] and draw it with whatever backend they like.
//
// Coordinates use the PostScript convention: the origin is the bottom-left
// corner and y grows upward. Raster backends flip y against [Layout.Height].
//
// # Modes
//
// In compact mode every edge is drawn as one fixed horizontal step (XStep)
// and leaves end ragged-right. In proportional mode the horizontal extent of
// an edge is its branch length times a scale factor chosen so the drawing
// approaches the configured aspect ratio.
//
// # Determinism
//
// Calling the engine twice with the same inputs yields equal results; the
// result is owned by the caller and never mutated by the engine afterwards.
// The input trees are never written to - resolved leaf correspondences are
// returned on the Layout, not recorded on the nodes.
package layout

import (
	"errors"
	"fmt"

	"github.com/yzhernand/treedraw/pkg/tree"
)

var (
	// ErrNilTree is returned when a layout is requested for a nil tree.
	ErrNilTree = errors.New("tree must not be nil")

	// ErrNilMeasurer is returned when no label measurer is supplied. The
	// engine cannot substitute a zero width: it would misplace every
	// connector and the canvas edges.
	ErrNilMeasurer = errors.New("label measurer must not be nil")

	// ErrInvalidConfig is returned for configurations the engine cannot lay
	// out, such as negative margins or a non-positive leaf spacing.
	ErrInvalidConfig = errors.New("invalid layout configuration")
)

// Measurer reports the rendered width of a label string, in the same units
// as margins and steps. Implementations typically wrap real font metrics;
// see pkg/fonts. The engine calls Width once per leaf.
type Measurer interface {
	Width(label string) float64
}

// Point is a position in layout space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is a horizontal line segment at a fixed y, used for root stubs.
type Segment struct {
	X1, X2 float64
	Y      float64
}

// Connector is the bent polyline joining a tree-1 leaf to a tree-2 leaf in a
// tanglegram. The four x positions are, left to right: just past the tree-1
// leaf's label, the right edge of the tree-1 label column, the left edge of
// the tree-2 label column, and just before the tree-2 leaf's label. The first
// two points share Y1 (the tree-1 leaf's y), the last two share Y2, giving a
// horizontal-diagonal-horizontal shape. Renderers draw connectors in a fixed
// mid-gray regardless of per-node colors.
type Connector struct {
	From *tree.Node // tree-1 leaf
	To   *tree.Node // tree-2 leaf
	X    [4]float64
	Y1   float64
	Y2   float64
}

// Correspondence names a leaf pair to connect in a tanglegram. Explicit
// correspondences are honored as-is; leaves of tree 1 without one are matched
// to the first tree-2 leaf with an identical label.
type Correspondence struct {
	From *tree.Node
	To   *tree.Node
}

// TreeLayout holds the coordinate table and derived values for one tree.
// It is built once per layout invocation and not mutated afterwards.
type TreeLayout struct {
	Tree *tree.Tree

	// Coords maps every node to its position.
	Coords map[*tree.Node]Point

	// YStep is the effective vertical distance between adjacent leaves.
	YStep float64

	// Scale is the branch-length scale factor (proportional mode only;
	// zero in compact mode).
	Scale float64

	// LabelWidth is the widest leaf label of this tree.
	LabelWidth float64

	// LeafLabelWidths holds the measured width of each leaf's label.
	LeafLabelWidths map[*tree.Node]float64

	// Colors holds the resolved per-node color table when colors are
	// enabled; nil otherwise. Nodes without a color resolve to black.
	Colors map[*tree.Node]tree.Color

	// Stub is the root stub segment, drawn outward from the root by one
	// XStep at the midpoint of the root's immediate children.
	Stub Segment

	// Mirrored is true for the second tree of a tanglegram: x grows
	// leftward from the root and leaf labels are right-flush.
	Mirrored bool
}

// Layout is the result of a layout invocation: one or two tree layouts plus
// overall canvas dimensions and, for tanglegrams, the connector list.
type Layout struct {
	Config Config
	Width  float64
	Height float64
	Trees  []*TreeLayout
	Conns  []Connector
}

// IsTanglegram reports whether the layout holds two trees.
func (l *Layout) IsTanglegram() bool { return len(l.Trees) == 2 }

// validateInputs checks the collaborators every layout entry point needs.
func validateInputs(m Measurer, cfg Config, trees ...*tree.Tree) error {
	for _, t := range trees {
		if t == nil {
			return ErrNilTree
		}
	}
	if m == nil {
		return ErrNilMeasurer
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
