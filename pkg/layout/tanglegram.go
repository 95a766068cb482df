package layout

import (
	"github.com/yzhernand/treedraw/pkg/tree"
)

// Option configures a tanglegram invocation.
type Option func(*tanglegramOpts)

type tanglegramOpts struct {
	explicit []Correspondence
}

// WithCorrespondences supplies explicit leaf pairs to connect. Explicit
// pairs are never overwritten by label matching; tree-1 leaves not covered
// by an explicit pair still get the default label-equality match.
func WithCorrespondences(pairs []Correspondence) Option {
	return func(o *tanglegramOpts) { o.explicit = append(o.explicit, pairs...) }
}

// Tanglegram lays out two trees side by side. The first tree grows rightward
// from the left margin exactly as in [Cladogram]; the second is mirrored,
// growing leftward from a root on the right edge, with its leaf labels
// right-flush against their branch termini. Both trees share the vertical
// spacing derived from the larger leaf count, so matched leaf rows align.
//
// Connectors join corresponding leaves across the central column. Resolved
// correspondences are returned on the layout; the input trees are not
// annotated. Leaves without a match simply have no connector.
func Tanglegram(t1, t2 *tree.Tree, m Measurer, cfg Config, opts ...Option) (*Layout, error) {
	if err := validateInputs(m, cfg, t1, t2); err != nil {
		return nil, err
	}

	var o tanglegramOpts
	for _, opt := range opts {
		opt(&o)
	}

	span := float64(max(t1.LeafCount(), t2.LeafCount())-1) * cfg.LeafSpacing

	left := layoutTree(t1, m, cfg, span, false, 0)

	// The label column of tree 1 ends at inner1; the mirrored root must
	// sit far enough right that even the deepest tree-2 leaf terminus
	// clears the connector column and the tree-2 label column.
	inner1 := labelColumnRight(left, cfg)

	right := layoutTree(t2, m, cfg, span, true, 0)
	x2base := inner1 + cfg.Column + right.LabelWidth + cfg.TipGap
	rootX := x2base + depthSpan(right, cfg)

	// Re-run the x pass from the final root position. Y coordinates and
	// label widths are independent of the root offset and stay as placed.
	if cfg.Compact {
		compactX(right, cfg, rootX)
	} else {
		proportionalX(right, cfg, rootX)
	}
	right.Stub = rootStub(right, cfg)

	l := &Layout{
		Config: cfg,
		Width:  rootX + cfg.XStep + cfg.Right,
		Height: cfg.Top + cfg.Bottom + span,
		Trees:  []*TreeLayout{left, right},
	}
	l.Conns = connect(l, resolve(t1, t2, o.explicit), inner1, cfg)
	return l, nil
}

// labelColumnRight returns the x of the right edge of a left tree's label
// column: its rightmost branch terminus plus the tip gap plus the widest
// leaf label.
func labelColumnRight(tl *TreeLayout, cfg Config) float64 {
	return treeMaxX(tl) + cfg.TipGap + tl.LabelWidth
}

// depthSpan is the horizontal extent a tree's edges occupy: height in xstep
// units (compact) or in scaled branch-length units (proportional).
func depthSpan(tl *TreeLayout, cfg Config) float64 {
	if cfg.Compact {
		return float64(tl.Tree.Height()) * cfg.XStep
	}
	return float64(tl.Tree.Height()) * scaleFactor(tl.Tree, cfg)
}

// resolve builds the full correspondence list: explicit pairs first, then a
// default match for every uncovered tree-1 leaf - the first tree-2 leaf in
// traversal order whose label is exactly equal. At most one default pair is
// generated per tree-1 leaf; unmatched leaves contribute nothing.
func resolve(t1, t2 *tree.Tree, explicit []Correspondence) []Correspondence {
	covered := make(map[*tree.Node]bool, len(explicit))
	for _, c := range explicit {
		covered[c.From] = true
	}

	pairs := make([]Correspondence, 0, len(explicit)+t1.LeafCount())
	pairs = append(pairs, explicit...)

	for _, leaf := range t1.Leaves() {
		if covered[leaf] || leaf.Label == "" {
			continue
		}
		for _, cand := range t2.Leaves() {
			if cand.Label == leaf.Label {
				pairs = append(pairs, Correspondence{From: leaf, To: cand})
				break
			}
		}
	}
	return pairs
}

// connect computes the four-point connector geometry for each resolved pair.
func connect(l *Layout, pairs []Correspondence, inner1 float64, cfg Config) []Connector {
	left, right := l.Trees[0], l.Trees[1]
	conns := make([]Connector, 0, len(pairs))
	for _, pair := range pairs {
		p1, ok1 := left.Coords[pair.From]
		p2, ok2 := right.Coords[pair.To]
		if !ok1 || !ok2 {
			continue
		}
		conns = append(conns, Connector{
			From: pair.From,
			To:   pair.To,
			X: [4]float64{
				p1.X + cfg.TipGap + left.LeafLabelWidths[pair.From],
				inner1,
				inner1 + cfg.Column,
				p2.X - cfg.TipGap - right.LeafLabelWidths[pair.To],
			},
			Y1: p1.Y,
			Y2: p2.Y,
		})
	}
	return conns
}
