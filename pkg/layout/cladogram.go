package layout

import (
	"github.com/yzhernand/treedraw/pkg/tree"
)

// Cladogram computes the layout for a single tree.
//
// Leaves are evenly spaced vertically, assigned in reverse traversal order
// from the bottom margin so the first leaf in traversal order ends up at the
// top. Internal nodes sit at the midpoint of their direct children's minimum
// and maximum y, computed bottom-up. X grows rightward from the root in
// fixed steps (compact) or branch-length-scaled offsets (proportional).
//
// The returned layout is owned by the caller; invoking Cladogram again with
// the same inputs produces an equal, independent result.
func Cladogram(t *tree.Tree, m Measurer, cfg Config) (*Layout, error) {
	if err := validateInputs(m, cfg, t); err != nil {
		return nil, err
	}

	span := float64(t.LeafCount()-1) * cfg.LeafSpacing
	tl := layoutTree(t, m, cfg, span, false, 0)

	width := treeMaxX(tl) + cfg.TipGap + tl.LabelWidth + cfg.Right
	if !cfg.Compact {
		width = float64(t.Height())*tl.Scale + cfg.Left + cfg.XStep + cfg.TipGap + tl.LabelWidth + cfg.Right
	}

	return &Layout{
		Config: cfg,
		Width:  width,
		Height: cfg.Top + cfg.Bottom + span,
		Trees:  []*TreeLayout{tl},
	}, nil
}

// layoutTree runs the single-tree passes shared by cladograms and both
// halves of a tanglegram. span is the vertical extent between the first and
// last leaf (from the larger tree in a tanglegram). For a mirrored tree,
// rootX positions the root and x offsets are subtracted instead of added;
// for a normal tree rootX is ignored and the root sits at left + xstep.
func layoutTree(t *tree.Tree, m Measurer, cfg Config, span float64, mirrored bool, rootX float64) *TreeLayout {
	tl := &TreeLayout{
		Tree:            t,
		Coords:          make(map[*tree.Node]Point, t.NodeCount()),
		LeafLabelWidths: make(map[*tree.Node]float64, t.LeafCount()),
		Mirrored:        mirrored,
	}

	// Label metrics: one Measurer call per leaf, max retained per tree.
	for _, leaf := range t.Leaves() {
		w := m.Width(leaf.Label)
		tl.LeafLabelWidths[leaf] = w
		if w > tl.LabelWidth {
			tl.LabelWidth = w
		}
	}

	leafY(tl, cfg, span)
	internalY(tl)

	if cfg.Compact {
		compactX(tl, cfg, rootX)
	} else {
		proportionalX(tl, cfg, rootX)
	}

	tl.Stub = rootStub(tl, cfg)

	if cfg.Colors {
		tl.Colors = resolveColors(t)
	}
	return tl
}

// leafY assigns leaf y-coordinates: reverse traversal order, starting at the
// bottom margin, stepping by span/(leafCount-1). A single leaf sits exactly
// at the bottom margin and the step is zero, so no division happens.
func leafY(tl *TreeLayout, cfg Config, span float64) {
	leaves := tl.Tree.Leaves()
	n := len(leaves)
	if n > 1 {
		tl.YStep = span / float64(n-1)
	}
	for i, leaf := range leaves {
		tl.Coords[leaf] = Point{Y: cfg.Bottom + float64(n-1-i)*tl.YStep}
	}
}

// internalY computes internal-node y bottom-up: each node's y is the
// midpoint of the minimum and maximum y among its direct children only.
// Post-order guarantees every child is placed before its parent is visited.
func internalY(tl *TreeLayout) {
	tl.Tree.PostOrder(func(n *tree.Node) {
		if n.IsLeaf() {
			return
		}
		lo, hi := childYRange(tl, n)
		p := tl.Coords[n]
		p.Y = (lo + hi) / 2
		tl.Coords[n] = p
	})
}

// childYRange returns the min and max y among n's direct children.
func childYRange(tl *TreeLayout, n *tree.Node) (lo, hi float64) {
	for i, c := range n.Children {
		y := tl.Coords[c].Y
		if i == 0 || y < lo {
			lo = y
		}
		if i == 0 || y > hi {
			hi = y
		}
	}
	return lo, hi
}

// compactX assigns x with the single-pass parent-relative rule: the root at
// left + xstep, every other node one xstep beyond its parent (toward the
// leaves). A node at depth d therefore sits at left + xstep*(d+1), or
// mirrored, at rootX - xstep*d.
func compactX(tl *TreeLayout, cfg Config, rootX float64) {
	step := cfg.XStep
	if !tl.Mirrored {
		rootX = cfg.Left + cfg.XStep
	} else {
		step = -step
	}
	setX(tl, tl.Tree.Root(), rootX)
	tl.Tree.PreOrder(func(n *tree.Node) {
		if n.Parent() == nil {
			return
		}
		setX(tl, n, tl.Coords[n.Parent()].X+step)
	})
}

// proportionalX assigns x from branch lengths: each node sits at its
// parent's x plus (mirrored: minus) length*scale, where scale normalizes the
// deepest path to the configured aspect ratio. Absent and negative branch
// lengths contribute the default length 1.
func proportionalX(tl *TreeLayout, cfg Config, rootX float64) {
	tl.Scale = scaleFactor(tl.Tree, cfg)

	sign := 1.0
	if !tl.Mirrored {
		rootX = cfg.Left + cfg.XStep
	} else {
		sign = -1
	}
	setX(tl, tl.Tree.Root(), rootX)
	tl.Tree.PreOrder(func(n *tree.Node) {
		if n.Parent() == nil {
			return
		}
		setX(tl, n, tl.Coords[n.Parent()].X+sign*n.BranchLength()*tl.Scale)
	})
}

// scaleFactor is (leafCount-1) * leafSpacing * ratio / treeHeight, where
// treeHeight is the maximum root-to-leaf edge count. A single-node tree has
// height zero and no edges to scale; the factor is zero by convention.
func scaleFactor(t *tree.Tree, cfg Config) float64 {
	h := t.Height()
	if h == 0 {
		return 0
	}
	return float64(t.LeafCount()-1) * cfg.LeafSpacing * cfg.ratio() / float64(h)
}

func setX(tl *TreeLayout, n *tree.Node, x float64) {
	p := tl.Coords[n]
	p.X = x
	tl.Coords[n] = p
}

// rootStub derives the root's framing segment: one xstep drawn outward from
// the root (leftward for a normal tree, rightward for a mirrored one) at the
// midpoint of the root's immediate children - the same rule internalY uses,
// so the stub lines up with the root's own y.
func rootStub(tl *TreeLayout, cfg Config) Segment {
	root := tl.Tree.Root()
	p := tl.Coords[root]
	y := p.Y
	if !root.IsLeaf() {
		lo, hi := childYRange(tl, root)
		y = (lo + hi) / 2
	}
	if tl.Mirrored {
		return Segment{X1: p.X, X2: p.X + cfg.XStep, Y: y}
	}
	return Segment{X1: p.X - cfg.XStep, X2: p.X, Y: y}
}

// resolveColors builds the per-node color table in one top-down pass. Nodes
// without an explicit color resolve to black.
func resolveColors(t *tree.Tree) map[*tree.Node]tree.Color {
	colors := make(map[*tree.Node]tree.Color, t.NodeCount())
	t.PreOrder(func(n *tree.Node) {
		if n.Color != nil {
			colors[n] = *n.Color
			return
		}
		colors[n] = tree.Color{}
	})
	return colors
}

// treeMaxX returns the largest x in the tree's coordinate table, scanning in
// pre-order for determinism.
func treeMaxX(tl *TreeLayout) float64 {
	max := 0.0
	for i, n := range tl.Tree.Nodes() {
		if x := tl.Coords[n].X; i == 0 || x > max {
			max = x
		}
	}
	return max
}

// treeMinX returns the smallest x in the tree's coordinate table.
func treeMinX(tl *TreeLayout) float64 {
	min := 0.0
	for i, n := range tl.Tree.Nodes() {
		if x := tl.Coords[n].X; i == 0 || x < min {
			min = x
		}
	}
	return min
}
