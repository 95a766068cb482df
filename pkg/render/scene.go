package render

import (
	"github.com/yzhernand/treedraw/pkg/layout"
	"github.com/yzhernand/treedraw/pkg/tree"
)

// ConnectorGray is the fixed gray level connectors are drawn in, regardless
// of per-node colors.
const ConnectorGray = 0.5

// Anchor controls which end of a label sits at its position.
type Anchor int

const (
	// AnchorStart places the label's left edge at its position.
	AnchorStart Anchor = iota
	// AnchorEnd places the label's right edge at its position.
	AnchorEnd
)

// Line is a colored straight segment in layout coordinates.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          tree.Color
}

// Label is a positioned text run.
type Label struct {
	X, Y   float64
	Text   string
	Anchor Anchor
	Color  tree.Color
}

// Polyline is an open path through a list of points, drawn in the fixed
// connector gray.
type Polyline struct {
	Pts []layout.Point
}

// Scene is the flattened drawable form of a layout: primitives only, no
// tree structure. All coordinates follow the layout convention with the
// origin at the bottom-left and y growing upward.
type Scene struct {
	Width, Height float64
	Lines         []Line
	Connectors    []Polyline
	Labels        []Label
}

// BuildScene flattens a layout into drawable primitives. Each edge becomes
// an elbow of two segments: a vertical run at the parent's x from the
// parent's row to the child's row, then a horizontal run to the child. Both
// segments take the child's color. The root stub, leaf labels, optional
// internal-node labels, and tanglegram connectors are appended in a fixed
// order so identical layouts always produce identical scenes.
func BuildScene(l *layout.Layout) *Scene {
	s := &Scene{Width: l.Width, Height: l.Height}

	for _, tl := range l.Trees {
		buildTree(s, l, tl)
	}
	for _, c := range l.Conns {
		s.Connectors = append(s.Connectors, Polyline{Pts: []layout.Point{
			{X: c.X[0], Y: c.Y1},
			{X: c.X[1], Y: c.Y1},
			{X: c.X[2], Y: c.Y2},
			{X: c.X[3], Y: c.Y2},
		}})
	}
	return s
}

func buildTree(s *Scene, l *layout.Layout, tl *layout.TreeLayout) {
	root := tl.Tree.Root()
	s.Lines = append(s.Lines, Line{
		X1: tl.Stub.X1, Y1: tl.Stub.Y,
		X2: tl.Stub.X2, Y2: tl.Stub.Y,
		Color: colorOf(tl, root),
	})

	tl.Tree.PreOrder(func(n *tree.Node) {
		p := n.Parent()
		if p == nil {
			return
		}
		pp, np := tl.Coords[p], tl.Coords[n]
		col := colorOf(tl, n)
		if pp.Y != np.Y {
			s.Lines = append(s.Lines, Line{X1: pp.X, Y1: pp.Y, X2: pp.X, Y2: np.Y, Color: col})
		}
		s.Lines = append(s.Lines, Line{X1: pp.X, Y1: np.Y, X2: np.X, Y2: np.Y, Color: col})
	})

	gap := l.Config.TipGap
	tl.Tree.PreOrder(func(n *tree.Node) {
		if n.IsLeaf() {
			if n.Label == "" {
				return
			}
		} else if !l.Config.Bootstrap || n.Label == "" {
			return
		}
		p := tl.Coords[n]
		lbl := Label{Y: p.Y, Text: n.Label, Color: colorOf(tl, n)}
		if tl.Mirrored {
			lbl.X = p.X - gap
			lbl.Anchor = AnchorEnd
		} else {
			lbl.X = p.X + gap
			lbl.Anchor = AnchorStart
		}
		s.Labels = append(s.Labels, lbl)
	})
}

func colorOf(tl *layout.TreeLayout, n *tree.Node) tree.Color {
	if tl.Colors == nil {
		return tree.Color{}
	}
	return tl.Colors[n]
}
