package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/yzhernand/treedraw/pkg/tree"
)

// constMeasurer returns the same width for every label.
type constMeasurer float64

func (m constMeasurer) Width(string) float64 { return float64(m) }

func leaf(label string) *tree.Node { return &tree.Node{Label: label} }

func branch(children ...*tree.Node) *tree.Node {
	return &tree.Node{Children: children}
}

func mustTree(t *testing.T, root *tree.Node) *tree.Tree {
	t.Helper()
	tr, err := tree.New(root)
	if err != nil {
		t.Fatalf("tree.New: %v", err)
	}
	return tr
}

// fiveLeaves is ((a,b),(c,d),e): five leaves over three levels.
func fiveLeaves(t *testing.T) *tree.Tree {
	return mustTree(t, branch(
		branch(leaf("a"), leaf("b")),
		branch(leaf("c"), leaf("d")),
		leaf("e"),
	))
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCladogramInputValidation(t *testing.T) {
	tr := fiveLeaves(t)
	cfg := DefaultConfig()

	if _, err := Cladogram(nil, constMeasurer(10), cfg); err != ErrNilTree {
		t.Errorf("nil tree: err = %v, want ErrNilTree", err)
	}
	if _, err := Cladogram(tr, nil, cfg); err != ErrNilMeasurer {
		t.Errorf("nil measurer: err = %v, want ErrNilMeasurer", err)
	}

	bad := cfg
	bad.Left = -1
	if _, err := Cladogram(tr, constMeasurer(10), bad); err == nil {
		t.Error("negative margin: expected error")
	}
	bad = cfg
	bad.LeafSpacing = 0
	if _, err := Cladogram(tr, constMeasurer(10), bad); err == nil {
		t.Error("zero leaf spacing: expected error")
	}
}

func TestLeafSpacing(t *testing.T) {
	tr := fiveLeaves(t)
	cfg := DefaultConfig()
	cfg.Compact = true

	l, err := Cladogram(tr, constMeasurer(30), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	tl := l.Trees[0]

	if !approx(tl.YStep, cfg.LeafSpacing) {
		t.Fatalf("YStep = %v, want %v", tl.YStep, cfg.LeafSpacing)
	}

	leaves := tr.Leaves()
	for i, lf := range leaves {
		want := cfg.Bottom + float64(len(leaves)-1-i)*tl.YStep
		if got := tl.Coords[lf].Y; !approx(got, want) {
			t.Errorf("leaf %q y = %v, want %v", lf.Label, got, want)
		}
		if i > 0 {
			prev := tl.Coords[leaves[i-1]].Y
			if diff := prev - tl.Coords[lf].Y; !approx(diff, tl.YStep) {
				t.Errorf("leaf %q spacing = %v, want %v", lf.Label, diff, tl.YStep)
			}
		}
	}
}

func TestInternalNodeMidpoint(t *testing.T) {
	// Two leaves with bottom margin 0 and spacing 20 sit at y=20 and y=0;
	// their parent must sit at exactly 10.
	a, b := leaf("a"), leaf("b")
	tr := mustTree(t, branch(a, b))

	cfg := DefaultConfig()
	cfg.Bottom = 0
	cfg.Compact = true

	l, err := Cladogram(tr, constMeasurer(10), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	tl := l.Trees[0]
	if got := tl.Coords[tr.Root()].Y; !approx(got, 10) {
		t.Errorf("root y = %v, want 10", got)
	}

	// Unbalanced shape: the midpoint rule uses direct children only, not
	// all descendants.
	c := leaf("c")
	inner := branch(leaf("d"), leaf("e"))
	tr2 := mustTree(t, branch(inner, c))
	l2, err := Cladogram(tr2, constMeasurer(10), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	tl2 := l2.Trees[0]
	lo := tl2.Coords[c].Y
	hi := tl2.Coords[inner].Y
	if hi < lo {
		lo, hi = hi, lo
	}
	if got := tl2.Coords[tr2.Root()].Y; !approx(got, (lo+hi)/2) {
		t.Errorf("root y = %v, want midpoint of direct children %v", got, (lo+hi)/2)
	}
}

func TestCompactX(t *testing.T) {
	tr := fiveLeaves(t)
	cfg := DefaultConfig()
	cfg.Compact = true
	cfg.XStep = 20

	l, err := Cladogram(tr, constMeasurer(40), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	tl := l.Trees[0]

	if got := tl.Coords[tr.Root()].X; !approx(got, cfg.Left+cfg.XStep) {
		t.Errorf("root x = %v, want %v", got, cfg.Left+cfg.XStep)
	}
	for _, n := range tr.Nodes() {
		if n.Parent() == nil {
			continue
		}
		if got, want := tl.Coords[n].X, tl.Coords[n.Parent()].X+cfg.XStep; !approx(got, want) {
			t.Errorf("node x = %v, want parent+xstep = %v", got, want)
		}
		// Equivalent closed form: left + xstep*(depth+1).
		if got, want := tl.Coords[n].X, cfg.Left+cfg.XStep*float64(tr.Depth(n)+1); !approx(got, want) {
			t.Errorf("node x = %v, want depth formula %v", got, want)
		}
	}
}

func TestProportionalMatchesCompactForUnitLengths(t *testing.T) {
	// With three leaves and height two the scale factor is
	// (3-1)*spacing*ratio/2; ratio=1 and spacing=20 make it exactly one
	// xstep, so unit branch lengths must reproduce the compact layout.
	build := func() *tree.Tree {
		return mustTree(t, branch(branch(leaf("a"), leaf("b")), leaf("c")))
	}
	cfg := DefaultConfig()
	cfg.Ratio = 1
	cfg.LeafSpacing = 20
	cfg.XStep = 20

	compact := cfg
	compact.Compact = true
	lc, err := Cladogram(build(), constMeasurer(10), compact)
	if err != nil {
		t.Fatalf("compact: %v", err)
	}
	lp, err := Cladogram(build(), constMeasurer(10), cfg)
	if err != nil {
		t.Fatalf("proportional: %v", err)
	}

	cn, pn := lc.Trees[0].Tree.Nodes(), lp.Trees[0].Tree.Nodes()
	for i := range cn {
		cx := lc.Trees[0].Coords[cn[i]].X
		px := lp.Trees[0].Coords[pn[i]].X
		if !approx(cx, px) {
			t.Errorf("node %d: compact x = %v, proportional x = %v", i, cx, px)
		}
	}
	if !approx(lc.Width, lp.Width) {
		t.Errorf("width: compact %v, proportional %v", lc.Width, lp.Width)
	}
}

func TestProportionalScalingIsLinear(t *testing.T) {
	build := func(factor float64) *tree.Tree {
		l := func(v float64) *float64 { v *= factor; return &v }
		a := &tree.Node{Label: "a", Length: l(2)}
		b := &tree.Node{Label: "b", Length: l(3)}
		x := &tree.Node{Length: l(1), Children: []*tree.Node{a, b}}
		c := &tree.Node{Label: "c", Length: l(4)}
		return mustTree(t, branch(x, c))
	}

	cfg := DefaultConfig()
	l1, err := Cladogram(build(1), constMeasurer(10), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	l2, err := Cladogram(build(2), constMeasurer(10), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}

	n1, n2 := l1.Trees[0].Tree.Nodes(), l2.Trees[0].Tree.Nodes()
	rootX1 := l1.Trees[0].Coords[n1[0]].X
	rootX2 := l2.Trees[0].Coords[n2[0]].X
	for i := range n1 {
		off1 := l1.Trees[0].Coords[n1[i]].X - rootX1
		off2 := l2.Trees[0].Coords[n2[i]].X - rootX2
		if !approx(off2, 2*off1) {
			t.Errorf("node %d: offset %v did not double, got %v", i, off1, off2)
		}
	}
}

func TestDefaultBranchLengthSubstitution(t *testing.T) {
	// Absent and negative lengths both behave as length 1.
	neg := -5.0
	a := &tree.Node{Label: "a"}             // absent
	b := &tree.Node{Label: "b", Length: &neg} // negative
	tr := mustTree(t, branch(a, b))

	cfg := DefaultConfig()
	l, err := Cladogram(tr, constMeasurer(10), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	tl := l.Trees[0]
	rootX := tl.Coords[tr.Root()].X
	if got := tl.Coords[a].X - rootX; !approx(got, tl.Scale) {
		t.Errorf("absent length offset = %v, want scale %v", got, tl.Scale)
	}
	if got := tl.Coords[b].X - rootX; !approx(got, tl.Scale) {
		t.Errorf("negative length offset = %v, want scale %v", got, tl.Scale)
	}
}

func TestSingleLeafTree(t *testing.T) {
	tr := mustTree(t, leaf("only"))
	cfg := DefaultConfig()
	cfg.Compact = true

	l, err := Cladogram(tr, constMeasurer(25), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	tl := l.Trees[0]
	if got := tl.Coords[tr.Root()].Y; !approx(got, cfg.Bottom) {
		t.Errorf("sole leaf y = %v, want bottom margin %v", got, cfg.Bottom)
	}
	if got := l.Height; !approx(got, cfg.Top+cfg.Bottom) {
		t.Errorf("height = %v, want margins only %v", got, cfg.Top+cfg.Bottom)
	}
	if tl.YStep != 0 {
		t.Errorf("YStep = %v, want 0", tl.YStep)
	}
}

func TestDimensionsNeverBelowMargins(t *testing.T) {
	configs := []Config{
		DefaultConfig(),
		{Top: 0, Bottom: 0, Left: 0, Right: 0, TipGap: 0, LeafSpacing: 1, XStep: 1},
		{Top: 50, Bottom: 5, Left: 100, Right: 2, TipGap: 1, LeafSpacing: 3, XStep: 7, Compact: true},
	}
	trees := []func() *tree.Tree{
		func() *tree.Tree { return mustTree(t, leaf("x")) },
		func() *tree.Tree { return fiveLeaves(t) },
	}

	for _, cfg := range configs {
		for _, build := range trees {
			l, err := Cladogram(build(), constMeasurer(12), cfg)
			if err != nil {
				t.Fatalf("Cladogram: %v", err)
			}
			if l.Width < cfg.Left+cfg.Right {
				t.Errorf("width %v below margin sum %v", l.Width, cfg.Left+cfg.Right)
			}
			if l.Height < cfg.Top+cfg.Bottom {
				t.Errorf("height %v below margin sum %v", l.Height, cfg.Top+cfg.Bottom)
			}
			if l.Width < 0 || l.Height < 0 {
				t.Errorf("negative dimensions: %v x %v", l.Width, l.Height)
			}
		}
	}
}

func TestCladogramIdempotent(t *testing.T) {
	tr := fiveLeaves(t)
	cfg := DefaultConfig()
	cfg.Colors = true

	l1, err := Cladogram(tr, constMeasurer(18), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	l2, err := Cladogram(tr, constMeasurer(18), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	if !reflect.DeepEqual(l1, l2) {
		t.Error("repeated layout of the same inputs differs")
	}
}

func TestColorResolution(t *testing.T) {
	red := tree.Color{R: 1}
	a := &tree.Node{Label: "a", Color: &red}
	b := leaf("b")
	tr := mustTree(t, branch(a, b))

	cfg := DefaultConfig()
	cfg.Colors = true
	l, err := Cladogram(tr, constMeasurer(10), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	tl := l.Trees[0]
	if got := tl.Colors[a]; got != red {
		t.Errorf("colored node = %v, want %v", got, red)
	}
	if got := tl.Colors[b]; got != (tree.Color{}) {
		t.Errorf("uncolored node = %v, want black", got)
	}

	cfg.Colors = false
	l, err = Cladogram(tr, constMeasurer(10), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	if l.Trees[0].Colors != nil {
		t.Error("colors disabled but table present")
	}
}

func TestRootStub(t *testing.T) {
	tr := fiveLeaves(t)
	cfg := DefaultConfig()
	cfg.Compact = true

	l, err := Cladogram(tr, constMeasurer(10), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	tl := l.Trees[0]
	root := tr.Root()
	if !approx(tl.Stub.X2, tl.Coords[root].X) {
		t.Errorf("stub ends at %v, want root x %v", tl.Stub.X2, tl.Coords[root].X)
	}
	if !approx(tl.Stub.X2-tl.Stub.X1, cfg.XStep) {
		t.Errorf("stub length = %v, want one xstep %v", tl.Stub.X2-tl.Stub.X1, cfg.XStep)
	}
	lo, hi := childYRange(tl, root)
	if !approx(tl.Stub.Y, (lo+hi)/2) {
		t.Errorf("stub y = %v, want child midpoint %v", tl.Stub.Y, (lo+hi)/2)
	}
}
