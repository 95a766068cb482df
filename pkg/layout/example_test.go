package layout_test

import (
	"fmt"

	"github.com/yzhernand/treedraw/pkg/layout"
	"github.com/yzhernand/treedraw/pkg/tree"
)

// charWidth measures labels at a fixed width per character.
type charWidth float64

func (w charWidth) Width(label string) float64 { return float64(len(label)) * float64(w) }

func ExampleCladogram() {
	// (Gorilla, (Homo, Pan)) in compact mode: every edge is one fixed step.
	root := &tree.Node{Children: []*tree.Node{
		{Label: "Gorilla"},
		{Children: []*tree.Node{
			{Label: "Homo"},
			{Label: "Pan"},
		}},
	}}
	t, _ := tree.New(root)

	cfg := layout.DefaultConfig()
	cfg.Compact = true

	l, _ := layout.Cladogram(t, charWidth(6), cfg)
	tl := l.Trees[0]
	for _, leaf := range t.Leaves() {
		p := tl.Coords[leaf]
		fmt.Printf("%s: (%.0f, %.0f)\n", leaf.Label, p.X, p.Y)
	}
	fmt.Printf("Canvas: %.0f x %.0f\n", l.Width, l.Height)
	// Output:
	// Gorilla: (50, 50)
	// Homo: (70, 30)
	// Pan: (70, 10)
	// Canvas: 127 x 60
}

func ExampleTanglegram() {
	// Leaves are matched across the two trees by equal labels; leaves
	// without a match simply get no connector.
	t1, _ := tree.New(&tree.Node{Children: []*tree.Node{
		{Label: "A"},
		{Children: []*tree.Node{{Label: "B"}, {Label: "C"}}},
	}})
	t2, _ := tree.New(&tree.Node{Children: []*tree.Node{
		{Label: "B"},
		{Label: "A"},
	}})

	cfg := layout.DefaultConfig()
	cfg.Compact = true

	l, _ := layout.Tanglegram(t1, t2, charWidth(6), cfg)
	for _, c := range l.Conns {
		fmt.Printf("%s - %s\n", c.From.Label, c.To.Label)
	}
	// Output:
	// A - A
	// B - B
}
