package tree_test

import (
	"fmt"

	"github.com/yzhernand/treedraw/pkg/tree"
)

func ExampleNew() {
	// Build a small primate tree: (Gorilla, (Homo, Pan))
	length := func(v float64) *float64 { return &v }
	root := &tree.Node{Children: []*tree.Node{
		{Label: "Gorilla", Length: length(0.8)},
		{Length: length(0.4), Children: []*tree.Node{
			{Label: "Homo", Length: length(0.6)},
			{Label: "Pan", Length: length(0.6)},
		}},
	}}

	t, _ := tree.New(root)
	fmt.Println("Nodes:", t.NodeCount())
	fmt.Println("Leaves:", t.LeafCount())
	fmt.Println("Height:", t.Height())
	for _, leaf := range t.Leaves() {
		fmt.Println("-", leaf.Label)
	}
	// Output:
	// Nodes: 5
	// Leaves: 3
	// Height: 2
	// - Gorilla
	// - Homo
	// - Pan
}

func ExampleNew_sharedChild() {
	// A node reachable through two paths is not a tree.
	shared := &tree.Node{Label: "x"}
	root := &tree.Node{Children: []*tree.Node{shared, shared}}

	_, err := tree.New(root)
	fmt.Println(err)
	// Output:
	// node reachable through multiple paths
}

func ExampleNode_BranchLength() {
	// Absent and negative lengths fall back to the default length 1.
	length := func(v float64) *float64 { return &v }
	measured := &tree.Node{Label: "a", Length: length(2.5)}
	unknown := &tree.Node{Label: "b"}

	fmt.Println(measured.BranchLength())
	fmt.Println(unknown.BranchLength())
	// Output:
	// 2.5
	// 1
}
