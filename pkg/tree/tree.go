// Package tree provides the rooted tree model consumed by the layout engine.
//
// A tree is built from caller-supplied [Node] values linked through ordered
// Children slices. [New] validates the structure (every node reachable exactly
// once, at least one leaf) and freezes the traversal orders the layout engine
// depends on: pre-order, post-order, and leaf order.
//
// The package does not parse tree file formats and does not infer topology;
// it only models an already-constructed tree.
package tree

import (
	"errors"
)

var (
	// ErrNilRoot is returned by [New] when the root node is nil.
	ErrNilRoot = errors.New("root node must not be nil")

	// ErrNotATree is returned by [New] when a node is reachable through more
	// than one path (a shared child or a cycle). Layout coordinates are only
	// defined for proper trees.
	ErrNotATree = errors.New("node reachable through multiple paths")

	// ErrNilChild is returned by [New] when a Children slice contains nil.
	ErrNilChild = errors.New("child node must not be nil")
)

// Color is an RGB triple with components in the closed range [0, 1].
// The zero value is black.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Valid reports whether all components are within [0, 1].
func (c Color) Valid() bool {
	in := func(v float64) bool { return v >= 0 && v <= 1 }
	return in(c.R) && in(c.G) && in(c.B)
}

// Node is a vertex in a rooted tree. Children are ordered; the order fixes
// the traversal orders and therefore the vertical order of leaves in a layout.
//
// Length is the branch length from the parent, in arbitrary units. A nil
// Length means "unknown" and is treated as 1 by the layout engine; the same
// default applies to negative values (see [Node.BranchLength]).
//
// Label is expected on leaves. Internal labels are permitted and are used for
// bootstrap/support annotation by renderers.
type Node struct {
	Label    string
	Length   *float64
	Color    *Color
	Children []*Node

	parent *Node
	index  int // position in pre-order, assigned by New
}

// DefaultBranchLength substitutes for absent or negative branch lengths.
const DefaultBranchLength = 1.0

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Parent returns the parent node, or nil for the root.
// It is only meaningful after the node's tree has been built with [New].
func (n *Node) Parent() *Node { return n.parent }

// Index returns the node's position in pre-order. Indices are stable for the
// lifetime of the tree and are used as node identity in serialized layouts.
func (n *Node) Index() int { return n.index }

// BranchLength returns the branch length to the parent, substituting
// [DefaultBranchLength] when the length is absent or negative.
func (n *Node) BranchLength() float64 {
	if n.Length == nil || *n.Length < 0 {
		return DefaultBranchLength
	}
	return *n.Length
}

// Tree is a validated rooted tree. The zero value is not usable; construct
// with [New]. A Tree is immutable once built and safe for concurrent reads.
type Tree struct {
	root   *Node
	nodes  []*Node // pre-order
	leaves []*Node // traversal order
}

// New validates the structure rooted at root and returns a Tree.
//
// Validation walks the structure once, setting parent links and pre-order
// indices. It returns ErrNilRoot for a nil root, ErrNilChild when a Children
// slice contains nil, and ErrNotATree when any node is reachable through more
// than one path - that covers both shared children and cycles, either of which
// would leave coordinates undefined.
func New(root *Node) (*Tree, error) {
	if root == nil {
		return nil, ErrNilRoot
	}

	t := &Tree{root: root}
	seen := make(map[*Node]struct{})

	var walk func(n, parent *Node) error
	walk = func(n, parent *Node) error {
		if n == nil {
			return ErrNilChild
		}
		if _, dup := seen[n]; dup {
			return ErrNotATree
		}
		seen[n] = struct{}{}

		n.parent = parent
		n.index = len(t.nodes)
		t.nodes = append(t.nodes, n)
		if n.IsLeaf() {
			t.leaves = append(t.leaves, n)
		}
		for _, c := range n.Children {
			if err := walk(c, n); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root, nil); err != nil {
		return nil, err
	}
	return t, nil
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// Nodes returns all nodes in pre-order. The returned slice is shared; treat
// it as read-only.
func (t *Tree) Nodes() []*Node { return t.nodes }

// Leaves returns the leaves in traversal order. The returned slice is shared;
// treat it as read-only.
func (t *Tree) Leaves() []*Node { return t.leaves }

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// LeafCount returns the number of leaves. It is at least 1 for any valid
// tree: a root with no children is itself a leaf.
func (t *Tree) LeafCount() int { return len(t.leaves) }

// Height returns the maximum edge count from the root to any leaf.
// A single-node tree has height 0.
func (t *Tree) Height() int {
	var h func(n *Node) int
	h = func(n *Node) int {
		best := 0
		for _, c := range n.Children {
			if d := h(c) + 1; d > best {
				best = d
			}
		}
		return best
	}
	return h(t.root)
}

// Depth returns the edge count from the root to n. The root has depth 0.
func (t *Tree) Depth(n *Node) int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// PostOrder calls fn for every node, children before parents. This is the
// traversal the layout engine uses for the bottom-up y pass: when fn sees a
// node, it has already seen all of the node's children.
func (t *Tree) PostOrder(fn func(n *Node)) {
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			walk(c)
		}
		fn(n)
	}
	walk(t.root)
}

// PreOrder calls fn for every node, parents before children.
func (t *Tree) PreOrder(fn func(n *Node)) {
	for _, n := range t.nodes {
		fn(n)
	}
}
