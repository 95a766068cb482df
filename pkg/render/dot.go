package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/yzhernand/treedraw/pkg/layout"
	"github.com/yzhernand/treedraw/pkg/tree"
)

// RenderDOT converts a layout's tree topology to Graphviz DOT format. The
// computed coordinates are deliberately not carried over: DOT consumers run
// their own placement, and the export exists for topology interchange, not
// as a drawing of this engine's geometry. Tanglegram correspondences appear
// as dashed, unconstrained gray edges between the two trees.
func RenderDOT(l *layout.Layout) string {
	var buf bytes.Buffer
	buf.WriteString("digraph trees {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=point];\n")
	buf.WriteString("\n")

	for ti, tl := range l.Trees {
		fmt.Fprintf(&buf, "  subgraph cluster_t%d {\n", ti)
		buf.WriteString("    color=none;\n")
		tl.Tree.PreOrder(func(n *tree.Node) {
			id := nodeID(ti, n)
			if n.IsLeaf() && n.Label != "" {
				fmt.Fprintf(&buf, "    %q [shape=plaintext, label=%q];\n", id, n.Label)
			} else {
				fmt.Fprintf(&buf, "    %q;\n", id)
			}
		})
		tl.Tree.PreOrder(func(n *tree.Node) {
			if n.Parent() == nil {
				return
			}
			fmt.Fprintf(&buf, "    %q -> %q;\n", nodeID(ti, n.Parent()), nodeID(ti, n))
		})
		buf.WriteString("  }\n")
	}

	if len(l.Conns) > 0 {
		buf.WriteString("\n")
		for _, c := range l.Conns {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=gray, dir=none, constraint=false];\n",
				nodeID(0, c.From), nodeID(1, c.To))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(treeIdx int, n *tree.Node) string {
	return fmt.Sprintf("t%d_n%d", treeIdx, n.Index())
}

// DOTToSVG renders a DOT graph to SVG using Graphviz. Used by the HTTP
// server to preview DOT exports without a local Graphviz install.
func DOTToSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
