package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/yzhernand/treedraw/pkg/fonts"
	"github.com/yzhernand/treedraw/pkg/layout"
	"github.com/yzhernand/treedraw/pkg/observability"
	"github.com/yzhernand/treedraw/pkg/tree"
)

// ComputeLayout runs the layout stage on already-loaded trees. One tree
// produces a cladogram, two a tanglegram. Explicit correspondences are
// resolved from labels to nodes here; pairs whose labels do not exist in
// the trees are skipped with a warning.
func (r *Runner) ComputeLayout(ctx context.Context, trees []*tree.Tree, opts Options) (*layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	nodes := 0
	for _, t := range trees {
		nodes += t.NodeCount()
	}
	tanglegram := len(trees) == 2

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, tanglegram, nodes)

	m := opts.Measurer
	if m == nil {
		var real bool
		m, real = fonts.Resolve(opts.Font, opts.FontSize)
		if !real {
			r.Logger.Warn("font not found, using approximate label widths", "font", opts.Font)
		}
	}

	var (
		l   *layout.Layout
		err error
	)
	switch len(trees) {
	case 1:
		l, err = layout.Cladogram(trees[0], m, opts.Layout)
	case 2:
		pairs := r.resolvePairs(trees[0], trees[1], opts.Correspondences)
		l, err = layout.Tanglegram(trees[0], trees[1], m, opts.Layout,
			layout.WithCorrespondences(pairs))
	default:
		err = fmt.Errorf("expected 1 or 2 trees, got %d", len(trees))
	}

	observability.Pipeline().OnLayoutComplete(ctx, tanglegram, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("computed layout",
		"width", l.Width,
		"height", l.Height,
		"connectors", len(l.Conns))
	return l, nil
}

// resolvePairs maps label pairs to concrete leaf nodes. For each pair the
// first matching leaf in traversal order is used.
func (r *Runner) resolvePairs(t1, t2 *tree.Tree, labelPairs [][2]string) []layout.Correspondence {
	pairs := make([]layout.Correspondence, 0, len(labelPairs))
	for _, lp := range labelPairs {
		from := leafByLabel(t1, lp[0])
		to := leafByLabel(t2, lp[1])
		if from == nil || to == nil {
			r.Logger.Warn("skipping correspondence with unknown label",
				"from", lp[0], "to", lp[1])
			continue
		}
		pairs = append(pairs, layout.Correspondence{From: from, To: to})
	}
	return pairs
}

func leafByLabel(t *tree.Tree, label string) *tree.Node {
	for _, leaf := range t.Leaves() {
		if leaf.Label == label {
			return leaf
		}
	}
	return nil
}
