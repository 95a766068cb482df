package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yzhernand/treedraw/pkg/cache"
	"github.com/yzhernand/treedraw/pkg/observability"
	"github.com/yzhernand/treedraw/pkg/tree"
	"github.com/yzhernand/treedraw/pkg/treeio"
)

// Load decodes the configured tree documents. It returns one tree for a
// cladogram or two for a tanglegram, along with the content hash of the
// raw document bytes. The hash anchors all downstream cache keys.
func (r *Runner) Load(ctx context.Context, opts Options) ([]*tree.Tree, string, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", err
	}
	r.applyLogger(&opts)

	start := time.Now()
	source := opts.TreePath
	if source == "" {
		source = "inline"
	}
	observability.Pipeline().OnLoadStart(ctx, source)

	docs, err := readDocuments(opts)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, source, 0, time.Since(start), err)
		return nil, "", err
	}

	trees := make([]*tree.Tree, 0, len(docs))
	for i, doc := range docs {
		t, err := treeio.ReadTree(bytes.NewReader(doc))
		if err != nil {
			err = fmt.Errorf("tree %d: %w", i+1, err)
			observability.Pipeline().OnLoadComplete(ctx, source, 0, time.Since(start), err)
			return nil, "", err
		}
		trees = append(trees, t)
	}

	hash := cache.Hash(bytes.Join(docs, []byte{0}))

	leaves := 0
	for _, t := range trees {
		leaves += t.LeafCount()
	}
	observability.Pipeline().OnLoadComplete(ctx, source, leaves, time.Since(start), nil)
	r.Logger.Debug("loaded trees", "count", len(trees), "leaves", leaves, "hash", hash[:12])

	return trees, hash, nil
}

// readDocuments resolves the raw document bytes for each configured input.
// Inline data takes precedence over a path.
func readDocuments(opts Options) ([][]byte, error) {
	doc1, err := readDocument(opts.TreeData, opts.TreePath)
	if err != nil {
		return nil, err
	}
	if !opts.Tanglegram() {
		return [][]byte{doc1}, nil
	}
	doc2, err := readDocument(opts.Tree2Data, opts.Tree2Path)
	if err != nil {
		return nil, err
	}
	return [][]byte{doc1, doc2}, nil
}

func readDocument(data []byte, path string) ([]byte, error) {
	if len(data) > 0 {
		return data, nil
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}
