// Package treeio reads and writes trees as JSON.
//
// The format is a nested node object:
//
//	{
//	  "label": "root",
//	  "children": [
//	    {"label": "a", "length": 1.5},
//	    {"label": "b", "length": "2.5", "color": {"r": 1, "g": 0, "b": 0}}
//	  ]
//	}
//
// Branch lengths may be JSON numbers or numeric strings; many exporters of
// tree data quote them. Strings that do not parse as a finite number are
// dropped, leaving the branch with no length. Downstream, a missing length
// behaves as the default length 1.
package treeio

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/yzhernand/treedraw/pkg/tree"
)

type jsonNode struct {
	Label    string      `json:"label,omitempty"`
	Length   any         `json:"length,omitempty"`
	Color    *tree.Color `json:"color,omitempty"`
	Children []jsonNode  `json:"children,omitempty"`
}

// ReadTree decodes a JSON tree from r.
//
// ReadTree returns an error if the JSON is malformed or if a color is out
// of range. It does not close r. The returned tree is independent of r.
func ReadTree(r io.Reader) (*tree.Tree, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var root jsonNode
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	node, err := buildNode(root, "root")
	if err != nil {
		return nil, err
	}
	return tree.New(node)
}

func buildNode(jn jsonNode, path string) (*tree.Node, error) {
	n := &tree.Node{
		Label:  jn.Label,
		Length: coerceLength(jn.Length),
	}
	if jn.Color != nil {
		if !jn.Color.Valid() {
			return nil, fmt.Errorf("%s: color components must be in [0, 1]", path)
		}
		c := *jn.Color
		n.Color = &c
	}
	for i, child := range jn.Children {
		cn, err := buildNode(child, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, cn)
	}
	return n, nil
}

// coerceLength turns a decoded length value into a branch length. Numbers
// pass through; numeric strings are parsed; anything else, including
// non-finite values, is dropped.
func coerceLength(v any) *float64 {
	var s string
	switch val := v.(type) {
	case nil:
		return nil
	case json.Number:
		s = val.String()
	case string:
		s = val
	default:
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ImportTree reads a JSON file at path and returns the decoded tree.
//
// ImportTree opens the file, decodes it using [ReadTree], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportTree(path string) (*tree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadTree(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteTree encodes a tree as indented JSON and writes it to w.
// The output can be re-imported with [ReadTree] for round-trip processing.
func WriteTree(t *tree.Tree, w io.Writer) error {
	out := exportNode(t.Root())
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func exportNode(n *tree.Node) jsonNode {
	jn := jsonNode{Label: n.Label, Color: n.Color}
	if n.Length != nil {
		jn.Length = *n.Length
	}
	for _, c := range n.Children {
		jn.Children = append(jn.Children, exportNode(c))
	}
	return jn
}

// ExportTree writes a tree to a JSON file at path.
// This is a convenience wrapper around [WriteTree] for file-based output.
func ExportTree(t *tree.Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTree(t, f)
}
