package treeio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yzhernand/treedraw/pkg/tree"
)

func TestReadTree(t *testing.T) {
	input := `{
		"label": "root",
		"children": [
			{"label": "a", "length": 1.5},
			{"label": "b", "length": "2.5", "color": {"r": 1}},
			{"children": [{"label": "c"}]}
		]
	}`

	tr, err := ReadTree(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}

	if got := tr.LeafCount(); got != 3 {
		t.Fatalf("leaf count = %d, want 3", got)
	}
	leaves := tr.Leaves()
	a, b := leaves[0], leaves[1]
	if a.Length == nil || *a.Length != 1.5 {
		t.Errorf("numeric length = %v", a.Length)
	}
	if b.Length == nil || *b.Length != 2.5 {
		t.Errorf("quoted length = %v, want 2.5", b.Length)
	}
	if b.Color == nil || b.Color.R != 1 {
		t.Errorf("color = %v", b.Color)
	}
}

func TestReadTreeLengthCoercion(t *testing.T) {
	tests := []struct {
		name   string
		length string
		want   *float64
	}{
		{"Number", `3`, ptr(3)},
		{"Float", `0.25`, ptr(0.25)},
		{"QuotedNumber", `"4.5"`, ptr(4.5)},
		{"QuotedGarbage", `"abc"`, nil},
		{"QuotedEmpty", `""`, nil},
		{"Bool", `true`, nil},
		{"Array", `[1]`, nil},
		{"QuotedInf", `"Inf"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := `{"children":[{"label":"x","length":` + tt.length + `},{"label":"y"}]}`
			tr, err := ReadTree(strings.NewReader(input))
			if err != nil {
				t.Fatalf("ReadTree: %v", err)
			}
			got := tr.Leaves()[0].Length
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("length = %v, want nil", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("length = %v, want %v", got, *tt.want)
			}
		})
	}
}

func ptr(v float64) *float64 { return &v }

func TestReadTreeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Malformed", `{"label": }`},
		{"ColorOutOfRange", `{"children":[{"label":"a","color":{"r":2}},{"label":"b"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadTree(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	length := 2.0
	red := tree.Color{R: 1}
	root := &tree.Node{Label: "r", Children: []*tree.Node{
		{Label: "a", Length: &length, Color: &red},
		{Children: []*tree.Node{{Label: "b"}, {Label: "c"}}},
	}}
	orig, err := tree.New(root)
	if err != nil {
		t.Fatalf("tree.New: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteTree(orig, &buf); err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	back, err := ReadTree(&buf)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}

	on, bn := orig.Nodes(), back.Nodes()
	if len(on) != len(bn) {
		t.Fatalf("node count %d, want %d", len(bn), len(on))
	}
	for i := range on {
		if on[i].Label != bn[i].Label {
			t.Errorf("node %d label = %q, want %q", i, bn[i].Label, on[i].Label)
		}
		switch {
		case on[i].Length == nil != (bn[i].Length == nil):
			t.Errorf("node %d length presence differs", i)
		case on[i].Length != nil && *on[i].Length != *bn[i].Length:
			t.Errorf("node %d length = %v, want %v", i, *bn[i].Length, *on[i].Length)
		}
	}
}

func TestImportExportFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.json")

	orig, err := tree.New(&tree.Node{Children: []*tree.Node{
		{Label: "a"}, {Label: "b"},
	}})
	if err != nil {
		t.Fatalf("tree.New: %v", err)
	}

	if err := ExportTree(orig, path); err != nil {
		t.Fatalf("ExportTree: %v", err)
	}
	back, err := ImportTree(path)
	if err != nil {
		t.Fatalf("ImportTree: %v", err)
	}
	if back.LeafCount() != 2 {
		t.Errorf("leaf count = %d, want 2", back.LeafCount())
	}

	if _, err := ImportTree(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file: expected error")
	}
}
