package treeio_test

import (
	"fmt"
	"strings"

	"github.com/yzhernand/treedraw/pkg/treeio"
)

func ExampleReadTree() {
	// Branch lengths may be numbers or numeric strings; anything else is
	// dropped and the branch falls back to the default length 1.
	const doc = `{
	  "children": [
	    {"label": "a", "length": 1.5},
	    {"label": "b", "length": "2.5"},
	    {"label": "c", "length": "fast"}
	  ]
	}`

	t, _ := treeio.ReadTree(strings.NewReader(doc))
	for _, leaf := range t.Leaves() {
		fmt.Printf("%s %.1f\n", leaf.Label, leaf.BranchLength())
	}
	// Output:
	// a 1.5
	// b 2.5
	// c 1.0
}
