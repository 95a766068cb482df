package render

import (
	"encoding/json"

	"github.com/yzhernand/treedraw/pkg/layout"
	"github.com/yzhernand/treedraw/pkg/tree"
)

// jsonLayout is the stable export schema for computed geometry. Nodes are
// referenced by their pre-order index within their tree.
type jsonLayout struct {
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Config     layout.Config   `json:"config"`
	Trees      []jsonTree      `json:"trees"`
	Connectors []jsonConnector `json:"connectors,omitempty"`
}

type jsonTree struct {
	Mirrored   bool        `json:"mirrored"`
	YStep      float64     `json:"ystep"`
	Scale      float64     `json:"scale,omitempty"`
	LabelWidth float64     `json:"label_width"`
	Stub       jsonSegment `json:"stub"`
	Nodes      []jsonNode  `json:"nodes"`
}

type jsonNode struct {
	ID     int         `json:"id"`
	Parent *int        `json:"parent,omitempty"`
	Label  string      `json:"label,omitempty"`
	Length *float64    `json:"length,omitempty"`
	Color  *tree.Color `json:"color,omitempty"`
	Leaf   bool        `json:"leaf"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
}

type jsonSegment struct {
	X1 float64 `json:"x1"`
	X2 float64 `json:"x2"`
	Y  float64 `json:"y"`
}

type jsonConnector struct {
	From int        `json:"from"`
	To   int        `json:"to"`
	X    [4]float64 `json:"x"`
	Y1   float64    `json:"y1"`
	Y2   float64    `json:"y2"`
}

// ExportJSON serializes a layout's full geometry as indented JSON.
func ExportJSON(l *layout.Layout) ([]byte, error) {
	out := jsonLayout{
		Width:  l.Width,
		Height: l.Height,
		Config: l.Config,
		Trees:  make([]jsonTree, 0, len(l.Trees)),
	}

	for _, tl := range l.Trees {
		jt := jsonTree{
			Mirrored:   tl.Mirrored,
			YStep:      tl.YStep,
			Scale:      tl.Scale,
			LabelWidth: tl.LabelWidth,
			Stub:       jsonSegment{X1: tl.Stub.X1, X2: tl.Stub.X2, Y: tl.Stub.Y},
			Nodes:      make([]jsonNode, 0, tl.Tree.NodeCount()),
		}
		for _, n := range tl.Tree.Nodes() {
			p := tl.Coords[n]
			jn := jsonNode{
				ID:     n.Index(),
				Label:  n.Label,
				Length: n.Length,
				Color:  n.Color,
				Leaf:   n.IsLeaf(),
				X:      p.X,
				Y:      p.Y,
			}
			if parent := n.Parent(); parent != nil {
				idx := parent.Index()
				jn.Parent = &idx
			}
			jt.Nodes = append(jt.Nodes, jn)
		}
		out.Trees = append(out.Trees, jt)
	}

	for _, c := range l.Conns {
		out.Connectors = append(out.Connectors, jsonConnector{
			From: c.From.Index(),
			To:   c.To.Index(),
			X:    c.X,
			Y1:   c.Y1,
			Y2:   c.Y2,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}
