package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/yzhernand/treedraw/pkg/layout"
	"github.com/yzhernand/treedraw/pkg/tree"
)

type fixedMeasurer float64

func (m fixedMeasurer) Width(string) float64 { return float64(m) }

func testLayout(t *testing.T) *layout.Layout {
	t.Helper()
	length := 2.0
	red := tree.Color{R: 1}
	root := &tree.Node{Children: []*tree.Node{
		{Children: []*tree.Node{
			{Label: "alpha", Color: &red},
			{Label: "beta"},
		}},
		{Label: "gamma", Length: &length},
	}}
	tr, err := tree.New(root)
	if err != nil {
		t.Fatalf("tree.New: %v", err)
	}
	cfg := layout.DefaultConfig()
	cfg.Colors = true
	l, err := layout.Cladogram(tr, fixedMeasurer(30), cfg)
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	return l
}

func testTanglegram(t *testing.T) *layout.Layout {
	t.Helper()
	build := func() *tree.Tree {
		tr, err := tree.New(&tree.Node{Children: []*tree.Node{
			{Label: "A"}, {Label: "B"},
		}})
		if err != nil {
			t.Fatalf("tree.New: %v", err)
		}
		return tr
	}
	l, err := layout.Tanglegram(build(), build(), fixedMeasurer(20), layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Tanglegram: %v", err)
	}
	return l
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		input   string
		want    Backend
		wantErr bool
	}{
		{"svg", BackendSVG, false},
		{"EPS", BackendEPS, false},
		{" png ", BackendPNG, false},
		{"dot", BackendDOT, false},
		{"json", BackendJSON, false},
		{"pdf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBackend(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBackend(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBackend(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildScene(t *testing.T) {
	l := testLayout(t)
	s := BuildScene(l)

	if s.Width != l.Width || s.Height != l.Height {
		t.Errorf("scene %vx%v, want %vx%v", s.Width, s.Height, l.Width, l.Height)
	}
	// One stub plus an elbow (two segments) per non-root node whose row
	// differs from its parent's; at minimum one segment per edge.
	if len(s.Lines) < 5 {
		t.Errorf("too few lines: %d", len(s.Lines))
	}
	var labels []string
	for _, lbl := range s.Labels {
		labels = append(labels, lbl.Text)
	}
	want := []string{"alpha", "beta", "gamma"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, labels[i], want[i])
		}
	}
	if s.Labels[0].Color != (tree.Color{R: 1}) {
		t.Errorf("colored label = %v", s.Labels[0].Color)
	}
}

func TestBuildSceneDeterministic(t *testing.T) {
	l := testTanglegram(t)
	s1 := BuildScene(l)
	s2 := BuildScene(l)
	if len(s1.Lines) != len(s2.Lines) || len(s1.Labels) != len(s2.Labels) {
		t.Fatal("scenes differ in size")
	}
	for i := range s1.Lines {
		if s1.Lines[i] != s2.Lines[i] {
			t.Fatalf("line %d differs", i)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	l := testLayout(t)
	svg := string(RenderSVG(l, WithFontFamily("DejaVuSans", 12)))

	if !strings.HasPrefix(svg, "<svg xmlns=") {
		t.Error("missing svg root element")
	}
	if !strings.Contains(svg, ">alpha</text>") {
		t.Error("missing leaf label")
	}
	if !strings.Contains(svg, `font-family="DejaVuSans"`) {
		t.Error("font option not applied")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("unterminated document")
	}
}

func TestRenderSVGTanglegramConnectors(t *testing.T) {
	svg := string(RenderSVG(testTanglegram(t)))
	if !strings.Contains(svg, "<polyline points=") {
		t.Error("missing connector polylines")
	}
	if !strings.Contains(svg, `stroke="rgb(127,127,127)"`) {
		t.Error("connectors not drawn in mid-gray")
	}
	if !strings.Contains(svg, `text-anchor="end"`) {
		t.Error("mirrored labels not right-anchored")
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	tr, err := tree.New(&tree.Node{Children: []*tree.Node{
		{Label: "a<b&c"}, {Label: "d"},
	}})
	if err != nil {
		t.Fatalf("tree.New: %v", err)
	}
	l, err := layout.Cladogram(tr, fixedMeasurer(10), layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	svg := string(RenderSVG(l))
	if strings.Contains(svg, "a<b&c") {
		t.Error("label not escaped")
	}
	if !strings.Contains(svg, "a&lt;b&amp;c") {
		t.Error("escaped label missing")
	}
}

func TestRenderEPS(t *testing.T) {
	eps := string(RenderEPS(testLayout(t)))

	if !strings.HasPrefix(eps, "%!PS-Adobe-3.0 EPSF-3.0\n") {
		t.Error("missing EPS header")
	}
	if !strings.Contains(eps, "%%BoundingBox: 0 0 ") {
		t.Error("missing bounding box")
	}
	if !strings.Contains(eps, "(alpha) show") {
		t.Error("missing leaf label")
	}
	if !strings.HasSuffix(eps, "%%EOF\n") {
		t.Error("unterminated document")
	}
}

func TestRenderEPSMirroredLabels(t *testing.T) {
	eps := string(RenderEPS(testTanglegram(t)))
	if !strings.Contains(eps, "stringwidth pop neg 0 rmoveto show") {
		t.Error("mirrored labels not right-anchored")
	}
	if !strings.Contains(eps, "setgray") {
		t.Error("connectors not drawn in gray")
	}
}

func TestRenderEPSEscapesParens(t *testing.T) {
	tr, err := tree.New(&tree.Node{Children: []*tree.Node{
		{Label: "x (1)"}, {Label: "y"},
	}})
	if err != nil {
		t.Fatalf("tree.New: %v", err)
	}
	l, err := layout.Cladogram(tr, fixedMeasurer(10), layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Cladogram: %v", err)
	}
	eps := string(RenderEPS(l))
	if !strings.Contains(eps, `(x \(1\)) show`) {
		t.Error("parentheses not escaped")
	}
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(testLayout(t), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderDOT(t *testing.T) {
	dot := RenderDOT(testTanglegram(t))

	if !strings.HasPrefix(dot, "digraph trees {\n") {
		t.Error("missing digraph header")
	}
	for _, want := range []string{"subgraph cluster_t0", "subgraph cluster_t1", `label="A"`, "style=dashed, color=gray"} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %q in DOT output", want)
		}
	}
}

func TestExportJSON(t *testing.T) {
	data, err := ExportJSON(testTanglegram(t))
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var out struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
		Trees  []struct {
			Mirrored bool `json:"mirrored"`
			Nodes    []struct {
				ID    int     `json:"id"`
				Label string  `json:"label"`
				Y     float64 `json:"y"`
			} `json:"nodes"`
		} `json:"trees"`
		Connectors []struct {
			From int `json:"from"`
			To   int `json:"to"`
		} `json:"connectors"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Trees) != 2 {
		t.Fatalf("trees = %d, want 2", len(out.Trees))
	}
	if !out.Trees[1].Mirrored {
		t.Error("second tree not marked mirrored")
	}
	if len(out.Connectors) != 2 {
		t.Errorf("connectors = %d, want 2", len(out.Connectors))
	}
	if out.Width <= 0 || out.Height <= 0 {
		t.Error("non-positive dimensions")
	}
}

func TestRenderDispatch(t *testing.T) {
	l := testLayout(t)
	for _, b := range Backends() {
		data, err := Render(l, b)
		if err != nil {
			t.Errorf("Render(%s): %v", b, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("Render(%s): empty output", b)
		}
	}

	if _, err := Render(l, Backend("pdf")); err == nil {
		t.Error("unknown backend: expected error")
	}
}
