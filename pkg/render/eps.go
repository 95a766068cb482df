package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yzhernand/treedraw/pkg/layout"
)

// RenderEPS serializes a layout as Encapsulated PostScript. The layout
// already uses PostScript's bottom-left origin, so coordinates pass through
// unchanged. Right-anchored labels use stringwidth at interpretation time
// rather than the measured widths, keeping the file correct even when the
// viewer substitutes a font.
func RenderEPS(l *layout.Layout, opts ...Option) []byte {
	o := newOptions(opts...)
	s := BuildScene(l)

	var buf bytes.Buffer
	buf.WriteString("%!PS-Adobe-3.0 EPSF-3.0\n")
	fmt.Fprintf(&buf, "%%%%BoundingBox: 0 0 %d %d\n", ceilInt(s.Width), ceilInt(s.Height))
	buf.WriteString("%%EndComments\n")
	fmt.Fprintf(&buf, "/%s findfont %.1f scalefont setfont\n", o.fontFamily, o.fontSize)
	fmt.Fprintf(&buf, "%.2f setlinewidth\n", o.lineWidth)

	// Labels are recentered on the branch row; 0.35em matches the SVG
	// backend's baseline shift.
	baselineDrop := 0.35 * o.fontSize

	for _, ln := range s.Lines {
		fmt.Fprintf(&buf, "%.4f %.4f %.4f setrgbcolor\n", ln.Color.R, ln.Color.G, ln.Color.B)
		fmt.Fprintf(&buf, "newpath %.2f %.2f moveto %.2f %.2f lineto stroke\n",
			ln.X1, ln.Y1, ln.X2, ln.Y2)
	}

	if len(s.Connectors) > 0 {
		fmt.Fprintf(&buf, "%.4f setgray\n", ConnectorGray)
		for _, c := range s.Connectors {
			buf.WriteString("newpath")
			for i, p := range c.Pts {
				op := "lineto"
				if i == 0 {
					op = "moveto"
				}
				fmt.Fprintf(&buf, " %.2f %.2f %s", p.X, p.Y, op)
			}
			buf.WriteString(" stroke\n")
		}
	}

	for _, lbl := range s.Labels {
		fmt.Fprintf(&buf, "%.4f %.4f %.4f setrgbcolor\n", lbl.Color.R, lbl.Color.G, lbl.Color.B)
		fmt.Fprintf(&buf, "%.2f %.2f moveto ", lbl.X, lbl.Y-baselineDrop)
		if lbl.Anchor == AnchorEnd {
			fmt.Fprintf(&buf, "(%s) dup stringwidth pop neg 0 rmoveto show\n", escapePS(lbl.Text))
		} else {
			fmt.Fprintf(&buf, "(%s) show\n", escapePS(lbl.Text))
		}
	}

	buf.WriteString("showpage\n")
	buf.WriteString("%%EOF\n")
	return buf.Bytes()
}

func ceilInt(v float64) int {
	i := int(v)
	if float64(i) < v {
		i++
	}
	return i
}

var psEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

func escapePS(s string) string {
	return psEscaper.Replace(s)
}
