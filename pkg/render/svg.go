package render

import (
	"bytes"
	"fmt"

	"github.com/yzhernand/treedraw/pkg/layout"
	"github.com/yzhernand/treedraw/pkg/tree"
)

// RenderSVG serializes a layout as a standalone SVG document. SVG's origin
// is top-left with y growing downward, so every y is flipped against the
// canvas height.
func RenderSVG(l *layout.Layout, opts ...Option) []byte {
	o := newOptions(opts...)
	s := BuildScene(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)

	fmt.Fprintf(&buf, "  <g fill=\"none\" stroke-width=\"%.1f\" stroke-linecap=\"square\">\n", o.lineWidth)
	for _, ln := range s.Lines {
		fmt.Fprintf(&buf, "    <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\"/>\n",
			ln.X1, s.Height-ln.Y1, ln.X2, s.Height-ln.Y2, svgColor(ln.Color))
	}
	buf.WriteString("  </g>\n")

	if len(s.Connectors) > 0 {
		grayF := float64(ConnectorGray) * 255
		gray := int(grayF)
		fmt.Fprintf(&buf, "  <g fill=\"none\" stroke=\"rgb(%d,%d,%d)\" stroke-width=\"%.1f\">\n",
			gray, gray, gray, o.lineWidth)
		for _, c := range s.Connectors {
			buf.WriteString("    <polyline points=\"")
			for i, p := range c.Pts {
				if i > 0 {
					buf.WriteByte(' ')
				}
				fmt.Fprintf(&buf, "%.2f,%.2f", p.X, s.Height-p.Y)
			}
			buf.WriteString("\"/>\n")
		}
		buf.WriteString("  </g>\n")
	}

	fmt.Fprintf(&buf, "  <g font-family=\"%s\" font-size=\"%.1f\">\n", o.fontFamily, o.fontSize)
	for _, lbl := range s.Labels {
		anchor := "start"
		if lbl.Anchor == AnchorEnd {
			anchor = "end"
		}
		// dy recenters the text vertically on the branch row.
		fmt.Fprintf(&buf, "    <text x=\"%.2f\" y=\"%.2f\" dy=\"0.35em\" text-anchor=\"%s\" fill=\"%s\">%s</text>\n",
			lbl.X, s.Height-lbl.Y, anchor, svgColor(lbl.Color), escapeXML(lbl.Text))
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func svgColor(c tree.Color) string {
	return fmt.Sprintf("rgb(%d,%d,%d)",
		int(c.R*255+0.5), int(c.G*255+0.5), int(c.B*255+0.5))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
