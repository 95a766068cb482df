package render

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/yzhernand/treedraw/pkg/layout"
)

// RenderPNG rasterizes a layout. The scale option multiplies the canvas
// dimensions; the default 2.0 produces a 2x resolution image suitable for
// high-DPI displays.
//
// Label text requires a font face (see [WithFace]); without one the image
// contains the tree geometry only.
func RenderPNG(l *layout.Layout, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	s := BuildScene(l)

	w, h := ceilInt(s.Width*o.scale), ceilInt(s.Height*o.scale)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("degenerate canvas %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(o.scale, o.scale)
	dc.SetLineWidth(o.lineWidth)

	// Raster origin is top-left; flip y against the canvas height.
	flip := func(y float64) float64 { return s.Height - y }

	for _, ln := range s.Lines {
		dc.SetRGB(ln.Color.R, ln.Color.G, ln.Color.B)
		dc.DrawLine(ln.X1, flip(ln.Y1), ln.X2, flip(ln.Y2))
		dc.Stroke()
	}

	dc.SetRGB(ConnectorGray, ConnectorGray, ConnectorGray)
	for _, c := range s.Connectors {
		for i := 1; i < len(c.Pts); i++ {
			dc.DrawLine(c.Pts[i-1].X, flip(c.Pts[i-1].Y), c.Pts[i].X, flip(c.Pts[i].Y))
		}
		dc.Stroke()
	}

	if o.face != nil {
		dc.SetFontFace(o.face)
		for _, lbl := range s.Labels {
			dc.SetRGB(lbl.Color.R, lbl.Color.G, lbl.Color.B)
			ax := 0.0
			if lbl.Anchor == AnchorEnd {
				ax = 1.0
			}
			dc.DrawStringAnchored(lbl.Text, lbl.X, flip(lbl.Y), ax, 0.35)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
