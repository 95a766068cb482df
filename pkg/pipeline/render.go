package pipeline

import (
	"github.com/yzhernand/treedraw/pkg/fonts"
	"github.com/yzhernand/treedraw/pkg/layout"
	"github.com/yzhernand/treedraw/pkg/render"
)

// renderArtifact runs the chosen backend over a computed layout. The font
// resolved for label measurement is reused for raster text, keeping the
// drawn labels consistent with the widths the layout reserved for them.
func renderArtifact(l *layout.Layout, opts Options) ([]byte, error) {
	backend, err := render.ParseBackend(opts.Backend)
	if err != nil {
		return nil, err
	}

	family := opts.Font
	if family == "" {
		family = fonts.DefaultName
	}
	ropts := []render.Option{
		render.WithFontFamily(family, opts.FontSize),
		render.WithScale(opts.Scale),
		render.WithLineWidth(opts.LineWidth),
	}
	if backend == render.BackendPNG {
		if f, err := fonts.Load(opts.Font, opts.FontSize); err == nil {
			ropts = append(ropts, render.WithFace(f.Face()))
		}
	}

	return render.Render(l, backend, ropts...)
}
