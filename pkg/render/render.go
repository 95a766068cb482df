package render

import (
	"strings"

	"golang.org/x/image/font"

	apperrors "github.com/yzhernand/treedraw/pkg/errors"
	"github.com/yzhernand/treedraw/pkg/layout"
)

// Backend identifies an output format.
type Backend string

// Supported output backends.
const (
	BackendSVG  Backend = "svg"
	BackendEPS  Backend = "eps"
	BackendPNG  Backend = "png"
	BackendDOT  Backend = "dot"
	BackendJSON Backend = "json"
)

// Backends returns all supported backends in display order.
func Backends() []Backend {
	return []Backend{BackendSVG, BackendEPS, BackendPNG, BackendDOT, BackendJSON}
}

// ParseBackend resolves a user-supplied backend name, case-insensitively.
func ParseBackend(s string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Backends() {
		if b == known {
			return b, nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidBackend,
		"unknown backend %q (supported: svg, eps, png, dot, json)", s)
}

// ContentType returns the MIME type for a backend's output.
func (b Backend) ContentType() string {
	switch b {
	case BackendSVG:
		return "image/svg+xml"
	case BackendEPS:
		return "application/postscript"
	case BackendPNG:
		return "image/png"
	case BackendJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the conventional file extension, without the dot.
func (b Backend) Extension() string { return string(b) }

// Option configures a render invocation. Backends read only the options
// they understand; the rest are ignored.
type Option func(*options)

type options struct {
	fontFamily string
	fontSize   float64
	face       font.Face
	scale      float64
	lineWidth  float64
}

// WithFontFamily sets the font family name and point size used by the
// vector backends for label text.
func WithFontFamily(name string, size float64) Option {
	return func(o *options) { o.fontFamily = name; o.fontSize = size }
}

// WithFace supplies a rasterizable font face for the PNG backend. Without
// one, PNG output contains the tree geometry but no label text.
func WithFace(f font.Face) Option {
	return func(o *options) { o.face = f }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) Option {
	return func(o *options) { o.scale = s }
}

// WithLineWidth sets the stroke width for branches and connectors.
func WithLineWidth(w float64) Option {
	return func(o *options) { o.lineWidth = w }
}

func newOptions(opts ...Option) options {
	o := options{
		fontFamily: "Helvetica",
		fontSize:   12,
		scale:      2.0,
		lineWidth:  1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Render dispatches a layout to the named backend.
func Render(l *layout.Layout, b Backend, opts ...Option) ([]byte, error) {
	switch b {
	case BackendSVG:
		return RenderSVG(l, opts...), nil
	case BackendEPS:
		return RenderEPS(l, opts...), nil
	case BackendPNG:
		return RenderPNG(l, opts...)
	case BackendDOT:
		return []byte(RenderDOT(l)), nil
	case BackendJSON:
		return ExportJSON(l)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidBackend, "unknown backend %q", b)
	}
}
