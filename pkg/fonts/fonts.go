// Package fonts resolves fonts and measures label widths.
//
// The layout engine needs the rendered width of every leaf label before it
// can place connectors and size the canvas. This package provides two
// measurers: one backed by real TrueType metrics resolved from the system
// font directories, and an approximate fallback for environments without
// any usable font files.
package fonts

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DefaultName is the font looked up when none is configured.
const DefaultName = "DejaVuSans"

// DefaultSize is the point size used for labels when none is configured.
const DefaultSize = 12.0

// ErrNoFont is returned when no matching font file can be resolved.
var ErrNoFont = errors.New("no matching font found")

// Font wraps a parsed TrueType font at a fixed point size. It measures
// label widths for the layout engine and exposes a face for raster
// renderers. A Font is safe for concurrent use.
type Font struct {
	name string
	size float64
	ttf  *truetype.Font

	mu   sync.Mutex
	face font.Face
}

// Load resolves name against the system font directories, parses it, and
// returns a Font at the given point size. The lookup is fuzzy in the way
// font tooling usually is: "DejaVuSans" finds DejaVuSans.ttf wherever the
// platform keeps it.
func Load(name string, size float64) (*Font, error) {
	if name == "" {
		name = DefaultName
	}
	if size <= 0 {
		size = DefaultSize
	}

	path, err := findfont.Find(name + ".ttf")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNoFont, name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return &Font{name: name, size: size, ttf: ttf}, nil
}

// Name returns the configured font name.
func (f *Font) Name() string { return f.name }

// Size returns the point size.
func (f *Font) Size() float64 { return f.size }

// Width returns the advance width of label at the font's size, in points.
func (f *Font) Width(label string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	adv := font.MeasureString(f.lockedFace(), label)
	return fixedToFloat(adv)
}

// Face returns a font.Face for raster rendering. The face is shared with
// Width and must not be used concurrently with it; raster backends draw
// after layout is complete, so in practice the two never overlap.
func (f *Font) Face() font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lockedFace()
}

func (f *Font) lockedFace() font.Face {
	if f.face == nil {
		f.face = truetype.NewFace(f.ttf, &truetype.Options{Size: f.size})
	}
	return f.face
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// Approx measures labels without any font file: every rune counts a fixed
// fraction of the point size. The factor 0.6 tracks the average advance of
// common proportional fonts closely enough for canvas sizing. Vector
// backends that embed the label text as text (SVG, EPS) degrade gracefully
// with it; raster backends still need a real [Font].
type Approx struct {
	// Size is the point size; zero means DefaultSize.
	Size float64
}

// Width returns the approximate advance width of label in points.
func (a Approx) Width(label string) float64 {
	size := a.Size
	if size <= 0 {
		size = DefaultSize
	}
	n := 0
	for range label {
		n++
	}
	return float64(n) * size * 0.6
}

// Measurer reports rendered label widths. Both [Font] and [Approx]
// implement it, as does layout.Measurer's contract.
type Measurer interface {
	Width(label string) float64
}

// Resolve returns a measurer for the given font name and size: a real
// [Font] when one can be loaded, otherwise [Approx]. The boolean reports
// whether real metrics are in use.
func Resolve(name string, size float64) (Measurer, bool) {
	f, err := Load(name, size)
	if err != nil {
		return Approx{Size: size}, false
	}
	return f, true
}
