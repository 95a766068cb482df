package layout

import "fmt"

// DefaultRatio is the default target aspect ratio: the reciprocal of the
// golden ratio.
const DefaultRatio = 0.6180339887498949

// Default values for margins and spacings, applied by [DefaultConfig].
const (
	DefaultMargin      = 10.0
	DefaultTipGap      = 5.0
	DefaultLeafSpacing = 20.0
	DefaultXStep       = 20.0
	DefaultColumn      = 60.0
)

// Config controls a layout invocation. All lengths share one unit system
// with the label measurer (pixels or points, as the renderer interprets
// them). The zero value is not usable; start from [DefaultConfig].
type Config struct {
	// Margins around the drawing.
	Top    float64 `json:"top" toml:"top"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
	Right  float64 `json:"right" toml:"right"`

	// TipGap is the space between a branch terminus and its label.
	TipGap float64 `json:"tip_gap" toml:"tip_gap"`

	// LeafSpacing is the vertical distance reserved between adjacent
	// leaves of the tree with the most leaves.
	LeafSpacing float64 `json:"leaf_spacing" toml:"leaf_spacing"`

	// XStep is the horizontal length of one compact-mode edge segment,
	// and of the root stub in either mode.
	XStep float64 `json:"xstep" toml:"xstep"`

	// Column is the horizontal gap reserved between the two label columns
	// of a tanglegram for the connector lines.
	Column float64 `json:"column" toml:"column"`

	// Compact ignores branch lengths and draws every edge as one XStep.
	// When false, edge length is proportional to branch length, scaled
	// toward Ratio.
	Compact bool `json:"compact" toml:"compact"`

	// Ratio is the target height:width aspect ratio for proportional
	// mode. Zero means DefaultRatio.
	Ratio float64 `json:"ratio" toml:"ratio"`

	// Colors enables the per-node color table in the layout result.
	Colors bool `json:"colors" toml:"colors"`

	// Bootstrap asks renderers to draw internal-node labels (support
	// values). The layout itself always positions internal nodes.
	Bootstrap bool `json:"bootstrap" toml:"bootstrap"`
}

// DefaultConfig returns a configuration with all constants at their
// defaults: 10-unit margins, 5-unit tip gap, 20-unit leaf spacing and xstep,
// a 60-unit tanglegram column, proportional mode at the golden-ratio aspect.
func DefaultConfig() Config {
	return Config{
		Top:         DefaultMargin,
		Bottom:      DefaultMargin,
		Left:        DefaultMargin,
		Right:       DefaultMargin,
		TipGap:      DefaultTipGap,
		LeafSpacing: DefaultLeafSpacing,
		XStep:       DefaultXStep,
		Column:      DefaultColumn,
		Ratio:       DefaultRatio,
	}
}

// Validate checks the configuration for values the engine cannot lay out.
// Margins and gaps may be zero but not negative; spacing and step must be
// positive so leaves and edges remain distinguishable. A zero Ratio is
// replaced by DefaultRatio at layout time and passes validation.
func (c Config) Validate() error {
	nonNegative := map[string]float64{
		"top":     c.Top,
		"bottom":  c.Bottom,
		"left":    c.Left,
		"right":   c.Right,
		"tip_gap": c.TipGap,
		"column":  c.Column,
		"ratio":   c.Ratio,
	}
	for _, name := range []string{"top", "bottom", "left", "right", "tip_gap", "column", "ratio"} {
		if nonNegative[name] < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, nonNegative[name])
		}
	}
	if c.LeafSpacing <= 0 {
		return fmt.Errorf("leaf_spacing must be positive, got %v", c.LeafSpacing)
	}
	if c.XStep <= 0 {
		return fmt.Errorf("xstep must be positive, got %v", c.XStep)
	}
	return nil
}

// ratio returns the effective aspect ratio.
func (c Config) ratio() float64 {
	if c.Ratio == 0 {
		return DefaultRatio
	}
	return c.Ratio
}
