package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/yzhernand/treedraw/pkg/layout"
	"github.com/yzhernand/treedraw/pkg/pipeline"
)

// Config holds user preferences loaded from the TOML config file. Every
// field has a working default, so a missing config file is not an error.
type Config struct {
	Font      string  `toml:"font"`
	FontSize  float64 `toml:"font_size"`
	Backend   string  `toml:"backend"`
	Scale     float64 `toml:"scale"`
	LineWidth float64 `toml:"line_width"`

	Layout layout.Config `toml:"layout"`
}

// DefaultCLIConfig returns the configuration used when no config file exists.
func DefaultCLIConfig() *Config {
	return &Config{
		FontSize:  pipeline.DefaultFontSize,
		Backend:   string(pipeline.DefaultBackend),
		Scale:     pipeline.DefaultScale,
		LineWidth: pipeline.DefaultLineWidth,
		Layout:    layout.DefaultConfig(),
	}
}

// LoadConfig reads the config file at path, applying defaults for anything
// not set. A missing file yields the defaults; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultCLIConfig()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// apply copies config preferences onto pipeline options, leaving fields the
// user set on the command line untouched.
func (cfg *Config) apply(opts *pipeline.Options) {
	if opts.Font == "" {
		opts.Font = cfg.Font
	}
	if opts.FontSize == 0 {
		opts.FontSize = cfg.FontSize
	}
	if opts.Backend == "" {
		opts.Backend = cfg.Backend
	}
	if opts.Scale == 0 {
		opts.Scale = cfg.Scale
	}
	if opts.LineWidth == 0 {
		opts.LineWidth = cfg.LineWidth
	}
	if opts.Layout == (layout.Config{}) {
		opts.Layout = cfg.Layout
	}
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath()
			if _, err := os.Stat(path); err == nil {
				printInfo("Config file: %s", path)
			} else {
				printInfo("Config file: %s (not present, using defaults)", path)
			}
			printNewline()
			return toml.NewEncoder(os.Stdout).Encode(c.Config)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(configPath())
			return nil
		},
	})

	return cmd
}
