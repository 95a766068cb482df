package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yzhernand/treedraw/pkg/layout"
	"github.com/yzhernand/treedraw/pkg/pipeline"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend != "svg" {
		t.Errorf("Backend = %q, want default svg", cfg.Backend)
	}
	if cfg.Layout.LeafSpacing != layout.DefaultLeafSpacing {
		t.Errorf("Layout not defaulted: %+v", cfg.Layout)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
font = "Courier"
backend = "eps"

[layout]
compact = true
leaf_spacing = 30
xstep = 15
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Font != "Courier" || cfg.Backend != "eps" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.Layout.Compact || cfg.Layout.LeafSpacing != 30 || cfg.Layout.XStep != 15 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	// Unset layout values keep their defaults
	if cfg.Layout.Top != layout.DefaultMargin {
		t.Errorf("Top = %v, want default", cfg.Layout.Top)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("fnot = \"typo\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestConfigApplyDoesNotOverrideFlags(t *testing.T) {
	cfg := DefaultCLIConfig()
	cfg.Font = "Courier"
	cfg.Backend = "eps"

	opts := pipeline.Options{Font: "Helvetica"}
	cfg.apply(&opts)

	if opts.Font != "Helvetica" {
		t.Errorf("Font = %q, config overrode an explicit flag", opts.Font)
	}
	if opts.Backend != "eps" {
		t.Errorf("Backend = %q, want config value eps", opts.Backend)
	}
	if opts.Layout != cfg.Layout {
		t.Error("Layout not filled from config")
	}
}
