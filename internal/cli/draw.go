package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yzhernand/treedraw/pkg/pipeline"
	"github.com/yzhernand/treedraw/pkg/render"
)

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	output    string   // output file path (stdout if empty and not derivable)
	backend   string   // output backend: svg, eps, png, dot, json
	pairs     []string // tanglegram leaf pairs as "label1=label2"
	noCache   bool     // disable the artifact cache
	refresh   bool     // recompute even if cached
	force     bool     // overwrite existing output without asking
	font      string   // label font name
	fontSize  float64  // label point size
	scale     float64  // raster scale factor (png)
	lineWidth float64  // stroke width

	compact   bool    // ignore branch lengths
	ratio     float64 // target height:width aspect ratio
	spacing   float64 // vertical distance between adjacent leaves
	xstep     float64 // horizontal step per edge (compact mode)
	column    float64 // tanglegram connector column width
	colors    bool    // include per-node colors
	bootstrap bool    // draw internal node labels
}

// drawCommand creates the draw command, the main entry point for rendering
// one tree as a cladogram or two trees as a tanglegram.
func (c *CLI) drawCommand() *cobra.Command {
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "draw <tree.json> [tree2.json]",
		Short: "Draw a cladogram or tanglegram",
		Long: `Draw a phylogenetic tree as a cladogram, or two trees as a tanglegram.

With one input the tree is drawn left to right with leaf labels at the
branch tips. With two inputs the second tree is mirrored on the right and
corresponding leaves are joined by connector lines. By default leaves
correspond when their labels match; use --pair to add explicit pairs.

Branch lengths are drawn proportionally unless --compact is given, in
which case every edge is one fixed step. Results are cached locally for
faster re-rendering.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDraw(cmd.Context(), cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().StringVarP(&opts.backend, "format", "f", "", "output format: svg (default), eps, png, dot, json")
	cmd.Flags().StringArrayVar(&opts.pairs, "pair", nil, "tanglegram leaf pair as label1=label2 (repeatable)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached artifact exists")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite existing output without asking")

	cmd.Flags().StringVar(&opts.font, "font", "", "label font name")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "label point size")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "raster scale factor (png)")
	cmd.Flags().Float64Var(&opts.lineWidth, "line-width", 0, "stroke width")

	cmd.Flags().BoolVar(&opts.compact, "compact", false, "ignore branch lengths, one step per edge")
	cmd.Flags().Float64Var(&opts.ratio, "ratio", 0, "target height:width aspect ratio")
	cmd.Flags().Float64Var(&opts.spacing, "spacing", 0, "vertical distance between adjacent leaves")
	cmd.Flags().Float64Var(&opts.xstep, "xstep", 0, "horizontal step per edge in compact mode")
	cmd.Flags().Float64Var(&opts.column, "column", 0, "tanglegram connector column width")
	cmd.Flags().BoolVar(&opts.colors, "colors", false, "honor per-node colors from the input")
	cmd.Flags().BoolVar(&opts.bootstrap, "bootstrap", false, "draw internal node labels (support values)")

	return cmd
}

// buildOptions merges config file preferences and command-line flags into
// pipeline options. Flags the user set explicitly win over the config file.
func (c *CLI) buildOptions(cmd *cobra.Command, args []string, opts *drawOpts) pipeline.Options {
	popts := pipeline.Options{
		TreePath:        args[0],
		Refresh:         opts.refresh,
		Font:            opts.font,
		FontSize:        opts.fontSize,
		Backend:         opts.backend,
		Scale:           opts.scale,
		LineWidth:       opts.lineWidth,
		Correspondences: parsePairs(opts.pairs),
		Logger:          c.Logger,
	}
	if len(args) == 2 {
		popts.Tree2Path = args[1]
	}

	popts.Layout = c.Config.Layout
	flags := cmd.Flags()
	if flags.Changed("compact") {
		popts.Layout.Compact = opts.compact
	}
	if flags.Changed("ratio") {
		popts.Layout.Ratio = opts.ratio
	}
	if flags.Changed("spacing") {
		popts.Layout.LeafSpacing = opts.spacing
	}
	if flags.Changed("xstep") {
		popts.Layout.XStep = opts.xstep
	}
	if flags.Changed("column") {
		popts.Layout.Column = opts.column
	}
	if flags.Changed("colors") {
		popts.Layout.Colors = opts.colors
	}
	if flags.Changed("bootstrap") {
		popts.Layout.Bootstrap = opts.bootstrap
	}

	c.Config.apply(&popts)
	return popts
}

// runDraw executes the pipeline and writes the rendered artifact.
func (c *CLI) runDraw(ctx context.Context, cmd *cobra.Command, args []string, opts *drawOpts) error {
	popts := c.buildOptions(cmd, args, opts)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	outputPath, err := resolveOutput(opts.output, args[0], popts.Backend, opts.force)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Drawing tree...")
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Drawing failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(result.Artifact); err != nil {
		return err
	}

	kind := "cladogram"
	if result.Layout.IsTanglegram() {
		kind = "tanglegram"
	}
	printSuccess("Drew %s", kind)
	if outputPath != "" {
		printFile(outputPath)
	}
	printStats(result.Stats.LeafCount, len(result.Layout.Conns), result.CacheInfo.ArtifactHit)
	return nil
}

// parsePairs converts "label1=label2" flag values into label pairs.
// Malformed entries without "=" are dropped with a warning.
func parsePairs(raw []string) [][2]string {
	var pairs [][2]string
	for _, r := range raw {
		from, to, ok := strings.Cut(r, "=")
		if !ok || from == "" || to == "" {
			printWarning("ignoring malformed pair %q (want label1=label2)", r)
			continue
		}
		pairs = append(pairs, [2]string{from, to})
	}
	return pairs
}

// resolveOutput determines the output path and handles overwrite
// confirmation. An explicit "-" means stdout. With no explicit output the
// path is derived from the input file name and the backend extension.
func resolveOutput(output, input, backend string, force bool) (string, error) {
	if output == "-" {
		return "", nil
	}
	path := output
	if path == "" {
		b, err := render.ParseBackend(backend)
		if err != nil {
			return "", err
		}
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + b.Extension()
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			ok, err := confirmOverwrite(path)
			if err != nil {
				return "", err
			}
			if !ok {
				return "", fmt.Errorf("aborted: %s exists", path)
			}
		}
	}
	return path, nil
}

// nopCloser wraps an io.Writer with a no-op Close method, making os.Stdout
// usable as an io.WriteCloser.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout if empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
