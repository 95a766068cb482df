package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yzhernand/treedraw/pkg/pipeline"
)

// layoutCommand creates the layout command for computing tree geometry
// without rendering a picture.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		pairs   []string
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "layout <tree.json> [tree2.json]",
		Short: "Compute drawing geometry as JSON",
		Long: `Compute the drawing geometry for one or two trees and write it as JSON.

The output contains every node's coordinates, the leaf label column, and
for tanglegrams the connector line geometry. It is the same document the
'draw' command produces with --format json, intended for external tools
that do their own drawing.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd, args, output, noCache, pairs, compact)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringArrayVar(&pairs, "pair", nil, "tanglegram leaf pair as label1=label2 (repeatable)")
	cmd.Flags().BoolVar(&compact, "compact", false, "ignore branch lengths, one step per edge")

	return cmd
}

// runLayout executes the pipeline with the JSON backend and writes the
// geometry document.
func (c *CLI) runLayout(ctx context.Context, cmd *cobra.Command, args []string, output string, noCache bool, pairs []string, compact bool) error {
	opts := pipeline.Options{
		TreePath:        args[0],
		Backend:         "json",
		Correspondences: parsePairs(pairs),
		Logger:          c.Logger,
	}
	if len(args) == 2 {
		opts.Tree2Path = args[1]
	}
	opts.Layout = c.Config.Layout
	if cmd.Flags().Changed("compact") {
		opts.Layout.Compact = compact
	}
	c.Config.apply(&opts)
	opts.Backend = "json"

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Computed layout for %d leaves", result.Stats.LeafCount))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
		outputPath = base + ".layout.json"
	}

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(result.Artifact); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.LeafCount, len(result.Layout.Conns), result.CacheInfo.ArtifactHit)
	printNewline()
	printNextStep("Render", "treedraw draw "+strings.Join(args, " "))

	return nil
}
