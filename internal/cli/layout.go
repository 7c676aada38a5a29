package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/genogram/pkg/diagram"
	"github.com/matzehuels/genogram/pkg/pipeline"
)

// layoutCommand creates the layout command for computing genogram layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [family.toml]",
		Short: "Compute a genogram layout from a family file",
		Long: `Compute a genogram layout from a family file.

The layout command takes a family file (TOML or JSON) and computes box
positions and connector geometry for every person. The output is a
layout.json file (same format as 'render -f json') that can be rendered
to SVG/PNG/PDF using the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().StringVar(&opts.Orientation, "orientation", opts.Orientation, "generation direction: top-to-bottom (default), left-to-right")
	cmd.Flags().Float64Var(&opts.BoxWidth, "box-width", opts.BoxWidth, "person box width")
	cmd.Flags().Float64Var(&opts.BoxHeight, "box-height", opts.BoxHeight, "person box height")
	cmd.Flags().Float64Var(&opts.Spacing, "spacing", opts.Spacing, "spacing between boxes")
	cmd.Flags().Float64Var(&opts.RunSpacing, "run-spacing", opts.RunSpacing, "spacing between generations")

	return cmd
}

// runLayout loads the family file, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if err := pipeline.ValidateOrientation(opts.Orientation); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Source = input
	opts.Logger = c.Logger

	records, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load family %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Orientation))
	spinner.Start()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, records, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := diagram.WriteFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(records), len(layout.Connectors), cacheHit)
	printNewline()
	printNextStep("Render", "genogram visualize "+outputPath)

	return nil
}
