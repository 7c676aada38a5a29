package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/genogram/pkg/pipeline"
)

// renderCommand creates the render command for going directly from a family
// file to visual output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [family.toml]",
		Short: "Render a family file as a genogram",
		Long: `Render a family file as a genogram.

The render command runs the complete pipeline: it loads the family file,
computes the layout, and renders the requested output formats. It is
equivalent to running 'layout' followed by 'visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateOrientation(opts.Orientation); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", opts.Refresh, "reload the family file even if cached")

	// Layout flags
	cmd.Flags().StringVar(&opts.Orientation, "orientation", opts.Orientation, "generation direction: top-to-bottom (default), left-to-right")
	cmd.Flags().Float64Var(&opts.BoxWidth, "box-width", opts.BoxWidth, "person box width")
	cmd.Flags().Float64Var(&opts.BoxHeight, "box-height", opts.BoxHeight, "person box height")
	cmd.Flags().Float64Var(&opts.Spacing, "spacing", opts.Spacing, "spacing between boxes")
	cmd.Flags().Float64Var(&opts.RunSpacing, "run-spacing", opts.RunSpacing, "spacing between generations")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.Background, "background", opts.Background, "background color (default transparent)")
	cmd.Flags().BoolVar(&opts.HideLabels, "no-labels", opts.HideLabels, "hide person labels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG resolution multiplier")

	return cmd
}

// runRender executes the complete pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Source = input
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering genogram...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts:      result.Artifacts,
		formats:        opts.Formats,
		input:          input,
		output:         output,
		cacheHit:       result.CacheInfo.RenderHit,
		personCount:    result.Stats.PersonCount,
		connectorCount: result.Stats.ConnectorCount,
	})
}
