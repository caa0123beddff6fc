package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IamSagarRai/optimesh/pkg/pipeline"
)

// renderCommand creates the render command for plotting a mesh without smoothing.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{Edges: true}

	cmd := &cobra.Command{
		Use:   "render [mesh.json|mesh.off]",
		Short: "Render a mesh quality plot without smoothing",
		Long: `Render a mesh quality plot without smoothing.

Cells are colored by their radius ratio quality on a fixed [0, 1] scale, so
plots of the same mesh before and after smoothing are directly comparable.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseRenderFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, dot (comma-separated)")
	cmd.Flags().Float64Var(&opts.Size, "size", pipeline.DefaultSize, "figure edge length in inches (png/svg)")
	cmd.Flags().BoolVar(&opts.Edges, "edges", opts.Edges, "draw cell outlines")
	cmd.Flags().StringVar(&opts.Title, "title", "", "figure title")

	return cmd
}

// parseRenderFormats parses the --format flag, defaulting to png.
func parseRenderFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPNG}
	}
	return parseFormats(s)
}

// runRender loads the mesh and renders it to the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Input = input
	opts.Logger = c.Logger

	m, err := runner.Load(opts)
	if err != nil {
		return fmt.Errorf("load mesh %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, m, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}
	spinner.StopWithSuccess("Rendering complete")
	if err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	}); err != nil {
		return err
	}
	printStats(m.NumPoints(), m.NumCells(), cacheHit)

	return nil
}
