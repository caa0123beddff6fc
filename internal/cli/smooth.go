package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/IamSagarRai/optimesh/pkg/errors"
	"github.com/IamSagarRai/optimesh/pkg/pipeline"
)

// smoothCommand creates the smooth command, the main entry point of the CLI.
func (c *CLI) smoothCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		watch      bool
	)
	opts := pipeline.Options{
		Method:   c.Config.Smooth.Method,
		Tol:      c.Config.Smooth.Tol,
		MaxSteps: c.Config.Smooth.MaxSteps,
		Omega:    c.Config.Smooth.Omega,
		Edges:    true,
	}

	cmd := &cobra.Command{
		Use:   "smooth [mesh.json|mesh.off]",
		Short: "Smooth a triangular mesh",
		Long: `Smooth a triangular mesh with a relaxation method.

The smooth command reads a mesh from a JSON or OFF file, moves its interior
vertices until the method converges or the step limit is reached, and writes
the result in one or more output formats. Boundary vertices stay fixed.

Results are cached locally for faster subsequent runs.

Use 'methods' to list the available relaxation methods.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runSmooth(cmd.Context(), args[0], opts, output, noCache, watch)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached result exists")

	// Smooth flags
	cmd.Flags().StringVarP(&opts.Method, "method", "m", opts.Method, "relaxation method (see 'optimesh methods')")
	cmd.Flags().Float64VarP(&opts.Tol, "tol", "t", opts.Tol, "convergence tolerance on vertex displacement")
	cmd.Flags().IntVarP(&opts.MaxSteps, "max-steps", "n", opts.MaxSteps, "maximum number of relaxation steps")
	cmd.Flags().Float64Var(&opts.Omega, "omega", opts.Omega, "step relaxation factor")
	cmd.Flags().StringVar(&opts.StepFormat, "step-format", "", "per-step snapshot path template, e.g. steps/mesh%03d.vtk")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "show live progress while smoothing")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), off, vtk, png, svg, dot (comma-separated)")
	cmd.Flags().Float64Var(&opts.Size, "size", pipeline.DefaultSize, "figure edge length in inches (png/svg)")
	cmd.Flags().BoolVar(&opts.Edges, "edges", opts.Edges, "draw cell outlines (png/svg)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "figure title (png/svg)")

	return cmd
}

// runSmooth executes the pipeline and writes the outputs.
func (c *CLI) runSmooth(ctx context.Context, input string, opts pipeline.Options, output string, noCache, watch bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Input = input
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)

	var result *pipeline.Result
	if watch {
		result, err = runSmoothWithProgress(ctx, runner, opts)
	} else {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Smoothing with %s...", opts.Method))
		spinner.Start()
		result, err = runner.Execute(ctx, opts)
		spinner.Stop()
	}
	if err != nil {
		printError("%s", apperrors.UserMessage(err))
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	prog.done(fmt.Sprintf("Smoothed %d points", result.Mesh.NumPoints()))

	printSuccess("Smoothing complete")
	if result.Steps >= opts.MaxSteps && result.Residual > opts.Tol {
		printWarning("Stopped at the step limit before reaching tolerance")
	}
	printDetail("%d steps · residual %.3g · %s", result.Steps, result.Residual, opts.Method)
	printDetail("quality min %.4f %s %.4f · avg %.4f %s %.4f",
		result.Before.MinQuality, iconArrow, result.After.MinQuality,
		result.Before.AvgQuality, iconArrow, result.After.AvgQuality)

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		suffix:    "_smoothed",
	}); err != nil {
		return err
	}

	printStats(result.Mesh.NumPoints(), result.Mesh.NumCells(), result.CacheInfo.SmoothHit)
	printNewline()
	printNextStep("Inspect", "optimesh info "+artifactPath(basePath(output, input, "_smoothed"), opts.Formats[0], len(opts.Formats) == 1, output))

	return nil
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	suffix    string // appended to the derived base path when output is empty
}

// writeArtifacts writes each requested format to disk and prints the paths.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input, p.suffix)
	single := len(p.formats) == 1

	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("missing %s artifact", format)
		}

		path := artifactPath(base, format, single, p.output)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// artifactPath builds the output path for one format. A single format with an
// explicit output keeps that path verbatim; everything else derives
// base.<format>.
func artifactPath(base, format string, single bool, output string) string {
	if single && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return base + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input and appends suffix,
// so smoothing never overwrites its input.
func basePath(output, input, suffix string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
