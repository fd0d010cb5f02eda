package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/pipeline"
	"github.com/koljapluemer/canvasgrid/pkg/render"
)

// layoutFlags holds the layout command's flags. Pipeline settings start
// from the config file and only changed flags override them.
type layoutFlags struct {
	output      string
	formats     string
	seed        uint64
	maxAttempts int
	noPurge     bool
	noCache     bool
	trace       bool
	copy        bool
}

// layoutCommand creates the layout command, the canvas to grid pipeline.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [file.canvas]",
		Short: "Lay out a JSON Canvas on a grid",
		Long: `Lay out a JSON Canvas on a grid.

Every node gets a letter id (a, b, ... z, aa, ...) and is placed on a cell
whose neighbours are all free; every edge is routed between the nodes'
attachment points. The grid grows whenever something does not fit, and
redundant rows and columns are purged at the end.

Outputs are written next to the input (or to -o) with one file per format.
Layouts are cached, so repeated runs with the same seed are instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.layoutOptions(cmd, flags)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s), comma-separated: txt, flow, json, yaml, html, png, dot, svg, canvas")
	cmd.Flags().Uint64Var(&flags.seed, "seed", pipeline.DefaultSeed, "random seed for node order and placement")
	cmd.Flags().IntVar(&flags.maxAttempts, "max-attempts", pipeline.DefaultMaxAttempts, "grid growths allowed per node or edge")
	cmd.Flags().BoolVar(&flags.noPurge, "no-purge", false, "keep redundant rows and columns")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.trace, "trace", false, "log every grid step with a snapshot (implies --no-cache for the layout)")
	cmd.Flags().BoolVar(&flags.copy, "copy", false, "copy the flow rendering to the clipboard")
	cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// layoutOptions merges config values with explicitly set flags.
func (c *CLI) layoutOptions(cmd *cobra.Command, flags layoutFlags) pipeline.Options {
	opts := c.Config.PipelineOptions()
	opts.Formats = c.parseFormats(flags.formats)
	if cmd.Flags().Changed("seed") {
		opts.Seed = flags.seed
	}
	if cmd.Flags().Changed("max-attempts") {
		opts.MaxAttempts = flags.maxAttempts
	}
	if flags.noPurge {
		opts.SkipPurge = true
	}
	return opts
}

func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, flags layoutFlags) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return errs.Wrap(errs.ErrCodeFileNotFound, err, "read %s", input)
	}
	opts.Canvas = data
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Laying out grid...")
	if flags.trace {
		opts.Recorder = diagram.Tee(spinner, newLogRecorder(c.Logger))
	}
	spinner.Start()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Laid out %d nodes and %d edges", result.Stats.NodeCount, result.Stats.EdgeCount))

	written, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    flags.output,
	})
	if err != nil {
		return err
	}

	if flags.copy {
		if err := clipboard.WriteAll(result.Manager.Flow()); err != nil {
			printWarning("Clipboard unavailable: %v", err)
		} else {
			printDetail("Flow copied to clipboard")
		}
	}

	if len(written) == 0 {
		return nil
	}
	printSuccess("Layout complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.Height, result.Stats.Width, result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	printNewline()
	if i := slices.Index(opts.Formats, render.FormatJSON); i >= 0 {
		printNextStep("Inspect", "canvasgrid grid --flow "+written[i])
	} else {
		printNextStep("Keep the grid", "canvasgrid layout "+input+" -f json")
	}
	return nil
}
