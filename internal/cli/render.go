package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/koljapluemer/canvasgrid/pkg/io"
	"github.com/koljapluemer/canvasgrid/pkg/pipeline"
)

type renderFlags struct {
	output   string
	formats  string
	cellSize int
	title    string
	noCache  bool
}

// renderCommand re-renders a serialized diagram without laying it out again.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [layout.json|layout.yaml]",
		Short: "Render a saved grid to other formats",
		Long: `Render a saved grid to other formats.

The input is a diagram written by 'layout -f json' or 'layout -f yaml'. The
grid is used as is, so hand edits to the file show up in the output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.PipelineOptions()
			opts.Formats = c.parseFormats(flags.formats)
			if cmd.Flags().Changed("cell-size") {
				opts.CellSize = flags.cellSize
			}
			if cmd.Flags().Changed("title") {
				opts.Title = flags.title
			}
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s), comma-separated")
	cmd.Flags().IntVar(&flags.cellSize, "cell-size", pipeline.DefaultCellSize, "pixels per grid cell (html, png, svg, canvas)")
	cmd.Flags().StringVar(&flags.title, "title", "", "page title (html)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	m, err := pkgio.Import(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	artifacts, _, cacheHit, err := runner.RenderWithCacheInfo(ctx, m, nil, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	written, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    flags.output,
	})
	if err != nil {
		return err
	}
	if len(written) == 0 {
		return nil
	}
	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	h, w := m.Size()
	printStats(h, w, len(m.Nodes()), len(m.Edges()), cacheHit)
	return nil
}
