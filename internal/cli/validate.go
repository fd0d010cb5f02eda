package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/koljapluemer/canvasgrid/pkg/io"
)

// validateCommand checks a saved grid's structural integrity.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [layout.json|layout.yaml]",
		Short: "Check a saved grid for overlaps and broken edges",
		Long: `Check a saved grid for overlaps and broken edges.

Nodes must not overlap, every edge path must be a chain of adjacent free
cells, and both ends must sit next to their nodes on the recorded side.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := pkgio.Import(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			if err := m.Validate(); err != nil {
				printError("%s is invalid", args[0])
				return err
			}
			h, w := m.Size()
			printSuccess("%s is valid", args[0])
			printStats(h, w, len(m.Nodes()), len(m.Edges()), false)
			return nil
		},
	}
}

// purgeCommand removes redundant rows and columns from a saved grid.
func (c *CLI) purgeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "purge [layout.json|layout.yaml]",
		Short: "Remove redundant rows and columns from a saved grid",
		Long: `Remove redundant rows and columns from a saved grid.

A line is redundant when it is empty, or when it holds the same occupants
as its neighbour and removing it leaves every edge intact. The file is rewritten in place
unless -o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			m, err := pkgio.Import(input)
			if err != nil {
				return fmt.Errorf("load %s: %w", input, err)
			}
			h0, w0 := m.Size()
			cols := m.PurgeRedundantColumns()
			rows := m.PurgeRedundantRows()

			if output == "" {
				output = input
			}
			if err := pkgio.Export(m, output); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			h, w := m.Size()
			printSuccess("Purged %d rows and %d columns", rows, cols)
			printDetail("%dx%d → %dx%d", h0, w0, h, w)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: rewrite the input)")
	return cmd
}
