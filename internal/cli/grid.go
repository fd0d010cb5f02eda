package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
	pkgio "github.com/koljapluemer/canvasgrid/pkg/io"
)

// gridCommand prints a saved grid in one of its text forms.
func (c *CLI) gridCommand() *cobra.Command {
	var flow, plain bool

	cmd := &cobra.Command{
		Use:   "grid [layout.json|layout.yaml|grid.txt]",
		Short: "Print a grid as text with node and edge tables",
		Long: `Print a grid as text with node and edge tables.

The structural form shows the occupant id of every cell and "·" for empty
ones. --flow draws edges with box-drawing glyphs and arrow heads instead.
Plain .txt files hold only the structural form, so they print as is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.EqualFold(filepath.Ext(args[0]), ".txt") {
				return printTextGrid(args[0], flow)
			}
			m, err := pkgio.Import(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			printGrid(m, flow, plain)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flow, "flow", false, "draw edges with box-drawing glyphs")
	cmd.Flags().BoolVar(&plain, "plain", false, "print only the grid, without tables")

	return cmd
}

func printGrid(m *diagram.Manager, flow, plain bool) {
	text := m.Text()
	if flow {
		text = m.Flow()
	}
	fmt.Println(text)
	if plain {
		return
	}
	printNewline()
	h, w := m.Size()
	printKeyValue("Size", fmt.Sprintf("%d rows x %d columns", h, w))
	if len(m.Nodes()) > 0 {
		fmt.Println(nodeTable(m, nil))
	}
	if len(m.Edges()) > 0 {
		fmt.Println(edgeTable(m))
	}
}

func printTextGrid(path string, flow bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	g, err := grid.ParseText(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if flow {
		printWarning("Structural text carries no edge directions; printing it unchanged")
	}
	fmt.Println(g.Text())
	printNewline()
	printKeyValue("Size", fmt.Sprintf("%d rows x %d columns", g.Height(), g.Width()))
	return nil
}
