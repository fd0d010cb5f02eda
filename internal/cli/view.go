package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/koljapluemer/canvasgrid/pkg/canvas"
	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	"github.com/koljapluemer/canvasgrid/pkg/layout"
)

var (
	viewBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	viewKindStyle   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	viewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand steps through the layout of a canvas one grid event at a time.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		seed    uint64
		noPurge bool
	)

	cmd := &cobra.Command{
		Use:   "view [file.canvas]",
		Short: "Step through a layout interactively",
		Long: `Step through a layout interactively.

Lays out the canvas while recording every placement, route, growth, clone
and purge, then opens a viewer showing the grid after each step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.PipelineOptions()
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			if noPurge {
				opts.SkipPurge = true
			}
			events, err := c.recordLayout(cmd.Context(), args[0], opts.LayoutOptions())
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newStepModel(args[0], events), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", layout.DefaultSeed, "random seed for node order and placement")
	cmd.Flags().BoolVar(&noPurge, "no-purge", false, "keep redundant rows and columns")
	return cmd
}

// recordLayout runs the layout with a history recorder attached.
func (c *CLI) recordLayout(ctx context.Context, path string, opts layout.Options) ([]diagram.Event, error) {
	doc, err := canvas.Import(path)
	if err != nil {
		return nil, err
	}
	var history diagram.History
	opts.Recorder = &history
	opts.Logger = c.Logger
	if _, err := layout.Build(ctx, doc, opts); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	if history.Len() == 0 {
		return nil, fmt.Errorf("%s has no nodes to lay out", path)
	}
	return history.Events(), nil
}

// stepModel is the bubbletea model of the layout viewer.
type stepModel struct {
	title    string
	events   []diagram.Event
	step     int
	viewport viewport.Model
	ready    bool
}

func newStepModel(title string, events []diagram.Event) stepModel {
	return stepModel{title: title, events: events, step: len(events) - 1}
}

func (m stepModel) Init() tea.Cmd {
	return nil
}

func (m stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "p":
			m = m.goTo(m.step - 1)
		case "right", "l", "n", " ":
			m = m.goTo(m.step + 1)
		case "home", "g":
			m = m.goTo(0)
		case "end", "G":
			m = m.goTo(len(m.events) - 1)
		}
	case tea.WindowSizeMsg:
		w, h := max(msg.Width-4, 1), max(msg.Height-7, 1)
		if !m.ready {
			m.viewport = viewport.New(w, h)
			m.ready = true
		} else {
			m.viewport.Width, m.viewport.Height = w, h
		}
		m.viewport.SetContent(m.events[m.step].Snapshot)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// goTo moves to step i, clamped to the recorded range.
func (m stepModel) goTo(i int) stepModel {
	m.step = min(max(i, 0), len(m.events)-1)
	if m.ready {
		m.viewport.SetContent(m.events[m.step].Snapshot)
		m.viewport.GotoTop()
	}
	return m
}

func (m stepModel) View() string {
	if !m.ready {
		return "loading..."
	}
	e := m.events[m.step]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  step %d/%d", m.step+1, len(m.events))))
	b.WriteString("\n")
	b.WriteString(viewKindStyle.Render(string(e.Kind)) + " " + e.Message)
	b.WriteString("\n")
	b.WriteString(viewBorderStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("←/→ step  home/end first/last  ↑/↓ scroll  q quit"))
	return b.String()
}
