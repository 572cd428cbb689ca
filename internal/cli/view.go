package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/pipeline"
	"github.com/matzehuels/squaremap/pkg/render"
	"github.com/matzehuels/squaremap/pkg/render/sink"
	"github.com/matzehuels/squaremap/pkg/treemap"
)

const (
	// cellAspect is the height/width ratio of a terminal character cell.
	cellAspect = 2.0

	// viewChrome is the number of lines used by the header and status bar.
	viewChrome = 2
)

var (
	viewKeyStyle  = lipgloss.NewStyle().Foreground(colorFaint)
	viewIDStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	viewInfoStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// viewCommand creates the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var inputFormat string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "view [items]",
		Short: "Explore a treemap in the terminal",
		Long: `Explore a treemap in the terminal.

The layout is recomputed whenever the terminal is resized. Use tab and
shift+tab (or the arrow keys) to move between items, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.resolveOptions(&opts); err != nil {
				return err
			}
			return c.runView(cmd.Context(), args[0], inputFormat, opts)
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input", "", "input format: "+formatList()+" (default: from extension)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "title (overrides the input's title)")
	cmd.Flags().StringVar(&opts.Alignment, "align", "", "edge alignment: precise (default), half, coarse")
	cmd.Flags().StringVar(&opts.Palette, "palette", "", "palette: categorical (default), heat, heat:#low:#high")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "omit tile labels")

	return cmd
}

func (c *CLI) runView(ctx context.Context, input, inputFormat string, opts pipeline.Options) error {
	ds, err := readDataset(input, inputFormat)
	if err != nil {
		return err
	}
	if opts.Title != "" {
		ds.Title = opts.Title
	}
	if err := ds.Validate(); err != nil {
		return err
	}
	if err := pipeline.ValidateAlignment(opts.Alignment); err != nil {
		return err
	}
	mode, _ := treemap.ParseAlignment(opts.Alignment)
	palette, err := render.ParsePalette(opts.Palette)
	if err != nil {
		return err
	}

	tileOpts := []render.Option{render.WithPalette(palette)}
	if opts.NoLabels {
		tileOpts = append(tileOpts, render.WithoutLabels())
	}

	m := newViewModel(ds, mode, tileOpts...)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}
	if fm, ok := final.(viewModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

// =============================================================================
// viewModel - Interactive treemap
// =============================================================================

// viewModel is the bubbletea model for the terminal treemap.
type viewModel struct {
	ds       dataset.Dataset
	mode     treemap.Alignment
	tileOpts []render.Option
	total    float64

	width, height int
	layout        dataset.Layout
	selected      int
	err           error
}

func newViewModel(ds dataset.Dataset, mode treemap.Alignment, tileOpts ...render.Option) viewModel {
	return viewModel{
		ds:       ds,
		mode:     mode,
		tileOpts: tileOpts,
		total:    ds.TotalHeat(),
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l", "down", "j":
			m.selected = (m.selected + 1) % len(m.ds.Items)
		case "shift+tab", "left", "h", "up", "k":
			m.selected = (m.selected - 1 + len(m.ds.Items)) % len(m.ds.Items)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if err := m.relayout(); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}
	return m, nil
}

// gridSize returns the character area available to the treemap.
func (m viewModel) gridSize() (cols, rows int) {
	return m.width, m.height - viewChrome
}

// relayout computes a layout sized to the terminal. Terminal cells are about
// twice as tall as wide, so the frame is stretched vertically to keep tiles
// visually square.
func (m *viewModel) relayout() error {
	cols, rows := m.gridSize()
	if cols < 1 || rows < 1 {
		m.layout = dataset.Layout{}
		return nil
	}
	l, err := dataset.ComputeLayout(m.ds, float64(cols), float64(rows)*cellAspect, m.mode)
	if err != nil {
		return err
	}
	m.layout = l
	return nil
}

func (m viewModel) View() string {
	cols, rows := m.gridSize()
	if len(m.layout.Cells) == 0 || cols < 1 || rows < 1 {
		return "loading…"
	}

	var b strings.Builder
	title := m.ds.Title
	if title == "" {
		title = appName
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")

	grid, err := sink.RenderText(m.layout,
		sink.WithGridSize(cols, rows),
		sink.WithHighlight(m.selected),
		sink.WithTextTileOptions(m.tileOpts...),
	)
	if err != nil {
		return err.Error()
	}
	b.Write(grid)
	b.WriteString(m.statusLine())
	return b.String()
}

// statusLine describes the selected item and lists the keys.
func (m viewModel) statusLine() string {
	cell := m.layout.Cells[m.selected]
	share := 0.0
	if m.total > 0 {
		share = cell.Heat / m.total * 100
	}

	parts := []string{viewIDStyle.Render(cell.ID)}
	if cell.Label != "" && cell.Label != cell.ID {
		parts = append(parts, viewInfoStyle.Render(cell.Label))
	}
	parts = append(parts,
		viewInfoStyle.Render(fmt.Sprintf("heat %g", cell.Heat)),
		viewInfoStyle.Render(fmt.Sprintf("%.1f%%", share)),
		viewKeyStyle.Render(fmt.Sprintf("[%d/%d]  tab next  shift+tab prev  q quit", m.selected+1, len(m.layout.Cells))),
	)
	return strings.Join(parts, "  ")
}
