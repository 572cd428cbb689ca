package cli

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/squaremap/pkg/dataset"
)

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorGood   = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings, including the viewer title bar.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	// StyleHighlight renders values the user will want to copy.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorFaint)

	styleValue   = lipgloss.NewStyle().Foreground(colorText)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleGood    = lipgloss.NewStyle().Foreground(colorGood)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	styleBar     = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

const (
	markGood  = "✓"
	markWarn  = "!"
	markInfo  = "›"
	markArrow = "→"

	// shareBarWidth is the width of the bars printed by console.topCells.
	shareBarWidth = 20
)

// console prints human-oriented status lines. Machine output (artifacts
// written to stdout) bypasses it.
type console struct {
	w io.Writer
}

func (c *CLI) ui() console { return console{w: c.Out} }

func (u console) line(s string) { fmt.Fprintln(u.w, s) }

func (u console) success(format string, args ...any) {
	u.line(styleGood.Render(markGood) + " " + fmt.Sprintf(format, args...))
}

func (u console) warn(format string, args ...any) {
	u.line(styleWarn.Render(markWarn) + " " + styleWarn.Render(fmt.Sprintf(format, args...)))
}

func (u console) info(format string, args ...any) {
	u.line(StyleDim.Render(markInfo) + " " + fmt.Sprintf(format, args...))
}

func (u console) detail(format string, args ...any) {
	u.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (u console) file(path string) {
	u.line("  " + StyleDim.Render(markArrow) + " " + styleValue.Render(path))
}

func (u console) keyValue(key, value string) {
	u.line(styleKey.Render(key) + " " + styleValue.Render(value))
}

func (u console) nextStep(description, cmd string) {
	u.line("")
	u.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// layoutStats prints a one-line summary of l.
func (u console) layoutStats(l dataset.Layout, elapsed time.Duration) {
	parts := []string{
		fmt.Sprintf("%d cells", len(l.Cells)),
		fmt.Sprintf("worst aspect %.2f", l.WorstAspect()),
		fmt.Sprintf("%gx%g", l.Width, l.Height),
		elapsed.Round(time.Millisecond).String(),
	}
	u.line("  " + StyleDim.Render(strings.Join(parts, " · ")))

	if zero := l.ZeroArea(); len(zero) > 0 {
		u.warn("%d item(s) have no area: %s", len(zero), strings.Join(zero, ", "))
	}
}

// topCells prints the n largest cells by heat with a bar showing each
// cell's share of the total.
func (u console) topCells(l dataset.Layout, n int) {
	total := 0.0
	for _, c := range l.Cells {
		total += c.Heat
	}
	if n <= 0 || total <= 0 || math.IsInf(total, 0) {
		return
	}

	cells := make([]dataset.Cell, len(l.Cells))
	copy(cells, l.Cells)
	sort.SliceStable(cells, func(i, j int) bool { return cells[i].Heat > cells[j].Heat })
	cells = cells[:min(n, len(cells))]

	idWidth := 0
	for _, c := range cells {
		idWidth = max(idWidth, lipgloss.Width(c.ID))
	}
	for _, c := range cells {
		share := c.Heat / total
		filled := int(math.Round(share * shareBarWidth))
		bar := styleBar.Render(strings.Repeat("█", filled)) + StyleDim.Render(strings.Repeat("░", shareBarWidth-filled))
		id := c.ID + strings.Repeat(" ", idWidth-lipgloss.Width(c.ID))
		u.line(fmt.Sprintf("  %s %s %5.1f%%", styleValue.Render(id), bar, share*100))
	}
}
