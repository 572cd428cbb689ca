package sink

import (
	"fmt"
	"math"
	"strings"

	"fortio.org/safecast"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/render"
	"github.com/matzehuels/squaremap/pkg/render/styles"
)

// plainShades fills tiles when color is disabled, cycling by input position.
var plainShades = []rune(" .:-=+*#%@")

// TextOption configures terminal rendering.
type TextOption func(*textRenderer)

type textRenderer struct {
	cols, rows int
	color      bool
	title      bool
	highlight  int
	tileOpts   []render.Option
}

// WithGridSize sets the output size in character cells (default 80x24).
func WithGridSize(cols, rows int) TextOption {
	return func(r *textRenderer) { r.cols, r.rows = cols, rows }
}

// WithoutColor renders shaded characters instead of colored backgrounds.
func WithoutColor() TextOption { return func(r *textRenderer) { r.color = false } }

// WithTextTitle prints the layout title on the first line.
func WithTextTitle() TextOption { return func(r *textRenderer) { r.title = true } }

// WithHighlight marks the tile at input position i.
func WithHighlight(i int) TextOption { return func(r *textRenderer) { r.highlight = i } }

// WithTextTileOptions passes options through to [render.Build].
func WithTextTileOptions(opts ...render.Option) TextOption {
	return func(r *textRenderer) { r.tileOpts = opts }
}

// Grid maps each character cell to the input position of the tile covering
// it, or -1.
type Grid struct {
	Cols, Rows int
	Owner      [][]int
	Tiles      []styles.Tile
	// Origin is the top-left cell of each tile, or (-1, -1) for tiles that
	// round away to nothing.
	Origin [][2]int
}

// BuildGrid rasterizes tiles onto a cols x rows grid. Tile edges are rounded
// to the nearest cell boundary.
func BuildGrid(l dataset.Layout, cols, rows int, opts ...render.Option) (Grid, error) {
	if cols <= 0 || rows <= 0 {
		return Grid{}, fmt.Errorf("grid size %dx%d must be positive", cols, rows)
	}
	g := Grid{
		Cols:  cols,
		Rows:  rows,
		Owner: make([][]int, rows),
		Tiles: render.Build(l, opts...),
	}
	for y := range g.Owner {
		g.Owner[y] = make([]int, cols)
		for x := range g.Owner[y] {
			g.Owner[y][x] = -1
		}
	}
	if !(l.Width > 0) || !(l.Height > 0) {
		return g, nil
	}

	sx, sy := float64(cols)/l.Width, float64(rows)/l.Height
	g.Origin = make([][2]int, len(g.Tiles))
	for i, t := range g.Tiles {
		x0, err := gridEdge(t.X*sx, cols)
		if err != nil {
			return Grid{}, err
		}
		x1, err := gridEdge((t.X+t.W)*sx, cols)
		if err != nil {
			return Grid{}, err
		}
		y0, err := gridEdge(t.Y*sy, rows)
		if err != nil {
			return Grid{}, err
		}
		y1, err := gridEdge((t.Y+t.H)*sy, rows)
		if err != nil {
			return Grid{}, err
		}

		g.Origin[i] = [2]int{-1, -1}
		if x1 <= x0 || y1 <= y0 {
			continue
		}
		g.Origin[i] = [2]int{x0, y0}
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				g.Owner[y][x] = i
			}
		}
	}
	return g, nil
}

func gridEdge(v float64, limit int) (int, error) {
	v = math.Max(0, math.Min(float64(limit), math.Round(v)))
	return safecast.Round[int](v)
}

// RenderText draws the layout as rows of colored character cells.
func RenderText(l dataset.Layout, opts ...TextOption) ([]byte, error) {
	r := textRenderer{cols: 80, rows: 24, color: true, highlight: -1}
	for _, opt := range opts {
		opt(&r)
	}

	rows := r.rows
	showTitle := r.title && l.Title != ""
	if showTitle {
		rows--
	}
	g, err := BuildGrid(l, r.cols, max(1, rows), r.tileOpts...)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	if showTitle {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render(truncateRunes(l.Title, r.cols)))
		sb.WriteByte('\n')
	}
	for y := range g.Rows {
		for x := 0; x < g.Cols; {
			owner := g.Owner[y][x]
			end := x + 1
			for end < g.Cols && g.Owner[y][end] == owner {
				end++
			}
			sb.WriteString(r.renderRun(g, owner, x, y, end-x))
			x = end
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

func (r *textRenderer) renderRun(g Grid, owner, x, y, n int) string {
	if owner < 0 {
		return strings.Repeat(" ", n)
	}
	t := g.Tiles[owner]

	fill := ' '
	if !r.color {
		fill = plainShades[owner%len(plainShades)]
	}
	text := []rune(strings.Repeat(string(fill), n))
	if origin := g.Origin[owner]; origin == [2]int{x, y} && t.Label != "" {
		copy(text, []rune(truncateRunes(t.Label, n)))
	}

	if !r.color {
		return string(text)
	}
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(t.Fill)).
		Foreground(lipgloss.Color(styles.TextColor(t.Fill)))
	if owner == r.highlight {
		style = style.Bold(true).Reverse(true)
	}
	return style.Render(string(text))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
