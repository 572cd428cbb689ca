package dataset

import (
	"math"

	"github.com/matzehuels/squaremap/pkg/errors"
	"github.com/matzehuels/squaremap/pkg/treemap"
)

// Layout is the serialized result of laying out a dataset: one cell per
// item, in input order, inside a Width x Height frame at the origin.
type Layout struct {
	Title     string            `json:"title,omitempty"`
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Alignment treemap.Alignment `json:"alignment"`
	Cells     []Cell            `json:"cells"`
}

// Cell is a positioned item.
type Cell struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Heat   float64 `json:"heat"`
	Color  string  `json:"color,omitempty"`
	URL    string  `json:"url,omitempty"`
}

// Rect returns the cell geometry.
func (c Cell) Rect() treemap.Rect {
	return treemap.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

// DisplayLabel returns the label, falling back to the ID.
func (c Cell) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

// Frame returns the container the layout was computed for.
func (l Layout) Frame() treemap.Rect {
	return treemap.Rect{Width: l.Width, Height: l.Height}
}

// MaxHeat returns the largest finite heat among the cells, or 0.
func (l Layout) MaxHeat() float64 {
	var hi float64
	for _, c := range l.Cells {
		if !math.IsNaN(c.Heat) && !math.IsInf(c.Heat, 0) && c.Heat > hi {
			hi = c.Heat
		}
	}
	return hi
}

// WorstAspect returns the largest aspect ratio among cells with a positive area.
func (l Layout) WorstAspect() float64 {
	worst := 0.0
	for _, c := range l.Cells {
		r := c.Rect()
		if r.Area() > 0 {
			worst = math.Max(worst, treemap.AspectRatio(r))
		}
	}
	return worst
}

// ZeroArea returns the IDs of cells that received no area, in layout order.
// Zero-heat items end up here, as do all cells of a degenerate layout.
func (l Layout) ZeroArea() []string {
	var ids []string
	for _, c := range l.Cells {
		if !(c.Rect().Area() > 0) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Cell returns the cell with the given ID.
func (l Layout) Cell(id string) (Cell, bool) {
	for _, c := range l.Cells {
		if c.ID == id {
			return c, true
		}
	}
	return Cell{}, false
}

// ComputeLayout validates ds and lays it out inside a width x height frame.
func ComputeLayout(ds Dataset, width, height float64, mode treemap.Alignment) (Layout, error) {
	if err := errors.ValidateContainer(0, 0, width, height); err != nil {
		return Layout{}, err
	}
	if err := ds.Validate(); err != nil {
		return Layout{}, err
	}

	frame := treemap.Rect{Width: width, Height: height}
	entries := treemap.LayoutFunc(ds.Items,
		func(it Item) string { return it.ID },
		func(it Item) float64 { return it.Heat },
		frame, treemap.WithAlignment(mode))

	l := Layout{
		Title:     ds.Title,
		Width:     width,
		Height:    height,
		Alignment: mode,
		Cells:     make([]Cell, len(entries)),
	}
	for i, e := range entries {
		it := ds.Items[i]
		l.Cells[i] = Cell{
			ID:     e.ID,
			Label:  it.Label,
			X:      e.X,
			Y:      e.Y,
			Width:  e.Width,
			Height: e.Height,
			Heat:   e.Heat,
			Color:  it.Color,
			URL:    it.URL,
		}
	}
	return l, nil
}
