package render

import (
	"math"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/render/styles"
)

// Option configures [Build].
type Option func(*builder)

type builder struct {
	palette Palette
	labels  bool
}

// WithPalette sets the palette used for items without their own color.
func WithPalette(p Palette) Option { return func(b *builder) { b.palette = p } }

// WithoutLabels leaves tile labels empty.
func WithoutLabels() Option { return func(b *builder) { b.labels = false } }

// Build converts the cells of l into tiles, in input order.
func Build(l dataset.Layout, opts ...Option) []styles.Tile {
	b := builder{palette: Categorical{}, labels: true}
	for _, opt := range opts {
		opt(&b)
	}

	maxHeat := l.MaxHeat()
	tiles := make([]styles.Tile, len(l.Cells))
	for i, c := range l.Cells {
		x, y := finiteOrZero(c.X), finiteOrZero(c.Y)
		w, h := extent(c.Width), extent(c.Height)
		v := DisplayValue(c.Heat, maxHeat)

		t := styles.Tile{
			Index: i,
			ID:    c.ID,
			X:     x, Y: y,
			W: w, H: h,
			CX: x + w/2, CY: y + h/2,
			Heat:  c.Heat,
			Value: v,
			Fill:  c.Color,
			URL:   c.URL,
		}
		if b.labels {
			t.Label = c.DisplayLabel()
		}
		if t.Fill == "" {
			t.Fill = b.palette.Color(i, v)
		}
		tiles[i] = t
	}
	return tiles
}

// DisplayValue returns heat relative to maxHeat, clamped to [0, 1].
// It is 0 when maxHeat is not positive or heat is not finite.
func DisplayValue(heat, maxHeat float64) float64 {
	if !(maxHeat > 0) || math.IsNaN(heat) || math.IsInf(heat, 0) {
		return 0
	}
	return math.Max(0, math.Min(1, heat/maxHeat))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func extent(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 1) {
		return 0
	}
	return v
}
