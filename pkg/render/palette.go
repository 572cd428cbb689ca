package render

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/squaremap/pkg/errors"
)

// Palette chooses a fill color for the tile at input position i with
// display value v in [0, 1].
type Palette interface {
	Color(i int, v float64) string
}

var categoricalColors = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// Categorical cycles a fixed set of distinct colors by position.
type Categorical struct{}

func (Categorical) Color(i int, _ float64) string {
	if i < 0 {
		i = -i
	}
	return categoricalColors[i%len(categoricalColors)]
}

// HeatScale blends from Low to High in CIE Lab space by display value.
type HeatScale struct {
	Low, High colorful.Color
}

// DefaultHeatScale runs from a pale blue to a deep red.
func DefaultHeatScale() HeatScale {
	return HeatScale{
		Low:  colorful.Color{R: 0xde / 255.0, G: 0xeb / 255.0, B: 0xf7 / 255.0},
		High: colorful.Color{R: 0xcb / 255.0, G: 0x18 / 255.0, B: 0x1d / 255.0},
	}
}

// NewHeatScale builds a heat scale from two hex colors.
func NewHeatScale(low, high string) (HeatScale, error) {
	lo, err := colorful.Hex(low)
	if err != nil {
		return HeatScale{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "heat scale low color %q", low)
	}
	hi, err := colorful.Hex(high)
	if err != nil {
		return HeatScale{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "heat scale high color %q", high)
	}
	return HeatScale{Low: lo, High: hi}, nil
}

func (h HeatScale) Color(_ int, v float64) string {
	return h.Low.BlendLab(h.High, v).Clamped().Hex()
}

// PaletteNames lists the names accepted by [ParsePalette].
var PaletteNames = []string{"categorical", "heat"}

// ParsePalette returns the palette with the given name. "heat" may carry two
// custom colors, as in "heat:#ffffff:#ff0000".
func ParsePalette(name string) (Palette, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case name == "" || name == "categorical":
		return Categorical{}, nil
	case name == "heat":
		return DefaultHeatScale(), nil
	case strings.HasPrefix(name, "heat:"):
		parts := strings.Split(strings.TrimPrefix(name, "heat:"), ":")
		if len(parts) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidPalette, "heat palette %q wants two colors (heat:#low:#high)", name)
		}
		return NewHeatScale(parts[0], parts[1])
	}
	return nil, errors.New(errors.ErrCodeInvalidPalette, "unknown palette %q (must be categorical or heat)", name)
}
