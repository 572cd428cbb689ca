// Package render turns a computed layout into drawable tiles.
//
// # Overview
//
// The layout engine returns raw geometry: cells may be zero-sized, and
// degenerate input (a zero total heat, an empty container) can even produce
// NaN coordinates. [Build] is the presentation boundary that makes such
// output safe to draw:
//
//   - non-finite or negative widths and heights become 0
//   - non-finite x and y become 0
//   - each tile gets a display value, heat divided by the largest heat
//     (0 when the largest heat is not positive)
//   - each tile gets a fill color: the item's own color when set, otherwise
//     one chosen by a [Palette]
//
// # Palettes
//
// [Categorical] cycles a fixed set of distinct colors by input position.
// [HeatScale] blends between two colors in CIE Lab space by display value,
// so larger items read as "hotter".
//
//	tiles := render.Build(layout, render.WithPalette(render.DefaultHeatScale()))
//
// # Subpackages
//
//   - [styles]: SVG tile, label and title drawing (simple, heat)
//   - [sink]: output formats (SVG, PNG, PDF, terminal text)
//
// [styles]: github.com/matzehuels/squaremap/pkg/render/styles
// [sink]: github.com/matzehuels/squaremap/pkg/render/sink
package render
