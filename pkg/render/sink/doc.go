// Package sink provides output format renderers for treemap layouts.
//
// # Overview
//
// A "sink" transforms a computed [dataset.Layout] into a final output format.
// This package provides renderers for:
//
//   - SVG: scalable vector graphics with hover highlighting
//   - PNG: raster output drawn with tdewolff/canvas
//   - PDF: vector output drawn with tdewolff/canvas
//   - Text: a colored character grid for terminals
//
// Every sink runs the layout through [render.Build] first, so degenerate
// geometry is clamped and colors are assigned the same way in every format.
//
// # SVG Output
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithStyle(styles.Heat{}),
//	    sink.WithTileOptions(render.WithPalette(render.DefaultHeatScale())),
//	    sink.WithTitle(),
//	)
//
// # Raster and PDF Output
//
// [RenderPNG] treats one layout unit as one pixel and multiplies by the
// scale set with [WithScale] (default 2). [RenderPDF] treats one layout unit
// as one CSS pixel (1/96 inch). Labels are drawn with the embedded Go
// Regular font, so no system fonts are needed.
//
// # Terminal Output
//
// [RenderText] maps the layout onto a grid of character cells. Tile edges
// are rounded to whole cells; because neighboring tiles share edges, the
// rounded tiles still cover the grid without gaps.
//
// [dataset.Layout]: github.com/matzehuels/squaremap/pkg/dataset.Layout
// [render.Build]: github.com/matzehuels/squaremap/pkg/render.Build
package sink
