// Package styles defines how treemap tiles are drawn in SVG.
package styles

import "bytes"

// Style defines the visual appearance of an SVG treemap.
// Implementations control how tiles, labels and the title bar are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderTile writes the SVG for a single tile shape.
	RenderTile(buf *bytes.Buffer, t Tile)
	// RenderText writes the SVG for a tile's label.
	RenderText(buf *bytes.Buffer, t Tile)
	// RenderTitle writes the title bar spanning width.
	RenderTitle(buf *bytes.Buffer, title string, width float64)
}

// Tile contains all data needed to draw a single treemap cell.
type Tile struct {
	Index      int     // Position in the input order
	ID         string  // Item identifier
	Label      string  // Display text
	X, Y, W, H float64 // Position and dimensions, clamped to be finite and non-negative
	CX, CY     float64 // Center coordinates (for text)
	Heat       float64 // Raw item weight
	Value      float64 // Heat relative to the largest heat, in [0, 1]
	Fill       string  // Fill color as #rrggbb
	URL        string  // Optional link target
}

// Names lists the built-in style names.
var Names = []string{"simple", "heat"}

// ByName returns the built-in style with the given name.
func ByName(name string) (Style, bool) {
	switch name {
	case "", "simple":
		return Simple{}, true
	case "heat":
		return Heat{}, true
	}
	return nil, false
}
