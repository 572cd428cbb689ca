package sink

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	canvasOptions
	scale float64
}

// WithPNGTileOptions passes options through to [render.Build].
func WithPNGTileOptions(opts ...render.Option) PNGOption {
	return func(r *pngRenderer) { r.tileOpts = opts }
}

// WithPNGTitle draws the layout title above the tiles.
func WithPNGTitle() PNGOption { return func(r *pngRenderer) { r.title = true } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the layout.
func RenderPNG(l dataset.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.scale > 0) {
		return nil, fmt.Errorf("png scale must be positive, got %g", r.scale)
	}

	c, err := drawCanvas(l, 1, r.canvasOptions)
	if err != nil {
		return nil, err
	}
	img := rasterizer.Draw(c, canvas.DPMM(r.scale), canvas.DefaultColorSpace)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
