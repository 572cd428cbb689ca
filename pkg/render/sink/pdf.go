package sink

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/matzehuels/squaremap/pkg/buildinfo"
	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/render"
)

// mmPerPx maps one layout unit to one CSS pixel.
const mmPerPx = 25.4 / 96

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	canvasOptions
}

// WithPDFTileOptions passes options through to [render.Build].
func WithPDFTileOptions(opts ...render.Option) PDFOption {
	return func(r *pdfRenderer) { r.tileOpts = opts }
}

// WithPDFTitle draws the layout title above the tiles.
func WithPDFTitle() PDFOption { return func(r *pdfRenderer) { r.title = true } }

// RenderPDF draws the layout as a single-page PDF.
func RenderPDF(l dataset.Layout, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	c, err := drawCanvas(l, mmPerPx, r.canvasOptions)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, c.W, c.H, nil)
	writer.SetInfo(l.Title, "", "treemap", "", "squaremap "+buildinfo.Get().Version)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
