package pipeline

import (
	"bytes"
	"fmt"

	pkgio "github.com/matzehuels/squaremap/pkg/io"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/render"
	"github.com/matzehuels/squaremap/pkg/render/sink"
	"github.com/matzehuels/squaremap/pkg/render/styles"
)

// RenderFormat renders a single output format. opts must already carry
// render defaults.
func RenderFormat(l dataset.Layout, format string, opts Options) ([]byte, error) {
	tileOpts, err := buildTileOptions(opts)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, buildSVGOptions(opts, tileOpts)...), nil
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale), sink.WithPNGTileOptions(tileOpts...)}
		if opts.ShowTitle {
			pngOpts = append(pngOpts, sink.WithPNGTitle())
		}
		return sink.RenderPNG(l, pngOpts...)
	case FormatPDF:
		pdfOpts := []sink.PDFOption{sink.WithPDFTileOptions(tileOpts...)}
		if opts.ShowTitle {
			pdfOpts = append(pdfOpts, sink.WithPDFTitle())
		}
		return sink.RenderPDF(l, pdfOpts...)
	case FormatJSON:
		var buf bytes.Buffer
		if err := pkgio.WriteLayoutJSON(l, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatMsgpack:
		var buf bytes.Buffer
		if err := pkgio.WriteLayoutMsgpack(l, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatText:
		textOpts := []sink.TextOption{
			sink.WithGridSize(opts.TextCols, opts.TextRows),
			sink.WithoutColor(),
			sink.WithTextTileOptions(tileOpts...),
		}
		if opts.ShowTitle {
			textOpts = append(textOpts, sink.WithTextTitle())
		}
		return sink.RenderText(l, textOpts...)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func buildTileOptions(opts Options) ([]render.Option, error) {
	palette, err := render.ParsePalette(opts.Palette)
	if err != nil {
		return nil, err
	}
	tileOpts := []render.Option{render.WithPalette(palette)}
	if opts.NoLabels {
		tileOpts = append(tileOpts, render.WithoutLabels())
	}
	return tileOpts, nil
}

func buildSVGOptions(opts Options, tileOpts []render.Option) []sink.SVGOption {
	style, _ := styles.ByName(opts.Style)
	svgOpts := []sink.SVGOption{
		sink.WithStyle(style),
		sink.WithTileOptions(tileOpts...),
	}
	if opts.ShowTitle {
		svgOpts = append(svgOpts, sink.WithTitle())
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	return svgOpts
}
