package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/render"
	"github.com/matzehuels/squaremap/pkg/render/styles"
)

const tileInteractionCSS = `
    .tile { transition: opacity 0.2s ease; }
    svg.hovering .tile:not(.highlight) { opacity: 0.55; }
    .tile-text { pointer-events: none; }
    a { cursor: pointer; }`

const tileInteractionJS = `
    const root = document.currentScript.closest('svg');
    document.querySelectorAll('.tile').forEach(el => {
      el.addEventListener('mouseenter', () => { root.classList.add('hovering'); el.classList.add('highlight'); });
      el.addEventListener('mouseleave', () => { root.classList.remove('hovering'); el.classList.remove('highlight'); });
    });`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	tileOpts    []render.Option
	title       bool
	interactive bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithTitle() SVGOption               { return func(r *svgRenderer) { r.title = true } }
func WithInteraction() SVGOption         { return func(r *svgRenderer) { r.interactive = true } }
func WithTileOptions(opts ...render.Option) SVGOption {
	return func(r *svgRenderer) { r.tileOpts = opts }
}

// RenderSVG draws the layout as an SVG document. Tiles are drawn in input
// order, then labels on top.
func RenderSVG(l dataset.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	tiles := render.Build(l, r.tileOpts...)

	offset := 0.0
	if r.title && l.Title != "" {
		offset = styles.TitleHeight
	}
	totalHeight := l.Height + offset

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, totalHeight, l.Width, totalHeight)
	if l.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(l.Title))
	}

	r.style.RenderDefs(&buf)
	if offset > 0 {
		r.style.RenderTitle(&buf, l.Title, l.Width)
		fmt.Fprintf(&buf, `  <g transform="translate(0 %.1f)">`+"\n", offset)
	}
	renderContent(&buf, &r, tiles)
	if offset > 0 {
		buf.WriteString("  </g>\n")
	}
	if r.interactive {
		renderTileInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderContent(buf *bytes.Buffer, r *svgRenderer, tiles []styles.Tile) {
	for _, t := range tiles {
		if t.W == 0 || t.H == 0 {
			continue
		}
		r.style.RenderTile(buf, t)
	}
	for _, t := range tiles {
		if t.Label == "" {
			continue
		}
		r.style.RenderText(buf, t)
	}
}

func renderTileInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", tileInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", tileInteractionJS)
}
