package styles

import (
	"bytes"
	"fmt"
)

// Heat draws rounded tiles with a soft sheen and prints each tile's share of
// the largest heat under its label.
type Heat struct{}

func (Heat) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <linearGradient id="sheen" x1="0" y1="0" x2="0" y2="1">
      <stop offset="0" stop-color="#ffffff" stop-opacity="0.18"/>
      <stop offset="1" stop-color="#000000" stop-opacity="0.12"/>
    </linearGradient>
  </defs>
`)
}

func (Heat) RenderTile(buf *bytes.Buffer, t Tile) {
	r := min(4, t.W/4, t.H/4)
	WrapURL(buf, t.URL, func() {
		fmt.Fprintf(buf, `  <g id="tile-%s" class="tile"><title>%s</title>`, EscapeXML(t.ID), EscapeXML(fmt.Sprintf("%s: %g", t.Label, t.Heat)))
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s" stroke="#1a1a1a" stroke-opacity="0.35" stroke-width="1"/>`,
			t.X, t.Y, t.W, t.H, r, t.Fill)
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="url(#sheen)"/></g>`+"\n",
			t.X, t.Y, t.W, t.H, r)
	})
}

func (Heat) RenderText(buf *bytes.Buffer, t Tile) {
	renderLabel(buf, t, fmt.Sprintf("%.0f%%", t.Value*100))
}

func (Heat) RenderTitle(buf *bytes.Buffer, title string, width float64) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.2f" height="%.2f" fill="#1a1a1a"/>`+"\n", width, TitleHeight)
	fmt.Fprintf(buf, `  <text class="title" x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="%.1f" font-weight="bold" fill="#ffffff">%s</text>`+"\n",
		labelPadding, TitleHeight-6, titleFontSize, EscapeXML(title))
}
