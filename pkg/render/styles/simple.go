package styles

import (
	"bytes"
	"fmt"
)

const titleFontSize = 14.0

// Simple draws flat tiles separated by white gutters.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderTile(buf *bytes.Buffer, t Tile) {
	WrapURL(buf, t.URL, func() {
		fmt.Fprintf(buf, `  <rect id="tile-%s" class="tile" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#ffffff" stroke-width="1"><title>%s</title></rect>`+"\n",
			EscapeXML(t.ID), t.X, t.Y, t.W, t.H, t.Fill, EscapeXML(fmt.Sprintf("%s: %g", t.Label, t.Heat)))
	})
}

func (Simple) RenderText(buf *bytes.Buffer, t Tile) {
	renderLabel(buf, t, "")
}

func (Simple) RenderTitle(buf *bytes.Buffer, title string, width float64) {
	fmt.Fprintf(buf, `  <text class="title" x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="%.1f" font-weight="bold" fill="#1a1a1a">%s</text>`+"\n",
		labelPadding, TitleHeight-6, titleFontSize, EscapeXML(title))
}

// TitleHeight is the vertical space reserved above the tiles for a title.
const TitleHeight = 24.0

func renderLabel(buf *bytes.Buffer, t Tile, sub string) {
	if !FitsLabel(t) {
		return
	}
	rotated := ShouldRotate(t)
	size := FontSize(t)
	if rotated {
		size = FontSizeRotated(t)
	}
	label := TruncateLabel(t, rotated)

	transform := ""
	if rotated {
		transform = fmt.Sprintf(` transform="rotate(-90 %.2f %.2f)"`, t.CX, t.CY)
	}
	fmt.Fprintf(buf, `  <text class="tile-text" data-tile="%s" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="Helvetica, Arial, sans-serif" font-size="%.1f" fill="%s"%s>%s`,
		EscapeXML(t.ID), t.CX, t.CY, size, TextColor(t.Fill), transform, EscapeXML(label))
	if sub != "" && !rotated && t.H >= size*3 {
		fmt.Fprintf(buf, `<tspan x="%.2f" dy="%.1f" font-size="%.1f" opacity="0.8">%s</tspan>`,
			t.CX, size*1.2, max(fontSizeMin, size*0.6), EscapeXML(sub))
	}
	buf.WriteString("</text>\n")
}
