package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	fontHeightRatio  = 0.45
	fontWidthRatio   = 0.85
	fontCharWidth    = 0.55
	fontSizeMin      = 8.0
	fontSizeMax      = 28.0
	rotateSizeDampen = 0.75
	labelPadding     = 4.0
)

func FontSize(t Tile) float64        { return fontSizeFor(t.W, t.H, labelLen(t)) }
func FontSizeRotated(t Tile) float64 { return fontSizeFor(t.H*rotateSizeDampen, t.W, labelLen(t)) }

func labelLen(t Tile) int { return utf8.RuneCountInString(t.Label) }

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// FitsLabel reports whether the tile is large enough to carry any text.
func FitsLabel(t Tile) bool {
	return t.W >= fontSizeMin*2+labelPadding && t.H >= fontSizeMin+labelPadding ||
		t.H >= fontSizeMin*2+labelPadding && t.W >= fontSizeMin+labelPadding
}

// ShouldRotate reports whether the label reads better running vertically.
func ShouldRotate(t Tile) bool {
	n := labelLen(t)
	horizSize := fontSizeFor(t.W, t.H, n)
	rotSize := fontSizeFor(t.H, t.W, n)
	if n > 10 {
		return rotSize*1.1 >= horizSize
	}
	return rotSize > horizSize
}

// TruncateLabel shortens the label so it fits the tile at its font size.
func TruncateLabel(t Tile, rotated bool) string {
	availW := t.W * fontWidthRatio
	fontSize := FontSize(t)
	if rotated {
		availW = t.H * fontWidthRatio
		fontSize = FontSizeRotated(t)
	}

	charWidth := fontSize * fontCharWidth
	maxChars := max(3, int(availW/charWidth))

	runes := []rune(t.Label)
	if len(runes) <= maxChars {
		return t.Label
	}
	return string(runes[:maxChars-2]) + ".."
}

// TextColor picks a dark or light text color for legibility on fill.
func TextColor(fill string) string {
	c, err := colorful.Hex(fill)
	if err != nil {
		return "#1a1a1a"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#1a1a1a"
	}
	return "#ffffff"
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func WrapURL(buf *bytes.Buffer, url string, fn func()) {
	if url != "" {
		fmt.Fprintf(buf, `  <a href="%s" target="_blank">`, EscapeXML(url))
	}
	fn()
	if url != "" {
		buf.WriteString("</a>")
	}
}
