package sink

import (
	"fmt"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/render"
	"github.com/matzehuels/squaremap/pkg/render/styles"
)

const (
	mmPerPt       = 25.4 / 72
	tileGutter    = 1.0
	titleFontSize = 14.0
)

type canvasOptions struct {
	tileOpts []render.Option
	title    bool
}

// drawCanvas paints the layout onto a new canvas. unit converts layout units
// to canvas millimetres.
func drawCanvas(l dataset.Layout, unit float64, o canvasOptions) (*canvas.Canvas, error) {
	tiles := render.Build(l, o.tileOpts...)

	family := canvas.NewFontFamily("squaremap")
	if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	offset := 0.0
	if o.title && l.Title != "" {
		offset = styles.TitleHeight
	}

	c := canvas.New(l.Width*unit, (l.Height+offset)*unit)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	ctx.SetFillColor(canvas.White)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(c.W, c.H))

	if offset > 0 {
		face := family.Face(titleFontSize*unit/mmPerPt, canvas.Hex("#1a1a1a"), canvas.FontRegular, canvas.FontNormal)
		ctx.DrawText(4*unit, (styles.TitleHeight-6)*unit, canvas.NewTextLine(face, l.Title, canvas.Left))
	}

	ctx.SetStrokeColor(canvas.White)
	ctx.SetStrokeWidth(tileGutter * unit)
	for _, t := range tiles {
		if t.W == 0 || t.H == 0 {
			continue
		}
		ctx.SetFillColor(canvas.Hex(t.Fill))
		ctx.DrawPath(t.X*unit, (t.Y+offset)*unit, canvas.Rectangle(t.W*unit, t.H*unit))
	}

	for _, t := range tiles {
		if t.Label == "" || !styles.FitsLabel(t) {
			continue
		}
		size := styles.FontSize(t)
		face := family.Face(size*unit/mmPerPt, canvas.Hex(styles.TextColor(t.Fill)), canvas.FontRegular, canvas.FontNormal)
		line := canvas.NewTextLine(face, styles.TruncateLabel(t, false), canvas.Center)
		baseline := (t.CY+offset)*unit + face.Metrics().CapHeight/2
		ctx.DrawText(t.CX*unit, baseline, line)
	}
	return c, nil
}
