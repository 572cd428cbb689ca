package treemap_test

import (
	"fmt"

	"github.com/matzehuels/squaremap/pkg/treemap"
)

func ExampleLayout() {
	items := []treemap.Weighted[string]{
		{ID: "AAPL", Value: 50},
		{ID: "MSFT", Value: 30},
		{ID: "NVDA", Value: 20},
	}
	for _, e := range treemap.Layout[string](items, treemap.Rect{Width: 100, Height: 50}) {
		fmt.Printf("%s %.0f,%.0f %.0fx%.0f\n", e.ID, e.X, e.Y, e.Width, e.Height)
	}
	// Output:
	// AAPL 0,0 50x50
	// MSFT 50,0 30x50
	// NVDA 80,0 20x50
}

func ExampleAlign() {
	r := treemap.Rect{X: 10.1, Y: 20.3, Width: 30.3, Height: 9.6}
	fmt.Printf("%+v\n", treemap.Align(r, treemap.HalfUnitSnap))
	// Output:
	// {X:10 Y:20.5 Width:30.5 Height:9.5}
}

func ExampleTessellate() {
	weights := treemap.Normalize([]float64{6, 6, 4, 3, 2, 2, 1})
	rects := treemap.Tessellate(weights, treemap.Rect{Width: 600, Height: 400}, treemap.CoarseSnap)
	for _, r := range rects[:2] {
		fmt.Printf("%+v\n", r)
	}
	// Output:
	// {X:0.5 Y:0.5 Width:300 Height:200}
	// {X:0.5 Y:200.5 Width:300 Height:200}
}
