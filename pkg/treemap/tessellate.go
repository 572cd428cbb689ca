package treemap

// Tessellate partitions container into len(weights) rectangles whose areas
// are weights[i] times the container area, returned in the order of weights.
//
// Rows are packed against a shrinking canvas until every area is placed.
// The canvas is threaded through the loop by value, so the caller's container
// is never modified.
func Tessellate(weights []float64, container Rect, mode Alignment) []Rect {
	total := container.Width * container.Height
	areas := make([]float64, len(weights))
	for i, w := range weights {
		areas[i] = w * total
	}

	rects := make([]Rect, 0, len(areas))
	canvas := container
	for remaining := areas; len(remaining) > 0; {
		var row []Rect
		row, canvas = packRow(remaining, canvas, mode)
		rects = append(rects, row...)
		remaining = remaining[len(row):]
	}
	return rects
}
