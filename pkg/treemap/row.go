package treemap

import "math"

// packRow lays out one strip of the squarified treemap.
//
// The strip runs along the shorter side of container: a column at the left
// edge when the container is at least as wide as it is tall, a row at the top
// edge otherwise. Candidates are taken from areas strictly in order. The first
// is always accepted; each following candidate is accepted as long as it does
// not raise the worst aspect ratio of the strip. packRow returns the aligned
// rectangles of the accepted prefix and the container minus the strip.
func packRow(areas []float64, container Rect, mode Alignment) ([]Rect, Rect) {
	column := container.Width >= container.Height
	length := container.Width
	if column {
		length = container.Height
	}

	var sum float64
	worst := math.Inf(1)
	n := 0
	for n < len(areas) {
		ratio := worstAspect(areas[:n], sum, areas[n], length, worst)
		if n > 0 && ratio > worst {
			break
		}
		worst = ratio
		sum += areas[n]
		n++
	}

	thickness := stripThickness(sum, length)
	rects := make([]Rect, n)
	offset := 0.0
	for i, a := range areas[:n] {
		extent := 0.0
		if thickness != 0 {
			extent = a / thickness
		}
		var r Rect
		if column {
			r = Rect{X: container.X, Y: container.Y + offset, Width: thickness, Height: extent}
		} else {
			r = Rect{X: container.X + offset, Y: container.Y, Width: extent, Height: thickness}
		}
		rects[i] = Align(r, mode)
		offset += extent
	}

	remainder := container
	if column {
		remainder.X += thickness
		remainder.Width -= thickness
	} else {
		remainder.Y += thickness
		remainder.Height -= thickness
	}
	return rects, remainder
}

// worstAspect returns the worst aspect ratio of a strip made of accepted
// (whose areas sum to sum) plus proposed, laid against a side of the given
// length. Adding a member changes the strip thickness for every member, so
// all of them are re-evaluated. Members without a positive area have no shape
// and are ignored; an empty strip scores 0. The scan stops early once the
// running worst exceeds limit, since the caller rejects the candidate anyway.
func worstAspect(accepted []float64, sum, proposed, length, limit float64) float64 {
	thickness := stripThickness(sum+proposed, length)
	worst := cellAspect(proposed, thickness)
	for _, a := range accepted {
		if worst > limit {
			break
		}
		worst = math.Max(worst, cellAspect(a, thickness))
	}
	return worst
}

// cellAspect returns the aspect ratio of a cell of the given area inside a
// strip of the given thickness, or 0 when the area is not positive.
func cellAspect(area, thickness float64) float64 {
	if !(area > 0) {
		return 0
	}
	extent := area / thickness
	return math.Max(thickness/extent, extent/thickness)
}

// stripThickness returns the thickness of a strip holding total area along a
// side of the given length. An empty strip has no thickness, even when the
// side itself has zero length.
func stripThickness(total, length float64) float64 {
	if total == 0 {
		return 0
	}
	return total / length
}
