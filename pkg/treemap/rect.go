package treemap

import "math"

// Rect is an axis-aligned rectangle. Y grows downward, matching SVG and
// terminal coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// CenterX returns the horizontal center point.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center point.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// IsFinite reports whether all four components are finite numbers.
func (r Rect) IsFinite() bool {
	for _, v := range [...]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Contains reports whether o lies inside r, allowing each edge to overshoot
// by at most tol.
func (r Rect) Contains(o Rect, tol float64) bool {
	return o.X >= r.X-tol &&
		o.Y >= r.Y-tol &&
		o.Right() <= r.Right()+tol &&
		o.Bottom() <= r.Bottom()+tol
}

// Overlaps reports whether the interiors of r and o intersect by more than
// tol along both axes. Rectangles that merely share an edge do not overlap.
func (r Rect) Overlaps(o Rect, tol float64) bool {
	dx := math.Min(r.Right(), o.Right()) - math.Max(r.X, o.X)
	dy := math.Min(r.Bottom(), o.Bottom()) - math.Max(r.Y, o.Y)
	return dx > tol && dy > tol
}

// AspectRatio returns the ratio of the longer side to the shorter side of r.
// A square has ratio 1. Rectangles with a zero side have ratio +Inf.
func AspectRatio(r Rect) float64 {
	w, h := math.Abs(r.Width), math.Abs(r.Height)
	if w == 0 || h == 0 {
		return math.Inf(1)
	}
	return math.Max(w/h, h/w)
}

// WorstAspect returns the largest aspect ratio among the entries that have
// a positive area. It returns 0 when there is no such entry.
func WorstAspect[K comparable](entries []Entry[K]) float64 {
	worst := 0.0
	for _, e := range entries {
		if !(e.Area() > 0) {
			continue
		}
		worst = math.Max(worst, AspectRatio(e.Rect))
	}
	return worst
}
