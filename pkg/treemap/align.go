package treemap

import (
	"fmt"
	"math"
	"strings"
)

// Alignment selects the grid that produced rectangle edges are snapped to.
type Alignment int

const (
	// Precise leaves coordinates untouched.
	Precise Alignment = iota
	// HalfUnitSnap rounds edges to the nearest half unit, which keeps
	// strokes crisp on high-density displays.
	HalfUnitSnap
	// CoarseSnap rounds edges up to the next half or whole unit. Fractions
	// below one half always land on the half unit, never on the integer.
	CoarseSnap
)

var alignmentNames = [...]string{
	Precise:      "precise",
	HalfUnitSnap: "half",
	CoarseSnap:   "coarse",
}

// String returns the alignment's name as accepted by [ParseAlignment].
func (a Alignment) String() string {
	if a < 0 || int(a) >= len(alignmentNames) {
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
	return alignmentNames[a]
}

// ParseAlignment converts a name ("precise", "half" or "coarse") into an
// Alignment. The empty string selects Precise. Matching is case-insensitive
// and also accepts the long forms "halfunit", "subpixel" and "integral".
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "precise", "none":
		return Precise, nil
	case "half", "halfunit", "subpixel", "retina":
		return HalfUnitSnap, nil
	case "coarse", "integral":
		return CoarseSnap, nil
	}
	return Precise, fmt.Errorf("unknown alignment %q (must be precise, half, or coarse)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alignment) UnmarshalText(b []byte) error {
	v, err := ParseAlignment(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Align snaps the edges of r to the grid selected by mode.
//
// Only the origin and the far edges are snapped; width and height are
// recomputed from the snapped edges so that neighbouring cells keep sharing
// an edge after alignment.
func Align(r Rect, mode Alignment) Rect {
	if mode == Precise {
		return r
	}
	x := snap(r.X, mode)
	y := snap(r.Y, mode)
	return Rect{
		X:      x,
		Y:      y,
		Width:  snap(r.X+r.Width, mode) - x,
		Height: snap(r.Y+r.Height, mode) - y,
	}
}

// snap rounds a single coordinate according to mode.
func snap(v float64, mode Alignment) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	i := math.Floor(v)
	f := v - i

	switch mode {
	case HalfUnitSnap:
		switch {
		case f < 0.25:
			return i
		case f < 0.75:
			return i + 0.5
		default:
			return i + 1
		}
	case CoarseSnap:
		if f < 0.5 {
			return i + 0.5
		}
		return i + 1
	}
	return v
}
