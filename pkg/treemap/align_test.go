package treemap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapHalfUnit(t *testing.T) {
	cases := map[float64]float64{
		10.0:  10,
		10.1:  10,
		10.25: 10.5,
		10.3:  10.5,
		10.6:  10.5,
		10.75: 11,
		10.9:  11,
		-0.3:  -0.5,
	}
	for in, want := range cases {
		assert.Equal(t, want, snap(in, HalfUnitSnap), "snap(%v, half)", in)
	}
}

func TestSnapCoarse(t *testing.T) {
	cases := map[float64]float64{
		10.0: 10.5, // fractions below one half never land on the integer
		10.2: 10.5,
		10.3: 10.5,
		10.5: 11,
		10.9: 11,
		-0.3: 0,
	}
	for in, want := range cases {
		assert.Equal(t, want, snap(in, CoarseSnap), "snap(%v, coarse)", in)
	}
}

func TestSnapPassesNonFiniteThrough(t *testing.T) {
	assert.True(t, math.IsNaN(snap(math.NaN(), HalfUnitSnap)))
	assert.True(t, math.IsInf(snap(math.Inf(1), CoarseSnap), 1))
}

func TestAlignPreciseIsIdentity(t *testing.T) {
	r := Rect{X: 1.234, Y: 5.678, Width: 9.1011, Height: 12.1314}
	assert.Equal(t, r, Align(r, Precise))
}

func TestAlignRecomputesSizeFromEdges(t *testing.T) {
	r := Rect{X: 10.1, Y: 20.3, Width: 30.3, Height: 9.6}

	half := Align(r, HalfUnitSnap)
	assert.Equal(t, Rect{X: 10, Y: 20.5, Width: 30.5, Height: 9.5}, half)

	coarse := Align(r, CoarseSnap)
	assert.Equal(t, Rect{X: 10.5, Y: 20.5, Width: 30, Height: 9.5}, coarse)
}

func TestAlignKeepsNeighboursTiled(t *testing.T) {
	left := Rect{X: 0, Width: 33.3, Height: 10}
	right := Rect{X: 33.3, Width: 66.7, Height: 10}

	for _, mode := range []Alignment{HalfUnitSnap, CoarseSnap} {
		l, r := Align(left, mode), Align(right, mode)
		assert.Equal(t, l.Right(), r.X, "mode %s: shared edge must stay shared", mode)
	}
}

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in      string
		want    Alignment
		wantErr bool
	}{
		{"", Precise, false},
		{"precise", Precise, false},
		{"HALF", HalfUnitSnap, false},
		{"subpixel", HalfUnitSnap, false},
		{"coarse", CoarseSnap, false},
		{"integral", CoarseSnap, false},
		{"pixel", Precise, true},
	}
	for _, tt := range tests {
		got, err := ParseAlignment(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseAlignment(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseAlignment(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseAlignment(%q)", tt.in)
	}
}

func TestAlignmentTextRoundTrip(t *testing.T) {
	for _, a := range []Alignment{Precise, HalfUnitSnap, CoarseSnap} {
		text, err := a.MarshalText()
		require.NoError(t, err)

		var back Alignment
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, a, back)
	}
	assert.Equal(t, "Alignment(7)", Alignment(7).String())
}
