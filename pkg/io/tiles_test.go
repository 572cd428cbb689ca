package io

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/squaremap/pkg/errors"
)

func TestReadTiles(t *testing.T) {
	input := `
// market caps, billions
title "Big Tech"

AAPL 2950.5 label "Apple" color #a2aaad
MSFT 3.1e3   // trailing comment
"BRK.B" 880 url "https://berkshirehathaway.com"
`
	ds, err := ReadTiles(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTiles() error = %v", err)
	}
	if !reflect.DeepEqual(ds, wantCaps) {
		t.Errorf("ReadTiles() = %+v, want %+v", ds, wantCaps)
	}
}

func TestReadTilesEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ids   []string
		heats []float64
	}{
		{"empty", "", nil, nil},
		{"comments only", "// nothing\n// here\n", nil, nil},
		{"no trailing newline", "a 1", []string{"a"}, []float64{1}},
		{"id named title", "title 5\n", []string{"title"}, []float64{5}},
		{"quoted with spaces", `"North America" 12`, []string{"North America"}, []float64{12}},
		{"negative heat kept for validation", "a -3", []string{"a"}, []float64{-3}},
		{"fractional", "a .5\nb 0", []string{"a", "b"}, []float64{0.5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := ReadTiles(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadTiles() error = %v", err)
			}
			if len(ds.Items) != len(tt.ids) {
				t.Fatalf("got %d items, want %d", len(ds.Items), len(tt.ids))
			}
			for i, it := range ds.Items {
				if it.ID != tt.ids[i] || it.Heat != tt.heats[i] {
					t.Errorf("item %d = %s %v, want %s %v", i, it.ID, it.Heat, tt.ids[i], tt.heats[i])
				}
			}
		})
	}
}

func TestReadTilesAttributeOverride(t *testing.T) {
	ds, err := ReadTiles(strings.NewReader(`a 1 label "first" label "second" color #fff`))
	if err != nil {
		t.Fatal(err)
	}
	if got := ds.Items[0]; got.Label != "second" || got.Color != "#fff" {
		t.Errorf("item = %+v", got)
	}
}

func TestReadTilesErrors(t *testing.T) {
	for _, input := range []string{
		"a\n",
		"a one\n",
		`a 1 label unquoted`,
		`a 1 color red`,
		`title 'x'`,
	} {
		_, err := ReadTiles(strings.NewReader(input))
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ReadTiles(%q) error = %v, want INVALID_INPUT", input, err)
		}
	}
}
