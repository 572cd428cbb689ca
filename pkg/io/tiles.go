package io

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/errors"
)

var (
	tilesLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#[0-9A-Fa-f]+`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\-]*`},
	})

	tilesParser = participle.MustBuild[tilesFile](
		participle.Lexer(tilesLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
)

type tilesFile struct {
	Entries []*tilesEntry `parser:"Newline* ( @@ Newline* )*"`
}

type tilesEntry struct {
	Title *string    `parser:"  'title' @String"`
	Tile  *tilesTile `parser:"| @@"`
}

type tilesTile struct {
	ID    string       `parser:"@( Ident | String )"`
	Heat  float64      `parser:"@Number"`
	Attrs []*tilesAttr `parser:"@@*"`
}

type tilesAttr struct {
	Label *string `parser:"  'label' @String"`
	Color *string `parser:"| 'color' @Color"`
	URL   *string `parser:"| 'url' @String"`
}

// ReadTiles decodes a dataset written in the tiles text format. Later
// attributes override earlier ones, and the last title line wins.
func ReadTiles(r io.Reader) (dataset.Dataset, error) {
	file, err := tilesParser.Parse("", r)
	if err != nil {
		return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse tiles")
	}

	var ds dataset.Dataset
	for _, e := range file.Entries {
		if e.Title != nil {
			ds.Title = *e.Title
			continue
		}
		it := dataset.Item{ID: e.Tile.ID, Heat: e.Tile.Heat}
		for _, a := range e.Tile.Attrs {
			switch {
			case a.Label != nil:
				it.Label = *a.Label
			case a.Color != nil:
				it.Color = *a.Color
			case a.URL != nil:
				it.URL = *a.URL
			}
		}
		ds.Items = append(ds.Items, it)
	}
	return ds, nil
}
