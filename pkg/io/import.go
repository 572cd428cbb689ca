package io

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/errors"
)

// Format identifies an item input format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatTOML  Format = "toml"
	FormatTiles Format = "tiles"
)

// Formats lists the supported input formats.
var Formats = []Format{FormatJSON, FormatCSV, FormatTOML, FormatTiles}

// FormatFromPath returns the input format implied by the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".toml":
		return FormatTOML, nil
	case ".tiles":
		return FormatTiles, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer input format from %q (want .json, .csv, .toml or .tiles)", path)
}

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", s)
}

// ReadItems decodes a dataset from r in the given format.
func ReadItems(r io.Reader, f Format) (dataset.Dataset, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatCSV:
		return ReadCSV(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatTiles:
		return ReadTiles(r)
	}
	return dataset.Dataset{}, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", f)
}

// ImportItems reads the dataset at path, choosing the reader by extension.
func ImportItems(path string) (dataset.Dataset, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return dataset.Dataset{}, err
	}
	file, err := openFile(path)
	if err != nil {
		return dataset.Dataset{}, err
	}
	defer file.Close()

	ds, err := ReadItems(file, f)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ReadJSON decodes a dataset from r. The input is either an object with
// "title" and "items" or a bare array of items. ReadJSON does not close r.
func ReadJSON(r io.Reader) (dataset.Dataset, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}

	var ds dataset.Dataset
	dec := json.NewDecoder(br)
	if first == '[' {
		err = dec.Decode(&ds.Items)
	} else {
		err = dec.Decode(&ds)
	}
	if err != nil {
		return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return ds, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

// ReadCSV decodes a dataset from CSV. The first record is the header; the
// id and heat columns are required. Lines starting with # are skipped.
func ReadCSV(r io.Reader) (dataset.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return dataset.Dataset{}, errors.New(errors.ErrCodeInvalidInput, "csv: missing header row")
	}
	if err != nil {
		return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "csv header")
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, req := range []string{"id", "heat"} {
		if _, ok := col[req]; !ok {
			return dataset.Dataset{}, errors.New(errors.ErrCodeInvalidInput, "csv: missing %q column (have %s)", req, strings.Join(header, ", "))
		}
	}

	var ds dataset.Dataset
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "csv")
		}
		line, _ := cr.FieldPos(0)

		field := func(name string) string {
			if i, ok := col[name]; ok && i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}

		heat, err := strconv.ParseFloat(field("heat"), 64)
		if err != nil {
			return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "csv line %d: invalid heat %q", line, field("heat"))
		}
		ds.Items = append(ds.Items, dataset.Item{
			ID:    field("id"),
			Label: field("label"),
			Heat:  heat,
			Color: field("color"),
			URL:   field("url"),
		})
	}
	return ds, nil
}

// ReadTOML decodes a dataset from TOML:
//
//	title = "Big Tech"
//
//	[[item]]
//	id = "AAPL"
//	heat = 2950.5
//
// Unknown keys are rejected so that typos do not silently drop data.
func ReadTOML(r io.Reader) (dataset.Dataset, error) {
	var ds dataset.Dataset
	md, err := toml.NewDecoder(r).Decode(&ds)
	if err != nil {
		return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return dataset.Dataset{}, errors.New(errors.ErrCodeInvalidInput, "toml: unknown keys %s", strings.Join(keys, ", "))
	}
	return ds, nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if stderrors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
