package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/errors"
)

// WriteLayoutJSON encodes a layout as indented JSON and writes it to w.
// The output can be re-imported with [ReadLayoutJSON].
func WriteLayoutJSON(l dataset.Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadLayoutJSON decodes a layout written by [WriteLayoutJSON].
func ReadLayoutJSON(r io.Reader) (dataset.Layout, error) {
	var l dataset.Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return dataset.Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout json")
	}
	return l, nil
}

// WriteLayoutMsgpack encodes a layout as MessagePack using the JSON field names.
func WriteLayoutMsgpack(l dataset.Layout, w io.Writer) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadLayoutMsgpack decodes a layout written by [WriteLayoutMsgpack].
func ReadLayoutMsgpack(r io.Reader) (dataset.Layout, error) {
	var l dataset.Layout
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&l); err != nil {
		return dataset.Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout msgpack")
	}
	return l, nil
}

func isMsgpackPath(path string) (bool, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return false, nil
	case ".msgpack", ".mp":
		return true, nil
	}
	return false, errors.New(errors.ErrCodeInvalidFormat, "cannot infer layout format from %q (want .json, .msgpack or .mp)", path)
}

// ExportLayout writes a layout to path, choosing the codec by extension.
func ExportLayout(l dataset.Layout, path string) error {
	mp, err := isMsgpackPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if mp {
		return WriteLayoutMsgpack(l, f)
	}
	return WriteLayoutJSON(l, f)
}

// ImportLayout reads a layout from path, choosing the codec by extension.
func ImportLayout(path string) (dataset.Layout, error) {
	mp, err := isMsgpackPath(path)
	if err != nil {
		return dataset.Layout{}, err
	}
	f, err := openFile(path)
	if err != nil {
		return dataset.Layout{}, err
	}
	defer f.Close()
	if mp {
		return ReadLayoutMsgpack(f)
	}
	return ReadLayoutJSON(f)
}
