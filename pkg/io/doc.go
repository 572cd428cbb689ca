// Package io reads datasets and reads/writes layout documents.
//
// # Input Formats
//
// Items can be supplied in four formats, selected by file extension in
// [ImportItems] or explicitly with [ReadItems]:
//
//   - JSON (.json): {"title": "...", "items": [{"id": "a", "heat": 3}]}, or a
//     bare array of items
//   - CSV (.csv): a header row naming the columns; id and heat are required,
//     label, color and url are optional, in any order
//   - TOML (.toml): a top-level title and one [[item]] table per item
//   - Tiles (.tiles): a small line-oriented text format, see below
//
// Every item has an id and a heat, and optionally a label, a #rrggbb color
// and an http(s) url. Readers preserve item order and do not validate values;
// call [dataset.Dataset.Validate] (or [dataset.ComputeLayout]) afterwards.
//
// # Tiles Format
//
// One item per line: an identifier (bare or quoted), a heat, then optional
// attributes. A title line sets the dataset title. Line comments start with //.
//
//	// market caps, billions
//	title "Big Tech"
//	AAPL 2950.5 label "Apple" color #a2aaad
//	"BRK.B" 880 url "https://berkshirehathaway.com"
//
// # Layout Documents
//
// A computed [dataset.Layout] can be written as indented JSON or as
// MessagePack with [WriteLayoutJSON] and [WriteLayoutMsgpack], and read back
// with the matching Read functions. [ExportLayout] and [ImportLayout] pick the
// codec from the file extension (.json, .msgpack or .mp). Both codecs use the
// same field names, so a layout survives a JSON to MessagePack round trip.
//
// [dataset.Dataset.Validate]: github.com/matzehuels/squaremap/pkg/dataset.Dataset.Validate
// [dataset.ComputeLayout]: github.com/matzehuels/squaremap/pkg/dataset.ComputeLayout
// [dataset.Layout]: github.com/matzehuels/squaremap/pkg/dataset.Layout
package io
