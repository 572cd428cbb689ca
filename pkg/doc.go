// Package pkg provides the core libraries for squaremap treemap layouts.
//
// # Overview
//
// Squaremap partitions a rectangle into one sub-rectangle per weighted item,
// with areas proportional to the weights and aspect ratios kept close to 1
// (the squarified treemap algorithm). The pkg directory is organized into
// four main areas:
//
//  1. [treemap] - The layout engine (normalize, pack rows, tessellate, align)
//  2. [dataset] - Item and layout documents with boundary validation
//  3. [render] - Tiles, palettes, styles and output sinks
//  4. [pipeline] - Orchestration (layout → render) shared by CLI and API
//
// # Architecture
//
// The typical data flow through squaremap:
//
//	Item file (JSON, CSV, TOML, .tiles)
//	         ↓
//	    [io] package (decode items)
//	         ↓
//	    [dataset] package (validate)
//	         ↓
//	    [treemap] package (compute rectangles)
//	         ↓
//	    [render] package (tiles + sinks)
//	         ↓
//	    SVG/PNG/PDF/JSON/MessagePack/text output
//
// # Quick Start
//
// Lay out any slice with accessor functions:
//
//	import "github.com/matzehuels/squaremap/pkg/treemap"
//
//	cells := treemap.LayoutFunc(positions,
//	    func(p Position) string { return p.Ticker },
//	    func(p Position) float64 { return p.Value },
//	    treemap.Rect{Width: 1200, Height: 800},
//	    treemap.WithAlignment(treemap.HalfUnitSnap),
//	)
//
// Or run the whole pipeline on a dataset:
//
//	ds, _ := io.ImportItems("portfolio.csv")
//	result, _ := pipeline.NewRunner(nil).Execute(ctx, ds, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//
// # Main Packages
//
// [treemap] - Pure, stateless layout. Items are placed greedily in input order;
// the result has the same length and order as the input.
//
// [dataset] - Items, layout documents and [dataset.ComputeLayout], which
// validates input before handing it to the engine.
//
// [io] - Item import (JSON, CSV, TOML, the .tiles DSL) and layout
// export (JSON, MessagePack).
//
// [render] - Tiles with display values and fills; [render/styles] for SVG
// styles and label fitting; [render/sink] for SVG, PNG, PDF and text output.
//
// [pipeline] - Defaults, validation and concurrent rendering used by the CLI
// and the HTTP API.
//
// [config] - TOML configuration file.
//
// [errors] - Coded errors for boundary validation.
//
// [observability] - Hooks for layout, render and HTTP metrics.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/treemap/...    # Layout engine
//	go test -run Example ./...   # Examples only
package pkg
