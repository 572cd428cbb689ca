// Package treemap partitions a rectangle into cells whose areas are
// proportional to per-item weights, using a squarified treemap layout.
//
// # Overview
//
// The engine is a single-level, stateless computation. Given an ordered list
// of items (a key plus a non-negative "heat") and a container rectangle, it
// returns one rectangle per item, in input order:
//
//	entries := treemap.Layout[string](items, treemap.Rect{Width: 800, Height: 600})
//
// The pipeline behind [Layout] is:
//
//  1. [Normalize] converts heats into fractions of their total.
//  2. Fractions are scaled by the container area into target cell areas.
//  3. [Tessellate] packs the areas into strips along the shorter side of the
//     remaining canvas, choosing each strip's members greedily so that the
//     worst aspect ratio in the strip does not grow.
//  4. Every produced rectangle is snapped by [Align] according to the
//     selected [Alignment].
//
// # Ordering
//
// Classic squarified treemaps sort items by decreasing size before packing.
// This package does not: items are packed strictly in input order, so a cell's
// position follows the caller's own ordering (for example, alphabetical or
// by sector) and stays put when weights change slightly.
//
// # Degenerate Input
//
// The engine does not validate its input. A zero or non-finite total heat
// yields NaN geometry, a zero-area container yields zero-size cells, and
// negative heats are undefined. Validate at the boundary (see the dataset and
// errors packages) and clamp geometry in the presentation layer.
//
// # Concurrency
//
// All functions are pure: they read their arguments and allocate their own
// working state. Any number of layouts may run concurrently.
package treemap
