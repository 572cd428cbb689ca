// Package dataset defines the items squaremap lays out and the layout
// document it produces.
//
// A [Dataset] is an ordered list of [Item] values. Order matters: the layout
// engine places items strictly in the order given, so callers that want the
// classic "largest first" look sort before calling [ComputeLayout].
//
// [Dataset.Validate] enforces the preconditions the engine itself does not
// check (non-empty input, unique IDs, finite non-negative heats, positive
// total). [ComputeLayout] validates, runs [treemap.LayoutFunc] and converts
// the result into a [Layout] document that can be serialized by package io
// and drawn by package render.
//
// [treemap.LayoutFunc]: github.com/matzehuels/squaremap/pkg/treemap.LayoutFunc
package dataset
