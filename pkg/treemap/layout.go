package treemap

import "fmt"

// Item is anything that can be placed in a treemap: a comparable key that
// identifies it and a non-negative heat that sizes its cell.
type Item[K comparable] interface {
	Key() K
	Heat() float64
}

// Entry is one cell of a computed layout.
type Entry[K comparable] struct {
	ID K `json:"id"`
	Rect
	Heat float64 `json:"heat"`
}

// Weighted is a minimal [Item] for callers that have no item type of their own.
type Weighted[K comparable] struct {
	ID    K
	Value float64
}

// Key returns w.ID.
func (w Weighted[K]) Key() K { return w.ID }

// Heat returns w.Value.
func (w Weighted[K]) Heat() float64 { return w.Value }

// Option configures a layout call.
type Option func(*options)

type options struct {
	alignment Alignment
}

// WithAlignment selects the grid produced rectangles are snapped to.
// The default is [Precise].
func WithAlignment(a Alignment) Option {
	return func(o *options) { o.alignment = a }
}

// Layout computes one cell per item inside container. The result has the
// same length and order as items.
//
// The key type usually has to be given explicitly, with the item type
// inferred:
//
//	entries := treemap.Layout[string](items, container)
func Layout[K comparable, T Item[K]](items []T, container Rect, opts ...Option) []Entry[K] {
	return LayoutFunc(items,
		func(it T) K { return it.Key() },
		func(it T) float64 { return it.Heat() },
		container, opts...)
}

// LayoutFunc is like [Layout] for item types that do not implement [Item];
// key and heat extract the identity and weight of each item.
func LayoutFunc[T any, K comparable](items []T, key func(T) K, heat func(T) float64, container Rect, opts ...Option) []Entry[K] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	heats := make([]float64, len(items))
	for i, it := range items {
		heats[i] = heat(it)
	}
	rects := Tessellate(Normalize(heats), container, o.alignment)
	if len(rects) != len(items) {
		panic(fmt.Sprintf("treemap: tessellation produced %d cells for %d items", len(rects), len(items)))
	}

	entries := make([]Entry[K], len(items))
	for i, it := range items {
		entries[i] = Entry[K]{ID: key(it), Rect: rects[i], Heat: heats[i]}
	}
	return entries
}
