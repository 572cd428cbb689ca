package dataset

import (
	"math"

	"github.com/matzehuels/squaremap/pkg/errors"
)

// Item is a single weighted entry to be laid out.
type Item struct {
	ID    string  `json:"id" toml:"id"`
	Label string  `json:"label,omitempty" toml:"label"`
	Heat  float64 `json:"heat" toml:"heat"`
	Color string  `json:"color,omitempty" toml:"color"`
	URL   string  `json:"url,omitempty" toml:"url"`
}

// DisplayLabel returns the label, falling back to the ID.
func (it Item) DisplayLabel() string {
	if it.Label != "" {
		return it.Label
	}
	return it.ID
}

// Dataset is an ordered collection of items with an optional title.
type Dataset struct {
	Title string `json:"title,omitempty" toml:"title"`
	Items []Item `json:"items" toml:"item"`
}

// Len returns the number of items.
func (d Dataset) Len() int { return len(d.Items) }

// TotalHeat returns the sum of all item heats.
func (d Dataset) TotalHeat() float64 {
	var total float64
	for _, it := range d.Items {
		total += it.Heat
	}
	return total
}

// Validate checks the dataset before layout. It returns the first problem
// found as a coded error from package errors.
func (d Dataset) Validate() error {
	if len(d.Items) == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "dataset has no items")
	}

	seen := make(map[string]int, len(d.Items))
	for i, it := range d.Items {
		if err := errors.ValidateID(it.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidID, err, "item %d", i+1)
		}
		if prev, ok := seen[it.ID]; ok {
			return errors.New(errors.ErrCodeDuplicateID, "id appears at positions %d and %d", prev+1, i+1).WithItem(it.ID)
		}
		seen[it.ID] = i

		if err := errors.ValidateHeat(it.ID, it.Heat); err != nil {
			return err
		}
		if err := errors.ValidateColor(it.Color); err != nil {
			return errors.Attribute(err, it.ID)
		}
		if err := errors.ValidateURL(it.URL); err != nil {
			return errors.Attribute(err, it.ID)
		}
	}

	total := d.TotalHeat()
	if math.IsInf(total, 0) {
		return errors.New(errors.ErrCodeNonFiniteHeat, "total heat overflows")
	}
	if total <= 0 {
		return errors.New(errors.ErrCodeZeroTotal, "total heat of %d items is zero", len(d.Items))
	}
	return nil
}
