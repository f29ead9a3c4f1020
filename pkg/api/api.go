package api

import (
	"fmt"
)

// Item is one candidate answer from the quiz answer space. Values maps a
// category name to the value this item exhibits for it; categories the item
// has no recorded value for are simply absent and contribute no coverage.
// Weights carries the optional population weight the item contributes to its
// value in a category.
type Item struct {
	Name    string
	Values  map[string]string
	Weights map[string]float64
}

func (i *Item) String() string {
	return i.Name
}

// Value returns the value the item exhibits for the given category and
// whether it has one.
func (i *Item) Value(category string) (string, bool) {
	v, ok := i.Values[category]
	return v, ok
}

// CategoryValue is a concrete value observed within a category, together
// with all items exhibiting it and their aggregate weight.
type CategoryValue struct {
	Category string
	Value    string
	Items    []*Item
	Weight   float64
}

func (v *CategoryValue) String() string {
	return fmt.Sprintf("%s=%s", v.Category, v.Value)
}

// Category is one coverage dimension of the answer space.
type Category struct {
	Name        string
	Values      []*CategoryValue
	TotalWeight float64
}

func (c *Category) Value(value string) *CategoryValue {
	for _, v := range c.Values {
		if v.Value == value {
			return v
		}
	}
	return nil
}

// Table is the immutable snapshot of the full answer space. It is built once
// by pkg/table and treated as read-only afterwards, so it can be shared
// between concurrent solve calls. Items and Categories are sorted by name,
// the values of every category are sorted as well.
type Table struct {
	Items      []*Item
	Categories []*Category
}

func (t *Table) Item(name string) *Item {
	for _, i := range t.Items {
		if i.Name == name {
			return i
		}
	}
	return nil
}

func (t *Table) Category(name string) *Category {
	for _, c := range t.Categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// CategoryCoverage reports how much of one category a selection covers.
// Fraction is CoveredWeight / TotalWeight. For categories without weights
// every value counts as weight 1, so the fraction degrades to covered
// values over all values.
type CategoryCoverage struct {
	Category      string
	CoveredWeight float64
	TotalWeight   float64
	Fraction      float64
	Threshold     float64
}

// Solution is the verified outcome of one solve: the selected item names in
// sorted order, the independently recomputed coverage per category and the
// objective cost the selection achieves. A Solution only exists for
// feasible, verified assignments; infeasibility surfaces as an error.
type Solution struct {
	Selected []string
	Coverage []CategoryCoverage
	Cost     int
}
