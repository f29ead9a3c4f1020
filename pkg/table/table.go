package table

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/quizmin/quizmin/pkg/api"
)

// MalformedInputError reports a row or header which can not be turned into
// a coverage table.
type MalformedInputError struct {
	Item   string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("malformed input: %s", e.Reason)
	}
	return fmt.Sprintf("malformed input for item %s: %s", e.Item, e.Reason)
}

// DuplicateItemError reports an identifier appearing on more than one row.
// A silent merge would corrupt cardinality counts, so this is fatal.
type DuplicateItemError struct {
	Item string
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("duplicate item %s in input", e.Item)
}

// Build validates the raw rows and assembles the immutable coverage table.
// Items, categories and category values come out in sorted order so that
// everything downstream iterates deterministically.
func Build(rows []Row) (*api.Table, error) {
	if len(rows) == 0 {
		return nil, &MalformedInputError{Reason: "input contains no rows"}
	}

	items := map[string]*api.Item{}
	for _, row := range rows {
		if row.Name == "" {
			return nil, &MalformedInputError{Reason: "row is missing an item identifier"}
		}
		if _, exists := items[row.Name]; exists {
			return nil, &DuplicateItemError{Item: row.Name}
		}
		if len(row.Values) == 0 && len(row.Weights) == 0 {
			logrus.Debugf("Item %s exhibits no category values.", row.Name)
		}
		for category, weight := range row.Weights {
			if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
				return nil, &MalformedInputError{
					Item:   row.Name,
					Reason: fmt.Sprintf("weight %v for category %s is not a non-negative finite number", weight, category),
				}
			}
			if _, ok := row.Values[category]; !ok {
				return nil, &MalformedInputError{
					Item:   row.Name,
					Reason: fmt.Sprintf("weight declared for category %s without a value", category),
				}
			}
		}
		item := &api.Item{
			Name:    row.Name,
			Values:  map[string]string{},
			Weights: map[string]float64{},
		}
		for category, value := range row.Values {
			item.Values[category] = value
		}
		for category, weight := range row.Weights {
			item.Weights[category] = weight
		}
		items[row.Name] = item
	}

	itemNames := maps.Keys(items)
	slices.Sort(itemNames)

	t := &api.Table{}
	values := map[string]map[string]*api.CategoryValue{}
	for _, name := range itemNames {
		item := items[name]
		t.Items = append(t.Items, item)
		for category, value := range item.Values {
			if values[category] == nil {
				values[category] = map[string]*api.CategoryValue{}
			}
			v := values[category][value]
			if v == nil {
				v = &api.CategoryValue{Category: category, Value: value}
				values[category][value] = v
			}
			v.Items = append(v.Items, item)
			v.Weight += item.Weights[category]
		}
	}
	if len(values) == 0 {
		return nil, &MalformedInputError{Reason: "no item exhibits any category value"}
	}

	categoryNames := maps.Keys(values)
	slices.Sort(categoryNames)
	for _, name := range categoryNames {
		category := &api.Category{Name: name}
		valueNames := maps.Keys(values[name])
		slices.Sort(valueNames)
		for _, value := range valueNames {
			v := values[name][value]
			sort.SliceStable(v.Items, func(i, j int) bool {
				return v.Items[i].Name < v.Items[j].Name
			})
			category.Values = append(category.Values, v)
			category.TotalWeight += v.Weight
		}
		t.Categories = append(t.Categories, category)
	}

	logrus.Infof("Loaded %v items over %v categories.", len(t.Items), len(t.Categories))
	return t, nil
}
