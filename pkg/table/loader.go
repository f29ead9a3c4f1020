package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quizmin/quizmin/pkg/api/quizmin"
)

// Row is one raw record of the answer space before validation: the item
// identifier, its per-category values and the optional per-category weights.
type Row struct {
	Name    string
	Values  map[string]string
	Weights map[string]float64
}

type Loader interface {
	Load() ([]Row, error)
}

// CSVLoader reads rows from a CSV file. The header names the categories, a
// column "<category><suffix>" is read as the weight column of <category>.
type CSVLoader struct {
	File   string
	Layout quizmin.CSVLayout
}

func (l CSVLoader) Load() ([]Row, error) {
	f, err := os.Open(l.File)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if l.Layout.Delimiter != "" {
		runes := []rune(l.Layout.Delimiter)
		if len(runes) != 1 {
			return nil, fmt.Errorf("delimiter must be a single character, got %q", l.Layout.Delimiter)
		}
		reader.Comma = runes[0]
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", l.File, err)
	}
	if len(records) == 0 {
		return nil, &MalformedInputError{Reason: "input contains no header row"}
	}

	suffix := l.Layout.WeightSuffix
	if suffix == "" {
		suffix = ":weight"
	}

	header := records[0]
	nameCol := -1
	categories := map[int]string{}
	weights := map[int]string{}
	for i, col := range header {
		col = strings.TrimSpace(col)
		switch {
		case l.Layout.NameColumn != "" && col == l.Layout.NameColumn:
			nameCol = i
		case l.Layout.NameColumn == "" && i == 0:
			nameCol = i
		case strings.HasSuffix(col, suffix):
			weights[i] = strings.TrimSuffix(col, suffix)
		default:
			categories[i] = col
		}
	}
	if nameCol == -1 {
		return nil, &MalformedInputError{Reason: fmt.Sprintf("identifier column %q not found in header", l.Layout.NameColumn)}
	}
	if len(categories) == 0 {
		return nil, &MalformedInputError{Reason: "header declares no category columns"}
	}

	rows := []Row{}
	for n, record := range records[1:] {
		row := Row{
			Values:  map[string]string{},
			Weights: map[string]float64{},
		}
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if i == nameCol {
				row.Name = cell
				continue
			}
			if category, ok := categories[i]; ok && cell != "" {
				row.Values[category] = cell
				continue
			}
			if category, ok := weights[i]; ok && cell != "" {
				weight, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, &MalformedInputError{
						Item:   row.Name,
						Reason: fmt.Sprintf("row %d declares non-numeric weight %q for category %s", n+2, cell, category),
					}
				}
				row.Weights[category] = weight
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
