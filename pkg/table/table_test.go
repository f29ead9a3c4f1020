package table

import (
	"testing"

	. "github.com/onsi/gomega"
)

func newRow(name string, values map[string]string, weights map[string]float64) Row {
	if values == nil {
		values = map[string]string{}
	}
	if weights == nil {
		weights = map[string]float64{}
	}
	return Row{Name: name, Values: values, Weights: weights}
}

func TestBuild(t *testing.T) {
	g := NewGomegaWithT(t)
	table, err := Build([]Row{
		newRow("c", map[string]string{"country": "Japan", "studio": "X"}, nil),
		newRow("a", map[string]string{"country": "Japan"}, nil),
		newRow("b", map[string]string{"country": "Korea", "studio": "X"}, nil),
	})
	g.Expect(err).ToNot(HaveOccurred())

	names := []string{}
	for _, item := range table.Items {
		names = append(names, item.Name)
	}
	g.Expect(names).To(Equal([]string{"a", "b", "c"}))

	categories := []string{}
	for _, category := range table.Categories {
		categories = append(categories, category.Name)
	}
	g.Expect(categories).To(Equal([]string{"country", "studio"}))

	country := table.Category("country")
	g.Expect(country.Values).To(HaveLen(2))
	g.Expect(country.Values[0].Value).To(Equal("Japan"))
	g.Expect(country.Values[0].Items).To(HaveLen(2))
	g.Expect(country.Values[0].Items[0].Name).To(Equal("a"))
	g.Expect(country.Values[1].Value).To(Equal("Korea"))
	g.Expect(country.Values[1].Items).To(HaveLen(1))

	// item b has no studio value and must not appear there
	studio := table.Category("studio")
	g.Expect(studio.Values).To(HaveLen(1))
	g.Expect(studio.Values[0].Items).To(HaveLen(2))
	for _, item := range studio.Values[0].Items {
		g.Expect(item.Name).ToNot(Equal("a"))
	}
}

func TestBuildAggregatesWeights(t *testing.T) {
	g := NewGomegaWithT(t)
	table, err := Build([]Row{
		newRow("a", map[string]string{"country": "Japan"}, map[string]float64{"country": 35}),
		newRow("b", map[string]string{"country": "Japan"}, map[string]float64{"country": 25}),
		newRow("c", map[string]string{"country": "Korea"}, map[string]float64{"country": 40}),
	})
	g.Expect(err).ToNot(HaveOccurred())

	country := table.Category("country")
	g.Expect(country.TotalWeight).To(BeNumerically("==", 100))
	g.Expect(country.Value("Japan").Weight).To(BeNumerically("==", 60))
	g.Expect(country.Value("Korea").Weight).To(BeNumerically("==", 40))
}

func TestBuildFailures(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
		err  string
	}{
		{name: "without rows",
			rows: []Row{},
			err:  "malformed input: input contains no rows",
		},
		{name: "with a missing identifier",
			rows: []Row{newRow("", map[string]string{"country": "Japan"}, nil)},
			err:  "malformed input: row is missing an item identifier",
		},
		{name: "with a duplicate identifier",
			rows: []Row{
				newRow("a", map[string]string{"country": "Japan"}, nil),
				newRow("a", map[string]string{"country": "Korea"}, nil),
			},
			err: "duplicate item a in input",
		},
		{name: "with a negative weight",
			rows: []Row{newRow("a", map[string]string{"country": "Japan"}, map[string]float64{"country": -1})},
			err:  "malformed input for item a: weight -1 for category country is not a non-negative finite number",
		},
		{name: "with a weight but no value",
			rows: []Row{newRow("a", map[string]string{}, map[string]float64{"country": 10})},
			err:  "malformed input for item a: weight declared for category country without a value",
		},
		{name: "without any category value",
			rows: []Row{newRow("a", nil, nil)},
			err:  "malformed input: no item exhibits any category value",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			_, err := Build(tt.rows)
			g.Expect(err).To(MatchError(tt.err))
		})
	}
}

func TestBuildRejectsDuplicatesTyped(t *testing.T) {
	g := NewGomegaWithT(t)
	_, err := Build([]Row{
		newRow("a", map[string]string{"country": "Japan"}, nil),
		newRow("a", map[string]string{"country": "Japan"}, nil),
	})
	duplicate := &DuplicateItemError{}
	g.Expect(err).To(BeAssignableToTypeOf(duplicate))
	g.Expect(err.(*DuplicateItemError).Item).To(Equal("a"))
}
