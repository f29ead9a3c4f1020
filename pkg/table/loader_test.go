package table

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/quizmin/quizmin/pkg/api/quizmin"
)

func TestCSVLoader(t *testing.T) {
	g := NewGomegaWithT(t)
	rows, err := CSVLoader{File: "testdata/answers.csv"}.Load()
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(rows).To(HaveLen(3))

	g.Expect(rows[0].Name).To(Equal("Cowboy Bebop"))
	g.Expect(rows[0].Values).To(Equal(map[string]string{"country": "Japan", "studio": "Sunrise"}))
	g.Expect(rows[0].Weights).To(Equal(map[string]float64{"country": 60}))

	// empty cells contribute neither a value nor a weight
	g.Expect(rows[1].Name).To(Equal("Oldboy"))
	g.Expect(rows[1].Values).To(Equal(map[string]string{"country": "Korea"}))

	table, err := Build(rows)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(table.Category("country").TotalWeight).To(BeNumerically("==", 160))
	g.Expect(table.Category("studio").TotalWeight).To(BeZero())
}

func TestCSVLoaderLayout(t *testing.T) {
	g := NewGomegaWithT(t)
	file := writeCSV(t, "answers.csv", "country;id;country_pop\nJapan;a;60\nKorea;b;40\n")
	rows, err := CSVLoader{File: file, Layout: quizmin.CSVLayout{
		Delimiter:    ";",
		NameColumn:   "id",
		WeightSuffix: "_pop",
	}}.Load()
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(rows).To(HaveLen(2))
	g.Expect(rows[0].Name).To(Equal("a"))
	g.Expect(rows[0].Values).To(Equal(map[string]string{"country": "Japan"}))
	g.Expect(rows[0].Weights).To(Equal(map[string]float64{"country": 60}))
}

func TestCSVLoaderFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		layout  quizmin.CSVLayout
		err     string
	}{
		{name: "with a non-numeric weight",
			content: "name,country,country:weight\na,Japan,lots\n",
			err:     `malformed input for item a: row 2 declares non-numeric weight "lots" for category country`,
		},
		{name: "without category columns",
			content: "name,name:weight\na,1\n",
			err:     "malformed input: header declares no category columns",
		},
		{name: "with a missing identifier column",
			content: "name,country\na,Japan\n",
			layout:  quizmin.CSVLayout{NameColumn: "id"},
			err:     `malformed input: identifier column "id" not found in header`,
		},
		{name: "with an empty file",
			content: "",
			err:     "malformed input: input contains no header row",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			file := writeCSV(t, "broken.csv", tt.content)
			_, err := CSVLoader{File: file, Layout: tt.layout}.Load()
			g.Expect(err).To(MatchError(tt.err))
		})
	}
}

func writeCSV(t *testing.T, name string, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(content), 0660); err != nil {
		t.Fatal(err)
	}
	return file
}
