package main

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/quizmin/quizmin/pkg/api/quizmin"
	"github.com/quizmin/quizmin/pkg/ilp"
)

func TestLoadConfig(t *testing.T) {
	g := NewGomegaWithT(t)
	file := filepath.Join(t.TempDir(), "quizmin.yaml")
	err := os.WriteFile(file, []byte(`
mode: population-coverage
coverage:
  threshold: 0.8
  thresholds:
    country: 0.95
deny:
  - "^mystery"
cost: length
prefix-closure: true
csv:
  delimiter: ";"
  name-column: id
`), 0660)
	g.Expect(err).ToNot(HaveOccurred())

	cfg, err := loadConfig(file)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg.CSV.Delimiter).To(Equal(";"))
	g.Expect(cfg.CSV.NameColumn).To(Equal("id"))

	opts := buildOpts(cfg)
	g.Expect(opts.Mode).To(Equal(ilp.PopulationCoverage))
	g.Expect(opts.Threshold).To(BeNumerically("==", 0.8))
	g.Expect(opts.CategoryThresholds).To(Equal(map[string]float64{"country": 0.95}))
	g.Expect(opts.DenyRegex).To(Equal([]string{"^mystery"}))
	g.Expect(opts.Cost).To(Equal(ilp.CostLength))
	g.Expect(opts.PrefixClosure).To(BeTrue())
}

func TestLoadConfigDefaults(t *testing.T) {
	g := NewGomegaWithT(t)
	opts := buildOpts(&quizmin.Config{})
	g.Expect(opts.Mode).To(Equal(ilp.ExactCover))
	g.Expect(opts.Cost).To(BeEmpty())
	g.Expect(opts.Threshold).To(BeZero())
}

func TestLoadConfigRejectsBrokenYAML(t *testing.T) {
	g := NewGomegaWithT(t)
	file := filepath.Join(t.TempDir(), "quizmin.yaml")
	err := os.WriteFile(file, []byte("mode: [broken"), 0660)
	g.Expect(err).ToNot(HaveOccurred())

	_, err = loadConfig(file)
	g.Expect(err).To(HaveOccurred())
}

func TestParseCategoryThresholds(t *testing.T) {
	tests := []struct {
		name     string
		entries  []string
		expected map[string]float64
		err      string
	}{
		{name: "without entries", entries: nil, expected: nil},
		{name: "with valid entries",
			entries:  []string{"country=0.8", "studio=1"},
			expected: map[string]float64{"country": 0.8, "studio": 1},
		},
		{name: "with a missing separator",
			entries: []string{"country"},
			err:     `invalid category threshold "country", expected <category>=<fraction>`,
		},
		{name: "with a non-numeric fraction",
			entries: []string{"country=half"},
			err:     `invalid category threshold "country=half": strconv.ParseFloat: parsing "half": invalid syntax`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			thresholds, err := parseCategoryThresholds(tt.entries)
			if tt.err != "" {
				g.Expect(err).To(MatchError(tt.err))
				return
			}
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(thresholds).To(Equal(tt.expected))
		})
	}
}
