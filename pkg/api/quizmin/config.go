package quizmin

// CSVLayout describes how the answer-space CSV maps onto the table shape.
// The exact column layout is configuration, not protocol.
type CSVLayout struct {
	// Delimiter is a single rune, defaults to ","
	Delimiter string `json:"delimiter,omitempty"`
	// NameColumn names the identifier column. Defaults to the first column.
	NameColumn string `json:"name-column,omitempty"`
	// WeightSuffix marks weight columns paired to a category column,
	// e.g. "country:weight" for "country". Defaults to ":weight".
	WeightSuffix string `json:"weight-suffix,omitempty"`
}

type Coverage struct {
	// Threshold is the global coverage fraction in (0,1] for the
	// population-coverage mode.
	Threshold float64 `json:"threshold,omitempty"`
	// Thresholds overrides the global threshold per category.
	Thresholds map[string]float64 `json:"thresholds,omitempty"`
}

type Config struct {
	Mode          string    `json:"mode,omitempty"`
	Coverage      Coverage  `json:"coverage,omitempty"`
	Allow         []string  `json:"allow,omitempty"`
	Deny          []string  `json:"deny,omitempty"`
	Cost          string    `json:"cost,omitempty"`
	PrefixClosure bool      `json:"prefix-closure,omitempty"`
	CSV           CSVLayout `json:"csv,omitempty"`
}
