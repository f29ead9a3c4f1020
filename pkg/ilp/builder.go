package ilp

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/quizmin/quizmin/pkg/api"
)

type CostFunc string

const (
	// CostUniform minimizes the number of selected items.
	CostUniform CostFunc = "uniform"
	// CostLength minimizes the total identifier length of the selection.
	CostLength CostFunc = "length"
)

type BuildOpts struct {
	Mode Mode
	// Threshold is the global coverage fraction for PopulationCoverage.
	Threshold float64
	// CategoryThresholds overrides the global threshold per category.
	CategoryThresholds map[string]float64
	// AllowRegex limits the selectable items to matching identifiers.
	AllowRegex []string
	// DenyRegex removes matching identifiers from the selectable items.
	DenyRegex []string
	Cost      CostFunc
	// PrefixClosure adds "item selected implies every item whose
	// identifier is a strict prefix of it is selected".
	PrefixClosure bool
}

// Builder turns a coverage table into an optimization problem. A builder is
// single-use, Build must only be called once.
type Builder struct {
	opts      BuildOpts
	varsCount int
	p         *Problem
}

func NewBuilder(opts BuildOpts) *Builder {
	if opts.Cost == "" {
		opts.Cost = CostUniform
	}
	return &Builder{
		opts: opts,
		p: &Problem{
			vars: map[string]*Var{},
		},
	}
}

func (b *Builder) ticket() string {
	b.varsCount++
	return "x" + strconv.Itoa(b.varsCount)
}

func (b *Builder) Build(t *api.Table) (*Problem, error) {
	switch b.opts.Mode {
	case ExactCover, PopulationCoverage:
	default:
		return nil, fmt.Errorf("unknown mode %q", b.opts.Mode)
	}
	switch b.opts.Cost {
	case CostUniform, CostLength:
	default:
		return nil, fmt.Errorf("unknown cost function %q", b.opts.Cost)
	}

	items, err := b.filterItems(t)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &InfeasibleConfigurationError{Reason: "no items remain after filtering"}
	}

	selectable := map[string]*Var{}
	for _, item := range items {
		v := &Var{
			name:    b.ticket(),
			varType: VarTypeItem,
			Context: VarContext{Item: item.Name},
			Item:    item,
		}
		b.p.vars[v.name] = v
		b.p.itemVars = append(b.p.itemVars, v)
		selectable[item.Name] = v
	}

	b.p.mode = mode{mode: b.opts.Mode, thresholds: map[string]float64{}}
	for _, category := range t.Categories {
		switch b.opts.Mode {
		case ExactCover:
			err = b.coverEveryValue(category, selectable)
		case PopulationCoverage:
			err = b.coverPopulation(category, selectable)
		}
		if err != nil {
			return nil, err
		}
	}

	if b.opts.PrefixClosure {
		b.closePrefixes(t, items, selectable)
	}

	for _, v := range b.p.itemVars {
		weight := 1
		if b.opts.Cost == CostLength {
			weight = len([]rune(v.Context.Item))
		}
		b.p.objective = append(b.p.objective, ObjectiveTerm{Var: v.name, Weight: weight})
	}

	logrus.Infof("Generated %v variables and %v constraints.", len(b.p.vars), len(b.p.constraints))
	return b.p, nil
}

// filterItems applies the allow and deny expressions to the item universe.
// Filtered items stay in the table, they just can not be selected.
func (b *Builder) filterItems(t *api.Table) ([]*api.Item, error) {
	items := []*api.Item{}
	for _, item := range t.Items {
		allowed := len(b.opts.AllowRegex) == 0
		for _, rex := range b.opts.AllowRegex {
			if match, err := regexp.MatchString(rex, item.Name); err != nil {
				return nil, fmt.Errorf("failed to match item with regex '%v': %v", rex, err)
			} else if match {
				allowed = true
				break
			}
		}
		denied := false
		if allowed {
			for _, rex := range b.opts.DenyRegex {
				if match, err := regexp.MatchString(rex, item.Name); err != nil {
					return nil, fmt.Errorf("failed to match item with regex '%v': %v", rex, err)
				} else if match {
					logrus.Warnf("Item %v is forcefully ignored by regex '%v'.", item.Name, rex)
					denied = true
					break
				}
			}
		}
		if allowed && !denied {
			items = append(items, item)
		}
	}
	return items, nil
}

// coverEveryValue emits one "at least one exhibiting item is selected"
// clause per category value.
func (b *Builder) coverEveryValue(category *api.Category, selectable map[string]*Var) error {
	for _, value := range category.Values {
		lits := contributorLits(value, selectable)
		if len(lits) == 0 {
			return &InfeasibleConfigurationError{
				Category: category.Name,
				Value:    value.Value,
				Reason:   "has no selectable item exhibiting it",
			}
		}
		b.p.constraints = append(b.p.constraints, Constraint{Lits: lits, AtLeast: 1})
	}
	return nil
}

// coverPopulation links one auxiliary covered-variable per category value to
// the selection indicators and requires the covered weight of the category
// to reach its threshold.
func (b *Builder) coverPopulation(category *api.Category, selectable map[string]*Var) error {
	threshold, err := b.resolveThreshold(category.Name)
	if err != nil {
		return err
	}
	b.p.mode.thresholds[category.Name] = threshold

	if category.TotalWeight == 0 {
		return &InfeasibleConfigurationError{
			Category: category.Name,
			Reason:   fmt.Sprintf("has zero total weight but requires coverage %v", threshold),
		}
	}

	scale := weightScale(category)
	total := 0
	covered := []Lit{}
	coeffs := []int{}
	reachable := 0
	for _, value := range category.Values {
		coeff := int(math.Round(value.Weight * scale))
		total += coeff
		if coeff == 0 {
			continue
		}
		lits := contributorLits(value, selectable)
		if len(lits) == 0 {
			// value only exhibited by filtered items, it can never be covered
			continue
		}
		reachable += coeff

		v := &Var{
			name:    b.ticket(),
			varType: VarTypeValue,
			Context: VarContext{Category: category.Name, Value: value.Value},
		}
		b.p.vars[v.name] = v

		// covered => at least one contributing item selected
		b.p.constraints = append(b.p.constraints, Constraint{Lits: append([]Lit{Neg(v)}, lits...), AtLeast: 1})
		// item selected => value covered
		for _, lit := range lits {
			b.p.constraints = append(b.p.constraints, Constraint{
				Lits:    []Lit{{Var: lit.Var, Negated: true}, Pos(v)},
				AtLeast: 1,
			})
		}
		covered = append(covered, Pos(v))
		coeffs = append(coeffs, coeff)
	}

	bound := int(math.Ceil(threshold*float64(total) - 1e-9))
	if bound < 1 {
		bound = 1
	}
	if reachable < bound {
		return &InfeasibleConfigurationError{
			Category: category.Name,
			Reason:   fmt.Sprintf("can reach at most %v of %v required weight units with the selectable items", reachable, bound),
		}
	}
	b.p.constraints = append(b.p.constraints, Constraint{Lits: covered, Coeffs: coeffs, AtLeast: bound})
	return nil
}

func (b *Builder) resolveThreshold(category string) (float64, error) {
	threshold := b.opts.Threshold
	if t, ok := b.opts.CategoryThresholds[category]; ok {
		threshold = t
	}
	if threshold <= 0 || threshold > 1 {
		return 0, fmt.Errorf("threshold for category %s must be in (0,1], got %v", category, threshold)
	}
	return threshold, nil
}

// closePrefixes emits "long identifier selected implies prefix identifier
// selected" for every strict prefix which is itself an item. A prefix which
// exists in the table but is not selectable makes the longer item
// unselectable as well.
func (b *Builder) closePrefixes(t *api.Table, items []*api.Item, selectable map[string]*Var) {
	for _, long := range items {
		for _, short := range t.Items {
			if long.Name == short.Name || !strings.HasPrefix(long.Name, short.Name) {
				continue
			}
			if prefix, ok := selectable[short.Name]; ok {
				b.p.constraints = append(b.p.constraints, Constraint{
					Lits:    []Lit{Neg(selectable[long.Name]), Pos(prefix)},
					AtLeast: 1,
				})
			} else {
				b.p.constraints = append(b.p.constraints, Constraint{
					Lits:    []Lit{Neg(selectable[long.Name])},
					AtLeast: 1,
				})
			}
		}
	}
}

func contributorLits(value *api.CategoryValue, selectable map[string]*Var) []Lit {
	lits := []Lit{}
	for _, item := range value.Items {
		if v, ok := selectable[item.Name]; ok {
			lits = append(lits, Pos(v))
		}
	}
	return lits
}

// weightScale returns 1 for categories with purely integral weights and a
// fixed factor otherwise, since the solver backend needs integer
// coefficients.
func weightScale(category *api.Category) float64 {
	for _, value := range category.Values {
		if value.Weight != math.Trunc(value.Weight) {
			return 1e6
		}
	}
	return 1
}
