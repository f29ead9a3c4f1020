package ilp

import (
	"fmt"

	"github.com/quizmin/quizmin/pkg/api"
)

type Mode string

const (
	// ExactCover requires every observed category value to be exhibited by
	// at least one selected item.
	ExactCover Mode = "exact-cover"
	// PopulationCoverage requires every category to reach a configured
	// fraction of its total weight through covered values.
	PopulationCoverage Mode = "population-coverage"
)

type VarType string

const (
	VarTypeItem  VarType = "Item"
	VarTypeValue VarType = "Value"
)

// VarContext identifies what a solver variable stands for, so an assignment
// can be traced back to the item or category value it belongs to.
type VarContext struct {
	Item     string
	Category string
	Value    string
}

type Var struct {
	name    string
	varType VarType
	Context VarContext
	Item    *api.Item
}

func (v *Var) Name() string {
	return v.name
}

func (v *Var) Type() VarType {
	return v.varType
}

func (v *Var) String() string {
	if v.varType == VarTypeItem {
		return fmt.Sprintf("%s(%s)", v.name, v.Context.Item)
	}
	return fmt.Sprintf("%s(%s=%s)", v.name, v.Context.Category, v.Context.Value)
}

// Lit is a possibly negated reference to a variable.
type Lit struct {
	Var     string
	Negated bool
}

func Pos(v *Var) Lit {
	return Lit{Var: v.name}
}

func Neg(v *Var) Lit {
	return Lit{Var: v.name, Negated: true}
}

// Constraint is a linear inequality over boolean variables:
// sum(Coeffs[i] * Lits[i]) >= AtLeast. A nil Coeffs slice means all
// coefficients are 1, which makes the constraint a plain clause when
// AtLeast is 1.
type Constraint struct {
	Lits    []Lit
	Coeffs  []int
	AtLeast int
}

// ObjectiveTerm contributes Weight to the objective when Var is assigned
// true. The objective is always minimized.
type ObjectiveTerm struct {
	Var    string
	Weight int
}

// Assignment maps variable names to their solved values. Values may be
// continuous relaxations, the extractor rounds at 0.5.
type Assignment map[string]float64

// Problem is the immutable optimization problem handed to a solver.
type Problem struct {
	mode        mode
	vars        map[string]*Var
	itemVars    []*Var
	constraints []Constraint
	objective   []ObjectiveTerm
}

// mode keeps the solve semantics needed for verification next to the
// constraint system.
type mode struct {
	mode       Mode
	thresholds map[string]float64
}

func (p *Problem) Mode() Mode {
	return p.mode.mode
}

// Threshold returns the resolved coverage threshold of a category. It is
// only meaningful in population-coverage mode.
func (p *Problem) Threshold(category string) float64 {
	return p.mode.thresholds[category]
}

func (p *Problem) Var(name string) *Var {
	return p.vars[name]
}

// ItemVars returns the selection indicator variables in item name order.
func (p *Problem) ItemVars() []*Var {
	return p.itemVars
}

func (p *Problem) Constraints() []Constraint {
	return p.constraints
}

func (p *Problem) Objective() []ObjectiveTerm {
	return p.objective
}

func (p *Problem) VarCount() int {
	return len(p.vars)
}
