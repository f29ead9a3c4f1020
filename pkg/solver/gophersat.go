package solver

import (
	"context"
	"fmt"

	"github.com/crillab/gophersat/maxsat"
	"github.com/sirupsen/logrus"

	"github.com/quizmin/quizmin/pkg/ilp"
)

// MaxSAT solves problems with gophersat's weighted partial MaxSAT engine:
// the problem's constraints become hard clauses, every objective term
// becomes a soft clause preferring the variable to stay false. The cheapest
// model of that formula is exactly the minimum-cost selection.
type MaxSAT struct{}

func NewMaxSAT() *MaxSAT {
	return &MaxSAT{}
}

type maxsatOutcome struct {
	model maxsat.Model
	cost  int
	err   error
}

func (s *MaxSAT) Solve(ctx context.Context, p *ilp.Problem) (ilp.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, &SolverUnavailableError{Reason: err.Error()}
	}
	constrs := make([]maxsat.Constr, 0, len(p.Constraints())+len(p.Objective()))
	for _, c := range p.Constraints() {
		lits := make([]maxsat.Lit, 0, len(c.Lits))
		for _, l := range c.Lits {
			lits = append(lits, toLit(l))
		}
		if c.Coeffs == nil && c.AtLeast == 1 {
			constrs = append(constrs, maxsat.HardClause(lits...))
		} else {
			constrs = append(constrs, maxsat.HardPBConstr(lits, c.Coeffs, c.AtLeast))
		}
	}
	for _, term := range p.Objective() {
		constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{maxsat.Not(term.Var)}, term.Weight))
	}
	logrus.Infof("Solving %v constraints over %v variables.", len(constrs)-len(p.Objective()), p.VarCount())

	outcome := make(chan maxsatOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				outcome <- maxsatOutcome{err: fmt.Errorf("%v", r)}
			}
		}()
		model, cost := maxsat.New(constrs...).Solve()
		outcome <- maxsatOutcome{model: model, cost: cost}
	}()

	select {
	case <-ctx.Done():
		return nil, &SolverUnavailableError{Reason: ctx.Err().Error()}
	case res := <-outcome:
		if res.err != nil {
			return nil, &SolverUnavailableError{Reason: res.err.Error()}
		}
		if res.model == nil {
			return nil, &NoCoverageSolutionError{Mode: p.Mode()}
		}
		logrus.Infof("Found an optimal selection with cost %v.", res.cost)
		assignment := ilp.Assignment{}
		for name, value := range res.model {
			if value {
				assignment[name] = 1
			} else {
				assignment[name] = 0
			}
		}
		return assignment, nil
	}
}

func toLit(l ilp.Lit) maxsat.Lit {
	if l.Negated {
		return maxsat.Not(l.Var)
	}
	return maxsat.Var(l.Var)
}
