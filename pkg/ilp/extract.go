package ilp

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/quizmin/quizmin/pkg/api"
)

// selection threshold for solvers which return relaxed continuous values
const selected = 0.5

// Extract reads the selection out of a solver assignment, recomputes the
// achieved coverage per category independently of the solver's own
// objective bookkeeping and verifies it against the mode's guarantee.
// The recomputation is a mandatory self-check: a violation means the model
// and the solver disagree and the assignment must not be returned.
func Extract(p *Problem, assignment Assignment, t *api.Table) (*api.Solution, error) {
	chosen := map[string]bool{}
	cost := 0
	for _, v := range p.ItemVars() {
		if assignment[v.Name()] >= selected {
			chosen[v.Context.Item] = true
		}
	}
	for _, term := range p.Objective() {
		if assignment[term.Var] >= selected {
			cost += term.Weight
		}
	}

	solution := &api.Solution{Cost: cost}
	for _, category := range t.Categories {
		coverage, err := verifyCategory(p, category, chosen)
		if err != nil {
			return nil, err
		}
		solution.Coverage = append(solution.Coverage, coverage)
	}

	solution.Selected = maps.Keys(chosen)
	slices.Sort(solution.Selected)
	logrus.Infof("Selected %v items with cost %v.", len(solution.Selected), cost)
	return solution, nil
}

func verifyCategory(p *Problem, category *api.Category, chosen map[string]bool) (api.CategoryCoverage, error) {
	coverage := api.CategoryCoverage{
		Category:    category.Name,
		TotalWeight: category.TotalWeight,
		Threshold:   1,
	}
	// categories without weights degrade to counting values
	weighted := category.TotalWeight > 0
	if !weighted {
		coverage.TotalWeight = float64(len(category.Values))
	}

	for _, value := range category.Values {
		covered := false
		for _, item := range value.Items {
			if chosen[item.Name] {
				covered = true
				break
			}
		}
		if covered {
			if weighted {
				coverage.CoveredWeight += value.Weight
			} else {
				coverage.CoveredWeight++
			}
		} else if p.Mode() == ExactCover {
			return coverage, &SolutionVerificationError{
				Category: category.Name,
				Value:    value.Value,
				Reason:   "is not exhibited by any selected item",
			}
		}
	}
	coverage.Fraction = coverage.CoveredWeight / coverage.TotalWeight

	if p.Mode() == PopulationCoverage {
		coverage.Threshold = p.Threshold(category.Name)
		if coverage.Fraction+1e-9 < coverage.Threshold {
			return coverage, &SolutionVerificationError{
				Category: category.Name,
				Reason:   fmt.Sprintf("reached coverage %v below threshold %v", coverage.Fraction, coverage.Threshold),
			}
		}
	}
	return coverage, nil
}
