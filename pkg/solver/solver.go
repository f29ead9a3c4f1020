package solver

import (
	"context"
	"fmt"

	"github.com/quizmin/quizmin/pkg/ilp"
)

// Solver is the capability boundary to the actual numeric optimization. Any
// backend accepting boolean variables, linear at-least constraints and a
// linear minimization objective can implement it. When several selections
// are equally optimal the backend may return any of them.
type Solver interface {
	Solve(ctx context.Context, p *ilp.Problem) (ilp.Assignment, error)
}

// NoCoverageSolutionError reports that the solver proved the constraint
// system infeasible. This is distinct from ilp.InfeasibleConfigurationError,
// which is detected before solving.
type NoCoverageSolutionError struct {
	Mode ilp.Mode
}

func (e *NoCoverageSolutionError) Error() string {
	return fmt.Sprintf("no item selection can satisfy the %s constraints", e.Mode)
}

// SolverUnavailableError reports that the solver failed to run to
// completion. The request is fatal, retrying is up to the caller.
type SolverUnavailableError struct {
	Reason string
}

func (e *SolverUnavailableError) Error() string {
	return fmt.Sprintf("solver unavailable: %s", e.Reason)
}
