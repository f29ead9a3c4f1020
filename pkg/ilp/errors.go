package ilp

import (
	"fmt"
)

// InfeasibleConfigurationError reports a structural impossibility detected
// while constructing the problem, before any solver runs.
type InfeasibleConfigurationError struct {
	Category string
	Value    string
	Reason   string
}

func (e *InfeasibleConfigurationError) Error() string {
	switch {
	case e.Value != "":
		return fmt.Sprintf("infeasible configuration: value %s=%s %s", e.Category, e.Value, e.Reason)
	case e.Category != "":
		return fmt.Sprintf("infeasible configuration: category %s %s", e.Category, e.Reason)
	default:
		return fmt.Sprintf("infeasible configuration: %s", e.Reason)
	}
}

// SolutionVerificationError reports that the independent coverage recheck
// of a solver assignment failed. This indicates a modeling bug and must
// abort the request instead of returning an unverified answer.
type SolutionVerificationError struct {
	Category string
	Value    string
	Reason   string
}

func (e *SolutionVerificationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("solution verification failed: value %s=%s %s", e.Category, e.Value, e.Reason)
	}
	return fmt.Sprintf("solution verification failed: category %s %s", e.Category, e.Reason)
}
