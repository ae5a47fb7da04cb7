package planner

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel causes for failed planning, matchable with errors.Is.
var (
	ErrUnreachable    = errors.New("target unreachable")
	ErrCycle          = errors.New("cycle in dependency closure")
	ErrBudgetExceeded = errors.New("cost budget exceeded")
)

// Reason distinguishes why a plan could not be produced.
type Reason string

const (
	ReasonUnreachable    Reason = "unreachable"
	ReasonCycle          Reason = "cycle"
	ReasonBudgetExceeded Reason = "budget_exceeded"
)

// PlanningError reports a failed planning attempt with enough structure for
// the caller to react per cause: the target, the offending atom IDs (missing
// atoms or cycle members), and the cost figures for budget failures.
type PlanningError struct {
	Op       string
	Reason   Reason
	TargetID string
	AtomIDs  []string
	Cost     float64
	MaxCost  float64
}

func (e *PlanningError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: target %q: %s", e.Op, e.TargetID, e.Reason)
	if len(e.AtomIDs) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(e.AtomIDs, ", "))
	}
	if e.Reason == ReasonBudgetExceeded {
		fmt.Fprintf(&b, " (cost %.4f > max %.4f)", e.Cost, e.MaxCost)
	}
	return b.String()
}

func (e *PlanningError) Unwrap() error {
	switch e.Reason {
	case ReasonUnreachable:
		return ErrUnreachable
	case ReasonCycle:
		return ErrCycle
	case ReasonBudgetExceeded:
		return ErrBudgetExceeded
	default:
		return nil
	}
}
