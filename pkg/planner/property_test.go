package planner

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/clarityworks/graphmind/pkg/graph"
)

// randomDAG builds n atoms where atom i may depend only on atoms with a
// smaller index, so the dependency closure is always acyclic. Edge i->j
// exists when picks[i*n+j] is true and j < i. Costs cycle through a small
// fixed set so ties and distinct values both occur.
func randomDAG(n int, picks []bool) []graph.Atom {
	costs := []float64{0, 0.25, 0.25, 1, 2}
	atoms := make([]graph.Atom, n)
	for i := 0; i < n; i++ {
		atoms[i] = graph.Atom{
			ID:   fmt.Sprintf("n%02d", i),
			Name: fmt.Sprintf("Atom %d", i),
			Type: graph.AtomSystem,
			Content: graph.Content{
				Fields: map[string]any{"costPerRequest": costs[i%len(costs)]},
			},
		}
		for j := 0; j < i; j++ {
			if idx := i*n + j; idx < len(picks) && picks[idx] {
				atoms[i].Edges = append(atoms[i].Edges, graph.Edge{
					TargetID: fmt.Sprintf("n%02d", j),
					Type:     graph.EdgeDependsOn,
				})
			}
		}
	}
	return atoms
}

// TestPlannerProperties verifies ordering and budget invariants on random DAGs
func TestPlannerProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	// On an acyclic closure within budget, every dependency step appears
	// strictly before its dependent.
	properties.Property("dependencies precede dependents", prop.ForAll(
		func(n int, picks []bool) bool {
			snap, err := graph.NewSnapshot(randomDAG(n, picks), nil)
			if err != nil {
				return false
			}
			target := fmt.Sprintf("n%02d", n-1)
			plan, err := BuildPlan(snap, "property", target, DefaultConstraints())
			if err != nil {
				return false
			}

			position := make(map[string]int, len(plan.Steps))
			for i, s := range plan.Steps {
				position[s.ID] = i
			}
			for i, s := range plan.Steps {
				for _, dep := range s.DependsOn {
					at, ok := position[dep]
					if !ok || at >= i {
						return false
					}
				}
			}
			return plan.Steps[len(plan.Steps)-1].AtomID == target
		},
		gen.IntRange(1, 12),
		gen.SliceOf(gen.Bool()),
	))

	// The total cost equals the sum of the step costs, independent of order.
	properties.Property("total cost sums step costs", prop.ForAll(
		func(n int, picks []bool) bool {
			snap, err := graph.NewSnapshot(randomDAG(n, picks), nil)
			if err != nil {
				return false
			}
			target := fmt.Sprintf("n%02d", n-1)
			plan, err := BuildPlan(snap, "property", target, DefaultConstraints())
			if err != nil {
				return false
			}

			sum := 0.0
			for _, s := range plan.Steps {
				sum += s.Cost
			}
			return math.Abs(sum-plan.TotalCost) < 1e-9
		},
		gen.IntRange(1, 12),
		gen.SliceOf(gen.Bool()),
	))

	// A budget below the closure total always fails with the budget cause
	// and never returns a partial plan.
	properties.Property("under-budget never yields a partial plan", prop.ForAll(
		func(n int, picks []bool) bool {
			snap, err := graph.NewSnapshot(randomDAG(n, picks), nil)
			if err != nil {
				return false
			}
			target := fmt.Sprintf("n%02d", n-1)
			full, err := BuildPlan(snap, "property", target, DefaultConstraints())
			if err != nil || full.TotalCost == 0 {
				return err == nil
			}

			c := DefaultConstraints()
			c.MaxCost = full.TotalCost / 2
			plan, err := BuildPlan(snap, "property", target, c)
			return plan == nil && errors.Is(err, ErrBudgetExceeded)
		},
		gen.IntRange(1, 12),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
