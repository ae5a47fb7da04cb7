package planner

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/clarityworks/graphmind/pkg/graph"
)

func buildSnapshot(t *testing.T, atoms []graph.Atom) *graph.Snapshot {
	t.Helper()
	snap, err := graph.NewSnapshot(atoms, nil)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	return snap
}

func costAtom(id string, cost float64, deps ...string) graph.Atom {
	a := graph.Atom{
		ID: id, Name: id, Type: graph.AtomSystem,
		Content: graph.Content{Fields: map[string]any{"costPerRequest": cost}},
	}
	for _, dep := range deps {
		a.Edges = append(a.Edges, graph.Edge{TargetID: dep, Type: graph.EdgeDependsOn})
	}
	return a
}

func atomOrder(plan *Plan) []string {
	ids := make([]string, len(plan.Steps))
	for i, s := range plan.Steps {
		ids[i] = s.AtomID
	}
	return ids
}

// A data feed aggregation: the cheap dependency resolves first, the target
// traverses last, and the total reflects only priced atoms.
func TestBuildPlan_AggregatesDependencies(t *testing.T) {
	snap := buildSnapshot(t, []graph.Atom{
		costAtom("news", 0.01),
		costAtom("stocks", 0.0),
		{
			ID: "sentiment", Name: "sentiment", Type: graph.AtomProcess,
			Edges: []graph.Edge{
				{TargetID: "stocks", Type: graph.EdgeDependsOn},
				{TargetID: "news", Type: graph.EdgeDependsOn},
			},
		},
	})

	c := DefaultConstraints()
	c.MaxCost = 1.0
	plan, err := BuildPlan(snap, "aggregate market signals", "sentiment", c)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}

	if got := atomOrder(plan); !reflect.DeepEqual(got, []string{"stocks", "news", "sentiment"}) {
		t.Errorf("order = %v", got)
	}
	if math.Abs(plan.TotalCost-0.01) > 1e-12 {
		t.Errorf("total cost = %v, want 0.01", plan.TotalCost)
	}

	last := plan.Steps[2]
	if last.Action != ActionTraverse {
		t.Errorf("target action = %q, want traverse", last.Action)
	}
	if !reflect.DeepEqual(last.DependsOn, []string{"step-1", "step-2"}) {
		t.Errorf("target depends on %v", last.DependsOn)
	}
	for _, s := range plan.Steps[:2] {
		if s.Action != ActionResolve {
			t.Errorf("step %s action = %q, want resolve", s.ID, s.Action)
		}
		if len(s.DependsOn) != 0 {
			t.Errorf("leaf step %s has deps %v", s.ID, s.DependsOn)
		}
	}
}

// Every step's dependencies appear strictly earlier in the sequence.
func TestBuildPlan_DependenciesPrecedeDependents(t *testing.T) {
	snap := buildSnapshot(t, []graph.Atom{
		costAtom("a", 5, "b", "c"),
		costAtom("b", 1, "d"),
		costAtom("c", 3, "d"),
		costAtom("d", 2),
	})

	plan, err := BuildPlan(snap, "resolve a", "a", DefaultConstraints())
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}

	position := map[string]int{}
	for i, s := range plan.Steps {
		position[s.ID] = i
	}
	for i, s := range plan.Steps {
		for _, dep := range s.DependsOn {
			at, ok := position[dep]
			if !ok {
				t.Fatalf("step %s depends on unknown step %s", s.ID, dep)
			}
			if at >= i {
				t.Errorf("step %s at %d depends on %s at %d", s.ID, i, dep, at)
			}
		}
	}
}

// Ready atoms resolve cheapest first, then by ID on equal cost.
func TestBuildPlan_TieBreakByCostThenID(t *testing.T) {
	snap := buildSnapshot(t, []graph.Atom{
		costAtom("root", 0, "expensive", "zebra", "alpha"),
		costAtom("expensive", 9),
		costAtom("zebra", 1),
		costAtom("alpha", 1),
	})

	plan, err := BuildPlan(snap, "cost order", "root", DefaultConstraints())
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	want := []string{"alpha", "zebra", "expensive", "root"}
	if got := atomOrder(plan); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

// A cyclic dependency closure is a planning error naming the cycle members.
func TestBuildPlan_CycleFails(t *testing.T) {
	snap := buildSnapshot(t, []graph.Atom{
		costAtom("a", 0, "b"),
		costAtom("b", 0, "c"),
		costAtom("c", 0, "a"),
	})

	_, err := BuildPlan(snap, "cyclic", "a", DefaultConstraints())
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("err = %v, want ErrCycle", err)
	}
	var perr *PlanningError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %T, want *PlanningError", err)
	}
	if !reflect.DeepEqual(perr.AtomIDs, []string{"a", "b", "c"}) {
		t.Errorf("cycle members = %v, want [a b c]", perr.AtomIDs)
	}
}

// An atom blocked behind a cycle is not itself reported as a cycle member.
func TestBuildPlan_CycleExcludesBlockedTarget(t *testing.T) {
	snap := buildSnapshot(t, []graph.Atom{
		costAtom("goal", 0, "a"),
		costAtom("a", 0, "b"),
		costAtom("b", 0, "a"),
	})

	_, err := BuildPlan(snap, "blocked", "goal", DefaultConstraints())
	var perr *PlanningError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *PlanningError", err)
	}
	if perr.Reason != ReasonCycle {
		t.Fatalf("reason = %q, want cycle", perr.Reason)
	}
	if !reflect.DeepEqual(perr.AtomIDs, []string{"a", "b"}) {
		t.Errorf("cycle members = %v, want [a b]", perr.AtomIDs)
	}
}

// A missing target fails as unreachable, not a panic or empty plan.
func TestBuildPlan_MissingTarget(t *testing.T) {
	snap := buildSnapshot(t, []graph.Atom{costAtom("only", 0)})

	_, err := BuildPlan(snap, "nope", "ghost", DefaultConstraints())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
}

// A dependency pointing at an absent atom makes the closure unreachable and
// names the missing ID.
func TestBuildPlan_DanglingDependency(t *testing.T) {
	snap := buildSnapshot(t, []graph.Atom{
		costAtom("app", 0, "missing-db"),
	})

	_, err := BuildPlan(snap, "dangling", "app", DefaultConstraints())
	var perr *PlanningError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *PlanningError", err)
	}
	if perr.Reason != ReasonUnreachable {
		t.Errorf("reason = %q, want unreachable", perr.Reason)
	}
	if !reflect.DeepEqual(perr.AtomIDs, []string{"missing-db"}) {
		t.Errorf("missing = %v", perr.AtomIDs)
	}
}

// Exceeding the budget fails with the offending totals and no partial plan.
func TestBuildPlan_BudgetExceeded(t *testing.T) {
	snap := buildSnapshot(t, []graph.Atom{
		costAtom("target", 0.6, "dep"),
		costAtom("dep", 0.5),
	})

	c := DefaultConstraints()
	c.MaxCost = 1.0
	plan, err := BuildPlan(snap, "over budget", "target", c)
	if plan != nil {
		t.Fatalf("expected nil plan, got %+v", plan)
	}
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("err = %v, want ErrBudgetExceeded", err)
	}
	var perr *PlanningError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %T", err)
	}
	if perr.MaxCost != 1.0 {
		t.Errorf("max cost = %v", perr.MaxCost)
	}
	if perr.Cost <= perr.MaxCost {
		t.Errorf("reported cost %v not above budget %v", perr.Cost, perr.MaxCost)
	}
}

// Total cost exactly at the budget still succeeds.
func TestBuildPlan_BudgetBoundaryInclusive(t *testing.T) {
	snap := buildSnapshot(t, []graph.Atom{
		costAtom("target", 0.5, "dep"),
		costAtom("dep", 0.5),
	})

	c := DefaultConstraints()
	c.MaxCost = 1.0
	plan, err := BuildPlan(snap, "at budget", "target", c)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if plan.TotalCost != 1.0 {
		t.Errorf("total = %v", plan.TotalCost)
	}
}

// Atoms without the cost attribute fall back to the default cost.
func TestBuildPlan_DefaultCost(t *testing.T) {
	snap := buildSnapshot(t, []graph.Atom{
		{ID: "bare", Name: "bare", Type: graph.AtomSystem},
	})

	c := DefaultConstraints()
	c.DefaultCost = 2.5
	plan, err := BuildPlan(snap, "default cost", "bare", c)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if plan.TotalCost != 2.5 {
		t.Errorf("total = %v, want 2.5", plan.TotalCost)
	}
}

// Only requires/depends_on edges enter the closure.
func TestBuildPlan_IgnoresNonDependencyEdges(t *testing.T) {
	snap := buildSnapshot(t, []graph.Atom{
		{
			ID: "svc", Name: "svc", Type: graph.AtomSystem,
			Edges: []graph.Edge{
				{TargetID: "doc", Type: graph.EdgeGovernedBy},
				{TargetID: "lib", Type: graph.EdgeRequires},
			},
		},
		costAtom("doc", 100),
		costAtom("lib", 0.1),
	})

	c := DefaultConstraints()
	c.MaxCost = 1.0
	plan, err := BuildPlan(snap, "narrow closure", "svc", c)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if got := atomOrder(plan); !reflect.DeepEqual(got, []string{"lib", "svc"}) {
		t.Errorf("order = %v", got)
	}
}

// A negative budget is a configuration error, not a planning failure.
func TestBuildPlan_BadConstraints(t *testing.T) {
	snap := buildSnapshot(t, []graph.Atom{costAtom("a", 0)})

	c := Constraints{MaxCost: -1}
	_, err := BuildPlan(snap, "bad", "a", c)
	if !errors.Is(err, graph.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}
