package planner

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/clarityworks/graphmind/pkg/graph"
)

var validate = validator.New()

// Actions a plan step can take.
const (
	ActionResolve  = "resolve"
	ActionTraverse = "traverse"
)

// Constraints bounds a planning run. CostAttribute names the content field
// read for per-atom cost; atoms without it cost DefaultCost.
type Constraints struct {
	MaxCost       float64 `json:"max_cost" validate:"gte=0"`
	CostAttribute string  `json:"cost_attribute"`
	DefaultCost   float64 `json:"default_cost" validate:"gte=0"`
}

// DefaultConstraints returns an effectively unbounded budget reading
// costPerRequest.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxCost:       math.MaxFloat64,
		CostAttribute: "costPerRequest",
		DefaultCost:   0,
	}
}

// Validate rejects malformed constraints and fills the attribute default.
func (c *Constraints) Validate() error {
	if c.CostAttribute == "" {
		c.CostAttribute = "costPerRequest"
	}
	if err := validate.Struct(c); err != nil {
		return &graph.ValidationError{
			Op:     "planner.Constraints",
			Detail: fmt.Sprintf("%v", err),
			Cause:  graph.ErrInvalidConfig,
		}
	}
	return nil
}

// Step is one action in a plan. DependsOn lists the step IDs (not atom IDs)
// this step requires, all of which appear earlier in the plan.
type Step struct {
	ID        string   `json:"id"`
	Action    string   `json:"action"`
	AtomID    string   `json:"atom_id"`
	DependsOn []string `json:"depends_on"`
	Cost      float64  `json:"cost"`
}

// Plan is a dependency-ordered sequence of steps resolving a target atom.
type Plan struct {
	Goal         string  `json:"goal"`
	TargetAtomID string  `json:"target_atom_id"`
	Steps        []Step  `json:"steps"`
	TotalCost    float64 `json:"total_cost"`
}

// BuildPlan computes the dependency closure of the target over the
// requires/depends_on edge class, orders it topologically (ties broken by
// ascending cost then atom ID), and prices each step. It fails with a
// *PlanningError when the target or one of its dependencies is missing, when
// the closure contains a cycle, or when the accumulated cost exceeds the
// budget. No partial plan is returned on failure.
func BuildPlan(snap *graph.Snapshot, goal, targetID string, constraints Constraints) (*Plan, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	if snap.Atom(targetID) == nil {
		return nil, &PlanningError{
			Op:       "planner.BuildPlan",
			Reason:   ReasonUnreachable,
			TargetID: targetID,
			AtomIDs:  []string{targetID},
		}
	}

	closure, missing := dependencyClosure(snap, targetID)
	if len(missing) > 0 {
		return nil, &PlanningError{
			Op:       "planner.BuildPlan",
			Reason:   ReasonUnreachable,
			TargetID: targetID,
			AtomIDs:  missing,
		}
	}

	order, leftover := kahnOrder(snap, closure, constraints)
	if len(leftover) > 0 {
		return nil, &PlanningError{
			Op:       "planner.BuildPlan",
			Reason:   ReasonCycle,
			TargetID: targetID,
			AtomIDs:  leftover,
		}
	}

	steps := make([]Step, 0, len(order))
	stepIndex := make(map[string]int, len(order))
	total := 0.0
	for i, atomID := range order {
		cost := atomCost(snap, atomID, constraints)
		total += cost
		if total > constraints.MaxCost {
			return nil, &PlanningError{
				Op:       "planner.BuildPlan",
				Reason:   ReasonBudgetExceeded,
				TargetID: targetID,
				Cost:     total,
				MaxCost:  constraints.MaxCost,
			}
		}

		stepID := fmt.Sprintf("step-%d", i+1)
		stepIndex[atomID] = i

		action := ActionResolve
		if atomID == targetID {
			action = ActionTraverse
		}

		atom := snap.Atom(atomID)
		var depIdx []int
		for _, edge := range atom.DependencyEdges() {
			if j, ok := stepIndex[edge.TargetID]; ok && edge.TargetID != atomID {
				depIdx = append(depIdx, j)
			}
		}
		sort.Ints(depIdx)
		var deps []string
		for _, j := range depIdx {
			deps = append(deps, steps[j].ID)
		}

		steps = append(steps, Step{
			ID:        stepID,
			Action:    action,
			AtomID:    atomID,
			DependsOn: deps,
			Cost:      cost,
		})
	}

	return &Plan{
		Goal:         goal,
		TargetAtomID: targetID,
		Steps:        steps,
		TotalCost:    total,
	}, nil
}

// dependencyClosure walks dependency-class edges outward from the target and
// returns the reachable atom set plus any referenced IDs missing from the
// snapshot, sorted.
func dependencyClosure(snap *graph.Snapshot, targetID string) (map[string]bool, []string) {
	closure := map[string]bool{targetID: true}
	missingSet := map[string]bool{}
	stack := []string{targetID}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		atom := snap.Atom(id)
		for _, edge := range atom.DependencyEdges() {
			if snap.Atom(edge.TargetID) == nil {
				missingSet[edge.TargetID] = true
				continue
			}
			if !closure[edge.TargetID] {
				closure[edge.TargetID] = true
				stack = append(stack, edge.TargetID)
			}
		}
	}

	missing := make([]string, 0, len(missingSet))
	for id := range missingSet {
		missing = append(missing, id)
	}
	sort.Strings(missing)
	return closure, missing
}

// kahnOrder topologically sorts the closure-induced dependency subgraph so
// that dependencies execute before dependents. Among simultaneously ready
// atoms it picks the cheapest first, then the smallest ID. Atoms left
// unordered sit on a cycle and are returned sorted.
func kahnOrder(snap *graph.Snapshot, closure map[string]bool, constraints Constraints) (order, leftover []string) {
	indegree := make(map[string]int, len(closure))
	dependents := make(map[string][]string, len(closure))
	for id := range closure {
		atom := snap.Atom(id)
		for _, edge := range atom.DependencyEdges() {
			if !closure[edge.TargetID] {
				continue
			}
			indegree[id]++
			dependents[edge.TargetID] = append(dependents[edge.TargetID], id)
		}
	}

	var ready []string
	for id := range closure {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	order = make([]string, 0, len(closure))
	for len(ready) > 0 {
		best := 0
		for i := 1; i < len(ready); i++ {
			ci, cb := atomCost(snap, ready[i], constraints), atomCost(snap, ready[best], constraints)
			if ci < cb || (ci == cb && ready[i] < ready[best]) {
				best = i
			}
		}
		id := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		order = append(order, id)

		for _, dep := range dependents[id] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) < len(closure) {
		leftover = cycleMembers(snap, closure, indegree)
	}
	return order, leftover
}

// cycleMembers narrows the unordered remainder of a failed Kahn pass down to
// the atoms actually sitting on a cycle, trimming atoms that are merely
// blocked behind one.
func cycleMembers(snap *graph.Snapshot, closure map[string]bool, indegree map[string]int) []string {
	remaining := make(map[string]bool, len(closure))
	for id := range closure {
		if indegree[id] > 0 {
			remaining[id] = true
		}
	}

	for changed := true; changed; {
		changed = false
		for id := range remaining {
			atom := snap.Atom(id)
			hasOut := false
			for _, edge := range atom.DependencyEdges() {
				if remaining[edge.TargetID] {
					hasOut = true
					break
				}
			}
			hasIn := false
			for _, in := range snap.Incoming(id) {
				if in.Edge.Type.IsDependency() && remaining[in.SourceID] {
					hasIn = true
					break
				}
			}
			if !hasOut || !hasIn {
				delete(remaining, id)
				changed = true
			}
		}
	}

	members := make([]string, 0, len(remaining))
	for id := range remaining {
		members = append(members, id)
	}
	sort.Strings(members)
	return members
}

// atomCost reads the configured cost attribute off the atom content,
// coercing numeric types, falling back to the default cost.
func atomCost(snap *graph.Snapshot, atomID string, constraints Constraints) float64 {
	atom := snap.Atom(atomID)
	if atom == nil {
		return constraints.DefaultCost
	}
	raw, ok := atom.Field(constraints.CostAttribute)
	if !ok {
		return constraints.DefaultCost
	}
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	default:
		return constraints.DefaultCost
	}
}
