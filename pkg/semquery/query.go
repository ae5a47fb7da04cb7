package semquery

import (
	"fmt"
	"strings"

	"github.com/clarityworks/graphmind/pkg/graph"
)

// Result holds the atoms matching a query together with a reasoning trace.
// Matches is sorted by atom ID. Reasoning has one line per predicate check
// against a surviving candidate, in evaluation order. Path is the funnel
// summary ("5 atoms -> type equals process -> 2 atoms").
type Result struct {
	Matches   []string `json:"matches"`
	Reasoning []string `json:"reasoning"`
	Path      string   `json:"path"`
}

// Query evaluates predicates as a conjunction against every atom in the
// snapshot. Predicates apply in the supplied order, each narrowing the
// candidate set from the previous one. With no predicates every atom
// matches and the reasoning trace is empty.
func Query(snap *graph.Snapshot, predicates []Predicate) (*Result, error) {
	if err := validatePredicates(predicates); err != nil {
		return nil, err
	}

	candidates := snap.AtomIDs()
	reasoning := make([]string, 0, len(candidates)*len(predicates))
	funnel := []string{fmt.Sprintf("%d atoms", len(candidates))}

	for _, p := range predicates {
		next := candidates[:0:0]
		for _, id := range candidates {
			atom := snap.Atom(id)
			pass := evaluate(atom, p)
			reasoning = append(reasoning, traceLine(atom, p, pass))
			if pass {
				next = append(next, id)
			}
		}
		candidates = next
		funnel = append(funnel,
			describePredicate(p),
			fmt.Sprintf("%d atoms", len(candidates)),
		)
	}

	return &Result{
		Matches:   candidates,
		Reasoning: reasoning,
		Path:      strings.Join(funnel, " -> "),
	}, nil
}

func traceLine(atom *graph.Atom, p Predicate, pass bool) string {
	verdict := "fail"
	if pass {
		verdict = "pass"
	}
	actual, ok := resolvePath(atom, p.Path)
	if !ok {
		return fmt.Sprintf("%s: %s is not a known attribute -> fail", atom.ID, p.Path)
	}
	return fmt.Sprintf("%s: %s=%v %s %v -> %s",
		atom.ID, p.Path, actual, p.Comparator, p.Value, verdict)
}

func describePredicate(p Predicate) string {
	return fmt.Sprintf("%s %s %v", p.Path, p.Comparator, p.Value)
}
