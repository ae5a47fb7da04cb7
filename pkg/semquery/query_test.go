package semquery

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
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

func catalogAtoms() []graph.Atom {
	return []graph.Atom{
		{
			ID: "billing", Name: "Billing Service", Type: graph.AtomProcess,
			Category: "finance", Status: "active", Criticality: graph.CriticalityHigh,
			Team:    "payments",
			Content: graph.Content{Description: "Monthly invoice generation", Fields: map[string]any{"costPerRequest": 0.02}},
		},
		{
			ID: "ledger", Name: "General Ledger", Type: graph.AtomSystem,
			Category: "finance", Status: "active", Criticality: graph.CriticalityCritical,
			Team:    "payments",
			Content: graph.Content{Fields: map[string]any{"costPerRequest": 0.5}},
		},
		{
			ID: "newsletter", Name: "Newsletter Sender", Type: graph.AtomProcess,
			Category: "marketing", Status: "deprecated", Criticality: graph.CriticalityLow,
			Team: "growth",
		},
	}
}

// A query with no predicates matches every atom and produces no reasoning.
func TestQuery_NoPredicates(t *testing.T) {
	snap := buildSnapshot(t, catalogAtoms())

	res, err := Query(snap, nil)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !reflect.DeepEqual(res.Matches, []string{"billing", "ledger", "newsletter"}) {
		t.Errorf("matches = %v", res.Matches)
	}
	if len(res.Reasoning) != 0 {
		t.Errorf("expected empty reasoning, got %v", res.Reasoning)
	}
	if res.Path != "3 atoms" {
		t.Errorf("path = %q", res.Path)
	}
}

// Predicates apply as a conjunction, each narrowing the previous survivors.
func TestQuery_Conjunction(t *testing.T) {
	snap := buildSnapshot(t, catalogAtoms())

	res, err := Query(snap, []Predicate{
		{Path: "category", Comparator: CompEquals, Value: "finance"},
		{Path: "type", Comparator: CompEquals, Value: "process"},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !reflect.DeepEqual(res.Matches, []string{"billing"}) {
		t.Errorf("matches = %v", res.Matches)
	}

	want := "3 atoms -> category equals finance -> 2 atoms -> type equals process -> 1 atoms"
	if res.Path != want {
		t.Errorf("path = %q, want %q", res.Path, want)
	}

	// 3 checks for the first predicate, 2 for the survivors.
	if len(res.Reasoning) != 5 {
		t.Errorf("reasoning lines = %d, want 5", len(res.Reasoning))
	}
}

// The reasoning trace records pass and fail verdicts per atom.
func TestQuery_ReasoningVerdicts(t *testing.T) {
	snap := buildSnapshot(t, catalogAtoms())

	res, err := Query(snap, []Predicate{
		{Path: "status", Comparator: CompEquals, Value: "active"},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	var passes, fails int
	for _, line := range res.Reasoning {
		switch {
		case strings.HasSuffix(line, "-> pass"):
			passes++
		case strings.HasSuffix(line, "-> fail"):
			fails++
		default:
			t.Errorf("line without verdict: %q", line)
		}
	}
	if passes != 2 || fails != 1 {
		t.Errorf("passes=%d fails=%d, want 2/1", passes, fails)
	}
}

// Criticality compares by severity order, not lexically.
func TestQuery_CriticalityOrdering(t *testing.T) {
	snap := buildSnapshot(t, catalogAtoms())

	res, err := Query(snap, []Predicate{
		{Path: "criticality", Comparator: CompGte, Value: "high"},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !reflect.DeepEqual(res.Matches, []string{"billing", "ledger"}) {
		t.Errorf("matches = %v", res.Matches)
	}
}

// Numeric content fields support ordered comparison.
func TestQuery_NumericContentField(t *testing.T) {
	snap := buildSnapshot(t, catalogAtoms())

	res, err := Query(snap, []Predicate{
		{Path: "content.costPerRequest", Comparator: CompLt, Value: 0.1},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	// newsletter has no such field, so it fails the predicate.
	if !reflect.DeepEqual(res.Matches, []string{"billing"}) {
		t.Errorf("matches = %v", res.Matches)
	}
}

// contains matches case-insensitively on the resolved string.
func TestQuery_Contains(t *testing.T) {
	snap := buildSnapshot(t, catalogAtoms())

	res, err := Query(snap, []Predicate{
		{Path: "content.description", Comparator: CompContains, Value: "INVOICE"},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !reflect.DeepEqual(res.Matches, []string{"billing"}) {
		t.Errorf("matches = %v", res.Matches)
	}
}

// in accepts string and any-typed sequences.
func TestQuery_In(t *testing.T) {
	snap := buildSnapshot(t, catalogAtoms())

	res, err := Query(snap, []Predicate{
		{Path: "team", Comparator: CompIn, Value: []string{"growth", "platform"}},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !reflect.DeepEqual(res.Matches, []string{"newsletter"}) {
		t.Errorf("matches = %v", res.Matches)
	}

	res, err = Query(snap, []Predicate{
		{Path: "criticality", Comparator: CompIn, Value: []any{"low", "medium"}},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !reflect.DeepEqual(res.Matches, []string{"newsletter"}) {
		t.Errorf("criticality in: matches = %v", res.Matches)
	}
}

// An unknown attribute path fails the predicate for every atom but is not
// an error; the trace names the missing attribute.
func TestQuery_UnknownPath(t *testing.T) {
	snap := buildSnapshot(t, catalogAtoms())

	res, err := Query(snap, []Predicate{
		{Path: "flavour", Comparator: CompEquals, Value: "sweet"},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(res.Matches) != 0 {
		t.Errorf("matches = %v, want none", res.Matches)
	}
	found := false
	for _, line := range res.Reasoning {
		if strings.Contains(line, "not a known attribute") {
			found = true
		}
	}
	if !found {
		t.Error("trace does not mention the unknown attribute")
	}
}

// An unsupported comparator aborts the whole query.
func TestQuery_UnknownComparator(t *testing.T) {
	snap := buildSnapshot(t, catalogAtoms())

	_, err := Query(snap, []Predicate{
		{Path: "name", Comparator: "matches", Value: "x"},
	})
	if !errors.Is(err, graph.ErrUnknownComparator) {
		t.Fatalf("err = %v, want ErrUnknownComparator", err)
	}
	var verr *graph.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %T, want *graph.ValidationError", err)
	}
}

// in with a scalar value is rejected up front.
func TestQuery_InRequiresSequence(t *testing.T) {
	snap := buildSnapshot(t, catalogAtoms())

	_, err := Query(snap, []Predicate{
		{Path: "team", Comparator: CompIn, Value: "payments"},
	})
	if !errors.Is(err, graph.ErrInvalidPredicate) {
		t.Fatalf("err = %v, want ErrInvalidPredicate", err)
	}
}

// Queries never mutate the snapshot and are repeatable.
func TestQuery_Repeatable(t *testing.T) {
	snap := buildSnapshot(t, catalogAtoms())
	preds := []Predicate{
		{Path: "category", Comparator: CompEquals, Value: "finance"},
	}

	first, err := Query(snap, preds)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Query(snap, preds)
		if err != nil {
			t.Fatalf("Query run %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\n%v\n%v", i, first, again)
		}
	}
}

func TestQuery_EqualsCriticality(t *testing.T) {
	snap := buildSnapshot(t, catalogAtoms())

	res, err := Query(snap, []Predicate{
		{Path: "criticality", Comparator: CompEquals, Value: fmt.Sprint(graph.CriticalityCritical)},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !reflect.DeepEqual(res.Matches, []string{"ledger"}) {
		t.Errorf("matches = %v", res.Matches)
	}
}
