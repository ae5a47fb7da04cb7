package semquery

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/clarityworks/graphmind/pkg/graph"
)

// Comparator is the comparison operation of a predicate.
type Comparator string

const (
	CompEquals   Comparator = "equals"
	CompLt       Comparator = "lt"
	CompLte      Comparator = "lte"
	CompGt       Comparator = "gt"
	CompGte      Comparator = "gte"
	CompContains Comparator = "contains"
	CompIn       Comparator = "in"
)

var comparators = map[Comparator]bool{
	CompEquals:   true,
	CompLt:       true,
	CompLte:      true,
	CompGt:       true,
	CompGte:      true,
	CompContains: true,
	CompIn:       true,
}

// Predicate is one filter condition: an attribute path, a comparator, and a
// comparison value. Paths address atom attributes (name, type, category,
// status, criticality, team, owner, steward) and content sub-fields
// (content.description, content.<field>). Unknown paths fail the predicate
// for every atom rather than erroring.
type Predicate struct {
	Path       string     `json:"path"`
	Comparator Comparator `json:"comparator"`
	Value      any        `json:"value"`
}

// validatePredicates rejects unsupported comparators before evaluation.
func validatePredicates(predicates []Predicate) error {
	for i, p := range predicates {
		if !comparators[p.Comparator] {
			return &graph.ValidationError{
				Op:     "semquery.Query",
				Detail: fmt.Sprintf("predicate %d: comparator %q", i, p.Comparator),
				Cause:  graph.ErrUnknownComparator,
			}
		}
		if p.Comparator == CompIn && !isSequence(p.Value) {
			return &graph.ValidationError{
				Op:     "semquery.Query",
				Detail: fmt.Sprintf("predicate %d: 'in' requires a sequence value, got %T", i, p.Value),
				Cause:  graph.ErrInvalidPredicate,
			}
		}
	}
	return nil
}

// resolvePath looks an attribute path up on an atom.
func resolvePath(atom *graph.Atom, path string) (any, bool) {
	switch path {
	case "id":
		return atom.ID, true
	case "name":
		return atom.Name, true
	case "type":
		return string(atom.Type), true
	case "category":
		return atom.Category, true
	case "status":
		return atom.Status, true
	case "criticality":
		return atom.Criticality, true
	case "team":
		return atom.Team, true
	case "owner":
		return atom.Owner, true
	case "steward":
		return atom.Steward, true
	case "content.description":
		return atom.Content.Description, true
	}
	if rest, ok := strings.CutPrefix(path, "content."); ok {
		return atom.Field(rest)
	}
	return nil, false
}

// evaluate applies one predicate to one atom. A predicate whose path does
// not resolve always fails.
func evaluate(atom *graph.Atom, p Predicate) bool {
	actual, ok := resolvePath(atom, p.Path)
	if !ok {
		return false
	}

	switch p.Comparator {
	case CompEquals:
		return equals(actual, p.Value)
	case CompLt, CompLte, CompGt, CompGte:
		return ordered(actual, p.Value, p.Comparator)
	case CompContains:
		return strings.Contains(
			strings.ToLower(stringify(actual)),
			strings.ToLower(stringify(p.Value)),
		)
	case CompIn:
		seq := reflect.ValueOf(p.Value)
		for i := 0; i < seq.Len(); i++ {
			if equals(actual, seq.Index(i).Interface()) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func equals(actual, expected any) bool {
	if af, aok := toFloat(actual); aok {
		if ef, eok := toFloat(expected); eok {
			return af == ef
		}
	}
	if c, ok := actual.(graph.Criticality); ok {
		return c == graph.ParseCriticality(stringify(expected))
	}
	return stringify(actual) == stringify(expected)
}

func ordered(actual, expected any, cmp Comparator) bool {
	var a, e float64

	if c, ok := actual.(graph.Criticality); ok {
		a = float64(c)
		e = float64(graph.ParseCriticality(stringify(expected)))
	} else {
		var aok, eok bool
		a, aok = toFloat(actual)
		e, eok = toFloat(expected)
		if !aok || !eok {
			return false
		}
	}

	switch cmp {
	case CompLt:
		return a < e
	case CompLte:
		return a <= e
	case CompGt:
		return a > e
	case CompGte:
		return a >= e
	default:
		return false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func isSequence(v any) bool {
	if v == nil {
		return false
	}
	kind := reflect.TypeOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
