package integrity

import (
	"fmt"
	"strings"

	"github.com/clarityworks/graphmind/pkg/graph"
)

// Validate runs the full integrity pass over a snapshot: cycle detection,
// edge validation, and structural anomaly checks, in that order. Issues are
// returned as data; the only error surface is a rejected configuration.
func Validate(snap *graph.Snapshot, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	issues := make([]Issue, 0)
	issues = append(issues, cycleIssues(snap)...)
	issues = append(issues, edgeIssues(snap)...)
	issues = append(issues, structuralIssues(snap)...)

	counts := map[Severity]int{
		SeverityError:   0,
		SeverityWarning: 0,
		SeverityInfo:    0,
	}
	score := 100.0
	for _, issue := range issues {
		counts[issue.Severity]++
		score -= cfg.weight(issue.Severity)
	}
	if score < 0 {
		score = 0
	}

	return &Report{
		Issues:      issues,
		HealthScore: score,
		Counts:      counts,
	}, nil
}

// cycleIssues converts each detected dependency cycle into one issue naming
// exactly the atoms on the cycle.
func cycleIssues(snap *graph.Snapshot) []Issue {
	cycles := DetectCycles(snap)
	issues := make([]Issue, 0, len(cycles))

	for _, cycle := range cycles {
		desc := fmt.Sprintf("dependency cycle: %s", strings.Join(cycle, " -> "))
		if len(cycle) == 1 {
			desc = fmt.Sprintf("self-referencing dependency on atom %s", cycle[0])
		}
		issues = append(issues, Issue{
			Kind:        KindCycle,
			Severity:    SeverityError,
			Description: desc,
			AtomIDs:     append([]string(nil), cycle...),
		})
	}
	return issues
}

// edgeIssues flags dangling edge targets (error) and edges whose type is not
// permitted between the endpoint atom types (warning).
func edgeIssues(snap *graph.Snapshot) []Issue {
	issues := make([]Issue, 0)

	for _, id := range snap.AtomIDs() {
		source := snap.Atom(id)
		for _, edge := range source.Edges {
			target := snap.Atom(edge.TargetID)
			if target == nil {
				issues = append(issues, Issue{
					Kind:     KindDanglingEdge,
					Severity: SeverityError,
					Description: fmt.Sprintf("edge %s from atom %s points at missing atom %s",
						edge.Type, id, edge.TargetID),
					AtomIDs: []string{id},
				})
				continue
			}
			if !EdgeTypeAllowed(edge.Type, source.Type, target.Type) {
				issues = append(issues, Issue{
					Kind:     KindTypeMismatch,
					Severity: SeverityWarning,
					Description: fmt.Sprintf("edge type %s is not permitted from %s (%s) to %s (%s)",
						edge.Type, id, source.Type, edge.TargetID, target.Type),
					AtomIDs: []string{id, edge.TargetID},
				})
			}
		}
	}
	return issues
}

// structuralIssues flags orphan atoms and missing required attributes.
func structuralIssues(snap *graph.Snapshot) []Issue {
	issues := make([]Issue, 0)

	for _, id := range snap.AtomIDs() {
		atom := snap.Atom(id)

		if len(atom.Edges) == 0 && len(snap.Incoming(id)) == 0 {
			issues = append(issues, Issue{
				Kind:        KindOrphanAtom,
				Severity:    SeverityInfo,
				Description: fmt.Sprintf("atom %s has no edges in either direction", id),
				AtomIDs:     []string{id},
			})
		}

		var missing []string
		if atom.Name == "" {
			missing = append(missing, "name")
		}
		if atom.Type == graph.AtomUnknown || atom.Type == "" {
			missing = append(missing, "type")
		}
		if len(missing) > 0 {
			issues = append(issues, Issue{
				Kind:        KindMissingAttribute,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("atom %s is missing required attributes: %s", id, strings.Join(missing, ", ")),
				AtomIDs:     []string{id},
			})
		}
	}
	return issues
}
