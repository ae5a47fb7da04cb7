// Package suggest proposes likely-missing edges from purely structural
// signals: shared neighbourhoods, type-pair frequency among existing edges,
// and category/module co-membership. Semantic (LLM-backed) suggestions are
// consumed from an external source and merged alongside, never computed here.
package suggest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clarityworks/graphmind/pkg/graph"
)

// Scoring weights for the structural confidence. The components are bounded
// so a suggestion can never exceed confidence 1.
const (
	weightSharedNeighbors = 0.5
	weightTypeAffinity    = 0.3
	weightCategoryMatch   = 0.1
	weightModuleMatch     = 0.1
)

// Suggestion is a proposed edge between two currently unconnected atoms.
type Suggestion struct {
	SourceID      string         `json:"source_id"`
	TargetID      string         `json:"target_id"`
	Type          graph.EdgeType `json:"type"`
	Confidence    float64        `json:"confidence"`
	Justification string         `json:"justification"`
}

// Suggest returns up to limit edge proposals ordered by descending
// confidence, ties broken by the pair's IDs. A limit of 0 returns every
// candidate. Candidate pairs are those with at least one shared neighbour or
// a matching category.
func Suggest(snap *graph.Snapshot, limit int) []Suggestion {
	ids := snap.AtomIDs()

	neighborSets := make(map[string]map[string]bool, len(ids))
	for _, id := range ids {
		set := make(map[string]bool)
		for _, n := range snap.Neighbors(id) {
			set[n] = true
		}
		neighborSets[id] = set
	}

	moduleSets := make(map[string]map[string]bool)
	for _, m := range snap.Modules() {
		for _, id := range m.AtomIDs {
			if moduleSets[id] == nil {
				moduleSets[id] = make(map[string]bool)
			}
			moduleSets[id][m.Name] = true
		}
	}

	suggestions := make([]Suggestion, 0)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			if snap.HasEdgeBetween(a, b) {
				continue
			}

			shared := intersectCount(neighborSets[a], neighborSets[b])
			atomA, atomB := snap.Atom(a), snap.Atom(b)
			categoryMatch := atomA.Category != "" && atomA.Category == atomB.Category
			if shared == 0 && !categoryMatch {
				continue
			}

			s := score(snap, atomA, atomB, shared, neighborSets, categoryMatch, moduleSets)
			if s.Confidence > 0 {
				suggestions = append(suggestions, s)
			}
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		if suggestions[i].SourceID != suggestions[j].SourceID {
			return suggestions[i].SourceID < suggestions[j].SourceID
		}
		return suggestions[i].TargetID < suggestions[j].TargetID
	})

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// score computes the confidence and proposed edge for one candidate pair.
func score(snap *graph.Snapshot, a, b *graph.Atom, shared int, neighborSets map[string]map[string]bool, categoryMatch bool, moduleSets map[string]map[string]bool) Suggestion {
	var reasons []string

	// Jaccard overlap of the two neighbourhoods
	union := len(neighborSets[a.ID]) + len(neighborSets[b.ID]) - shared
	jaccard := 0.0
	if union > 0 {
		jaccard = float64(shared) / float64(union)
	}
	if shared > 0 {
		reasons = append(reasons, fmt.Sprintf("%d shared neighbour(s)", shared))
	}

	// How often the graph already links atoms of these types, in either
	// direction; the stronger direction also decides the proposal.
	source, target := a, b
	edgeType, forward := dominantEdgeType(snap, a.Type, b.Type)
	reverseType, reverse := dominantEdgeType(snap, b.Type, a.Type)
	freq := forward
	if reverse > forward {
		source, target = b, a
		edgeType, freq = reverseType, reverse
	}
	affinity := float64(freq) / float64(freq+1)
	if freq > 0 {
		reasons = append(reasons, fmt.Sprintf("%s edges already link %s to %s atoms %d time(s)",
			edgeType, source.Type, target.Type, freq))
	} else {
		edgeType = graph.EdgeDependsOn
	}

	category := 0.0
	if categoryMatch {
		category = 1.0
		reasons = append(reasons, fmt.Sprintf("both categorised as %q", a.Category))
	}

	module := 0.0
	for name := range moduleSets[a.ID] {
		if moduleSets[b.ID][name] {
			module = 1.0
			reasons = append(reasons, fmt.Sprintf("co-members of module %q", name))
			break
		}
	}

	confidence := weightSharedNeighbors*jaccard +
		weightTypeAffinity*affinity +
		weightCategoryMatch*category +
		weightModuleMatch*module
	if confidence > 1 {
		confidence = 1
	}

	return Suggestion{
		SourceID:      source.ID,
		TargetID:      target.ID,
		Type:          edgeType,
		Confidence:    confidence,
		Justification: strings.Join(reasons, "; "),
	}
}

// dominantEdgeType returns the most frequent edge type observed between
// atoms of the given type pair elsewhere in the graph, and its count.
func dominantEdgeType(snap *graph.Snapshot, source, target graph.AtomType) (graph.EdgeType, int) {
	counts := snap.TypePairEdgeCounts(graph.TypePair{Source: source, Target: target})
	best, bestCount := graph.EdgeDependsOn, 0
	for edgeType, count := range counts {
		if count > bestCount || (count == bestCount && edgeType < best) {
			best, bestCount = edgeType, count
		}
	}
	return best, bestCount
}

func intersectCount(a, b map[string]bool) int {
	small, big := a, b
	if len(a) > len(b) {
		small, big = b, a
	}
	count := 0
	for id := range small {
		if big[id] {
			count++
		}
	}
	return count
}
