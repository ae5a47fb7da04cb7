// Package community partitions a snapshot's atoms into cohesive groups using
// deterministic label propagation over the undirected projection of the
// graph.
package community

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/clarityworks/graphmind/pkg/graph"
)

var validate = validator.New()

// Options configures community detection.
type Options struct {
	// MaxIterations caps the propagation rounds.
	MaxIterations int `json:"max_iterations" validate:"gte=1"`
	// MinSize is the smallest community kept; smaller groups are merged
	// into the unclustered set.
	MinSize int `json:"min_size" validate:"gte=1"`
}

// DefaultOptions returns the standard detection configuration.
func DefaultOptions() Options {
	return Options{
		MaxIterations: 20,
		MinSize:       3,
	}
}

// Validate rejects malformed options.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return &graph.ValidationError{
			Op:     "community.Options",
			Detail: fmt.Sprintf("%v", err),
			Cause:  graph.ErrInvalidConfig,
		}
	}
	return nil
}

// Community is one detected group of atoms.
type Community struct {
	ID      int      `json:"id"`
	AtomIDs []string `json:"atom_ids"`
	Size    int      `json:"size"`
	// Cohesion is the fraction of possible intra-community undirected edges
	// actually present.
	Cohesion float64 `json:"cohesion"`
	// DominantTypes lists the modal atom type(s), as naming hints.
	DominantTypes []graph.AtomType `json:"dominant_types"`
}

// Result is a full partition of the snapshot's atoms.
type Result struct {
	Communities []Community    `json:"communities"`
	Assignments map[string]int `json:"assignments"`
	// Unclustered holds atoms whose group fell below MinSize. Their
	// assignment is -1.
	Unclustered []string `json:"unclustered"`
}

// Detect partitions atoms by label propagation. Atoms are visited in
// ascending ID order each round and adopt the most frequent neighbour label,
// smallest label winning ties, so identical inputs always produce identical
// partitions.
func Detect(snap *graph.Snapshot, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ids := snap.AtomIDs()
	labels := make(map[string]string, len(ids))
	for _, id := range ids {
		labels[id] = id
	}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		changed := false
		for _, id := range ids {
			best := dominantNeighborLabel(snap, id, labels)
			if best != "" && best != labels[id] {
				labels[id] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return buildResult(snap, labels, opts), nil
}

// dominantNeighborLabel returns the most frequent label among an atom's
// undirected neighbours, counted per edge; ties break to the smallest label.
// Empty when the atom has no neighbours.
func dominantNeighborLabel(snap *graph.Snapshot, id string, labels map[string]string) string {
	counts := make(map[string]int)
	for _, edge := range snap.Outgoing(id) {
		if edge.TargetID != id && snap.Atom(edge.TargetID) != nil {
			counts[labels[edge.TargetID]]++
		}
	}
	for _, in := range snap.Incoming(id) {
		if in.SourceID != id {
			counts[labels[in.SourceID]]++
		}
	}

	best, bestCount := "", 0
	for label, count := range counts {
		if count > bestCount || (count == bestCount && (best == "" || label < best)) {
			best, bestCount = label, count
		}
	}
	return best
}

// buildResult groups atoms by final label and computes per-community
// statistics, merging undersized groups into the unclustered set.
func buildResult(snap *graph.Snapshot, labels map[string]string, opts Options) *Result {
	groups := make(map[string][]string)
	for _, id := range snap.AtomIDs() {
		groups[labels[id]] = append(groups[labels[id]], id)
	}

	// Deterministic community numbering: order groups by their smallest
	// member (members are already sorted because AtomIDs is sorted).
	groupKeys := make([]string, 0, len(groups))
	for label := range groups {
		groupKeys = append(groupKeys, label)
	}
	sort.Slice(groupKeys, func(i, j int) bool {
		return groups[groupKeys[i]][0] < groups[groupKeys[j]][0]
	})

	result := &Result{
		Communities: make([]Community, 0, len(groupKeys)),
		Assignments: make(map[string]int, snap.AtomCount()),
		Unclustered: make([]string, 0),
	}

	for _, label := range groupKeys {
		members := groups[label]
		if len(members) < opts.MinSize {
			result.Unclustered = append(result.Unclustered, members...)
			for _, id := range members {
				result.Assignments[id] = -1
			}
			continue
		}

		id := len(result.Communities)
		for _, member := range members {
			result.Assignments[member] = id
		}
		result.Communities = append(result.Communities, Community{
			ID:            id,
			AtomIDs:       members,
			Size:          len(members),
			Cohesion:      cohesion(snap, members),
			DominantTypes: dominantTypes(snap, members),
		})
	}

	sort.Strings(result.Unclustered)
	return result
}

// cohesion is intra-community undirected edge pairs present over pairs
// possible, k*(k-1)/2.
func cohesion(snap *graph.Snapshot, members []string) float64 {
	k := len(members)
	if k < 2 {
		return 0
	}

	inCommunity := make(map[string]bool, k)
	for _, id := range members {
		inCommunity[id] = true
	}

	connected := make(map[[2]string]bool)
	for _, id := range members {
		for _, edge := range snap.Outgoing(id) {
			if edge.TargetID == id || !inCommunity[edge.TargetID] {
				continue
			}
			a, b := id, edge.TargetID
			if b < a {
				a, b = b, a
			}
			connected[[2]string{a, b}] = true
		}
	}

	possible := float64(k*(k-1)) / 2
	return float64(len(connected)) / possible
}

// dominantTypes returns the modal atom type(s) of the members, sorted.
func dominantTypes(snap *graph.Snapshot, members []string) []graph.AtomType {
	counts := make(map[graph.AtomType]int)
	maxCount := 0
	for _, id := range members {
		t := snap.Atom(id).Type
		counts[t]++
		if counts[t] > maxCount {
			maxCount = counts[t]
		}
	}

	var dominant []graph.AtomType
	for t, count := range counts {
		if count == maxCount {
			dominant = append(dominant, t)
		}
	}
	sort.Slice(dominant, func(i, j int) bool { return dominant[i] < dominant[j] })
	return dominant
}
