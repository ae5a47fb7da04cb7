package centrality

import (
	"math"
	"sort"

	"github.com/clarityworks/graphmind/pkg/graph"
)

// AtomScore carries all centrality measures for a single atom. Rank 1 is the
// most important atom: ordering is by betweenness, then PageRank, then ID.
type AtomScore struct {
	AtomID      string  `json:"atom_id"`
	Degree      float64 `json:"degree"`
	Betweenness float64 `json:"betweenness"`
	PageRank    float64 `json:"pagerank"`
	Rank        int     `json:"rank"`
	Bottleneck  bool    `json:"bottleneck"`
}

// Result is a ranked centrality analysis over a snapshot.
type Result struct {
	Scores     []AtomScore `json:"scores"`
	Iterations int         `json:"pagerank_iterations"`
	Converged  bool        `json:"pagerank_converged"`
}

// Analyze computes degree, betweenness and PageRank centrality for every
// atom, flags bottlenecks per the configured policy, and returns the atoms
// ranked by composite importance.
func Analyze(snap *graph.Snapshot, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ids := snap.AtomIDs()
	betweenness := brandesBetweenness(snap, opts.Workers)
	pagerank, iterations, converged := pageRank(snap, opts.PageRank)
	degree := degreeCentrality(snap)
	threshold := bottleneckThreshold(betweenness, opts.Bottleneck)

	scores := make([]AtomScore, 0, len(ids))
	for _, id := range ids {
		b := betweenness[id]
		scores = append(scores, AtomScore{
			AtomID:      id,
			Degree:      degree[id],
			Betweenness: b,
			PageRank:    pagerank[id],
			Bottleneck:  b > 0 && b >= threshold,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Betweenness != scores[j].Betweenness {
			return scores[i].Betweenness > scores[j].Betweenness
		}
		if scores[i].PageRank != scores[j].PageRank {
			return scores[i].PageRank > scores[j].PageRank
		}
		return scores[i].AtomID < scores[j].AtomID
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}

	if opts.TopN > 0 && len(scores) > opts.TopN {
		scores = scores[:opts.TopN]
	}

	return &Result{
		Scores:     scores,
		Iterations: iterations,
		Converged:  converged,
	}, nil
}

// degreeCentrality returns (in + out) / (|V|-1) per atom, counting only
// edges whose target resolves.
func degreeCentrality(snap *graph.Snapshot) map[string]float64 {
	ids := snap.AtomIDs()
	degree := make(map[string]float64, len(ids))
	if len(ids) < 2 {
		for _, id := range ids {
			degree[id] = 0
		}
		return degree
	}

	norm := float64(len(ids) - 1)
	for _, id := range ids {
		out := 0
		for _, edge := range snap.Outgoing(id) {
			if snap.Atom(edge.TargetID) != nil {
				out++
			}
		}
		degree[id] = float64(out+len(snap.Incoming(id))) / norm
	}
	return degree
}

// bottleneckThreshold derives the flagging threshold from the betweenness
// distribution per the configured policy.
func bottleneckThreshold(betweenness map[string]float64, opts BottleneckOptions) float64 {
	if len(betweenness) == 0 {
		return math.Inf(1)
	}

	// Sorting fixes the float accumulation order, so the same distribution
	// always yields the same threshold.
	values := make([]float64, 0, len(betweenness))
	for _, v := range betweenness {
		values = append(values, v)
	}
	sort.Float64s(values)

	switch opts.Policy {
	case PolicyTopDecile:
		idx := int(math.Ceil(float64(len(values)) * (1 - opts.Quantile)))
		if idx >= len(values) {
			idx = len(values) - 1
		}
		return values[idx]
	default: // PolicyMeanStdDev
		mean := 0.0
		for _, v := range values {
			mean += v
		}
		mean /= float64(len(values))

		variance := 0.0
		for _, v := range values {
			variance += (v - mean) * (v - mean)
		}
		variance /= float64(len(values))

		return mean + opts.StdDevFactor*math.Sqrt(variance)
	}
}
