package centrality

import (
	"math"

	"github.com/clarityworks/graphmind/pkg/graph"
)

// pageRank runs the standard power iteration with the configured damping
// factor, converging when the L1 change across all atoms drops below the
// tolerance or the iteration cap is reached. Scores are normalized to sum
// to 1; isolated atoms keep the base rank.
func pageRank(snap *graph.Snapshot, opts PageRankOptions) (scores map[string]float64, iterations int, converged bool) {
	ids := snap.AtomIDs()
	n := len(ids)
	scores = make(map[string]float64, n)
	if n == 0 {
		return scores, 0, true
	}

	initial := 1.0 / float64(n)
	for _, id := range ids {
		scores[id] = initial
	}

	// Out-degree counts resolvable targets only
	outDegree := make(map[string]int, n)
	for _, id := range ids {
		count := 0
		for _, edge := range snap.Outgoing(id) {
			if snap.Atom(edge.TargetID) != nil {
				count++
			}
		}
		outDegree[id] = count
	}

	next := make(map[string]float64, n)
	base := (1.0 - opts.Damping) / float64(n)

	for iterations < opts.MaxIterations {
		iterations++

		// Mass of atoms with no outgoing edges is redistributed uniformly so
		// the scores keep summing to 1.
		danglingMass := 0.0
		for _, id := range ids {
			if outDegree[id] == 0 {
				danglingMass += scores[id]
			}
		}

		for _, id := range ids {
			score := base + opts.Damping*danglingMass/float64(n)
			for _, in := range snap.Incoming(id) {
				if out := outDegree[in.SourceID]; out > 0 {
					score += opts.Damping * scores[in.SourceID] / float64(out)
				}
			}
			next[id] = score
		}

		l1 := 0.0
		for _, id := range ids {
			l1 += math.Abs(next[id] - scores[id])
		}

		scores, next = next, scores

		if l1 < opts.Tolerance {
			converged = true
			break
		}
	}

	// Guard against drift from repeated float accumulation. Summing in
	// sorted ID order keeps the result identical across runs.
	sum := 0.0
	for _, id := range ids {
		sum += scores[id]
	}
	if sum > 0 {
		for _, id := range ids {
			scores[id] /= sum
		}
	}

	return scores, iterations, converged
}
