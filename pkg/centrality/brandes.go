package centrality

import (
	"github.com/clarityworks/graphmind/pkg/graph"
	"github.com/clarityworks/graphmind/pkg/parallel"
)

// brandesBetweenness computes normalized node betweenness via Brandes
// accumulation: one BFS per source with back-propagation of pair
// dependencies, O(V*E) overall. Sources are processed in parallel and the
// per-source partial sums merged by addition, which is safe because the
// snapshot is immutable.
func brandesBetweenness(snap *graph.Snapshot, workers int) map[string]float64 {
	ids := snap.AtomIDs()
	betweenness := make(map[string]float64, len(ids))
	for _, id := range ids {
		betweenness[id] = 0
	}

	// Per-source partials are collected first and reduced in source order so
	// the floating-point summation order, and therefore the result, is
	// identical run to run.
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	partials := make([]map[string]float64, len(ids))
	parallel.ForEach(ids, workers, func(source string) {
		partials[index[source]] = brandesFromSource(snap, ids, source)
	})
	for _, delta := range partials {
		for _, id := range ids {
			if d, ok := delta[id]; ok {
				betweenness[id] += d
			}
		}
	}

	// Pair normalization for directed graphs
	if n := len(ids); n > 2 {
		factor := 1.0 / float64((n-1)*(n-2))
		for id := range betweenness {
			betweenness[id] *= factor
		}
	}
	return betweenness
}

// brandesFromSource runs the single-source phase: BFS shortest-path counting
// followed by dependency back-propagation over the BFS stack.
func brandesFromSource(snap *graph.Snapshot, ids []string, source string) map[string]float64 {
	stack := make([]string, 0, len(ids))
	predecessors := make(map[string][]string, len(ids))
	sigma := make(map[string]float64, len(ids))
	distance := make(map[string]int, len(ids))
	for _, id := range ids {
		distance[id] = -1
	}
	sigma[source] = 1
	distance[source] = 0

	queue := []string{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		stack = append(stack, v)

		for _, edge := range snap.Outgoing(v) {
			w := edge.TargetID
			if snap.Atom(w) == nil {
				continue
			}
			if distance[w] < 0 {
				queue = append(queue, w)
				distance[w] = distance[v] + 1
			}
			if distance[w] == distance[v]+1 {
				sigma[w] += sigma[v]
				predecessors[w] = append(predecessors[w], v)
			}
		}
	}

	delta := make(map[string]float64, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		for _, pred := range predecessors[w] {
			delta[pred] += (sigma[pred] / sigma[w]) * (1 + delta[w])
		}
	}
	delta[source] = 0
	return delta
}
