package integrity

import (
	"github.com/clarityworks/graphmind/pkg/graph"
)

// Cycle is a detected cycle as a sequence of atom IDs in path order. A
// self-loop is a 1-atom cycle.
type Cycle []string

const (
	white = 0 // unvisited
	gray  = 1 // currently visiting (on the recursion stack)
	black = 2 // finished visiting
)

// DetectCycles finds cycles in the directed graph induced by the
// requires/depends_on edge class, using depth-first search with three-color
// marking. A back edge to a gray atom means the target is on the recursion
// stack, so the path between them is a cycle. Every component is visited
// exactly once: O(V+E).
func DetectCycles(snap *graph.Snapshot) []Cycle {
	color := make(map[string]int, snap.AtomCount())
	parent := make(map[string]string, snap.AtomCount())
	cycles := make([]Cycle, 0)

	for _, id := range snap.AtomIDs() {
		if color[id] == white {
			dfsDetectCycle(snap, id, color, parent, &cycles)
		}
	}

	return cycles
}

func dfsDetectCycle(snap *graph.Snapshot, atomID string, color map[string]int, parent map[string]string, cycles *[]Cycle) {
	color[atomID] = gray

	for _, edge := range snap.Outgoing(atomID) {
		if !edge.Type.IsDependency() {
			continue
		}
		neighbor := edge.TargetID
		if snap.Atom(neighbor) == nil {
			continue // dangling, reported by the edge pass
		}

		// Self-loop is a 1-atom cycle
		if neighbor == atomID {
			*cycles = append(*cycles, Cycle{atomID})
			continue
		}

		switch color[neighbor] {
		case white:
			parent[neighbor] = atomID
			dfsDetectCycle(snap, neighbor, color, parent, cycles)
		case gray:
			// Back edge: trace parents from here back to the gray target
			*cycles = append(*cycles, extractCycle(neighbor, atomID, parent))
		}
		// black means forward/cross edge: no cycle through it
	}

	color[atomID] = black
}

// extractCycle reconstructs the cycle closed by a back edge end->start.
func extractCycle(start, end string, parent map[string]string) Cycle {
	cycle := Cycle{start}
	for current := end; current != start; {
		cycle = append(cycle, current)
		p, ok := parent[current]
		if !ok {
			break
		}
		current = p
	}
	return cycle
}

// HasDependencyCycle reports whether any dependency-class cycle exists,
// returning on the first back edge found.
func HasDependencyCycle(snap *graph.Snapshot) bool {
	color := make(map[string]int, snap.AtomCount())

	for _, id := range snap.AtomIDs() {
		if color[id] == white && hasCycleDFS(snap, id, color) {
			return true
		}
	}
	return false
}

func hasCycleDFS(snap *graph.Snapshot, atomID string, color map[string]int) bool {
	color[atomID] = gray

	for _, edge := range snap.Outgoing(atomID) {
		if !edge.Type.IsDependency() || snap.Atom(edge.TargetID) == nil {
			continue
		}
		neighbor := edge.TargetID
		if neighbor == atomID {
			return true
		}
		switch color[neighbor] {
		case white:
			if hasCycleDFS(snap, neighbor, color) {
				return true
			}
		case gray:
			return true
		}
	}

	color[atomID] = black
	return false
}
