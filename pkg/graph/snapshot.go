package graph

import (
	"sort"
)

// IncomingEdge pairs an edge with the atom that declared it, for reverse
// adjacency lookups.
type IncomingEdge struct {
	SourceID string
	Edge     Edge
}

// TypePair is an ordered (source type, target type) pair used by the edge
// compatibility table and the relationship suggester.
type TypePair struct {
	Source AtomType
	Target AtomType
}

// Snapshot is an immutable view of a knowledge graph supplied wholesale by
// the ingestion layer. All analyses operate on a snapshot; none mutate it, so
// a snapshot is safe for concurrent use. Incremental updates are modelled as
// building a new snapshot, never in-place mutation.
type Snapshot struct {
	atoms    map[string]*Atom
	atomIDs  []string // sorted, for deterministic iteration
	incoming map[string][]IncomingEdge
	modules  []Module

	// typePairFreq counts, per edge type, how often that edge type links each
	// (source type, target type) pair anywhere in the graph.
	typePairFreq map[TypePair]map[EdgeType]int

	edgeCount int
}

// NewSnapshot builds a snapshot and its adjacency indices from atoms and
// modules. Atom identifiers must be unique and non-empty; anything else about
// the graph (dangling targets, odd edge types) is the validator's business,
// not a construction failure.
func NewSnapshot(atoms []Atom, modules []Module) (*Snapshot, error) {
	s := &Snapshot{
		atoms:        make(map[string]*Atom, len(atoms)),
		atomIDs:      make([]string, 0, len(atoms)),
		incoming:     make(map[string][]IncomingEdge),
		modules:      append([]Module(nil), modules...),
		typePairFreq: make(map[TypePair]map[EdgeType]int),
	}

	for i := range atoms {
		a := atoms[i]
		if a.ID == "" {
			return nil, &ValidationError{Op: "NewSnapshot", Cause: ErrEmptyAtomID}
		}
		if _, exists := s.atoms[a.ID]; exists {
			return nil, &ValidationError{Op: "NewSnapshot", AtomID: a.ID, Cause: ErrDuplicateAtomID}
		}
		s.atoms[a.ID] = &a
		s.atomIDs = append(s.atomIDs, a.ID)
	}
	sort.Strings(s.atomIDs)

	for _, id := range s.atomIDs {
		a := s.atoms[id]
		for _, e := range a.Edges {
			s.edgeCount++
			s.incoming[e.TargetID] = append(s.incoming[e.TargetID], IncomingEdge{
				SourceID: a.ID,
				Edge:     e,
			})

			target, ok := s.atoms[e.TargetID]
			if !ok {
				continue // dangling, indexed nowhere but still counted
			}
			pair := TypePair{Source: a.Type, Target: target.Type}
			if s.typePairFreq[pair] == nil {
				s.typePairFreq[pair] = make(map[EdgeType]int)
			}
			s.typePairFreq[pair][e.Type]++
		}
	}

	return s, nil
}

// Atom returns the atom with the given ID, or nil when absent.
func (s *Snapshot) Atom(id string) *Atom {
	return s.atoms[id]
}

// AtomIDs returns all atom identifiers in ascending order. The returned slice
// must not be modified.
func (s *Snapshot) AtomIDs() []string {
	return s.atomIDs
}

// AtomCount returns the number of atoms in the snapshot.
func (s *Snapshot) AtomCount() int {
	return len(s.atoms)
}

// EdgeCount returns the number of declared edges, dangling targets included.
func (s *Snapshot) EdgeCount() int {
	return s.edgeCount
}

// Outgoing returns the atom's declared edges in declaration order.
func (s *Snapshot) Outgoing(id string) []Edge {
	if a, ok := s.atoms[id]; ok {
		return a.Edges
	}
	return nil
}

// Incoming returns the edges pointing at the given atom.
func (s *Snapshot) Incoming(id string) []IncomingEdge {
	return s.incoming[id]
}

// Modules returns the module groupings supplied at construction.
func (s *Snapshot) Modules() []Module {
	return s.modules
}

// TypePairEdgeCounts returns the edge-type frequency observed between atoms
// of the given type pair, or nil when no such edges exist.
func (s *Snapshot) TypePairEdgeCounts(pair TypePair) map[EdgeType]int {
	return s.typePairFreq[pair]
}

// Neighbors returns the distinct atom IDs adjacent to id in the undirected
// projection of the graph, excluding id itself and dangling targets.
func (s *Snapshot) Neighbors(id string) []string {
	seen := make(map[string]bool)
	for _, e := range s.Outgoing(id) {
		if e.TargetID != id && s.atoms[e.TargetID] != nil {
			seen[e.TargetID] = true
		}
	}
	for _, in := range s.incoming[id] {
		if in.SourceID != id {
			seen[in.SourceID] = true
		}
	}
	neighbors := make([]string, 0, len(seen))
	for n := range seen {
		neighbors = append(neighbors, n)
	}
	sort.Strings(neighbors)
	return neighbors
}

// HasEdgeBetween reports whether any edge exists between a and b in either
// direction.
func (s *Snapshot) HasEdgeBetween(a, b string) bool {
	for _, e := range s.Outgoing(a) {
		if e.TargetID == b {
			return true
		}
	}
	for _, e := range s.Outgoing(b) {
		if e.TargetID == a {
			return true
		}
	}
	return false
}
