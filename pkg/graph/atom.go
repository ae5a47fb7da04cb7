package graph

// Content is the free-form payload of an atom: a domain description plus
// optional structured sub-fields (for example costPerRequest or sourceURL).
type Content struct {
	Description string         `json:"description,omitempty"`
	Fields      map[string]any `json:"fields,omitempty"`
}

// Edge is a directed, typed relation from its owning atom to a target atom.
type Edge struct {
	TargetID    string   `json:"target_id"`
	Type        EdgeType `json:"type"`
	Label       string   `json:"label,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Atom is a typed node in the knowledge graph. An atom with no edges is a
// valid isolated node.
type Atom struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        AtomType    `json:"type"`
	Category    string      `json:"category,omitempty"`
	Status      string      `json:"status,omitempty"`
	Criticality Criticality `json:"criticality"`
	Team        string      `json:"team,omitempty"`
	Owner       string      `json:"owner,omitempty"`
	Steward     string      `json:"steward,omitempty"`
	Content     Content     `json:"content,omitempty"`
	Edges       []Edge      `json:"edges,omitempty"`
}

// Module is a named grouping of atom identifiers. Modules are classification
// context for suggestions and reporting; graph algorithms do not require them.
type Module struct {
	Name    string   `json:"name"`
	AtomIDs []string `json:"atom_ids"`
}

// DependencyEdges returns the atom's outgoing edges of the dependency class,
// in declaration order.
func (a *Atom) DependencyEdges() []Edge {
	deps := make([]Edge, 0, len(a.Edges))
	for _, e := range a.Edges {
		if e.Type.IsDependency() {
			deps = append(deps, e)
		}
	}
	return deps
}

// Field returns a structured content sub-field by name.
func (a *Atom) Field(name string) (any, bool) {
	if a.Content.Fields == nil {
		return nil, false
	}
	v, ok := a.Content.Fields[name]
	return v, ok
}
