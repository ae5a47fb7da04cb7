package graph

import "strings"

// AtomType classifies an atom. Unrecognized tags map to AtomUnknown so that
// forward-compatible data never fails snapshot construction.
type AtomType string

const (
	AtomProcess    AtomType = "process"
	AtomDecision   AtomType = "decision"
	AtomSystem     AtomType = "system"
	AtomRegulation AtomType = "regulation"
	AtomRole       AtomType = "role"
	AtomDocument   AtomType = "document"
	AtomRisk       AtomType = "risk"
	AtomPolicy     AtomType = "policy"
	AtomControl    AtomType = "control"
	AtomUnknown    AtomType = "unknown"
)

// atomTypes is the closed set of recognized atom types.
var atomTypes = map[AtomType]bool{
	AtomProcess:    true,
	AtomDecision:   true,
	AtomSystem:     true,
	AtomRegulation: true,
	AtomRole:       true,
	AtomDocument:   true,
	AtomRisk:       true,
	AtomPolicy:     true,
	AtomControl:    true,
}

// ParseAtomType maps a raw tag to a recognized atom type, or AtomUnknown.
func ParseAtomType(s string) AtomType {
	if atomTypes[AtomType(s)] {
		return AtomType(s)
	}
	return AtomUnknown
}

// EdgeType classifies a directed relation between two atoms.
type EdgeType string

const (
	EdgeRequires    EdgeType = "requires"
	EdgeImplements  EdgeType = "implements"
	EdgeValidates   EdgeType = "validates"
	EdgeDependsOn   EdgeType = "depends_on"
	EdgeTriggers    EdgeType = "triggers"
	EdgeEnables     EdgeType = "enables"
	EdgeDataFlowsTo EdgeType = "data_flows_to"
	EdgeMitigates   EdgeType = "mitigates"
	EdgeOwns        EdgeType = "owns"
	EdgeAffects     EdgeType = "affects"
	EdgeGovernedBy  EdgeType = "governed_by"
	EdgePerformedBy EdgeType = "performed_by"
	EdgeUnknown     EdgeType = "unknown"
)

var edgeTypes = map[EdgeType]bool{
	EdgeRequires:    true,
	EdgeImplements:  true,
	EdgeValidates:   true,
	EdgeDependsOn:   true,
	EdgeTriggers:    true,
	EdgeEnables:     true,
	EdgeDataFlowsTo: true,
	EdgeMitigates:   true,
	EdgeOwns:        true,
	EdgeAffects:     true,
	EdgeGovernedBy:  true,
	EdgePerformedBy: true,
}

// ParseEdgeType maps a raw tag to a recognized edge type, or EdgeUnknown.
func ParseEdgeType(s string) EdgeType {
	if edgeTypes[EdgeType(s)] {
		return EdgeType(s)
	}
	return EdgeUnknown
}

// DependencyEdgeTypes is the requires/depends_on class of edges followed by
// cycle detection and the dependency planner.
var DependencyEdgeTypes = map[EdgeType]bool{
	EdgeRequires:  true,
	EdgeDependsOn: true,
}

// IsDependency reports whether the edge type belongs to the dependency class.
func (t EdgeType) IsDependency() bool {
	return DependencyEdgeTypes[t]
}

// Criticality is an ordered importance level.
type Criticality int

const (
	CriticalityLow Criticality = iota
	CriticalityMedium
	CriticalityHigh
	CriticalityCritical
)

var criticalityNames = map[Criticality]string{
	CriticalityLow:      "LOW",
	CriticalityMedium:   "MEDIUM",
	CriticalityHigh:     "HIGH",
	CriticalityCritical: "CRITICAL",
}

func (c Criticality) String() string {
	if name, ok := criticalityNames[c]; ok {
		return name
	}
	return "LOW"
}

// ParseCriticality maps a raw tag to a criticality level, case-insensitively,
// defaulting to LOW.
func ParseCriticality(s string) Criticality {
	for level, name := range criticalityNames {
		if strings.EqualFold(name, s) {
			return level
		}
	}
	return CriticalityLow
}

// Less reports whether c is strictly lower than other in the ordering
// LOW < MEDIUM < HIGH < CRITICAL.
func (c Criticality) Less(other Criticality) bool {
	return c < other
}

// MarshalText implements encoding.TextMarshaler so criticality serializes as
// its name rather than its ordinal.
func (c Criticality) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Criticality) UnmarshalText(text []byte) error {
	*c = ParseCriticality(string(text))
	return nil
}
