package integrity

import (
	"github.com/clarityworks/graphmind/pkg/graph"
)

// edgeCompatibility is the fixed allowlist of (source type, target type)
// pairs permitted per edge type. Edges whose type, source type, or target
// type is unknown are never flagged, so forward-compatible data passes
// validation untouched.
var edgeCompatibility = map[graph.EdgeType][]graph.TypePair{
	graph.EdgeRequires: pairs(
		graph.AtomProcess, []graph.AtomType{graph.AtomSystem, graph.AtomDocument, graph.AtomProcess, graph.AtomControl},
		graph.AtomSystem, []graph.AtomType{graph.AtomSystem, graph.AtomDocument},
		graph.AtomControl, []graph.AtomType{graph.AtomSystem, graph.AtomProcess, graph.AtomDocument},
		graph.AtomDecision, []graph.AtomType{graph.AtomDocument, graph.AtomProcess},
	),
	graph.EdgeImplements: pairs(
		graph.AtomSystem, []graph.AtomType{graph.AtomProcess, graph.AtomPolicy, graph.AtomControl},
		graph.AtomProcess, []graph.AtomType{graph.AtomPolicy, graph.AtomRegulation},
		graph.AtomControl, []graph.AtomType{graph.AtomPolicy, graph.AtomRegulation},
	),
	graph.EdgeValidates: pairs(
		graph.AtomControl, []graph.AtomType{graph.AtomProcess, graph.AtomSystem, graph.AtomDocument},
		graph.AtomProcess, []graph.AtomType{graph.AtomDocument},
	),
	graph.EdgeDependsOn: pairs(
		graph.AtomProcess, []graph.AtomType{graph.AtomProcess, graph.AtomSystem, graph.AtomDecision, graph.AtomDocument, graph.AtomControl},
		graph.AtomSystem, []graph.AtomType{graph.AtomProcess, graph.AtomSystem, graph.AtomDocument},
		graph.AtomDecision, []graph.AtomType{graph.AtomProcess, graph.AtomSystem, graph.AtomDocument, graph.AtomDecision},
		graph.AtomDocument, []graph.AtomType{graph.AtomDocument, graph.AtomSystem},
		graph.AtomControl, []graph.AtomType{graph.AtomProcess, graph.AtomSystem, graph.AtomControl},
	),
	graph.EdgeTriggers: pairs(
		graph.AtomProcess, []graph.AtomType{graph.AtomProcess, graph.AtomDecision},
		graph.AtomDecision, []graph.AtomType{graph.AtomProcess},
		graph.AtomSystem, []graph.AtomType{graph.AtomProcess},
	),
	graph.EdgeEnables: pairs(
		graph.AtomSystem, []graph.AtomType{graph.AtomProcess, graph.AtomControl},
		graph.AtomPolicy, []graph.AtomType{graph.AtomProcess},
		graph.AtomControl, []graph.AtomType{graph.AtomProcess},
	),
	graph.EdgeDataFlowsTo: pairs(
		graph.AtomSystem, []graph.AtomType{graph.AtomSystem, graph.AtomDocument},
		graph.AtomProcess, []graph.AtomType{graph.AtomSystem, graph.AtomProcess, graph.AtomDocument},
	),
	graph.EdgeMitigates: pairs(
		graph.AtomControl, []graph.AtomType{graph.AtomRisk},
		graph.AtomPolicy, []graph.AtomType{graph.AtomRisk},
		graph.AtomProcess, []graph.AtomType{graph.AtomRisk},
	),
	graph.EdgeOwns: pairs(
		graph.AtomRole, []graph.AtomType{graph.AtomProcess, graph.AtomSystem, graph.AtomDocument, graph.AtomPolicy, graph.AtomRisk, graph.AtomControl},
	),
	graph.EdgeAffects: pairs(
		graph.AtomRisk, []graph.AtomType{graph.AtomProcess, graph.AtomSystem, graph.AtomDocument, graph.AtomPolicy},
		graph.AtomRegulation, []graph.AtomType{graph.AtomProcess, graph.AtomPolicy, graph.AtomControl},
		graph.AtomDecision, []graph.AtomType{graph.AtomProcess, graph.AtomSystem},
	),
	graph.EdgeGovernedBy: pairs(
		graph.AtomProcess, []graph.AtomType{graph.AtomPolicy, graph.AtomRegulation},
		graph.AtomSystem, []graph.AtomType{graph.AtomPolicy, graph.AtomRegulation},
		graph.AtomDocument, []graph.AtomType{graph.AtomPolicy, graph.AtomRegulation},
		graph.AtomControl, []graph.AtomType{graph.AtomPolicy, graph.AtomRegulation},
	),
	graph.EdgePerformedBy: pairs(
		graph.AtomProcess, []graph.AtomType{graph.AtomRole},
		graph.AtomControl, []graph.AtomType{graph.AtomRole},
		graph.AtomDecision, []graph.AtomType{graph.AtomRole},
	),
}

// compatIndex is edgeCompatibility rebuilt for O(1) lookup.
var compatIndex = func() map[graph.EdgeType]map[graph.TypePair]bool {
	idx := make(map[graph.EdgeType]map[graph.TypePair]bool, len(edgeCompatibility))
	for edgeType, allowed := range edgeCompatibility {
		set := make(map[graph.TypePair]bool, len(allowed))
		for _, p := range allowed {
			set[p] = true
		}
		idx[edgeType] = set
	}
	return idx
}()

func pairs(args ...any) []graph.TypePair {
	var out []graph.TypePair
	for i := 0; i < len(args); i += 2 {
		source := args[i].(graph.AtomType)
		for _, target := range args[i+1].([]graph.AtomType) {
			out = append(out, graph.TypePair{Source: source, Target: target})
		}
	}
	return out
}

// EdgeTypeAllowed reports whether an edge of the given type is permitted
// between the given source and target atom types. Unknown types always pass.
func EdgeTypeAllowed(edgeType graph.EdgeType, source, target graph.AtomType) bool {
	if edgeType == graph.EdgeUnknown || source == graph.AtomUnknown || target == graph.AtomUnknown {
		return true
	}
	allowed, ok := compatIndex[edgeType]
	if !ok {
		return true
	}
	return allowed[graph.TypePair{Source: source, Target: target}]
}
