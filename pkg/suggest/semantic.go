package suggest

import (
	"context"

	"github.com/clarityworks/graphmind/pkg/graph"
)

// SemanticSuggestion is an edge proposal produced by an external inference
// service (typically LLM-backed). The core consumes these; it never
// computes them.
type SemanticSuggestion struct {
	SourceID   string         `json:"source_id"`
	TargetID   string         `json:"target_id"`
	Type       graph.EdgeType `json:"type"`
	Confidence float64        `json:"confidence"`
	Reasoning  string         `json:"reasoning"`
	Similarity float64        `json:"similarity"`
}

// SemanticSource is the seam for an external semantic suggestion provider.
type SemanticSource interface {
	Suggest(ctx context.Context, snap *graph.Snapshot) ([]SemanticSuggestion, error)
}

// Merged carries structural and semantic suggestions side by side. The two
// lists are additive: no reconciliation or deduplication is attempted, and
// callers decide how to present them.
type Merged struct {
	Structural []Suggestion         `json:"structural"`
	Semantic   []SemanticSuggestion `json:"semantic"`
}

// SuggestWithSemantic runs the structural suggester and, when a source is
// supplied, collects the external semantic list alongside it. A nil source
// yields an empty semantic list, never an error.
func SuggestWithSemantic(ctx context.Context, snap *graph.Snapshot, limit int, source SemanticSource) (*Merged, error) {
	merged := &Merged{
		Structural: Suggest(snap, limit),
		Semantic:   []SemanticSuggestion{},
	}

	if source != nil {
		semantic, err := source.Suggest(ctx, snap)
		if err != nil {
			return nil, err
		}
		merged.Semantic = semantic
	}

	return merged, nil
}
