package centrality

import (
	"fmt"
	"runtime"

	"github.com/go-playground/validator/v10"

	"github.com/clarityworks/graphmind/pkg/graph"
)

var validate = validator.New()

// BottleneckPolicy selects how the bottleneck threshold is derived from the
// betweenness distribution.
type BottleneckPolicy string

const (
	// PolicyMeanStdDev flags atoms whose betweenness exceeds
	// mean + StdDevFactor * stddev.
	PolicyMeanStdDev BottleneckPolicy = "mean_stddev"

	// PolicyTopDecile flags atoms in the top Quantile share of the
	// distribution (default the top 10%).
	PolicyTopDecile BottleneckPolicy = "top_decile"
)

// PageRankOptions configures the power iteration.
type PageRankOptions struct {
	Damping       float64 `json:"damping" validate:"gt=0,lt=1"`
	Tolerance     float64 `json:"tolerance" validate:"gt=0"`
	MaxIterations int     `json:"max_iterations" validate:"gte=1"`
}

// BottleneckOptions configures bottleneck flagging.
type BottleneckOptions struct {
	Policy       BottleneckPolicy `json:"policy" validate:"oneof=mean_stddev top_decile"`
	StdDevFactor float64          `json:"stddev_factor" validate:"gte=0"`
	Quantile     float64          `json:"quantile" validate:"gt=0,lt=1"`
}

// Options configures a centrality analysis. All knobs are explicit; nothing
// is read from globals.
type Options struct {
	// TopN limits the ranked result; 0 returns every atom.
	TopN       int               `json:"top_n" validate:"gte=0"`
	PageRank   PageRankOptions   `json:"pagerank"`
	Bottleneck BottleneckOptions `json:"bottleneck"`
	// Workers bounds the goroutines used for the per-source Brandes passes.
	Workers int `json:"workers"`
}

// DefaultOptions returns the standard analysis configuration.
func DefaultOptions() Options {
	return Options{
		TopN: 0,
		PageRank: PageRankOptions{
			Damping:       0.85,
			Tolerance:     1e-6,
			MaxIterations: 100,
		},
		Bottleneck: BottleneckOptions{
			Policy:       PolicyMeanStdDev,
			StdDevFactor: 2.0,
			Quantile:     0.1,
		},
		Workers: runtime.NumCPU(),
	}
}

// Validate rejects malformed options.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return &graph.ValidationError{
			Op:     "centrality.Options",
			Detail: fmt.Sprintf("%v", err),
			Cause:  graph.ErrInvalidConfig,
		}
	}
	return nil
}
