package integrity

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/clarityworks/graphmind/pkg/graph"
)

var validate = validator.New()

// Config controls how issue counts are aggregated into a health score.
// Weights are subtracted from 100 per issue of the matching severity; the
// score floors at 0.
type Config struct {
	ErrorWeight   float64 `json:"error_weight" validate:"gte=0,lte=100"`
	WarningWeight float64 `json:"warning_weight" validate:"gte=0,lte=100"`
	InfoWeight    float64 `json:"info_weight" validate:"gte=0,lte=100"`
}

// DefaultConfig returns the standard scoring weights.
func DefaultConfig() Config {
	return Config{
		ErrorWeight:   10,
		WarningWeight: 3,
		InfoWeight:    0,
	}
}

// Validate rejects out-of-range weights.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &graph.ValidationError{
			Op:     "integrity.Config",
			Detail: fmt.Sprintf("weights must be in [0,100]: %v", err),
			Cause:  graph.ErrInvalidConfig,
		}
	}
	return nil
}

// weight returns the configured deduction for a severity.
func (c Config) weight(s Severity) float64 {
	switch s {
	case SeverityError:
		return c.ErrorWeight
	case SeverityWarning:
		return c.WarningWeight
	case SeverityInfo:
		return c.InfoWeight
	default:
		return 0
	}
}
