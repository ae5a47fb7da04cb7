package audit

import (
	"time"

	"github.com/clarityworks/graphmind/pkg/logging"
	"github.com/clarityworks/graphmind/pkg/metrics"
)

// Recorder ties the audit log, the structured logger, and the metrics
// registry together so every analysis run is recorded once through a single
// call. Logger and metrics are optional.
type Recorder struct {
	log     *Log
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewRecorder creates a recorder. A nil logger defaults to the nop logger;
// a nil registry disables metric updates.
func NewRecorder(log *Log, logger logging.Logger, reg *metrics.Registry) *Recorder {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Recorder{log: log, logger: logger, metrics: reg}
}

// Log returns the underlying audit log
func (r *Recorder) Log() *Log {
	return r.log
}

// Success records a successful analysis with its outcome summary.
func (r *Recorder) Success(actor string, action Action, duration time.Duration, summary map[string]any, reasoning []string) Entry {
	entry := r.log.Record(Entry{
		Actor:     actor,
		Action:    action,
		Status:    StatusSuccess,
		Summary:   summary,
		Reasoning: reasoning,
	})

	r.logger.Info("analysis recorded",
		logging.Actor(actor),
		logging.Analysis(string(action)),
		logging.Latency(duration),
	)
	if r.metrics != nil {
		r.metrics.RecordAnalysis(string(action), string(StatusSuccess), duration)
		r.metrics.RecordAuditEntry(string(action), string(StatusSuccess))
	}
	return entry
}

// Failure records a failed analysis with the error that stopped it.
func (r *Recorder) Failure(actor string, action Action, duration time.Duration, err error) Entry {
	summary := map[string]any{}
	if err != nil {
		summary["error"] = err.Error()
	}
	entry := r.log.Record(Entry{
		Actor:   actor,
		Action:  action,
		Status:  StatusFailure,
		Summary: summary,
	})

	r.logger.Error("analysis failed",
		logging.Actor(actor),
		logging.Analysis(string(action)),
		logging.Latency(duration),
		logging.Error(err),
	)
	if r.metrics != nil {
		r.metrics.RecordAnalysis(string(action), string(StatusFailure), duration)
		r.metrics.RecordAuditEntry(string(action), string(StatusFailure))
	}
	return entry
}
