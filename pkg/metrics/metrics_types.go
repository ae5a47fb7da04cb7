package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the analysis core. It is explicitly
// constructed and passed down; there is no package-level instance.
type Registry struct {
	// Analysis Metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec

	// Graph Metrics
	GraphAtomsTotal   prometheus.Gauge
	GraphEdgesTotal   prometheus.Gauge
	GraphModulesTotal prometheus.Gauge
	GraphHealthScore  prometheus.Gauge
	IntegrityIssues   *prometheus.GaugeVec

	// Audit Metrics
	AuditEntriesTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initAnalysisMetrics()
	r.initGraphMetrics()
	r.initAuditMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
