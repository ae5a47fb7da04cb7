package metrics

import (
	"time"
)

// RecordAnalysis records an analysis run with its duration
func (r *Registry) RecordAnalysis(analysis, status string, duration time.Duration) {
	r.AnalysesTotal.WithLabelValues(analysis, status).Inc()
	r.AnalysisDuration.WithLabelValues(analysis).Observe(duration.Seconds())
}

// UpdateGraphMetrics updates the snapshot size gauges
func (r *Registry) UpdateGraphMetrics(atoms, edges, modules int) {
	r.GraphAtomsTotal.Set(float64(atoms))
	r.GraphEdgesTotal.Set(float64(edges))
	r.GraphModulesTotal.Set(float64(modules))
}

// RecordValidation updates the health gauge and per-severity issue counts
func (r *Registry) RecordValidation(healthScore float64, issuesBySeverity map[string]int) {
	r.GraphHealthScore.Set(healthScore)
	for severity, count := range issuesBySeverity {
		r.IntegrityIssues.WithLabelValues(severity).Set(float64(count))
	}
}

// RecordAuditEntry counts a recorded audit entry
func (r *Registry) RecordAuditEntry(action, status string) {
	r.AuditEntriesTotal.WithLabelValues(action, status).Inc()
}
