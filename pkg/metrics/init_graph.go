package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphAtomsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphmind_graph_atoms_total",
			Help: "Number of atoms in the analyzed snapshot",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphmind_graph_edges_total",
			Help: "Number of edges in the analyzed snapshot",
		},
	)

	r.GraphModulesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphmind_graph_modules_total",
			Help: "Number of modules in the analyzed snapshot",
		},
	)

	r.GraphHealthScore = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphmind_graph_health_score",
			Help: "Integrity health score of the last validated snapshot (0-100)",
		},
	)

	r.IntegrityIssues = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graphmind_integrity_issues",
			Help: "Integrity issues found in the last validation, by severity",
		},
		[]string{"severity"},
	)
}
