package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.AnalysesTotal == nil {
		t.Error("AnalysesTotal not initialized")
	}
	if r.AnalysisDuration == nil {
		t.Error("AnalysisDuration not initialized")
	}
	if r.GraphAtomsTotal == nil {
		t.Error("GraphAtomsTotal not initialized")
	}
	if r.GraphHealthScore == nil {
		t.Error("GraphHealthScore not initialized")
	}
	if r.AuditEntriesTotal == nil {
		t.Error("AuditEntriesTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestRecordAnalysis(t *testing.T) {
	r := NewRegistry()

	r.RecordAnalysis("centrality", "success", 100*time.Millisecond)
	r.RecordAnalysis("centrality", "success", 200*time.Millisecond)
	r.RecordAnalysis("centrality", "failure", 5*time.Millisecond)

	counter, err := r.AnalysesTotal.GetMetricWithLabelValues("centrality", "success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2 {
		t.Errorf("Counter value = %v, want 2", metric.Counter.GetValue())
	}
}

func TestUpdateGraphMetrics(t *testing.T) {
	r := NewRegistry()

	r.UpdateGraphMetrics(120, 340, 7)

	var metric dto.Metric
	if err := r.GraphAtomsTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 120 {
		t.Errorf("Atoms gauge = %v, want 120", metric.Gauge.GetValue())
	}

	if err := r.GraphEdgesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 340 {
		t.Errorf("Edges gauge = %v, want 340", metric.Gauge.GetValue())
	}
}

func TestRecordValidation(t *testing.T) {
	r := NewRegistry()

	r.RecordValidation(77, map[string]int{"error": 2, "warning": 1})

	var metric dto.Metric
	if err := r.GraphHealthScore.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 77 {
		t.Errorf("Health gauge = %v, want 77", metric.Gauge.GetValue())
	}

	gauge, err := r.IntegrityIssues.GetMetricWithLabelValues("error")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 2 {
		t.Errorf("Error issues gauge = %v, want 2", metric.Gauge.GetValue())
	}
}

func TestRecordAuditEntry(t *testing.T) {
	r := NewRegistry()

	r.RecordAuditEntry("plan", "failure")
	r.RecordAuditEntry("plan", "failure")

	counter, err := r.AuditEntriesTotal.GetMetricWithLabelValues("plan", "failure")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("Counter value = %v, want 2", metric.Counter.GetValue())
	}
}

// Gathering the registry exposes every metric family under its name.
func TestRegistry_Gather(t *testing.T) {
	r := NewRegistry()
	r.RecordAnalysis("validate", "success", time.Millisecond)
	r.UpdateGraphMetrics(1, 2, 3)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"graphmind_analyses_total",
		"graphmind_analysis_duration_seconds",
		"graphmind_graph_atoms_total",
	} {
		if !names[want] {
			t.Errorf("missing metric family %q", want)
		}
	}
}
