package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/clarityworks/graphmind/pkg/audit"
	"github.com/clarityworks/graphmind/pkg/centrality"
	"github.com/clarityworks/graphmind/pkg/community"
	"github.com/clarityworks/graphmind/pkg/integrity"
	"github.com/clarityworks/graphmind/pkg/planner"
	"github.com/clarityworks/graphmind/pkg/semquery"
	"github.com/clarityworks/graphmind/pkg/suggest"
)

// predicateFlags parses repeated -predicate path:comparator:value flags.
// Numeric values are coerced; the in comparator takes a comma-separated list.
type predicateFlags []semquery.Predicate

func (p *predicateFlags) String() string {
	parts := make([]string, len(*p))
	for i, pred := range *p {
		parts[i] = fmt.Sprintf("%s:%s:%v", pred.Path, pred.Comparator, pred.Value)
	}
	return strings.Join(parts, ",")
}

func (p *predicateFlags) Set(raw string) error {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 {
		return fmt.Errorf("predicate %q: want path:comparator:value", raw)
	}
	comparator := semquery.Comparator(parts[1])

	var value any
	if comparator == semquery.CompIn {
		items := strings.Split(parts[2], ",")
		coerced := make([]any, len(items))
		for i, item := range items {
			coerced[i] = coerceScalar(strings.TrimSpace(item))
		}
		value = coerced
	} else {
		value = coerceScalar(parts[2])
	}

	*p = append(*p, semquery.Predicate{Path: parts[0], Comparator: comparator, Value: value})
	return nil
}

func coerceScalar(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func (a *app) runValidate() error {
	start := time.Now()
	report, err := integrity.Validate(a.snap, a.cfg.Integrity)
	if err != nil {
		a.recorder.Failure(a.actor, audit.ActionValidate, time.Since(start), err)
		return err
	}

	issuesBySeverity := map[string]int{}
	for sev, n := range report.Counts {
		issuesBySeverity[sev.String()] = n
	}
	a.registry.RecordValidation(report.HealthScore, issuesBySeverity)
	a.recorder.Success(a.actor, audit.ActionValidate, time.Since(start), map[string]any{
		"health_score": report.HealthScore,
		"issues":       len(report.Issues),
	}, nil)

	if a.jsonOut {
		return emitJSON(report)
	}
	renderValidation(report)
	return nil
}

func (a *app) runCentrality() error {
	start := time.Now()
	result, err := centrality.Analyze(a.snap, a.cfg.Centrality)
	if err != nil {
		a.recorder.Failure(a.actor, audit.ActionCentrality, time.Since(start), err)
		return err
	}

	a.recorder.Success(a.actor, audit.ActionCentrality, time.Since(start), map[string]any{
		"scores":     len(result.Scores),
		"iterations": result.Iterations,
		"converged":  result.Converged,
	}, nil)

	if a.jsonOut {
		return emitJSON(result)
	}
	renderCentrality(result)
	return nil
}

func (a *app) runCommunity() error {
	start := time.Now()
	result, err := community.Detect(a.snap, a.cfg.Community)
	if err != nil {
		a.recorder.Failure(a.actor, audit.ActionCommunity, time.Since(start), err)
		return err
	}

	a.recorder.Success(a.actor, audit.ActionCommunity, time.Since(start), map[string]any{
		"communities": len(result.Communities),
		"unclustered": len(result.Unclustered),
	}, nil)

	if a.jsonOut {
		return emitJSON(result)
	}
	renderCommunities(result)
	return nil
}

func (a *app) runSuggest(limit int) error {
	start := time.Now()
	suggestions := suggest.Suggest(a.snap, limit)

	a.recorder.Success(a.actor, audit.ActionSuggest, time.Since(start), map[string]any{
		"suggestions": len(suggestions),
	}, nil)

	if a.jsonOut {
		return emitJSON(suggestions)
	}
	renderSuggestions(suggestions)
	return nil
}

func (a *app) runQuery(predicates []semquery.Predicate) error {
	start := time.Now()
	result, err := semquery.Query(a.snap, predicates)
	if err != nil {
		a.recorder.Failure(a.actor, audit.ActionQuery, time.Since(start), err)
		return err
	}

	a.recorder.Success(a.actor, audit.ActionQuery, time.Since(start), map[string]any{
		"matches": len(result.Matches),
		"path":    result.Path,
	}, result.Reasoning)

	if a.jsonOut {
		return emitJSON(result)
	}
	renderQuery(result)
	return nil
}

func (a *app) runPlan(goal, target string) error {
	if target == "" {
		return fmt.Errorf("plan requires -target")
	}
	if goal == "" {
		goal = "resolve " + target
	}

	start := time.Now()
	plan, err := planner.BuildPlan(a.snap, goal, target, a.cfg.Constraints)
	if err != nil {
		a.recorder.Failure(a.actor, audit.ActionPlan, time.Since(start), err)
		return err
	}

	a.recorder.Success(a.actor, audit.ActionPlan, time.Since(start), map[string]any{
		"steps":      len(plan.Steps),
		"total_cost": plan.TotalCost,
	}, nil)

	if a.jsonOut {
		return emitJSON(plan)
	}
	renderPlan(plan)
	return nil
}

// runAuditReport exercises every analysis against the snapshot, records each
// run, then reports over the accumulated log.
func (a *app) runAuditReport(exportFormat, exportPath string) error {
	from := time.Now()

	if err := a.runAll(); err != nil {
		return err
	}

	summary := a.recorder.Log().Report(from, time.Now())

	if exportFormat != "" {
		if err := a.exportAudit(exportFormat, exportPath); err != nil {
			return err
		}
	}

	if a.jsonOut {
		return emitJSON(summary)
	}
	renderAuditSummary(summary)
	return nil
}

// runAll runs the read-only analyses, recording successes and failures
// without stopping at the first failure.
func (a *app) runAll() error {
	start := time.Now()
	if report, err := integrity.Validate(a.snap, a.cfg.Integrity); err != nil {
		a.recorder.Failure(a.actor, audit.ActionValidate, time.Since(start), err)
	} else {
		a.recorder.Success(a.actor, audit.ActionValidate, time.Since(start), map[string]any{
			"health_score": report.HealthScore,
		}, nil)
	}

	start = time.Now()
	if result, err := centrality.Analyze(a.snap, a.cfg.Centrality); err != nil {
		a.recorder.Failure(a.actor, audit.ActionCentrality, time.Since(start), err)
	} else {
		a.recorder.Success(a.actor, audit.ActionCentrality, time.Since(start), map[string]any{
			"scores": len(result.Scores),
		}, nil)
	}

	start = time.Now()
	if result, err := community.Detect(a.snap, a.cfg.Community); err != nil {
		a.recorder.Failure(a.actor, audit.ActionCommunity, time.Since(start), err)
	} else {
		a.recorder.Success(a.actor, audit.ActionCommunity, time.Since(start), map[string]any{
			"communities": len(result.Communities),
		}, nil)
	}

	start = time.Now()
	suggestions := suggest.Suggest(a.snap, 0)
	a.recorder.Success(a.actor, audit.ActionSuggest, time.Since(start), map[string]any{
		"suggestions": len(suggestions),
	}, nil)

	return nil
}

func (a *app) exportAudit(format, path string) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	exporter := audit.NewExporter(a.recorder.Log())
	switch format {
	case "json":
		return exporter.ExportJSON(out, nil)
	case "csv":
		return exporter.ExportCSV(out, nil)
	case "snappy":
		return exporter.ExportJSONCompressed(out, nil)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func emitJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
