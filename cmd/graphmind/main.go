package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/clarityworks/graphmind/pkg/audit"
	"github.com/clarityworks/graphmind/pkg/graph"
	"github.com/clarityworks/graphmind/pkg/logging"
	"github.com/clarityworks/graphmind/pkg/metrics"
)

const usage = `graphmind - knowledge graph analysis

Usage:
  graphmind <command> -snapshot <file.yaml> [options]

Commands:
  validate      Structural integrity report (cycles, dangling edges, health score)
  centrality    Degree, betweenness, and PageRank ranking with bottleneck flags
  community     Label-propagation community detection
  suggest       Heuristic relationship suggestions
  query         Predicate query with reasoning trace (-predicate path:comparator:value)
  plan          Cost-budgeted dependency plan (-target <atom-id>)
  audit-report  Run every analysis, record it, and print the compliance summary
  browse        Interactive snapshot browser

Common options:
  -snapshot <path>   YAML snapshot file (required)
  -config <path>     YAML options file
  -json              Emit JSON instead of rendered output
  -actor <name>      Actor recorded in the audit log (default "cli")
`

// app carries everything a command run needs.
type app struct {
	snap     *graph.Snapshot
	cfg      appConfig
	logger   logging.Logger
	registry *metrics.Registry
	recorder *audit.Recorder
	actor    string
	jsonOut  bool
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	snapshotPath := fs.String("snapshot", "", "YAML snapshot file")
	configPath := fs.String("config", "", "YAML options file")
	jsonOut := fs.Bool("json", false, "emit JSON")
	actor := fs.String("actor", "cli", "audit log actor")

	// Command-specific flags.
	target := fs.String("target", "", "target atom ID (plan)")
	goal := fs.String("goal", "", "plan goal description")
	limit := fs.Int("limit", 10, "suggestion limit (suggest)")
	var predicates predicateFlags
	fs.Var(&predicates, "predicate", "query predicate path:comparator:value (repeatable)")
	exportFormat := fs.String("export", "", "audit export format: json, csv, snappy")
	exportPath := fs.String("out", "", "audit export file")

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	if command == "help" || command == "-h" || command == "--help" {
		fmt.Print(usage)
		return
	}
	if *snapshotPath == "" {
		fmt.Fprintln(os.Stderr, "missing -snapshot")
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}

	snap, err := loadSnapshot(*snapshotPath)
	if err != nil {
		fatal(err)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	registry := metrics.NewRegistry()
	registry.UpdateGraphMetrics(snap.AtomCount(), snap.EdgeCount(), len(snap.Modules()))

	a := &app{
		snap:     snap,
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		recorder: audit.NewRecorder(audit.NewLog(), logger, registry),
		actor:    *actor,
		jsonOut:  *jsonOut,
	}

	switch command {
	case "validate":
		err = a.runValidate()
	case "centrality":
		err = a.runCentrality()
	case "community":
		err = a.runCommunity()
	case "suggest":
		err = a.runSuggest(*limit)
	case "query":
		err = a.runQuery(predicates)
	case "plan":
		err = a.runPlan(*goal, *target)
	case "audit-report":
		err = a.runAuditReport(*exportFormat, *exportPath)
	case "browse":
		err = a.runBrowse()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("error: %v", err)))
	os.Exit(1)
}
