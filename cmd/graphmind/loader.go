package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/clarityworks/graphmind/pkg/centrality"
	"github.com/clarityworks/graphmind/pkg/community"
	"github.com/clarityworks/graphmind/pkg/graph"
	"github.com/clarityworks/graphmind/pkg/integrity"
	"github.com/clarityworks/graphmind/pkg/planner"
)

// snapshotFile is the YAML shape of a graph snapshot on disk.
type snapshotFile struct {
	Atoms   []atomYAML   `yaml:"atoms"`
	Modules []moduleYAML `yaml:"modules"`
}

type atomYAML struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Type        string      `yaml:"type"`
	Category    string      `yaml:"category"`
	Status      string      `yaml:"status"`
	Criticality string      `yaml:"criticality"`
	Team        string      `yaml:"team"`
	Owner       string      `yaml:"owner"`
	Steward     string      `yaml:"steward"`
	Content     contentYAML `yaml:"content"`
	Edges       []edgeYAML  `yaml:"edges"`
}

type contentYAML struct {
	Description string         `yaml:"description"`
	Fields      map[string]any `yaml:"fields"`
}

type edgeYAML struct {
	Target      string `yaml:"target"`
	Type        string `yaml:"type"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

type moduleYAML struct {
	Name  string   `yaml:"name"`
	Atoms []string `yaml:"atoms"`
}

// loadSnapshot reads a YAML snapshot file and builds the immutable snapshot.
func loadSnapshot(path string) (*graph.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var file snapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	atoms := make([]graph.Atom, 0, len(file.Atoms))
	for _, a := range file.Atoms {
		atom := graph.Atom{
			ID:          a.ID,
			Name:        a.Name,
			Type:        graph.ParseAtomType(a.Type),
			Category:    a.Category,
			Status:      a.Status,
			Criticality: graph.ParseCriticality(a.Criticality),
			Team:        a.Team,
			Owner:       a.Owner,
			Steward:     a.Steward,
			Content: graph.Content{
				Description: a.Content.Description,
				Fields:      a.Content.Fields,
			},
		}
		for _, e := range a.Edges {
			atom.Edges = append(atom.Edges, graph.Edge{
				TargetID:    e.Target,
				Type:        graph.ParseEdgeType(e.Type),
				Label:       e.Label,
				Description: e.Description,
			})
		}
		atoms = append(atoms, atom)
	}

	modules := make([]graph.Module, 0, len(file.Modules))
	for _, m := range file.Modules {
		modules = append(modules, graph.Module{Name: m.Name, AtomIDs: m.Atoms})
	}

	return graph.NewSnapshot(atoms, modules)
}

// configFile holds per-analysis options. Absent sections keep their
// package defaults.
type configFile struct {
	LogLevel   string          `yaml:"log_level"`
	Integrity  *integrityYAML  `yaml:"integrity"`
	Centrality *centralityYAML `yaml:"centrality"`
	Community  *communityYAML  `yaml:"community"`
	Planner    *plannerYAML    `yaml:"planner"`
}

type integrityYAML struct {
	ErrorWeight   *float64 `yaml:"error_weight"`
	WarningWeight *float64 `yaml:"warning_weight"`
	InfoWeight    *float64 `yaml:"info_weight"`
}

type centralityYAML struct {
	TopN          *int     `yaml:"top_n"`
	Damping       *float64 `yaml:"damping"`
	Tolerance     *float64 `yaml:"tolerance"`
	MaxIterations *int     `yaml:"max_iterations"`
	Policy        *string  `yaml:"bottleneck_policy"`
	StdDevFactor  *float64 `yaml:"stddev_factor"`
	Quantile      *float64 `yaml:"quantile"`
	Workers       *int     `yaml:"workers"`
}

type communityYAML struct {
	MaxIterations *int `yaml:"max_iterations"`
	MinSize       *int `yaml:"min_size"`
}

type plannerYAML struct {
	MaxCost       *float64 `yaml:"max_cost"`
	CostAttribute *string  `yaml:"cost_attribute"`
	DefaultCost   *float64 `yaml:"default_cost"`
}

// appConfig is the merged, ready-to-use configuration.
type appConfig struct {
	LogLevel    string
	Integrity   integrity.Config
	Centrality  centrality.Options
	Community   community.Options
	Constraints planner.Constraints
}

func defaultConfig() appConfig {
	return appConfig{
		LogLevel:    "info",
		Integrity:   integrity.DefaultConfig(),
		Centrality:  centrality.DefaultOptions(),
		Community:   community.DefaultOptions(),
		Constraints: planner.DefaultConstraints(),
	}
}

// loadConfig overlays a YAML config file, when given, onto the defaults.
func loadConfig(path string) (appConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if s := file.Integrity; s != nil {
		setFloat(&cfg.Integrity.ErrorWeight, s.ErrorWeight)
		setFloat(&cfg.Integrity.WarningWeight, s.WarningWeight)
		setFloat(&cfg.Integrity.InfoWeight, s.InfoWeight)
	}
	if s := file.Centrality; s != nil {
		setInt(&cfg.Centrality.TopN, s.TopN)
		setFloat(&cfg.Centrality.PageRank.Damping, s.Damping)
		setFloat(&cfg.Centrality.PageRank.Tolerance, s.Tolerance)
		setInt(&cfg.Centrality.PageRank.MaxIterations, s.MaxIterations)
		if s.Policy != nil {
			cfg.Centrality.Bottleneck.Policy = centrality.BottleneckPolicy(*s.Policy)
		}
		setFloat(&cfg.Centrality.Bottleneck.StdDevFactor, s.StdDevFactor)
		setFloat(&cfg.Centrality.Bottleneck.Quantile, s.Quantile)
		setInt(&cfg.Centrality.Workers, s.Workers)
	}
	if s := file.Community; s != nil {
		setInt(&cfg.Community.MaxIterations, s.MaxIterations)
		setInt(&cfg.Community.MinSize, s.MinSize)
	}
	if s := file.Planner; s != nil {
		setFloat(&cfg.Constraints.MaxCost, s.MaxCost)
		if s.CostAttribute != nil {
			cfg.Constraints.CostAttribute = *s.CostAttribute
		}
		setFloat(&cfg.Constraints.DefaultCost, s.DefaultCost)
	}

	return cfg, nil
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
