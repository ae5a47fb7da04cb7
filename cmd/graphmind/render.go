package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clarityworks/graphmind/pkg/audit"
	"github.com/clarityworks/graphmind/pkg/centrality"
	"github.com/clarityworks/graphmind/pkg/community"
	"github.com/clarityworks/graphmind/pkg/integrity"
	"github.com/clarityworks/graphmind/pkg/planner"
	"github.com/clarityworks/graphmind/pkg/semquery"
	"github.com/clarityworks/graphmind/pkg/suggest"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

func severityStyle(sev integrity.Severity) lipgloss.Style {
	switch sev {
	case integrity.SeverityError:
		return errorStyle
	case integrity.SeverityWarning:
		return warnStyle
	default:
		return dimStyle
	}
}

func renderValidation(report *integrity.Report) {
	fmt.Println(titleStyle.Render("Integrity Report"))

	health := fmt.Sprintf("Health score: %.0f/100", report.HealthScore)
	switch {
	case report.HealthScore >= 90:
		fmt.Println(boxStyle.Render(okStyle.Render(health)))
	case report.HealthScore >= 60:
		fmt.Println(boxStyle.Render(warnStyle.Render(health)))
	default:
		fmt.Println(boxStyle.Render(errorStyle.Render(health)))
	}

	if len(report.Issues) == 0 {
		fmt.Println(okStyle.Render("No issues found"))
		return
	}

	for _, issue := range report.Issues {
		style := severityStyle(issue.Severity)
		fmt.Printf("%s %s %s\n",
			style.Render(fmt.Sprintf("[%s]", issue.Severity)),
			issue.Description,
			dimStyle.Render("("+strings.Join(issue.AtomIDs, ", ")+")"),
		)
	}
}

func renderCentrality(result *centrality.Result) {
	fmt.Println(titleStyle.Render("Centrality Ranking"))
	if !result.Converged {
		fmt.Println(warnStyle.Render(fmt.Sprintf("PageRank did not converge after %d iterations", result.Iterations)))
	}

	fmt.Printf("%-5s %-24s %-10s %-12s %-10s %s\n",
		"Rank", "Atom", "Degree", "Betweenness", "PageRank", "")
	for _, s := range result.Scores {
		flag := ""
		if s.Bottleneck {
			flag = errorStyle.Render("BOTTLENECK")
		}
		fmt.Printf("%-5d %-24s %-10.4f %-12.4f %-10.4f %s\n",
			s.Rank, s.AtomID, s.Degree, s.Betweenness, s.PageRank, flag)
	}
}

func renderCommunities(result *community.Result) {
	fmt.Println(titleStyle.Render("Communities"))

	for _, c := range result.Communities {
		types := make([]string, len(c.DominantTypes))
		for i, t := range c.DominantTypes {
			types[i] = string(t)
		}
		header := fmt.Sprintf("Community %d - %d atoms, cohesion %.2f, types: %s",
			c.ID, c.Size, c.Cohesion, strings.Join(types, ", "))
		fmt.Println(boxStyle.Render(header))
		fmt.Println(dimStyle.Render("  " + strings.Join(c.AtomIDs, ", ")))
	}
	if len(result.Unclustered) > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("Unclustered (%d): %s",
			len(result.Unclustered), strings.Join(result.Unclustered, ", "))))
	}
}

func renderSuggestions(suggestions []suggest.Suggestion) {
	fmt.Println(titleStyle.Render("Suggested Relationships"))
	if len(suggestions) == 0 {
		fmt.Println(dimStyle.Render("No suggestions"))
		return
	}

	for _, s := range suggestions {
		fmt.Printf("%s %s -> %s (%s)\n",
			okStyle.Render(fmt.Sprintf("%.2f", s.Confidence)),
			s.SourceID, s.TargetID, s.Type)
		fmt.Println(dimStyle.Render("  " + s.Justification))
	}
}

func renderQuery(result *semquery.Result) {
	fmt.Println(titleStyle.Render("Query Result"))
	fmt.Println(boxStyle.Render(result.Path))

	if len(result.Matches) == 0 {
		fmt.Println(dimStyle.Render("No matches"))
	} else {
		fmt.Println(okStyle.Render(strings.Join(result.Matches, ", ")))
	}

	if len(result.Reasoning) > 0 {
		fmt.Println(titleStyle.Render("Reasoning"))
		for _, line := range result.Reasoning {
			fmt.Println(dimStyle.Render("  " + line))
		}
	}
}

func renderPlan(plan *planner.Plan) {
	fmt.Println(titleStyle.Render("Dependency Plan"))
	fmt.Println(boxStyle.Render(fmt.Sprintf("%s - total cost %.4f", plan.Goal, plan.TotalCost)))

	for _, step := range plan.Steps {
		deps := ""
		if len(step.DependsOn) > 0 {
			deps = dimStyle.Render(" after " + strings.Join(step.DependsOn, ", "))
		}
		fmt.Printf("%s %-10s %s (cost %.4f)%s\n",
			okStyle.Render(step.ID), step.Action, step.AtomID, step.Cost, deps)
	}
}

func renderAuditSummary(summary *audit.Summary) {
	fmt.Println(titleStyle.Render("Compliance Summary"))
	fmt.Println(boxStyle.Render(fmt.Sprintf("%d entries from %s to %s",
		summary.Total,
		summary.From.Format("15:04:05"),
		summary.To.Format("15:04:05"))))

	section := func(name string, counts map[string]int) {
		if len(counts) == 0 {
			return
		}
		fmt.Println(titleStyle.Render(name))
		for k, v := range counts {
			fmt.Printf("  %-16s %d\n", k, v)
		}
	}
	section("By actor", summary.ByActor)
	section("By action", summary.ByAction)
	section("By status", summary.ByStatus)

	if len(summary.Traces) > 0 {
		fmt.Println(titleStyle.Render("Reasoning traces"))
		for _, trace := range summary.Traces {
			fmt.Printf("%s %s by %s\n", dimStyle.Render(trace.EntryID), trace.Action, trace.Actor)
			for _, line := range trace.Reasoning {
				fmt.Println(dimStyle.Render("  " + line))
			}
		}
	}
}
