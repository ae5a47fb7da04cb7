package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clarityworks/graphmind/pkg/centrality"
	"github.com/clarityworks/graphmind/pkg/community"
	"github.com/clarityworks/graphmind/pkg/integrity"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#00FFFF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
)

type browseView int

const (
	atomsView browseView = iota
	centralityView
	issuesView
	communitiesView
	viewCount
)

var viewNames = []string{"Atoms", "Centrality", "Issues", "Communities"}

type browseKeyMap struct {
	Tab  key.Binding
	Quit key.Binding
}

var browseKeys = browseKeyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type browseModel struct {
	currentView browseView
	tables      [viewCount]table.Model
	width       int
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#005577")).
		Bold(false)
	return s
}

func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	t.SetStyles(tableStyles())
	return t
}

// newBrowseModel precomputes every view; the snapshot is immutable so the
// tables never refresh.
func (a *app) newBrowseModel() (browseModel, error) {
	var m browseModel

	var atomRows []table.Row
	for _, id := range a.snap.AtomIDs() {
		atom := a.snap.Atom(id)
		atomRows = append(atomRows, table.Row{
			atom.ID, atom.Name, string(atom.Type), atom.Category,
			atom.Criticality.String(), fmt.Sprintf("%d", len(atom.Edges)),
		})
	}
	m.tables[atomsView] = newTable([]table.Column{
		{Title: "ID", Width: 18},
		{Title: "Name", Width: 26},
		{Title: "Type", Width: 12},
		{Title: "Category", Width: 14},
		{Title: "Criticality", Width: 11},
		{Title: "Edges", Width: 6},
	}, atomRows)

	scores, err := centrality.Analyze(a.snap, a.cfg.Centrality)
	if err != nil {
		return m, err
	}
	var scoreRows []table.Row
	for _, s := range scores.Scores {
		flag := ""
		if s.Bottleneck {
			flag = "yes"
		}
		scoreRows = append(scoreRows, table.Row{
			fmt.Sprintf("%d", s.Rank), s.AtomID,
			fmt.Sprintf("%.4f", s.Betweenness),
			fmt.Sprintf("%.4f", s.PageRank),
			fmt.Sprintf("%.4f", s.Degree),
			flag,
		})
	}
	m.tables[centralityView] = newTable([]table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Atom", Width: 22},
		{Title: "Betweenness", Width: 12},
		{Title: "PageRank", Width: 10},
		{Title: "Degree", Width: 8},
		{Title: "Bottleneck", Width: 10},
	}, scoreRows)

	report, err := integrity.Validate(a.snap, a.cfg.Integrity)
	if err != nil {
		return m, err
	}
	var issueRows []table.Row
	for _, issue := range report.Issues {
		issueRows = append(issueRows, table.Row{
			issue.Severity.String(), string(issue.Kind),
			issue.Description, strings.Join(issue.AtomIDs, ", "),
		})
	}
	m.tables[issuesView] = newTable([]table.Column{
		{Title: "Severity", Width: 8},
		{Title: "Kind", Width: 14},
		{Title: "Description", Width: 44},
		{Title: "Atoms", Width: 22},
	}, issueRows)

	comms, err := community.Detect(a.snap, a.cfg.Community)
	if err != nil {
		return m, err
	}
	var commRows []table.Row
	for _, c := range comms.Communities {
		types := make([]string, len(c.DominantTypes))
		for i, t := range c.DominantTypes {
			types[i] = string(t)
		}
		commRows = append(commRows, table.Row{
			fmt.Sprintf("%d", c.ID),
			fmt.Sprintf("%d", c.Size),
			fmt.Sprintf("%.2f", c.Cohesion),
			strings.Join(types, ", "),
			strings.Join(c.AtomIDs, ", "),
		})
	}
	m.tables[communitiesView] = newTable([]table.Column{
		{Title: "ID", Width: 4},
		{Title: "Size", Width: 5},
		{Title: "Cohesion", Width: 9},
		{Title: "Types", Width: 18},
		{Title: "Members", Width: 44},
	}, commRows)

	return m, nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, browseKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, browseKeys.Tab):
			m.currentView = (m.currentView + 1) % viewCount
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tables[m.currentView], cmd = m.tables[m.currentView].Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	var tabs []string
	for i, name := range viewNames {
		if browseView(i) == m.currentView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")
	b.WriteString(m.tables[m.currentView].View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: next view  q: quit"))
	return b.String()
}

func (a *app) runBrowse() error {
	model, err := a.newBrowseModel()
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
