package integrity

// Severity indicates the importance of an integrity issue.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText serializes the severity as its name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IssueKind categorizes an integrity issue.
type IssueKind string

const (
	KindCycle            IssueKind = "cycle"
	KindDanglingEdge     IssueKind = "dangling_edge"
	KindTypeMismatch     IssueKind = "type_mismatch"
	KindOrphanAtom       IssueKind = "orphan_atom"
	KindMissingAttribute IssueKind = "missing_attribute"
)

// Issue is a detected integrity defect. Issues are data, not errors: finding
// them is the validator's purpose. AtomIDs lists every atom involved so a
// caller can locate the defect.
type Issue struct {
	Kind        IssueKind `json:"kind"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
	AtomIDs     []string  `json:"atom_ids"`
}

// Report aggregates all issues found in a single validation pass.
type Report struct {
	Issues      []Issue          `json:"issues"`
	HealthScore float64          `json:"health_score"`
	Counts      map[Severity]int `json:"counts"`
}

// CycleStats summarizes the cycles found in a validation pass.
type CycleStats struct {
	TotalCycles   int     `json:"total_cycles"`
	ShortestCycle int     `json:"shortest_cycle"`
	LongestCycle  int     `json:"longest_cycle"`
	AverageLength float64 `json:"average_length"`
	SelfLoops     int     `json:"self_loops"`
}

// AnalyzeCycles computes statistics over the cycle issues of a report.
func AnalyzeCycles(report *Report) CycleStats {
	stats := CycleStats{}
	totalLength := 0

	for _, issue := range report.Issues {
		if issue.Kind != KindCycle {
			continue
		}
		length := len(issue.AtomIDs)
		stats.TotalCycles++
		totalLength += length

		if length == 1 {
			stats.SelfLoops++
		}
		if stats.ShortestCycle == 0 || length < stats.ShortestCycle {
			stats.ShortestCycle = length
		}
		if length > stats.LongestCycle {
			stats.LongestCycle = length
		}
	}

	if stats.TotalCycles > 0 {
		stats.AverageLength = float64(totalLength) / float64(stats.TotalCycles)
	}
	return stats
}
