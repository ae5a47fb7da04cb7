package audit

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action identifies which analysis produced an entry
type Action string

const (
	ActionValidate   Action = "validate"
	ActionCentrality Action = "centrality"
	ActionCommunity  Action = "community"
	ActionSuggest    Action = "suggest"
	ActionQuery      Action = "query"
	ActionPlan       Action = "plan"
	ActionReport     Action = "report"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Entry represents a single audit log record. Entries are immutable once
// recorded; the reasoning trace, when present, preserves the query engine
// output that produced the result.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Actor     string         `json:"actor"`
	Action    Action         `json:"action"`
	Status    Status         `json:"status"`
	Summary   map[string]any `json:"summary,omitempty"`
	Reasoning []string       `json:"reasoning,omitempty"`
}

// String returns a human-readable representation of an entry
func (e *Entry) String() string {
	return fmt.Sprintf("[%s] %s %s (actor: %s, status: %s)",
		e.Timestamp.Format(time.RFC3339),
		e.ID,
		e.Action,
		e.Actor,
		e.Status,
	)
}

// Filter represents filtering criteria for audit entries
type Filter struct {
	Actor     string
	Action    Action
	Status    Status
	StartTime *time.Time
	EndTime   *time.Time
}

func (f *Filter) matches(e *Entry) bool {
	if f == nil {
		return true
	}
	if f.Actor != "" && e.Actor != f.Actor {
		return false
	}
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.StartTime != nil && e.Timestamp.Before(*f.StartTime) {
		return false
	}
	if f.EndTime != nil && e.Timestamp.After(*f.EndTime) {
		return false
	}
	return true
}

// Log is an append-only audit record. Appends are serialized; readers see a
// consistent prefix and never a partially written entry. There are no
// mutation or removal operations.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewLog creates an empty audit log
func NewLog() *Log {
	return &Log{}
}

// Record appends an entry, assigning an ID and timestamp when unset. The
// assigned timestamp never precedes the previous entry's.
func (l *Log) Record(entry Entry) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if n := len(l.entries); n > 0 && entry.Timestamp.Before(l.entries[n-1].Timestamp) {
		entry.Timestamp = l.entries[n-1].Timestamp
	}

	l.entries = append(l.entries, entry)
	return entry
}

// Entries returns the entries matching the filter, in log order.
func (l *Log) Entries(filter *Filter) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]Entry, 0, len(l.entries))
	for i := range l.entries {
		if filter.matches(&l.entries[i]) {
			result = append(result, l.entries[i])
		}
	}
	return result
}

// Len returns the number of recorded entries
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
