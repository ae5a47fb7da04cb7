package audit

import (
	"time"
)

// Trace pairs an entry with the reasoning it carried.
type Trace struct {
	EntryID   string    `json:"entry_id"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    Action    `json:"action"`
	Reasoning []string  `json:"reasoning"`
}

// Summary aggregates the entries of a time range for compliance reporting.
type Summary struct {
	From     time.Time      `json:"from"`
	To       time.Time      `json:"to"`
	Total    int            `json:"total"`
	ByActor  map[string]int `json:"by_actor"`
	ByAction map[string]int `json:"by_action"`
	ByStatus map[string]int `json:"by_status"`
	Traces   []Trace        `json:"traces,omitempty"`
}

// Report scans the entries within [from, to] and aggregates counts by actor,
// action, and status. Every entry carrying a reasoning trace contributes a
// Trace, in log order. Reporting never mutates the log.
func (l *Log) Report(from, to time.Time) *Summary {
	entries := l.Entries(&Filter{StartTime: &from, EndTime: &to})

	summary := &Summary{
		From:     from,
		To:       to,
		Total:    len(entries),
		ByActor:  make(map[string]int),
		ByAction: make(map[string]int),
		ByStatus: make(map[string]int),
	}

	for i := range entries {
		e := &entries[i]
		summary.ByActor[e.Actor]++
		summary.ByAction[string(e.Action)]++
		summary.ByStatus[string(e.Status)]++

		if len(e.Reasoning) > 0 {
			summary.Traces = append(summary.Traces, Trace{
				EntryID:   e.ID,
				Timestamp: e.Timestamp,
				Actor:     e.Actor,
				Action:    e.Action,
				Reasoning: e.Reasoning,
			})
		}
	}

	return summary
}
