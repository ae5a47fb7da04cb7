package audit

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang/snappy"
)

// Exporter writes filtered audit entries to an io.Writer in a portable
// format for downstream compliance tooling.
type Exporter struct {
	log *Log
}

// NewExporter creates an exporter over the given log
func NewExporter(log *Log) *Exporter {
	return &Exporter{log: log}
}

// ExportJSON writes the matching entries as a JSON array
func (e *Exporter) ExportJSON(writer io.Writer, filter *Filter) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(e.log.Entries(filter))
}

// ExportJSONCompressed writes the JSON export through a snappy block
// compressor, for archival of large logs.
func (e *Exporter) ExportJSONCompressed(writer io.Writer, filter *Filter) error {
	sw := snappy.NewBufferedWriter(writer)
	if err := e.ExportJSON(sw, filter); err != nil {
		sw.Close()
		return err
	}
	return sw.Close()
}

// ExportCSV writes the matching entries as CSV
func (e *Exporter) ExportCSV(writer io.Writer, filter *Filter) (retErr error) {
	csvWriter := csv.NewWriter(writer)
	defer func() {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil && retErr == nil {
			retErr = fmt.Errorf("CSV writer flush error: %w", err)
		}
	}()

	header := []string{
		"ID",
		"Timestamp",
		"Actor",
		"Action",
		"Status",
		"Reasoning",
	}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, entry := range e.log.Entries(filter) {
		record := []string{
			entry.ID,
			entry.Timestamp.Format(time.RFC3339),
			entry.Actor,
			string(entry.Action),
			string(entry.Status),
			strings.Join(entry.Reasoning, " | "),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	return nil
}
