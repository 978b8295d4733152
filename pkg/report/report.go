// Package report provides JSONL output for document check runs.
//
// Output is structured as typed record envelopes containing per-document
// results and a final summary. Each line is a self-contained JSON object
// that can be parsed independently.
package report

import (
	"encoding/json"
	"errors"
	"time"
)

// Record type constants define the envelope types for JSONL output.
// These follow the pattern: stratus.<type>.v<version>
const (
	// TypeResult identifies per-document check results.
	TypeResult = "stratus.checkresult.v1"

	// TypeSummary identifies final summary records.
	TypeSummary = "stratus.checksummary.v1"
)

// Record is the envelope for all JSONL output.
//
// Each line of JSONL output contains a Record with a type-specific
// payload in the Data field. The type field determines how to
// interpret the Data payload.
type Record struct {
	// Type identifies the record type (e.g., "stratus.checkresult.v1").
	Type string `json:"type"`

	// TS is the timestamp when the record was created (RFC3339Nano).
	TS time.Time `json:"ts"`

	// RunID is the correlation ID for this check run.
	RunID string `json:"run_id"`

	// Data contains the type-specific payload as raw JSON.
	Data json.RawMessage `json:"data"`
}

// ResultRecord is the data payload for a single checked document.
type ResultRecord struct {
	// Path is the document file path as matched on the command line.
	Path string `json:"path"`

	// Kind is the document kind, when the envelope could be read.
	Kind string `json:"kind,omitempty"`

	// Valid reports whether the document passed every check.
	Valid bool `json:"valid"`

	// Error describes the first failure. Empty for valid documents.
	Error string `json:"error,omitempty"`
}

// SummaryRecord is the data payload for the final summary.
//
// A summary record is emitted at the end of a run with aggregate counts.
type SummaryRecord struct {
	// Documents is the total number of documents checked.
	Documents int64 `json:"documents"`

	// Invalid is the number of documents that failed.
	Invalid int64 `json:"invalid"`

	// Strict reports whether outbound round-trip checks were enabled.
	Strict bool `json:"strict"`

	// Duration is the total run duration.
	Duration time.Duration `json:"duration_ns"`

	// DurationHuman is a human-readable duration string.
	DurationHuman string `json:"duration"`
}

// Writer errors.
var (
	// ErrWriterClosed is returned when writing to a closed writer.
	ErrWriterClosed = errors.New("writer is closed")
)

// WriteError wraps errors that occur during write operations.
type WriteError struct {
	Op  string // Operation that failed (e.g., "marshal_data", "write")
	Err error  // Underlying error
}

func (e *WriteError) Error() string {
	return "report: " + e.Op + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
