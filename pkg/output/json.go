package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/Demoen/organizer-application/pkg/models"
	"github.com/Demoen/organizer-application/pkg/scan"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct{}

// JSONScanData represents a scan result
type JSONScanData struct {
	Root       string            `json:"root"`
	Files      []models.FileItem `json:"files"`
	Projects   []models.Project  `json:"projects"`
	Stats      scan.Stats        `json:"stats"`
	IgnoreFile bool              `json:"ignore_file"`
	Duration   string            `json:"duration"`
	DurationMs int64             `json:"duration_ms"`
}

// JSONReportData represents the final report data
type JSONReportData struct {
	Status     string                 `json:"status"`
	DryRun     bool                   `json:"dry_run"`
	BatchID    string                 `json:"batch_id,omitempty"`
	Root       string                 `json:"root,omitempty"`
	Duration   string                 `json:"duration"`
	DurationMs int64                  `json:"duration_ms"`
	Applied    []models.FileOperation `json:"applied"`
	Error      string                 `json:"error,omitempty"`
}

// JSONHistoryData represents one undoable batch
type JSONHistoryData struct {
	ID         string    `json:"id"`
	Root       string    `json:"root,omitempty"`
	AppliedAt  time.Time `json:"applied_at"`
	Operations int       `json:"operations"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Scan renders the inventory of a scan
func (f *JSONFormatter) Scan(w io.Writer, result *scan.Result) error {
	return encode(w, JSONScanData{
		Root:       result.Root,
		Files:      nonNil(result.Files),
		Projects:   nonNil(result.Projects),
		Stats:      result.Stats,
		IgnoreFile: result.IgnoreFile,
		Duration:   result.Duration.Round(time.Millisecond).String(),
		DurationMs: result.Duration.Milliseconds(),
	})
}

// Plan renders the plan in the same document format the plan file uses
func (f *JSONFormatter) Plan(w io.Writer, plan *models.Plan) error {
	out := *plan
	out.Operations = nonNil(plan.Operations)
	return encode(w, out)
}

// Report renders the outcome of an apply or dry run
func (f *JSONFormatter) Report(w io.Writer, report *models.ApplyReport) error {
	return encode(w, JSONReportData{
		Status:     string(report.Status),
		DryRun:     report.DryRun,
		BatchID:    report.BatchID,
		Root:       report.Root,
		Duration:   report.Duration.Round(time.Millisecond).String(),
		DurationMs: report.Duration.Milliseconds(),
		Applied:    nonNil(report.Applied),
		Error:      report.Error,
	})
}

// History renders the undo stack, most recent batch last
func (f *JSONFormatter) History(w io.Writer, batches []models.Batch) error {
	data := make([]JSONHistoryData, 0, len(batches))
	for _, b := range batches {
		data = append(data, JSONHistoryData{
			ID:         b.ID,
			Root:       b.Root,
			AppliedAt:  b.AppliedAt,
			Operations: len(b.Operations),
		})
	}
	return encode(w, data)
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

func encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// nonNil keeps empty lists as [] rather than null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
