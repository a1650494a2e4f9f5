package output

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/Demoen/organizer-application/pkg/models"
	"github.com/Demoen/organizer-application/pkg/scan"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct{}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Scan renders the inventory of a scan
func (f *HumanFormatter) Scan(w io.Writer, result *scan.Result) error {
	fmt.Fprintf(w, "Scanned %s in %s\n", result.Root, result.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Loose files (%d):\n", len(result.Files))
	for _, file := range result.Files {
		fmt.Fprintf(w, "  %-40s %10s\n", file.Name, formatBytes(file.Size))
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Projects (%d):\n", len(result.Projects))
	for _, p := range result.Projects {
		line := fmt.Sprintf("  %-40s %s", relativeTo(result.Root, p.Path), p.TypeGuess)
		if p.InternalName != "" && p.InternalName != p.Name {
			line += fmt.Sprintf(" (%s)", p.InternalName)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Directories visited:  %d\n", result.Stats.DirsVisited)
	fmt.Fprintf(w, "  Protected skipped:    %d\n", result.Stats.Protected)
	fmt.Fprintf(w, "  Ignored entries:      %d\n", result.Stats.Ignored)
	if result.IgnoreFile {
		fmt.Fprintf(w, "  Ignore file:          %s\n", scan.IgnoreFileName)
	}
	return nil
}

// Plan renders a plan before it is applied
func (f *HumanFormatter) Plan(w io.Writer, plan *models.Plan) error {
	if plan.IsEmpty() {
		fmt.Fprintf(w, "Nothing to organize in %s\n", plan.Root)
		return nil
	}

	fmt.Fprintf(w, "Plan for %s: %s\n", plan.Root, plan.Summary)
	fmt.Fprintf(w, "\n")
	for i, op := range plan.Operations {
		fmt.Fprintf(w, "[%d/%d] %s\n", i+1, len(plan.Operations), describe(plan.Root, op))
		fmt.Fprintf(w, "        %s\n", op.Reason)
	}
	return nil
}

// Report renders the outcome of an apply or dry run
func (f *HumanFormatter) Report(w io.Writer, report *models.ApplyReport) error {
	fmt.Fprintf(w, "\n")
	if report.DryRun {
		fmt.Fprintf(w, "Dry run completed in %s\n", report.Duration.Round(time.Millisecond))
	} else {
		fmt.Fprintf(w, "Apply completed in %s\n", report.Duration.Round(time.Millisecond))
	}
	fmt.Fprintf(w, "\n")

	var moves, dirs int
	for _, op := range report.Applied {
		switch op.Type {
		case models.OpMove:
			moves++
		case models.OpCreateDir:
			dirs++
		}
	}

	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Items moved:     %d\n", moves)
	fmt.Fprintf(w, "  Dirs created:    %d\n", dirs)
	if report.BatchID != "" {
		fmt.Fprintf(w, "  Undo batch:      %s\n", report.BatchID)
	}
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Status: %s\n", report.Status)

	if report.Error != "" {
		fmt.Fprintf(w, "\nError:\n  %s\n", report.Error)
	}
	return nil
}

// History renders the undo stack, most recent batch last
func (f *HumanFormatter) History(w io.Writer, batches []models.Batch) error {
	if len(batches) == 0 {
		fmt.Fprintf(w, "No operations to undo\n")
		return nil
	}

	for i, b := range batches {
		fmt.Fprintf(w, "%d. %s  %s  %d operations\n",
			i+1, b.AppliedAt.Local().Format(time.DateTime), b.ID, len(b.Operations))
		if b.Root != "" {
			fmt.Fprintf(w, "   %s\n", b.Root)
		}
	}
	fmt.Fprintf(w, "\nThe last batch is undone first.\n")
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// describe renders one operation with paths relative to root
func describe(root string, op models.FileOperation) string {
	switch op.Type {
	case models.OpCreateDir:
		return fmt.Sprintf("mkdir %s", relativeTo(root, op.Destination))
	default:
		return fmt.Sprintf("%s %s -> %s", op.Type, relativeTo(root, op.Source), relativeTo(root, op.Destination))
	}
}

// relativeTo shortens path for display; it falls back to path unchanged
func relativeTo(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
