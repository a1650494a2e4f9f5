package output

import (
	"fmt"
	"io"

	"github.com/Demoen/organizer-application/pkg/models"
	"github.com/Demoen/organizer-application/pkg/scan"
)

// Formatter defines the interface for output formatting
// Implementations include human-readable and JSON formatters
type Formatter interface {
	// Scan renders the inventory of a scan
	Scan(w io.Writer, result *scan.Result) error

	// Plan renders a plan before it is applied
	Plan(w io.Writer, plan *models.Plan) error

	// Report renders the outcome of an apply or dry run
	Report(w io.Writer, report *models.ApplyReport) error

	// History renders the undo stack, most recent batch last
	History(w io.Writer, batches []models.Batch) error

	// Name returns the formatter name
	Name() string
}

// New returns the formatter registered under name
func New(name string) (Formatter, error) {
	switch name {
	case "", "human":
		return NewHumanFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected human or json)", name)
	}
}
