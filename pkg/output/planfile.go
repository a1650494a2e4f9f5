package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Demoen/organizer-application/pkg/models"
)

// WritePlanFile writes the plan to a file
// Format can be "human" or "json"; only the json form can be applied later
func WritePlanFile(plan *models.Plan, path string, format string) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create plan file: %w", err)
	}

	switch format {
	case "json":
		err = encode(file, plan)
	default: // "human"
		err = writePlanHuman(plan, file)
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write plan file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}

// ReadPlanFile loads a plan written in json format and validates it
func ReadPlanFile(path string) (*models.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var plan models.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan file: %w", err)
	}
	return &plan, nil
}

// writePlanHuman writes the plan grouped by destination folder
func writePlanHuman(plan *models.Plan, w io.Writer) error {
	fmt.Fprintf(w, "Organization Plan\n")
	fmt.Fprintf(w, "=================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", plan.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Root: %s\n", plan.Root)
	fmt.Fprintf(w, "Total Operations: %d\n\n", len(plan.Operations))

	byFolder := make(map[string][]models.FileOperation)
	for _, op := range plan.Operations {
		folder := filepath.Dir(relativeTo(plan.Root, op.Destination))
		byFolder[folder] = append(byFolder[folder], op)
	}

	folders := make([]string, 0, len(byFolder))
	for folder := range byFolder {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	for _, folder := range folders {
		ops := byFolder[folder]
		label := fmt.Sprintf("%s (%d items)", filepath.ToSlash(folder), len(ops))
		fmt.Fprintf(w, "%s\n", label)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))

		for _, op := range ops {
			fmt.Fprintf(w, "  %s\n", filepath.Base(op.Destination))
			if src := filepath.Base(op.Source); op.Source != "" && src != filepath.Base(op.Destination) {
				fmt.Fprintf(w, "    From:   %s\n", src)
			}
			fmt.Fprintf(w, "    Reason: %s\n", op.Reason)
		}
		fmt.Fprintf(w, "\n")
	}

	return nil
}
