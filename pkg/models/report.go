package models

import (
	"time"
)

// Batch is the set of operations produced by one successful apply,
// stored as one undo unit
type Batch struct {
	ID         string          `json:"id"`
	Root       string          `json:"root,omitempty"`
	AppliedAt  time.Time       `json:"applied_at"`
	Operations []FileOperation `json:"operations"`
}

// ApplyReport represents the results of an apply
type ApplyReport struct {
	BatchID string
	Root    string
	DryRun  bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Applied holds the operations in the order they were performed
	Applied []FileOperation

	// Error is set when the apply failed and was rolled back
	Error string

	Status ApplyStatus
}

// ApplyStatus represents the overall result
type ApplyStatus string

const (
	// StatusSuccess indicates all operations completed successfully
	StatusSuccess ApplyStatus = "success"
	// StatusRolledBack indicates an operation failed and earlier ones were reverted
	StatusRolledBack ApplyStatus = "rolled-back"
	// StatusNothingToDo indicates the plan was empty
	StatusNothingToDo ApplyStatus = "nothing-to-do"
	// StatusCancelled indicates the operation was cancelled
	StatusCancelled ApplyStatus = "cancelled"
)

// ExitCode returns the appropriate exit code for the apply status
func (s ApplyStatus) ExitCode() int {
	switch s {
	case StatusSuccess, StatusNothingToDo:
		return 0
	case StatusRolledBack:
		return 2
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}
