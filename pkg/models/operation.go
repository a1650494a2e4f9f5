package models

import (
	"fmt"
	"time"
)

// OperationType defines the kind of filesystem change
type OperationType string

const (
	// OpMove renames source to destination
	OpMove OperationType = "move"
	// OpCopy is reserved for future rule types
	OpCopy OperationType = "copy"
	// OpDelete is reserved for future rule types
	OpDelete OperationType = "delete"
	// OpCreateDir creates destination and its parents
	OpCreateDir OperationType = "create_dir"
)

// FileOperation is the atomic unit of change
type FileOperation struct {
	ID          string        `json:"id"`
	Type        OperationType `json:"op_type"`
	Source      string        `json:"source,omitempty"`
	Destination string        `json:"destination"`
	Reason      string        `json:"reason"`
}

// Validate checks that the operation carries the paths its type needs
func (op *FileOperation) Validate() error {
	if op.ID == "" {
		return &ValidationError{Field: "id", Message: "operation id is required"}
	}
	if op.Destination == "" {
		return &ValidationError{Field: "destination", Message: "destination is required"}
	}
	switch op.Type {
	case OpMove, OpCopy:
		if op.Source == "" {
			return &ValidationError{Field: "source", Message: fmt.Sprintf("source is required for %s", op.Type)}
		}
	case OpDelete, OpCreateDir:
	default:
		return &ValidationError{Field: "op_type", Message: fmt.Sprintf("unknown operation type %q", op.Type)}
	}
	return nil
}

// String renders the operation for logs and error messages
func (op FileOperation) String() string {
	if op.Source != "" {
		return fmt.Sprintf("%s %s -> %s", op.Type, op.Source, op.Destination)
	}
	return fmt.Sprintf("%s %s", op.Type, op.Destination)
}

// Plan is an ordered list of operations. Operations must be applied in
// order: collision checks for later entries assume earlier ones have
// reserved their destinations.
type Plan struct {
	Root       string          `json:"root,omitempty"`
	Operations []FileOperation `json:"operations"`
	Summary    string          `json:"summary"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Validate checks every operation and the uniqueness of destinations
func (p *Plan) Validate() error {
	seen := make(map[string]int, len(p.Operations))
	for i := range p.Operations {
		op := &p.Operations[i]
		if err := op.Validate(); err != nil {
			return fmt.Errorf("operation %d: %w", i+1, err)
		}
		if prev, ok := seen[op.Destination]; ok {
			return &ValidationError{
				Field:   "destination",
				Message: fmt.Sprintf("operations %d and %d share destination %s", prev+1, i+1, op.Destination),
			}
		}
		seen[op.Destination] = i
	}
	return nil
}

// IsEmpty reports whether the plan has nothing to apply
func (p *Plan) IsEmpty() bool {
	return len(p.Operations) == 0
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
