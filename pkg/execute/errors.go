package execute

import (
	"errors"
	"fmt"

	"github.com/Demoen/organizer-application/pkg/models"
)

// ErrNothingToUndo is returned by UndoLast when no batch is recorded
var ErrNothingToUndo = errors.New("nothing to undo")

// IOError is a failed filesystem operation
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// RollbackError reports the operation that failed during apply. Every
// operation applied before it was reverted on a best-effort basis.
type RollbackError struct {
	Failed models.FileOperation
	// Index is the failed operation's position in the plan, starting at 1
	Index int
	Err   error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("operation %d (%s) failed, earlier operations rolled back: %v", e.Index, e.Failed, e.Err)
}

func (e *RollbackError) Unwrap() error {
	return e.Err
}

// UndoError reports the inversion that stopped an undo
type UndoError struct {
	BatchID string
	Failed  models.FileOperation
	Err     error
}

func (e *UndoError) Error() string {
	return fmt.Sprintf("undo of batch %s stopped at %s: %v", e.BatchID, e.Failed, e.Err)
}

func (e *UndoError) Unwrap() error {
	return e.Err
}
