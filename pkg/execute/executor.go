// Package execute applies plans with rollback on failure and keeps the
// undo history of applied batches.
package execute

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Demoen/organizer-application/pkg/logging"
	"github.com/Demoen/organizer-application/pkg/models"
	"github.com/Demoen/organizer-application/pkg/storage"
)

// ProgressFunc is called after every applied plan operation
type ProgressFunc func(done, total int, op models.FileOperation)

// Executor applies plan operations in order through a storage backend
type Executor struct {
	backend  storage.Backend
	logger   logging.Logger
	progress ProgressFunc
}

// Option configures an Executor
type Option func(*Executor)

// WithLogger sets the executor's logger
func WithLogger(l logging.Logger) Option {
	return func(e *Executor) { e.logger = logging.OrNull(l) }
}

// WithProgress registers a progress callback
func WithProgress(fn ProgressFunc) Option {
	return func(e *Executor) { e.progress = fn }
}

// NewExecutor creates an executor on backend
func NewExecutor(backend storage.Backend, opts ...Option) *Executor {
	e := &Executor{
		backend: backend,
		logger:  logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute applies the plan's operations strictly in order and returns
// what was done. Parent directories created for a move are recorded as
// CreateDir operations ahead of it, so inverting the result in reverse
// order also removes them.
//
// On the first failure every applied operation is inverted in reverse
// order. Inversion errors during this rollback are logged and dropped;
// the returned *RollbackError names the failed operation.
func (e *Executor) Execute(ctx context.Context, plan *models.Plan) ([]models.FileOperation, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	total := len(plan.Operations)
	applied := make([]models.FileOperation, 0, total)

	for i, op := range plan.Operations {
		err := ctx.Err()
		if err == nil {
			applied, err = e.apply(ctx, op, applied)
		}
		if err != nil {
			e.logger.Error(ctx, "operation failed, rolling back", err, logging.Fields{
				"index":   i + 1,
				"op":      op.String(),
				"applied": len(applied),
			})
			e.rollback(ctx, applied)
			return nil, &RollbackError{Failed: op, Index: i + 1, Err: err}
		}

		e.logger.Debug(ctx, "operation applied", logging.Fields{"index": i + 1, "op": op.String()})
		if e.progress != nil {
			e.progress(i+1, total, op)
		}
	}

	return applied, nil
}

func (e *Executor) apply(ctx context.Context, op models.FileOperation, applied []models.FileOperation) ([]models.FileOperation, error) {
	switch op.Type {
	case models.OpMove:
		parent := filepath.Dir(op.Destination)
		for _, dir := range e.missingDirs(ctx, parent) {
			applied = append(applied, models.FileOperation{
				ID:          uuid.NewString(),
				Type:        models.OpCreateDir,
				Destination: dir,
				Reason:      "Parent of " + op.Destination,
			})
		}
		if err := e.backend.MkdirAll(ctx, parent); err != nil {
			return applied, &IOError{Op: "mkdir", Path: parent, Err: err}
		}
		if err := e.backend.Rename(ctx, op.Source, op.Destination); err != nil {
			return applied, &IOError{Op: "rename", Path: op.Source, Err: err}
		}

	case models.OpCreateDir:
		missing := e.missingDirs(ctx, op.Destination)
		if err := e.backend.MkdirAll(ctx, op.Destination); err != nil {
			return applied, &IOError{Op: "mkdir", Path: op.Destination, Err: err}
		}
		if len(missing) == 0 {
			// already existed; nothing for an undo to remove
			return applied, nil
		}
		for _, dir := range missing[:len(missing)-1] {
			applied = append(applied, models.FileOperation{
				ID:          uuid.NewString(),
				Type:        models.OpCreateDir,
				Destination: dir,
				Reason:      "Parent of " + op.Destination,
			})
		}

	default:
		// copy and delete are not produced by the planner
		e.logger.Warn(ctx, "skipping unsupported operation", logging.Fields{"op": op.String()})
		return applied, nil
	}

	return append(applied, op), nil
}

// missingDirs lists the directories MkdirAll(dir) would create, outermost first
func (e *Executor) missingDirs(ctx context.Context, dir string) []string {
	var missing []string
	for {
		exists, err := e.backend.Exists(ctx, dir)
		if err != nil || exists {
			break
		}
		missing = append(missing, dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	for i, j := 0, len(missing)-1; i < j; i, j = i+1, j-1 {
		missing[i], missing[j] = missing[j], missing[i]
	}
	return missing
}

func (e *Executor) rollback(ctx context.Context, applied []models.FileOperation) {
	// rollback must run to completion even if the caller's context is done
	ctx = context.WithoutCancel(ctx)
	for i := len(applied) - 1; i >= 0; i-- {
		if err := Invert(ctx, e.backend, applied[i]); err != nil {
			e.logger.Warn(ctx, "rollback step failed", logging.Fields{
				"op":    applied[i].String(),
				"error": err.Error(),
			})
		}
	}
}
