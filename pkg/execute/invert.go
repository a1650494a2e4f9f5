package execute

import (
	"context"
	"path/filepath"

	"github.com/Demoen/organizer-application/pkg/models"
	"github.com/Demoen/organizer-application/pkg/storage"
)

// Invert reverses one applied operation.
//
// A move is renamed back when its destination still exists; a missing
// destination is not an error. A created directory is removed only if it
// is still empty, and a failed removal is ignored: a directory that
// gained content since is left alone.
func Invert(ctx context.Context, backend storage.Backend, op models.FileOperation) error {
	switch op.Type {
	case models.OpMove:
		exists, err := backend.Exists(ctx, op.Destination)
		if err != nil {
			return &IOError{Op: "stat", Path: op.Destination, Err: err}
		}
		if !exists {
			return nil
		}
		parent := filepath.Dir(op.Source)
		if err := backend.MkdirAll(ctx, parent); err != nil {
			return &IOError{Op: "mkdir", Path: parent, Err: err}
		}
		if err := backend.Rename(ctx, op.Destination, op.Source); err != nil {
			return &IOError{Op: "rename", Path: op.Destination, Err: err}
		}

	case models.OpCreateDir:
		_ = backend.RemoveEmpty(ctx, op.Destination)
	}
	return nil
}
