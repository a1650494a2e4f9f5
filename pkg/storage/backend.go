package storage

import (
	"context"
	"time"
)

// FileInfo represents metadata about a directory entry
type FileInfo struct {
	Path         string
	Name         string
	Size         int64
	ModTime      time.Time
	CreateTime   time.Time // zero when the platform does not record it
	IsDir        bool
	IsSymlink    bool
	Permissions  uint32
	RelativePath string
}

// Backend defines the filesystem operations the organizer performs.
// Every mutation is a rename or a directory change; file contents are
// never read or rewritten.
type Backend interface {
	// List returns the direct children of dir, sorted by name
	List(ctx context.Context, dir string) ([]FileInfo, error)

	// Stat returns metadata without following a final symlink
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Exists checks if a file, directory or symlink exists at path
	Exists(ctx context.Context, path string) (bool, error)

	// Rename moves src to dst. It fails if dst already exists.
	Rename(ctx context.Context, src, dst string) error

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(ctx context.Context, path string) error

	// RemoveEmpty removes path only if it is an empty directory
	RemoveEmpty(ctx context.Context, path string) error

	// Close releases any resources held by the backend
	Close() error
}
