package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrOutsideRoot is returned for paths that escape the backend's root
var ErrOutsideRoot = errors.New("path is outside the backend root")

// Local is a filesystem-based storage backend confined to one root
// directory. Paths may be absolute (inside the root) or relative to it.
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Local{rootPath: absPath}, nil
}

// Root returns the absolute root path
func (l *Local) Root() string {
	return l.rootPath
}

// resolve maps path onto the filesystem and rejects anything outside the root
func (l *Local) resolve(path string) (string, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(l.rootPath, full)
	}
	full = filepath.Clean(full)

	rel, err := filepath.Rel(l.rootPath, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return full, nil
}

func (l *Local) info(full string, fi fs.FileInfo) FileInfo {
	rel, _ := filepath.Rel(l.rootPath, full)
	return FileInfo{
		Path:         full,
		Name:         fi.Name(),
		Size:         fi.Size(),
		ModTime:      fi.ModTime(),
		CreateTime:   creationTime(full, fi),
		IsDir:        fi.IsDir(),
		IsSymlink:    fi.Mode()&fs.ModeSymlink != 0,
		Permissions:  uint32(fi.Mode().Perm()),
		RelativePath: rel,
	}
}

// List returns the direct children of dir. Entries that vanish between
// the directory read and the stat are skipped.
func (l *Local) List(ctx context.Context, dir string) ([]FileInfo, error) {
	fullPath, err := l.resolve(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fi, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, l.info(filepath.Join(fullPath, e.Name()), fi))
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Stat returns file metadata without following a final symlink
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	fullPath, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	fi, err := os.Lstat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := l.info(fullPath, fi)
	return &info, nil
}

// Exists checks if a file or directory exists
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	fullPath, err := l.resolve(path)
	if err != nil {
		return false, err
	}

	_, err = os.Lstat(fullPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Rename moves src to dst within the root. os.Rename replaces an existing
// destination on most platforms, so existence is checked first.
func (l *Local) Rename(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullSrc, err := l.resolve(src)
	if err != nil {
		return err
	}
	fullDst, err := l.resolve(dst)
	if err != nil {
		return err
	}

	if _, err := os.Lstat(fullDst); err == nil {
		return &fs.PathError{Op: "rename", Path: fullDst, Err: fs.ErrExist}
	}

	if err := os.Rename(fullSrc, fullDst); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}
	return nil
}

// MkdirAll creates a directory and all necessary parents
func (l *Local) MkdirAll(ctx context.Context, path string) error {
	fullPath, err := l.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return nil
}

// RemoveEmpty removes an empty directory; os.Remove refuses non-empty ones
func (l *Local) RemoveEmpty(ctx context.Context, path string) error {
	fullPath, err := l.resolve(path)
	if err != nil {
		return err
	}
	if fullPath == l.rootPath {
		return fmt.Errorf("refusing to remove backend root: %s", fullPath)
	}

	fi, err := os.Lstat(fullPath)
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("not a directory: %s", fullPath)
	}

	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to remove directory: %w", err)
	}
	return nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
