package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Demoen/organizer-application/pkg/classify"
	"github.com/Demoen/organizer-application/pkg/config"
	"github.com/Demoen/organizer-application/pkg/logging"
	"github.com/Demoen/organizer-application/pkg/models"
	"github.com/Demoen/organizer-application/pkg/pattern"
	"github.com/Demoen/organizer-application/pkg/storage"
)

// Stats counts the scanner's decisions
type Stats struct {
	DirsVisited int `json:"dirs_visited"`
	// DirsPruned counts project directories recorded without descending
	DirsPruned int `json:"dirs_pruned"`
	// Protected counts installed programs and app data left untouched
	Protected int `json:"protected"`
	Ignored   int `json:"ignored"`
}

// Result is the inventory produced by one scan
type Result struct {
	Root     string            `json:"root"`
	Files    []models.FileItem `json:"files"`
	Projects []models.Project  `json:"projects"`
	Stats    Stats             `json:"stats"`

	// IgnoreFile is true when the root's ignore file was applied
	IgnoreFile bool          `json:"ignore_file"`
	Duration   time.Duration `json:"duration"`
}

// Scanner walks a root directory and classifies its subdirectories.
// A Scanner holds only configuration; every Scan call owns its results.
type Scanner struct {
	globs      *pattern.Set
	markers    []string
	backend    storage.Backend
	logger     logging.Logger
	ignoreFile bool
}

// Option configures a Scanner
type Option func(*Scanner)

// WithLogger sets the logger used for per-directory debug output
func WithLogger(l logging.Logger) Option {
	return func(s *Scanner) { s.logger = logging.OrNull(l) }
}

// WithBackend lists directories through b instead of a Local backend
// rooted at the scan root
func WithBackend(b storage.Backend) Option {
	return func(s *Scanner) { s.backend = b }
}

// WithIgnoreFile toggles reading the root's ignore file (default on)
func WithIgnoreFile(enabled bool) Option {
	return func(s *Scanner) { s.ignoreFile = enabled }
}

// New creates a scanner for cfg
func New(cfg *config.Config, opts ...Option) *Scanner {
	s := &Scanner{
		globs:      pattern.Compile(cfg.IgnorePatterns),
		markers:    append([]string(nil), cfg.ProjectMarkers...),
		logger:     logging.NewNullLogger(),
		ignoreFile: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// walk carries the accumulators of one Scan call through the recursion
type walk struct {
	root     string
	backend  storage.Backend
	ignore   *Ignore
	files    []models.FileItem
	projects []models.Project
	stats    Stats
}

// Scan walks root depth-first. Per-entry I/O errors are treated as absent
// entries; only an invalid root or a cancelled context fail the scan.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	start := time.Now()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to access root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", absRoot)
	}

	backend := s.backend
	if backend == nil {
		local, err := storage.NewLocal(absRoot)
		if err != nil {
			return nil, err
		}
		defer local.Close()
		backend = local
	}

	w := &walk{
		root:    absRoot,
		backend: backend,
		ignore:  &Ignore{globs: s.globs},
	}
	usedFile := false
	if s.ignoreFile {
		usedFile = w.ignore.LoadFile(absRoot)
	}

	if err := s.visit(ctx, absRoot, w); err != nil {
		return nil, err
	}

	return &Result{
		Root:       absRoot,
		Files:      w.files,
		Projects:   w.projects,
		Stats:      w.stats,
		IgnoreFile: usedFile,
		Duration:   time.Since(start),
	}, nil
}

func (s *Scanner) visit(ctx context.Context, dir string, w *walk) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rel, err := filepath.Rel(w.root, dir)
	if err != nil {
		return nil
	}
	if w.ignore.Match(rel, filepath.Base(dir), true) {
		w.stats.Ignored++
		s.logger.Debug(ctx, "ignored directory", logging.Fields{"path": rel})
		return nil
	}
	w.stats.DirsVisited++

	if dir != w.root {
		c := classify.Classify(dir, s.markers)
		switch c.Category {
		case classify.CategoryProject:
			p := models.Project{
				Path:      dir,
				Name:      filepath.Base(dir),
				TypeGuess: c.ProjectType,
			}
			if name, ok := classify.InternalName(dir, c.ProjectType); ok {
				p.InternalName = name
			}
			w.projects = append(w.projects, p)
			w.stats.DirsPruned++
			s.logger.Debug(ctx, "project detected", logging.Fields{
				"path":       rel,
				"marker":     c.ProjectType,
				"confidence": c.Confidence,
			})
			return nil

		case classify.CategoryInstalledProgram, classify.CategoryAppData:
			w.stats.Protected++
			s.logger.Debug(ctx, "protected directory", logging.Fields{
				"path":     rel,
				"category": string(c.Category),
				"reason":   c.Reason,
			})
			return nil
		}
	}

	entries, err := w.backend.List(ctx, dir)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.logger.Debug(ctx, "skipping unreadable directory", logging.Fields{"path": rel, "error": err.Error()})
		return nil
	}

	for _, e := range entries {
		if e.IsDir {
			if err := s.visit(ctx, e.Path, w); err != nil {
				return err
			}
			continue
		}

		childRel := filepath.Join(rel, e.Name)
		if w.ignore.Match(childRel, e.Name, false) {
			w.stats.Ignored++
			continue
		}

		// symlinked directories are neither followed nor moved
		if e.IsSymlink {
			if target, err := os.Stat(e.Path); err != nil || target.IsDir() {
				continue
			}
		}

		if dir == w.root {
			w.files = append(w.files, fileItem(e))
		}
	}

	return nil
}

func fileItem(e storage.FileInfo) models.FileItem {
	return models.FileItem{
		Path:      e.Path,
		Name:      e.Name,
		Extension: Extension(e.Name),
		Size:      e.Size,
		Created:   unixOrZero(e.CreateTime),
		Modified:  unixOrZero(e.ModTime),
	}
}

// Extension returns the name's extension without the dot, case preserved.
// Dotfiles such as ".bashrc" have none.
func Extension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() || t.Unix() < 0 {
		return 0
	}
	return t.Unix()
}
