// Package naming suggests descriptive folder names for detected projects
// using a language model. Suggestions are advisory: every failure maps
// to ErrUnavailable and callers keep the existing name.
package naming

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Demoen/organizer-application/pkg/logging"
	"github.com/Demoen/organizer-application/pkg/models"
	"github.com/Demoen/organizer-application/pkg/ratelimit"
)

// ErrUnavailable means no suggestion could be produced
var ErrUnavailable = errors.New("naming unavailable")

// DefaultTimeout bounds one suggestion request
const DefaultTimeout = 15 * time.Second

const defaultCacheSize = 256

// Suggester proposes a name for a project
type Suggester interface {
	Suggest(ctx context.Context, p models.Project) (string, error)
}

// Generator sends a prompt to a model and returns its text answer
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelSuggester builds a prompt from the project's files, asks a
// Generator and caches answers per project path
type ModelSuggester struct {
	gen     Generator
	cache   *lru.Cache[string, string]
	timeout time.Duration
	limiter *ratelimit.Limiter
	logger  logging.Logger
}

// Option configures a ModelSuggester
type Option func(*ModelSuggester)

// WithTimeout bounds each request; zero or negative keeps the default
func WithTimeout(d time.Duration) Option {
	return func(s *ModelSuggester) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRateLimit makes every request wait for l; nil disables limiting
func WithRateLimit(l *ratelimit.Limiter) Option {
	return func(s *ModelSuggester) { s.limiter = l }
}

// WithLogger sets the suggester's logger
func WithLogger(l logging.Logger) Option {
	return func(s *ModelSuggester) { s.logger = logging.OrNull(l) }
}

// NewSuggester wraps gen
func NewSuggester(gen Generator, opts ...Option) (*ModelSuggester, error) {
	cache, err := lru.New[string, string](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion cache: %w", err)
	}
	s := &ModelSuggester{
		gen:     gen,
		cache:   cache,
		timeout: DefaultTimeout,
		logger:  logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Suggest returns a cleaned name or an error wrapping ErrUnavailable
func (s *ModelSuggester) Suggest(ctx context.Context, p models.Project) (string, error) {
	if name, ok := s.cache.Get(p.Path); ok {
		return name, nil
	}

	snippets := GatherContext(p.Path)
	if strings.TrimSpace(snippets) == "" {
		return "", fmt.Errorf("%w: no readable context in %s", ErrUnavailable, p.Path)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	answer, err := s.gen.Generate(ctx, BuildPrompt(snippets))
	if err != nil {
		s.logger.Warn(ctx, "name suggestion failed", logging.Fields{
			"project": p.Path,
			"error":   err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	name := Clean(answer)
	if name == "" {
		return "", fmt.Errorf("%w: empty answer", ErrUnavailable)
	}

	s.logger.Debug(ctx, "name suggested", logging.Fields{
		"project":  p.Path,
		"name":     name,
		"duration": time.Since(start).String(),
	})
	s.cache.Add(p.Path, name)
	return name, nil
}

// BuildPrompt wraps gathered file snippets in the naming instructions
func BuildPrompt(snippets string) string {
	return "I have a coding project. Based on the following file snippets, suggest a short, " +
		"descriptive name for the project folder (kebab-case). Only return the name, nothing else." +
		"\n\nContext:\n" + snippets
}

// Clean strips quotes and keeps the first non-empty line of a model answer
func Clean(answer string) string {
	answer = strings.NewReplacer(`"`, "", "'", "", "`", "").Replace(answer)
	for _, line := range strings.Split(answer, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
