// Package plan turns scan results into an ordered list of collision-free
// move operations.
package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/Demoen/organizer-application/pkg/config"
	"github.com/Demoen/organizer-application/pkg/models"
	"github.com/Demoen/organizer-application/pkg/pattern"
)

// Namer proposes a destination name for a project. Returning false keeps
// the manifest or directory name.
type Namer func(models.Project) (string, bool)

// Option configures plan generation
type Option func(*generator)

// WithNamer consults n before the project's internal name
func WithNamer(n Namer) Option {
	return func(g *generator) { g.namer = n }
}

// WithExists replaces the on-disk existence check
func WithExists(exists func(path string) bool) Option {
	return func(g *generator) { g.exists = exists }
}

type generator struct {
	root     string
	namer    Namer
	exists   func(string) bool
	reserved map[string]bool
	ops      []models.FileOperation
}

func lstatExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Generate plans project moves first, then loose-file moves. Both passes
// share one reservation set so no two operations target the same path.
func Generate(files []models.FileItem, projects []models.Project, cfg *config.Config, root string, opts ...Option) *models.Plan {
	g := &generator{
		root:     filepath.Clean(root),
		exists:   lstatExists,
		reserved: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, p := range projects {
		g.planProject(p)
	}

	rules := compileRules(cfg.ActiveRules())
	for _, f := range files {
		g.planFile(f, rules)
	}

	return &models.Plan{
		Root:       g.root,
		Operations: g.ops,
		Summary:    fmt.Sprintf("Planned %d operations", len(g.ops)),
		CreatedAt:  time.Now(),
	}
}

// taken reports whether candidate is unavailable as a destination
func (g *generator) taken(candidate string) bool {
	return g.reserved[candidate] || g.exists(candidate)
}

// resolve walks name, name (1), name (2), ... until a free path or the
// item's own path is found. Reaching the own path means the item is
// already placed and yields ok=false.
func (g *generator) resolve(dir, current string, nameAt func(n int) string) (string, bool) {
	current = filepath.Clean(current)
	for n := 0; ; n++ {
		candidate := filepath.Join(dir, nameAt(n))
		if candidate == current {
			return "", false
		}
		if !g.taken(candidate) {
			return candidate, true
		}
	}
}

func (g *generator) emit(source, dest, reason string) {
	g.reserved[dest] = true
	g.ops = append(g.ops, models.FileOperation{
		ID:          uuid.NewString(),
		Type:        models.OpMove,
		Source:      source,
		Destination: dest,
		Reason:      reason,
	})
}

func (g *generator) planProject(p models.Project) {
	folder := EcosystemForMarker(p.TypeGuess).Folder()
	dir := filepath.Join(g.root, filepath.FromSlash(folder))
	// a project cannot be moved into its own subtree, e.g. a root-level
	// "Projects" directory that is itself a project
	if within(dir, p.Path) {
		return
	}
	base := g.projectName(p)

	dest, ok := g.resolve(dir, p.Path, func(n int) string {
		if n == 0 {
			return base
		}
		return fmt.Sprintf("%s (%d)", base, n)
	})
	if !ok {
		return
	}
	g.emit(p.Path, dest, "Project detected: "+p.TypeGuess)
}

func (g *generator) projectName(p models.Project) string {
	if g.namer != nil {
		if name, ok := g.namer(p); ok {
			if clean := Sanitize(name); clean != "" {
				return clean
			}
		}
	}
	if p.InternalName != "" {
		if clean := Sanitize(p.InternalName); clean != "" {
			return clean
		}
	}
	return p.Name
}

type compiledRule struct {
	name        string
	destination string
	patterns    []string
}

func compileRules(rules []config.Rule) []compiledRule {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, compiledRule{
			name:        r.Name,
			destination: filepath.FromSlash(r.Destination),
			patterns:    r.Patterns,
		})
	}
	return out
}

// matchRule returns the first rule with any pattern matching name
func matchRule(name string, rules []compiledRule) (compiledRule, bool) {
	for _, r := range rules {
		for _, p := range r.patterns {
			if pattern.Match(p, name) {
				return r, true
			}
		}
	}
	return compiledRule{}, false
}

func (g *generator) planFile(f models.FileItem, rules []compiledRule) {
	rule, ok := matchRule(f.Name, rules)
	if !ok {
		return
	}

	dir := filepath.Join(g.root, rule.destination)
	stem, ext := SplitName(f.Name)

	dest, ok := g.resolve(dir, f.Path, func(n int) string {
		if n == 0 {
			return f.Name
		}
		return fmt.Sprintf("%s (%d)%s", stem, n, ext)
	})
	if !ok {
		return
	}
	g.emit(f.Path, dest, "Rule: "+rule.name)
}

// within reports whether path is parent or lies below it
func within(path, parent string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Sanitize replaces every character other than letters, digits, '-',
// '_' and space with '_' and trims surrounding space
func Sanitize(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '_' || r == ' ' {
			return r
		}
		return '_'
	}, name)
	return strings.TrimSpace(mapped)
}

// SplitName splits a file name into stem and extension (with dot).
// Dotfiles keep their whole name as stem.
func SplitName(name string) (string, string) {
	ext := filepath.Ext(name)
	if ext == "" || ext == name || ext == "." {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}
