// Package pattern implements shell-style glob matching for ignore rules,
// file-type rules and project marker globs.
//
// Supported syntax is that of doublestar: '*' matches within one path
// segment, '**' matches any number of segments, '?' one character,
// '[...]' character classes and '{a,b}' alternatives. Paths are matched
// with forward slashes regardless of platform.
package pattern

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// errFound stops a glob walk at the first hit
var errFound = errors.New("pattern: found")

// Match reports whether candidate matches pattern. An invalid pattern
// never matches.
func Match(pattern, candidate string) bool {
	if pattern == "" {
		return false
	}
	ok, err := doublestar.Match(filepath.ToSlash(pattern), filepath.ToSlash(candidate))
	if err != nil {
		return false
	}
	return ok
}

// IsGlob reports whether pattern contains glob metacharacters
func IsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// ExistsMatching reports whether dir contains an entry matching pattern.
// Literal patterns are checked by existence, so nested literals such as
// "src-tauri/tauri.conf.json" work. Globs are evaluated against the direct
// children of dir (or, when they contain a slash, relative to dir) and the
// search stops at the first hit.
func ExistsMatching(dir, pattern string) bool {
	if pattern == "" {
		return false
	}
	if !IsGlob(pattern) {
		_, err := os.Lstat(filepath.Join(dir, filepath.FromSlash(pattern)))
		return err == nil
	}

	pat := filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(pat) {
		return false
	}

	if !strings.Contains(pat, "/") {
		f, err := os.Open(dir)
		if err != nil {
			return false
		}
		defer f.Close()
		for {
			names, err := f.Readdirnames(64)
			for _, name := range names {
				if Match(pat, name) {
					return true
				}
			}
			if err != nil {
				return false
			}
		}
	}

	err := doublestar.GlobWalk(os.DirFS(dir), pat, func(path string, d fs.DirEntry) error {
		return errFound
	})
	return errors.Is(err, errFound)
}

// Set is a compiled list of patterns. Invalid patterns are dropped at
// compile time.
type Set struct {
	patterns []string
}

// Compile validates and normalizes patterns into a Set
func Compile(patterns []string) *Set {
	s := &Set{patterns: make([]string, 0, len(patterns))}
	for _, p := range patterns {
		p = filepath.ToSlash(strings.TrimSpace(p))
		if p == "" || !doublestar.ValidatePattern(p) {
			continue
		}
		s.patterns = append(s.patterns, p)
	}
	return s
}

// Len returns the number of valid patterns
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// MatchAny reports whether any pattern matches any of the candidates
func (s *Set) MatchAny(candidates ...string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.patterns {
		for _, c := range candidates {
			if c == "" {
				continue
			}
			if ok, _ := doublestar.Match(p, filepath.ToSlash(c)); ok {
				return true
			}
		}
	}
	return false
}
