package scan

import (
	"os"
	"path"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/Demoen/organizer-application/pkg/pattern"
)

// IgnoreFileName is the optional gitignore-style file read from the scan root
const IgnoreFileName = ".organizerignore"

// Ignore decides which paths the scanner prunes. Config globs are tried
// against both the root-relative path and the base name; the optional
// ignore file uses gitignore semantics.
type Ignore struct {
	globs *pattern.Set
	file  *ignore.GitIgnore
}

// LoadFile adds the rules of root's ignore file, if present. A missing
// or unreadable file is not an error.
func (i *Ignore) LoadFile(root string) bool {
	file := filepath.Join(root, IgnoreFileName)
	if _, err := os.Stat(file); err != nil {
		return false
	}
	gi, err := ignore.CompileIgnoreFile(file)
	if err != nil {
		return false
	}
	i.file = gi
	return true
}

// Match reports whether an entry should be pruned. rel is the path
// relative to the scan root and name its base name.
func (i *Ignore) Match(rel, name string, isDir bool) bool {
	if i == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if name == "" {
		name = path.Base(rel)
	}

	if i.globs.MatchAny(rel, name) {
		return true
	}

	if i.file != nil && rel != "." {
		if i.file.MatchesPath(rel) {
			return true
		}
		// directory-only rules ("build/") need the trailing slash
		if isDir && i.file.MatchesPath(rel+"/") {
			return true
		}
	}
	return false
}

// Len returns the number of active config globs
func (i *Ignore) Len() int {
	if i == nil {
		return 0
	}
	return i.globs.Len()
}
