package naming

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// contextFiles are read in order when present
var contextFiles = []string{
	"README.md", "package.json", "Cargo.toml", "pyproject.toml",
	"requirements.txt", "app.py", "main.py", "index.html", "index.ts",
	"go.mod", "Makefile", "Pipfile", "composer.json", "mix.exs",
	".git/config",
}

const (
	snippetChars = 1000
	// below this many bytes the directory listing is appended
	minContext = 50
)

// GatherContext collects the first characters of well-known files in
// dir. When that yields too little, a listing of the directory's
// non-hidden entries is appended, directories marked with "/".
func GatherContext(dir string) string {
	var b strings.Builder

	for _, name := range contextFiles {
		snippet, ok := readSnippet(filepath.Join(dir, filepath.FromSlash(name)))
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "--- File: %s ---\n%s\n\n", name, snippet)
	}

	if b.Len() < minContext {
		entries, err := os.ReadDir(dir)
		if err == nil {
			b.WriteString("--- Project Structure ---\n")
			for _, e := range entries {
				name := e.Name()
				if strings.HasPrefix(name, ".") {
					continue
				}
				if e.IsDir() {
					name += "/"
				}
				b.WriteString(name + "\n")
			}
		}
	}

	return b.String()
}

// readSnippet returns at most snippetChars runes of a regular file
func readSnippet(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}

	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	// a rune is at most 4 bytes
	data, err := io.ReadAll(io.LimitReader(f, snippetChars*utf8.UTFMax))
	if err != nil {
		return "", false
	}

	s := string(data)
	if utf8.RuneCountInString(s) > snippetChars {
		s = string([]rune(s)[:snippetChars])
	}
	return s, true
}
