package classify

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// maxManifestSize caps how much of a manifest is read
const maxManifestSize = 1 << 20

// tomlName matches a top-level `name = "..."` line without a TOML parser
var tomlName = regexp.MustCompile(`(?m)^name\s*=\s*"([^"]+)"`)

// InternalName extracts the name a project declares for itself in the
// manifest that identified it. Failures of any kind yield ("", false).
func InternalName(dir, marker string) (string, bool) {
	switch marker {
	case "package.json":
		return jsonName(filepath.Join(dir, marker))
	case "composer.json":
		name, ok := jsonName(filepath.Join(dir, marker))
		if !ok {
			return "", false
		}
		// composer names are vendor/package
		return path.Base(name), true
	case "Cargo.toml", "pyproject.toml":
		data, ok := readManifest(filepath.Join(dir, marker))
		if !ok {
			return "", false
		}
		m := tomlName.FindSubmatch(data)
		if m == nil {
			return "", false
		}
		return string(m[1]), true
	case "go.mod":
		data, ok := readManifest(filepath.Join(dir, marker))
		if !ok {
			return "", false
		}
		mod := modfile.ModulePath(data)
		if mod == "" {
			return "", false
		}
		// github.com/acme/widget/v2 is named widget
		if prefix, _, ok := module.SplitPathVersion(mod); ok && prefix != "" {
			mod = prefix
		}
		return path.Base(mod), true
	}
	return "", false
}

func jsonName(file string) (string, bool) {
	data, ok := readManifest(file)
	if !ok {
		return "", false
	}
	var manifest struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", false
	}
	name := strings.TrimSpace(manifest.Name)
	return name, name != ""
}

func readManifest(file string) ([]byte, bool) {
	info, err := os.Stat(file)
	if err != nil || info.IsDir() || info.Size() > maxManifestSize {
		return nil, false
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, false
	}
	return data, true
}
