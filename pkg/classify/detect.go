package classify

import (
	"strings"

	"github.com/Demoen/organizer-application/pkg/pattern"
)

const (
	confidenceStrong = 1.0
	confidenceWeak   = 0.6
)

// strongMarkers are unambiguous project roots, checked in this exact
// order before any configured marker. First match wins.
var strongMarkers = []string{
	"package.json", "Cargo.toml", "pom.xml", "build.gradle", "go.mod",
	"requirements.txt", "Gemfile", "composer.json", "mix.exs",
	"lines", "CMakeLists.txt", "Makefile", ".git", ".hg", ".svn",
	".vscode", ".idea", "*.sln", "*.csproj", "*.xcodeproj",
}

// DetectProject looks for a project marker in dir. Strong markers are
// checked first; then the configured markers in list order. It returns
// the matching marker and its confidence.
func DetectProject(dir string, markers []string) (string, float64, bool) {
	for _, marker := range strongMarkers {
		if pattern.ExistsMatching(dir, marker) {
			return marker, confidenceStrong, true
		}
	}

	for _, marker := range markers {
		if !pattern.ExistsMatching(dir, marker) {
			continue
		}
		if IsWeakMarker(marker) {
			return marker, confidenceWeak, true
		}
		return marker, confidenceStrong, true
	}

	return "", 0, false
}

// IsWeakMarker reports whether a marker is a low-confidence signal: a
// leading-star glob or a lone script name
func IsWeakMarker(marker string) bool {
	return strings.HasPrefix(marker, "*") ||
		strings.HasSuffix(marker, ".js") ||
		strings.HasSuffix(marker, ".py") ||
		strings.HasSuffix(marker, ".ts")
}
