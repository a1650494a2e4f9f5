// Package classify decides what a directory is: a project, an installed
// program, application or game data, or plain loose files.
package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Category is the kind of directory
type Category string

const (
	// CategoryProject is a software or content project root
	CategoryProject Category = "project"
	// CategoryInstalledProgram is an installed application; never touched
	CategoryInstalledProgram Category = "installed-program"
	// CategoryAppData is application or game data; never touched
	CategoryAppData Category = "app-data"
	// CategoryLooseFiles is the default when nothing else matches
	CategoryLooseFiles Category = "loose-files"
)

// IsProtected reports whether the scanner must not descend into the category
func (c Category) IsProtected() bool {
	return c == CategoryInstalledProgram || c == CategoryAppData
}

// Classification is the outcome of classifying one directory
type Classification struct {
	Category    Category
	Confidence  float64
	Reason      string
	ProjectType string
}

const (
	confidenceInstalled = 0.9
	confidenceAppData   = 0.8

	// sampleSize bounds the extension scan used by the binary and data checks
	sampleSize = 50
)

// installIndicators are files whose presence marks an installed program
var installIndicators = []string{
	"Uninstall.exe", "unins000.exe", "unins001.exe", "setup.exe",
	"UnityCrashHandler64.exe", "UnityPlayer.dll",
	"d3dcompiler_47.dll", "opengl32.dll",
	"steam_api.dll", "steam_api64.dll",
	"Galaxy64.dll", "tier0.dll",
	"adb.exe", "AdbWinApi.dll",
}

// Default returns the zero-confidence LooseFiles classification
func Default() Classification {
	return Classification{
		Category:   CategoryLooseFiles,
		Confidence: 0,
		Reason:     "Default",
	}
}

// Classify evaluates dir in strict priority order: installed program,
// app data, project, loose files. The order matters: a game folder that
// also happens to hold a project marker stays protected.
func Classify(dir string, markers []string) Classification {
	sample := sampleExtensions(dir)

	if isInstalledProgram(dir, sample) {
		return Classification{
			Category:   CategoryInstalledProgram,
			Confidence: confidenceInstalled,
			Reason:     "Contains software binary indicators (Uninstall.exe, DLL+EXE)",
		}
	}

	if isAppData(sample) {
		return Classification{
			Category:   CategoryAppData,
			Confidence: confidenceAppData,
			Reason:     "Contains game data folder signatures",
		}
	}

	if marker, confidence, ok := DetectProject(dir, markers); ok {
		return Classification{
			Category:    CategoryProject,
			Confidence:  confidence,
			Reason:      fmt.Sprintf("Detected marker: %s", marker),
			ProjectType: marker,
		}
	}

	return Default()
}

// extCounts holds lower-cased extension counts of the first entries of a directory
type extCounts map[string]int

// sampleExtensions reads at most sampleSize entries of dir. Read errors
// yield an empty sample.
func sampleExtensions(dir string) extCounts {
	counts := make(extCounts)

	f, err := os.Open(dir)
	if err != nil {
		return counts
	}
	defer f.Close()

	names, _ := f.Readdirnames(sampleSize)
	for _, name := range names {
		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		if ext == "" {
			continue
		}
		counts[strings.ToLower(ext)]++
	}
	return counts
}

func isInstalledProgram(dir string, sample extCounts) bool {
	for _, indicator := range installIndicators {
		if _, err := os.Lstat(filepath.Join(dir, indicator)); err == nil {
			return true
		}
	}
	return sample["exe"] > 0 && sample["dll"] > 0
}

func isAppData(sample extCounts) bool {
	return sample["pak"]+sample["vpk"] >= 1 || sample["dat"] >= 5
}
