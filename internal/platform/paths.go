package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizePath normalizes a path for the current platform
func NormalizePath(path string) string {
	// Convert to platform-specific separators
	normalized := filepath.Clean(path)

	// On Windows, ensure UNC paths are preserved
	if runtime.GOOS == "windows" {
		if strings.HasPrefix(path, "\\\\") && !strings.HasPrefix(normalized, "\\\\") {
			normalized = "\\\\" + normalized
		}
	}

	return normalized
}

// IsUNCPath checks if a path is a UNC path (Windows network share)
func IsUNCPath(path string) bool {
	if runtime.GOOS != "windows" {
		return false
	}
	return strings.HasPrefix(path, "\\\\") || strings.HasPrefix(path, "//")
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &PathError{Path: path, Message: "cannot resolve home directory: " + err.Error()}
	}
	return filepath.Join(home, path[1:]), nil
}

// ResolveRoot turns a user-supplied directory into a clean absolute path
// and checks that it is an existing directory
func ResolveRoot(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}

	abs := expanded
	if !IsUNCPath(expanded) {
		if abs, err = filepath.Abs(expanded); err != nil {
			return "", &PathError{Path: path, Message: err.Error()}
		}
	}
	abs = NormalizePath(abs)

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &PathError{Path: path, Message: "directory does not exist"}
		}
		return "", &PathError{Path: path, Message: err.Error()}
	}
	if !info.IsDir() {
		return "", &PathError{Path: path, Message: "not a directory"}
	}
	return abs, nil
}

// SamePath reports whether a and b name the same location. Comparison
// ignores case on Windows and macOS, whose default filesystems do.
func SamePath(a, b string) bool {
	a, b = NormalizePath(a), NormalizePath(b)
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// ValidatePath checks if a path is valid for the current platform
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return &PathError{Path: path, Message: "path is empty"}
	}
	if strings.ContainsRune(path, 0) {
		return &PathError{Path: path, Message: "path contains a NUL byte"}
	}

	// Check for invalid characters based on OS
	if runtime.GOOS == "windows" {
		check := path
		// the drive colon is allowed
		if len(check) >= 2 && check[1] == ':' {
			check = check[2:]
		}
		invalidChars := []string{"<", ">", ":", "\"", "|", "?", "*"}
		for _, char := range invalidChars {
			if strings.Contains(check, char) && !IsUNCPath(path) {
				return &PathError{Path: path, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
