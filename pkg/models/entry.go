package models

// FileItem represents a loose file found directly in the scan root
type FileItem struct {
	// Path is the full path on the filesystem
	Path string `json:"path"`

	// Name is the base name including extension
	Name string `json:"name"`

	// Extension without the leading dot, case preserved; empty when absent
	Extension string `json:"extension,omitempty"`

	// Size in bytes
	Size int64 `json:"size"`

	// IsDir is always false for loose files
	IsDir bool `json:"is_dir"`

	// Created and Modified are seconds since epoch, 0 if unavailable
	Created  int64 `json:"created"`
	Modified int64 `json:"modified"`

	// ProjectRoot is set when the file belongs to a project
	ProjectRoot string `json:"project_root,omitempty"`
}

// Project represents a directory classified as a software or content project
type Project struct {
	// Path is the project directory
	Path string `json:"path"`

	// Name is the directory base name
	Name string `json:"name"`

	// TypeGuess is the marker that triggered detection, e.g. "Cargo.toml" or "*.py"
	TypeGuess string `json:"type_guess"`

	// InternalName is the name declared in the project's manifest, if any
	InternalName string `json:"internal_name,omitempty"`
}

// DisplayName returns the internal name when known, the directory name otherwise
func (p Project) DisplayName() string {
	if p.InternalName != "" {
		return p.InternalName
	}
	return p.Name
}
