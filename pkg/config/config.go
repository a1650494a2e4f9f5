package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Demoen/organizer-application/pkg/models"
)

// Config is the input to one scan+plan cycle
type Config struct {
	Rules          []Rule   `json:"rules" yaml:"rules"`
	IgnorePatterns []string `json:"ignore_patterns" yaml:"ignore_patterns"`
	ProjectMarkers []string `json:"project_markers" yaml:"project_markers"`

	// Naming configures the optional project name suggester
	Naming NamingConfig `json:"naming,omitempty" yaml:"naming,omitempty"`
}

// Rule maps file-name globs to a destination folder under the root
type Rule struct {
	Name        string   `json:"name" yaml:"name"`
	Patterns    []string `json:"patterns" yaml:"patterns"`
	Destination string   `json:"destination" yaml:"destination"`
	Active      bool     `json:"active" yaml:"active"`
}

// NamingConfig holds settings for AI-assisted project naming
type NamingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Model   string `json:"model,omitempty" yaml:"model,omitempty"`
	// Timeout is a Go duration string, e.g. "15s"
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// RequestsPerMinute caps model calls; 0 means unlimited
	RequestsPerMinute int `json:"requests_per_minute,omitempty" yaml:"requests_per_minute,omitempty"`
	// Workers bounds concurrent suggestion requests
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// TimeoutDuration parses Timeout, returning 0 when unset or invalid
func (n NamingConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(n.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// ActiveRules returns the active rules in configured order
func (c *Config) ActiveRules() []Rule {
	var out []Rule
	for _, r := range c.Rules {
		if r.Active {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a deep copy
func (c *Config) Clone() *Config {
	out := *c
	out.IgnorePatterns = append([]string(nil), c.IgnorePatterns...)
	out.ProjectMarkers = append([]string(nil), c.ProjectMarkers...)
	out.Rules = make([]Rule, len(c.Rules))
	for i, r := range c.Rules {
		r.Patterns = append([]string(nil), r.Patterns...)
		out.Rules[i] = r
	}
	return &out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Rules))
	for i, r := range c.Rules {
		field := fmt.Sprintf("rules[%d]", i)
		if strings.TrimSpace(r.Name) == "" {
			return &models.ValidationError{Field: field + ".name", Message: "must not be empty"}
		}
		if seen[r.Name] {
			return &models.ValidationError{Field: field + ".name", Message: fmt.Sprintf("duplicate rule name %q", r.Name)}
		}
		seen[r.Name] = true

		if len(r.Patterns) == 0 {
			return &models.ValidationError{Field: field + ".patterns", Message: "at least one pattern is required"}
		}
		for _, p := range r.Patterns {
			if !doublestar.ValidatePattern(p) {
				return &models.ValidationError{Field: field + ".patterns", Message: fmt.Sprintf("invalid glob %q", p)}
			}
		}
		if err := validateDestination(r.Destination); err != nil {
			return &models.ValidationError{Field: field + ".destination", Message: err.Error()}
		}
	}

	for i, p := range c.IgnorePatterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return &models.ValidationError{
				Field:   fmt.Sprintf("ignore_patterns[%d]", i),
				Message: fmt.Sprintf("invalid glob %q", p),
			}
		}
	}

	for i, m := range c.ProjectMarkers {
		if strings.TrimSpace(m) == "" {
			return &models.ValidationError{Field: fmt.Sprintf("project_markers[%d]", i), Message: "must not be empty"}
		}
	}

	if c.Naming.Timeout != "" {
		if d, err := time.ParseDuration(c.Naming.Timeout); err != nil || d <= 0 {
			return &models.ValidationError{Field: "naming.timeout", Message: fmt.Sprintf("invalid duration %q", c.Naming.Timeout)}
		}
	}
	if c.Naming.RequestsPerMinute < 0 {
		return &models.ValidationError{Field: "naming.requests_per_minute", Message: "must not be negative"}
	}
	if c.Naming.Workers < 0 {
		return &models.ValidationError{Field: "naming.workers", Message: "must not be negative"}
	}

	return nil
}

// validateDestination requires a relative path that stays under the root
func validateDestination(dest string) error {
	if strings.TrimSpace(dest) == "" {
		return fmt.Errorf("must not be empty")
	}
	if filepath.IsAbs(dest) || strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, `\`) {
		return fmt.Errorf("must be relative to the root, got %q", dest)
	}
	clean := filepath.Clean(filepath.FromSlash(dest))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("must stay inside the root, got %q", dest)
	}
	return nil
}
