package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Demoen/organizer-application/pkg/models"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() should validate, got %v", err)
	}

	if len(cfg.Rules) != 7 {
		t.Errorf("expected 7 default rules, got %d", len(cfg.Rules))
	}
	wantOrder := []string{"Images", "Videos", "Audio", "Documents", "Installers", "Archives", "Shortcuts"}
	for i, name := range wantOrder {
		if cfg.Rules[i].Name != name {
			t.Errorf("Rules[%d].Name = %q, want %q", i, cfg.Rules[i].Name, name)
		}
		if !cfg.Rules[i].Active {
			t.Errorf("rule %s should be active by default", name)
		}
	}

	if cfg.ProjectMarkers[0] != "next.config.js" {
		t.Errorf("framework markers should come first, got %q", cfg.ProjectMarkers[0])
	}
	if !contains(cfg.IgnorePatterns, "**/node_modules/**") {
		t.Error("node_modules should be ignored by default")
	}
	if cfg.Naming.Enabled {
		t.Error("naming should be opt-in")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, "", false},
		{"EmptyRuleName", func(c *Config) { c.Rules[0].Name = " " }, "rules[0].name", true},
		{"DuplicateRuleName", func(c *Config) { c.Rules[1].Name = c.Rules[0].Name }, "rules[1].name", true},
		{"NoPatterns", func(c *Config) { c.Rules[2].Patterns = nil }, "rules[2].patterns", true},
		{"BadGlob", func(c *Config) { c.Rules[0].Patterns = []string{"[a-"} }, "rules[0].patterns", true},
		{"AbsoluteDestination", func(c *Config) { c.Rules[0].Destination = "/tmp/x" }, "rules[0].destination", true},
		{"EscapingDestination", func(c *Config) { c.Rules[0].Destination = "../outside" }, "rules[0].destination", true},
		{"DotDestination", func(c *Config) { c.Rules[0].Destination = "." }, "rules[0].destination", true},
		{"NestedDestination", func(c *Config) { c.Rules[0].Destination = "Media/Photos/2024" }, "", false},
		{"BadIgnore", func(c *Config) { c.IgnorePatterns = append(c.IgnorePatterns, "**/[x") }, "ignore_patterns[19]", true},
		{"EmptyMarker", func(c *Config) { c.ProjectMarkers = append(c.ProjectMarkers, "") }, "", true},
		{"NoRules", func(c *Config) { c.Rules = nil }, "", false},
		{"BadTimeout", func(c *Config) { c.Naming.Timeout = "soon" }, "naming.timeout", true},
		{"NegativeTimeout", func(c *Config) { c.Naming.Timeout = "-1s" }, "naming.timeout", true},
		{"NegativeRate", func(c *Config) { c.Naming.RequestsPerMinute = -1 }, "naming.requests_per_minute", true},
		{"NegativeWorkers", func(c *Config) { c.Naming.Workers = -2 }, "naming.workers", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *models.ValidationError, got %T", err)
			}
			if tt.field != "" && verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestNamingConfig_TimeoutDuration(t *testing.T) {
	tests := map[string]time.Duration{
		"15s":  15 * time.Second,
		"1m":   time.Minute,
		"":     0,
		"soon": 0,
	}
	for in, want := range tests {
		if got := (NamingConfig{Timeout: in}).TimeoutDuration(); got != want {
			t.Errorf("TimeoutDuration(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestActiveRules(t *testing.T) {
	cfg := Default()
	cfg.Rules[1].Active = false

	active := cfg.ActiveRules()
	if len(active) != 6 {
		t.Fatalf("expected 6 active rules, got %d", len(active))
	}
	for _, r := range active {
		if r.Name == "Videos" {
			t.Error("inactive rule returned")
		}
	}
}

func TestClone(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()

	clone.Rules[0].Patterns[0] = "*.heic"
	clone.IgnorePatterns[0] = "changed"
	clone.ProjectMarkers = clone.ProjectMarkers[:1]

	if cfg.Rules[0].Patterns[0] != "*.jpg" {
		t.Error("Clone() shares rule patterns")
	}
	if cfg.IgnorePatterns[0] != "**/node_modules/**" {
		t.Error("Clone() shares ignore patterns")
	}
	if len(cfg.ProjectMarkers) == 1 {
		t.Error("Clone() shares project markers")
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Run("JSONOverridesDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		doc := `{
  "rules": [
    {"name": "Books", "patterns": ["*.epub"], "destination": "Library", "active": true}
  ],
  "ignore_patterns": ["**/tmp/**"]
}`
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if len(cfg.Rules) != 1 || cfg.Rules[0].Destination != "Library" {
			t.Errorf("rules not loaded: %+v", cfg.Rules)
		}
		if len(cfg.IgnorePatterns) != 1 {
			t.Errorf("ignore patterns not replaced: %v", cfg.IgnorePatterns)
		}
		// absent keys keep their defaults
		if len(cfg.ProjectMarkers) != len(Default().ProjectMarkers) {
			t.Error("project markers should fall back to defaults")
		}
	})

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		doc := "project_markers:\n  - go.mod\nnaming:\n  enabled: true\n  model: gemini-2.0-flash\n"
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if len(cfg.ProjectMarkers) != 1 || cfg.ProjectMarkers[0] != "go.mod" {
			t.Errorf("markers = %v", cfg.ProjectMarkers)
		}
		if !cfg.Naming.Enabled || cfg.Naming.Model != "gemini-2.0-flash" {
			t.Errorf("naming = %+v", cfg.Naming)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		doc := `{"rules": [{"name": "x", "patterns": ["*.a"], "destination": "/abs", "active": true}]}`
		os.WriteFile(path, []byte(doc), 0644)

		_, err := LoadFromFile(path)
		if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
			t.Errorf("LoadFromFile() error = %v, want invalid configuration", err)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		os.WriteFile(path, []byte("{rules: ["), 0644)

		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should fail on malformed input")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("LoadFromFile() should fail for a missing file")
		}
	})
}

func TestSaveToFile(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := Default()
			cfg.Rules[0].Active = false

			if err := SaveToFile(cfg, path); err != nil {
				t.Fatalf("SaveToFile() error = %v", err)
			}
			if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
				t.Error("temporary file left behind")
			}

			data, _ := os.ReadFile(path)
			if isJSON(path) != strings.HasPrefix(string(data), "{") {
				t.Errorf("unexpected encoding for %s", name)
			}

			loaded, err := LoadFromFile(path)
			if err != nil {
				t.Fatalf("LoadFromFile() error = %v", err)
			}
			if loaded.Rules[0].Active {
				t.Error("round trip lost the inactive flag")
			}
			if len(loaded.Rules) != len(cfg.Rules) {
				t.Errorf("round trip rules = %d, want %d", len(loaded.Rules), len(cfg.Rules))
			}
		})
	}

	t.Run("RejectsInvalid", func(t *testing.T) {
		cfg := Default()
		cfg.Rules[0].Destination = ""
		if err := SaveToFile(cfg, filepath.Join(t.TempDir(), "c.json")); err == nil {
			t.Error("SaveToFile() should validate first")
		}
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath() error = %v", err)
	}
	if filepath.Base(path) != "config.json" || filepath.Base(filepath.Dir(path)) != "organizer" {
		t.Errorf("DefaultConfigPath() = %q", path)
	}

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if len(cfg.Rules) != 7 {
		t.Error("LoadDefault() should fall back to defaults when no file exists")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
