package platform

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()

	t.Run("Absolute", func(t *testing.T) {
		got, err := ResolveRoot(dir + string(filepath.Separator))
		if err != nil {
			t.Fatalf("ResolveRoot() error = %v", err)
		}
		if got != filepath.Clean(dir) {
			t.Errorf("ResolveRoot() = %q, want %q", got, filepath.Clean(dir))
		}
	})

	t.Run("Relative", func(t *testing.T) {
		t.Chdir(dir)
		if err := os.Mkdir("sub", 0755); err != nil {
			t.Fatal(err)
		}
		got, err := ResolveRoot("sub")
		if err != nil {
			t.Fatalf("ResolveRoot() error = %v", err)
		}
		if !filepath.IsAbs(got) || filepath.Base(got) != "sub" {
			t.Errorf("ResolveRoot(sub) = %q", got)
		}
	})

	t.Run("Home", func(t *testing.T) {
		t.Setenv("HOME", dir)
		t.Setenv("USERPROFILE", dir)
		got, err := ResolveRoot("~")
		if err != nil {
			t.Fatalf("ResolveRoot(~) error = %v", err)
		}
		if got != filepath.Clean(dir) {
			t.Errorf("ResolveRoot(~) = %q, want %q", got, dir)
		}
	})

	tests := []struct {
		name string
		path string
	}{
		{"Empty", ""},
		{"Blank", "   "},
		{"Missing", filepath.Join(dir, "missing")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveRoot(tt.path)
			var perr *PathError
			if !errors.As(err, &perr) {
				t.Errorf("ResolveRoot(%q) error = %v, want *PathError", tt.path, err)
			}
		})
	}

	t.Run("File", func(t *testing.T) {
		file := filepath.Join(dir, "file.txt")
		if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := ResolveRoot(file); err == nil {
			t.Error("ResolveRoot() on a file should fail")
		}
	})
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := map[string]string{
		"~":               home,
		"~/Downloads":     filepath.Join(home, "Downloads"),
		"/abs/path":       "/abs/path",
		"relative/~/path": "relative/~/path",
		"~other":          "~other",
	}
	for in, want := range tests {
		got, err := ExpandHome(in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) error = %v", in, err)
		}
		if got != want {
			t.Errorf("ExpandHome(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSamePath(t *testing.T) {
	if !SamePath("/data/Downloads/", "/data/Downloads") {
		t.Error("trailing separator should not matter")
	}
	if !SamePath("/data/x/../Downloads", "/data/Downloads") {
		t.Error("paths should be cleaned before comparing")
	}
	caseInsensitive := runtime.GOOS == "windows" || runtime.GOOS == "darwin"
	if got := SamePath("/data/Downloads", "/data/downloads"); got != caseInsensitive {
		t.Errorf("SamePath with differing case = %v on %s", got, runtime.GOOS)
	}
}

func TestValidatePath(t *testing.T) {
	if err := ValidatePath("/tmp/ok"); err != nil {
		t.Errorf("ValidatePath() error = %v", err)
	}
	if err := ValidatePath("bad\x00path"); err == nil {
		t.Error("NUL byte should be rejected")
	}
	if IsUNCPath(`\\server\share`) != (runtime.GOOS == "windows") {
		t.Error("UNC detection is Windows-only")
	}
}
