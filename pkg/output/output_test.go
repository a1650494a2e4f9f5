package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Demoen/organizer-application/pkg/models"
	"github.com/Demoen/organizer-application/pkg/scan"
)

func samplePlan(root string) *models.Plan {
	return &models.Plan{
		Root:    root,
		Summary: "Planned 2 operations",
		Operations: []models.FileOperation{
			{
				ID:          "op-1",
				Type:        models.OpMove,
				Source:      filepath.Join(root, "photo.png"),
				Destination: filepath.Join(root, "Media", "Images", "photo.png"),
				Reason:      "Rule: Images",
			},
			{
				ID:          "op-2",
				Type:        models.OpMove,
				Source:      filepath.Join(root, "engine"),
				Destination: filepath.Join(root, "Projects", "Rust", "fast-engine"),
				Reason:      "Project detected: Cargo.toml",
			},
		},
		CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "human", "json"} {
		f, err := New(name)
		if err != nil {
			t.Fatalf("New(%q) error = %v", name, err)
		}
		if name != "" && f.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, f.Name())
		}
	}

	if _, err := New("xml"); err == nil {
		t.Error("New(xml) should fail")
	}
}

func TestHumanFormatter_Plan(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data", "downloads")
	var buf bytes.Buffer

	if err := NewHumanFormatter().Plan(&buf, samplePlan(root)); err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Planned 2 operations",
		"[1/2] move photo.png -> " + filepath.Join("Media", "Images", "photo.png"),
		"[2/2] move engine -> " + filepath.Join("Projects", "Rust", "fast-engine"),
		"Project detected: Cargo.toml",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := NewHumanFormatter().Plan(&buf, &models.Plan{Root: root}); err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Nothing to organize") {
		t.Errorf("empty plan output = %q", buf.String())
	}
}

func TestHumanFormatter_Report(t *testing.T) {
	report := &models.ApplyReport{
		BatchID:  "batch-42",
		Duration: 1500 * time.Millisecond,
		Applied: []models.FileOperation{
			{Type: models.OpCreateDir, Destination: "/r/Media"},
			{Type: models.OpMove, Source: "/r/a", Destination: "/r/Media/a"},
		},
		Status: models.StatusSuccess,
	}

	var buf bytes.Buffer
	if err := NewHumanFormatter().Report(&buf, report); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Apply completed", "Items moved:     1", "Dirs created:    1", "batch-42", "Status: success"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	report = &models.ApplyReport{DryRun: true, Status: models.StatusRolledBack, Error: "operation 2 failed"}
	NewHumanFormatter().Report(&buf, report)
	if !strings.Contains(buf.String(), "Dry run completed") || !strings.Contains(buf.String(), "operation 2 failed") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestHumanFormatter_Scan(t *testing.T) {
	result := &scan.Result{
		Root:     "/home/me/Downloads",
		Files:    []models.FileItem{{Name: "big.iso", Size: 3 * 1024 * 1024}},
		Projects: []models.Project{{Path: "/home/me/Downloads/site", Name: "site", TypeGuess: "package.json", InternalName: "my-site"}},
		Stats:    scan.Stats{DirsVisited: 4, Protected: 1},
	}

	var buf bytes.Buffer
	if err := NewHumanFormatter().Scan(&buf, result); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Loose files (1)", "big.iso", "3.0 MiB", "Projects (1)", "site", "(my-site)", "Protected skipped:    1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHistory(t *testing.T) {
	batches := []models.Batch{
		{ID: "b1", Root: "/r", AppliedAt: time.Now(), Operations: make([]models.FileOperation, 3)},
		{ID: "b2", Root: "/r", AppliedAt: time.Now(), Operations: make([]models.FileOperation, 1)},
	}

	var buf bytes.Buffer
	NewHumanFormatter().History(&buf, batches)
	if !strings.Contains(buf.String(), "b1") || !strings.Contains(buf.String(), "3 operations") {
		t.Errorf("unexpected human history:\n%s", buf.String())
	}

	buf.Reset()
	NewHumanFormatter().History(&buf, nil)
	if !strings.Contains(buf.String(), "No operations to undo") {
		t.Errorf("unexpected empty history: %q", buf.String())
	}

	buf.Reset()
	if err := NewJSONFormatter().History(&buf, batches); err != nil {
		t.Fatalf("History() error = %v", err)
	}
	var data []JSONHistoryData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(data) != 2 || data[1].ID != "b2" || data[0].Operations != 3 {
		t.Errorf("unexpected history data: %+v", data)
	}
}

func TestJSONFormatter_Report(t *testing.T) {
	var buf bytes.Buffer
	err := NewJSONFormatter().Report(&buf, &models.ApplyReport{
		Status:   models.StatusNothingToDo,
		Duration: 2 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data["status"] != "nothing-to-do" {
		t.Errorf("status = %v", data["status"])
	}
	if applied, ok := data["applied"].([]any); !ok || len(applied) != 0 {
		t.Errorf("applied = %v, want empty list", data["applied"])
	}
}

func TestPlanFile(t *testing.T) {
	dir := t.TempDir()
	plan := samplePlan(dir)

	t.Run("JSONRoundTrip", func(t *testing.T) {
		path := filepath.Join(dir, "plan.json")
		if err := WritePlanFile(plan, path, "json"); err != nil {
			t.Fatalf("WritePlanFile() error = %v", err)
		}
		if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
			t.Error("temporary file left behind")
		}

		loaded, err := ReadPlanFile(path)
		if err != nil {
			t.Fatalf("ReadPlanFile() error = %v", err)
		}
		if len(loaded.Operations) != 2 || loaded.Operations[1].Destination != plan.Operations[1].Destination {
			t.Errorf("loaded plan differs: %+v", loaded)
		}
		if !loaded.CreatedAt.Equal(plan.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", loaded.CreatedAt, plan.CreatedAt)
		}
	})

	t.Run("Human", func(t *testing.T) {
		path := filepath.Join(dir, "plan.txt")
		if err := WritePlanFile(plan, path, "human"); err != nil {
			t.Fatalf("WritePlanFile() error = %v", err)
		}
		data, _ := os.ReadFile(path)
		text := string(data)
		for _, want := range []string{"Organization Plan", "Media/Images (1 items)", "Projects/Rust (1 items)", "From:   engine"} {
			if !strings.Contains(text, want) {
				t.Errorf("human plan missing %q:\n%s", want, text)
			}
		}

		if _, err := ReadPlanFile(path); err == nil {
			t.Error("human plan should not load")
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		path := filepath.Join(dir, "dup.json")
		bad := `{"operations": [
			{"id": "1", "op_type": "move", "source": "/a", "destination": "/x"},
			{"id": "2", "op_type": "move", "source": "/b", "destination": "/x"}
		]}`
		os.WriteFile(path, []byte(bad), 0644)

		_, err := ReadPlanFile(path)
		if err == nil || !strings.Contains(err.Error(), "invalid plan file") {
			t.Errorf("ReadPlanFile() error = %v, want invalid plan", err)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, err := ReadPlanFile(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	if IsTerminal(&buf) {
		t.Fatal("a buffer is not a terminal")
	}

	bar := NewProgressBar(&buf, 3)
	for i := 1; i <= 3; i++ {
		bar.Update(i, 3, models.FileOperation{Destination: "/r/Documents/file.pdf"})
	}
	bar.Finish()

	if !strings.Contains(buf.String(), "3 / 3") {
		t.Errorf("final bar missing counters: %q", buf.String())
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
