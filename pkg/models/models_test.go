package models

import (
	"errors"
	"strings"
	"testing"
)

// ============== FileOperation Tests ==============

func TestFileOperation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		op      FileOperation
		wantErr string
	}{
		{"Move", FileOperation{ID: "1", Type: OpMove, Source: "/r/a", Destination: "/r/D/a"}, ""},
		{"CreateDir", FileOperation{ID: "2", Type: OpCreateDir, Destination: "/r/D"}, ""},
		{"MissingID", FileOperation{Type: OpMove, Source: "/r/a", Destination: "/r/D/a"}, "id"},
		{"MissingDestination", FileOperation{ID: "3", Type: OpMove, Source: "/r/a"}, "destination"},
		{"MoveWithoutSource", FileOperation{ID: "4", Type: OpMove, Destination: "/r/D/a"}, "source"},
		{"UnknownType", FileOperation{ID: "5", Type: "rename", Destination: "/r/x"}, "op_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantErr {
				t.Errorf("Field = %s, want %s", verr.Field, tt.wantErr)
			}
		})
	}
}

func TestFileOperation_String(t *testing.T) {
	move := FileOperation{Type: OpMove, Source: "/r/a", Destination: "/r/D/a"}
	if got := move.String(); got != "move /r/a -> /r/D/a" {
		t.Errorf("String() = %q", got)
	}

	mkdir := FileOperation{Type: OpCreateDir, Destination: "/r/D"}
	if got := mkdir.String(); got != "create_dir /r/D" {
		t.Errorf("String() = %q", got)
	}
}

// ============== Plan Tests ==============

func TestPlan_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		p := &Plan{Operations: []FileOperation{
			{ID: "1", Type: OpMove, Source: "/r/a", Destination: "/r/D/a"},
			{ID: "2", Type: OpMove, Source: "/r/b", Destination: "/r/D/b"},
		}}
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("DuplicateDestination", func(t *testing.T) {
		p := &Plan{Operations: []FileOperation{
			{ID: "1", Type: OpMove, Source: "/r/a", Destination: "/r/D/x"},
			{ID: "2", Type: OpMove, Source: "/r/b", Destination: "/r/D/x"},
		}}
		err := p.Validate()
		if err == nil || !strings.Contains(err.Error(), "operations 1 and 2") {
			t.Errorf("Validate() error = %v, want duplicate destination", err)
		}
	})

	t.Run("InvalidOperation", func(t *testing.T) {
		p := &Plan{Operations: []FileOperation{
			{ID: "1", Type: OpMove, Source: "/r/a", Destination: "/r/D/a"},
			{ID: "2", Type: OpMove, Destination: "/r/D/b"},
		}}
		err := p.Validate()
		if err == nil || !strings.HasPrefix(err.Error(), "operation 2:") {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		p := &Plan{}
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
		if !p.IsEmpty() {
			t.Error("IsEmpty() should be true")
		}
	})
}

// ============== Project Tests ==============

func TestProject_DisplayName(t *testing.T) {
	p := Project{Name: "proj"}
	if got := p.DisplayName(); got != "proj" {
		t.Errorf("DisplayName() = %q, want proj", got)
	}

	p.InternalName = "fast-engine"
	if got := p.DisplayName(); got != "fast-engine" {
		t.Errorf("DisplayName() = %q, want fast-engine", got)
	}
}

// ============== ApplyStatus Tests ==============

func TestApplyStatus_ExitCode(t *testing.T) {
	tests := []struct {
		status ApplyStatus
		want   int
	}{
		{StatusSuccess, 0},
		{StatusNothingToDo, 0},
		{StatusRolledBack, 2},
		{StatusCancelled, 3},
	}
	for _, tt := range tests {
		if got := tt.status.ExitCode(); got != tt.want {
			t.Errorf("%s.ExitCode() = %d, want %d", tt.status, got, tt.want)
		}
	}
}
