package storagetest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Demoen/organizer-application/pkg/storage"
)

// TestFaulty tests failure injection around a real backend
func TestFaulty(t *testing.T) {
	root := t.TempDir()
	local, err := storage.NewLocal(root)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()
	boom := errors.New("boom")

	for _, name := range []string{"a", "b", "c"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(name), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	f := NewFaulty(local).FailRenameAt(2, boom).FailRenameFrom(filepath.Join(root, "c"), boom)

	if err := f.Rename(ctx, filepath.Join(root, "a"), filepath.Join(root, "a2")); err != nil {
		t.Fatalf("first Rename() error = %v", err)
	}
	if err := f.Rename(ctx, filepath.Join(root, "b"), filepath.Join(root, "b2")); !errors.Is(err, boom) {
		t.Fatalf("second Rename() error = %v, want boom", err)
	}
	if err := f.Rename(ctx, filepath.Join(root, "c"), filepath.Join(root, "c2")); !errors.Is(err, boom) {
		t.Fatalf("Rename(c) error = %v, want boom", err)
	}
	if f.Renames() != 3 {
		t.Errorf("Renames() = %d, want 3", f.Renames())
	}
	if _, err := os.Stat(filepath.Join(root, "b")); err != nil {
		t.Error("failed rename must leave the source in place")
	}
}

func TestFaulty_IsBackend(t *testing.T) {
	var _ storage.Backend = (*Faulty)(nil)
}
