// Package storagetest provides storage backends for tests.
package storagetest

import (
	"context"
	"sync"

	"github.com/Demoen/organizer-application/pkg/storage"
)

// Faulty wraps a Backend and fails selected renames. It exists so that
// rollback and undo paths can be exercised against a real filesystem.
type Faulty struct {
	storage.Backend

	mu      sync.Mutex
	renames int
	failAt  map[int]error
	failSrc map[string]error
}

// NewFaulty wraps b without any injected failures
func NewFaulty(b storage.Backend) *Faulty {
	return &Faulty{
		Backend: b,
		failAt:  make(map[int]error),
		failSrc: make(map[string]error),
	}
}

// FailRenameAt makes the n-th Rename call (1-based) return err
func (f *Faulty) FailRenameAt(n int, err error) *Faulty {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAt[n] = err
	return f
}

// FailRenameFrom makes every Rename whose source is src return err
func (f *Faulty) FailRenameFrom(src string, err error) *Faulty {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSrc[src] = err
	return f
}

// Renames returns the number of Rename calls seen so far
func (f *Faulty) Renames() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renames
}

func (f *Faulty) Rename(ctx context.Context, src, dst string) error {
	f.mu.Lock()
	f.renames++
	err, ok := f.failAt[f.renames]
	if !ok {
		err, ok = f.failSrc[src]
	}
	f.mu.Unlock()

	if ok {
		return err
	}
	return f.Backend.Rename(ctx, src, dst)
}
