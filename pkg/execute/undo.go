package execute

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Demoen/organizer-application/pkg/logging"
	"github.com/Demoen/organizer-application/pkg/models"
	"github.com/Demoen/organizer-application/pkg/storage"
)

// BackendOpener returns a backend able to touch paths under root
type BackendOpener func(root string) (storage.Backend, error)

func openLocal(root string) (storage.Backend, error) {
	return storage.NewLocal(root)
}

// UndoStore is the stack of applied batches. One mutex guards it and is
// held for the whole of an apply-and-push or an undo, so a second undo
// waits until the first has finished inverting its batch.
type UndoStore struct {
	mu      sync.Mutex
	batches []models.Batch
	journal Journal
	open    BackendOpener
	logger  logging.Logger
}

// StoreOption configures an UndoStore
type StoreOption func(*UndoStore)

// WithJournal persists the stack after every change
func WithJournal(j Journal) StoreOption {
	return func(s *UndoStore) { s.journal = j }
}

// WithBackendOpener replaces how undo reaches a batch's root
func WithBackendOpener(open BackendOpener) StoreOption {
	return func(s *UndoStore) { s.open = open }
}

// WithStoreLogger sets the store's logger
func WithStoreLogger(l logging.Logger) StoreOption {
	return func(s *UndoStore) { s.logger = logging.OrNull(l) }
}

// NewUndoStore creates a store, loading the journal when one is set
func NewUndoStore(opts ...StoreOption) (*UndoStore, error) {
	s := &UndoStore{
		open:   openLocal,
		logger: logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.journal != nil {
		batches, err := s.journal.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
		s.batches = batches
	}
	return s, nil
}

// persist saves the stack; the caller holds mu. A failed save leaves
// the in-memory stack as is.
func (s *UndoStore) persist() error {
	if s.journal == nil {
		return nil
	}
	if err := s.journal.Save(s.batches); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Push records a batch
func (s *UndoStore) Push(b models.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batches = append(s.batches, b)
	return s.persist()
}

// Apply executes plan and pushes the applied operations as one batch.
// An empty result pushes nothing and returns a nil batch.
func (s *UndoStore) Apply(ctx context.Context, exec *Executor, plan *models.Plan) (*models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied, err := exec.Execute(ctx, plan)
	if err != nil {
		return nil, err
	}
	if len(applied) == 0 {
		return nil, nil
	}

	b := models.Batch{
		ID:         uuid.NewString(),
		Root:       plan.Root,
		AppliedAt:  time.Now(),
		Operations: applied,
	}
	s.batches = append(s.batches, b)
	if err := s.persist(); err != nil {
		// the files have moved; the batch stays undoable in this process
		s.logger.Error(ctx, "history not saved", err, logging.Fields{"batch": b.ID})
		return &b, err
	}
	return &b, nil
}

// UndoLast pops the most recent batch and inverts its operations in
// reverse order. Unlike rollback during apply, it stops at the first
// failed inversion and returns it as an *UndoError; the operations not
// yet inverted, the failed one included, stay on the stack so the undo
// can be retried.
func (s *UndoStore) UndoLast(ctx context.Context) (*models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.batches) == 0 {
		return nil, ErrNothingToUndo
	}
	last := len(s.batches) - 1
	b := s.batches[last]

	backend, err := s.open(b.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", b.Root, err)
	}
	defer backend.Close()

	for i := len(b.Operations) - 1; i >= 0; i-- {
		op := b.Operations[i]
		if err := Invert(ctx, backend, op); err != nil {
			rest := b
			rest.Operations = append([]models.FileOperation(nil), b.Operations[:i+1]...)
			s.batches[last] = rest
			if perr := s.persist(); perr != nil {
				s.logger.Error(ctx, "history not saved", perr, logging.Fields{"batch": b.ID})
			}
			return nil, &UndoError{BatchID: b.ID, Failed: op, Err: err}
		}
		s.logger.Debug(ctx, "operation undone", logging.Fields{"op": op.String()})
	}

	s.batches = s.batches[:last]
	if err := s.persist(); err != nil {
		return &b, err
	}
	return &b, nil
}

// History returns a copy of the stack, oldest first
func (s *UndoStore) History() []models.Batch {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Batch, len(s.batches))
	for i, b := range s.batches {
		b.Operations = append([]models.FileOperation(nil), b.Operations...)
		out[i] = b
	}
	return out
}

// Len returns the number of undoable batches
func (s *UndoStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

// Clear forgets every batch without touching the filesystem
func (s *UndoStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batches = nil
	return s.persist()
}
