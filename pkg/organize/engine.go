// Package organize ties scanning, planning, execution and undo together
// behind one Engine used by the CLI.
package organize

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Demoen/organizer-application/pkg/config"
	"github.com/Demoen/organizer-application/pkg/execute"
	"github.com/Demoen/organizer-application/pkg/logging"
	"github.com/Demoen/organizer-application/pkg/metrics"
	"github.com/Demoen/organizer-application/pkg/models"
	"github.com/Demoen/organizer-application/pkg/naming"
	"github.com/Demoen/organizer-application/pkg/plan"
	"github.com/Demoen/organizer-application/pkg/scan"
	"github.com/Demoen/organizer-application/pkg/storage"
)

const defaultSuggestWorkers = 4

// Engine orchestrates the organize cycle
type Engine struct {
	cfg       *config.Config
	scanner   *scan.Scanner
	store     *execute.UndoStore
	suggester naming.Suggester
	workers   int
	metrics   *metrics.Recorder
	logger    logging.Logger
	scanOpts  []scan.Option
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine's logger; it is passed down to the scanner
// and executor
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) { e.logger = logging.OrNull(l) }
}

// WithMetrics records activity in r
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Engine) { e.metrics = r }
}

// WithUndoStore replaces the default in-memory store
func WithUndoStore(s *execute.UndoStore) Option {
	return func(e *Engine) { e.store = s }
}

// WithSuggester asks s for project names during Plan, running at most
// workers requests at once
func WithSuggester(s naming.Suggester, workers int) Option {
	return func(e *Engine) {
		e.suggester = s
		if workers > 0 {
			e.workers = workers
		}
	}
}

// WithScanOptions forwards options to the scanner
func WithScanOptions(opts ...scan.Option) Option {
	return func(e *Engine) { e.scanOpts = append(e.scanOpts, opts...) }
}

// NewEngine creates an engine for cfg
func NewEngine(cfg *config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	e := &Engine{
		cfg:     cfg.Clone(),
		workers: defaultSuggestWorkers,
		logger:  logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.store == nil {
		store, err := execute.NewUndoStore(execute.WithStoreLogger(e.logger))
		if err != nil {
			return nil, err
		}
		e.store = store
	}

	scanOpts := append([]scan.Option{scan.WithLogger(e.logger)}, e.scanOpts...)
	e.scanner = scan.New(e.cfg, scanOpts...)
	e.metrics.SetHistoryDepth(e.store.Len())

	return e, nil
}

// Scan inventories root
func (e *Engine) Scan(ctx context.Context, root string) (*scan.Result, error) {
	result, err := e.scanner.Scan(ctx, root)
	if err != nil {
		e.logger.Error(ctx, "scan failed", err, logging.Fields{"root": root})
		return nil, err
	}

	e.metrics.ObserveScan(len(result.Files), len(result.Projects), result.Stats.Protected, result.Duration)
	e.logger.Info(ctx, "scan completed", logging.Fields{
		"root":      result.Root,
		"files":     len(result.Files),
		"projects":  len(result.Projects),
		"protected": result.Stats.Protected,
		"duration":  result.Duration.String(),
	})
	return result, nil
}

// Plan scans root and generates a plan for it
func (e *Engine) Plan(ctx context.Context, root string) (*models.Plan, *scan.Result, error) {
	result, err := e.Scan(ctx, root)
	if err != nil {
		return nil, nil, err
	}
	return e.PlanFrom(ctx, result), result, nil
}

// PlanFrom generates a plan from an existing scan result. Name
// suggestions are fetched first when a suggester is configured.
func (e *Engine) PlanFrom(ctx context.Context, result *scan.Result) *models.Plan {
	var opts []plan.Option
	if e.suggester != nil && len(result.Projects) > 0 {
		names := e.suggestNames(ctx, result.Projects)
		opts = append(opts, plan.WithNamer(func(p models.Project) (string, bool) {
			name, ok := names[p.Path]
			return name, ok
		}))
	}

	p := plan.Generate(result.Files, result.Projects, e.cfg, result.Root, opts...)
	e.metrics.ObservePlan(p)
	e.logger.Info(ctx, "plan generated", logging.Fields{
		"root":       p.Root,
		"operations": len(p.Operations),
	})
	return p
}

// suggestNames asks the suggester for every project in parallel.
// Failed suggestions are logged and left out of the map.
func (e *Engine) suggestNames(ctx context.Context, projects []models.Project) map[string]string {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		names     = make(map[string]string, len(projects))
		semaphore = make(chan struct{}, e.workers)
	)

	for _, p := range projects {
		// Acquire semaphore slot
		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return names
		}
		wg.Add(1)

		go func(p models.Project) {
			defer wg.Done()
			defer func() { <-semaphore }()

			name, err := e.suggester.Suggest(ctx, p)
			e.metrics.ObserveSuggestion(err == nil)
			if err != nil {
				e.logger.Debug(ctx, "keeping project name", logging.Fields{
					"project": p.Path,
					"reason":  err.Error(),
				})
				return
			}

			mu.Lock()
			names[p.Path] = name
			mu.Unlock()
		}(p)
	}

	wg.Wait()
	return names
}

// ApplyOptions controls one apply
type ApplyOptions struct {
	// DryRun reports the plan's operations without touching the filesystem
	DryRun bool
	// Progress is called after each plan operation
	Progress execute.ProgressFunc
}

// Apply executes plan and records it for undo. The report is returned
// even when err is non-nil so callers can render what happened.
func (e *Engine) Apply(ctx context.Context, p *models.Plan, opts ApplyOptions) (*models.ApplyReport, error) {
	report := &models.ApplyReport{
		Root:      p.Root,
		DryRun:    opts.DryRun,
		StartTime: time.Now(),
	}
	defer e.finish(ctx, report)

	if err := p.Validate(); err != nil {
		report.Status = models.StatusRolledBack
		report.Error = err.Error()
		return report, fmt.Errorf("invalid plan: %w", err)
	}

	if p.IsEmpty() {
		report.Status = models.StatusNothingToDo
		return report, nil
	}

	if opts.DryRun {
		report.Applied = append([]models.FileOperation(nil), p.Operations...)
		report.Status = models.StatusSuccess
		return report, nil
	}

	if p.Root == "" {
		err := errors.New("plan has no root directory")
		report.Status = models.StatusRolledBack
		report.Error = err.Error()
		return report, err
	}

	backend, err := storage.NewLocal(p.Root)
	if err != nil {
		report.Status = models.StatusRolledBack
		report.Error = err.Error()
		return report, fmt.Errorf("failed to open %s: %w", p.Root, err)
	}
	defer backend.Close()

	exec := execute.NewExecutor(backend,
		execute.WithLogger(e.logger),
		execute.WithProgress(opts.Progress),
	)

	batch, err := e.store.Apply(ctx, exec, p)
	if batch != nil {
		report.BatchID = batch.ID
		report.Applied = batch.Operations
	}

	switch {
	case err == nil:
		report.Status = models.StatusSuccess
	case batch != nil:
		// applied but the history could not be saved
		report.Status = models.StatusSuccess
		report.Error = err.Error()
	case errors.Is(err, context.Canceled):
		report.Status = models.StatusCancelled
		report.Error = err.Error()
	default:
		report.Status = models.StatusRolledBack
		report.Error = err.Error()
	}
	return report, err
}

func (e *Engine) finish(ctx context.Context, report *models.ApplyReport) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	e.metrics.ObserveApply(report)
	e.metrics.SetHistoryDepth(e.store.Len())

	fields := logging.Fields{
		"root":     report.Root,
		"status":   string(report.Status),
		"dry_run":  report.DryRun,
		"applied":  len(report.Applied),
		"duration": report.Duration.String(),
	}
	if report.BatchID != "" {
		fields["batch"] = report.BatchID
	}
	if report.Error != "" {
		fields["error"] = report.Error
		e.logger.Warn(ctx, "apply did not complete", fields)
		return
	}
	e.logger.Info(ctx, "apply completed", fields)
}

// Undo reverts the most recent batch
func (e *Engine) Undo(ctx context.Context) (*models.Batch, error) {
	b, err := e.store.UndoLast(ctx)
	e.metrics.SetHistoryDepth(e.store.Len())

	switch {
	case errors.Is(err, execute.ErrNothingToUndo):
		e.metrics.ObserveUndo("empty")
		return nil, err
	case err != nil && b == nil:
		e.metrics.ObserveUndo("failed")
		e.logger.Error(ctx, "undo failed", err, nil)
		return nil, err
	}

	e.metrics.ObserveUndo("success")
	e.logger.Info(ctx, "batch undone", logging.Fields{
		"batch":      b.ID,
		"operations": len(b.Operations),
	})
	// a non-nil err here means the files were restored but history was not saved
	return b, err
}

// History returns the undoable batches, oldest first
func (e *Engine) History() []models.Batch {
	return e.store.History()
}

// ClearHistory forgets all batches without touching the filesystem
func (e *Engine) ClearHistory() error {
	err := e.store.Clear()
	e.metrics.SetHistoryDepth(e.store.Len())
	return err
}

// Config returns the engine's configuration
func (e *Engine) Config() *config.Config {
	return e.cfg
}
