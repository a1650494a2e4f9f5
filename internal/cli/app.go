package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Demoen/organizer-application/internal/platform"
	"github.com/Demoen/organizer-application/pkg/config"
	"github.com/Demoen/organizer-application/pkg/execute"
	"github.com/Demoen/organizer-application/pkg/logging"
	"github.com/Demoen/organizer-application/pkg/metrics"
	"github.com/Demoen/organizer-application/pkg/naming"
	"github.com/Demoen/organizer-application/pkg/organize"
	"github.com/Demoen/organizer-application/pkg/output"
	"github.com/Demoen/organizer-application/pkg/ratelimit"
)

// ExitError carries a process exit code out of a command
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// app bundles what one command invocation needs
type app struct {
	cfg       *config.Config
	logger    logging.Logger
	metrics   *metrics.Recorder
	engine    *organize.Engine
	formatter output.Formatter
	stdout    io.Writer
	stderr    io.Writer
}

type appOptions struct {
	suggest bool
}

// newApp loads configuration and builds the engine for cmd
func newApp(cmd *cobra.Command, opts appOptions) (*app, error) {
	if err := validateGlobalFlags(); err != nil {
		return nil, err
	}
	ctx := commandContext(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := createLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	formatter, err := output.New(globalFlags.Output)
	if err != nil {
		logger.Close()
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics.New(),
		formatter: formatter,
		stdout:    cmd.OutOrStdout(),
		stderr:    cmd.ErrOrStderr(),
	}

	journalPath, err := execute.DefaultJournalPath()
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	store, err := execute.NewUndoStore(
		execute.WithJournal(execute.NewFileJournal(journalPath)),
		execute.WithStoreLogger(logger),
	)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("failed to load undo history: %w", err)
	}

	engineOpts := []organize.Option{
		organize.WithLogger(logger),
		organize.WithMetrics(a.metrics),
		organize.WithUndoStore(store),
	}
	if opts.suggest || cfg.Naming.Enabled {
		if s := a.newSuggester(ctx); s != nil {
			engineOpts = append(engineOpts, organize.WithSuggester(s, cfg.Naming.Workers))
		}
	}

	a.engine, err = organize.NewEngine(cfg, engineOpts...)
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	return a, nil
}

// newSuggester returns nil when no model can be reached; names are
// advisory so the command continues without them
func (a *app) newSuggester(ctx context.Context) naming.Suggester {
	gen, err := naming.NewGeminiGenerator(ctx, naming.APIKeyFromEnv(), naming.ModelFromEnv(a.cfg.Naming.Model))
	if err != nil {
		a.logger.Warn(ctx, "name suggestions disabled", logging.Fields{"reason": err.Error()})
		a.notef("Name suggestions disabled: %v\n", err)
		return nil
	}

	s, err := naming.NewSuggester(gen,
		naming.WithTimeout(a.cfg.Naming.TimeoutDuration()),
		naming.WithRateLimit(ratelimit.NewLimiter(a.cfg.Naming.RequestsPerMinute, 1)),
		naming.WithLogger(a.logger),
	)
	if err != nil {
		a.logger.Warn(ctx, "name suggestions disabled", logging.Fields{"reason": err.Error()})
		return nil
	}
	return s
}

// close writes the metrics textfile and flushes the logger
func (a *app) close(ctx context.Context) {
	if globalFlags.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(globalFlags.MetricsFile); err != nil {
			a.logger.Error(ctx, "metrics not written", err, nil)
		}
	}
	a.logger.Close()
}

// notef prints a human-facing note unless quiet or in JSON mode
func (a *app) notef(format string, args ...any) {
	if globalFlags.Quiet || globalFlags.Output == "json" {
		return
	}
	fmt.Fprintf(a.stderr, format, args...)
}

// resolveRoot returns the first argument as an absolute directory,
// defaulting to the working directory
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	return platform.ResolveRoot(root)
}

// loadConfig loads the configuration file named by --config, or the
// default location
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// createLogger combines an optional log file with console output on
// stderr: warnings by default, everything with --verbose, errors only
// with --quiet
func createLogger(stderr io.Writer) (logging.Logger, error) {
	consoleLevel := logging.WarnLevel
	switch {
	case globalFlags.Verbose:
		consoleLevel = logging.DebugLevel
	case globalFlags.Quiet:
		consoleLevel = logging.ErrorLevel
	}
	console := logging.NewConsoleLogger(stderr, consoleLevel)

	// If no log file specified, log to the console only
	if globalFlags.LogFile == "" {
		return console, nil
	}

	// Parse log format
	var format logging.Format
	switch globalFlags.LogFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	// Create file logger
	fileLogger, err := logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       globalFlags.LogFile,
		Format:     format,
		Level:      logging.ParseLevel(globalFlags.LogLevel),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	})
	if err != nil {
		return nil, err
	}

	return logging.NewMulti(console, fileLogger), nil
}

// commandContext returns the command's context or a background one
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
