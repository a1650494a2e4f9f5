package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Demoen/organizer-application/internal/platform"
	"github.com/Demoen/organizer-application/pkg/classify"
	"github.com/Demoen/organizer-application/pkg/config"
	"github.com/Demoen/organizer-application/pkg/models"
	"github.com/Demoen/organizer-application/pkg/naming"
)

// NewSuggestNameCommand creates the suggest-name command
func NewSuggestNameCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "suggest-name <dir>",
		Short: "Ask the language model for a project folder name",
		Long: `Read a project's README and manifest files and ask the configured model
for a short kebab-case folder name. Requires GEMINI_API_KEY or
GOOGLE_API_KEY.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			if err := validateGlobalFlags(); err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger, err := createLogger(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Close()

			dir, err := platform.ResolveRoot(args[0])
			if err != nil {
				return err
			}

			gen, err := naming.NewGeminiGenerator(ctx, naming.APIKeyFromEnv(), naming.ModelFromEnv(cfg.Naming.Model))
			if err != nil {
				return err
			}
			if timeout <= 0 {
				timeout = cfg.Naming.TimeoutDuration()
			}
			s, err := naming.NewSuggester(gen, naming.WithTimeout(timeout), naming.WithLogger(logger))
			if err != nil {
				return err
			}

			name, err := s.Suggest(ctx, projectFor(dir, cfg))
			if errors.Is(err, naming.ErrUnavailable) {
				return fmt.Errorf("no suggestion for %s: %w", dir, err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout (default from config)")

	return cmd
}

// projectFor describes dir the way the scanner would
func projectFor(dir string, cfg *config.Config) models.Project {
	p := models.Project{Path: dir, Name: filepath.Base(dir)}
	if marker, _, ok := classify.DetectProject(dir, cfg.ProjectMarkers); ok {
		p.TypeGuess = marker
		if name, ok := classify.InternalName(dir, marker); ok {
			p.InternalName = name
		}
	}
	return p
}
