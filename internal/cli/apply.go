package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Demoen/organizer-application/internal/platform"
	"github.com/Demoen/organizer-application/pkg/models"
	"github.com/Demoen/organizer-application/pkg/organize"
	"github.com/Demoen/organizer-application/pkg/output"
)

// ApplyFlags holds apply command flags
type ApplyFlags struct {
	PlanFile     string
	DryRun       bool
	Yes          bool
	NoProgress   bool
	SuggestNames bool
}

// NewApplyCommand creates the apply command
func NewApplyCommand() *cobra.Command {
	var flags ApplyFlags

	cmd := &cobra.Command{
		Use:   "apply [root]",
		Short: "Organize a directory",
		Long: `Plan and apply the moves that organize a directory. If any move fails,
the moves already made are reverted before the command exits. A successful
apply is recorded and can be reverted with "organizer undo".

Exit codes: 0 success or nothing to do, 1 usage or setup error,
2 rolled back after a failure, 3 cancelled.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.PlanFile, "plan", "", "apply a plan saved with \"organizer plan --out\"")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "show what would be done without moving anything")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "disable the progress bar")
	cmd.Flags().BoolVar(&flags.SuggestNames, "suggest-names", false, "ask the language model for project folder names")

	return cmd
}

func runApply(cmd *cobra.Command, args []string, flags ApplyFlags) error {
	ctx := commandContext(cmd)

	a, err := newApp(cmd, appOptions{suggest: flags.SuggestNames && flags.PlanFile == ""})
	if err != nil {
		return err
	}
	defer a.close(ctx)

	plan, err := loadOrGeneratePlan(cmd, a, args, flags)
	if err != nil {
		return err
	}

	if !plan.IsEmpty() && !flags.DryRun && !flags.Yes {
		if globalFlags.Output == "human" {
			a.formatter.Plan(a.stdout, plan)
		}
		question := fmt.Sprintf("Apply %d operations in %s?", len(plan.Operations), plan.Root)
		if !confirm(cmd.InOrStdin(), a.stderr, question) {
			a.notef("Aborted, nothing was changed\n")
			return nil
		}
	}

	opts := organize.ApplyOptions{DryRun: flags.DryRun}
	var bar *output.ProgressBar
	if !flags.DryRun && !flags.NoProgress && !globalFlags.Quiet &&
		globalFlags.Output == "human" && output.IsTerminal(a.stderr) && !plan.IsEmpty() {
		bar = output.NewProgressBar(a.stderr, len(plan.Operations))
		opts.Progress = bar.Update
	}

	report, applyErr := a.engine.Apply(ctx, plan, opts)
	if bar != nil {
		bar.Finish()
	}

	if !globalFlags.Quiet || report.Status != models.StatusSuccess {
		if err := a.formatter.Report(a.stdout, report); err != nil {
			return err
		}
	}

	if applyErr != nil {
		return &ExitError{Code: report.Status.ExitCode(), Err: applyErr}
	}
	return nil
}

// loadOrGeneratePlan reads --plan or plans the root argument
func loadOrGeneratePlan(cmd *cobra.Command, a *app, args []string, flags ApplyFlags) (*models.Plan, error) {
	ctx := commandContext(cmd)

	if flags.PlanFile == "" {
		root, err := resolveRoot(args)
		if err != nil {
			return nil, err
		}
		plan, _, err := a.engine.Plan(ctx, root)
		return plan, err
	}

	plan, err := output.ReadPlanFile(flags.PlanFile)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		root, err := resolveRoot(args)
		if err != nil {
			return nil, err
		}
		if !platform.SamePath(root, plan.Root) {
			return nil, fmt.Errorf("plan was made for %s, not %s", plan.Root, root)
		}
	}
	return plan, nil
}
