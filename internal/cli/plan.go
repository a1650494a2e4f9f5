package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Demoen/organizer-application/pkg/output"
)

// PlanFlags holds plan command flags
type PlanFlags struct {
	Out          string
	OutFormat    string
	SuggestNames bool
}

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var flags PlanFlags

	cmd := &cobra.Command{
		Use:   "plan [root]",
		Short: "Show the moves that would organize a directory",
		Long: `Scan a directory and print the ordered list of moves that would organize
it. Nothing is changed. Use --out to save the plan and apply it later with
"organizer apply --plan".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.Out, "out", "", "write the plan to this file")
	cmd.Flags().StringVar(&flags.OutFormat, "out-format", "json", "plan file format: json, human")
	cmd.Flags().BoolVar(&flags.SuggestNames, "suggest-names", false, "ask the language model for project folder names")

	return cmd
}

func runPlan(cmd *cobra.Command, args []string, flags PlanFlags) error {
	ctx := commandContext(cmd)

	if err := validatePlanFormat(flags.OutFormat); err != nil {
		return err
	}

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, appOptions{suggest: flags.SuggestNames})
	if err != nil {
		return err
	}
	defer a.close(ctx)

	plan, _, err := a.engine.Plan(ctx, root)
	if err != nil {
		return err
	}

	if flags.Out != "" {
		if err := output.WritePlanFile(plan, flags.Out, flags.OutFormat); err != nil {
			return err
		}
		a.notef("Plan written to %s\n", flags.Out)
	}

	if globalFlags.Quiet && flags.Out != "" {
		return nil
	}
	if err := a.formatter.Plan(a.stdout, plan); err != nil {
		return fmt.Errorf("failed to render plan: %w", err)
	}
	return nil
}
