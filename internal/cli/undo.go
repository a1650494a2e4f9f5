package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Demoen/organizer-application/pkg/execute"
)

// NewUndoCommand creates the undo command
func NewUndoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the most recent apply",
		Long: `Revert the most recently applied batch, newest operation first. If an
operation cannot be reverted, the ones not yet reverted stay in the history
so the undo can be retried after fixing the cause.`,
		Args: cobra.NoArgs,
		RunE: runUndo,
	}
}

func runUndo(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	a, err := newApp(cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.close(ctx)

	batch, err := a.engine.Undo(ctx)
	if errors.Is(err, execute.ErrNothingToUndo) {
		if !globalFlags.Quiet {
			fmt.Fprintln(a.stdout, "Nothing to undo")
		}
		return nil
	}
	if batch == nil {
		return err
	}

	if !globalFlags.Quiet {
		fmt.Fprintf(a.stdout, "Reverted batch %s (%d operations) in %s\n", batch.ID, len(batch.Operations), batch.Root)
	}
	if err != nil {
		return fmt.Errorf("files restored but history not saved: %w", err)
	}
	return nil
}
