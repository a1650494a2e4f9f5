package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List batches that can be undone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			a, err := newApp(cmd, appOptions{})
			if err != nil {
				return err
			}
			defer a.close(ctx)

			return a.formatter.History(a.stdout, a.engine.History())
		},
	}

	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget all batches without touching any files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			a, err := newApp(cmd, appOptions{})
			if err != nil {
				return err
			}
			defer a.close(ctx)

			n := len(a.engine.History())
			if err := a.engine.ClearHistory(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			a.notef("Cleared %d batches\n", n)
			return nil
		},
	}
}
