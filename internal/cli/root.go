package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the organizer command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "organizer",
		Short: "Tidy a cluttered directory with a reversible plan",
		Long: `organizer scans a directory such as Downloads or Desktop, sorts loose
files into category folders by name pattern, moves detected software
projects under Projects/, and leaves installed programs and application
data alone. Every apply is transactional and can be undone.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(NewScanCommand())
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewApplyCommand())
	rootCmd.AddCommand(NewUndoCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewSuggestNameCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
