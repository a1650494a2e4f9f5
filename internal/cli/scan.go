package cli

import (
	"github.com/spf13/cobra"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [root]",
		Short: "List loose files and detected projects",
		Long: `Scan a directory without changing anything. Loose files directly in the
root are listed, project folders are detected by their marker files, and
installed programs and application data are reported as protected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.close(ctx)

	result, err := a.engine.Scan(ctx, root)
	if err != nil {
		return err
	}
	return a.formatter.Scan(a.stdout, result)
}
