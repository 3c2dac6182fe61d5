package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"cpm.dev/pkg/cpm/internal/controller"
	m "cpm.dev/pkg/cpm/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view report",
		Short: "Show a saved module rename report",
		Long: `Print a rename report written by "cpm module -r old --report file new"
the way the rename itself printed it. Reports of dry runs show the planned
diffs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ui := controller.NewUI(cmd, false)

			report, err := reportStore.LoadRenameReport(m.Path(args[0]))
			if errors.Is(err, fs.ErrNotExist) {
				return reportFailure(ui, fmt.Errorf("report %q: %w", args[0], m.ErrNotFound))
			}

			if err != nil {
				return reportFailure(ui, m.ClassifyFSError(err))
			}

			ui.DisplayRenameReport(report)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
