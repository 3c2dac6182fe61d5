package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cpm.dev/pkg/cpm/internal/adapter"
	"cpm.dev/pkg/cpm/internal/controller"
	"cpm.dev/pkg/cpm/internal/domain"
	m "cpm.dev/pkg/cpm/internal/model"
)

const moduleLongDescription = `Create a module: a source file [name].c including its header [name].h,
which carries an include guard. With -d the files go into a directory [name]/.

With -r, rename the existing module [old_name] to [name]: its directory,
source and header files are renamed, the header's include guard is rewritten
and every #include of the module in .c files under the enclosing src/
directory is updated.`

type moduleSubmanager struct {
	renamer    domain.ModuleRenamer
	scaffolder func() domain.Scaffolder
	reports    adapter.ReportStore

	rename      string
	directory   bool
	dryRun      bool
	interactive bool
	reportPath  string
}

func newModuleSubmanager(
	renamer domain.ModuleRenamer,
	scaffolder func() domain.Scaffolder,
	reports adapter.ReportStore,
) *moduleSubmanager {
	return &moduleSubmanager{renamer: renamer, scaffolder: scaffolder, reports: reports}
}

func (s *moduleSubmanager) AddCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "module [-r old_name | -d] name",
		Short: "Create or rename a module (source + header files)",
		Long:  moduleLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE:  s.HandleArgs,
	}

	cmd.Flags().StringVarP(&s.rename, renameFlagName, "r", "", "rename module with [old_name] to [name]")
	cmd.Flags().BoolVarP(&s.directory, directoryFlagName, "d", viper.GetBool(moduleDirectoryKey), "create directory for the module")
	cmd.MarkFlagsMutuallyExclusive(renameFlagName, directoryFlagName)

	cmd.Flags().BoolVar(&s.dryRun, dryRunFlagName, false, "show what a rename would change without touching any file")
	cmd.Flags().BoolVarP(&s.interactive, interactiveFlagName, "i", false, "show the rename plan and ask for confirmation")
	cmd.Flags().StringVar(&s.reportPath, reportFlagName, "", "write a YAML rename report to this file")

	root.AddCommand(cmd)
}

func (s *moduleSubmanager) HandleArgs(cmd *cobra.Command, args []string) error {
	if s.rename == "" && (s.dryRun || s.interactive || s.reportPath != "") {
		return fmt.Errorf("--%s, --%s and --%s require --%s", dryRunFlagName, interactiveFlagName, reportFlagName, renameFlagName)
	}

	cmd.SilenceUsage = true
	ui := controller.NewUI(cmd, s.interactive && controller.IsTTY(os.Stdin))

	wd, err := workingDir()
	if err != nil {
		return reportFailure(ui, err)
	}

	if s.rename != "" {
		return s.renameModule(ui, wd, args[0])
	}

	withDirectory := s.directory
	if !cmd.Flags().Changed(directoryFlagName) {
		withDirectory = viper.GetBool(moduleDirectoryKey)
	}

	module, err := s.scaffolder().CreateModule(domain.ModuleArgs{
		WorkingDir:    wd,
		Name:          args[0],
		WithDirectory: withDirectory,
	})
	if err != nil {
		return reportFailure(ui, err)
	}

	ui.Info("Created module %s in %s", module.Name, module.WorkingDir)

	return nil
}

func (s *moduleSubmanager) renameModule(ui controller.UI, wd m.Path, newName string) error {
	args := domain.RenameArgs{
		WorkingDir: wd,
		OldName:    s.rename,
		NewName:    newName,
		DryRun:     s.dryRun,
	}

	if s.interactive && !s.dryRun {
		planArgs := args
		planArgs.DryRun = true

		plan, err := s.renamer.Rename(planArgs)
		if err != nil {
			return reportFailure(ui, err)
		}

		ui.DisplayRenameReport(plan)

		ok, err := ui.Confirm(fmt.Sprintf("Rename module %s to %s?", args.OldName, args.NewName))
		if err != nil {
			return reportFailure(ui, err)
		}

		if !ok {
			ui.Info("Rename cancelled")
			return nil
		}
	}

	report, err := s.renamer.Rename(args)
	if err != nil {
		return reportFailure(ui, err)
	}

	ui.DisplayRenameReport(report)

	if s.reportPath == "" {
		return nil
	}

	if err := s.reports.SaveRenameReport(m.Path(s.reportPath), report); err != nil {
		return reportFailure(ui, err)
	}

	ui.Info("Report written to %s", s.reportPath)

	return nil
}
