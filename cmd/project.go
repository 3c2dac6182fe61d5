package cmd

import (
	"github.com/spf13/cobra"

	"cpm.dev/pkg/cpm/internal/controller"
	"cpm.dev/pkg/cpm/internal/domain"
)

const projectLongDescription = `Create a project directory with src/, build/, src/main.c and a makefile.

With -r, rename the existing project [old_name] to [name] and update the
project name inside its makefile.`

type projectSubmanager struct {
	renamer    domain.ProjectRenamer
	scaffolder func() domain.Scaffolder

	rename string
}

func newProjectSubmanager(renamer domain.ProjectRenamer, scaffolder func() domain.Scaffolder) *projectSubmanager {
	return &projectSubmanager{renamer: renamer, scaffolder: scaffolder}
}

func (p *projectSubmanager) AddCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "project [-r old_name] name",
		Short: "Create or rename a project",
		Long:  projectLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE:  p.HandleArgs,
	}

	cmd.Flags().StringVarP(&p.rename, renameFlagName, "r", "", "rename project with [old_name] to [name]")

	root.AddCommand(cmd)
}

func (p *projectSubmanager) HandleArgs(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	ui := controller.NewUI(cmd, false)

	wd, err := workingDir()
	if err != nil {
		return reportFailure(ui, err)
	}

	name := args[0]

	if p.rename != "" {
		report, err := p.renamer.Rename(domain.ProjectRenameArgs{
			WorkingDir: wd,
			OldName:    p.rename,
			NewName:    name,
		})
		if err != nil {
			return reportFailure(ui, err)
		}

		ui.DisplayProjectRenameReport(report)

		return nil
	}

	project, err := p.scaffolder().CreateProject(domain.ProjectArgs{WorkingDir: wd, Name: name})
	if err != nil {
		return reportFailure(ui, err)
	}

	ui.Info("Created project %s in %s", project.Name, project.Dir)

	return nil
}
