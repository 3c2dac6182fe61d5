package cmd

import (
	"github.com/spf13/cobra"
)

// Submanager is a command family (project, module) that registers its command
// on the root and handles the parsed arguments.
type Submanager interface {
	AddCommand(root *cobra.Command)
	HandleArgs(cmd *cobra.Command, args []string) error
}

func submanagers() []Submanager {
	return []Submanager{
		newProjectSubmanager(projectRenamer, newScaffolder),
		newModuleSubmanager(moduleRenamer, newScaffolder, reportStore),
	}
}
