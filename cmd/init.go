package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cpm.dev/pkg/cpm/internal/controller"
	m "cpm.dev/pkg/cpm/internal/model"
)

const initLongDescription = `Write cpm.yaml to the current directory with every setting at its current
value, so it can be edited by hand:

  module.directory  create new modules inside a directory named after them
  templates.dir     directory whose main.c.txt, makefile.txt, module.c.txt
                    and module.h.txt override the built-in templates
  log.*             log file name, level and rotation

Every key can also be set through a CPM_ environment variable, for example
CPM_MODULE_DIRECTORY=true. An existing cpm.yaml is never overwritten.`

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a cpm.yaml with the current settings",
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ui := controller.NewUI(cmd, false)

			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)

			var exists viper.ConfigFileAlreadyExistsError
			if errors.As(err, &exists) {
				return reportFailure(ui, fmt.Errorf("config file %s: %w", targetPath, m.ErrAlreadyExists))
			}

			if err != nil {
				return reportFailure(ui, fmt.Errorf("failed to write config file: %w", m.ClassifyFSError(err)))
			}

			ui.Info("Wrote %s", targetPath)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
