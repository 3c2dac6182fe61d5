// Package cmd provides the root command and CLI setup for cpm.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"cpm.dev/pkg/cpm/internal/adapter"
	"cpm.dev/pkg/cpm/internal/controller"
	"cpm.dev/pkg/cpm/internal/domain"
	m "cpm.dev/pkg/cpm/internal/model"
)

var fsAdapter *adapter.LocalSourceFSAdapter
var reportStore adapter.ReportStore
var sourceTree domain.SourceTree
var moduleRenamer domain.ModuleRenamer
var projectRenamer domain.ProjectRenamer

// verbosityFlag counts -v occurrences; any value above zero enables debug logs.
var verbosityFlag int

// templatesDirFlag points at a directory whose templates override the built-in ones.
var templatesDirFlag string

// getwd is the source of the working directory every command operates in.
var getwd = os.Getwd

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore(fsAdapter.Fs())
	sourceTree = domain.NewSourceTree(fsAdapter)
	moduleRenamer = domain.NewModuleRenamer(fsAdapter, sourceTree)
	projectRenamer = domain.NewProjectRenamer(fsAdapter)

	for _, s := range submanagers() {
		s.AddCommand(rootCmd)
	}
}

const rootLongDescription = `cpm is a scaffolding tool for C projects. It creates project skeletons
(src/, build/, main.c and a makefile) and modules (a .c/.h pair), and renames
either while keeping #include directives and include guards consistent.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "cpm",
		Short:         "C project manager",
		Long:          rootLongDescription,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), verbosityFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds a fresh root command with its persistent flags, without
// any subcommands attached.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().CountVarP(&verbosityFlag, verboseFlagName, "v", "increase verbosity (debug logging)")

	cmd.PersistentFlags().StringVar(&templatesDirFlag, templatesFlagName, viper.GetString(templatesDirKey), "directory with template overrides")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(templatesFlagName), templatesDirKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			rootCmd.PrintErrln("Error:", err)
		}

		os.Exit(1)
	}
}

// reportedError marks an error that has already been shown to the user.
type reportedError struct {
	err error
}

func (e reportedError) Error() string {
	return e.err.Error()
}

func (e reportedError) Unwrap() error {
	return e.err
}

// reportFailure shows err through ui and marks it as reported. Errors other
// than failed preconditions are logged with their full chain.
func reportFailure(ui controller.UI, err error) error {
	ui.Error(err)

	if !m.IsPrecondition(err) {
		slog.Error("command failed", "error", err)
	}

	return reportedError{err: err}
}

func workingDir() (m.Path, error) {
	wd, err := getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", m.ClassifyFSError(err))
	}

	return m.Path(wd), nil
}

// newScaffolder builds a scaffolder that honours the configured template
// override directory.
func newScaffolder() domain.Scaffolder {
	templates := adapter.NewLocalTemplateAdapter(fsAdapter.Fs(), viper.GetString(templatesDirKey))

	return domain.NewScaffolder(fsAdapter, templates)
}
