// Package controller provides the user-facing output of the cpm CLI.
package controller

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "cpm.dev/pkg/cpm/internal/model"
)

// UI defines how commands report progress and results to the user.
// Implementations decide on formatting; they never touch the filesystem.
type UI interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(err error)
	DisplayRenameReport(report m.RenameReport)
	DisplayProjectRenameReport(report m.ProjectRenameReport)
	// Confirm asks a yes/no question; the default answer is no.
	Confirm(question string) (bool, error)
}

// NewUI returns the UI used by the CLI commands. When interactive is true,
// confirmations run as a Bubble Tea prompt instead of a plain line read.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	return NewSimpleUI(cmd, interactive)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
