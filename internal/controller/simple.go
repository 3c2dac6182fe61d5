package controller

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "cpm.dev/pkg/cpm/internal/model"
)

const (
	warningPrefix = "Warning - "
	errorPrefix   = "ERROR - "

	sourceRootMissingMessage = "source directory not found; usages will not be updated"
)

// SimpleUI implements UI by printing status lines through the cobra command's
// output streams.
type SimpleUI struct {
	cmd         *cobra.Command
	interactive bool
	warnStyle   lipgloss.Style
	errorStyle  lipgloss.Style
	addStyle    lipgloss.Style
	removeStyle lipgloss.Style
	dimStyle    lipgloss.Style
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, interactive bool) *SimpleUI {
	out := lipgloss.NewRenderer(cmd.OutOrStdout())
	errOut := lipgloss.NewRenderer(cmd.ErrOrStderr())

	return &SimpleUI{
		cmd:         cmd,
		interactive: interactive,
		warnStyle:   out.NewStyle().Foreground(lipgloss.Color("11")),
		errorStyle:  errOut.NewStyle().Foreground(lipgloss.Color("9")),
		addStyle:    out.NewStyle().Foreground(lipgloss.Color("10")),
		removeStyle: out.NewStyle().Foreground(lipgloss.Color("9")),
		dimStyle:    out.NewStyle().Faint(true),
	}
}

// Info prints an informational line.
func (s *SimpleUI) Info(format string, args ...interface{}) {
	s.println(s.cmd.OutOrStdout(), fmt.Sprintf(format, args...))
}

// Warn prints a yellow "Warning - " line.
func (s *SimpleUI) Warn(format string, args ...interface{}) {
	s.println(s.cmd.OutOrStdout(), s.warnStyle.Render(warningPrefix+fmt.Sprintf(format, args...)))
}

// Error prints a red "ERROR - " line to the error stream.
func (s *SimpleUI) Error(err error) {
	if err == nil {
		return
	}

	s.println(s.cmd.ErrOrStderr(), s.errorStyle.Render(errorPrefix+err.Error()))
}

// DisplayRenameReport prints the outcome of a module rename, or the plan when
// the report comes from a dry run.
func (s *SimpleUI) DisplayRenameReport(report m.RenameReport) {
	op := report.Operation

	if report.DryRun {
		s.displayPlan(report)
		return
	}

	s.Info("Successfully renamed the module %s to %s", op.OldName, op.NewName)

	if !report.SourceRootFound {
		s.Warn(sourceRootMissingMessage)
		return
	}

	if len(report.UpdatedFiles) == 0 {
		s.Info("No other files include the module")
		return
	}

	s.Info("Updated %d files:", len(report.UpdatedFiles))
	s.printf("%s", renderUpdatedFilesTable(report.UpdatedFiles))
}

func (s *SimpleUI) displayPlan(report m.RenameReport) {
	op := report.Operation

	s.Info("Renaming module %s to %s would:", op.OldName, op.NewName)

	if report.RenamedDirectory {
		s.Info("  rename directory %s/ to %s/", op.OldName, op.NewName)
	}

	if report.RenamedSource {
		s.Info("  rename %s%s to %s%s", op.OldName, m.SourceExt, op.NewName, m.SourceExt)
	}

	if report.RenamedHeader {
		s.Info("  rename %s%s to %s%s", op.OldName, m.HeaderExt, op.NewName, m.HeaderExt)
	}

	if !report.SourceRootFound {
		s.Warn(sourceRootMissingMessage)
	} else if len(report.UpdatedFiles) > 0 {
		s.Info("  update %d files:", len(report.UpdatedFiles))
		s.printf("%s", renderUpdatedFilesTable(report.UpdatedFiles))
	}

	for _, diff := range report.Diffs {
		s.printf("\n%s", s.renderDiff(diff.Diff))
	}
}

// renderDiff colors a unified diff line by line.
func (s *SimpleUI) renderDiff(diff string) string {
	var b strings.Builder

	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			line = s.dimStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			line = s.addStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			line = s.removeStyle.Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func renderUpdatedFilesTable(files []m.Path) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "File"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	for i, file := range files {
		table.Append([]string{fmt.Sprintf("%d", i+1), string(file)})
	}

	table.Render()

	return tableBuffer.String()
}

// DisplayProjectRenameReport prints the outcome of a project rename.
func (s *SimpleUI) DisplayProjectRenameReport(report m.ProjectRenameReport) {
	s.Info("Successfully renamed the project %s to %s", report.OldName, report.NewName)

	if !report.MakefileFound {
		s.Warn("makefile not found in %s; project name not updated", report.Dir)
	}
}

// Confirm asks question and waits for a yes/no answer.
func (s *SimpleUI) Confirm(question string) (bool, error) {
	if s.interactive {
		return runConfirmPrompt(question, s.cmd.InOrStdin(), s.cmd.OutOrStdout())
	}

	s.printf("%s [y/N] ", question)

	line, err := bufio.NewReader(s.cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (s *SimpleUI) println(w io.Writer, line string) {
	_, _ = fmt.Fprintln(w, line)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
