package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "cpm.dev/pkg/cpm/internal/model"
)

func newTestModuleRoot() *cobra.Command {
	root := newRootCmd()
	newModuleSubmanager(moduleRenamer, newScaffolder, reportStore).AddCommand(root)

	return root
}

// runCommand executes root with args, feeding stdin, and returns both output streams.
func runCommand(root *cobra.Command, stdin string, args ...string) (string, string, error) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

// newTestSourceDir creates <tmp>/proj/src, makes it the working directory and
// returns its path.
func newTestSourceDir(t *testing.T) string {
	t.Helper()

	src := filepath.Join(t.TempDir(), "proj", m.SourceRootName)
	require.NoError(t, os.MkdirAll(src, 0o755))
	chdir(t, src)

	return src
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestModuleCmd_Create(t *testing.T) {
	src := newTestSourceDir(t)

	stdout, _, err := runCommand(newTestModuleRoot(), "", "module", "foo")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created module foo")

	assert.Equal(t, "#include \"foo.h\"\n", readFile(t, filepath.Join(src, "foo.c")))
	header := readFile(t, filepath.Join(src, "foo.h"))
	assert.Contains(t, header, "#ifndef FOO_H")
	assert.Contains(t, header, "#define FOO_H")
}

func TestModuleCmd_CreateWithDirectory(t *testing.T) {
	src := newTestSourceDir(t)

	_, _, err := runCommand(newTestModuleRoot(), "", "module", "-d", "foo")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(src, "foo", "foo.c"))
	assert.FileExists(t, filepath.Join(src, "foo", "foo.h"))
}

func TestModuleCmd_CreateWithDirectoryFromConfig(t *testing.T) {
	src := newTestSourceDir(t)

	viper.Set(moduleDirectoryKey, true)
	t.Cleanup(func() { viper.Set(moduleDirectoryKey, defaultModuleDirectory) })

	_, _, err := runCommand(newTestModuleRoot(), "", "module", "foo")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(src, "foo", "foo.c"))
}

func TestModuleCmd_CreateExisting(t *testing.T) {
	src := newTestSourceDir(t)
	writeFile(t, filepath.Join(src, "foo.c"), "int keep;\n")

	_, stderr, err := runCommand(newTestModuleRoot(), "", "module", "foo")
	require.Error(t, err)
	assert.ErrorIs(t, err, m.ErrAlreadyExists)
	assert.Contains(t, stderr, "ERROR - ")
	assert.Equal(t, "int keep;\n", readFile(t, filepath.Join(src, "foo.c")))
}

func TestModuleCmd_Rename(t *testing.T) {
	src := newTestSourceDir(t)

	root := newTestModuleRoot()
	_, _, err := runCommand(root, "", "module", "foo")
	require.NoError(t, err)
	writeFile(t, filepath.Join(src, "main.c"), "#include \"foo.h\"\n\nint main(void) { return 0; }\n")

	stdout, _, err := runCommand(newTestModuleRoot(), "", "module", "-r", "foo", "bar")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Successfully renamed the module foo to bar")
	assert.Contains(t, stdout, "Updated 1 files:")

	assert.NoFileExists(t, filepath.Join(src, "foo.c"))
	assert.NoFileExists(t, filepath.Join(src, "foo.h"))
	assert.Equal(t, "#include \"bar.h\"\n", readFile(t, filepath.Join(src, "bar.c")))
	assert.Contains(t, readFile(t, filepath.Join(src, "bar.h")), "#ifndef BAR_H")
	assert.Equal(t, "#include \"bar.h\"\n\nint main(void) { return 0; }\n", readFile(t, filepath.Join(src, "main.c")))
}

func TestModuleCmd_RenameNotFound(t *testing.T) {
	src := newTestSourceDir(t)
	writeFile(t, filepath.Join(src, "main.c"), "#include \"foo.h\"\n")

	_, stderr, err := runCommand(newTestModuleRoot(), "", "module", "-r", "foo", "bar")
	require.Error(t, err)
	assert.ErrorIs(t, err, m.ErrNotFound)
	assert.Contains(t, stderr, "ERROR - ")
	assert.Equal(t, "#include \"foo.h\"\n", readFile(t, filepath.Join(src, "main.c")))
}

func TestModuleCmd_RenameDryRun(t *testing.T) {
	src := newTestSourceDir(t)
	writeFile(t, filepath.Join(src, "foo.c"), "#include \"foo.h\"\n")
	writeFile(t, filepath.Join(src, "foo.h"), "#ifndef FOO_H\n#define FOO_H\n#endif\n")
	writeFile(t, filepath.Join(src, "main.c"), "#include \"foo.h\"\n")

	stdout, _, err := runCommand(newTestModuleRoot(), "", "module", "-r", "foo", "--dry-run", "bar")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Renaming module foo to bar would:")
	assert.Contains(t, stdout, "+#include \"bar.h\"")

	assert.FileExists(t, filepath.Join(src, "foo.c"))
	assert.NoFileExists(t, filepath.Join(src, "bar.c"))
	assert.Equal(t, "#include \"foo.h\"\n", readFile(t, filepath.Join(src, "main.c")))
}

func TestModuleCmd_RenameInteractive(t *testing.T) {
	tests := []struct {
		name        string
		answer      string
		wantRenamed bool
	}{
		{"confirmed", "y\n", true},
		{"declined", "n\n", false},
		{"no answer", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newTestSourceDir(t)
			writeFile(t, filepath.Join(src, "foo.c"), "#include \"foo.h\"\n")
			writeFile(t, filepath.Join(src, "foo.h"), "#ifndef FOO_H\n#endif\n")

			stdout, _, err := runCommand(newTestModuleRoot(), tt.answer, "module", "-i", "-r", "foo", "bar")
			require.NoError(t, err)
			assert.Contains(t, stdout, "Renaming module foo to bar would:")
			assert.Contains(t, stdout, "[y/N]")

			if tt.wantRenamed {
				assert.FileExists(t, filepath.Join(src, "bar.c"))
				assert.Contains(t, stdout, "Successfully renamed the module foo to bar")
				return
			}

			assert.FileExists(t, filepath.Join(src, "foo.c"))
			assert.NoFileExists(t, filepath.Join(src, "bar.c"))
			assert.Contains(t, stdout, "Rename cancelled")
		})
	}
}

func TestModuleCmd_RenameWritesReport(t *testing.T) {
	src := newTestSourceDir(t)
	writeFile(t, filepath.Join(src, "foo.c"), "#include \"foo.h\"\n")
	writeFile(t, filepath.Join(src, "foo.h"), "#ifndef FOO_H\n#endif\n")
	reportPath := filepath.Join(t.TempDir(), "rename.yaml")

	stdout, _, err := runCommand(newTestModuleRoot(), "", "module", "-r", "foo", "--report", reportPath, "bar")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Report written to")

	report, err := reportStore.LoadRenameReport(m.Path(reportPath))
	require.NoError(t, err)
	assert.Equal(t, "foo", report.Operation.OldName)
	assert.Equal(t, "bar", report.Operation.NewName)
	assert.True(t, report.RenamedSource)
	assert.True(t, report.RenamedHeader)
	assert.False(t, report.DryRun)
}

func TestModuleCmd_FlagValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"rename and directory", []string{"module", "-r", "foo", "-d", "bar"}},
		{"dry run without rename", []string{"module", "--dry-run", "bar"}},
		{"report without rename", []string{"module", "--report", "out.yaml", "bar"}},
		{"missing name", []string{"module"}},
		{"too many names", []string{"module", "foo", "bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newTestSourceDir(t)

			_, _, err := runCommand(newTestModuleRoot(), "", tt.args...)
			require.Error(t, err)

			entries, err := os.ReadDir(src)
			require.NoError(t, err)
			for _, entry := range entries {
				assert.NotEqual(t, m.SourceExt, filepath.Ext(entry.Name()), "unexpected file %s", entry.Name())
			}
		})
	}
}
