package domain

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpm.dev/pkg/cpm/internal/adapter"
	m "cpm.dev/pkg/cpm/internal/model"
)

func newMemScaffolder(t *testing.T) (Scaffolder, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work", 0o755))

	return NewScaffolder(adapter.NewSourceFSAdapter(fsys), adapter.NewLocalTemplateAdapter(fsys, "")), fsys
}

func memRead(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(data)
}

func TestValidProjectName(t *testing.T) {
	for _, name := range []string{"helloworld", "Foo", "x"} {
		assert.True(t, ValidProjectName(name), name)
	}

	for _, name := range []string{"", "hello world", "!project", `"project"`, "project1", "3301", "a-b"} {
		assert.False(t, ValidProjectName(name), name)
	}
}

func TestScaffolder_CreateProject(t *testing.T) {
	s, fsys := newMemScaffolder(t)

	project, err := s.CreateProject(ProjectArgs{WorkingDir: "/work", Name: "foo"})
	require.NoError(t, err)
	assert.Equal(t, m.Path("/work/foo"), project.Dir)

	for _, dir := range []string{"/work/foo", "/work/foo/src", "/work/foo/build"} {
		ok, err := afero.DirExists(fsys, dir)
		require.NoError(t, err)
		assert.True(t, ok, dir)
	}

	assert.Contains(t, memRead(t, fsys, "/work/foo/src/main.c"), "int main")

	makefile := memRead(t, fsys, "/work/foo/makefile")
	assert.Contains(t, makefile, "$(BUILD_DIR)/foo")
	assert.NotContains(t, makefile, ProjectNameToken)
}

func TestScaffolder_CreateProjectErrors(t *testing.T) {
	s, _ := newMemScaffolder(t)

	_, err := s.CreateProject(ProjectArgs{WorkingDir: "/work", Name: "foo1"})
	require.ErrorIs(t, err, m.ErrInvalidName)

	_, err = s.CreateProject(ProjectArgs{WorkingDir: "/work", Name: "foo"})
	require.NoError(t, err)

	_, err = s.CreateProject(ProjectArgs{WorkingDir: "/work", Name: "foo"})
	require.ErrorIs(t, err, m.ErrAlreadyExists)
}

func TestScaffolder_CreateModule(t *testing.T) {
	t.Run("loose files", func(t *testing.T) {
		s, fsys := newMemScaffolder(t)

		module, err := s.CreateModule(ModuleArgs{WorkingDir: "/work", Name: "foo"})
		require.NoError(t, err)
		assert.False(t, module.HasDirectory)

		assert.Equal(t, "#include \"foo.h\"\n", memRead(t, fsys, "/work/foo.c"))
		header := memRead(t, fsys, "/work/foo.h")
		assert.Contains(t, header, "#ifndef FOO_H")
		assert.Contains(t, header, "#define FOO_H")
		assert.Contains(t, header, "#endif /* FOO_H */")
	})

	t.Run("own directory", func(t *testing.T) {
		s, fsys := newMemScaffolder(t)

		module, err := s.CreateModule(ModuleArgs{WorkingDir: "/work", Name: "foo", WithDirectory: true})
		require.NoError(t, err)
		assert.True(t, module.HasDirectory)
		assert.Equal(t, m.Path(filepath.Join("/work", "foo")), module.WorkingDir)

		assert.Equal(t, "#include \"foo.h\"\n", memRead(t, fsys, "/work/foo/foo.c"))
		assert.Contains(t, memRead(t, fsys, "/work/foo/foo.h"), "FOO_H")
	})

	t.Run("already exists", func(t *testing.T) {
		s, fsys := newMemScaffolder(t)
		require.NoError(t, afero.WriteFile(fsys, "/work/foo.h", []byte("x"), 0o644))

		_, err := s.CreateModule(ModuleArgs{WorkingDir: "/work", Name: "foo"})
		require.ErrorIs(t, err, m.ErrAlreadyExists)

		ok, err := afero.Exists(fsys, "/work/foo.c")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestScaffolder_ModuleRenameRoundTrip(t *testing.T) {
	src := newTestProject(t)
	fsAdapter := adapter.NewLocalSourceFSAdapter()
	s := NewScaffolder(fsAdapter, adapter.NewLocalTemplateAdapter(fsAdapter.Fs(), ""))

	_, err := s.CreateModule(ModuleArgs{WorkingDir: m.Path(src), Name: "foo", WithDirectory: true})
	require.NoError(t, err)

	_, err = NewModuleRenamer(fsAdapter, NewSourceTree(fsAdapter)).Rename(RenameArgs{WorkingDir: m.Path(src), OldName: "foo", NewName: "bar"})
	require.NoError(t, err)

	assert.Equal(t, "#include \"bar.h\"\n", readString(t, filepath.Join(src, "bar", "bar.c")))
	header := readString(t, filepath.Join(src, "bar", "bar.h"))
	assert.Contains(t, header, "#ifndef BAR_H")
	assert.NotContains(t, header, "FOO")
}
