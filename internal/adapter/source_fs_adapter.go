// Package adapter contains the filesystem and template adapters for the cpm CLI.
package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	m "cpm.dev/pkg/cpm/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when renaming modules and scanning C projects. It hides direct `os`
// access so the rename logic can be tested against any afero filesystem.
//
//nolint:interfacebloat // A richer interface keeps domain logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Walk traverses root recursively in lexical order.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// ReadFile loads a file and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile replaces the file at path with content. The content is written
	// to a temporary sibling first and then moved into place; an existing
	// file keeps its permissions, a new one gets perm.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// Exists reports whether anything exists at path.
	Exists(path m.Path) (bool, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path m.Path) (bool, error)

	// Rename moves oldPath to newPath.
	Rename(oldPath, newPath m.Path) error

	// Mkdir creates a single directory. It fails if path already exists.
	Mkdir(path m.Path, perm os.FileMode) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on top of an afero filesystem.
type LocalSourceFSAdapter struct {
	fs afero.Fs
}

// NewLocalSourceFSAdapter constructs an adapter backed by the OS filesystem.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return NewSourceFSAdapter(afero.NewOsFs())
}

// NewSourceFSAdapter constructs an adapter backed by the given filesystem.
func NewSourceFSAdapter(fsys afero.Fs) *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{fs: fsys}
}

// Fs exposes the underlying filesystem.
func (a *LocalSourceFSAdapter) Fs() afero.Fs {
	return a.fs
}

// Walk iterates over everything under root, descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, fn FilepathWalkFunc) error {
	return afero.Walk(a.fs, string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// ReadFile loads file contents.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return afero.ReadFile(a.fs, string(path))
}

// WriteFile writes content through a temporary file and renames it over path.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	target := string(path)

	info, err := a.fs.Stat(target)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	tmp, err := afero.TempFile(a.fs, filepath.Dir(target), "."+filepath.Base(target)+".cpm-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		a.removeTemp(tmpName)

		return fmt.Errorf("write %s: %w", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		a.removeTemp(tmpName)
		return err
	}

	if err := a.fs.Chmod(tmpName, perm); err != nil {
		a.removeTemp(tmpName)
		return err
	}

	if err := a.fs.Rename(tmpName, target); err != nil {
		a.removeTemp(tmpName)
		return err
	}

	slog.Debug("wrote file", "path", target, "bytes", len(content))

	return nil
}

func (a *LocalSourceFSAdapter) removeTemp(name string) {
	if err := a.fs.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to remove temp file", "path", name, "error", err)
	}
}

// Exists reports whether path exists.
func (a *LocalSourceFSAdapter) Exists(path m.Path) (bool, error) {
	return afero.Exists(a.fs, string(path))
}

// IsDir reports whether path is an existing directory.
func (a *LocalSourceFSAdapter) IsDir(path m.Path) (bool, error) {
	return afero.DirExists(a.fs, string(path))
}

// Rename moves oldPath to newPath.
func (a *LocalSourceFSAdapter) Rename(oldPath, newPath m.Path) error {
	if err := a.fs.Rename(string(oldPath), string(newPath)); err != nil {
		return err
	}

	slog.Debug("renamed", "from", oldPath, "to", newPath)

	return nil
}

// Mkdir creates the directory at path.
func (a *LocalSourceFSAdapter) Mkdir(path m.Path, perm os.FileMode) error {
	return a.fs.Mkdir(string(path), perm)
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
