package domain

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cpm.dev/pkg/cpm/internal/adapter"
	m "cpm.dev/pkg/cpm/internal/model"
)

// SourceTree discovers the project source root and lists the C sources
// beneath it.
type SourceTree interface {
	FindSourceRoot(workingDir m.Path) (m.Path, error)
	ScanSources(root m.Path) ([]m.Path, error)
}

type sourceTree struct {
	fsAdapter adapter.SourceFSAdapter
}

// NewSourceTree constructs a SourceTree backed by the provided filesystem adapter.
func NewSourceTree(fsAdapter adapter.SourceFSAdapter) SourceTree {
	return &sourceTree{fsAdapter: fsAdapter}
}

// FindSourceRoot returns the deepest ancestor of workingDir (workingDir
// included) whose name is exactly "src".
func (st *sourceTree) FindSourceRoot(workingDir m.Path) (m.Path, error) {
	dir := filepath.Clean(string(workingDir))

	for {
		if filepath.Base(dir) == m.SourceRootName {
			return m.Path(dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s", m.ErrSourceRootNotFound, workingDir)
		}

		dir = parent
	}
}

// ScanSources lists every regular .c file under root in walk order.
func (st *sourceTree) ScanSources(root m.Path) ([]m.Path, error) {
	var sources []m.Path

	err := st.fsAdapter.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.Mode().IsRegular() || !strings.HasSuffix(info.Name(), m.SourceExt) {
			return nil
		}

		sources = append(sources, m.Path(path))

		return nil
	})
	if err != nil {
		slog.Error("Failed to scan source tree", "root", root, "error", err)
		return nil, fmt.Errorf("failed to scan %s: %w", root, m.ClassifyFSError(err))
	}

	slog.Debug("scanned source tree", "root", root, "files", len(sources))

	return sources, nil
}
