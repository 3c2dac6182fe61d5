package domain

import (
	"fmt"
	"log/slog"

	"cpm.dev/pkg/cpm/internal/adapter"
	m "cpm.dev/pkg/cpm/internal/model"
)

// ProjectRenamer renames a project directory and the project name inside its
// makefile.
type ProjectRenamer interface {
	Rename(args ProjectRenameArgs) (m.ProjectRenameReport, error)
}

// ProjectRenameArgs holds the arguments for a project rename.
type ProjectRenameArgs struct {
	WorkingDir m.Path
	OldName    string
	NewName    string
}

type projectRenamer struct {
	fsAdapter adapter.SourceFSAdapter
}

// NewProjectRenamer constructs a ProjectRenamer backed by the provided
// filesystem adapter.
func NewProjectRenamer(fsAdapter adapter.SourceFSAdapter) ProjectRenamer {
	return &projectRenamer{fsAdapter: fsAdapter}
}

func (r *projectRenamer) Rename(args ProjectRenameArgs) (m.ProjectRenameReport, error) {
	report := m.ProjectRenameReport{OldName: args.OldName, NewName: args.NewName}

	oldDir := r.fsAdapter.JoinPath(string(args.WorkingDir), args.OldName)
	newDir := r.fsAdapter.JoinPath(string(args.WorkingDir), args.NewName)

	isDir, err := r.fsAdapter.IsDir(oldDir)
	if err != nil {
		return report, fmt.Errorf("failed to inspect %s: %w", oldDir, m.ClassifyFSError(err))
	}

	if args.OldName == "" || !isDir {
		return report, fmt.Errorf("project %q: %w", args.OldName, m.ErrNotFound)
	}

	exists, err := r.fsAdapter.Exists(newDir)
	if err != nil {
		return report, fmt.Errorf("failed to inspect %s: %w", newDir, m.ClassifyFSError(err))
	}

	if exists {
		return report, fmt.Errorf("project %q: %w", args.NewName, m.ErrAlreadyExists)
	}

	if !ValidProjectName(args.NewName) {
		return report, fmt.Errorf("project name %q must only contain letters: %w", args.NewName, m.ErrInvalidName)
	}

	if err := r.fsAdapter.Rename(oldDir, newDir); err != nil {
		slog.Error("Failed to rename project directory", "from", oldDir, "to", newDir, "error", err)
		return report, fmt.Errorf("failed to rename project: %w", m.ClassifyFSError(err))
	}

	report.Dir = newDir

	makefile := r.fsAdapter.JoinPath(string(newDir), m.MakefileName)

	exists, err = r.fsAdapter.Exists(makefile)
	if err != nil {
		return report, fmt.Errorf("failed to inspect %s: %w", makefile, m.ClassifyFSError(err))
	}

	if !exists {
		slog.Warn("makefile not found; project name not updated", "path", makefile)
		return report, nil
	}

	report.MakefileFound = true

	content, err := r.fsAdapter.ReadFile(makefile)
	if err != nil {
		return report, fmt.Errorf("failed to read %s: %w", makefile, m.ClassifyFSError(err))
	}

	rewritten, changed := RewriteContent(content, LiteralRewriter(args.OldName, args.NewName))

	if err := r.fsAdapter.WriteFile(makefile, rewritten, 0o644); err != nil {
		slog.Error("Failed to write makefile", "path", makefile, "error", err)
		return report, fmt.Errorf("failed to write %s: %w", makefile, m.ClassifyFSError(err))
	}

	report.MakefileUpdated = changed

	slog.Info("renamed project", "from", args.OldName, "to", args.NewName, "makefileUpdated", changed)

	return report, nil
}
