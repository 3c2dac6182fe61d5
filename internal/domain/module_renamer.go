package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"

	"cpm.dev/pkg/cpm/internal/adapter"
	m "cpm.dev/pkg/cpm/internal/model"
)

// ModuleRenamer renames a module's directory, source and header files and
// rewrites every include directive in the source tree that refers to it.
type ModuleRenamer interface {
	Rename(args RenameArgs) (m.RenameReport, error)
}

// RenameArgs holds the arguments for a module rename.
type RenameArgs struct {
	WorkingDir m.Path
	OldName    string
	NewName    string
	// DryRun checks preconditions and computes every change without
	// touching the filesystem.
	DryRun bool
}

type moduleRenamer struct {
	fsAdapter adapter.SourceFSAdapter
	tree      SourceTree
}

// NewModuleRenamer constructs a ModuleRenamer backed by the provided
// filesystem adapter and source tree.
func NewModuleRenamer(fsAdapter adapter.SourceFSAdapter, tree SourceTree) ModuleRenamer {
	return &moduleRenamer{
		fsAdapter: fsAdapter,
		tree:      tree,
	}
}

func (r *moduleRenamer) Rename(args RenameArgs) (m.RenameReport, error) {
	op := m.RenameOperation{
		OldName:    args.OldName,
		NewName:    args.NewName,
		WorkingDir: args.WorkingDir,
	}
	report := m.RenameReport{Operation: op, DryRun: args.DryRun, UpdatedFiles: []m.Path{}}

	if err := r.checkPreconditions(op); err != nil {
		return report, err
	}

	includeRewrite, err := IncludeRewriter(op.OldName, op.NewName)
	if err != nil {
		return report, fmt.Errorf("cannot rename the module: %w", err)
	}

	guardRewrite, err := GuardRewriter(op.OldName, op.NewName)
	if err != nil {
		return report, fmt.Errorf("cannot rename the module: %w", err)
	}

	module, err := r.locate(op)
	if err != nil {
		return report, err
	}

	// filesDir is where the module files currently live; on a dry run the
	// directory is never moved.
	filesDir := module.WorkingDir

	if module.HasDirectory {
		newDir := r.fsAdapter.JoinPath(string(op.WorkingDir), op.NewName)
		if !args.DryRun {
			if err := r.fsAdapter.Rename(module.WorkingDir, newDir); err != nil {
				slog.Error("Failed to rename module directory", "from", module.WorkingDir, "to", newDir, "error", err)
				return report, fmt.Errorf("failed to rename directory: %w", m.ClassifyFSError(err))
			}

			filesDir = newDir
		}

		report.RenamedDirectory = true
		module.WorkingDir = newDir
	}

	report.ModuleDir = module.WorkingDir

	renamed, err := r.renameFile(args, filesDir, module.WorkingDir, m.SourceExt, includeRewrite, &report)
	if err != nil {
		return report, err
	}
	report.RenamedSource = renamed

	renamed, err = r.renameFile(args, filesDir, module.WorkingDir, m.HeaderExt, guardRewrite, &report)
	if err != nil {
		return report, err
	}
	report.RenamedHeader = renamed

	slog.Info("renamed module", "from", op.OldName, "to", op.NewName, "dir", report.ModuleDir, "dryRun", args.DryRun)

	ownSource := r.fsAdapter.JoinPath(string(filesDir), op.OldName+m.SourceExt)
	if err := r.updateUsages(args, ownSource, includeRewrite, &report); err != nil {
		return report, err
	}

	return report, nil
}

// checkPreconditions fails fast, before any mutation, when the old module is
// missing, the new name is taken or the new name is unusable as a filename.
func (r *moduleRenamer) checkPreconditions(op m.RenameOperation) error {
	if !isPathSegment(op.OldName) {
		return fmt.Errorf("cannot rename the module: module %q: %w", op.OldName, m.ErrNotFound)
	}

	exists, err := moduleExists(r.fsAdapter, op.WorkingDir, op.OldName)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("cannot rename the module: module %q: %w", op.OldName, m.ErrNotFound)
	}

	exists, err = moduleExists(r.fsAdapter, op.WorkingDir, op.NewName)
	if err != nil {
		return err
	}

	if exists {
		return fmt.Errorf("cannot rename the module: module %q: %w", op.NewName, m.ErrAlreadyExists)
	}

	for _, name := range []string{op.OldName, op.NewName} {
		if !validModuleName(name) {
			return fmt.Errorf("cannot rename the module: %q: %w", name, m.ErrInvalidName)
		}
	}

	return nil
}

func (r *moduleRenamer) locate(op m.RenameOperation) (m.Module, error) {
	dir := r.fsAdapter.JoinPath(string(op.WorkingDir), op.OldName)

	hasDir, err := r.fsAdapter.IsDir(dir)
	if err != nil {
		return m.Module{}, fmt.Errorf("failed to inspect %s: %w", dir, m.ClassifyFSError(err))
	}

	module := m.Module{Name: op.OldName, WorkingDir: op.WorkingDir, HasDirectory: hasDir}
	if hasDir {
		module.WorkingDir = dir
	}

	return module, nil
}

// renameFile moves <filesDir>/<old><ext> to <filesDir>/<new><ext> and rewrites
// its contents. It reports false when the file does not exist.
func (r *moduleRenamer) renameFile(
	args RenameArgs,
	filesDir, targetDir m.Path,
	ext string,
	rewrite LineRewriter,
	report *m.RenameReport,
) (bool, error) {
	oldPath := r.fsAdapter.JoinPath(string(filesDir), args.OldName+ext)
	newPath := r.fsAdapter.JoinPath(string(filesDir), args.NewName+ext)

	exists, err := r.fsAdapter.Exists(oldPath)
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", oldPath, m.ClassifyFSError(err))
	}

	if !exists {
		slog.Debug("module file not present", "path", oldPath)
		return false, nil
	}

	path := oldPath

	if !args.DryRun {
		if err := r.fsAdapter.Rename(oldPath, newPath); err != nil {
			slog.Error("Failed to rename module file", "from", oldPath, "to", newPath, "error", err)
			return false, fmt.Errorf("failed to rename %s: %w", oldPath, m.ClassifyFSError(err))
		}

		path = newPath
	}

	label := r.fsAdapter.JoinPath(string(targetDir), args.NewName+ext)
	if _, err := r.rewriteFile(path, label, rewrite, args.DryRun, report); err != nil {
		return false, err
	}

	return true, nil
}

// updateUsages rewrites include directives in every source file under the
// discovered source root. A missing source root is not an error.
func (r *moduleRenamer) updateUsages(args RenameArgs, ownSource m.Path, rewrite LineRewriter, report *m.RenameReport) error {
	root, err := r.tree.FindSourceRoot(args.WorkingDir)
	if errors.Is(err, m.ErrSourceRootNotFound) {
		slog.Warn("source directory not found; usages will not be updated", "workingDir", args.WorkingDir)
		return nil
	}

	if err != nil {
		return err
	}

	report.SourceRoot = root
	report.SourceRootFound = true

	sources, err := r.tree.ScanSources(root)
	if err != nil {
		return err
	}

	for _, source := range sources {
		// On a dry run the module's own source has not moved yet and its
		// change is already part of the plan.
		if args.DryRun && source == ownSource {
			continue
		}

		changed, err := r.rewriteFile(source, source, rewrite, args.DryRun, report)
		if err != nil {
			return err
		}

		if !changed {
			continue
		}

		rel, err := r.fsAdapter.RelPath(root, source)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", source, err)
		}

		report.UpdatedFiles = append(report.UpdatedFiles, rel)
	}

	slog.Info("updated module usages", "root", root, "scanned", len(sources), "updated", len(report.UpdatedFiles))

	return nil
}

// rewriteFile reads path, applies rewrite to every line and writes the result
// back in full. On a dry run nothing is written and a diff labelled with label
// is added to the report instead.
func (r *moduleRenamer) rewriteFile(path, label m.Path, rewrite LineRewriter, dryRun bool, report *m.RenameReport) (bool, error) {
	content, err := r.fsAdapter.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read file", "path", path, "error", err)
		return false, fmt.Errorf("failed to read %s: %w", path, m.ClassifyFSError(err))
	}

	rewritten, changed := RewriteContent(content, rewrite)

	if dryRun {
		if changed {
			report.Diffs = append(report.Diffs, m.FileDiff{
				Path: label,
				Diff: unifiedDiff(string(path), string(label), content, rewritten),
			})
		}

		return changed, nil
	}

	if err := r.fsAdapter.WriteFile(path, rewritten, 0o644); err != nil {
		slog.Error("Failed to write file", "path", path, "error", err)
		return false, fmt.Errorf("failed to write %s: %w", path, m.ClassifyFSError(err))
	}

	return changed, nil
}

func unifiedDiff(fromFile, toFile string, before, after []byte) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  1,
	})
	if err != nil {
		slog.Error("Failed to build diff", "file", toFile, "error", err)
		return ""
	}

	return diff
}

// moduleExists reports whether a directory <name>, a header <name>.h or a
// source <name>.c exists in dir.
func moduleExists(fsAdapter adapter.SourceFSAdapter, dir m.Path, name string) (bool, error) {
	for _, candidate := range []string{name, name + m.HeaderExt, name + m.SourceExt} {
		path := fsAdapter.JoinPath(string(dir), candidate)

		exists, err := fsAdapter.Exists(path)
		if err != nil {
			return false, fmt.Errorf("failed to inspect %s: %w", path, m.ClassifyFSError(err))
		}

		if exists {
			return true, nil
		}
	}

	return false, nil
}

// isPathSegment reports whether name can only refer to an entry directly
// inside the working directory.
func isPathSegment(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, `/\`)
}

// validModuleName reports whether name is a path segment that the include
// and guard patterns can match, which rules out invalid UTF-8.
func validModuleName(name string) bool {
	return isPathSegment(name) && utf8.ValidString(name)
}
