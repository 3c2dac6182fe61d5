package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"regexp"
	"strings"

	"cpm.dev/pkg/cpm/internal/adapter"
	m "cpm.dev/pkg/cpm/internal/model"
)

// Template tokens substituted when scaffolding.
const (
	ProjectNameToken = "[PROJECT_NAME]"
	ModuleNameToken  = "[NAME]"
)

var projectNamePattern = regexp.MustCompile(`^[a-zA-Z]+$`)

// ValidProjectName reports whether name consists only of ASCII letters.
func ValidProjectName(name string) bool {
	return projectNamePattern.MatchString(name)
}

// Scaffolder creates new projects and modules from templates.
type Scaffolder interface {
	CreateProject(args ProjectArgs) (m.Project, error)
	CreateModule(args ModuleArgs) (m.Module, error)
}

// ProjectArgs holds the arguments for creating a project.
type ProjectArgs struct {
	WorkingDir m.Path
	Name       string
}

// ModuleArgs holds the arguments for creating a module.
type ModuleArgs struct {
	WorkingDir m.Path
	Name       string
	// WithDirectory places the module files in a directory named after it.
	WithDirectory bool
}

type scaffolder struct {
	fsAdapter adapter.SourceFSAdapter
	templates adapter.TemplateAdapter
}

// NewScaffolder constructs a Scaffolder writing through fsAdapter and reading
// templates from templates.
func NewScaffolder(fsAdapter adapter.SourceFSAdapter, templates adapter.TemplateAdapter) Scaffolder {
	return &scaffolder{
		fsAdapter: fsAdapter,
		templates: templates,
	}
}

func (s *scaffolder) CreateProject(args ProjectArgs) (m.Project, error) {
	if !ValidProjectName(args.Name) {
		return m.Project{}, fmt.Errorf("project name %q must only contain letters: %w", args.Name, m.ErrInvalidName)
	}

	dir := s.fsAdapter.JoinPath(string(args.WorkingDir), args.Name)
	project := m.Project{Name: args.Name, Dir: dir}

	if err := s.fsAdapter.Mkdir(dir, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return project, fmt.Errorf("project %q: %w", args.Name, m.ErrAlreadyExists)
		}

		slog.Error("Failed to create project directory", "dir", dir, "error", err)

		return project, fmt.Errorf("failed to create project: %w", m.ClassifyFSError(err))
	}

	for _, sub := range []string{m.SourceRootName, m.BuildDirName} {
		path := s.fsAdapter.JoinPath(string(dir), sub)
		if err := s.fsAdapter.Mkdir(path, 0o755); err != nil {
			slog.Error("Failed to create project directory", "dir", path, "error", err)
			return project, fmt.Errorf("failed to create %s: %w", path, m.ClassifyFSError(err))
		}
	}

	mainFile := s.fsAdapter.JoinPath(string(dir), m.SourceRootName, m.MainFileName)
	if err := s.render(adapter.MainTemplate, mainFile, nil); err != nil {
		return project, err
	}

	makefile := s.fsAdapter.JoinPath(string(dir), m.MakefileName)
	if err := s.render(adapter.MakefileTemplate, makefile, strings.NewReplacer(ProjectNameToken, args.Name)); err != nil {
		return project, err
	}

	slog.Info("created project", "name", args.Name, "dir", dir)

	return project, nil
}

func (s *scaffolder) CreateModule(args ModuleArgs) (m.Module, error) {
	module := m.Module{Name: args.Name, WorkingDir: args.WorkingDir, HasDirectory: args.WithDirectory}

	if !validModuleName(args.Name) {
		return module, fmt.Errorf("module name %q: %w", args.Name, m.ErrInvalidName)
	}

	exists, err := moduleExists(s.fsAdapter, args.WorkingDir, args.Name)
	if err != nil {
		return module, err
	}

	if exists {
		return module, fmt.Errorf("module with the name %q: %w", args.Name, m.ErrAlreadyExists)
	}

	if args.WithDirectory {
		dir := s.fsAdapter.JoinPath(string(args.WorkingDir), args.Name)
		if err := s.fsAdapter.Mkdir(dir, 0o755); err != nil {
			slog.Error("Failed to create module directory", "dir", dir, "error", err)
			return module, fmt.Errorf("failed to create %s: %w", dir, m.ClassifyFSError(err))
		}

		module.WorkingDir = dir
	}

	if err := s.render(adapter.SourceTemplate, module.SourcePath(), strings.NewReplacer(ModuleNameToken, args.Name)); err != nil {
		return module, err
	}

	if err := s.render(adapter.HeaderTemplate, module.HeaderPath(), strings.NewReplacer(ModuleNameToken, strings.ToUpper(args.Name))); err != nil {
		return module, err
	}

	slog.Info("created module", "name", args.Name, "dir", module.WorkingDir)

	return module, nil
}

// render writes template name to target, substituting tokens with replacer
// when one is given.
func (s *scaffolder) render(name string, target m.Path, replacer *strings.Replacer) error {
	text, err := s.templates.Load(name)
	if err != nil {
		slog.Error("Failed to load template", "template", name, "error", err)
		return fmt.Errorf("failed to load template %s: %w", name, err)
	}

	if replacer != nil {
		text = replacer.Replace(text)
	}

	if err := s.fsAdapter.WriteFile(target, []byte(text), 0o644); err != nil {
		slog.Error("Failed to write file", "path", target, "error", err)
		return fmt.Errorf("failed to write %s: %w", target, m.ClassifyFSError(err))
	}

	return nil
}
