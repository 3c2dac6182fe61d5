package adapter

import (
	"embed"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
)

// Template names understood by TemplateAdapter.
const (
	MainTemplate     = "main.c.txt"
	MakefileTemplate = "makefile.txt"
	SourceTemplate   = "module.c.txt"
	HeaderTemplate   = "module.h.txt"
)

//go:embed templates/*.txt
var embeddedTemplates embed.FS

// TemplateAdapter loads the raw text of scaffolding templates.
type TemplateAdapter interface {
	Load(name string) (string, error)
}

// LocalTemplateAdapter serves the built-in templates, preferring a file with
// the same name in overrideDir when one exists.
type LocalTemplateAdapter struct {
	fs          afero.Fs
	overrideDir string
}

// NewLocalTemplateAdapter constructs a template adapter. An empty overrideDir
// disables overrides.
func NewLocalTemplateAdapter(fsys afero.Fs, overrideDir string) *LocalTemplateAdapter {
	return &LocalTemplateAdapter{fs: fsys, overrideDir: overrideDir}
}

// Load returns the template text for name.
func (t *LocalTemplateAdapter) Load(name string) (string, error) {
	if t.overrideDir != "" {
		path := filepath.Join(t.overrideDir, name)

		ok, err := afero.Exists(t.fs, path)
		if err != nil {
			return "", err
		}

		if ok {
			data, err := afero.ReadFile(t.fs, path)
			if err != nil {
				slog.Error("failed to read template override", "path", path, "error", err)
				return "", fmt.Errorf("failed to read template %s: %w", path, err)
			}

			slog.Debug("loaded template override", "path", path)

			return string(data), nil
		}
	}

	data, err := embeddedTemplates.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("unknown template %q: %w", name, err)
	}

	return string(data), nil
}
