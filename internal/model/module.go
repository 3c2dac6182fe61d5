package model

import (
	"path/filepath"
	"strings"
)

// Module is a named C source/header pair, optionally wrapped in a directory
// with the same name.
type Module struct {
	Name         string
	WorkingDir   Path
	HasDirectory bool
}

// SourcePath returns the path of the module's .c file.
func (mod Module) SourcePath() Path {
	return Path(filepath.Join(string(mod.WorkingDir), mod.Name+SourceExt))
}

// HeaderPath returns the path of the module's .h file.
func (mod Module) HeaderPath() Path {
	return Path(filepath.Join(string(mod.WorkingDir), mod.Name+HeaderExt))
}

// GuardName returns the include guard macro conventionally used by the
// module's header.
func GuardName(name string) string {
	return strings.ToUpper(name) + "_H"
}

// RenameOperation describes a single rename request. It is built per
// invocation and never persisted.
type RenameOperation struct {
	OldName    string `yaml:"old_name"`
	NewName    string `yaml:"new_name"`
	WorkingDir Path   `yaml:"working_dir"`
}

// Project is a scaffolded C project rooted at Dir.
type Project struct {
	Name string
	Dir  Path
}
