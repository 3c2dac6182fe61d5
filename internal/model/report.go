package model

// FileDiff is a planned content change of a single file.
type FileDiff struct {
	Path Path   `yaml:"path"`
	Diff string `yaml:"diff"`
}

// RenameReport summarizes what a module rename did, or would do when DryRun
// is set.
type RenameReport struct {
	Operation        RenameOperation `yaml:"operation"`
	DryRun           bool            `yaml:"dry_run"`
	RenamedDirectory bool            `yaml:"renamed_directory"`
	RenamedSource    bool            `yaml:"renamed_source"`
	RenamedHeader    bool            `yaml:"renamed_header"`
	ModuleDir        Path            `yaml:"module_dir"`
	SourceRoot       Path            `yaml:"source_root,omitempty"`
	SourceRootFound  bool            `yaml:"source_root_found"`
	// UpdatedFiles lists files outside the module whose includes changed,
	// relative to SourceRoot.
	UpdatedFiles []Path    `yaml:"updated_files"`
	Diffs        []FileDiff `yaml:"diffs,omitempty"`
}

// ProjectRenameReport summarizes a project rename.
type ProjectRenameReport struct {
	OldName         string `yaml:"old_name"`
	NewName         string `yaml:"new_name"`
	Dir             Path   `yaml:"dir"`
	MakefileFound   bool   `yaml:"makefile_found"`
	MakefileUpdated bool   `yaml:"makefile_updated"`
}
