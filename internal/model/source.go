// Package model holds the value types shared by the cpm layers.
package model

// Path represents a file system path.
type Path string

// File extensions and directory names that make up a C project layout.
const (
	SourceExt      = ".c"
	HeaderExt      = ".h"
	SourceRootName = "src"
	BuildDirName   = "build"
	MainFileName   = "main.c"
	MakefileName   = "makefile"
)
