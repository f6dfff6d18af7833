package symbol

import (
	"path/filepath"
	"strings"
)

// FileSpec describes where a class declaration was read from
type FileSpec struct {
	// The root directory the file was found under
	SourceDir string
	// The path of the file relative to SourceDir, without an extension
	PathPart string
	// If SourceDir is an include directory, i.e. the classes are already
	// compiled elsewhere and only read here
	Included bool
}

// NewFileSpec builds a FileSpec from the root directory and a path to the file
// somewhere beneath it
func NewFileSpec(sourceDir, path string, included bool) (*FileSpec, error) {
	rel, err := filepath.Rel(sourceDir, path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)
	return &FileSpec{
		SourceDir: sourceDir,
		PathPart:  strings.TrimSuffix(rel, filepath.Ext(rel)),
		Included:  included,
	}, nil
}

// IncludeH returns the relative path of the header generated for the file
func (fs *FileSpec) IncludeH() string {
	return fs.PathPart + ".h"
}
