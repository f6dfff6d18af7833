package parsing

import (
	"io/fs"
	"os"
	"path/filepath"
)

// A Filter decides which directories are searched for declarations, and which
// files in them are read
type Filter interface {
	IsExcludedDir(dir string) bool
	IsSourceFile(path string) bool
}

// ReadSourcesInDir reads every declaration file under the given directory, in
// lexical order
func ReadSourcesInDir(directoryName string, included bool, filter Filter) ([]*SourceFile, error) {
	sources := []*SourceFile{}

	if _, err := os.Stat(directoryName); err != nil {
		return sources, err
	}

	if err := filepath.WalkDir(directoryName, fs.WalkDirFunc(
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != directoryName && filter.IsExcludedDir(path) {
					return filepath.SkipDir
				}
				return nil
			}

			if filter.IsSourceFile(path) {
				source, err := ReadSourceFile(directoryName, path, included)
				if err != nil {
					return err
				}
				sources = append(sources, source)
			}

			return nil
		},
	)); err != nil {
		return nil, err
	}

	return sources, nil
}
