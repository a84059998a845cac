// Package scanner expands command line paths into the formula files that
// batch processing reads.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DefaultExtensions are the file extensions collected from directories.
var DefaultExtensions = []string{".formula", ".fml"}

type Scanner struct {
	extensions []string
}

// New returns a Scanner collecting files with the given extensions, or
// DefaultExtensions when none are given.
func New(extensions ...string) *Scanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Scanner{extensions: extensions}
}

// Collect returns the files named by paths. A file is taken as it is, a
// directory is walked for files with a known extension. The result is
// sorted and holds each file once.
func (s *Scanner) Collect(paths ...string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && s.isTargetFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking directory %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (s *Scanner) isTargetFile(path string) bool {
	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}
