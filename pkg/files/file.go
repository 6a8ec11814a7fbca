// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	yamlExts = []string{".yaml", ".yml"}
	tomlExts = []string{".toml"}
)

type Type int

const (
	TypeUnknown Type = iota
	TypeYAML
	TypeTOML
)

type File struct {
	src     Source
	relPath string
}

// NewSortedFilesFromPaths enumerates paths into a stable, sorted set of
// files. A path may be a local file, a directory (walked recursively),
// "-" for stdin, or an HTTP(S) URL.
func NewSortedFilesFromPaths(paths []string, symlinkOpts SymlinkAllowOpts) ([]*File, error) {
	var fileSrcs []Source

	for _, path := range paths {
		switch {
		case path == "-":
			fileSrcs = append(fileSrcs, NewStdinSource())

		case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
			fileSrcs = append(fileSrcs, NewHTTPSource(path))

		default:
			fileInfo, err := os.Lstat(path)
			if err != nil {
				return nil, fmt.Errorf("Checking file '%s': %s", path, err)
			}

			switch {
			case fileInfo.IsDir():
				var selectedPaths []string

				err := filepath.Walk(path, func(walkedPath string, fi os.FileInfo, err error) error {
					if err != nil || fi.IsDir() {
						return err
					}
					if fi.Mode()&os.ModeSymlink != 0 {
						err := Symlink{walkedPath}.IsAllowed(symlinkOpts)
						if err != nil {
							return err
						}
					}
					selectedPaths = append(selectedPaths, walkedPath)
					return nil
				})
				if err != nil {
					return nil, fmt.Errorf("Listing files '%s': %s", path, err)
				}

				sort.Strings(selectedPaths)

				for _, selectedPath := range selectedPaths {
					fileSrcs = append(fileSrcs, NewLocalSource(selectedPath, path))
				}

			case fileInfo.Mode()&os.ModeSymlink != 0:
				err := Symlink{path}.IsAllowed(symlinkOpts)
				if err != nil {
					return nil, err
				}
				fileSrcs = append(fileSrcs, NewLocalSource(path, ""))

			default:
				fileSrcs = append(fileSrcs, NewLocalSource(path, ""))
			}
		}
	}

	var files []*File

	for _, fileSrc := range fileSrcs {
		file, err := NewFileFromSource(fileSrc)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return NewSortedFiles(files), nil
}

// NewSortedFiles orders files by their relative paths.
func NewSortedFiles(files []*File) []*File {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].RelativePath() < files[j].RelativePath()
	})
	return files
}

func NewFileFromSource(fileSrc Source) (*File, error) {
	relPath, err := fileSrc.RelativePath()
	if err != nil {
		return nil, fmt.Errorf("Calculating relative path for '%s': %s", fileSrc.Description(), err)
	}

	return &File{src: fileSrc, relPath: relPath}, nil
}

func MustNewFileFromSource(fileSrc Source) *File {
	file, err := NewFileFromSource(fileSrc)
	if err != nil {
		panic(err)
	}
	return file
}

func (r *File) Description() string    { return r.src.Description() }
func (r *File) RelativePath() string   { return r.relPath }
func (r *File) Bytes() ([]byte, error) { return r.src.Bytes() }

func (r *File) Type() Type {
	switch {
	case r.matchesExt(yamlExts):
		return TypeYAML
	case r.matchesExt(tomlExts):
		return TypeTOML
	default:
		return TypeUnknown
	}
}

func (r *File) matchesExt(exts []string) bool {
	filename := filepath.Base(r.RelativePath())
	for _, ext := range exts {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}
