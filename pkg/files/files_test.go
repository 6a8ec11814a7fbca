// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cfgkit/jobcfg/pkg/files"
	"github.com/stretchr/testify/require"
)

func TestNewSortedFilesFromPathsWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0700))
	write(t, filepath.Join(dir, "b.yml"), "kind: monitor\n")
	write(t, filepath.Join(dir, "sub", "a.yaml"), "kind: recipe\n")
	write(t, filepath.Join(dir, "notes.txt"), "not yaml\n")

	result, err := files.NewSortedFilesFromPaths([]string{dir}, files.SymlinkAllowOpts{})
	require.NoError(t, err)
	require.Len(t, result, 3)

	var paths []string
	for _, file := range result {
		paths = append(paths, file.RelativePath())
	}
	require.Equal(t, []string{"b.yml", "notes.txt", "sub/a.yaml"}, paths)
}

func TestFileType(t *testing.T) {
	yml := files.MustNewFileFromSource(files.NewBytesSource("x.yml", nil))
	require.Equal(t, files.TypeYAML, yml.Type())

	yaml := files.MustNewFileFromSource(files.NewBytesSource("x.yaml", nil))
	require.Equal(t, files.TypeYAML, yaml.Type())

	toml := files.MustNewFileFromSource(files.NewBytesSource("jobcfg.toml", nil))
	require.Equal(t, files.TypeTOML, toml.Type())

	txt := files.MustNewFileFromSource(files.NewBytesSource("notes.txt", nil))
	require.Equal(t, files.TypeUnknown, txt.Type())
}

func TestFileFromLocalPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yml")
	write(t, path, "kind: monitor\n")

	result, err := files.NewSortedFilesFromPaths([]string{path}, files.SymlinkAllowOpts{})
	require.NoError(t, err)
	require.Len(t, result, 1)

	require.Equal(t, "job.yml", result[0].RelativePath())

	data, err := result[0].Bytes()
	require.NoError(t, err)
	require.Equal(t, "kind: monitor\n", string(data))
}

func TestFileFromMissingPath(t *testing.T) {
	_, err := files.NewSortedFilesFromPaths([]string{filepath.Join(t.TempDir(), "nope.yml")}, files.SymlinkAllowOpts{})
	require.Error(t, err)
}

func write(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
}
