// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cfgkit/jobcfg/pkg/cmd/ui"
	"github.com/cfgkit/jobcfg/pkg/files"
	"github.com/cfgkit/jobcfg/pkg/yamldoc"
	"github.com/cfgkit/jobcfg/pkg/yamlfmt"
	"github.com/k14s/difflib"
	"github.com/spf13/cobra"
)

type FmtOptions struct {
	Files []string
	Check bool
	Debug bool
}

func NewFmtOptions() *FmtOptions {
	return &FmtOptions{}
}

func NewFmtCmd(o *FmtOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Format job configuration documents",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringArrayVarP(&o.Files, "file", "f", nil, "File (ie local path, HTTP URL, -) (can be specified multiple times)")
	cmd.Flags().BoolVar(&o.Check, "check", false, "Report files whose formatting differs instead of printing them")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *FmtOptions) Run() error {
	ui := ui.NewTTY(o.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Now().Sub(t1))
	}()

	filesToProcess, err := files.NewSortedFilesFromPaths(o.Files, files.SymlinkAllowOpts{})
	if err != nil {
		return err
	}
	if len(filesToProcess) == 0 {
		return fmt.Errorf("Expected at least one file (specified via -f)")
	}

	unformatted := 0

	for _, file := range filesToProcess {
		if file.Type() != files.TypeYAML {
			continue
		}

		data, err := file.Bytes()
		if err != nil {
			return err
		}

		docSet, err := yamldoc.NewParser().ParseBytes(data, file.RelativePath())
		if err != nil {
			return err
		}

		if !o.Check {
			yamlfmt.NewPrinter(os.Stdout).Print(docSet)
			continue
		}

		formatted := yamlfmt.NewPrinter(nil).PrintStr(docSet)
		if formatted == string(data) {
			continue
		}

		unformatted++
		ui.Printf("%s: not formatted\n", file.RelativePath())
		ui.Printf("%s\n", difflib.PPDiff(
			strings.Split(string(data), "\n"), strings.Split(formatted, "\n")))
	}

	if unformatted > 0 {
		return fmt.Errorf("Found %d file(s) with formatting differences", unformatted)
	}

	return nil
}
