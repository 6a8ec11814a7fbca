// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package lint

import (
	"fmt"

	"github.com/cfgkit/jobcfg/pkg/cmd/ui"
	"github.com/cfgkit/jobcfg/pkg/files"
	"github.com/cfgkit/jobcfg/pkg/kinds"
	"github.com/cfgkit/jobcfg/pkg/toolconfig"
	"github.com/spf13/cobra"
)

type Options struct {
	Files        []string
	Kind         string
	TemplatePath string
	ConfigPath   string

	WarningsAsErrors bool
	Debug            bool
}

func NewOptions() *Options {
	return &Options{}
}

func NewCmd(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check configuration documents against their schemas",
		Long: `Check configuration documents against their schemas.

Each file is identified as one of the supported kinds (recipe, monitor,
pipeline, ci, ci-template) and checked: shape, field values, placeholder
resolution, binding resolution, and template parameter contracts.`,
		RunE: func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringArrayVarP(&o.Files, "file", "f", nil, "File (ie local path, directory, HTTP URL, -) (can be specified multiple times)")
	cmd.Flags().StringVar(&o.Kind, "kind", "", "Force the document kind instead of detecting it")
	cmd.Flags().StringVar(&o.TemplatePath, "template", "", "Template manifest to check CI invocations against")
	cmd.Flags().StringVar(&o.ConfigPath, "config", "", "Tool config file (default jobcfg.toml, or $"+toolconfig.EnvConfigPath+")")
	cmd.Flags().BoolVar(&o.WarningsAsErrors, "warnings-as-errors", false, "Fail on warnings as well as violations")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *Options) Run() error {
	ui := ui.NewTTY(o.Debug)

	config, err := toolconfig.Load(o.ConfigPath)
	if err != nil {
		return err
	}

	filesToProcess, err := files.NewSortedFilesFromPaths(o.Files, files.SymlinkAllowOpts{})
	if err != nil {
		return err
	}
	if len(filesToProcess) == 0 {
		return fmt.Errorf("Expected at least one file (specified via -f)")
	}

	in := Input{Files: filesToProcess}

	if o.TemplatePath != "" {
		templateFiles, err := files.NewSortedFilesFromPaths([]string{o.TemplatePath}, files.SymlinkAllowOpts{})
		if err != nil {
			return err
		}
		if len(templateFiles) == 0 {
			return fmt.Errorf("Expected template path '%s' to contain at least one file", o.TemplatePath)
		}
		in.Template = templateFiles[0]
	}

	out := o.RunWithFiles(in, ui, config)
	if out.Err != nil {
		return out.Err
	}

	return o.report(out, ui, config)
}

func (o *Options) report(out Output, ui ui.UI, config *toolconfig.Config) error {
	violations := 0
	warnings := 0

	for _, result := range out.Results {
		for _, err := range result.Check.Warnings {
			warnings++
			ui.Warnf("%s: warning (%s): %s\n", result.File.RelativePath(), result.Kind, err.Error())
		}
		if !result.Check.HasViolations() {
			ui.Printf("%s: ok (%s)\n", result.File.RelativePath(), result.Kind)
			continue
		}
		violations += len(result.Check.Violations)
		ui.Printf("%s: %d violation(s) (%s):%s\n",
			result.File.RelativePath(), len(result.Check.Violations), result.Kind, result.Check.Error())
	}

	if violations > 0 {
		return fmt.Errorf("Lint found %d violation(s)", violations)
	}
	if warnings > 0 && (o.WarningsAsErrors || config.Lint.WarningsAsErrors) {
		return fmt.Errorf("Lint found %d warning(s) (treated as errors)", warnings)
	}
	return nil
}

// kind returns the forced kind, preferring the flag over the config file.
func (o *Options) kind(config *toolconfig.Config) (kinds.Kind, bool, error) {
	name := o.Kind
	if name == "" {
		name = config.Lint.Kind
	}
	if name == "" {
		return "", false, nil
	}
	kind, err := kinds.Parse(name)
	return kind, err == nil, err
}
