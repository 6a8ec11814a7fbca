// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/cfgkit/jobcfg/pkg/cmd/lint"
	"github.com/cfgkit/jobcfg/pkg/version"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

type JobcfgOptions struct{}

func NewDefaultJobcfgOptions() *JobcfgOptions {
	return &JobcfgOptions{}
}

func NewDefaultJobcfgCmd() *cobra.Command {
	return NewJobcfgCmd(NewDefaultJobcfgOptions())
}

func NewJobcfgCmd(o *JobcfgOptions) *cobra.Command {
	cmd := lint.NewCmd(lint.NewOptions())

	cmd.Use = "jobcfg"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "jobcfg checks and inspects job configuration documents"
	cmd.Long = `jobcfg checks and inspects job configuration documents.

Supported kinds: package recipes, monitoring jobs, pipeline jobs,
CI template invocations, and CI template manifests.`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(lint.NewCmd(lint.NewOptions()))
	cmd.AddCommand(NewInspectCmd(NewInspectOptions()))
	cmd.AddCommand(NewFmtCmd(NewFmtOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
