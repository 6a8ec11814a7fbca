// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/cfgkit/jobcfg/pkg/cmd"
	uierrs "github.com/cppforlife/go-cli-ui/errors"
)

func main() {
	command := cmd.NewDefaultJobcfgCmd()

	err := command.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "jobcfg: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(1)
	}
}
