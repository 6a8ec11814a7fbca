// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package cmd is home to the full set of jobcfg's "commands" -- instances of
cobra.Command (not to be confused with ./cmd which contains the bootstrapping
for executing jobcfg).

For a list of commands run:

	$ jobcfg help

The default command is "lint".
*/
package cmd
