// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package yamldoc parses YAML into a tree of nodes where every node knows the
file and line it came from.

Positions are the backbone of jobcfg's diagnostics: every check that fails
points back at the exact line of the offending document.
*/
package yamldoc
