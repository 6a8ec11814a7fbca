// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package checks holds the violation machinery shared by every document kind:
position-carrying violation errors, the Check collector, and helpers for
asserting the shape of YAML nodes.

Violations render in a two-column annotated-source format:

	monitor.yml:12 |   interval: 0
	               |
	               | INVALID VALUE - interval must be at least 1
	               |      found: 0
*/
package checks
