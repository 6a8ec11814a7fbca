// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package ui

// UI is where commands report results (stdout) and diagnostics (stderr).
type UI interface {
	Printf(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
}
