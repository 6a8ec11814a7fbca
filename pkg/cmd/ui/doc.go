// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package ui provides a thin abstraction over command output (typically, a tty
device).
*/
package ui
