// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package version

// Version is the build version, overridden at link time by the release
// process.
var Version = "0.1.0"
