// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package spell provides the ability to suggest an exact spelling of a word.

In the context of jobcfg, this is useful for errors that involve misspelled
keys, parameter names, and binding targets.
*/
package spell
