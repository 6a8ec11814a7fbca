// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files provides primitives for enumerating and loading data from
various file or file-like Source's.

This allows the rest of jobcfg to process logically chunked streams of data
without becoming entangled in the details of how to read data.
*/
package files
