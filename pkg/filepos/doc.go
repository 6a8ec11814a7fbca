// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filepos locates data within files: name of the file and line number.
*/
package filepos
