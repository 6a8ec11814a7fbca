// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pipeline models the pipeline job document: typed file/folder
inputs and outputs, a mapping of steps that bind io through "${{ }}"
expressions, and the step dependency graph those bindings induce.
*/
package pipeline
