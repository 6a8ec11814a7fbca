// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package exprs implements the two reference syntaxes embedded in the
documents jobcfg checks:

  - binding expressions, "${{ ... }}", used by pipeline job documents to
    wire step inputs/outputs to the pipeline's own io and to sibling steps;
  - environment placeholders, "${NAME}", used by package recipes to pin
    versions at build time.

Neither syntax is a template language. Both are scanned, parsed, and
resolved against declared names only.
*/
package exprs
